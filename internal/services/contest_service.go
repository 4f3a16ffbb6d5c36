package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"contesthub/internal/models"
	"contesthub/internal/repositories"
)

// EventPublisher publishes contest lifecycle events to the message broker.
// Implemented by pkg/rabbitmq.Client; a nil publisher disables events.
type EventPublisher interface {
	PublishContestEvent(event string, payload map[string]interface{}) error
}

// Event names published on the contest stream.
const (
	EventContestCreated = "contest.created"
	EventWinnerMarked   = "contest.winner_marked"
)

// ContestService handles business logic for contests and their submissions.
type ContestService struct {
	contestRepo repositories.ContestRepository
	userRepo    repositories.UserRepository
	publisher   EventPublisher
	policy      Policy
}

// NewContestService creates a new ContestService.
func NewContestService(contestRepo repositories.ContestRepository, userRepo repositories.UserRepository, publisher EventPublisher, policy Policy) *ContestService {
	return &ContestService{
		contestRepo: contestRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		policy:      policy,
	}
}

// Create stores a new contest for the verified principal. The claimed email
// and role from the request are treated as claims to be checked: the email
// must match the principal, the claimed role must be creator, and the
// principal's stored account must actually carry the creator role. The
// server stamps creator_email and created_at; the caller cannot supply them.
func (s *ContestService) Create(contest *models.Contest, claimedEmail, claimedRole, principalEmail string) (*models.Contest, error) {
	if err := AuthorizeRole(claimedRole, models.RoleCreator); err != nil {
		return nil, err
	}
	if err := AuthorizeSelf(principalEmail, claimedEmail); err != nil {
		return nil, err
	}

	principal, err := s.userRepo.GetByEmail(principalEmail)
	if err != nil {
		return nil, fmt.Errorf("%w: principal has no account", ErrForbidden)
	}
	if err := AuthorizeRole(principal.Role, models.RoleCreator); err != nil {
		return nil, err
	}

	contest.CreatorEmail = principalEmail
	contest.CreatedAt = time.Now()
	contest.Submissions = nil

	if err := s.contestRepo.Create(contest); err != nil {
		return nil, fmt.Errorf("failed to create contest: %w", err)
	}

	s.publish(EventContestCreated, map[string]interface{}{
		"contestId":    contest.ID,
		"creatorEmail": contest.CreatorEmail,
		"name":         contest.Name,
	})

	return contest, nil
}

// ListByCreator returns the creator's contests, newest first. Only the
// creator may list their own contests.
func (s *ContestService) ListByCreator(creatorEmail, principalEmail string) ([]models.Contest, error) {
	if err := AuthorizeSelf(principalEmail, creatorEmail); err != nil {
		return nil, err
	}
	return s.contestRepo.GetByCreator(creatorEmail)
}

// GetByID returns the full contest document including all submissions.
// Any authenticated principal may read any contest.
func (s *ContestService) GetByID(id string) (*models.Contest, error) {
	contest, err := s.contestRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: no contest with ID %s", ErrNotFound, id)
		}
		return nil, err
	}
	return contest, nil
}

// MarkWinner flags the matching submission as the winner. When no submission
// matches the participant email the call is a no-op reported through the
// returned count, not an error. On a real change the participant's wins
// counter is bumped and an event is published; both are independent
// single-row operations, there is no cross-table transaction.
func (s *ContestService) MarkWinner(contestID, participantEmail, principalEmail string) (int64, error) {
	if err := s.checkOwnership(contestID, principalEmail); err != nil {
		return 0, err
	}

	modified, err := s.contestRepo.MarkWinner(contestID, participantEmail)
	if err != nil {
		return 0, fmt.Errorf("failed to mark winner: %w", err)
	}
	if modified == 0 {
		return 0, nil
	}

	if _, err := s.userRepo.IncrementWins(participantEmail); err != nil {
		// Winner flag is already set; the counter catches up next time.
		log.Printf("Warning: failed to increment wins for %s: %v", participantEmail, err)
	}

	s.publish(EventWinnerMarked, map[string]interface{}{
		"contestId":        contestID,
		"participantEmail": participantEmail,
	})

	return modified, nil
}

// UpdateMetadata applies the supplied metadata fields to a contest. Only the
// fields of models.ContestUpdate are reachable; creator_email and created_at
// stay immutable. Zero matched rows means the contest does not exist.
func (s *ContestService) UpdateMetadata(contestID string, update models.ContestUpdate, principalEmail string) (int64, error) {
	if err := s.checkOwnership(contestID, principalEmail); err != nil {
		return 0, err
	}
	return s.contestRepo.UpdateFields(contestID, update.Fields())
}

// Delete removes a contest and its submissions. Zero deleted rows means the
// contest did not exist.
func (s *ContestService) Delete(contestID, principalEmail string) (int64, error) {
	if err := s.checkOwnership(contestID, principalEmail); err != nil {
		return 0, err
	}
	return s.contestRepo.Delete(contestID)
}

// AddSubmission enters the principal into a contest. The participant email
// is always the verified principal, whatever the body claimed; a second
// entry by the same participant fails with ErrConflict.
func (s *ContestService) AddSubmission(contestID string, submission *models.Submission, principalEmail string) (*models.Submission, error) {
	if _, err := s.GetByID(contestID); err != nil {
		return nil, err
	}

	submission.ContestID = contestID
	submission.ParticipantEmail = principalEmail
	submission.IsWinner = false
	submission.CreatedAt = time.Now()

	if err := s.contestRepo.AddSubmission(submission); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s already entered contest %s", ErrConflict, principalEmail, contestID)
		}
		return nil, fmt.Errorf("failed to add submission: %w", err)
	}
	return submission, nil
}

// checkOwnership enforces the owning-creator rule on contest mutations when
// the policy asks for it. The owner is resolved from the stored contest,
// never from request parameters.
func (s *ContestService) checkOwnership(contestID, principalEmail string) error {
	if !s.policy.EnforceContestOwnership {
		return nil
	}
	contest, err := s.contestRepo.GetByID(contestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: no contest with ID %s", ErrNotFound, contestID)
		}
		return err
	}
	return AuthorizeSelf(principalEmail, contest.CreatorEmail)
}

func (s *ContestService) publish(event string, payload map[string]interface{}) {
	if s.publisher == nil {
		log.Println("Event publisher is not initialized. Skipping message publication.")
		return
	}
	if err := s.publisher.PublishContestEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}
