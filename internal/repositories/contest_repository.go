package repositories

import "contesthub/internal/models"

// ContestRepository defines the interface for contest data access, including
// the submissions that belong to each contest.
type ContestRepository interface {
	Create(contest *models.Contest) error
	// GetByID loads a contest together with its submissions.
	GetByID(id string) (*models.Contest, error)
	// GetByCreator returns the creator's contests, most recently created first.
	GetByCreator(creatorEmail string) ([]models.Contest, error)
	// MarkWinner flags the submission of the given participant in the given
	// contest as the winner. Returns the number of rows changed; zero means
	// no submission matched and nothing was written.
	MarkWinner(contestID, participantEmail string) (int64, error)
	// UpdateFields applies the given column values to a contest. Returns the
	// number of rows changed.
	UpdateFields(id string, fields map[string]interface{}) (int64, error)
	// Delete removes a contest and, via the FK constraint, its submissions.
	// Returns the number of rows deleted.
	Delete(id string) (int64, error)
	AddSubmission(submission *models.Submission) error
}
