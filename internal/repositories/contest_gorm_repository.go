package repositories

import (
	"errors"
	"fmt"

	"contesthub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMContestRepository is a GORM implementation of ContestRepository.
type GORMContestRepository struct {
	db *gorm.DB
}

// NewGORMContestRepository creates a new instance of GORMContestRepository.
func NewGORMContestRepository(db *gorm.DB) *GORMContestRepository {
	return &GORMContestRepository{
		db: db,
	}
}

// Create inserts a new contest in the database.
func (r *GORMContestRepository) Create(contest *models.Contest) error {
	if contest.ID == "" {
		contest.ID = uuid.New().String()
	}
	if err := r.db.Create(contest).Error; err != nil {
		return fmt.Errorf("failed to create contest: %w", err)
	}
	return nil
}

// GetByID retrieves a single contest with its submissions.
func (r *GORMContestRepository) GetByID(id string) (*models.Contest, error) {
	var contest models.Contest
	if err := r.db.Preload("Submissions").First(&contest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("contest with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get contest by ID %s: %w", id, err)
	}
	return &contest, nil
}

// GetByCreator retrieves a creator's contests, newest first.
func (r *GORMContestRepository) GetByCreator(creatorEmail string) ([]models.Contest, error) {
	var contests []models.Contest
	err := r.db.Preload("Submissions").
		Where("creator_email = ?", creatorEmail).
		Order("created_at DESC").
		Find(&contests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get contests for creator %s: %w", creatorEmail, err)
	}
	return contests, nil
}

// MarkWinner sets is_winner on the matching submission. A single UPDATE, so
// it is atomic with respect to concurrent writes on the same row; zero rows
// affected means no submission matched.
func (r *GORMContestRepository) MarkWinner(contestID, participantEmail string) (int64, error) {
	res := r.db.Model(&models.Submission{}).
		Where("contest_id = ? AND participant_email = ?", contestID, participantEmail).
		Update("is_winner", true)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to mark winner for contest %s: %w", contestID, res.Error)
	}
	return res.RowsAffected, nil
}

// UpdateFields applies the given column values to a contest.
func (r *GORMContestRepository) UpdateFields(id string, fields map[string]interface{}) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	res := r.db.Model(&models.Contest{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update contest %s: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes a contest by ID. Submissions go with it through the
// cascading FK constraint.
func (r *GORMContestRepository) Delete(id string) (int64, error) {
	res := r.db.Delete(&models.Contest{}, "id = ?", id)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete contest %s: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

// AddSubmission inserts a participant's submission. The composite unique
// index rejects a second entry by the same participant in the same contest.
func (r *GORMContestRepository) AddSubmission(submission *models.Submission) error {
	if submission.ID == "" {
		submission.ID = uuid.New().String()
	}
	if err := r.db.Create(submission).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("submission by %s in contest %s: %w",
				submission.ParticipantEmail, submission.ContestID, ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}
