package repositories

import "contesthub/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetAll() ([]models.User, error)
	// UpdateRole sets the role of the user with the given ID and returns the
	// number of rows changed (zero when no such user exists).
	UpdateRole(id, role string) (int64, error)
	// IncrementWins bumps the wins counter of the user with the given email
	// by one, as a single statement so concurrent wins never lose updates.
	IncrementWins(email string) (int64, error)
}
