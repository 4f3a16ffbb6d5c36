package services

import (
	"errors"
	"fmt"
	"time"

	"contesthub/internal/models"
	"contesthub/internal/repositories"
)

// UserService handles business logic for user accounts and roles.
type UserService struct {
	userRepo repositories.UserRepository
	policy   Policy
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, policy Policy) *UserService {
	return &UserService{
		userRepo: userRepo,
		policy:   policy,
	}
}

// Register stores a new user record for the verified principal. The server
// owns role, wins, and createdAt: whatever the caller sent for those fields
// is overwritten, so nobody can self-elevate at registration. A second
// registration of the same email fails with ErrConflict.
func (s *UserService) Register(user *models.User, principalEmail string) (*models.User, error) {
	if err := AuthorizeSelf(principalEmail, user.Email); err != nil {
		return nil, err
	}

	user.Role = models.RoleUser
	user.Wins = 0
	user.CreatedAt = time.Now()

	// Pre-check for a clean 409. The unique index on email is what actually
	// closes the race between two concurrent registrations.
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: user with email %s already exists", ErrConflict, user.Email)
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: user with email %s already exists", ErrConflict, user.Email)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// List retrieves all users. Available to any authenticated principal.
func (s *UserService) List() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// SetRole changes the role of the user with the given ID. With
// RestrictRoleChanges enabled, only an admin principal may do this.
// Returns the number of records changed; zero means no such user.
func (s *UserService) SetRole(id, role, principalEmail string) (int64, error) {
	if !models.ValidRole(role) {
		return 0, fmt.Errorf("invalid role: %s", role)
	}

	if s.policy.RestrictRoleChanges {
		principal, err := s.userRepo.GetByEmail(principalEmail)
		if err != nil {
			return 0, fmt.Errorf("%w: principal has no account", ErrForbidden)
		}
		if err := AuthorizeRole(principal.Role, models.RoleAdmin); err != nil {
			return 0, err
		}
	}

	return s.userRepo.UpdateRole(id, role)
}

// GetRole returns the role of the given email, for that user only. The role
// is never revealed to a different principal.
func (s *UserService) GetRole(email, principalEmail string) (string, error) {
	if err := AuthorizeSelf(principalEmail, email); err != nil {
		return "", err
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", fmt.Errorf("%w: no user with email %s", ErrNotFound, email)
		}
		return "", err
	}
	return user.Role, nil
}
