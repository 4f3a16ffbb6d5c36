package services_test

import (
	"fmt"
	"testing"

	"contesthub/internal/models"
	"contesthub/internal/repositories"
	"contesthub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(id, role string) (int64, error) {
	args := m.Called(id, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) IncrementWins(email string) (int64, error) {
	args := m.Called(email)
	return args.Get(0).(int64), args.Error(1)
}

func TestUserService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, services.Policy{})

	// Test successful registration with server-side normalization: the
	// caller-supplied role and wins are overwritten, always.
	user := &models.User{
		Email: "a@x.com",
		Name:  "Alice",
		Role:  models.RoleAdmin, // must be ignored
		Wins:  99,               // must be ignored
	}
	mockRepo.On("GetByEmail", "a@x.com").Return(nil, fmt.Errorf("user with email a@x.com: %w", repositories.ErrNotFound)).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	stored, err := userService.Register(user, "a@x.com")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, stored.Role)
	assert.Equal(t, 0, stored.Wins)
	assert.False(t, stored.CreatedAt.IsZero())
	mockRepo.AssertExpectations(t)

	// Test registering someone else's email
	_, err = userService.Register(&models.User{Email: "b@x.com"}, "a@x.com")
	assert.Error(t, err)
	assert.ErrorIs(t, err, services.ErrForbidden)
	mockRepo.AssertExpectations(t)

	// Test duplicate email caught by the pre-check
	mockRepo.On("GetByEmail", "a@x.com").Return(&models.User{ID: "1", Email: "a@x.com"}, nil).Once()
	_, err = userService.Register(&models.User{Email: "a@x.com"}, "a@x.com")
	assert.Error(t, err)
	assert.ErrorIs(t, err, services.ErrConflict)
	mockRepo.AssertExpectations(t)

	// Test duplicate email caught by the unique index when two
	// registrations race past the pre-check
	mockRepo.On("GetByEmail", "a@x.com").Return(nil, fmt.Errorf("user with email a@x.com: %w", repositories.ErrNotFound)).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).
		Return(fmt.Errorf("user with email a@x.com: %w", repositories.ErrDuplicateKey)).Once()
	_, err = userService.Register(&models.User{Email: "a@x.com"}, "a@x.com")
	assert.Error(t, err)
	assert.ErrorIs(t, err, services.ErrConflict)
	mockRepo.AssertExpectations(t)
}

func TestUserService_GetRole(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, services.Policy{})

	// Test self lookup
	mockRepo.On("GetByEmail", "a@x.com").Return(&models.User{Email: "a@x.com", Role: models.RoleCreator}, nil).Once()
	role, err := userService.GetRole("a@x.com", "a@x.com")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleCreator, role)
	mockRepo.AssertExpectations(t)

	// Test cross-principal lookup: forbidden, the role never leaks and the
	// repository is never consulted
	role, err = userService.GetRole("a@x.com", "b@x.com")
	assert.Error(t, err)
	assert.ErrorIs(t, err, services.ErrForbidden)
	assert.Empty(t, role)
	mockRepo.AssertExpectations(t)
}

func TestUserService_SetRole(t *testing.T) {
	// Permissive policy: any authenticated principal may change any role
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, services.Policy{})

	mockRepo.On("UpdateRole", "user-1", models.RoleCreator).Return(int64(1), nil).Once()
	modified, err := userService.SetRole("user-1", models.RoleCreator, "anyone@x.com")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), modified)
	mockRepo.AssertExpectations(t)

	// Unknown role is rejected before touching storage
	_, err = userService.SetRole("user-1", "superuser", "anyone@x.com")
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)

	// No matching user: zero rows, no error
	mockRepo.On("UpdateRole", "missing", models.RoleCreator).Return(int64(0), nil).Once()
	modified, err = userService.SetRole("missing", models.RoleCreator, "anyone@x.com")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), modified)
	mockRepo.AssertExpectations(t)
}

func TestUserService_SetRoleRestricted(t *testing.T) {
	// Restricted policy: only an admin principal may change roles
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, services.Policy{RestrictRoleChanges: true})

	mockRepo.On("GetByEmail", "admin@x.com").Return(&models.User{Email: "admin@x.com", Role: models.RoleAdmin}, nil).Once()
	mockRepo.On("UpdateRole", "user-1", models.RoleCreator).Return(int64(1), nil).Once()
	modified, err := userService.SetRole("user-1", models.RoleCreator, "admin@x.com")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), modified)
	mockRepo.AssertExpectations(t)

	mockRepo.On("GetByEmail", "plain@x.com").Return(&models.User{Email: "plain@x.com", Role: models.RoleUser}, nil).Once()
	_, err = userService.SetRole("user-1", models.RoleCreator, "plain@x.com")
	assert.Error(t, err)
	assert.ErrorIs(t, err, services.ErrForbidden)
	mockRepo.AssertExpectations(t)
}

func TestUserService_List(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, services.Policy{})

	expected := []models.User{
		{ID: "1", Email: "a@x.com", Role: models.RoleUser},
		{ID: "2", Email: "c@x.com", Role: models.RoleCreator},
	}
	mockRepo.On("GetAll").Return(expected, nil).Once()

	users, err := userService.List()
	assert.NoError(t, err)
	assert.Equal(t, expected, users)
	mockRepo.AssertExpectations(t)
}
