package services_test

import (
	"fmt"
	"testing"

	"imageshare/internal/models"
	"imageshare/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, zap.NewNop())

	input := services.RegisterInput{
		Username:  "testuser",
		FirstName: "Test",
		LastName:  "User",
		Email:     "test@example.com",
		Password:  "password123",
	}

	// Test successful registration: the persisted password must be a
	// bcrypt hash of the plaintext, never the plaintext itself.
	var created *models.User
	mockRepo.On("GetByUsername", input.Username).Return(nil, nil).Once()
	mockRepo.On("GetByEmail", input.Email).Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.User)
	}).Return(nil).Once()

	user, err := authService.RegisterUser(input)
	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "password123", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Test username already taken
	mockRepo.On("GetByUsername", input.Username).Return(&models.User{ID: "1"}, nil).Once()
	_, err = authService.RegisterUser(input)
	assert.ErrorIs(t, err, services.ErrDuplicateIdentity)
	mockRepo.AssertExpectations(t)

	// Test email already registered
	mockRepo.On("GetByUsername", input.Username).Return(nil, nil).Once()
	mockRepo.On("GetByEmail", input.Email).Return(&models.User{ID: "1"}, nil).Once()
	_, err = authService.RegisterUser(input)
	assert.ErrorIs(t, err, services.ErrDuplicateIdentity)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_VerifyCredentials(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, zap.NewNop())

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	// Round-trip: the registered password authenticates
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	got, err := authService.VerifyCredentials("testuser", "password123")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	mockRepo.AssertExpectations(t)

	// Any other password does not
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	_, err = authService.VerifyCredentials("testuser", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrAuthenticationFailed)
	mockRepo.AssertExpectations(t)

	// Unknown usernames fail indistinguishably from wrong passwords
	mockRepo.On("GetByUsername", "nonexistentuser").Return(nil, fmt.Errorf("user with username nonexistentuser not found")).Once()
	_, err = authService.VerifyCredentials("nonexistentuser", "password123")
	assert.ErrorIs(t, err, services.ErrAuthenticationFailed)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ListUsers(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, zap.NewNop())

	expected := []models.User{
		{ID: "1", Username: "alice"},
		{ID: "2", Username: "bob"},
	}
	mockRepo.On("GetAll").Return(expected, nil).Once()

	users, err := authService.ListUsers()
	assert.NoError(t, err)
	assert.Equal(t, expected, users)
	mockRepo.AssertExpectations(t)
}
