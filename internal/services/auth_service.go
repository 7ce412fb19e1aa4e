package services

import (
	"errors"
	"fmt"
	"time"

	"imageshare/internal/models"
	"imageshare/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService is the credential store: it holds user records and
// verifies password hashes. Users are immutable after registration.
type AuthService struct {
	userRepo repositories.UserRepository
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// RegisterInput carries the already-validated registration fields.
type RegisterInput struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	BirthDate *time.Time
	Password  string
}

// RegisterUser registers a new user, hashing the password before anything
// is persisted. Returns ErrDuplicateIdentity when the username or email
// is already taken.
func (s *AuthService) RegisterUser(in RegisterInput) (*models.User, error) {
	if existing, err := s.userRepo.GetByUsername(in.Username); err == nil && existing != nil {
		return nil, fmt.Errorf("username %q: %w", in.Username, ErrDuplicateIdentity)
	}
	if existing, err := s.userRepo.GetByEmail(in.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("email %q: %w", in.Email, ErrDuplicateIdentity)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:        uuid.New().String(),
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		BirthDate: in.BirthDate,
		Password:  string(hashedPassword),
		CreatedAt: time.Now(),
	}
	if err := s.userRepo.Create(user); err != nil {
		// The unique index is the last line of defense against a
		// concurrent registration winning the race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("username or email taken: %w", ErrDuplicateIdentity)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// VerifyCredentials authenticates a username/password pair. Unknown
// usernames and wrong passwords both return ErrAuthenticationFailed so
// callers cannot tell which one happened.
func (s *AuthService) VerifyCredentials(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrAuthenticationFailed
	}
	return user, nil
}

// GetUserByID retrieves a single user.
func (s *AuthService) GetUserByID(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

// ListUsers retrieves all registered users.
func (s *AuthService) ListUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}
