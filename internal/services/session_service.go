package services

import (
	"fmt"
	"time"

	"imageshare/internal/models"
	"imageshare/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionService is the session/identity provider. A token is a signed
// JWT whose ID (jti) must match a live row in the session store, so
// revocation and expiry are enforced server-side rather than by the
// token alone.
type SessionService struct {
	sessionRepo repositories.SessionRepository
	userRepo    repositories.UserRepository
	jwtSecret   []byte
	ttl         time.Duration
	logger      *zap.Logger
}

// NewSessionService creates a new SessionService.
func NewSessionService(sessionRepo repositories.SessionRepository, userRepo repositories.UserRepository, jwtSecret string, ttl time.Duration, logger *zap.Logger) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		jwtSecret:   []byte(jwtSecret),
		ttl:         ttl,
		logger:      logger,
	}
}

// Establish creates a session for the user and returns its token.
func (s *SessionService) Establish(user *models.User) (string, error) {
	now := time.Now()
	session := &models.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"jti":      session.ID,
		"sub":      user.ID,
		"username": user.Username,
		"exp":      session.ExpiresAt.Unix(),
		"iat":      now.Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	s.logger.Info("session established", zap.String("session_id", session.ID), zap.String("user_id", user.ID))
	return signed, nil
}

// Resolve returns the user behind a token. Every failure mode (missing,
// malformed, expired, revoked, user gone) is ErrUnauthenticated.
func (s *SessionService) Resolve(tokenString string) (*models.User, error) {
	if tokenString == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	sessionID, ok := claims["jti"].(string)
	if !ok || sessionID == "" {
		return nil, ErrUnauthenticated
	}

	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		// No row means the token was revoked or never issued.
		return nil, ErrUnauthenticated
	}
	if time.Now().After(session.ExpiresAt) {
		if err := s.sessionRepo.Delete(session.ID); err != nil {
			s.logger.Warn("failed to delete expired session", zap.String("session_id", session.ID), zap.Error(err))
		}
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepo.GetByID(session.UserID)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// Revoke deletes the session behind a token. Tokens that no longer parse
// are already unusable, so revoking them is a no-op, not an error.
func (s *SessionService) Revoke(tokenString string) error {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil
	}
	sessionID, ok := claims["jti"].(string)
	if !ok || sessionID == "" {
		return nil
	}
	if err := s.sessionRepo.Delete(sessionID); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	s.logger.Info("session revoked", zap.String("session_id", sessionID))
	return nil
}

// parseToken validates the token signature and standard claims.
func (s *SessionService) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
