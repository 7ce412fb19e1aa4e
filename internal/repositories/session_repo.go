package repositories

import "imageshare/internal/models"

// SessionRepository holds the opaque-token-to-user mapping.
type SessionRepository interface {
	Create(session *models.Session) error
	GetByID(id string) (*models.Session, error)
	Delete(id string) error
}
