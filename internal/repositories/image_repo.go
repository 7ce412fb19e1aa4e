package repositories

import "imageshare/internal/models"

// ImageRepository defines the interface for image metadata access.
// GetAll returns images newest first; GetByUserID is the explicit
// owner-side query replacing ORM back-population.
type ImageRepository interface {
	Create(image *models.Image) error
	GetAll() ([]models.Image, error)
	GetByID(id string) (*models.Image, error)
	GetByUserID(userID string) ([]models.Image, error)
}
