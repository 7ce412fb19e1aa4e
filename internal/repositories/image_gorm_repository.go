package repositories

import (
	"fmt"

	"imageshare/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMImageRepository is a GORM implementation of ImageRepository.
type GORMImageRepository struct {
	db *gorm.DB
}

// NewGORMImageRepository creates a new instance of GORMImageRepository.
func NewGORMImageRepository(db *gorm.DB) *GORMImageRepository {
	return &GORMImageRepository{
		db: db,
	}
}

// Create persists a new image row.
func (r *GORMImageRepository) Create(image *models.Image) error {
	if image.ID == "" {
		image.ID = uuid.New().String()
	}
	if err := r.db.Create(image).Error; err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	return nil
}

// GetAll retrieves all images, newest first.
func (r *GORMImageRepository) GetAll() ([]models.Image, error) {
	var images []models.Image
	if err := r.db.Order("created_at DESC").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to get all images: %w", err)
	}
	return images, nil
}

// GetByID retrieves a single image by its ID.
func (r *GORMImageRepository) GetByID(id string) (*models.Image, error) {
	var image models.Image
	if err := r.db.First(&image, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("image with ID %s not found: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get image by ID %s: %w", id, err)
	}
	return &image, nil
}

// GetByUserID retrieves all images owned by a user, newest first.
func (r *GORMImageRepository) GetByUserID(userID string) ([]models.Image, error) {
	var images []models.Image
	if err := r.db.Order("created_at DESC").Find(&images, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get images for user %s: %w", userID, err)
	}
	return images, nil
}
