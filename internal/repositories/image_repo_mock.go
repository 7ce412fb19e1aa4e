package repositories

import (
	"fmt"
	"sort"
	"sync"

	"imageshare/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MockImageRepository is an in-memory implementation of ImageRepository.
type MockImageRepository struct {
	images map[string]models.Image
	mu     sync.RWMutex
}

// NewMockImageRepository creates a new instance of MockImageRepository.
func NewMockImageRepository() *MockImageRepository {
	return &MockImageRepository{
		images: make(map[string]models.Image),
	}
}

// Create adds a new image.
func (r *MockImageRepository) Create(image *models.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if image.ID == "" {
		image.ID = uuid.New().String()
	}
	r.images[image.ID] = *image
	return nil
}

// GetAll returns all images, newest first.
func (r *MockImageRepository) GetAll() ([]models.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	imageList := make([]models.Image, 0, len(r.images))
	for _, img := range r.images {
		imageList = append(imageList, img)
	}
	sort.Slice(imageList, func(i, j int) bool {
		return imageList[i].CreatedAt.After(imageList[j].CreatedAt)
	})
	return imageList, nil
}

// GetByID returns an image by its ID.
func (r *MockImageRepository) GetByID(id string) (*models.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	image, ok := r.images[id]
	if !ok {
		return nil, fmt.Errorf("image with ID %s not found: %w", id, gorm.ErrRecordNotFound)
	}
	return &image, nil
}

// GetByUserID returns the images owned by a user, newest first.
func (r *MockImageRepository) GetByUserID(userID string) ([]models.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var imageList []models.Image
	for _, img := range r.images {
		if img.UserID == userID {
			imageList = append(imageList, img)
		}
	}
	sort.Slice(imageList, func(i, j int) bool {
		return imageList[i].CreatedAt.After(imageList[j].CreatedAt)
	})
	return imageList, nil
}
