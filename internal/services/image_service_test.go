package services_test

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	"imageshare/internal/models"
	"imageshare/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MockImageRepository is a mock implementation of repositories.ImageRepository
type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) Create(image *models.Image) error {
	args := m.Called(image)
	return args.Error(0)
}

func (m *MockImageRepository) GetAll() ([]models.Image, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Image), args.Error(1)
}

func (m *MockImageRepository) GetByID(id string) (*models.Image, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Image), args.Error(1)
}

func (m *MockImageRepository) GetByUserID(userID string) ([]models.Image, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Image), args.Error(1)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(eventType string, body []byte) error {
	args := m.Called(eventType, body)
	return args.Error(0)
}

// pngPayload is the 8-byte PNG signature; enough for content sniffing.
var pngPayload = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func TestImageService_Upload(t *testing.T) {
	mockImages := new(MockImageRepository)
	mockUsers := new(MockUserRepository)
	mockPublisher := new(MockEventPublisher)
	uploadDir := t.TempDir()
	imageService := services.NewImageService(mockImages, mockUsers, uploadDir, mockPublisher, zap.NewNop())

	owner := &models.User{ID: "user-123", Username: "alice"}
	mockUsers.On("GetByID", owner.ID).Return(owner, nil).Once()

	var created *models.Image
	mockImages.On("Create", mock.AnythingOfType("*models.Image")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.Image)
	}).Return(nil).Once()
	mockPublisher.On("Publish", "image.uploaded", mock.Anything).Return(nil).Once()

	image, err := imageService.Upload(owner.ID, services.ImageUpload{
		Filename:    "sunset.png",
		Payload:     bytes.NewReader(pngPayload),
		Description: "sunset",
	})
	assert.NoError(t, err)
	assert.NotNil(t, image)
	assert.Equal(t, owner.ID, image.UserID)
	assert.Equal(t, "sunset", image.Description)
	assert.Equal(t, created.ID, image.ID)

	// The binary must exist on disk at the recorded path.
	payload, err := os.ReadFile(image.ImagePath)
	assert.NoError(t, err)
	assert.Equal(t, pngPayload, payload)

	mockImages.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestImageService_UploadRejectsNonImages(t *testing.T) {
	mockImages := new(MockImageRepository)
	mockUsers := new(MockUserRepository)
	uploadDir := t.TempDir()
	imageService := services.NewImageService(mockImages, mockUsers, uploadDir, nil, zap.NewNop())

	owner := &models.User{ID: "user-123", Username: "alice"}

	// Plain text payload
	mockUsers.On("GetByID", owner.ID).Return(owner, nil).Once()
	_, err := imageService.Upload(owner.ID, services.ImageUpload{
		Filename: "notes.txt",
		Payload:  bytes.NewReader([]byte("this is not an image")),
	})
	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)

	// Empty payload
	mockUsers.On("GetByID", owner.ID).Return(owner, nil).Once()
	_, err = imageService.Upload(owner.ID, services.ImageUpload{
		Filename: "empty.png",
		Payload:  bytes.NewReader(nil),
	})
	assert.ErrorAs(t, err, &verr)

	// Nothing was persisted and nothing was written to disk.
	mockImages.AssertNotCalled(t, "Create", mock.Anything)
	entries, readErr := os.ReadDir(uploadDir)
	assert.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestImageService_UploadUnknownOwner(t *testing.T) {
	mockImages := new(MockImageRepository)
	mockUsers := new(MockUserRepository)
	imageService := services.NewImageService(mockImages, mockUsers, t.TempDir(), nil, zap.NewNop())

	mockUsers.On("GetByID", "ghost").Return(nil, fmt.Errorf("user with ID ghost not found: %w", gorm.ErrRecordNotFound)).Once()
	_, err := imageService.Upload("ghost", services.ImageUpload{
		Filename: "sunset.png",
		Payload:  bytes.NewReader(pngPayload),
	})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestImageService_ListAndGet(t *testing.T) {
	mockImages := new(MockImageRepository)
	mockUsers := new(MockUserRepository)
	imageService := services.NewImageService(mockImages, mockUsers, t.TempDir(), nil, zap.NewNop())

	expected := []models.Image{
		{ID: "2", UserID: "user-123", Description: "newer"},
		{ID: "1", UserID: "user-123", Description: "older"},
	}
	mockImages.On("GetAll").Return(expected, nil).Once()
	images, err := imageService.ListImages()
	assert.NoError(t, err)
	assert.Equal(t, expected, images)

	mockImages.On("GetByID", "1").Return(&expected[1], nil).Once()
	image, err := imageService.GetImage("1")
	assert.NoError(t, err)
	assert.Equal(t, "older", image.Description)

	mockImages.On("GetByID", "99").Return(nil, fmt.Errorf("image with ID 99 not found: %w", gorm.ErrRecordNotFound)).Once()
	_, err = imageService.GetImage("99")
	assert.ErrorIs(t, err, services.ErrNotFound)

	mockImages.AssertExpectations(t)
}

func TestImageService_ImagesForUser(t *testing.T) {
	mockImages := new(MockImageRepository)
	mockUsers := new(MockUserRepository)
	imageService := services.NewImageService(mockImages, mockUsers, t.TempDir(), nil, zap.NewNop())

	expected := []models.Image{{ID: "1", UserID: "user-123"}}
	mockImages.On("GetByUserID", "user-123").Return(expected, nil).Once()

	images, err := imageService.ImagesForUser("user-123")
	assert.NoError(t, err)
	assert.Equal(t, expected, images)
	mockImages.AssertExpectations(t)
}
