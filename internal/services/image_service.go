package services

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"imageshare/internal/models"
	"imageshare/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// acceptedImageTypes are the content types an upload may sniff as.
var acceptedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ImageService is the media store: it persists uploaded binaries to the
// upload directory and their metadata to the image repository.
type ImageService struct {
	imageRepo repositories.ImageRepository
	userRepo  repositories.UserRepository
	uploadDir string
	publisher EventPublisher
	logger    *zap.Logger
}

// NewImageService creates a new ImageService. publisher may be nil to
// disable event publication.
func NewImageService(imageRepo repositories.ImageRepository, userRepo repositories.UserRepository, uploadDir string, publisher EventPublisher, logger *zap.Logger) *ImageService {
	return &ImageService{
		imageRepo: imageRepo,
		userRepo:  userRepo,
		uploadDir: uploadDir,
		publisher: publisher,
		logger:    logger,
	}
}

// ImageUpload carries one inbound upload.
type ImageUpload struct {
	Filename    string
	Payload     io.Reader
	Title       string
	Description string
}

// Upload stores the payload on disk and its metadata in the repository,
// then publishes an image.uploaded event. The content type is sniffed
// from the payload itself; non-image payloads fail with a ValidationError.
func (s *ImageService) Upload(ownerID string, up ImageUpload) (*models.Image, error) {
	owner, err := s.userRepo.GetByID(ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("owner %s: %w", ownerID, ErrNotFound)
		}
		return nil, err
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(up.Payload, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("failed to read upload payload: %w", err)
	}
	if n == 0 {
		return nil, NewValidationError("image", "payload is empty")
	}
	contentType := http.DetectContentType(head[:n])
	if !acceptedImageTypes[contentType] {
		return nil, NewValidationError("image", fmt.Sprintf("unsupported content type %s", contentType))
	}

	id := uuid.New().String()
	// filepath.Base strips any directory components a client smuggles
	// into the filename.
	storedName := id + "_" + filepath.Base(up.Filename)
	storedPath := filepath.Join(s.uploadDir, storedName)

	dst, err := os.Create(storedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}
	if _, err := dst.Write(head[:n]); err != nil {
		dst.Close()
		os.Remove(storedPath)
		return nil, fmt.Errorf("failed to write upload file: %w", err)
	}
	if _, err := io.Copy(dst, up.Payload); err != nil {
		dst.Close()
		os.Remove(storedPath)
		return nil, fmt.Errorf("failed to write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(storedPath)
		return nil, fmt.Errorf("failed to close upload file: %w", err)
	}

	image := &models.Image{
		ID:          id,
		UserID:      owner.ID,
		ImagePath:   storedPath,
		Title:       up.Title,
		Description: up.Description,
		CreatedAt:   time.Now(),
	}
	if err := s.imageRepo.Create(image); err != nil {
		os.Remove(storedPath)
		return nil, fmt.Errorf("failed to persist image metadata: %w", err)
	}

	publishEvent(s.publisher, s.logger, "image.uploaded", map[string]interface{}{
		"imageID":     image.ID,
		"userID":      image.UserID,
		"imagePath":   image.ImagePath,
		"contentType": contentType,
	})

	s.logger.Info("image uploaded",
		zap.String("image_id", image.ID),
		zap.String("user_id", image.UserID),
		zap.String("content_type", contentType),
	)
	return image, nil
}

// ListImages retrieves all images, newest first.
func (s *ImageService) ListImages() ([]models.Image, error) {
	return s.imageRepo.GetAll()
}

// GetImage retrieves a single image by its ID.
func (s *ImageService) GetImage(id string) (*models.Image, error) {
	image, err := s.imageRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("image %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return image, nil
}

// ImagesForUser retrieves the images owned by a user, newest first.
func (s *ImageService) ImagesForUser(userID string) ([]models.Image, error) {
	return s.imageRepo.GetByUserID(userID)
}
