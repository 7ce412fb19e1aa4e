package repositories

import (
	"fmt"

	"imageshare/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{
		db: db,
	}
}

// Create persists a new comment row.
func (r *GORMCommentRepository) Create(comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// GetByImageID retrieves the comments on an image in chronological order.
func (r *GORMCommentRepository) GetByImageID(imageID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Order("created_at ASC").Find(&comments, "image_id = ?", imageID).Error; err != nil {
		return nil, fmt.Errorf("failed to get comments for image %s: %w", imageID, err)
	}
	return comments, nil
}
