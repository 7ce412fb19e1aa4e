package repositories

import "imageshare/internal/models"

// CommentRepository defines the interface for comment data access.
// GetByImageID returns comments in chronological order.
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByImageID(imageID string) ([]models.Comment, error)
}
