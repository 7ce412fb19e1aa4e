package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"imageshare/internal/models"
	"imageshare/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CommentService is the comment ledger: comments are created once,
// attached to an existing image and user, and never mutated.
type CommentService struct {
	commentRepo repositories.CommentRepository
	imageRepo   repositories.ImageRepository
	userRepo    repositories.UserRepository
	publisher   EventPublisher
	logger      *zap.Logger
}

// NewCommentService creates a new CommentService. publisher may be nil to
// disable event publication.
func NewCommentService(commentRepo repositories.CommentRepository, imageRepo repositories.ImageRepository, userRepo repositories.UserRepository, publisher EventPublisher, logger *zap.Logger) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		imageRepo:   imageRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// AddComment attaches a comment to an image. The image and author must
// exist; empty content fails with a ValidationError.
func (s *CommentService) AddComment(authorID, imageID, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, NewValidationError("content", "must not be empty")
	}

	author, err := s.userRepo.GetByID(authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("author %s: %w", authorID, ErrNotFound)
		}
		return nil, err
	}
	image, err := s.imageRepo.GetByID(imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("image %s: %w", imageID, ErrNotFound)
		}
		return nil, err
	}

	comment := &models.Comment{
		ID:        uuid.New().String(),
		UserID:    author.ID,
		ImageID:   image.ID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to persist comment: %w", err)
	}

	publishEvent(s.publisher, s.logger, "comment.created", map[string]interface{}{
		"commentID": comment.ID,
		"imageID":   comment.ImageID,
		"userID":    comment.UserID,
	})

	s.logger.Info("comment added",
		zap.String("comment_id", comment.ID),
		zap.String("image_id", comment.ImageID),
		zap.String("user_id", comment.UserID),
	)
	return comment, nil
}

// CommentsForImage retrieves the comments on an image in chronological order.
func (s *CommentService) CommentsForImage(imageID string) ([]models.Comment, error) {
	return s.commentRepo.GetByImageID(imageID)
}
