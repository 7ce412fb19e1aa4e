package repositories

import (
	"sort"
	"sync"

	"imageshare/internal/models"

	"github.com/google/uuid"
)

// MockCommentRepository is an in-memory implementation of CommentRepository.
type MockCommentRepository struct {
	comments map[string]models.Comment
	mu       sync.RWMutex
}

// NewMockCommentRepository creates a new instance of MockCommentRepository.
func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		comments: make(map[string]models.Comment),
	}
}

// Create adds a new comment.
func (r *MockCommentRepository) Create(comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	r.comments[comment.ID] = *comment
	return nil
}

// GetByImageID returns the comments on an image in chronological order.
func (r *MockCommentRepository) GetByImageID(imageID string) ([]models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var commentList []models.Comment
	for _, cm := range r.comments {
		if cm.ImageID == imageID {
			commentList = append(commentList, cm)
		}
	}
	sort.Slice(commentList, func(i, j int) bool {
		return commentList[i].CreatedAt.Before(commentList[j].CreatedAt)
	})
	return commentList, nil
}
