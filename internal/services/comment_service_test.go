package services_test

import (
	"fmt"
	"testing"

	"imageshare/internal/models"
	"imageshare/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MockCommentRepository is a mock implementation of repositories.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByImageID(imageID string) ([]models.Comment, error) {
	args := m.Called(imageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func TestCommentService_AddComment(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockImages := new(MockImageRepository)
	mockUsers := new(MockUserRepository)
	mockPublisher := new(MockEventPublisher)
	commentService := services.NewCommentService(mockComments, mockImages, mockUsers, mockPublisher, zap.NewNop())

	author := &models.User{ID: "user-123", Username: "alice"}
	image := &models.Image{ID: "img-1", UserID: "user-456"}

	mockUsers.On("GetByID", author.ID).Return(author, nil).Once()
	mockImages.On("GetByID", image.ID).Return(image, nil).Once()
	mockComments.On("Create", mock.AnythingOfType("*models.Comment")).Return(nil).Once()
	mockPublisher.On("Publish", "comment.created", mock.Anything).Return(nil).Once()

	comment, err := commentService.AddComment(author.ID, image.ID, "nice!")
	assert.NoError(t, err)
	assert.NotNil(t, comment)
	assert.Equal(t, author.ID, comment.UserID)
	assert.Equal(t, image.ID, comment.ImageID)
	assert.Equal(t, "nice!", comment.Content)

	mockComments.AssertExpectations(t)
	mockImages.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestCommentService_AddCommentRejectsEmptyContent(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockImages := new(MockImageRepository)
	mockUsers := new(MockUserRepository)
	commentService := services.NewCommentService(mockComments, mockImages, mockUsers, nil, zap.NewNop())

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := commentService.AddComment("user-123", "img-1", content)
		var verr *services.ValidationError
		assert.ErrorAs(t, err, &verr)
	}
	mockComments.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCommentService_AddCommentUnknownImage(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockImages := new(MockImageRepository)
	mockUsers := new(MockUserRepository)
	commentService := services.NewCommentService(mockComments, mockImages, mockUsers, nil, zap.NewNop())

	author := &models.User{ID: "user-123", Username: "alice"}
	mockUsers.On("GetByID", author.ID).Return(author, nil).Once()
	mockImages.On("GetByID", "ghost").Return(nil, fmt.Errorf("image with ID ghost not found: %w", gorm.ErrRecordNotFound)).Once()

	_, err := commentService.AddComment(author.ID, "ghost", "nice!")
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockComments.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCommentService_CommentsForImage(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockImages := new(MockImageRepository)
	mockUsers := new(MockUserRepository)
	commentService := services.NewCommentService(mockComments, mockImages, mockUsers, nil, zap.NewNop())

	expected := []models.Comment{
		{ID: "1", ImageID: "img-1", Content: "first"},
		{ID: "2", ImageID: "img-1", Content: "second"},
	}
	mockComments.On("GetByImageID", "img-1").Return(expected, nil).Once()

	comments, err := commentService.CommentsForImage("img-1")
	assert.NoError(t, err)
	assert.Equal(t, expected, comments)
	mockComments.AssertExpectations(t)
}
