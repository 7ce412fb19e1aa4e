package handlers

import (
	"errors"

	"imageshare/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ImageHandler handles HTTP requests for images and their comments.
type ImageHandler struct {
	imageService   *services.ImageService
	commentService *services.CommentService
	validate       *validator.Validate
	logger         *zap.Logger
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(imageService *services.ImageService, commentService *services.CommentService, logger *zap.Logger) *ImageHandler {
	return &ImageHandler{
		imageService:   imageService,
		commentService: commentService,
		validate:       validator.New(),
		logger:         logger,
	}
}

// RegisterRoutes registers the routes that require an established session.
func (h *ImageHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/images", h.HandleListImages)
	router.Post("/images", h.HandleUploadImage)
	router.Post("/images/:id/comments", h.HandleAddComment)
}

// RegisterPublicRoutes registers the routes open to anonymous visitors.
func (h *ImageHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/images/:id", h.HandleGetImage)
}

// HandleListImages lists all images, newest first.
func (h *ImageHandler) HandleListImages(c *fiber.Ctx) error {
	images, err := h.imageService.ListImages()
	if err != nil {
		h.logger.Error("failed to list images", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve images",
		})
	}
	return c.JSON(images)
}

// HandleUploadImage accepts a multipart upload: an "image" file plus
// optional title and description fields.
func (h *ImageHandler) HandleUploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  map[string]string{"image": "an image file is required"},
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("failed to open uploaded file", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not read upload",
		})
	}
	defer file.Close()

	ownerID, _ := c.Locals("user_id").(string)
	image, err := h.imageService.Upload(ownerID, services.ImageUpload{
		Filename:    fileHeader.Filename,
		Payload:     file,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
	})
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  verr.Fields,
			})
		}
		h.logger.Error("failed to upload image", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not upload image",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(image)
}

// HandleGetImage shows a single image together with its comments.
func (h *ImageHandler) HandleGetImage(c *fiber.Ctx) error {
	imageID := c.Params("id")
	image, err := h.imageService.GetImage(imageID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Image not found",
			})
		}
		h.logger.Error("failed to get image", zap.String("image_id", imageID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve image",
		})
	}

	comments, err := h.commentService.CommentsForImage(imageID)
	if err != nil {
		h.logger.Error("failed to get comments", zap.String("image_id", imageID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve comments",
		})
	}

	return c.JSON(fiber.Map{
		"image":    image,
		"comments": comments,
	})
}

// CommentRequest is the comment form.
type CommentRequest struct {
	Content string `json:"content" form:"content" validate:"required,min=1,max=500"`
}

// HandleAddComment attaches a comment to an image.
func (h *ImageHandler) HandleAddComment(c *fiber.Ctx) error {
	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Debug("failed to parse comment request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if verr := checkStruct(h.validate, req); verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
	}

	authorID, _ := c.Locals("user_id").(string)
	comment, err := h.commentService.AddComment(authorID, c.Params("id"), req.Content)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Image not found",
			})
		}
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  verr.Fields,
			})
		}
		h.logger.Error("failed to add comment", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add comment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}
