package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"imageshare/internal/config"
	"imageshare/internal/handlers"
	"imageshare/internal/logging"
	"imageshare/internal/middleware"
	"imageshare/internal/models"
	"imageshare/internal/repositories"
	"imageshare/internal/services"
	"imageshare/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Logging ---
	logger, err := logging.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// --- Database ---
	db, err := openDatabase(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(&models.User{}, &models.Image{}, &models.Comment{}, &models.Session{}); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	// --- Upload directory ---
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Fatal("failed to create upload directory", zap.String("dir", cfg.UploadDir), zap.Error(err))
	}

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			logger.Fatal("failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		publisher = mqClient
		logger.Info("RabbitMQ client connected", zap.String("queue", "media_queue"))
	} else {
		logger.Info("RABBITMQ_URL not set, media events disabled")
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	imageRepo := repositories.NewGORMImageRepository(db)
	commentRepo := repositories.NewGORMCommentRepository(db)
	sessionRepo := repositories.NewGORMSessionRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, logger)
	sessionService := services.NewSessionService(sessionRepo, userRepo, cfg.JWTSecret, cfg.SessionTTL, logger)
	imageService := services.NewImageService(imageRepo, userRepo, cfg.UploadDir, publisher, logger)
	commentService := services.NewCommentService(commentRepo, imageRepo, userRepo, publisher, logger)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, sessionService, logger)
	userHandler := handlers.NewUserHandler(authService, logger)
	imageHandler := handlers.NewImageHandler(imageService, commentService, logger)

	// --- Fiber App ---
	app := fiber.New()

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger,
		Fields: []string{"status", "method", "url", "ip", "latency", "error"},
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))

	// Uploaded binaries are served straight from disk.
	app.Static("/uploads", cfg.UploadDir)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "image share",
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
		})
	})

	// Public routes: registration, login, logout, image detail.
	authHandler.RegisterRoutes(app)
	imageHandler.RegisterPublicRoutes(app)

	// Everything that reads the user list or mutates image/comment
	// state requires an established session.
	protected := app.Group("", middleware.AuthRequired(sessionService))
	userHandler.RegisterRoutes(protected)
	imageHandler.RegisterRoutes(protected)

	// --- Media event consumer ---
	if mqClient != nil {
		if err := mqClient.ConsumeMediaEvents(func(msg amqp.Delivery) error {
			logger.Info("media event received",
				zap.String("type", msg.Type),
				zap.ByteString("body", msg.Body),
			)
			return nil
		}); err != nil {
			logger.Warn("failed to start media event consumer", zap.Error(err))
		}
	}

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("starting server", zap.String("port", cfg.AppPort))
		if err := app.Listen(cfg.AppPort); err != nil {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

// openDatabase opens the configured relational store. TranslateError
// lets unique-constraint violations surface as gorm.ErrDuplicatedKey
// regardless of driver.
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{TranslateError: true}
	if cfg.DatabaseDriver == "postgres" {
		return gorm.Open(postgres.Open(cfg.DatabaseDSN), gormCfg)
	}
	return gorm.Open(sqlite.Open(cfg.DatabaseDSN), gormCfg)
}
