package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/wishlane/wishlane/internal/config"
	"github.com/wishlane/wishlane/internal/database"
	"github.com/wishlane/wishlane/internal/handlers"
	"github.com/wishlane/wishlane/internal/middleware"
	"github.com/wishlane/wishlane/internal/repositories"
	"github.com/wishlane/wishlane/internal/routes"
	"github.com/wishlane/wishlane/internal/services"
	"github.com/wishlane/wishlane/internal/storage"
	"github.com/wishlane/wishlane/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize logger
	logger.Init()
	defer logger.Sync()

	logger.Info("Starting wishlane server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	// Validate production security settings
	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			logger.Fatal("Production security validation failed", err)
		}
		logger.Info("Production security validation passed")
	}

	// Connect to database with TLS
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}

	// Run GORM auto-migration
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Blob storage for avatars and item images
	blobs, err := storage.NewS3Store(cfg.S3Bucket, cfg.S3Region, cfg.S3BaseURL)
	if err != nil {
		logger.Fatal("Failed to initialize blob storage", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	friendRepo := repositories.NewFriendRepository(db)
	wishlistRepo := repositories.NewWishlistRepository(db)
	itemRepo := repositories.NewItemRepository(db)

	// Services
	friendSvc := services.NewFriendService(friendRepo, userRepo)
	policySvc := services.NewPolicyService(friendSvc)
	userSvc := services.NewUserService(userRepo, blobs, cfg.JWTSecret)
	wishlistSvc := services.NewWishlistService(wishlistRepo, userRepo, policySvc)
	itemSvc := services.NewItemService(itemRepo, wishlistRepo, policySvc, blobs)
	exportSvc := services.NewExportService(wishlistSvc, itemSvc)

	manager := handlers.NewHandlerManager(cfg, userSvc, friendSvc, wishlistSvc, itemSvc, exportSvc)
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerUser, cfg.RateLimitPerIP, time.Minute)

	app := fiber.New(fiber.Config{
		AppName:   "Wishlane API v1.0",
		BodyLimit: int(cfg.UploadMaxSize) + 1024*1024,
	})

	app.Use(fiberlogger.New())
	app.Use(cors.New())

	routes.SetupRoutes(app, manager, limiter)

	go func() {
		if err := app.Listen(":" + cfg.AppPort); err != nil {
			logger.Fatal("Server stopped", err)
		}
	}()

	logger.Info("Server started", "port", cfg.AppPort, "env", cfg.AppEnv)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")
	if err := app.Shutdown(); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
