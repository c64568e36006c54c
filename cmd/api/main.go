package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ruangkarya/ruangkarya-api/internal/config"
	"github.com/ruangkarya/ruangkarya-api/internal/database"
	"github.com/ruangkarya/ruangkarya-api/internal/handler"
	"github.com/ruangkarya/ruangkarya-api/internal/middleware"
	"github.com/ruangkarya/ruangkarya-api/internal/models"
	"github.com/ruangkarya/ruangkarya-api/internal/repository"
	"github.com/ruangkarya/ruangkarya-api/internal/router"
	"github.com/ruangkarya/ruangkarya-api/internal/service"
	cloud "github.com/ruangkarya/ruangkarya-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.Evaluation{},
		&models.GalleryItem{},
		&models.LearningResource{},
		&models.StoreItem{},
		&models.ChatMessage{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSURL, cfg.AppName)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	chatRepo := repository.NewChatRepository(db)

	progressService := service.NewProgressService(evaluationRepo, redisClient, cfg.ProgressCacheTTL, logger)
	evaluationService := service.NewEvaluationService(evaluationRepo, progressService, validate, natsConn, logger)
	projectService := service.NewProjectService(projectRepo, progressService, validate, logger)
	taskService := service.NewTaskService(taskRepo, projectRepo, validate, logger)
	galleryService := service.NewGalleryService(galleryRepo, validate, logger)
	resourceService := service.NewResourceService(resourceRepo, validate, logger)
	storeService := service.NewStoreService(storeRepo, validate, logger)
	userService := service.NewUserService(userRepo, validate, logger)
	dashboardService := service.NewDashboardService(projectRepo, taskRepo, evaluationRepo, progressService, redisClient, cfg.DashboardCacheTTL, logger)
	chatService := service.NewChatService(chatRepo, redisClient, natsConn, validate, cfg.ChatHistoryLimit, logger)

	rootCtx, stopChat := context.WithCancel(context.Background())
	defer stopChat()
	chatService.Start(rootCtx)

	deps := router.Dependencies{
		ProjectHandler:    handler.NewProjectHandler(projectService, logger),
		TaskHandler:       handler.NewTaskHandler(taskService, logger),
		EvaluationHandler: handler.NewEvaluationHandler(evaluationService, logger),
		ChatHandler:       handler.NewChatHandler(chatService, logger),
		GalleryHandler:    handler.NewGalleryHandler(galleryService, logger),
		ResourceHandler:   handler.NewResourceHandler(resourceService, logger),
		StoreHandler:      handler.NewStoreHandler(storeService, logger),
		DashboardHandler:  handler.NewDashboardHandler(dashboardService, logger),
		AdminUserHandler:  handler.NewAdminUserHandler(userService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	}

	// Uploads are wired only when Cloudinary credentials are configured so the
	// rest of the API still runs in environments without an asset store.
	if cfg.CloudinaryCloudName != "" {
		uploader, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		uploadService := service.NewUploadService(uploader, cfg.UploadMaxSizeMB, logger)
		deps.UploadHandler = handler.NewUploadHandler(uploadService, logger)
	} else {
		logger.Warn().Msg("cloudinary not configured, upload routes disabled")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, deps)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
