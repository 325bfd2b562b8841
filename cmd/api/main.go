package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sefazor/photomap-backend/internal/config"
	"github.com/sefazor/photomap-backend/internal/handler"
	"github.com/sefazor/photomap-backend/internal/middleware"
	"github.com/sefazor/photomap-backend/internal/repository"
	"github.com/sefazor/photomap-backend/internal/service"
	"github.com/sefazor/photomap-backend/pkg/database"
	"github.com/sefazor/photomap-backend/pkg/logger"
	"github.com/sefazor/photomap-backend/pkg/metadata"
	"github.com/sefazor/photomap-backend/pkg/remote"
	"github.com/sefazor/photomap-backend/pkg/utils"
)

func main() {
	// .env is optional outside development
	_ = godotenv.Load()

	log := logger.New()
	defer log.Sync()

	cfg := config.LoadConfig()

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}

	// Repositories
	recordRepo := repository.NewPhotoRecordRepository(db)

	// Remote stores: private per-user mirror (read path only) and the shared
	// public store.
	mirrorStore, err := remote.NewS3Store(remote.S3Config{
		AccountID:       cfg.S3.AccountID,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
		Bucket:          cfg.S3.MirrorBucket,
		Prefix:          cfg.S3.MirrorPrefix,
	})
	if err != nil {
		log.Fatal("failed to initialize mirror store", zap.Error(err))
	}
	publicStore, err := remote.NewS3Store(remote.S3Config{
		AccountID:       cfg.S3.AccountID,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
		Bucket:          cfg.S3.PublicBucket,
		Prefix:          cfg.S3.PublicPrefix,
	})
	if err != nil {
		log.Fatal("failed to initialize public store", zap.Error(err))
	}

	// Services
	extractor := metadata.NewExifExtractor()
	importService := service.NewImportService(recordRepo, extractor, log)
	catalogService := service.NewCatalogService(recordRepo)
	publishService := service.NewPublishService(recordRepo, publicStore, cfg.PublishBatchSize, log)
	reconcileService := service.NewReconcileService(recordRepo, mirrorStore, publicStore, cfg.PublishBatchSize, log)

	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(validator)
	photoHandler := handler.NewPhotoHandler(importService, catalogService, validator)
	publishHandler := handler.NewPublishHandler(publishService, reconcileService)

	// Router
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, DELETE",
	}))
	app.Use(fiberlogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	// Public routes
	api.Post("/auth/token", authHandler.Token)
	api.Get("/photos", photoHandler.ListRecords)
	api.Get("/photos/count", photoHandler.CountRecords)
	api.Get("/photos/sample", photoHandler.SampleRecords)

	// Protected routes
	api.Use(middleware.AuthMiddleware())
	{
		api.Post("/photos", photoHandler.ImportMetadata)
		api.Post("/photos/import", photoHandler.ImportBatch)
		api.Post("/photos/upload", photoHandler.UploadPhotos)
		api.Delete("/photos", photoHandler.DeleteRecords)

		api.Post("/publish", publishHandler.Publish)
		api.Get("/reconcile", publishHandler.Reconcile)
		api.Delete("/public", publishHandler.DeletePublic)
	}

	log.Info("starting server", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
