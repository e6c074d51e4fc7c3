package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dealerlist/dealerlist-backend/config"
	"github.com/dealerlist/dealerlist-backend/internal/app/controller"
	"github.com/dealerlist/dealerlist-backend/internal/app/repository"
	"github.com/dealerlist/dealerlist-backend/internal/app/service"
	"github.com/dealerlist/dealerlist-backend/internal/db"
	"github.com/dealerlist/dealerlist-backend/internal/router"
	"github.com/dealerlist/dealerlist-backend/internal/scheduler"
	"github.com/dealerlist/dealerlist-backend/internal/storage"
	"github.com/dealerlist/dealerlist-backend/pkg/logger"
	"github.com/dealerlist/dealerlist-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting DealerList Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Summary cache is optional, the endpoint recomputes when absent
	if cfg.Redis.Enabled() {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Failed to connect to Redis, summary caching disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer redis.Close()
		}
	}

	// Initialize repositories
	dealerRepo := repository.NewDealerRepository(db.GetDB())

	// Initialize services
	dealerService := service.NewDealerService(dealerRepo)
	importService := service.NewImportService(dealerRepo)
	summaryService := service.NewSummaryService(dealerRepo, cfg.Redis.SummaryTTL)

	// Import-file archival is optional
	var archive *storage.S3Storage
	if cfg.S3.ArchiveEnabled() {
		archive = storage.NewS3Storage(
			cfg.S3.Region,
			cfg.S3.Bucket,
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			cfg.S3.BaseURL,
		)
		logger.Info("Import file archival enabled", map[string]interface{}{
			"bucket": cfg.S3.Bucket,
		})
	}

	// Initialize controllers
	dealerController := controller.NewDealerController(dealerService, summaryService)
	importController := controller.NewImportController(importService, archive, cfg.Import.MaxFileSize)
	verificationController := controller.NewVerificationController(dealerService)

	// Start the nightly summary refresh
	summaryScheduler := scheduler.NewSummaryScheduler(summaryService)
	if err := summaryScheduler.Start(); err != nil {
		logger.Warn("Failed to start summary scheduler", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer summaryScheduler.Stop()
	}

	// Setup router
	r := router.NewRouter(
		dealerController,
		importController,
		verificationController,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
