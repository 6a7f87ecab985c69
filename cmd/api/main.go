package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/mealmate/backend/config"
	"github.com/pageza/mealmate/backend/internal/database"
	"github.com/pageza/mealmate/backend/internal/logging"
	"github.com/pageza/mealmate/backend/internal/router"
	"github.com/pageza/mealmate/backend/internal/server"
	"github.com/pageza/mealmate/backend/internal/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// The generator stays nil when the key is missing so the service runs degraded
	var generator service.Generator
	gemini, err := service.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiAPIURL, cfg.GeminiTimeout, log)
	if err != nil {
		log.WithError(err).Warn("Gemini client not configured, suggestions are unavailable")
	} else {
		generator = gemini
		log.WithField("model", cfg.GeminiModel).Info("Gemini client configured")
	}

	journal, closeJournal, err := openJournal(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open suggestion journal")
	}
	defer closeJournal()

	archiver, err := openArchiver(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to configure recipe archive")
	}

	suggestions := service.NewSuggestionService(generator, cfg.GeminiModel, journal, archiver, log)
	srv := server.New(cfg.Addr(), router.SetupRouter(suggestions, cfg.CORSAllowedOrigins, log), cfg.GeminiTimeout, log)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.WithError(err).Fatal("Server error")
		}
		return
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received signal")
	}

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.GeminiTimeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server shutdown error")
		return
	}
	log.Info("Server stopped")
}

// openJournal connects the configured journal backend. The returned journal is
// nil when journaling is disabled.
func openJournal(cfg *config.Config, log logrus.FieldLogger) (service.Journal, func(), error) {
	switch cfg.JournalDriver {
	case config.JournalSQLite, config.JournalPostgres:
		db, err := database.New(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunMigrations(db, log); err != nil {
			_ = database.Close(db)
			return nil, nil, err
		}
		log.WithField("driver", cfg.JournalDriver).Info("Suggestion journal enabled")
		return service.NewGormJournal(db), func() { _ = database.Close(db) }, nil

	case config.JournalRedis:
		client, err := database.NewRedisClient(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("driver", cfg.JournalDriver).Info("Suggestion journal enabled")
		return service.NewRedisJournal(client, cfg.JournalTTL), func() { _ = client.Close() }, nil

	default:
		return nil, func() {}, nil
	}
}

// openArchiver returns nil when no archive bucket is configured
func openArchiver(cfg *config.Config, log logrus.FieldLogger) (service.Archiver, error) {
	if cfg.S3BucketName == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s3Cfg, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.WithField("bucket", s3Cfg.BucketName).Info("Recipe archive enabled")
	return service.NewS3Archiver(s3Cfg.Client, s3Cfg.BucketName, s3Cfg.Prefix), nil
}
