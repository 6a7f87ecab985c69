package main

import (
	"fmt"
	"os"

	"github.com/pageza/mealmate/backend/config"
	"github.com/pageza/mealmate/backend/internal/database"
	"github.com/pageza/mealmate/backend/internal/logging"
)

// Creates or updates the suggestion journal schema ahead of a deploy.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	switch cfg.JournalDriver {
	case config.JournalSQLite, config.JournalPostgres:
	default:
		log.WithField("driver", cfg.JournalDriver).Info("Journal driver has no schema, nothing to migrate")
		return
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, log); err != nil {
		log.WithError(err).Fatal("Migration failed")
	}
	log.Info("Migrations completed successfully")
}
