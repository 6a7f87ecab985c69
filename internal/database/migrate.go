package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/mealmate/backend/internal/model"
)

// RunMigrations creates or updates the journal tables
func RunMigrations(db *gorm.DB, log logrus.FieldLogger) error {
	log.Infof("Running auto-migration for %s", db.Dialector.Name())
	if err := db.AutoMigrate(&model.Suggestion{}); err != nil {
		return fmt.Errorf("failed to migrate suggestions table: %w", err)
	}
	return nil
}
