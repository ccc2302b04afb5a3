package database

import (
	"fmt"

	"github.com/yukikurage/task-assignment-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the tasks, users and pending_tasks tables and
// their indexes.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.PendingTask{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
