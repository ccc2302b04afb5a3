package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/task-assignment-api/internal/models"
)

// GormPendingTaskRepository is a GORM implementation of PendingTaskRepository
type GormPendingTaskRepository struct {
	db *gorm.DB
}

// NewPendingTaskRepository creates a new PendingTaskRepository
func NewPendingTaskRepository(db *gorm.DB) PendingTaskRepository {
	return &GormPendingTaskRepository{db: db}
}

// Add appends a task to a user's list. An existing entry is kept as is.
func (r *GormPendingTaskRepository) Add(ctx context.Context, userID, taskID string) error {
	entry := models.PendingTask{
		UserID:    userID,
		TaskID:    taskID,
		CreatedAt: now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "task_id"}},
			DoNothing: true,
		}).
		Create(&entry).Error
}

// RemoveIfAssigned removes the entry only while the task still points at the user
func (r *GormPendingTaskRepository) RemoveIfAssigned(ctx context.Context, userID, taskID string) error {
	db := r.db.WithContext(ctx)
	assigned := db.Model(&models.Task{}).
		Select("1").
		Where("tasks.id = pending_tasks.task_id").
		Where("tasks.assigned_user = ?", userID)

	return db.Where("user_id = ? AND task_id = ?", userID, taskID).
		Where("EXISTS (?)", assigned).
		Delete(&models.PendingTask{}).Error
}

// Remove removes tasks from one user's list
func (r *GormPendingTaskRepository) Remove(ctx context.Context, userID string, taskIDs []string) error {
	if len(taskIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND task_id IN ?", userID, taskIDs).
		Delete(&models.PendingTask{}).Error
}

// RemoveFromOthers removes tasks from every list but exceptUserID's
func (r *GormPendingTaskRepository) RemoveFromOthers(ctx context.Context, taskIDs []string, exceptUserID string) error {
	if len(taskIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("task_id IN ? AND user_id <> ?", taskIDs, exceptUserID).
		Delete(&models.PendingTask{}).Error
}

// RemoveAll clears a user's list
func (r *GormPendingTaskRepository) RemoveAll(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.PendingTask{}).Error
}

// ListTaskIDs returns the user's list in insertion order
func (r *GormPendingTaskRepository) ListTaskIDs(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).Model(&models.PendingTask{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("task_id", &ids).Error
	return ids, err
}
