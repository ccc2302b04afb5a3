package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/task-assignment-api/internal/models"
	"github.com/yukikurage/task-assignment-api/internal/query"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	task.ID = newID()
	task.DateCreated = now()
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByIDs returns the existing tasks among ids
func (r *GormTaskRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Task, error) {
	tasks := []models.Task{}
	if len(ids) == 0 {
		return tasks, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tasks).Error
	return tasks, err
}

// Replace overwrites all columns of a task
func (r *GormTaskRepository) Replace(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// Delete deletes a task
func (r *GormTaskRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Task{}).Error
}

// List retrieves tasks matching a list query
func (r *GormTaskRepository) List(ctx context.Context, q query.ListQuery) ([]models.Task, error) {
	tasks := []models.Task{}
	err := r.db.WithContext(ctx).Model(&models.Task{}).Scopes(listScope(q)).Find(&tasks).Error
	return tasks, err
}

// Count counts tasks matching a list query
func (r *GormTaskRepository) Count(ctx context.Context, q query.ListQuery) (int64, error) {
	return countMatching(r.db.WithContext(ctx), &models.Task{}, q)
}

// ClaimTasks points every task in taskIDs at the user
func (r *GormTaskRepository) ClaimTasks(ctx context.Context, taskIDs []string, userID, userName string) error {
	if len(taskIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Task{}).
		Where("id IN ?", taskIDs).
		Updates(map[string]any{
			"assigned_user":      userID,
			"assigned_user_name": userName,
		}).Error
}

// ReleaseTasks unassigns the tasks in taskIDs that still point at userID.
// Tasks already claimed by someone else are left alone.
func (r *GormTaskRepository) ReleaseTasks(ctx context.Context, taskIDs []string, userID string) error {
	if len(taskIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Task{}).
		Where("id IN ? AND assigned_user = ?", taskIDs, userID).
		Updates(map[string]any{
			"assigned_user":      "",
			"assigned_user_name": models.UnassignedName,
		}).Error
}

// RenameAssignee rewrites the denormalized assignee name
func (r *GormTaskRepository) RenameAssignee(ctx context.Context, userID, name string) error {
	return r.db.WithContext(ctx).Model(&models.Task{}).
		Where("assigned_user = ?", userID).
		Update("assigned_user_name", name).Error
}
