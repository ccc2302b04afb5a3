package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yukikurage/task-assignment-api/internal/models"
	"github.com/yukikurage/task-assignment-api/internal/query"
	"github.com/yukikurage/task-assignment-api/internal/repository"
)

// TaskService handles task business logic
type TaskService struct {
	store repository.Store
}

// NewTaskService creates a new TaskService
func NewTaskService(store repository.Store) *TaskService {
	return &TaskService{store: store}
}

// TaskInput is the full client-supplied state of a task. assignedUserName is
// not part of it; it is derived from the assignee.
type TaskInput struct {
	Name         string
	Description  string
	Deadline     *time.Time
	Completed    bool
	AssignedUser string
}

func (in *TaskInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.AssignedUser = strings.TrimSpace(in.AssignedUser)
}

func (in *TaskInput) validate() error {
	if err := in.validateRequired(); err != nil {
		return err
	}
	return in.validateAssignment()
}

func (in *TaskInput) validateRequired() error {
	if in.Name == "" || in.Deadline == nil {
		return ErrTaskNameDeadlineRequired
	}
	return nil
}

// validateAssignment checks the assignee fields. Replace runs it only after the
// task is known to exist.
func (in *TaskInput) validateAssignment() error {
	if in.Completed && in.AssignedUser != "" {
		return ErrCompletedTaskAssignment
	}
	if in.AssignedUser != "" && !validID(in.AssignedUser) {
		return ErrInvalidAssignedUser
	}
	return nil
}

// ListTasks runs a list query
func (s *TaskService) ListTasks(ctx context.Context, q query.ListQuery) ([]models.Task, error) {
	tasks, err := s.store.Tasks().List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CountTasks counts the tasks a list query returns
func (s *TaskService) CountTasks(ctx context.Context, q query.ListQuery) (int64, error) {
	count, err := s.store.Tasks().Count(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

// GetTask returns a task by id
func (s *TaskService) GetTask(ctx context.Context, id string) (*models.Task, error) {
	if !validID(id) {
		return nil, ErrInvalidTaskID
	}
	return findTask(ctx, s.store, id)
}

// CreateTask validates and stores a new task, adding it to the assignee's
// pendingTasks.
func (s *TaskService) CreateTask(ctx context.Context, input TaskInput) (*models.Task, error) {
	input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}

	var task *models.Task
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		assigneeName, err := resolveAssignee(ctx, tx, input.AssignedUser)
		if err != nil {
			return err
		}

		task = &models.Task{
			Name:             input.Name,
			Description:      input.Description,
			Deadline:         input.Deadline.UTC(),
			Completed:        input.Completed,
			AssignedUser:     input.AssignedUser,
			AssignedUserName: assigneeName,
		}
		if err := tx.Tasks().Create(ctx, task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		if task.IsAssigned() && !task.Completed {
			return NewCoordinator(tx).AssignTask(ctx, task.ID, task.AssignedUser)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// ReplaceTask overwrites every field of a task. When the assignee changes the
// task moves from the previous assignee's pendingTasks to the new one's.
func (s *TaskService) ReplaceTask(ctx context.Context, id string, input TaskInput) (*models.Task, error) {
	if !validID(id) {
		return nil, ErrInvalidTaskID
	}
	input.normalize()
	if err := input.validateRequired(); err != nil {
		return nil, err
	}

	var task *models.Task
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		task, err = findTask(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := input.validateAssignment(); err != nil {
			return err
		}

		assigneeName, err := resolveAssignee(ctx, tx, input.AssignedUser)
		if err != nil {
			return err
		}

		coordinator := NewCoordinator(tx)
		previous := task.AssignedUser
		if previous != input.AssignedUser {
			if err := coordinator.Unassign(ctx, task.ID, previous); err != nil {
				return err
			}
		}
		if input.AssignedUser != "" && !input.Completed {
			if err := coordinator.AssignTask(ctx, task.ID, input.AssignedUser); err != nil {
				return err
			}
		}

		task.Name = input.Name
		task.Description = input.Description
		task.Deadline = input.Deadline.UTC()
		task.Completed = input.Completed
		task.AssignedUser = input.AssignedUser
		task.AssignedUserName = assigneeName

		if err := tx.Tasks().Replace(ctx, task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// DeleteTask deletes a task and pulls it from its assignee's pendingTasks
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrInvalidTaskID
	}

	return s.store.Transaction(ctx, func(tx repository.Store) error {
		task, err := findTask(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := NewCoordinator(tx).Unassign(ctx, task.ID, task.AssignedUser); err != nil {
			return err
		}

		if err := tx.Tasks().Delete(ctx, task.ID); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		return nil
	})
}

func findTask(ctx context.Context, store repository.Store, id string) (*models.Task, error) {
	task, err := store.Tasks().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// resolveAssignee checks that the assignee exists and returns the name to
// store in assignedUserName.
func resolveAssignee(ctx context.Context, store repository.Store, userID string) (string, error) {
	if userID == "" {
		return models.UnassignedName, nil
	}

	user, err := store.Users().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrAssignedUserNotFound
		}
		return "", fmt.Errorf("failed to find assigned user: %w", err)
	}
	return user.Name, nil
}
