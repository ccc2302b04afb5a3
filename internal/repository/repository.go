package repository

import (
	"context"

	"github.com/yukikurage/task-assignment-api/internal/models"
	"github.com/yukikurage/task-assignment-api/internal/query"
)

// Store groups the repositories that share one database session.
type Store interface {
	Tasks() TaskRepository
	Users() UserRepository
	PendingTasks() PendingTaskRepository

	// Transaction runs fn against a Store bound to a new transaction. Calling it
	// on a Store that is already transactional opens a savepoint.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create assigns an id and creation date and inserts the task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id string) (*models.Task, error)

	// FindByIDs returns the tasks among ids that exist
	FindByIDs(ctx context.Context, ids []string) ([]models.Task, error)

	// Replace overwrites every field of an existing task
	Replace(ctx context.Context, task *models.Task) error

	// Delete removes a task
	Delete(ctx context.Context, id string) error

	// List runs a parsed list query
	List(ctx context.Context, q query.ListQuery) ([]models.Task, error)

	// Count counts the tasks a list query would return
	Count(ctx context.Context, q query.ListQuery) (int64, error)

	// ClaimTasks points the tasks at a user
	ClaimTasks(ctx context.Context, taskIDs []string, userID, userName string) error

	// ReleaseTasks unassigns the tasks that still point at userID
	ReleaseTasks(ctx context.Context, taskIDs []string, userID string) error

	// RenameAssignee refreshes assignedUserName on every task of a user
	RenameAssignee(ctx context.Context, userID, name string) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create assigns an id and creation date and inserts the user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID with pending tasks preloaded
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Update writes name and email
	Update(ctx context.Context, user *models.User) error

	// Delete removes a user
	Delete(ctx context.Context, id string) error

	// List runs a parsed list query, preloading pending tasks
	List(ctx context.Context, q query.ListQuery) ([]models.User, error)

	// Count counts the users a list query would return
	Count(ctx context.Context, q query.ListQuery) (int64, error)
}

// PendingTaskRepository defines the interface for the users' pendingTasks index
type PendingTaskRepository interface {
	// Add appends taskID to the user's list unless already present
	Add(ctx context.Context, userID, taskID string) error

	// RemoveIfAssigned removes taskID from the user's list only while the task
	// still points at the user
	RemoveIfAssigned(ctx context.Context, userID, taskID string) error

	// Remove removes task ids from one user's list
	Remove(ctx context.Context, userID string, taskIDs []string) error

	// RemoveFromOthers removes task ids from every list except exceptUserID's
	RemoveFromOthers(ctx context.Context, taskIDs []string, exceptUserID string) error

	// RemoveAll clears a user's list
	RemoveAll(ctx context.Context, userID string) error

	// ListTaskIDs returns a user's list in insertion order
	ListTaskIDs(ctx context.Context, userID string) ([]string, error)
}
