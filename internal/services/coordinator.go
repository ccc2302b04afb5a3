package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/task-assignment-api/internal/repository"
)

// Coordinator keeps Task.assignedUser and User.pendingTasks pointing at each
// other. The task row is authoritative and pendingTasks is the derived index.
// Every change to either side goes through one of these methods, on the store
// of the surrounding transaction.
type Coordinator struct {
	store repository.Store
}

// NewCoordinator creates a Coordinator bound to store
func NewCoordinator(store repository.Store) *Coordinator {
	return &Coordinator{store: store}
}

// AssignTask adds taskID to the user's pendingTasks. Adding twice is a no-op.
func (c *Coordinator) AssignTask(ctx context.Context, taskID, userID string) error {
	if userID == "" {
		return nil
	}
	if err := c.store.PendingTasks().Add(ctx, userID, taskID); err != nil {
		return fmt.Errorf("failed to assign task: %w", err)
	}
	return nil
}

// Unassign removes taskID from the user's pendingTasks while the task still
// points at that user. A newer assignment made in between is left intact.
func (c *Coordinator) Unassign(ctx context.Context, taskID, userID string) error {
	if userID == "" {
		return nil
	}
	if err := c.store.PendingTasks().RemoveIfAssigned(ctx, userID, taskID); err != nil {
		return fmt.Errorf("failed to unassign task: %w", err)
	}
	return nil
}

// StripFromOthers removes taskIDs from every pendingTasks list but exceptUserID's
func (c *Coordinator) StripFromOthers(ctx context.Context, taskIDs []string, exceptUserID string) error {
	if err := c.store.PendingTasks().RemoveFromOthers(ctx, taskIDs, exceptUserID); err != nil {
		return fmt.Errorf("failed to strip tasks from other users: %w", err)
	}
	return nil
}

// ClaimTasks points the tasks at the user
func (c *Coordinator) ClaimTasks(ctx context.Context, taskIDs []string, userID, userName string) error {
	if err := c.store.Tasks().ClaimTasks(ctx, taskIDs, userID, userName); err != nil {
		return fmt.Errorf("failed to claim tasks: %w", err)
	}
	return nil
}

// ReleaseTasks unassigns the tasks that still point at userID
func (c *Coordinator) ReleaseTasks(ctx context.Context, taskIDs []string, userID string) error {
	if err := c.store.Tasks().ReleaseTasks(ctx, taskIDs, userID); err != nil {
		return fmt.Errorf("failed to release tasks: %w", err)
	}
	return nil
}

// RenameAssignee refreshes assignedUserName on the user's tasks
func (c *Coordinator) RenameAssignee(ctx context.Context, userID, name string) error {
	if err := c.store.Tasks().RenameAssignee(ctx, userID, name); err != nil {
		return fmt.Errorf("failed to rename assignee: %w", err)
	}
	return nil
}
