package services

import "errors"

// Error kinds. Every client-facing error below matches exactly one of them
// through errors.Is, and its text is the message shown to the client.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

var (
	ErrTaskNameDeadlineRequired = validationError("Task must have name and deadline")
	ErrCompletedTaskAssignment  = validationError("Cannot assign a completed task")
	ErrInvalidTaskID            = validationError("Invalid task id")
	ErrInvalidAssignedUser      = validationError("Invalid assignedUser id")
	ErrTaskNotFound             = notFoundError("Task not found")
	ErrAssignedUserNotFound     = notFoundError("Assigned user does not exist")

	ErrUserNameEmailRequired = validationError("User must have name and email")
	ErrInvalidUserID         = validationError("Invalid user id")
	ErrInvalidPendingTaskID  = validationError("Invalid task id in pendingTasks")
	ErrEmailTaken            = validationError("Email already in use")
	ErrUserNotFound          = notFoundError("User not found")
	ErrTasksNotExist         = notFoundError("One or more tasks do not exist")
)

type kindError struct {
	kind    error
	message string
}

func (e *kindError) Error() string {
	return e.message
}

func (e *kindError) Is(target error) bool {
	return target == e.kind
}

func validationError(message string) error {
	return &kindError{kind: ErrValidation, message: message}
}

func notFoundError(message string) error {
	return &kindError{kind: ErrNotFound, message: message}
}
