package service

import (
	"errors"
	"fmt"
)

// Service-level errors.
var (
	// ErrTaskNotOwned is returned when an authenticated requester is
	// neither the task's owner nor an admin. It maps to 403 at the API
	// boundary. Existence checks run first, so unknown IDs still surface
	// as not-found rather than forbidden.
	ErrTaskNotOwned = errors.New("task not owned by requester")
)

// TaskServiceError is a custom error type for task service errors.
type TaskServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
func NewTaskServiceError(operation, message string, err error) *TaskServiceError {
	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
