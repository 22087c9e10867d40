package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive-api/internal/domain"
)

// TaskFilter narrows task queries. Nil fields are ignored. OwnerID is set
// by the access layer for owner-scoped requesters and left nil for admins;
// it is never taken from client input.
type TaskFilter struct {
	OwnerID  *uuid.UUID
	Status   *domain.TaskStatus
	Priority *domain.TaskPriority
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if the owner does not exist (foreign key
	// violation) or the task fails validation.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// List returns tasks matching the filter, ordered by creation time
	// descending (newest first). The ordering is part of the API contract:
	// pagination correctness depends on the stable sort key.
	List(ctx context.Context, filter TaskFilter, limit, offset int) ([]*domain.Task, error)

	// Count returns the total number of tasks matching the filter,
	// ignoring pagination.
	Count(ctx context.Context, filter TaskFilter) (int64, error)

	// Update persists the full current state of the task. The caller is
	// responsible for having applied the patch semantics beforehand.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID. Permanent; there is
	// no soft delete. Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
