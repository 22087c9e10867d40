package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/platform/logger"
	"github.com/taskhive/taskhive-api/internal/store"
)

// Pagination defaults for task listing.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListParams carries the client-controllable inputs to List. The owner
// filter is deliberately absent: it is derived from the requester's scope
// and never taken from the client.
type ListParams struct {
	Status   *domain.TaskStatus
	Priority *domain.TaskPriority
	Page     int
	Limit    int
}

// CreateTaskInput carries the fields a client may set at creation. Owner is
// absent for the same reason as in ListParams.
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     *time.Time
}

// TaskPage is one page of list results along with the pagination metadata
// the response envelope carries.
type TaskPage struct {
	Tasks      []*domain.Task
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// TaskService is the authorization-scoped access layer for tasks. Every
// operation takes the requester identity; point operations check existence
// before ownership, so an unknown ID reports not-found regardless of role.
type TaskService interface {
	// List returns the requester-visible page of tasks matching the
	// filters, newest first.
	List(ctx context.Context, ident Identity, params ListParams) (*TaskPage, error)

	// Get retrieves a single task. Returns store.ErrTaskNotFound if the ID
	// is unknown, ErrTaskNotOwned if the requester may not see it.
	Get(ctx context.Context, ident Identity, id uuid.UUID) (*domain.Task, error)

	// Create persists a new task owned by the requester.
	Create(ctx context.Context, ident Identity, input CreateTaskInput) (*domain.Task, error)

	// Update applies a partial update to a task the requester may mutate.
	Update(ctx context.Context, ident Identity, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)

	// Delete permanently removes a task the requester may mutate.
	Delete(ctx context.Context, ident Identity, id uuid.UUID) error
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if the task store is nil.
func NewTaskService(taskStore store.TaskStore, log *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		logger:    log.With(slog.String("component", "task_service")),
	}, nil
}

// List implements TaskService.List
func (s *taskServiceImpl) List(
	ctx context.Context,
	ident Identity,
	params ListParams,
) (*TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if params.Status != nil && !domain.IsValidTaskStatus(*params.Status) {
		return nil, domain.NewValidationError("status", "must be one of pending, in-progress, completed", domain.ErrInvalidTaskStatus)
	}
	if params.Priority != nil && !domain.IsValidTaskPriority(*params.Priority) {
		return nil, domain.NewValidationError("priority", "must be one of low, medium, high", domain.ErrInvalidTaskPriority)
	}

	page := params.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := params.Limit
	if limit < 1 {
		limit = DefaultLimit
	}

	filter := ScopeFor(ident).Restrict(store.TaskFilter{
		Status:   params.Status,
		Priority: params.Priority,
	})

	total, err := s.taskStore.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count tasks", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("list", "failed to count tasks", err)
	}

	tasks, err := s.taskStore.List(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("list", "failed to list tasks", err)
	}

	return &TaskPage{
		Tasks:      tasks,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// Get implements TaskService.Get
func (s *taskServiceImpl) Get(
	ctx context.Context,
	ident Identity,
	id uuid.UUID,
) (*domain.Task, error) {
	return s.fetchAuthorized(ctx, ident, id)
}

// Create implements TaskService.Create
// The owner is always the requester; there is no way to create a task on
// behalf of another user.
func (s *taskServiceImpl) Create(
	ctx context.Context,
	ident Identity,
	input CreateTaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if input.Status != "" && !domain.IsValidTaskStatus(input.Status) {
		return nil, domain.NewValidationError("status", "must be one of pending, in-progress, completed", domain.ErrInvalidTaskStatus)
	}
	if input.Priority != "" && !domain.IsValidTaskPriority(input.Priority) {
		return nil, domain.NewValidationError("priority", "must be one of low, medium, high", domain.ErrInvalidTaskPriority)
	}

	task, err := domain.NewTask(
		ident.ID,
		input.Title,
		input.Description,
		input.Status,
		input.Priority,
		input.DueDate,
	)
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("owner_id", ident.ID.String()))
		return nil, NewTaskServiceError("create", "failed to save task", err)
	}

	return task, nil
}

// Update implements TaskService.Update
func (s *taskServiceImpl) Update(
	ctx context.Context,
	ident Identity,
	id uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.fetchAuthorized(ctx, ident, id)
	if err != nil {
		return nil, err
	}

	if err := task.Apply(patch); err != nil {
		return nil, err
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		if store.IsNotFoundError(err) {
			// Deleted between fetch and update; report as not found.
			return nil, err
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, NewTaskServiceError("update", "failed to save task", err)
	}

	return task, nil
}

// Delete implements TaskService.Delete
func (s *taskServiceImpl) Delete(ctx context.Context, ident Identity, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.fetchAuthorized(ctx, ident, id); err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return NewTaskServiceError("delete", "failed to delete task", err)
	}

	return nil
}

// fetchAuthorized loads a task and applies the shared authorization
// predicate: allowed iff the requester is an admin or owns the task.
// Existence is checked first, so not-found takes precedence over forbidden.
func (s *taskServiceImpl) fetchAuthorized(
	ctx context.Context,
	ident Identity,
	id uuid.UUID,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		log.Error("failed to retrieve task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, NewTaskServiceError("get", "failed to retrieve task", err)
	}

	if !ScopeFor(ident).CanAccess(task) {
		log.Warn("task access denied",
			slog.String("task_id", id.String()),
			slog.String("requester_id", ident.ID.String()))
		return nil, ErrTaskNotOwned
	}

	return task, nil
}
