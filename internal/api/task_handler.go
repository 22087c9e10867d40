package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/taskhive/taskhive-api/internal/api/shared"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/service"
)

// TaskHandler handles task CRUD API requests. All authorization decisions
// live in the task service; the handler only translates HTTP to service
// calls and errors back to the envelope.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService, log *slog.Logger) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TaskHandler{
		taskService: taskService,
		logger:      log.With(slog.String("component", "task_handler")),
	}
}

// List handles GET /api/v1/tasks.
// Query parameters: status, priority, page, limit.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	params := service.ListParams{}

	q := r.URL.Query()
	if s := q.Get("status"); s != "" {
		status := domain.TaskStatus(s)
		params.Status = &status
	}
	if p := q.Get("priority"); p != "" {
		priority := domain.TaskPriority(p)
		params.Priority = &priority
	}
	// Unparseable numbers fall through as zero and pick up the defaults.
	params.Page, _ = strconv.Atoi(q.Get("page"))
	params.Limit, _ = strconv.Atoi(q.Get("limit"))

	page, err := h.taskService.List(r.Context(), ident, params)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks := NewTaskListResponse(page.Tasks)
	shared.RespondWithJSON(w, r, http.StatusOK, shared.ListResponse{
		Success:    true,
		Data:       tasks,
		Count:      len(tasks),
		Total:      page.Total,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	})
}

// Get handles GET /api/v1/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ident, id, ok := requireIdentityAndID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Get(r.Context(), ident, id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, NewTaskResponse(task))
}

// Create handles POST /api/v1/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error",
			shared.WithFieldErrors(shared.FieldErrorsFrom(err)))
		return
	}

	task, err := h.taskService.Create(r.Context(), ident, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		DueDate:     req.DueDate.Value,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, NewTaskResponse(task))
}

// Update handles PUT /api/v1/tasks/{id}.
// The update is partial: see UpdateTaskRequest for the merge rules.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident, id, ok := requireIdentityAndID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error",
			shared.WithFieldErrors(shared.FieldErrorsFrom(err)))
		return
	}

	task, err := h.taskService.Update(r.Context(), ident, id, req.Patch())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, NewTaskResponse(task))
}

// Delete handles DELETE /api/v1/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, id, ok := requireIdentityAndID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), ident, id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.Response{
		Success: true,
		Message: "Task deleted",
	})
}
