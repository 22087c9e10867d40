package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the progress state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskPriority represents the urgency of a task.
type TaskPriority string

// Possible task priority values
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Common validation errors for Task
var (
	ErrEmptyTaskID      = errors.New("task ID cannot be empty")
	ErrEmptyTaskOwnerID = errors.New("task owner ID cannot be empty")
	ErrEmptyTaskTitle   = errors.New("task title cannot be empty")
)

// Task represents a unit of work owned by exactly one user. Ownership is
// fixed at creation and never transferred.
type Task struct {
	ID          uuid.UUID    `db:"id"          json:"id"`
	OwnerID     uuid.UUID    `db:"owner_id"    json:"owner_id"`
	Title       string       `db:"title"       json:"title"`
	Description *string      `db:"description" json:"description"`
	Status      TaskStatus   `db:"status"      json:"status"`
	Priority    TaskPriority `db:"priority"    json:"priority"`
	DueDate     *time.Time   `db:"due_date"    json:"due_date"`
	CreatedAt   time.Time    `db:"created_at"  json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"  json:"updated_at"`
}

// NewTask creates a new Task owned by the given user. Empty status and
// priority fall back to their defaults (pending, medium). Returns an error
// if validation fails.
func NewTask(
	ownerID uuid.UUID,
	title string,
	description *string,
	status TaskStatus,
	priority TaskPriority,
	dueDate *time.Time,
) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}
	if priority == "" {
		priority = TaskPriorityMedium
	}

	task := &Task{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.OwnerID == uuid.Nil {
		return ErrEmptyTaskOwnerID
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	if !IsValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}

	if !IsValidTaskPriority(t.Priority) {
		return ErrInvalidTaskPriority
	}

	return nil
}

// TaskPatch describes a partial update to a task. The two groups of fields
// follow different merge rules, and the asymmetry is part of the API
// contract:
//
//   - Title, Status, Priority are applied only when the supplied value is
//     non-empty. An empty string in the payload leaves the stored value
//     untouched.
//   - Description and DueDate are applied whenever the field was present in
//     the payload (tracked by the Set flags), including an explicit null,
//     which clears the stored value.
type TaskPatch struct {
	Title    string
	Status   TaskStatus
	Priority TaskPriority

	Description    *string
	SetDescription bool

	DueDate    *time.Time
	SetDueDate bool
}

// Apply merges the patch into the task according to the per-field rules
// above and bumps UpdatedAt. Enum values are validated before anything is
// written, so a task is never left partially patched.
func (t *Task) Apply(p TaskPatch) error {
	if p.Status != "" && !IsValidTaskStatus(p.Status) {
		return ErrInvalidTaskStatus
	}
	if p.Priority != "" && !IsValidTaskPriority(p.Priority) {
		return ErrInvalidTaskPriority
	}

	if p.Title != "" {
		t.Title = p.Title
	}
	if p.Status != "" {
		t.Status = p.Status
	}
	if p.Priority != "" {
		t.Priority = p.Priority
	}
	if p.SetDescription {
		t.Description = p.Description
	}
	if p.SetDueDate {
		t.DueDate = p.DueDate
	}

	t.UpdatedAt = time.Now().UTC()
	return nil
}

// IsValidTaskStatus checks if the given status is a valid TaskStatus.
func IsValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// IsValidTaskPriority checks if the given priority is a valid TaskPriority.
func IsValidTaskPriority(priority TaskPriority) bool {
	switch priority {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}
