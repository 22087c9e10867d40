package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// UserResponse is the client-facing shape of a user. The password hash never
// appears here.
type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	Active    bool        `json:"active"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// NewUserResponse maps a domain user to its response shape.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// TaskResponse is the client-facing shape of a task.
type TaskResponse struct {
	ID          uuid.UUID           `json:"id"`
	OwnerID     uuid.UUID           `json:"ownerId"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	Status      domain.TaskStatus   `json:"status"`
	Priority    domain.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"dueDate"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// NewTaskResponse maps a domain task to its response shape.
func NewTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// NewTaskListResponse maps a slice of domain tasks to response shapes.
func NewTaskListResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, NewTaskResponse(t))
	}
	return out
}

// CreateTaskRequest defines the payload for task creation. There is no
// owner field: the owner is always the authenticated requester, regardless
// of anything the client sends.
type CreateTaskRequest struct {
	Title       string       `json:"title"       validate:"required,min=1,max=200"`
	Description *string      `json:"description"`
	Status      string       `json:"status"      validate:"omitempty,oneof=pending in-progress completed"`
	Priority    string       `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     NullableDate `json:"dueDate"`
}

// UpdateTaskRequest defines the payload for partial task updates. The two
// field groups follow the merge rules documented on domain.TaskPatch:
// title/status/priority only apply when non-empty, while description and
// dueDate apply whenever the field is present, null included.
type UpdateTaskRequest struct {
	Title       string         `json:"title"       validate:"omitempty,max=200"`
	Status      string         `json:"status"      validate:"omitempty,oneof=pending in-progress completed"`
	Priority    string         `json:"priority"    validate:"omitempty,oneof=low medium high"`
	Description NullableString `json:"description"`
	DueDate     NullableDate   `json:"dueDate"`
}

// Patch converts the request into the domain patch, carrying the
// present-vs-absent distinction for the nullable fields.
func (r *UpdateTaskRequest) Patch() domain.TaskPatch {
	return domain.TaskPatch{
		Title:          r.Title,
		Status:         domain.TaskStatus(r.Status),
		Priority:       domain.TaskPriority(r.Priority),
		Description:    r.Description.Value,
		SetDescription: r.Description.Set,
		DueDate:        r.DueDate.Value,
		SetDueDate:     r.DueDate.Set,
	}
}

// NullableString distinguishes an absent JSON field from one explicitly set
// to null or a value. Set is true whenever the field appeared in the
// payload; Value is nil for an explicit null.
type NullableString struct {
	Value *string
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked when the
// field is present, which is what flips Set.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// NullableDate is the date counterpart of NullableString. It accepts
// RFC 3339 timestamps and plain dates (2006-01-02).
type NullableDate struct {
	Value *time.Time
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableDate) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return fmt.Errorf("%w: dueDate must be RFC 3339 or YYYY-MM-DD", domain.ErrValidation)
		}
	}
	n.Value = &t
	return nil
}
