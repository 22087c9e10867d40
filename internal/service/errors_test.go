package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskhive/taskhive-api/internal/store"
)

func TestTaskServiceErrorMessage(t *testing.T) {
	withCause := NewTaskServiceError("update", "failed to save task", errors.New("connection reset"))
	assert.Equal(t, "task service update failed: failed to save task: connection reset", withCause.Error())

	withoutCause := NewTaskServiceError("list", "failed to count tasks", nil)
	assert.Equal(t, "task service list failed: failed to count tasks", withoutCause.Error())
}

func TestTaskServiceErrorUnwrap(t *testing.T) {
	err := NewTaskServiceError("get", "failed to retrieve task", store.ErrTaskNotFound)

	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.ErrorIs(t, err, store.ErrNotFound)

	var svcErr *TaskServiceError
	assert.ErrorAs(t, error(err), &svcErr)
	assert.Equal(t, "get", svcErr.Operation)
}
