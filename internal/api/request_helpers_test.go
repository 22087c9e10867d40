package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-api/internal/api/shared"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/service"
)

func requestWithURLParam(t *testing.T, param, value string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(param, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestIdentityFromContext(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		want := service.Identity{ID: uuid.New(), Role: domain.RoleUser}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(context.WithValue(req.Context(), shared.IdentityContextKey, want))

		got, ok := identityFromContext(req)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, ok := identityFromContext(req)
		assert.False(t, ok)
	})

	t.Run("nil identity is treated as absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(context.WithValue(req.Context(), shared.IdentityContextKey, service.Identity{}))

		_, ok := identityFromContext(req)
		assert.False(t, ok)
	})
}

func TestPathUUID(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		want := uuid.New()
		req := requestWithURLParam(t, "id", want.String())

		got, err := pathUUID(req, "id")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("missing", func(t *testing.T) {
		req := requestWithURLParam(t, "other", "x")

		_, err := pathUUID(req, "id")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("malformed", func(t *testing.T) {
		req := requestWithURLParam(t, "id", "not-a-uuid")

		_, err := pathUUID(req, "id")
		assert.ErrorIs(t, err, domain.ErrInvalidID)
	})
}
