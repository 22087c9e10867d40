package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-api/internal/config"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/service"
	"github.com/taskhive/taskhive-api/internal/service/auth"
	"github.com/taskhive/taskhive-api/internal/store"
)

// stubUserStore resolves a single known user.
type stubUserStore struct {
	user *domain.User
}

func (s *stubUserStore) Create(ctx context.Context, user *domain.User) error {
	return nil
}

func (s *stubUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if s.user != nil && s.user.ID == id {
		cp := *s.user
		return &cp, nil
	}
	return nil, store.ErrUserNotFound
}

func (s *stubUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.user != nil && s.user.Email == email {
		cp := *s.user
		return &cp, nil
	}
	return nil, store.ErrUserNotFound
}

func newTestJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "middleware-test-secret-32-chars!!!!",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	return svc
}

func activeUser() *domain.User {
	return &domain.User{
		ID:             uuid.New(),
		Name:           "Ada",
		Email:          "ada@example.com",
		HashedPassword: "$2a$04$abcdefghijklmnopqrstuv",
		Role:           domain.RoleUser,
		Active:         true,
	}
}

func TestAuthenticate(t *testing.T) {
	jwtService := newTestJWTService(t)

	newProtected := func(users store.UserStore, captured *service.Identity) http.Handler {
		mw := NewAuthMiddleware(jwtService, users)
		return mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ident, ok := IdentityFrom(r); ok {
				*captured = ident
			}
			w.WriteHeader(http.StatusOK)
		}))
	}

	t.Run("valid token resolves the identity", func(t *testing.T) {
		user := activeUser()
		user.Role = domain.RoleAdmin
		token, err := jwtService.GenerateToken(context.Background(), user.ID, domain.RoleUser)
		require.NoError(t, err)

		var captured service.Identity
		handler := newProtected(&stubUserStore{user: user}, &captured)

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, user.ID, captured.ID)
		// The role comes from the user record, not the token claims.
		assert.Equal(t, domain.RoleAdmin, captured.Role)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		var captured service.Identity
		handler := newProtected(&stubUserStore{}, &captured)

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		var captured service.Identity
		handler := newProtected(&stubUserStore{}, &captured)

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		var captured service.Identity
		handler := newProtected(&stubUserStore{}, &captured)

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "Bearer garbage.token.here")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token for a deleted user is rejected", func(t *testing.T) {
		token, err := jwtService.GenerateToken(context.Background(), uuid.New(), domain.RoleUser)
		require.NoError(t, err)

		var captured service.Identity
		handler := newProtected(&stubUserStore{}, &captured)

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("deactivated account is rejected", func(t *testing.T) {
		user := activeUser()
		user.Active = false
		token, err := jwtService.GenerateToken(context.Background(), user.ID, user.Role)
		require.NoError(t, err)

		var captured service.Identity
		handler := newProtected(&stubUserStore{user: user}, &captured)

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, uuid.Nil, captured.ID, "handler must not run")
	})
}
