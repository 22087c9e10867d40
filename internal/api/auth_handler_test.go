package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/taskhive-api/internal/api/shared"
	"github.com/taskhive/taskhive-api/internal/config"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/service"
	"github.com/taskhive/taskhive-api/internal/service/auth"
	"github.com/taskhive/taskhive-api/internal/store"
)

// fakeUserStore is an in-memory store.UserStore keyed by ID and email.
type fakeUserStore struct {
	byID    map[uuid.UUID]*domain.User
	byEmail map[string]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    make(map[uuid.UUID]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (f *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return store.ErrEmailExists
	}
	cp := *user
	f.byID[user.ID] = &cp
	f.byEmail[user.Email] = &cp
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func newAuthTestRouter(t *testing.T, users *fakeUserStore) http.Handler {
	t.Helper()

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "test-signing-secret-with-32-chars!!",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	handler := NewAuthHandler(users, jwtService, hasher, hasher, nil)

	r := chi.NewRouter()
	r.Post("/auth/register", handler.Register)
	r.Post("/auth/login", handler.Login)
	return r
}

func registerUser(t *testing.T, router http.Handler, name, email, password string) map[string]any {
	t.Helper()

	payload, err := json.Marshal(map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, "register failed: %s", rec.Body.String())
	return decodeEnvelope(t, rec.Body)
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("creates user and returns token", func(t *testing.T) {
		users := newFakeUserStore()
		router := newAuthTestRouter(t, users)

		envelope := registerUser(t, router, "Ada", "ada@example.com", "longenough")
		assert.Equal(t, true, envelope["success"])

		data := envelope["data"].(map[string]any)
		assert.NotEmpty(t, data["token"])

		user := data["user"].(map[string]any)
		assert.Equal(t, "ada@example.com", user["email"])
		assert.Equal(t, "user", user["role"])
		assert.NotContains(t, user, "password")

		// The stored user carries the hash, not the plaintext.
		stored, err := users.GetByEmail(context.Background(), "ada@example.com")
		require.NoError(t, err)
		assert.Empty(t, stored.Password)
		assert.NotEmpty(t, stored.HashedPassword)
		assert.NotEqual(t, "longenough", stored.HashedPassword)
	})

	t.Run("duplicate email returns 409", func(t *testing.T) {
		users := newFakeUserStore()
		router := newAuthTestRouter(t, users)

		registerUser(t, router, "Ada", "ada@example.com", "longenough")

		payload := `{"name":"Imposter","email":"ada@example.com","password":"longenough"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("email is normalized before storage", func(t *testing.T) {
		users := newFakeUserStore()
		router := newAuthTestRouter(t, users)

		registerUser(t, router, "Ada", "  Ada@Example.COM ", "longenough")

		_, err := users.GetByEmail(context.Background(), "ada@example.com")
		assert.NoError(t, err)
	})

	t.Run("validation failures return 400 with field errors", func(t *testing.T) {
		router := newAuthTestRouter(t, newFakeUserStore())

		payload := `{"name":"Ada","email":"not-an-email","password":"short"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		envelope := decodeEnvelope(t, rec.Body)
		assert.Equal(t, false, envelope["success"])
		assert.NotEmpty(t, envelope["errors"])
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("valid credentials return token", func(t *testing.T) {
		users := newFakeUserStore()
		router := newAuthTestRouter(t, users)
		registerUser(t, router, "Ada", "ada@example.com", "longenough")

		payload := `{"email":"ada@example.com","password":"longenough"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		envelope := decodeEnvelope(t, rec.Body)
		data := envelope["data"].(map[string]any)
		assert.NotEmpty(t, data["token"])
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		users := newFakeUserStore()
		router := newAuthTestRouter(t, users)
		registerUser(t, router, "Ada", "ada@example.com", "longenough")

		wrongPassword := httptest.NewRecorder()
		router.ServeHTTP(wrongPassword, httptest.NewRequest(http.MethodPost, "/auth/login",
			bytes.NewBufferString(`{"email":"ada@example.com","password":"wrong-password"}`)))

		unknownEmail := httptest.NewRecorder()
		router.ServeHTTP(unknownEmail, httptest.NewRequest(http.MethodPost, "/auth/login",
			bytes.NewBufferString(`{"email":"nobody@example.com","password":"longenough"}`)))

		assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
		assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	})

	t.Run("deactivated account is rejected", func(t *testing.T) {
		users := newFakeUserStore()
		router := newAuthTestRouter(t, users)
		registerUser(t, router, "Ada", "ada@example.com", "longenough")

		stored := users.byEmail["ada@example.com"]
		stored.Active = false

		payload := `{"email":"ada@example.com","password":"longenough"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	users := newFakeUserStore()

	user, err := domain.NewUser("Ada", "ada@example.com", "longenough")
	require.NoError(t, err)
	user.Password = ""
	user.HashedPassword = "$2a$04$abcdefghijklmnopqrstuv"
	require.NoError(t, users.Create(context.Background(), user))

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "test-signing-secret-with-32-chars!!",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	handler := NewAuthHandler(users, jwtService, hasher, hasher, nil)

	t.Run("returns current profile", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		ident := service.Identity{ID: user.ID, Role: user.Role}
		req = req.WithContext(context.WithValue(req.Context(), shared.IdentityContextKey, ident))

		rec := httptest.NewRecorder()
		handler.Me(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		envelope := decodeEnvelope(t, rec.Body)
		data := envelope["data"].(map[string]any)
		assert.Equal(t, user.ID.String(), data["id"])
		assert.Equal(t, "ada@example.com", data["email"])
	})

	t.Run("missing identity returns 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		rec := httptest.NewRecorder()
		handler.Me(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
