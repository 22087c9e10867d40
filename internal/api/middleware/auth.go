package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taskhive/taskhive-api/internal/api/shared"
	"github.com/taskhive/taskhive-api/internal/redact"
	"github.com/taskhive/taskhive-api/internal/service"
	"github.com/taskhive/taskhive-api/internal/service/auth"
	"github.com/taskhive/taskhive-api/internal/store"
)

// AuthMiddleware is the auth gate: it verifies the bearer token, resolves it
// to a user record, and attaches the requester identity to the request
// context. Downstream handlers trust that resolution without re-verifying.
type AuthMiddleware struct {
	jwtService auth.JWTService
	userStore  store.UserStore
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, userStore store.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userStore:  userStore,
	}
}

// Authenticate validates the JWT from the Authorization header, re-resolves
// the user, and stores the identity in the request context. The user lookup
// means a deactivated account loses access immediately rather than when its
// token expires, and authorization always uses the current role.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrWrongTokenType):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				slog.Error("failed to validate token", "error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		user, err := m.userStore.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if store.IsNotFoundError(err) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
				return
			}
			shared.RespondWithErrorAndLog(w, r,
				http.StatusInternalServerError, "Authentication error", err)
			return
		}

		if !user.Active {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Account is deactivated",
				shared.WithElevatedLogLevel())
			return
		}

		ident := service.Identity{ID: user.ID, Role: user.Role}
		ctx := context.WithValue(r.Context(), shared.IdentityContextKey, ident)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFrom extracts the requester identity from the request context.
// Returns the identity and a boolean indicating if it was found.
func IdentityFrom(r *http.Request) (service.Identity, bool) {
	ident, ok := r.Context().Value(shared.IdentityContextKey).(service.Identity)
	return ident, ok
}
