package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/taskhive/taskhive-api/internal/api/shared"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/service"
)

// identityFromContext extracts the authenticated requester identity placed
// in the context by the auth middleware.
func identityFromContext(r *http.Request) (service.Identity, bool) {
	ident, ok := r.Context().Value(shared.IdentityContextKey).(service.Identity)
	if !ok || ident.ID == uuid.Nil {
		return service.Identity{}, false
	}
	return ident, true
}

// pathUUID extracts and parses a UUID path parameter.
func pathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// requireIdentityAndID is a composite helper for the point operations: it
// extracts the requester identity and the task ID from the path, writing the
// error response itself when either is missing.
func requireIdentityAndID(
	w http.ResponseWriter,
	r *http.Request,
) (service.Identity, uuid.UUID, bool) {
	ident, ok := identityFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return service.Identity{}, uuid.Nil, false
	}

	id, err := pathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return service.Identity{}, uuid.Nil, false
	}

	return ident, id, true
}
