package service

import (
	"github.com/google/uuid"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/store"
)

// Identity is the authenticated requester for the current request, as
// resolved by the auth middleware. Downstream code trusts it without
// re-verification.
type Identity struct {
	ID   uuid.UUID
	Role domain.Role
}

// AccessScope is the authorization policy evaluated once per request. It has
// exactly two variants: admin scope, which sees every task, and owner scope,
// which is pinned to the requester's own tasks. Keeping the predicate here
// rather than scattered through handlers makes it independently testable.
type AccessScope struct {
	// ownerID is nil for admin scope and the requester's ID otherwise.
	ownerID *uuid.UUID
}

// ScopeFor evaluates the access policy for the given identity.
func ScopeFor(ident Identity) AccessScope {
	if ident.Role == domain.RoleAdmin {
		return AccessScope{}
	}
	id := ident.ID
	return AccessScope{ownerID: &id}
}

// CanAccess reports whether the scope permits point operations (get, update,
// delete) on the given task: admins always, owner scope only for tasks the
// requester owns.
func (s AccessScope) CanAccess(task *domain.Task) bool {
	return s.ownerID == nil || *s.ownerID == task.OwnerID
}

// Restrict narrows a list filter to the scope. For owner scope the owner
// filter is forced server-side; any value the client supplied is discarded.
// Admin scope leaves the filter untouched.
func (s AccessScope) Restrict(filter store.TaskFilter) store.TaskFilter {
	if s.ownerID != nil {
		filter.OwnerID = s.ownerID
	}
	return filter
}
