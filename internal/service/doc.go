// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// The central piece is the task access layer: every task operation takes the
// authenticated requester identity and evaluates the access policy
// (AccessScope) before touching storage. Point operations check existence
// before ownership, so unknown IDs always report not-found; list operations
// have the owner filter forced server-side for non-admin requesters.
//
// Services receive dependencies through constructor injection and translate
// storage errors into application-level errors meaningful to the API layer.
package service
