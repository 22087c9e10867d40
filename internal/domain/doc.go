// Package domain contains the core business entities and domain logic of the
// application: users, tasks, their validation rules, and the partial-update
// semantics for tasks. It is independent of any specific infrastructure or
// delivery mechanism.
package domain
