// Package api handles incoming HTTP requests, request validation, and
// response formatting. It acts as an adapter between external clients and
// the internal application services, translating HTTP concerns to task and
// account operations. Every endpoint responds with the shared success or
// error envelope defined in the shared subpackage.
package api
