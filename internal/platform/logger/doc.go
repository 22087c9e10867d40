// Package logger provides structured logging for the application.
//
// It builds on the standard library log/slog package, emitting JSON records
// with configurable log levels, and carries request-scoped loggers through
// the context.
package logger
