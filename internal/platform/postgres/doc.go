// Package postgres provides PostgreSQL-backed implementations of the storage
// interfaces defined in the internal/store package. It handles query
// execution, data mapping between domain entities and database records, and
// translation of driver errors into the store error taxonomy.
package postgres
