// Package postgres provides the PostgreSQL implementation of the task storage
// interfaces defined in internal/store. It owns the schema migrations for the
// postgres dialect and maps driver errors onto store sentinel errors.
package postgres
