// Package store provides ownership-scoped data access for users and bookmarks.
// No handler may query the DB directly; all access goes through this package.
package store

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a requested entity does not exist, or when
	// it exists but is owned by a different user. Callers cannot tell the two
	// apart, which is deliberate.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when an insert violates a uniqueness constraint
	// (e.g. a username or email that is already registered).
	ErrDuplicate = errors.New("already exists")
)

// isUniqueConstraintError checks whether err indicates a unique constraint violation.
// Works across SQLite, PostgreSQL, and MySQL.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // SQLite & PostgreSQL
		strings.Contains(msg, "duplicate key") || // PostgreSQL
		strings.Contains(msg, "duplicate entry") // MySQL
}
