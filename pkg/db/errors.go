package db

import "strings"

// IsUniqueViolation reports whether the provided error references a Postgres
// unique violation constraint. Remote inserts replayed by another register
// surface this way and are safe to treat as already-applied.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed")
}
