package services

import "strings"

// isUniqueViolation reports whether a store error came from a unique
// constraint. Races between an existence check and the insert land here and
// are translated into the matching Conflict instead of propagating as an
// unhandled fault. Postgres and the sqlite test driver word it differently.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
