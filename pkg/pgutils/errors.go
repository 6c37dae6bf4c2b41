package pgutils

import (
	"strings"
)

// PostgreSQL error codes
// See: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	// Class 23: integrity constraint violation
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeNotNullViolation    = "23502"
)

// SQLite reports constraint failures by message rather than SQLSTATE.
const (
	sqliteUniqueViolation     = "UNIQUE constraint failed"
	sqliteForeignKeyViolation = "FOREIGN KEY constraint failed"
	sqliteNotNullViolation    = "NOT NULL constraint failed"
)

// IsUniqueViolation reports whether err is a unique constraint violation
// from either PostgreSQL (23505) or the SQLite backend.
func IsUniqueViolation(err error) bool {
	return containsErrorCode(err, CodeUniqueViolation) || containsMessage(err, sqliteUniqueViolation)
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return containsErrorCode(err, CodeForeignKeyViolation) || containsMessage(err, sqliteForeignKeyViolation)
}

// IsNotNullViolation reports whether err is a not-null violation.
func IsNotNullViolation(err error) bool {
	return containsErrorCode(err, CodeNotNullViolation) || containsMessage(err, sqliteNotNullViolation)
}

// containsErrorCode checks if the error message contains a PostgreSQL error code.
func containsErrorCode(err error, code string) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return len(errStr) > 0 && (strings.Contains(errStr, code) || strings.Contains(errStr, "SQLSTATE "+code))
}

func containsMessage(err error, msg string) bool {
	return err != nil && strings.Contains(err.Error(), msg)
}
