package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn" // Import pgconn for PgError
)

// IsForeignKeyViolation checks if the error is a PostgreSQL foreign key violation
// error (23503), optionally for a specific constraint. An empty constraintName
// matches any foreign key violation.
func IsForeignKeyViolation(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23503" {
		return false
	}
	return constraintName == "" || pgErr.ConstraintName == constraintName
}

// IsDataFormatError checks if the error is a PostgreSQL data exception, e.g. a
// value that cannot be interpreted as the column's type (invalid date literal,
// malformed UUID). Class 22 covers data exceptions.
func IsDataFormatError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && len(pgErr.Code) == 5 && pgErr.Code[:2] == "22"
}
