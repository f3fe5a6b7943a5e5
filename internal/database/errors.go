package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolationCode is the postgres SQLSTATE for unique constraint hits
const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a unique constraint violation.
// Repositories translate these into domain Conflict errors.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
