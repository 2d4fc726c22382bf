// Package errs holds the error kinds reported by the activity services.
package errs

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrMissingReference = errors.New("missing required reference")
	ErrTooManyItems     = errors.New("too many items")
	ErrConflict         = errors.New("conflict")
)

// IsUniqueViolation reports whether err comes from a unique index.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == "23505"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	// sqlite
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
