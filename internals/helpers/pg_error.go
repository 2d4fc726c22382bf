package helper

import (
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"kntista_backend/internals/helpers/errs"
)

// --- service error → HTTP ---
func MapError(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrInvalidInput), errors.Is(err, errs.ErrTooManyItems):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrMissingReference):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict, "Duplicate data (unique violation)."
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return http.StatusBadRequest, "Referenced row does not exist (FK violation)."
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fe.Message
	}
	return mapPGError(err)
}

// --- PG error mapping (pgx/libpq) ---
func mapPGError(err error) (int, string) {
	// pgx
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		switch pgxErr.Code {
		case "23503":
			return http.StatusBadRequest, "Referenced row does not exist (FK violation)."
		case "23505":
			return http.StatusConflict, "Duplicate data (unique violation)."
		case "23514":
			return http.StatusBadRequest, "Value violates a check constraint."
		default:
			return http.StatusInternalServerError, pgxErr.Message
		}
	}
	// lib/pq
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case "23503":
			return http.StatusBadRequest, "Referenced row does not exist (FK violation)."
		case "23505":
			return http.StatusConflict, "Duplicate data (unique violation)."
		default:
			return http.StatusInternalServerError, pqErr.Error()
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

// WriteError logs server-side failures and writes the JSON error envelope.
func WriteError(c *fiber.Ctx, err error) error {
	code, msg := MapError(err)
	if code >= http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
	}
	return JsonError(c, code, msg)
}
