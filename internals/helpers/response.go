package helper

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ValidationError turns validator.v10 errors into a 422 with per-field tags.
func ValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}

	fields := make(map[string][]string, len(ve))
	for _, fieldErr := range ve {
		fields[fieldErr.Field()] = append(fields[fieldErr.Field()], fieldErr.Tag())
	}
	return JsonValidationError(c, fields)
}
