package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RespondWithError sends the failure envelope: a short stable error label
// plus a human-readable message.
func RespondWithError(c *fiber.Ctx, statusCode int, errLabel, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"success": false,
		"error":   errLabel,
		"message": message,
	})
}

// RespondWithJSON sends a success payload as-is with the given status.
func RespondWithJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(data)
}

// FormatValidationErrors flattens validator/v10 errors into one line per
// failed field.
func FormatValidationErrors(err error) []string {
	var errors []string
	if err != nil {
		var vErrs validator.ValidationErrors
		ok := false
		vErrs, ok = err.(validator.ValidationErrors)
		if !ok {
			return []string{err.Error()}
		}
		for _, fieldErr := range vErrs {
			element := fmt.Sprintf("Field '%s' failed on the '%s' tag", fieldErr.Field(), fieldErr.Tag())
			if fieldErr.Param() != "" {
				element = fmt.Sprintf("%s (value: %s)", element, fieldErr.Param())
			}
			errors = append(errors, element)
		}
	}
	return errors
}
