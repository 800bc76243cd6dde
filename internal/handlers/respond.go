package handlers

import (
	"blogapi/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// respondError renders a fault with the status code its kind maps to and
// the standard {message, error} body.
func respondError(c *fiber.Ctx, err error, message string) error {
	return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
