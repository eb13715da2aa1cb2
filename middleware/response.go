package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// JsonResponse writes the {success, message} envelope, merged with any extra fields
func JsonResponse(c *fiber.Ctx, statusCode int, success bool, message string, extra fiber.Map) error {
	body := fiber.Map{"success": success}
	if message != "" {
		body["message"] = message
	}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(statusCode).JSON(body)
}

// ValidationErrorResponse reports field level errors with a 400
func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"errors":  errors,
	})
}

// ErrorResponse reports a single failure under the "error" key
func ErrorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
