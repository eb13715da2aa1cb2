package middleware

import (
	"ambulance/models"
	"ambulance/services/userService"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const userLocalKey = "user"

// TokenAuth resolves "Authorization: Token <key>" (or "Bearer <key>") to a user
func TokenAuth(users *userService.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, "Authentication credentials were not provided.")
		}

		var key string
		switch {
		case strings.HasPrefix(authHeader, "Token "):
			key = strings.TrimSpace(authHeader[len("Token "):])
		case strings.HasPrefix(authHeader, "Bearer "):
			key = strings.TrimSpace(authHeader[len("Bearer "):])
		default:
			return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid Authorization header format")
		}

		user, err := users.FindByToken(c.UserContext(), key)
		if errors.Is(err, userService.ErrTokenNotFound) {
			return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token.")
		}
		if err != nil {
			log.Printf("[AUTH] token lookup failed: %v", err)
			return ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process your request!")
		}

		c.Locals(userLocalKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by TokenAuth
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(userLocalKey).(*models.User)
	return user, ok
}
