package userController

import (
	"ambulance/middleware"

	"github.com/gofiber/fiber/v2"
)

// Me returns the profile of the token holder
func Me(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication credentials were not provided.")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "", fiber.Map{
		"user": fiber.Map{
			"id":           user.ID,
			"username":     user.Username,
			"email":        user.EmailValue(),
			"phone_number": user.PhoneValue(),
			"first_name":   user.FirstName,
			"last_name":    user.LastName,
			"role":         user.UserType,
			"is_verified":  user.IsVerified,
			"last_login":   user.LastLogin,
		},
	})
}
