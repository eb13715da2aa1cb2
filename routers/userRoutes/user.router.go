package userRoutes

import (
	userController "ambulance/controllers/userControllers"
	"ambulance/middleware"
	"ambulance/services/userService"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, users *userService.UserService) {
	userGroup := app.Group("/api/users")

	userGroup.Get("/me/", middleware.TokenAuth(users), userController.Me)
}
