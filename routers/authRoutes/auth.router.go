package authRoutes

import (
	authControllers "ambulance/controllers/auth"
	"ambulance/middleware"
	"ambulance/services/userService"
	authValidators "ambulance/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, ctrl *authControllers.AuthController, users *userService.UserService) {
	authGroup := app.Group("/api/authentication")

	authGroup.Post("/send-otp/", authValidators.SendOTP(), ctrl.SendOTP)
	authGroup.Post("/verify-otp/", authValidators.VerifyOTP(), ctrl.VerifyOTP)
	authGroup.Post("/signup/", authValidators.Signup(users), ctrl.Signup)
	authGroup.Post("/login/", authValidators.Login(), ctrl.Login)
	authGroup.Post("/forgot-password/", authValidators.ForgotPassword(), ctrl.ForgotPassword)
	authGroup.Get("/test-connection/", ctrl.TestConnection)
	authGroup.Get("/login/history/", middleware.TokenAuth(users), ctrl.LoginHistoryList)
}
