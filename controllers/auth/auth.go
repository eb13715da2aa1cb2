package authController

import (
	"ambulance/middleware"
	"ambulance/models"
	"ambulance/services/otpService"
	"ambulance/services/userService"
	authValidator "ambulance/validators/auth"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AuthController serves the authentication endpoints
type AuthController struct {
	OTP   *otpService.OTPService
	Users *userService.UserService
}

func NewAuthController(otp *otpService.OTPService, users *userService.UserService) *AuthController {
	return &AuthController{OTP: otp, Users: users}
}

func (a *AuthController) SendOTP(c *fiber.Ctx) error {
	reqData := c.Locals(authValidator.LocalSendOTP).(*authValidator.SendOTPRequest)

	result := a.OTP.Issue(c.UserContext(), reqData.Identifier)
	if !result.Success {
		status := fiber.StatusInternalServerError
		if result.Message == otpService.MsgInvalidIdentifier {
			status = fiber.StatusBadRequest
		}
		return middleware.JsonResponse(c, status, false, result.Message, nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, result.Message, fiber.Map{
		"channel":   result.Channel,
		"delivered": result.Delivered,
	})
}

func (a *AuthController) VerifyOTP(c *fiber.Ctx) error {
	reqData := c.Locals(authValidator.LocalVerifyOTP).(*authValidator.VerifyOTPRequest)

	ok, message := a.OTP.Verify(c.UserContext(), reqData.Identifier, reqData.OTP)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, message, nil)
	}

	if n, err := a.Users.MarkVerified(c.UserContext(), reqData.Identifier); err != nil {
		log.Printf("[AUTH] mark verified for %s failed: %v", reqData.Identifier, err)
	} else if n > 0 {
		log.Printf("[AUTH] %d account(s) verified via %s", n, reqData.Identifier)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, nil)
}

func (a *AuthController) Signup(c *fiber.Ctx) error {
	reqData := c.Locals(authValidator.LocalSignup).(*authValidator.SignupRequest)

	user, err := a.Users.Create(c.UserContext(), userService.CreateUserInput{
		Username:    reqData.Username,
		Email:       reqData.Email,
		PhoneNumber: reqData.PhoneNumber,
		FirstName:   reqData.FirstName,
		LastName:    reqData.LastName,
		UserType:    reqData.UserType,
		Password:    reqData.Password,
	})
	switch {
	case errors.Is(err, userService.ErrDuplicateUsername):
		return middleware.ValidationErrorResponse(c, map[string]string{"username": err.Error()})
	case errors.Is(err, userService.ErrDuplicateEmail):
		return middleware.ValidationErrorResponse(c, map[string]string{"email": err.Error()})
	case errors.Is(err, userService.ErrDuplicatePhone):
		return middleware.ValidationErrorResponse(c, map[string]string{"phone_number": err.Error()})
	case err != nil:
		log.Printf("[AUTH] error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully", fiber.Map{
		"user_id": user.ID,
	})
}

func (a *AuthController) Login(c *fiber.Ctx) error {
	reqData := c.Locals(authValidator.LocalLogin).(*authValidator.LoginRequest)
	ctx := c.UserContext()

	account, err := a.Users.FindByEmail(ctx, reqData.Email)
	if errors.Is(err, userService.ErrUserNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		log.Printf("[AUTH] login lookup failed: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process your request!")
	}

	user, err := a.Users.Authenticate(ctx, account.Username, reqData.Password)
	if errors.Is(err, userService.ErrInvalidCredentials) {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		log.Printf("[AUTH] authenticate failed: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process your request!")
	}

	token, err := a.Users.GetOrCreateToken(ctx, user)
	if err != nil {
		log.Printf("[AUTH] token issue failed: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process your request!")
	}

	if err := a.Users.RecordLogin(ctx, user, clientIP(c), c.Get(fiber.HeaderUserAgent)); err != nil {
		log.Printf("[AUTH] failed to record login for user %d: %v", user.ID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "", fiber.Map{
		"token": token.Key,
		"user":  UserPayload(user),
	})
}

// ForgotPassword acknowledges the request without dispatching anything
func (a *AuthController) ForgotPassword(c *fiber.Ctx) error {
	reqData := c.Locals(authValidator.LocalForgotPassword).(*authValidator.ForgotPasswordRequest)

	log.Printf("[AUTH] password reset requested for %s", reqData.Identifier)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset link sent successfully", nil)
}

func (a *AuthController) TestConnection(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Smart Ambulance System API is working!",
		"status":  "success",
	})
}

// LoginHistoryList returns the caller's most recent logins
func (a *AuthController) LoginHistoryList(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication credentials were not provided.")
	}

	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}

	history, err := a.Users.LoginHistory(c.UserContext(), user.ID, limit)
	if err != nil {
		log.Printf("[AUTH] error fetching login history: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch login history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login history fetched successfully.", fiber.Map{
		"history": history,
	})
}

// UserPayload is the public view of an account returned at login
func UserPayload(user *models.User) fiber.Map {
	return fiber.Map{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.EmailValue(),
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"role":       user.UserType,
	}
}

func clientIP(c *fiber.Ctx) string {
	if forwarded := c.Get(fiber.HeaderXForwardedFor); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	return c.IP()
}
