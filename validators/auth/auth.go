package authValidator

import (
	"ambulance/middleware"
	"ambulance/models"
	"ambulance/services/userService"
	"ambulance/utils"
	"fmt"
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Locals keys holding the parsed request for the controller
const (
	LocalSendOTP        = "validatedSendOTP"
	LocalVerifyOTP      = "validatedVerifyOTP"
	LocalSignup         = "validatedSignup"
	LocalLogin          = "validatedLogin"
	LocalForgotPassword = "validatedForgotPassword"
)

const nonFieldErrors = "non_field_errors"

var (
	usernameRegex    = regexp.MustCompile(`^[\w.@+-]+$`)
	phoneNumberRegex = regexp.MustCompile(`^\+?1?\d{9,15}$`)
	specialCharRegex = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their json name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"identifier": func(fl validator.FieldLevel) bool {
			return utils.Classify(fl.Field().String()) != utils.IdentifierInvalid
		},
		"username": func(fl validator.FieldLevel) bool {
			return usernameRegex.MatchString(fl.Field().String())
		},
		"phone_number": func(fl validator.FieldLevel) bool {
			return phoneNumberRegex.MatchString(fl.Field().String())
		},
		"special_char": func(fl validator.FieldLevel) bool {
			return specialCharRegex.MatchString(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("register validation %s: %v", tag, err)
		}
	}
	return v
}

type SendOTPRequest struct {
	Identifier string `json:"identifier" validate:"required,max=255,identifier"`
}

type VerifyOTPRequest struct {
	Identifier string `json:"identifier" validate:"required,max=255,identifier"`
	OTP        string `json:"otp" validate:"required,len=6"`
}

type SignupRequest struct {
	Username        string `json:"username" validate:"required,max=150,username"`
	Email           string `json:"email" validate:"omitempty,max=254,email"`
	PhoneNumber     string `json:"phone_number" validate:"omitempty,phone_number"`
	FirstName       string `json:"first_name" validate:"max=150"`
	LastName        string `json:"last_name" validate:"max=150"`
	UserType        string `json:"user_type" validate:"omitempty,oneof=patient driver hospital admin"`
	Password        string `json:"password" validate:"required,min=8,special_char"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Identifier string `json:"identifier" validate:"required,max=255"`
}

// SendOTP validator middleware
func SendOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SendOTPRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Identifier = strings.TrimSpace(reqData.Identifier)

		if errors := validateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals(LocalSendOTP, reqData)
		return c.Next()
	}
}

// VerifyOTP validator middleware
func VerifyOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(VerifyOTPRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Identifier = strings.TrimSpace(reqData.Identifier)

		if errors := validateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals(LocalVerifyOTP, reqData)
		return c.Next()
	}
}

// Signup validator middleware. Uniqueness is checked against the user directory.
func Signup(users *userService.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SignupRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Username = strings.TrimSpace(reqData.Username)
		reqData.Email = strings.TrimSpace(reqData.Email)
		reqData.PhoneNumber = strings.TrimSpace(reqData.PhoneNumber)
		if reqData.UserType == "" {
			reqData.UserType = models.UserTypePatient
		}

		errors := validateStruct(reqData)

		if reqData.Password != reqData.ConfirmPassword {
			addNonFieldError(errors, "Passwords don't match.")
		}
		if reqData.Email == "" && reqData.PhoneNumber == "" {
			addNonFieldError(errors, "Either email or phone number is required.")
		}

		ctx := c.UserContext()
		if _, bad := errors["username"]; !bad && reqData.Username != "" {
			if exists, err := users.UsernameExists(ctx, reqData.Username); err != nil {
				return lookupFailed(c, err)
			} else if exists {
				errors["username"] = "A user with that username already exists."
			}
		}
		if _, bad := errors["email"]; !bad && reqData.Email != "" {
			if exists, err := users.EmailExists(ctx, reqData.Email); err != nil {
				return lookupFailed(c, err)
			} else if exists {
				errors["email"] = "A user with this email already exists."
			}
		}
		if _, bad := errors["phone_number"]; !bad && reqData.PhoneNumber != "" {
			if exists, err := users.PhoneExists(ctx, reqData.PhoneNumber); err != nil {
				return lookupFailed(c, err)
			} else if exists {
				errors["phone_number"] = "A user with this phone number already exists."
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals(LocalSignup, reqData)
		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Email = strings.TrimSpace(reqData.Email)

		if errors := validateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals(LocalLogin, reqData)
		return c.Next()
	}
}

// ForgotPassword validator middleware
func ForgotPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ForgotPasswordRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Identifier = strings.TrimSpace(reqData.Identifier)

		if errors := validateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals(LocalForgotPassword, reqData)
		return c.Next()
	}
}

// addNonFieldError appends msg to any non field error already reported
func addNonFieldError(errors map[string]string, msg string) {
	if prev, ok := errors[nonFieldErrors]; ok {
		msg = prev + " " + msg
	}
	errors[nonFieldErrors] = msg
}

func lookupFailed(c *fiber.Ctx, err error) error {
	log.Printf("[AUTH] signup uniqueness lookup failed: %v", err)
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
}

// validateStruct runs the tag rules and returns one message per failing field
func validateStruct(req interface{}) map[string]string {
	errors := make(map[string]string)

	err := validate.Struct(req)
	if err == nil {
		return errors
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors[nonFieldErrors] = err.Error()
		return errors
	}
	for _, fe := range validationErrors {
		if _, seen := errors[fe.Field()]; seen {
			continue
		}
		errors[fe.Field()] = message(fe)
	}
	return errors
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return "Ensure this field has no more than " + fe.Param() + " characters."
	case "min":
		return "Ensure this field has at least " + fe.Param() + " characters."
	case "len":
		return "Ensure this field has exactly " + fe.Param() + " characters."
	case "email":
		return "Enter a valid email address."
	case "identifier":
		return "Invalid email or phone number format."
	case "username":
		return "Enter a valid username. Letters, digits and @/./+/-/_ only."
	case "phone_number":
		return "Phone number must be entered in the format: '+999999999'. Up to 15 digits allowed."
	case "special_char":
		return "Password must contain at least one special character."
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fe.Value())
	}
	return "Invalid value."
}
