package authValidator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStructUsesJSONNames(t *testing.T) {
	errors := validateStruct(&VerifyOTPRequest{Identifier: "bad id", OTP: "12"})

	assert.Equal(t, "Invalid email or phone number format.", errors["identifier"])
	assert.Equal(t, "Ensure this field has exactly 6 characters.", errors["otp"])
}

func TestValidateStructAcceptsEitherIdentifierKind(t *testing.T) {
	assert.Empty(t, validateStruct(&SendOTPRequest{Identifier: "user@example.com"}))
	assert.Empty(t, validateStruct(&SendOTPRequest{Identifier: "+919876543210"}))
}

func TestSignupRules(t *testing.T) {
	req := &SignupRequest{
		Username:        "bad user!",
		Email:           "a@b.co",
		PhoneNumber:     "+919876543210",
		UserType:        "driver",
		Password:        "longenough",
		ConfirmPassword: "longenough",
	}

	errors := validateStruct(req)

	assert.Contains(t, errors, "username")
	assert.Equal(t, "Password must contain at least one special character.", errors["password"])
	assert.NotContains(t, errors, "phone_number")
	assert.NotContains(t, errors, "user_type")
}

func TestRejectsUnknownRole(t *testing.T) {
	errors := validateStruct(&SignupRequest{Username: "u", Email: "u@example.com", UserType: "pilot", Password: "p@ssword", ConfirmPassword: "p@ssword"})

	assert.Equal(t, `"pilot" is not a valid choice.`, errors["user_type"])
}

func TestIdentifierLengthLimit(t *testing.T) {
	long := make([]byte, 256)
	for i := range long {
		long[i] = '1'
	}

	errors := validateStruct(&SendOTPRequest{Identifier: string(long)})

	assert.Contains(t, errors, "identifier")
}
