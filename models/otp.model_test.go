package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOTPIsExpiredIsStrict(t *testing.T) {
	expires := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	otp := OTP{ExpiresAt: expires}

	assert.False(t, otp.IsExpired(expires.Add(-time.Second)))
	assert.False(t, otp.IsExpired(expires))
	assert.True(t, otp.IsExpired(expires.Add(time.Nanosecond)))
}

func TestUserOptionalContactValues(t *testing.T) {
	email := "driver@demo.com"
	u := User{Email: &email}

	assert.Equal(t, "driver@demo.com", u.EmailValue())
	assert.Equal(t, "", u.PhoneValue())
}
