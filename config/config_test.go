package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("OTP_EXPIRY_MINUTES", "")
	t.Setenv("TWILIO_ACCOUNT_SID", "")
	t.Setenv("DB_DRIVER", "")

	LoadConfig()

	assert.Equal(t, 5, AppConfig.OTPExpiryMinutes)
	assert.Equal(t, 5*time.Minute, AppConfig.OTPExpiry())
	assert.Equal(t, "postgres", AppConfig.DBDriver)
	assert.False(t, AppConfig.SMSEnabled())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("OTP_EXPIRY_MINUTES", "10")
	t.Setenv("OTP_RETENTION_HOURS", "2")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "secret")
	t.Setenv("TWILIO_PHONE_NUMBER", "+15005550006")

	LoadConfig()

	assert.Equal(t, 10*time.Minute, AppConfig.OTPExpiry())
	assert.Equal(t, 2*time.Hour, AppConfig.OTPRetention())
	assert.True(t, AppConfig.SMSEnabled())
}

func TestLoadConfigRejectsNonPositiveExpiry(t *testing.T) {
	t.Setenv("OTP_EXPIRY_MINUTES", "0")

	LoadConfig()

	assert.Equal(t, 5, AppConfig.OTPExpiryMinutes)
}

func TestGetEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SALT_ROUND", "ten")

	assert.Equal(t, 10, getEnvInt("SALT_ROUND", 10))
}
