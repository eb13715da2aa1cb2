package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port        string
	CorsOrigins string
	SaltRound   int

	DBDriver   string // postgres, mysql or sqlite
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	OTPExpiryMinutes  int
	OTPSweepSchedule  string
	OTPRetentionHours int

	EmailSender     string
	EmailSenderName string
	SendGridApiKey  string
	SMTPHost        string
	SMTPPort        int
	SMTPUser        string
	Password        string // SMTP Password

	TwilioAccountSid  string
	TwilioAuthToken   string
	TwilioPhoneNumber string
	TwilioApiURL      string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:        getEnv("PORT", "3000"),
		CorsOrigins: getEnv("CORS_ORIGINS", "*"),
		SaltRound:   getEnvInt("SALT_ROUND", 10),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "ambulance"),
		DBPort:     getEnv("DB_PORT", "5432"),

		OTPExpiryMinutes:  getEnvInt("OTP_EXPIRY_MINUTES", 5),
		OTPSweepSchedule:  getEnv("OTP_SWEEP_SCHEDULE", "@every 1h"),
		OTPRetentionHours: getEnvInt("OTP_RETENTION_HOURS", 24),

		EmailSender:     getEnv("EMAIL_SENDER", "noreply@smartambulance.local"),
		EmailSenderName: getEnv("EMAIL_SENDER_NAME", "Smart Ambulance System"),
		SendGridApiKey:  getEnv("SENDGRID_API_KEY", ""),
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getEnvInt("SMTP_PORT", 587),
		SMTPUser:        getEnv("SMTP_USER", ""),
		Password:        getEnv("PASSWORD", ""),

		TwilioAccountSid:  getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:   getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioPhoneNumber: getEnv("TWILIO_PHONE_NUMBER", ""),
		TwilioApiURL:      getEnv("TWILIO_API_URL", "https://api.twilio.com"),
	}

	if AppConfig.OTPExpiryMinutes <= 0 {
		log.Printf("Warning: OTP_EXPIRY_MINUTES must be positive, falling back to 5.")
		AppConfig.OTPExpiryMinutes = 5
	}
	if AppConfig.SendGridApiKey == "" && AppConfig.SMTPHost == "" {
		log.Println("Warning: No email provider configured. Email OTPs will be written to the console.")
	}
	if !AppConfig.SMSEnabled() {
		log.Println("Warning: Twilio credentials missing. SMS OTPs will be written to the console.")
	}
}

// OTPExpiry returns the configured OTP lifetime
func (c *Config) OTPExpiry() time.Duration {
	return time.Duration(c.OTPExpiryMinutes) * time.Minute
}

// OTPRetention is how long expired OTP rows are kept before the sweeper removes them
func (c *Config) OTPRetention() time.Duration {
	return time.Duration(c.OTPRetentionHours) * time.Hour
}

// SMSEnabled reports whether a real SMS provider is configured
func (c *Config) SMSEnabled() bool {
	return c.TwilioAccountSid != "" && c.TwilioAuthToken != "" && c.TwilioPhoneNumber != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
