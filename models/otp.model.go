package models

import (
	"time"

	"gorm.io/gorm"
)

// OTP is a one-time passcode issued to an email address or phone number.
// Superseded codes are soft deleted, so default scopes only ever see the live ones.
type OTP struct {
	gorm.Model
	Identifier string    `gorm:"size:255;not null;index:idx_otp_lookup,priority:1" json:"identifier"`
	Code       string    `gorm:"size:6;not null;index:idx_otp_lookup,priority:2" json:"-"`
	IssuedAt   time.Time `gorm:"not null" json:"issued_at"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
	IsUsed     bool      `gorm:"default:false;not null" json:"is_used"`
}

// IsExpired reports whether the code is past its expiry. A code checked exactly at
// ExpiresAt is still valid.
func (o *OTP) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
