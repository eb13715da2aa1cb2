package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles a platform account can hold
const (
	UserTypePatient  = "patient"
	UserTypeDriver   = "driver"
	UserTypeHospital = "hospital"
	UserTypeAdmin    = "admin"
)

// UserTypes lists every accepted role, in display order
var UserTypes = []string{UserTypePatient, UserTypeDriver, UserTypeHospital, UserTypeAdmin}

type User struct {
	gorm.Model
	Username    string     `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email       *string    `gorm:"size:254;uniqueIndex" json:"email"`
	PhoneNumber *string    `gorm:"size:17;uniqueIndex" json:"phone_number"`
	FirstName   string     `gorm:"size:150;default:''" json:"first_name"`
	LastName    string     `gorm:"size:150;default:''" json:"last_name"`
	UserType    string     `gorm:"size:10;default:'patient';not null" json:"user_type"`
	Password    string     `gorm:"not null" json:"-"`
	IsVerified  bool       `gorm:"default:false" json:"is_verified"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	IsStaff     bool       `gorm:"default:false" json:"is_staff"`
	LastLogin   *time.Time `json:"last_login"`
}

// EmailValue returns the email or an empty string when none is set
func (u *User) EmailValue() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

// PhoneValue returns the phone number or an empty string when none is set
func (u *User) PhoneValue() string {
	if u.PhoneNumber == nil {
		return ""
	}
	return *u.PhoneNumber
}
