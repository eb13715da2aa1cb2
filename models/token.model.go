package models

import "time"

// AuthToken is the opaque bearer token handed out at login. Each user owns at most one.
type AuthToken struct {
	Key       string    `gorm:"primaryKey;size:40" json:"key"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
