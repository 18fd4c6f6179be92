package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an account holder. PasswordHash is nil for accounts created
// through Google sign-in only.
type User struct {
	ID           string  `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string  `gorm:"not null" json:"name"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"` // stored lowercase
	PasswordHash *string `json:"-"`
	Image        *string `json:"image,omitempty"`
	FriendCode   string  `gorm:"uniqueIndex;not null" json:"friend_code"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
