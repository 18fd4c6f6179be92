package models

import "time"

// UserSettings holds per-user preferences. A row is created lazily with
// these defaults the first time the user reads their settings.
type UserSettings struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"uniqueIndex;not null" json:"user_id"`

	Language             string `gorm:"type:varchar(8);default:'pt'" json:"language"`
	Timezone             string `gorm:"default:'America/Sao_Paulo'" json:"timezone"`
	NotificationsEnabled bool   `gorm:"default:true" json:"notifications_enabled"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
