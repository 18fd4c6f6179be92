package models

import "time"

// Friendship statuses. A declined or removed friendship is deleted, not
// marked, so there is no terminal status value.
const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
)

// Friendship is a directional edge: UserID sent the request, FriendID
// received it. Direction matters for accept/decline permissions; at most
// one row exists per unordered pair (the create path checks both
// directions before inserting).
type Friendship struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID   string `gorm:"index;not null" json:"user_id"`
	FriendID string `gorm:"index;not null" json:"friend_id"`
	Status   string `gorm:"type:varchar(20);default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
