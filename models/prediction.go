package models

import "time"

// Prediction is one user's scoreline pick for one match. The (user, match)
// pair is unique; writes replace the previous pick. IsCorrect stays nil
// until the match finishes, then holds the exact-scoreline verdict.
type Prediction struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID  string `gorm:"uniqueIndex:idx_predictions_user_match;not null" json:"user_id"`
	MatchID string `gorm:"uniqueIndex:idx_predictions_user_match;not null" json:"match_id"`

	PredictedHomeScore int `gorm:"not null" json:"predicted_home_score"`
	PredictedAwayScore int `gorm:"not null" json:"predicted_away_score"`

	IsCorrect *bool `json:"is_correct"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
