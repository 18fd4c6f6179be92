package models

import "time"

// Match lifecycle statuses. Transitions are forward-only
// (scheduled -> live -> finished); nothing in the backend reverts them.
const (
	MatchStatusScheduled = "scheduled"
	MatchStatusLive      = "live"
	MatchStatusFinished  = "finished"
)

// Competition stages as stored. Group-stage matches carry the group
// letter (group_a .. group_l); group_stage is the catch-all.
const (
	StageGroup        = "group_stage"
	StageRoundOf32    = "round_of_32"
	StageRoundOf16    = "round_of_16"
	StageQuarterFinal = "quarter_final"
	StageSemiFinal    = "semi_final"
	StageThirdPlace   = "third_place"
	StageFinal        = "final"
)

// Match is a World Cup fixture as stored locally. Rows are created either
// by an admin through the API or by the WC2026 feed reconciler; the feed
// overwrites every field on update (last write wins).
type Match struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	HomeTeamName string    `gorm:"index;not null" json:"home_team_name"`
	AwayTeamName string    `gorm:"not null" json:"away_team_name"`
	HomeTeamFlag string    `json:"home_team_flag"`
	AwayTeamFlag string    `json:"away_team_flag"`
	MatchDate    time.Time `gorm:"index;not null" json:"match_date"` // kickoff, UTC
	StadiumName  string    `json:"stadium_name"`
	StadiumCity  string    `json:"stadium_city"`
	Status       string    `gorm:"type:varchar(16);default:'scheduled'" json:"status"`
	Stage        string    `gorm:"type:varchar(32);default:'group_stage'" json:"stage"`

	// Present once the match is live or finished.
	HomeScore *int `json:"home_score"`
	AwayScore *int `json:"away_score"`

	// Broadcast metadata, optional.
	TvChannel         *string `json:"tv_channel"`
	StreamingPlatform *string `json:"streaming_platform"`

	Timestamps
}
