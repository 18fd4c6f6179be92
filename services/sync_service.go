package services

import (
	"errors"
	"fmt"
	"log"

	"golmaster-backend/middleware"
	"golmaster-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SyncService pulls the WC2026 feed and reconciles it into the matches
// table, then recomputes prediction correctness for finished matches.
// The whole pass runs inside the triggering request; there is no partial
// cursor, so a mid-loop failure leaves earlier upserts committed and
// simply stops.
type SyncService struct {
	DB *gorm.DB

	// newClient is swappable so tests can point the sync at a local feed.
	newClient func() (*FixturesClient, error)
}

func NewSyncService(db *gorm.DB) *SyncService {
	return &SyncService{DB: db, newClient: NewFixturesClientFromEnv}
}

// SyncResult reports what a reconciliation pass did.
type SyncResult struct {
	NewMatches     int `json:"new_matches"`
	UpdatedMatches int `json:"matches_updated"`
	APIMatches     int `json:"api_matches"`
}

// errAmbiguousMatch is raised when the two reconciliation keys point at
// two different stored rows. The feed never defines which one is right,
// so the sync refuses to guess.
func errAmbiguousMatch(payload MatchPayload, byTeams, byVenue string) error {
	return fmt.Errorf(
		"ambiguous fixture %q vs %q at %s: team key matches row %s but venue key matches row %s",
		payload.HomeTeamName, payload.AwayTeamName, payload.MatchDate.Format("2006-01-02 15:04"),
		byTeams, byVenue,
	)
}

// findExisting resolves a payload against stored matches using the two
// reconciliation keys. The second key (kickoff + venue + stage) exists
// because the feed renames placeholder teams once real ones are known,
// while the venue/time/stage triple stays stable.
func (s *SyncService) findExisting(payload MatchPayload) (*models.Match, error) {
	var byTeams models.Match
	teamsErr := s.DB.
		Where("home_team_name = ? AND away_team_name = ? AND match_date = ?",
			payload.HomeTeamName, payload.AwayTeamName, payload.MatchDate).
		First(&byTeams).Error
	if teamsErr != nil && !errors.Is(teamsErr, gorm.ErrRecordNotFound) {
		return nil, teamsErr
	}

	var byVenue models.Match
	venueErr := s.DB.
		Where("match_date = ? AND stadium_name = ? AND stage = ?",
			payload.MatchDate, payload.StadiumName, payload.Stage).
		First(&byVenue).Error
	if venueErr != nil && !errors.Is(venueErr, gorm.ErrRecordNotFound) {
		return nil, venueErr
	}

	foundTeams := teamsErr == nil
	foundVenue := venueErr == nil

	switch {
	case foundTeams && foundVenue && byTeams.ID != byVenue.ID:
		return nil, errAmbiguousMatch(payload, byTeams.ID, byVenue.ID)
	case foundTeams:
		return &byTeams, nil
	case foundVenue:
		return &byVenue, nil
	}
	return nil, nil
}

// applyPayload overwrites every feed-owned field. Last write wins; the
// feed is the source of truth for anything it carries.
func applyPayload(m *models.Match, payload MatchPayload) {
	m.HomeTeamName = payload.HomeTeamName
	m.AwayTeamName = payload.AwayTeamName
	m.HomeTeamFlag = payload.HomeTeamFlag
	m.AwayTeamFlag = payload.AwayTeamFlag
	m.MatchDate = payload.MatchDate
	m.StadiumName = payload.StadiumName
	m.StadiumCity = payload.StadiumCity
	m.Status = payload.Status
	m.Stage = payload.Stage
	m.HomeScore = payload.HomeScore
	m.AwayScore = payload.AwayScore
}

// ReconcileMatches upserts mapped feed records one at a time. Idempotent:
// a second run over identical input finds every row by key and rewrites it
// with identical data. Matches absent from the feed are never deleted.
func (s *SyncService) ReconcileMatches(records []FixtureRecord) (SyncResult, error) {
	result := SyncResult{APIMatches: len(records)}

	for _, item := range records {
		payload := ToMatchPayload(item)

		existing, err := s.findExisting(payload)
		if err != nil {
			return result, err
		}

		var match *models.Match
		if existing != nil {
			applyPayload(existing, payload)
			if err := s.DB.Save(existing).Error; err != nil {
				return result, err
			}
			match = existing
			result.UpdatedMatches++
		} else {
			created := models.Match{ID: uuid.NewString()}
			applyPayload(&created, payload)
			if err := s.DB.Create(&created).Error; err != nil {
				return result, err
			}
			match = &created
			result.NewMatches++
		}

		if err := s.recomputeCorrectness(match); err != nil {
			return result, err
		}
	}

	return result, nil
}

// recomputeCorrectness stamps the exact-scoreline verdict on every
// prediction of a finished match. Blanket overwrite, so re-running after
// a score amendment fixes earlier verdicts too. Matches that are not
// finished (or finished without both scores, which the feed should never
// produce) are skipped and their predictions stay unknown.
func (s *SyncService) recomputeCorrectness(match *models.Match) error {
	if match.Status != models.MatchStatusFinished || match.HomeScore == nil || match.AwayScore == nil {
		return nil
	}

	return s.DB.Model(&models.Prediction{}).
		Where("match_id = ?", match.ID).
		Update("is_correct", gorm.Expr(
			"(predicted_home_score = ? AND predicted_away_score = ?)",
			*match.HomeScore, *match.AwayScore,
		)).Error
}

// runSync is the full pipeline: fetch, map, reconcile, recompute.
func (s *SyncService) runSync() (SyncResult, error) {
	client, err := s.newClient()
	if err != nil {
		return SyncResult{}, err
	}

	records, err := client.FetchMatches()
	if err != nil {
		return SyncResult{}, err
	}

	return s.ReconcileMatches(records)
}

type matchStats struct {
	TotalMatches     int64 `json:"total_matches"`
	ScheduledMatches int64 `json:"scheduled_matches"`
	LiveMatches      int64 `json:"live_matches"`
	FinishedMatches  int64 `json:"finished_matches"`
}

type predictionStats struct {
	TotalPredictions     int64 `json:"total_predictions"`
	CorrectPredictions   int64 `json:"correct_predictions"`
	IncorrectPredictions int64 `json:"incorrect_predictions"`
	PendingPredictions   int64 `json:"pending_predictions"`
}

func (s *SyncService) buildStats(userID string) (matchStats, predictionStats, error) {
	var ms matchStats
	var ps predictionStats

	if err := s.DB.Model(&models.Match{}).Count(&ms.TotalMatches).Error; err != nil {
		return ms, ps, err
	}
	for status, dst := range map[string]*int64{
		models.MatchStatusScheduled: &ms.ScheduledMatches,
		models.MatchStatusLive:      &ms.LiveMatches,
		models.MatchStatusFinished:  &ms.FinishedMatches,
	} {
		if err := s.DB.Model(&models.Match{}).Where("status = ?", status).Count(dst).Error; err != nil {
			return ms, ps, err
		}
	}

	if err := s.DB.Model(&models.Prediction{}).
		Where("user_id = ?", userID).
		Count(&ps.TotalPredictions).Error; err != nil {
		return ms, ps, err
	}
	if err := s.DB.Model(&models.Prediction{}).
		Where("user_id = ? AND is_correct = ?", userID, true).
		Count(&ps.CorrectPredictions).Error; err != nil {
		return ms, ps, err
	}
	if err := s.DB.Model(&models.Prediction{}).
		Where("user_id = ? AND is_correct = ?", userID, false).
		Count(&ps.IncorrectPredictions).Error; err != nil {
		return ms, ps, err
	}
	if err := s.DB.Model(&models.Prediction{}).
		Where("user_id = ? AND is_correct IS NULL", userID).
		Count(&ps.PendingPredictions).Error; err != nil {
		return ms, ps, err
	}

	return ms, ps, nil
}

// SyncMatches handles POST /api/sync-fifa.
func (s *SyncService) SyncMatches(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	result, err := s.runSync()
	if err != nil {
		if errors.Is(err, ErrFixturesNotConfigured) {
			log.Printf("❌ [SYNC] configuration error: %v", err)
			return c.Status(500).JSON(fiber.Map{"error": "WC2026 API key is not configured"})
		}
		log.Printf("❌ [SYNC] failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to sync matches from the fixtures feed"})
	}

	log.Printf("✅ [SYNC] done: %d new, %d updated (%d from feed)",
		result.NewMatches, result.UpdatedMatches, result.APIMatches)

	ms, ps, err := s.buildStats(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build sync stats"})
	}

	return c.JSON(fiber.Map{
		"ok":              true,
		"new_matches":     result.NewMatches,
		"matches_updated": result.UpdatedMatches,
		"api_matches":     result.APIMatches,
		"matches":         ms,
		"predictions":     ps,
	})
}

// GetSyncStats handles GET /api/sync-fifa.
func (s *SyncService) GetSyncStats(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	ms, ps, err := s.buildStats(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stats"})
	}

	return c.JSON(fiber.Map{
		"matches":     ms,
		"predictions": ps,
	})
}
