package services

import (
	"errors"

	"golmaster-backend/middleware"
	"golmaster-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PredictionService struct {
	DB *gorm.DB
}

func NewPredictionService(db *gorm.DB) *PredictionService {
	return &PredictionService{DB: db}
}

// GetUserPredictions handles GET /api/predictions.
func (s *PredictionService) GetUserPredictions(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var predictions []models.Prediction
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&predictions).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch predictions"})
	}

	return c.JSON(fiber.Map{
		"predictions": predictions,
		"total":       len(predictions),
	})
}

type upsertPredictionRequest struct {
	MatchID            string `json:"match_id"`
	PredictedHomeScore *int   `json:"predicted_home_score"`
	PredictedAwayScore *int   `json:"predicted_away_score"`
}

// UpsertPrediction handles POST /api/predictions. One row per (user,
// match); a repeat write replaces the pick and re-opens correctness.
// Writes are only accepted while the match is strictly scheduled.
func (s *PredictionService) UpsertPrediction(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req upsertPredictionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.MatchID == "" || req.PredictedHomeScore == nil || req.PredictedAwayScore == nil {
		return c.Status(400).JSON(fiber.Map{"error": "Missing fields"})
	}
	if *req.PredictedHomeScore < 0 || *req.PredictedAwayScore < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Predicted scores must be non-negative"})
	}

	var match models.Match
	err := s.DB.First(&match, "id = ?", req.MatchID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "Match not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save prediction"})
	}

	if match.Status != models.MatchStatusScheduled {
		return c.Status(400).JSON(fiber.Map{"error": "Cannot predict on finished or live matches"})
	}

	prediction := models.Prediction{
		ID:                 newID(),
		UserID:             userID,
		MatchID:            req.MatchID,
		PredictedHomeScore: *req.PredictedHomeScore,
		PredictedAwayScore: *req.PredictedAwayScore,
		IsCorrect:          nil,
	}
	// Conflict on (user_id, match_id) replaces the pick and resets the
	// verdict to unknown in the same statement.
	err = s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "match_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"predicted_home_score", "predicted_away_score", "is_correct", "updated_at",
		}),
	}).Create(&prediction).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save prediction"})
	}

	var saved models.Prediction
	if err := s.DB.Where("user_id = ? AND match_id = ?", userID, req.MatchID).First(&saved).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save prediction"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"prediction": saved})
}

// DeletePrediction handles DELETE /api/predictions/:matchId. The same
// write boundary as upserts applies: once the match is live the pick is
// locked in, including against deletion.
func (s *PredictionService) DeletePrediction(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	matchID := c.Params("matchId")

	var prediction models.Prediction
	err := s.DB.Where("user_id = ? AND match_id = ?", userID, matchID).First(&prediction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "Prediction not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete prediction"})
	}

	var match models.Match
	if err := s.DB.First(&match, "id = ?", matchID).Error; err == nil {
		if match.Status != models.MatchStatusScheduled {
			return c.Status(400).JSON(fiber.Map{"error": "Cannot delete predictions on finished or live matches"})
		}
	}

	if err := s.DB.Delete(&prediction).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete prediction"})
	}

	return c.JSON(fiber.Map{"ok": true})
}
