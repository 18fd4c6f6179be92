package services

import (
	"errors"
	"time"

	"golmaster-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newID() string {
	return uuid.NewString()
}

type MatchService struct {
	DB *gorm.DB
}

func NewMatchService(db *gorm.DB) *MatchService {
	return &MatchService{DB: db}
}

// GetAllMatches handles GET /api/matches with optional stage/status filters.
func (s *MatchService) GetAllMatches(c *fiber.Ctx) error {
	db := s.DB.Model(&models.Match{}).Order("match_date asc")
	if stage := c.Query("stage"); stage != "" {
		db = db.Where("stage = ?", stage)
	}
	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var matches []models.Match
	if err := db.Find(&matches).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch matches"})
	}

	return c.JSON(fiber.Map{
		"matches": matches,
		"total":   len(matches),
	})
}

// GetMatchByID handles GET /api/matches/:id.
func (s *MatchService) GetMatchByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var match models.Match
	err := s.DB.First(&match, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "Match not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch match"})
	}

	return c.JSON(fiber.Map{"match": match})
}

type createMatchRequest struct {
	HomeTeamName      string  `json:"home_team_name"`
	AwayTeamName      string  `json:"away_team_name"`
	HomeTeamFlag      string  `json:"home_team_flag"`
	AwayTeamFlag      string  `json:"away_team_flag"`
	MatchDate         string  `json:"match_date"`
	StadiumName       string  `json:"stadium_name"`
	StadiumCity       string  `json:"stadium_city"`
	Status            string  `json:"status"`
	Stage             string  `json:"stage"`
	HomeScore         *int    `json:"home_score"`
	AwayScore         *int    `json:"away_score"`
	TvChannel         *string `json:"tv_channel"`
	StreamingPlatform *string `json:"streaming_platform"`
}

// CreateMatch handles POST /api/matches (manual match entry).
func (s *MatchService) CreateMatch(c *fiber.Ctx) error {
	var req createMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.HomeTeamName == "" || req.AwayTeamName == "" ||
		req.HomeTeamFlag == "" || req.AwayTeamFlag == "" ||
		req.MatchDate == "" || req.StadiumName == "" || req.StadiumCity == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Missing fields"})
	}

	matchDate, err := time.Parse(time.RFC3339, req.MatchDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid match_date (use RFC3339)"})
	}

	if (req.HomeScore != nil && *req.HomeScore < 0) || (req.AwayScore != nil && *req.AwayScore < 0) {
		return c.Status(400).JSON(fiber.Map{"error": "scores must be non-negative"})
	}

	status := req.Status
	if status == "" {
		status = models.MatchStatusScheduled
	}
	stage := req.Stage
	if stage == "" {
		stage = models.StageGroup
	}

	match := models.Match{
		ID:                newID(),
		HomeTeamName:      req.HomeTeamName,
		AwayTeamName:      req.AwayTeamName,
		HomeTeamFlag:      req.HomeTeamFlag,
		AwayTeamFlag:      req.AwayTeamFlag,
		MatchDate:         matchDate.UTC(),
		StadiumName:       req.StadiumName,
		StadiumCity:       req.StadiumCity,
		Status:            status,
		Stage:             stage,
		HomeScore:         req.HomeScore,
		AwayScore:         req.AwayScore,
		TvChannel:         req.TvChannel,
		StreamingPlatform: req.StreamingPlatform,
	}
	if err := s.DB.Create(&match).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create match"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"match": match})
}
