package services

import (
	"errors"

	"golmaster-backend/middleware"
	"golmaster-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

func settingsResponse(s *models.UserSettings) fiber.Map {
	return fiber.Map{
		"settings": fiber.Map{
			"language":              s.Language,
			"timezone":              s.Timezone,
			"notifications_enabled": s.NotificationsEnabled,
		},
	}
}

// loadOrCreate returns the user's settings row, creating it with defaults
// on first read.
func (s *SettingsService) loadOrCreate(userID string) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := s.DB.Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.UserSettings{
			ID:                   newID(),
			UserID:               userID,
			Language:             "pt",
			Timezone:             "America/Sao_Paulo",
			NotificationsEnabled: true,
		}
		if err := s.DB.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// GetSettings handles GET /api/user-settings.
func (s *SettingsService) GetSettings(c *fiber.Ctx) error {
	settings, err := s.loadOrCreate(middleware.UserID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch settings"})
	}
	return c.JSON(settingsResponse(settings))
}

// SettingsPatch carries optional fields for a partial update. Only non-nil
// fields are written.
type SettingsPatch struct {
	Language             *string `json:"language"`
	Timezone             *string `json:"timezone"`
	NotificationsEnabled *bool   `json:"notifications_enabled"`
}

func (p SettingsPatch) columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Language != nil {
		cols["language"] = *p.Language
	}
	if p.Timezone != nil {
		cols["timezone"] = *p.Timezone
	}
	if p.NotificationsEnabled != nil {
		cols["notifications_enabled"] = *p.NotificationsEnabled
	}
	return cols
}

// UpdateSettings handles PUT /api/user-settings.
func (s *SettingsService) UpdateSettings(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var patch SettingsPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if patch.Language != nil && *patch.Language != "pt" && *patch.Language != "en" {
		return c.Status(400).JSON(fiber.Map{"error": "language must be pt or en"})
	}

	settings, err := s.loadOrCreate(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update settings"})
	}

	if cols := patch.columns(); len(cols) > 0 {
		if err := s.DB.Model(settings).Updates(cols).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to update settings"})
		}
	}

	return c.JSON(settingsResponse(settings))
}
