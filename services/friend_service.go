package services

import (
	"errors"
	"math"
	"strings"

	"golmaster-backend/middleware"
	"golmaster-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type FriendService struct {
	DB *gorm.DB
}

func NewFriendService(db *gorm.DB) *FriendService {
	return &FriendService{DB: db}
}

type friendSummary struct {
	FriendshipID       string  `json:"friendship_id"`
	Status             string  `json:"status"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	Image              *string `json:"image"`
	TotalPredictions   int64   `json:"total_predictions"`
	CorrectPredictions int64   `json:"correct_predictions"`
	SuccessRate        float64 `json:"success_rate"`
}

// GetFriends handles GET /api/friends?status=. Lists relationships the
// caller is on either side of, with the other party's prediction stats.
func (s *FriendService) GetFriends(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	status := c.Query("status", models.FriendshipAccepted)

	var friendships []models.Friendship
	err := s.DB.Where("status = ? AND (user_id = ? OR friend_id = ?)", status, userID, userID).
		Order("created_at desc").
		Find(&friendships).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch friends"})
	}

	friends := make([]friendSummary, 0, len(friendships))
	for _, f := range friendships {
		otherID := f.UserID
		if f.UserID == userID {
			otherID = f.FriendID
		}

		var other models.User
		if err := s.DB.First(&other, "id = ?", otherID).Error; err != nil {
			continue
		}

		var total, correct int64
		if err := s.DB.Model(&models.Prediction{}).Where("user_id = ?", otherID).Count(&total).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch friends"})
		}
		if err := s.DB.Model(&models.Prediction{}).
			Where("user_id = ? AND is_correct = ?", otherID, true).
			Count(&correct).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch friends"})
		}

		rate := 0.0
		if total > 0 {
			rate = math.Round(float64(correct) / float64(total) * 100)
		}

		friends = append(friends, friendSummary{
			FriendshipID:       f.ID,
			Status:             f.Status,
			Name:               other.Name,
			Email:              other.Email,
			Image:              other.Image,
			TotalPredictions:   total,
			CorrectPredictions: correct,
			SuccessRate:        rate,
		})
	}

	return c.JSON(fiber.Map{
		"friends": friends,
		"total":   len(friends),
	})
}

type createFriendRequest struct {
	FriendEmail string `json:"friend_email"`
	FriendCode  string `json:"friend_code"`
}

// CreateFriendRequest handles POST /api/friends. The target may be named
// by email or by friend code; code wins when both are sent.
func (s *FriendService) CreateFriendRequest(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req createFriendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.FriendEmail == "" && req.FriendCode == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Missing friend_email or friend_code"})
	}

	var friend models.User
	var err error
	if req.FriendCode != "" {
		err = s.DB.Where("friend_code = ?", strings.ToUpper(strings.TrimSpace(req.FriendCode))).First(&friend).Error
	} else {
		err = s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.FriendEmail))).First(&friend).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to add friend"})
	}

	if friend.ID == userID {
		return c.Status(400).JSON(fiber.Map{"error": "Cannot add yourself"})
	}

	// one relationship per pair, regardless of who asked first
	var count int64
	err = s.DB.Model(&models.Friendship{}).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			userID, friend.ID, friend.ID, userID).
		Count(&count).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to add friend"})
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Already friends or pending"})
	}

	friendship := models.Friendship{
		ID:       newID(),
		UserID:   userID,
		FriendID: friend.ID,
		Status:   models.FriendshipPending,
	}
	if err := s.DB.Create(&friendship).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to add friend"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"friendship": fiber.Map{
			"id":     friendship.ID,
			"status": friendship.Status,
		},
	})
}

type respondFriendRequest struct {
	Action string `json:"action"`
}

// RespondFriendRequest handles PUT /api/friends/:id with
// {action: accept|decline}. Only the recipient may accept; declining
// deletes the row outright.
func (s *FriendService) RespondFriendRequest(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	id := c.Params("id")

	var req respondFriendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var friendship models.Friendship
	err := s.DB.First(&friendship, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "Friendship not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update friendship"})
	}

	if friendship.UserID != userID && friendship.FriendID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	switch req.Action {
	case "accept":
		if friendship.FriendID != userID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only recipient can accept"})
		}
		friendship.Status = models.FriendshipAccepted
		if err := s.DB.Save(&friendship).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to update friendship"})
		}
		return c.JSON(fiber.Map{
			"friendship": fiber.Map{
				"id":     friendship.ID,
				"status": friendship.Status,
			},
		})
	case "decline":
		if friendship.FriendID != userID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only recipient can decline"})
		}
		if err := s.DB.Delete(&friendship).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to update friendship"})
		}
		return c.JSON(fiber.Map{"ok": true})
	}

	return c.Status(400).JSON(fiber.Map{"error": "Invalid action"})
}

// RemoveFriend handles DELETE /api/friends/:id. Either party may remove
// the relationship unilaterally.
func (s *FriendService) RemoveFriend(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	id := c.Params("id")

	var friendship models.Friendship
	err := s.DB.First(&friendship, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "Friendship not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to remove friendship"})
	}

	if friendship.UserID != userID && friendship.FriendID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	if err := s.DB.Delete(&friendship).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to remove friendship"})
	}

	return c.JSON(fiber.Map{"ok": true})
}
