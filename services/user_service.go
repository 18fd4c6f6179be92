package services

import (
	"errors"
	"path/filepath"

	"golmaster-backend/middleware"
	"golmaster-backend/models"
	"golmaster-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// GetAllUsers handles GET /api/users.
func (s *UserService) GetAllUsers(c *fiber.Ctx) error {
	type userRow struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		Email     string  `json:"email"`
		Image     *string `json:"image"`
		CreatedAt string  `json:"created_at"`
	}

	var users []models.User
	if err := s.DB.Order("created_at asc").Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch users"})
	}

	rows := make([]userRow, len(users))
	for i, u := range users {
		rows[i] = userRow{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Image:     u.Image,
			CreatedAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	return c.JSON(rows)
}

// GetCurrentUser handles GET /api/users/me.
func (s *UserService) GetCurrentUser(c *fiber.Ctx) error {
	var user models.User
	err := s.DB.First(&user, "id = ?", middleware.UserID(c)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch user"})
	}

	return c.JSON(fiber.Map{"user": userResponse(&user)})
}

// UploadAvatar handles PUT /api/users/me/avatar (multipart field "avatar").
func (s *UserService) UploadAvatar(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	if !utils.StorageEnabled() {
		return c.Status(500).JSON(fiber.Map{"error": "Avatar storage is not configured"})
	}

	avatar, err := c.FormFile("avatar")
	if err != nil || avatar.Size == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Missing avatar file"})
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	ext := filepath.Ext(avatar.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := "avatars/" + uuid.NewString() + ext

	url, err := utils.UploadFileToStorage(avatar, key)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to upload avatar"})
	}

	user.Image = &url
	if err := s.DB.Save(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update avatar"})
	}

	return c.JSON(fiber.Map{"user": userResponse(&user)})
}
