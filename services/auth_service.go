package services

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"golmaster-backend/middleware"
	"golmaster-backend/models"
	"golmaster-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

const tokenTTL = 7 * 24 * time.Hour

type AuthService struct {
	DB *gorm.DB

	// verifyGoogleToken is swappable in tests.
	verifyGoogleToken func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db, verifyGoogleToken: idtoken.Validate}
}

func (s *AuthService) signToken(userID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.JWTSecret())
}

func userResponse(u *models.User) fiber.Map {
	return fiber.Map{
		"id":          u.ID,
		"name":        u.Name,
		"email":       u.Email,
		"friend_code": u.FriendCode,
		"image":       u.Image,
	}
}

func (s *AuthService) friendCodeExists(code string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.User{}).Where("friend_code = ?", code).Count(&count).Error
	return count > 0, err
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/register.
func (s *AuthService) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Missing fields"})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to register"})
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "User already exists"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 8)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to register"})
	}
	hashStr := string(hash)

	friendCode, err := utils.GenerateUniqueFriendCode(s.friendCodeExists)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to register"})
	}

	user := models.User{
		ID:           newID(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: &hashStr,
		FriendCode:   friendCode,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		log.Printf("❌ [AUTH] register failed for %s: %v", email, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to register"})
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to register"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  userResponse(&user),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/login.
func (s *AuthService) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var user models.User
	err := s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to log in"})
	}

	if user.PasswordHash == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Use Google login"})
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to log in"})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  userResponse(&user),
	})
}

type googleLoginRequest struct {
	IDToken string `json:"id_token"`
}

// GoogleLogin handles POST /api/auth/google. The raw ID token is verified
// against the configured web and Android client ids; whichever audience
// validates first wins.
func (s *AuthService) GoogleLogin(c *fiber.Ctx) error {
	var req googleLoginRequest
	if err := c.BodyParser(&req); err != nil || req.IDToken == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Missing id_token"})
	}

	var audiences []string
	for _, env := range []string{"GOOGLE_CLIENT_ID_WEB", "GOOGLE_CLIENT_ID_ANDROID"} {
		if v := os.Getenv(env); v != "" {
			audiences = append(audiences, v)
		}
	}
	if len(audiences) == 0 {
		return c.Status(500).JSON(fiber.Map{"error": "Google client ids not set"})
	}

	var payload *idtoken.Payload
	var verifyErr error
	for _, aud := range audiences {
		payload, verifyErr = s.verifyGoogleToken(c.Context(), req.IDToken, aud)
		if verifyErr == nil {
			break
		}
	}
	if verifyErr != nil || payload == nil {
		log.Printf("❌ [AUTH] Google token rejected: %v", verifyErr)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid Google token"})
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid Google token"})
	}
	email = strings.ToLower(email)

	name, _ := payload.Claims["name"].(string)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	var image *string
	if picture, _ := payload.Claims["picture"].(string); picture != "" {
		image = &picture
	}

	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		friendCode, codeErr := utils.GenerateUniqueFriendCode(s.friendCodeExists)
		if codeErr != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to log in"})
		}
		user = models.User{
			ID:         newID(),
			Name:       name,
			Email:      email,
			Image:      image,
			FriendCode: friendCode,
		}
		if err := s.DB.Create(&user).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to log in"})
		}
	case err != nil:
		return c.Status(500).JSON(fiber.Map{"error": "Failed to log in"})
	default:
		user.Name = name
		if image != nil {
			user.Image = image
		}
		// accounts created before friend codes existed get one here
		if user.FriendCode == "" {
			friendCode, codeErr := utils.GenerateUniqueFriendCode(s.friendCodeExists)
			if codeErr != nil {
				return c.Status(500).JSON(fiber.Map{"error": "Failed to log in"})
			}
			user.FriendCode = friendCode
		}
		if err := s.DB.Save(&user).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to log in"})
		}
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to log in"})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  userResponse(&user),
	})
}
