package handlers

import (
	"golmaster-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(api fiber.Router, authService *services.AuthService) {
	// 🔓 Public — these issue the tokens everything else requires
	api.Post("/register", authService.Register)
	api.Post("/login", authService.Login)
	api.Post("/auth/google", authService.GoogleLogin)
}
