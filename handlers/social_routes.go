package handlers

import (
	"golmaster-backend/middleware"
	"golmaster-backend/services"

	"github.com/gofiber/fiber/v2"
)

// SetupSocialRoutes wires everything tied to the authenticated user:
// predictions, friendships, settings and the user surface.
func SetupSocialRoutes(
	api fiber.Router,
	predictionService *services.PredictionService,
	friendService *services.FriendService,
	settingsService *services.SettingsService,
	userService *services.UserService,
) {
	secured := api.Group("/", middleware.AuthMiddleware())

	// Predictions
	secured.Get("/predictions", predictionService.GetUserPredictions)
	secured.Post("/predictions", predictionService.UpsertPrediction)
	secured.Delete("/predictions/:matchId", predictionService.DeletePrediction)

	// Friendships
	secured.Get("/friends", friendService.GetFriends)
	secured.Post("/friends", friendService.CreateFriendRequest)
	secured.Put("/friends/:id", friendService.RespondFriendRequest)
	secured.Delete("/friends/:id", friendService.RemoveFriend)

	// User settings
	secured.Get("/user-settings", settingsService.GetSettings)
	secured.Put("/user-settings", settingsService.UpdateSettings)

	// Users
	secured.Get("/users", userService.GetAllUsers)
	secured.Get("/users/me", userService.GetCurrentUser)
	secured.Put("/users/me/avatar", userService.UploadAvatar)
}
