package handlers

import (
	"golmaster-backend/middleware"
	"golmaster-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupMatchRoutes(api fiber.Router, matchService *services.MatchService, syncService *services.SyncService) {
	// 🔓 Public — match browsing needs no account
	api.Get("/matches", matchService.GetAllMatches)
	api.Get("/matches/:id", matchService.GetMatchByID)

	// 🔐 Authenticated
	secured := api.Group("/", middleware.AuthMiddleware())
	secured.Post("/matches", matchService.CreateMatch)

	// Fixture feed sync trigger + stats
	secured.Post("/sync-fifa", syncService.SyncMatches)
	secured.Get("/sync-fifa", syncService.GetSyncStats)
}
