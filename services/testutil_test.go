package services

import (
	"testing"
	"time"

	"golmaster-backend/middleware"
	"golmaster-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB returns an isolated in-memory database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps every session on the same :memory: db
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Match{},
		&models.Prediction{},
		&models.Friendship{},
		&models.UserSettings{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email, friendCode string) models.User {
	t.Helper()
	user := models.User{
		ID:         newID(),
		Name:       name,
		Email:      email,
		FriendCode: friendCode,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestMatch(t *testing.T, db *gorm.DB, home, away, status string) models.Match {
	t.Helper()
	match := models.Match{
		ID:           newID(),
		HomeTeamName: home,
		AwayTeamName: away,
		MatchDate:    time.Date(2026, 6, 11, 18, 0, 0, 0, time.UTC),
		StadiumName:  "Estadio Azteca",
		StadiumCity:  "Mexico City",
		Status:       status,
		Stage:        models.StageGroup,
	}
	require.NoError(t, db.Create(&match).Error)
	return match
}

func testToken(t *testing.T, userID string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.JWTSecret())
	require.NoError(t, err)
	return token
}

// newTestApp wires a Fiber app with the full secured API surface against db.
func newTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	api := app.Group("/api")

	authService := NewAuthService(db)
	matchService := NewMatchService(db)
	predictionService := NewPredictionService(db)
	friendService := NewFriendService(db)
	settingsService := NewSettingsService(db)
	userService := NewUserService(db)
	syncService := NewSyncService(db)

	api.Post("/register", authService.Register)
	api.Post("/login", authService.Login)
	api.Post("/auth/google", authService.GoogleLogin)

	api.Get("/matches", matchService.GetAllMatches)
	api.Get("/matches/:id", matchService.GetMatchByID)

	secured := api.Group("/", middleware.AuthMiddleware())
	secured.Post("/matches", matchService.CreateMatch)
	secured.Post("/sync-fifa", syncService.SyncMatches)
	secured.Get("/sync-fifa", syncService.GetSyncStats)
	secured.Get("/predictions", predictionService.GetUserPredictions)
	secured.Post("/predictions", predictionService.UpsertPrediction)
	secured.Delete("/predictions/:matchId", predictionService.DeletePrediction)
	secured.Get("/friends", friendService.GetFriends)
	secured.Post("/friends", friendService.CreateFriendRequest)
	secured.Put("/friends/:id", friendService.RespondFriendRequest)
	secured.Delete("/friends/:id", friendService.RemoveFriend)
	secured.Get("/user-settings", settingsService.GetSettings)
	secured.Put("/user-settings", settingsService.UpdateSettings)
	secured.Get("/users", userService.GetAllUsers)
	secured.Get("/users/me", userService.GetCurrentUser)

	return app
}
