package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golmaster-backend/handlers"
	"golmaster-backend/models"
	"golmaster-backend/services"
	"golmaster-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB, avatars are the only uploads
	})

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Match{},
		&models.Prediction{},
		&models.Friendship{},
		&models.UserSettings{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.InitStorage(); err != nil {
		log.Fatal("failed to initialize avatar storage:", err)
	}
	if !utils.StorageEnabled() {
		log.Println("⚠️  R2 storage not configured, avatar uploads disabled")
	}

	authService := services.NewAuthService(db)
	matchService := services.NewMatchService(db)
	predictionService := services.NewPredictionService(db)
	friendService := services.NewFriendService(db)
	settingsService := services.NewSettingsService(db)
	userService := services.NewUserService(db)
	syncService := services.NewSyncService(db)

	syncService.StartSyncScheduler()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("GolMaster backend online")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	handlers.SetupAuthRoutes(api, authService)
	handlers.SetupMatchRoutes(api, matchService, syncService)
	handlers.SetupSocialRoutes(api, predictionService, friendService, settingsService, userService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
