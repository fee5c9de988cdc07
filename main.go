package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/brrmrz19/secret-page-app/internal/auth"
	"github.com/brrmrz19/secret-page-app/internal/config"
	"github.com/brrmrz19/secret-page-app/internal/database"
	"github.com/brrmrz19/secret-page-app/internal/friendship"
	"github.com/brrmrz19/secret-page-app/internal/handlers"
	"github.com/brrmrz19/secret-page-app/internal/routes"
	"github.com/brrmrz19/secret-page-app/internal/secrets"
	"github.com/brrmrz19/secret-page-app/internal/store"
	ws "github.com/brrmrz19/secret-page-app/internal/websocket"
	"github.com/brrmrz19/secret-page-app/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init()
	defer logger.Sync()

	// Connect to database
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}
	logger.Info("database connected")

	// Wire stores and services
	users := store.NewUsers(pool)
	friendRequests := store.NewFriendRequests(pool)
	messages := store.NewMessages(pool)

	authSvc := auth.NewService(users, cfg.JWTSecret, cfg.SessionTTL())
	friendSvc := friendship.NewService(friendRequests)
	secretSvc := secrets.NewService(messages, friendSvc)

	hub := ws.NewHub()
	go hub.Run()

	h := handlers.New(cfg, authSvc, friendSvc, secretSvc, users, hub)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Secret Page API v1.0",
	})

	// Middleware
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowCredentials: true,
	}))

	// Setup routes
	routes.SetupRoutes(app, cfg, authSvc, h)

	logger.Info("server starting", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("Server stopped", err)
	}
}
