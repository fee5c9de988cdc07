package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/brrmrz19/secret-page-app/internal/auth"
	"github.com/brrmrz19/secret-page-app/internal/config"
	"github.com/brrmrz19/secret-page-app/internal/handlers"
	"github.com/brrmrz19/secret-page-app/internal/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App, cfg *config.Config, authSvc *auth.Service, h *handlers.Handler) {
	// API v1 group
	api := app.Group("/api/v1")

	// Health check (public)
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Secret Page API is running",
		})
	})

	session := middleware.Session(authSvc)

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/register", middleware.StrictRateLimiter(cfg), h.Register)
	authGroup.Post("/login", middleware.StrictRateLimiter(cfg), h.Login)
	authGroup.Post("/logout", session, h.Logout)
	authGroup.Get("/me", session, h.GetMe)
	authGroup.Delete("/account", session, h.DeleteAccount)

	// User directory (protected)
	api.Get("/users", session, middleware.APIRateLimiter(cfg), h.GetUsers)

	// Friend routes (protected)
	friends := api.Group("/friends", session, middleware.APIRateLimiter(cfg))
	friends.Get("/", h.GetFriends)
	friends.Get("/requests", h.GetFriendRequests)
	friends.Get("/requests/sent", h.GetSentFriendRequests)
	friends.Post("/requests", h.SendFriendRequest)
	friends.Delete("/requests/:userId", h.CancelFriendRequest)
	friends.Post("/requests/:userId/accept", h.AcceptFriendRequest)
	friends.Post("/requests/:userId/reject", h.RejectFriendRequest)
	friends.Delete("/:userId", h.Unfriend)

	// Secret message routes (protected)
	messages := api.Group("/messages", session, middleware.APIRateLimiter(cfg))
	messages.Get("/", h.GetMessages)
	messages.Post("/", h.CreateMessage)
	messages.Put("/:messageId", h.UpdateMessage)
	messages.Delete("/:messageId", h.DeleteMessage)
	messages.Get("/friend/:friendId", h.GetFriendMessages)

	// Notification channel (protected)
	api.Get("/ws", session, h.WebSocketUpgrade, websocket.New(h.WebSocketHandler))
	api.Get("/ws/stats", session, h.GetWebSocketStats)
}
