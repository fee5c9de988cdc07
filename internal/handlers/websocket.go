package handlers

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/brrmrz19/secret-page-app/internal/middleware"
	ws "github.com/brrmrz19/secret-page-app/internal/websocket"
)

// WebSocketUpgrade checks if the request should be upgraded to WebSocket
func (h *Handler) WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}

	return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{
		"success": false,
		"error":   "WebSocket upgrade required",
	})
}

// WebSocketHandler attaches a notification channel to the session user
func (h *Handler) WebSocketHandler(c *websocket.Conn) {
	userID, _ := c.Locals("userID").(string)
	if userID == "" {
		c.Close()
		return
	}

	client := ws.NewClient(userID, c, h.hub)
	h.hub.Register <- client

	go client.WritePump()
	client.ReadPump() // Blocks until the connection closes
}

// GetWebSocketStats returns notification channel statistics
func (h *Handler) GetWebSocketStats(c *fiber.Ctx) error {
	return ok(c, fiber.Map{
		"connectedClients": h.hub.ConnectedCount(),
		"connected":        h.hub.IsConnected(middleware.GetUserID(c)),
	})
}
