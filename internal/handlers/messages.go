package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brrmrz19/secret-page-app/internal/middleware"
)

// MessageBody represents create/update message bodies
type MessageBody struct {
	Message string `json:"message"`
}

// GetMessages returns the caller's own secret messages
func (h *Handler) GetMessages(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	msgs, err := h.secrets.ListOwn(c.Context(), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, msgs)
}

// CreateMessage adds a new secret message owned by the caller
func (h *Handler) CreateMessage(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var body MessageBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	msg, err := h.secrets.Create(c.Context(), userID, body.Message)
	if err != nil {
		return h.fail(c, err)
	}
	return created(c, msg)
}

// UpdateMessage edits a secret message the caller owns
func (h *Handler) UpdateMessage(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	messageID := c.Params("messageId")

	var body MessageBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.secrets.Update(c.Context(), userID, messageID, body.Message); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Secret message updated",
	})
}

// DeleteMessage removes a secret message the caller owns
func (h *Handler) DeleteMessage(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	messageID := c.Params("messageId")

	if err := h.secrets.Delete(c.Context(), userID, messageID); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Secret message deleted",
	})
}

// GetFriendMessages returns a friend's secret messages. Visibility is
// enforced by the secrets service, not by the client.
func (h *Handler) GetFriendMessages(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	friendID := c.Params("friendId")

	msgs, err := h.secrets.ListFor(c.Context(), userID, friendID)
	if err != nil {
		return h.fail(c, err)
	}

	profile, err := h.users.GetProfile(c.Context(), friendID)
	if err != nil {
		return h.fail(c, err)
	}

	return ok(c, fiber.Map{
		"friend":   profile,
		"messages": msgs,
	})
}
