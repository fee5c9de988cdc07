package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brrmrz19/secret-page-app/internal/middleware"
	"github.com/brrmrz19/secret-page-app/internal/models"
	ws "github.com/brrmrz19/secret-page-app/internal/websocket"
)

// SendFriendRequestBody represents the send-request body
type SendFriendRequestBody struct {
	ReceiverID string `json:"receiverId"`
}

// GetUsers returns every other user's profile ("people you may know")
func (h *Handler) GetUsers(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	profiles, err := h.users.ListOthers(c.Context(), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, profiles)
}

// GetFriends returns the caller's accepted friends with their profiles
func (h *Handler) GetFriends(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	friendIDs, err := h.friends.Friends(c.Context(), userID)
	if err != nil {
		return h.fail(c, err)
	}

	profiles, err := h.users.GetProfiles(c.Context(), friendIDs)
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, profiles)
}

// GetFriendRequests returns pending incoming requests with sender profiles
func (h *Handler) GetFriendRequests(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	requests, err := h.friends.PendingIncoming(c.Context(), userID)
	if err != nil {
		return h.fail(c, err)
	}

	senderIDs := make([]string, 0, len(requests))
	for _, req := range requests {
		senderIDs = append(senderIDs, req.SenderID)
	}
	profiles, err := h.users.GetProfiles(c.Context(), senderIDs)
	if err != nil {
		return h.fail(c, err)
	}

	byID := make(map[string]models.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	out := make([]models.FriendRequestWithSender, 0, len(requests))
	for _, req := range requests {
		out = append(out, models.FriendRequestWithSender{
			ID:       req.ID,
			SenderID: req.SenderID,
			Sender:   byID[req.SenderID],
		})
	}
	return ok(c, out)
}

// GetSentFriendRequests returns pending outgoing requests
func (h *Handler) GetSentFriendRequests(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	requests, err := h.friends.PendingOutgoing(c.Context(), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, requests)
}

// SendFriendRequest creates a pending request to another user
func (h *Handler) SendFriendRequest(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var body SendFriendRequestBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if body.ReceiverID == "" {
		return badRequest(c, "receiverId is required")
	}

	// The receiver must exist before any row is written
	if _, err := h.users.GetProfile(c.Context(), body.ReceiverID); err != nil {
		return h.fail(c, err)
	}

	req, err := h.friends.SendRequest(c.Context(), userID, body.ReceiverID)
	if err != nil {
		return h.fail(c, err)
	}

	h.notifyFriendEvent(c, ws.EventFriendRequestReceived, body.ReceiverID, userID)

	return created(c, req)
}

// CancelFriendRequest withdraws a pending request the caller sent
func (h *Handler) CancelFriendRequest(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	receiverID := c.Params("userId")

	if err := h.friends.CancelRequest(c.Context(), userID, receiverID); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Friend request canceled",
	})
}

// AcceptFriendRequest confirms a pending request addressed to the caller
func (h *Handler) AcceptFriendRequest(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	senderID := c.Params("userId")

	if err := h.friends.AcceptRequest(c.Context(), userID, senderID); err != nil {
		return h.fail(c, err)
	}

	h.notifyFriendEvent(c, ws.EventFriendRequestAccepted, senderID, userID)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Friend request accepted",
	})
}

// RejectFriendRequest deletes a pending request addressed to the caller
func (h *Handler) RejectFriendRequest(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	senderID := c.Params("userId")

	if err := h.friends.RejectRequest(c.Context(), userID, senderID); err != nil {
		return h.fail(c, err)
	}

	h.notifyFriendEvent(c, ws.EventFriendRequestRejected, senderID, userID)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Friend request rejected",
	})
}

// Unfriend removes an accepted friendship
func (h *Handler) Unfriend(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	friendID := c.Params("userId")

	if err := h.friends.Unfriend(c.Context(), userID, friendID); err != nil {
		return h.fail(c, err)
	}

	h.notifyFriendEvent(c, ws.EventFriendRemoved, friendID, userID)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Unfriended successfully",
	})
}

// notifyFriendEvent pushes a friend-state notification to recipientID about
// actorID. Best effort: a lookup failure only downgrades the payload.
func (h *Handler) notifyFriendEvent(c *fiber.Ctx, event ws.EventType, recipientID, actorID string) {
	var first, last string
	if profile, err := h.users.GetProfile(c.Context(), actorID); err == nil {
		first, last = profile.FirstName, profile.LastName
	}
	h.hub.NotifyUser(recipientID, ws.NewFriendEvent(event, actorID, first, last))
}
