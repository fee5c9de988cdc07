package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/brrmrz19/secret-page-app/internal/middleware"
	"github.com/brrmrz19/secret-page-app/pkg/logger"
)

// RegisterRequest represents registration request body
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration
func (h *Handler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, profile, err := h.auth.SignUp(c.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		return h.fail(c, err)
	}

	// The session starts immediately on registration
	_, token, err := h.auth.SignIn(c.Context(), req.Email, req.Password)
	if err != nil {
		return h.fail(c, err)
	}

	h.setSessionCookie(c, token)
	logger.Info("user registered", "userId", user.ID)

	return created(c, user.ToResponse(profile))
}

// Login handles user login
func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, token, err := h.auth.SignIn(c.Context(), req.Email, req.Password)
	if err != nil {
		return h.fail(c, err)
	}

	profile, err := h.users.GetProfile(c.Context(), user.ID)
	if err != nil {
		return h.fail(c, err)
	}

	h.setSessionCookie(c, token)

	return ok(c, user.ToResponse(profile))
}

// GetMe returns the current authenticated user
func (h *Handler) GetMe(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	user, err := h.users.GetByID(c.Context(), userID)
	if err != nil {
		return h.fail(c, err)
	}
	profile, err := h.users.GetProfile(c.Context(), userID)
	if err != nil {
		return h.fail(c, err)
	}

	return ok(c, user.ToResponse(profile))
}

// Logout clears the session cookie
func (h *Handler) Logout(c *fiber.Ctx) error {
	h.clearSessionCookie(c)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

// DeleteAccount removes the caller's account and everything it owns
func (h *Handler) DeleteAccount(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	if err := h.auth.DeleteUser(c.Context(), userID); err != nil {
		return h.fail(c, err)
	}

	h.clearSessionCookie(c)
	logger.Info("account deleted", "userId", userID)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Account deleted successfully",
	})
}

func (h *Handler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		HTTPOnly: true,
		Secure:   h.cfg.AppEnv == "production",
		SameSite: "Lax",
		MaxAge:   int(h.cfg.SessionTTL() / time.Second),
	})
}

func (h *Handler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		HTTPOnly: true,
		Secure:   h.cfg.AppEnv == "production",
		SameSite: "Lax",
		MaxAge:   -1, // Delete cookie
	})
}
