package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brrmrz19/secret-page-app/internal/auth"
)

// SessionCookie is the cookie carrying the session token
const SessionCookie = "session"

// Session validates the session cookie and stores the caller's user id in
// the request context.
func Session(authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Unauthorized - No session provided",
			})
		}

		userID, err := authSvc.CurrentUser(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Unauthorized - Invalid or expired session",
			})
		}

		c.Locals("userID", userID)
		return c.Next()
	}
}

// GetUserID gets the authenticated user id from the request context
func GetUserID(c *fiber.Ctx) string {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return ""
	}
	return userID
}
