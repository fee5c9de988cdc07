package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/brrmrz19/secret-page-app/internal/config"
)

// RateLimiter creates a rate limiting middleware
func RateLimiter(max int, expiration time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: expiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			// Use user ID if authenticated, otherwise use IP
			userID := c.Locals("userID")
			if userID != nil {
				return userID.(string)
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "Too many requests, please try again later",
			})
		},
	})
}

// StrictRateLimiter guards credential endpoints
func StrictRateLimiter(cfg *config.Config) fiber.Handler {
	return RateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)
}

// APIRateLimiter guards the general authenticated API surface
func APIRateLimiter(cfg *config.Config) fiber.Handler {
	return RateLimiter(cfg.APIRateLimit, time.Duration(cfg.APIRateWindowSec)*time.Second)
}
