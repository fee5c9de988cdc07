package handlers

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"

	"github.com/brrmrz19/secret-page-app/internal/auth"
	"github.com/brrmrz19/secret-page-app/internal/config"
	"github.com/brrmrz19/secret-page-app/internal/friendship"
	"github.com/brrmrz19/secret-page-app/internal/secrets"
	"github.com/brrmrz19/secret-page-app/internal/store"
	ws "github.com/brrmrz19/secret-page-app/internal/websocket"
	"github.com/brrmrz19/secret-page-app/pkg/errors"
	"github.com/brrmrz19/secret-page-app/pkg/logger"
)

// Handler bundles the services behind the HTTP surface. Everything is
// injected; no handler reaches for package-level state.
type Handler struct {
	cfg     *config.Config
	auth    *auth.Service
	friends *friendship.Service
	secrets *secrets.Service
	users   *store.Users
	hub     *ws.Hub
}

func New(cfg *config.Config, authSvc *auth.Service, friends *friendship.Service,
	secretsSvc *secrets.Service, users *store.Users, hub *ws.Hub) *Handler {
	return &Handler{
		cfg:     cfg,
		auth:    authSvc,
		friends: friends,
		secrets: secretsSvc,
		users:   users,
		hub:     hub,
	}
}

var statusByCode = map[string]int{
	errors.ErrCodeUnauthorized: fiber.StatusUnauthorized,
	errors.ErrCodeForbidden:    fiber.StatusForbidden,
	errors.ErrCodeNotFound:     fiber.StatusNotFound,
	errors.ErrCodeConflict:     fiber.StatusConflict,
	errors.ErrCodeValidation:   fiber.StatusBadRequest,
	errors.ErrCodeStore:        fiber.StatusInternalServerError,
}

// fail maps a service error onto the JSON envelope. Store failures are
// logged with their cause and answered generically.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	code := errors.Code(err)
	status, ok := statusByCode[code]
	if !ok {
		status = fiber.StatusInternalServerError
	}

	message := err.Error()
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		message = appErr.Message
	}

	if code == errors.ErrCodeStore {
		logger.Error("store operation failed", "path", c.Path(), "error", err)
		message = "Something went wrong, please try again"
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func ok(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}
