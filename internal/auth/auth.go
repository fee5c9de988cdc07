// Package auth implements the identity operations: registration, credential
// checks, session token issuance and account removal. Password storage is
// bcrypt, sessions are signed JWTs carried in the session cookie.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/brrmrz19/secret-page-app/internal/models"
	"github.com/brrmrz19/secret-page-app/internal/utils"
	"github.com/brrmrz19/secret-page-app/pkg/errors"
)

// UserStore is the account persistence the service needs. Implemented by
// store.Users.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash, firstName, lastName string) (*models.User, *models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	DeleteAccount(ctx context.Context, userID string) error
}

type Service struct {
	users      UserStore
	jwtSecret  string
	sessionTTL time.Duration
}

func NewService(users UserStore, jwtSecret string, sessionTTL time.Duration) *Service {
	return &Service{users: users, jwtSecret: jwtSecret, sessionTTL: sessionTTL}
}

// SessionTTL returns the configured session lifetime.
func (s *Service) SessionTTL() time.Duration {
	return s.sessionTTL
}

// SignUp registers a new account with its profile.
func (s *Service) SignUp(ctx context.Context, email, password, firstName, lastName string) (*models.User, *models.Profile, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, errors.New(errors.ErrCodeValidation, "a valid email is required")
	}
	if len(password) < 6 {
		return nil, nil, errors.New(errors.ErrCodeValidation, "password must be at least 6 characters")
	}
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return nil, nil, errors.New(errors.ErrCodeValidation, "first and last name are required")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeStore, "failed to hash password")
	}

	return s.users.Create(ctx, email, hash, strings.TrimSpace(firstName), strings.TrimSpace(lastName))
}

// SignIn verifies credentials and issues a session token.
func (s *Service) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, "", errors.New(errors.ErrCodeValidation, "email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, errors.ErrCodeNotFound) {
		// Same answer as a bad password so accounts are not enumerable.
		return nil, "", errors.New(errors.ErrCodeUnauthorized, "invalid email or password")
	}
	if err != nil {
		return nil, "", err
	}

	if !utils.CheckPassword(user.Password, password) {
		return nil, "", errors.New(errors.ErrCodeUnauthorized, "invalid email or password")
	}

	token, err := utils.GenerateSessionToken(user.ID, user.Email, s.jwtSecret, s.sessionTTL)
	if err != nil {
		return nil, "", errors.Wrap(err, errors.ErrCodeStore, "failed to generate session token")
	}
	return user, token, nil
}

// CurrentUser resolves a session token to its user id.
func (s *Service) CurrentUser(token string) (string, error) {
	claims, err := utils.ValidateSessionToken(token, s.jwtSecret)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeUnauthorized, "invalid or expired session")
	}
	return claims.UserID, nil
}

// DeleteUser removes the account and everything it owns. Safe to retry: the
// relational rows go first, the account row last.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.users.DeleteAccount(ctx, userID)
}
