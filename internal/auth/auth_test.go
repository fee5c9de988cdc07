package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/brrmrz19/secret-page-app/internal/models"
	"github.com/brrmrz19/secret-page-app/internal/utils"
	"github.com/brrmrz19/secret-page-app/pkg/errors"
)

const testSecret = "test_secret_key_minimum_32_chars_long"

type memUsers struct {
	byEmail map[string]*models.User
	nextID  int
	deleted []string
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: make(map[string]*models.User)}
}

func (m *memUsers) Create(_ context.Context, email, passwordHash, firstName, lastName string) (*models.User, *models.Profile, error) {
	if _, ok := m.byEmail[email]; ok {
		return nil, nil, errors.New(errors.ErrCodeConflict, "email already registered")
	}
	m.nextID++
	user := &models.User{
		ID:       fmt.Sprintf("user-%d", m.nextID),
		Email:    email,
		Password: passwordHash,
	}
	m.byEmail[email] = user
	profile := &models.Profile{ID: user.ID, FirstName: firstName, LastName: lastName}
	return user, profile, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "user not found")
	}
	return user, nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	for _, user := range m.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "user not found")
}

func (m *memUsers) DeleteAccount(_ context.Context, userID string) error {
	m.deleted = append(m.deleted, userID)
	for email, user := range m.byEmail {
		if user.ID == userID {
			delete(m.byEmail, email)
		}
	}
	return nil
}

func newTestService() (*Service, *memUsers) {
	users := newMemUsers()
	return NewService(users, testSecret, 24*time.Hour), users
}

func TestSignUp(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	user, profile, err := svc.SignUp(ctx, "Alice@Example.com", "secret1", "Alice", "Anderson")
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Email = %q, want lowercased", user.Email)
	}
	if user.Password == "secret1" {
		t.Error("SignUp() stored plaintext password")
	}
	if profile.FirstName != "Alice" || profile.LastName != "Anderson" {
		t.Errorf("profile = %+v, want Alice Anderson", profile)
	}

	if _, _, err := svc.SignUp(ctx, "alice@example.com", "secret1", "Alice", "A"); !errors.Is(err, errors.ErrCodeConflict) {
		t.Errorf("duplicate SignUp() error = %v, want CONFLICT", err)
	}
}

func TestSignUpValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	tests := []struct {
		name     string
		email    string
		password string
		first    string
		last     string
	}{
		{"missing email", "", "secret1", "A", "B"},
		{"invalid email", "not-an-email", "secret1", "A", "B"},
		{"short password", "a@example.com", "123", "A", "B"},
		{"missing first name", "a@example.com", "secret1", " ", "B"},
		{"missing last name", "a@example.com", "secret1", "A", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.SignUp(ctx, tt.email, tt.password, tt.first, tt.last)
			if !errors.Is(err, errors.ErrCodeValidation) {
				t.Errorf("SignUp() error = %v, want VALIDATION_ERROR", err)
			}
		})
	}
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	if _, _, err := svc.SignUp(ctx, "alice@example.com", "secret1", "Alice", "A"); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	user, token, err := svc.SignIn(ctx, "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	if token == "" {
		t.Fatal("SignIn() returned empty token")
	}

	claims, err := utils.ValidateSessionToken(token, testSecret)
	if err != nil {
		t.Fatalf("issued token invalid: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("token UserID = %q, want %q", claims.UserID, user.ID)
	}

	if id, err := svc.CurrentUser(token); err != nil || id != user.ID {
		t.Errorf("CurrentUser() = %q, %v, want %q", id, err, user.ID)
	}
}

func TestSignInBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	if _, _, err := svc.SignUp(ctx, "alice@example.com", "secret1", "Alice", "A"); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	if _, _, err := svc.SignIn(ctx, "alice@example.com", "wrong"); !errors.Is(err, errors.ErrCodeUnauthorized) {
		t.Errorf("wrong password error = %v, want UNAUTHORIZED", err)
	}
	// Unknown account answers the same as a bad password.
	if _, _, err := svc.SignIn(ctx, "nobody@example.com", "secret1"); !errors.Is(err, errors.ErrCodeUnauthorized) {
		t.Errorf("unknown email error = %v, want UNAUTHORIZED", err)
	}
}

func TestCurrentUserRejectsBadToken(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.CurrentUser("garbage"); !errors.Is(err, errors.ErrCodeUnauthorized) {
		t.Errorf("CurrentUser(garbage) error = %v, want UNAUTHORIZED", err)
	}
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestService()

	user, _, err := svc.SignUp(ctx, "alice@example.com", "secret1", "Alice", "A")
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	if err := svc.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}
	if len(users.deleted) != 1 || users.deleted[0] != user.ID {
		t.Errorf("deleted = %v, want [%s]", users.deleted, user.ID)
	}

	// Already gone: the second call reports not found.
	if err := svc.DeleteUser(ctx, user.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("repeat DeleteUser() error = %v, want NOT_FOUND", err)
	}
}
