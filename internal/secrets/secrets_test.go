package secrets

import (
	"context"
	"fmt"
	"testing"

	"github.com/brrmrz19/secret-page-app/internal/models"
	"github.com/brrmrz19/secret-page-app/pkg/errors"
)

type memMessages struct {
	order  []string
	rows   map[string]*models.SecretMessage
	nextID int
}

func newMemMessages() *memMessages {
	return &memMessages{rows: make(map[string]*models.SecretMessage)}
}

func (m *memMessages) Insert(_ context.Context, msg *models.SecretMessage) error {
	m.nextID++
	msg.ID = fmt.Sprintf("msg-%d", m.nextID)
	clone := *msg
	m.rows[msg.ID] = &clone
	m.order = append(m.order, msg.ID)
	return nil
}

func (m *memMessages) Get(_ context.Context, id string) (*models.SecretMessage, error) {
	msg, ok := m.rows[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "secret message not found")
	}
	clone := *msg
	return &clone, nil
}

func (m *memMessages) Update(_ context.Context, id, text string) error {
	msg, ok := m.rows[id]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "secret message not found")
	}
	msg.Message = text
	return nil
}

func (m *memMessages) Delete(_ context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return errors.New(errors.ErrCodeNotFound, "secret message not found")
	}
	delete(m.rows, id)
	for i, ordered := range m.order {
		if ordered == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memMessages) ListByOwner(_ context.Context, ownerID string) ([]models.SecretMessage, error) {
	out := []models.SecretMessage{}
	for _, id := range m.order {
		if msg := m.rows[id]; msg.UserID == ownerID {
			out = append(out, *msg)
		}
	}
	return out, nil
}

// pairChecker treats the listed unordered pairs as friends.
type pairChecker map[[2]string]bool

func (p pairChecker) IsFriend(_ context.Context, a, b string) (bool, error) {
	return p[[2]string{a, b}] || p[[2]string{b, a}], nil
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemMessages(), pairChecker{})

	msg, err := svc.Create(ctx, "alice", "my secret")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if msg.ID == "" {
		t.Error("Create() returned message without id")
	}
	if msg.UserID != "alice" {
		t.Errorf("UserID = %q, want alice", msg.UserID)
	}
}

func TestCreateRejectsEmptyText(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemMessages(), pairChecker{})

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := svc.Create(ctx, "alice", text); !errors.Is(err, errors.ErrCodeValidation) {
			t.Errorf("Create(%q) error = %v, want VALIDATION_ERROR", text, err)
		}
	}
}

func TestListOwnKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemMessages(), pairChecker{})

	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		if _, err := svc.Create(ctx, "alice", text); err != nil {
			t.Fatalf("Create(%q) error = %v", text, err)
		}
	}
	if _, err := svc.Create(ctx, "bob", "not alice's"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	msgs, err := svc.ListOwn(ctx, "alice")
	if err != nil {
		t.Fatalf("ListOwn() error = %v", err)
	}
	if len(msgs) != len(texts) {
		t.Fatalf("ListOwn() returned %d messages, want %d", len(msgs), len(texts))
	}
	for i, text := range texts {
		if msgs[i].Message != text {
			t.Errorf("ListOwn()[%d] = %q, want %q", i, msgs[i].Message, text)
		}
	}
}

func TestUpdateOwnership(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemMessages(), pairChecker{})

	msg, err := svc.Create(ctx, "alice", "original")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Update(ctx, "mallory", msg.ID, "hijacked"); !errors.Is(err, errors.ErrCodeForbidden) {
		t.Errorf("non-owner update error = %v, want FORBIDDEN", err)
	}

	// The failed update must not have partially applied.
	msgs, _ := svc.ListOwn(ctx, "alice")
	if msgs[0].Message != "original" {
		t.Errorf("message = %q after forbidden update, want original", msgs[0].Message)
	}

	if err := svc.Update(ctx, "alice", msg.ID, "edited"); err != nil {
		t.Fatalf("owner update error = %v", err)
	}
	msgs, _ = svc.ListOwn(ctx, "alice")
	if msgs[0].Message != "edited" {
		t.Errorf("message = %q after update, want edited", msgs[0].Message)
	}

	if err := svc.Update(ctx, "alice", "missing", "text"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("update of missing id error = %v, want NOT_FOUND", err)
	}
}

func TestDeleteOwnership(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemMessages(), pairChecker{})

	msg, err := svc.Create(ctx, "alice", "to delete")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(ctx, "mallory", msg.ID); !errors.Is(err, errors.ErrCodeForbidden) {
		t.Errorf("non-owner delete error = %v, want FORBIDDEN", err)
	}
	if err := svc.Delete(ctx, "alice", "missing"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("delete of missing id error = %v, want NOT_FOUND", err)
	}

	if err := svc.Delete(ctx, "alice", msg.ID); err != nil {
		t.Fatalf("owner delete error = %v", err)
	}
	if msgs, _ := svc.ListOwn(ctx, "alice"); len(msgs) != 0 {
		t.Errorf("ListOwn() = %v after delete, want empty", msgs)
	}
}

func TestListForVisibility(t *testing.T) {
	ctx := context.Background()
	friends := pairChecker{{"alice", "bob"}: true}
	svc := NewService(newMemMessages(), friends)

	if _, err := svc.Create(ctx, "alice", "for friends only"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	msgs, err := svc.ListFor(ctx, "bob", "alice")
	if err != nil {
		t.Fatalf("ListFor(friend) error = %v", err)
	}
	if len(msgs) != 1 || msgs[0].Message != "for friends only" {
		t.Errorf("ListFor(friend) = %v, want the secret", msgs)
	}

	if _, err := svc.ListFor(ctx, "mallory", "alice"); !errors.Is(err, errors.ErrCodeForbidden) {
		t.Errorf("ListFor(stranger) error = %v, want FORBIDDEN", err)
	}

	// Viewing yourself needs no friendship.
	if _, err := svc.ListFor(ctx, "alice", "alice"); err != nil {
		t.Errorf("ListFor(self) error = %v", err)
	}
}
