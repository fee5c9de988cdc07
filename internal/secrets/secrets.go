// Package secrets is the facade over private notes. Every operation is
// authorized against the caller: owners get full CRUD, non-owners may read
// only through an accepted friendship, checked here rather than trusted from
// the client.
package secrets

import (
	"context"
	"strings"

	"github.com/brrmrz19/secret-page-app/internal/models"
	"github.com/brrmrz19/secret-page-app/pkg/errors"
)

// MessageStore is the row-level access the facade needs.
type MessageStore interface {
	Insert(ctx context.Context, msg *models.SecretMessage) error
	Get(ctx context.Context, id string) (*models.SecretMessage, error)
	Update(ctx context.Context, id, text string) error
	Delete(ctx context.Context, id string) error
	// ListByOwner returns the owner's messages in insertion order.
	ListByOwner(ctx context.Context, ownerID string) ([]models.SecretMessage, error)
}

// FriendChecker answers the visibility question. Satisfied by
// *friendship.Service.
type FriendChecker interface {
	IsFriend(ctx context.Context, a, b string) (bool, error)
}

type Service struct {
	store   MessageStore
	friends FriendChecker
}

func NewService(store MessageStore, friends FriendChecker) *Service {
	return &Service{store: store, friends: friends}
}

// Create inserts a new message owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID, text string) (*models.SecretMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New(errors.ErrCodeValidation, "message text is required")
	}

	msg := &models.SecretMessage{
		UserID:  ownerID,
		Message: text,
	}
	if err := s.store.Insert(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Update replaces the text of a message the caller owns.
func (s *Service) Update(ctx context.Context, ownerID, id, text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New(errors.ErrCodeValidation, "message text is required")
	}

	msg, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if msg.UserID != ownerID {
		return errors.New(errors.ErrCodeForbidden, "message belongs to another user")
	}
	return s.store.Update(ctx, id, text)
}

// Delete removes a message the caller owns.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	msg, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if msg.UserID != ownerID {
		return errors.New(errors.ErrCodeForbidden, "message belongs to another user")
	}
	return s.store.Delete(ctx, id)
}

// ListOwn returns the caller's own messages.
func (s *Service) ListOwn(ctx context.Context, ownerID string) ([]models.SecretMessage, error) {
	return s.store.ListByOwner(ctx, ownerID)
}

// ListFor returns targetID's messages to viewerID. The friendship is
// re-checked here at the data-access boundary.
func (s *Service) ListFor(ctx context.Context, viewerID, targetID string) ([]models.SecretMessage, error) {
	if viewerID == targetID {
		return s.ListOwn(ctx, viewerID)
	}

	ok, err := s.friends.IsFriend(ctx, viewerID, targetID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New(errors.ErrCodeForbidden, "you are not friends with this user")
	}
	return s.store.ListByOwner(ctx, targetID)
}
