// Package friendship implements the relationship state machine between user
// pairs: none -> pending -> friends, with cancellation, rejection and
// unfriending returning the pair to none. All note visibility between users
// derives from IsFriend.
package friendship

import (
	"context"

	"github.com/brrmrz19/secret-page-app/internal/models"
	"github.com/brrmrz19/secret-page-app/pkg/errors"
)

// RequestStore is the row-level access the state machine needs. The pgx
// implementation lives in internal/store; tests substitute an in-memory one.
type RequestStore interface {
	// Insert creates a pending or accepted row. Must fail with a CONFLICT
	// AppError when an active row for the unordered pair already exists.
	Insert(ctx context.Context, req *models.FriendRequest) error
	// Pair returns every row linking a and b, in either direction.
	Pair(ctx context.Context, a, b string) ([]models.FriendRequest, error)
	// ListByUser returns every row with the given status where userID is
	// sender or receiver.
	ListByUser(ctx context.Context, userID, status string) ([]models.FriendRequest, error)
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, ids ...string) error
}

type Service struct {
	store RequestStore
}

func NewService(store RequestStore) *Service {
	return &Service{store: store}
}

// SendRequest creates a pending request from one user to another. Valid only
// when no relationship exists in either direction.
func (s *Service) SendRequest(ctx context.Context, fromID, toID string) (*models.FriendRequest, error) {
	if fromID == "" || toID == "" {
		return nil, errors.New(errors.ErrCodeValidation, "sender and receiver are required")
	}
	if fromID == toID {
		return nil, errors.New(errors.ErrCodeValidation, "cannot send a friend request to yourself")
	}

	existing, err := s.store.Pair(ctx, fromID, toID)
	if err != nil {
		return nil, err
	}
	for _, rec := range existing {
		if rec.Status == models.FriendRequestStatusAccepted {
			return nil, errors.New(errors.ErrCodeConflict, "already friends")
		}
		return nil, errors.New(errors.ErrCodeConflict, "friend request already exists")
	}

	req := &models.FriendRequest{
		SenderID:   fromID,
		ReceiverID: toID,
		Status:     models.FriendRequestStatusPending,
	}
	// The store's unique pair index backstops the check above against
	// concurrent senders.
	if err := s.store.Insert(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// CancelRequest withdraws a pending request previously sent by fromID.
func (s *Service) CancelRequest(ctx context.Context, fromID, toID string) error {
	rec, err := s.findPending(ctx, fromID, toID)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, rec.ID)
}

// AcceptRequest transitions a pending request addressed to receiverID into a
// friendship. If both users had sent requests to each other, the reverse
// pending row is removed so exactly one accepted edge remains.
func (s *Service) AcceptRequest(ctx context.Context, receiverID, senderID string) error {
	rows, err := s.store.Pair(ctx, receiverID, senderID)
	if err != nil {
		return err
	}

	var accept *models.FriendRequest
	var stale []string
	for i := range rows {
		rec := &rows[i]
		if rec.Status != models.FriendRequestStatusPending {
			continue
		}
		if rec.SenderID == senderID && rec.ReceiverID == receiverID {
			accept = rec
		} else {
			stale = append(stale, rec.ID)
		}
	}

	if accept == nil {
		return errors.New(errors.ErrCodeNotFound, "friend request not found")
	}

	if err := s.store.SetStatus(ctx, accept.ID, models.FriendRequestStatusAccepted); err != nil {
		return err
	}
	if len(stale) > 0 {
		return s.store.Delete(ctx, stale...)
	}
	return nil
}

// RejectRequest deletes a pending request addressed to receiverID.
func (s *Service) RejectRequest(ctx context.Context, receiverID, senderID string) error {
	rec, err := s.findPending(ctx, senderID, receiverID)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, rec.ID)
}

// Unfriend removes an accepted friendship between two users.
func (s *Service) Unfriend(ctx context.Context, a, b string) error {
	rows, err := s.store.Pair(ctx, a, b)
	if err != nil {
		return err
	}

	var ids []string
	for _, rec := range rows {
		if rec.Status == models.FriendRequestStatusAccepted {
			ids = append(ids, rec.ID)
		}
	}
	if len(ids) == 0 {
		return errors.New(errors.ErrCodeNotFound, "friendship not found")
	}
	return s.store.Delete(ctx, ids...)
}

// IsFriend reports whether an accepted relationship links a and b.
func (s *Service) IsFriend(ctx context.Context, a, b string) (bool, error) {
	rows, err := s.store.Pair(ctx, a, b)
	if err != nil {
		return false, err
	}
	for _, rec := range rows {
		if rec.Status == models.FriendRequestStatusAccepted {
			return true, nil
		}
	}
	return false, nil
}

// PendingIncoming returns pending requests addressed to userID.
func (s *Service) PendingIncoming(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	rows, err := s.store.ListByUser(ctx, userID, models.FriendRequestStatusPending)
	if err != nil {
		return nil, err
	}
	incoming := make([]models.FriendRequest, 0, len(rows))
	for _, rec := range rows {
		if rec.ReceiverID == userID {
			incoming = append(incoming, rec)
		}
	}
	return incoming, nil
}

// PendingOutgoing returns pending requests sent by userID.
func (s *Service) PendingOutgoing(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	rows, err := s.store.ListByUser(ctx, userID, models.FriendRequestStatusPending)
	if err != nil {
		return nil, err
	}
	outgoing := make([]models.FriendRequest, 0, len(rows))
	for _, rec := range rows {
		if rec.SenderID == userID {
			outgoing = append(outgoing, rec)
		}
	}
	return outgoing, nil
}

// Friends returns the ids of every user with an accepted relationship to
// userID.
func (s *Service) Friends(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.store.ListByUser(ctx, userID, models.FriendRequestStatusAccepted)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, rec := range rows {
		ids = append(ids, rec.Counterpart(userID))
	}
	return ids, nil
}

func (s *Service) findPending(ctx context.Context, senderID, receiverID string) (*models.FriendRequest, error) {
	rows, err := s.store.Pair(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rec := &rows[i]
		if rec.Status == models.FriendRequestStatusPending &&
			rec.SenderID == senderID && rec.ReceiverID == receiverID {
			return rec, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "friend request not found")
}
