package store

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brrmrz19/secret-page-app/internal/models"
	"github.com/brrmrz19/secret-page-app/pkg/errors"
)

// FriendRequests is the pgx-backed row store for friend_requests. It
// implements friendship.RequestStore.
type FriendRequests struct {
	pool *pgxpool.Pool
}

func NewFriendRequests(pool *pgxpool.Pool) *FriendRequests {
	return &FriendRequests{pool: pool}
}

const uniqueViolation = "23505"

func (s *FriendRequests) Insert(ctx context.Context, req *models.FriendRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	err := s.pool.QueryRow(ctx, `
		INSERT INTO friend_requests (id, sender_id, receiver_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, req.ID, req.SenderID, req.ReceiverID, req.Status).Scan(&req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		// The unique pair index turns a concurrent duplicate into a clean
		// conflict instead of a second row.
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errors.Wrap(err, errors.ErrCodeConflict, "friend request already exists")
		}
		return errors.Wrap(err, errors.ErrCodeStore, "failed to create friend request")
	}
	return nil
}

func (s *FriendRequests) Pair(ctx context.Context, a, b string) ([]models.FriendRequest, error) {
	var out []models.FriendRequest
	err := withReadRetry(ctx, func() error {
		var opErr error
		out, opErr = s.pair(ctx, a, b)
		return opErr
	})
	return out, err
}

func (s *FriendRequests) pair(ctx context.Context, a, b string) ([]models.FriendRequest, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, sender_id, receiver_id, status, created_at, updated_at
		FROM friend_requests
		WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
	`, a, b)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "failed to query friend requests")
	}
	defer rows.Close()

	return scanRequests(rows)
}

func (s *FriendRequests) ListByUser(ctx context.Context, userID, status string) ([]models.FriendRequest, error) {
	var out []models.FriendRequest
	err := withReadRetry(ctx, func() error {
		var opErr error
		out, opErr = s.listByUser(ctx, userID, status)
		return opErr
	})
	return out, err
}

func (s *FriendRequests) listByUser(ctx context.Context, userID, status string) ([]models.FriendRequest, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, sender_id, receiver_id, status, created_at, updated_at
		FROM friend_requests
		WHERE (sender_id = $1 OR receiver_id = $1) AND status = $2
		ORDER BY created_at
	`, userID, status)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "failed to query friend requests")
	}
	defer rows.Close()

	return scanRequests(rows)
}

func (s *FriendRequests) SetStatus(ctx context.Context, id, status string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE friend_requests SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeStore, "failed to update friend request")
	}
	if tag.RowsAffected() == 0 {
		return errors.New(errors.ErrCodeNotFound, "friend request not found")
	}
	return nil
}

func (s *FriendRequests) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.pool.Exec(ctx, `DELETE FROM friend_requests WHERE id = ANY($1)`, ids)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeStore, "failed to delete friend requests")
	}
	return nil
}

func scanRequests(rows pgx.Rows) ([]models.FriendRequest, error) {
	var out []models.FriendRequest
	for rows.Next() {
		var rec models.FriendRequest
		if err := rows.Scan(&rec.ID, &rec.SenderID, &rec.ReceiverID, &rec.Status,
			&rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeStore, "failed to scan friend request")
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "failed to read friend requests")
	}
	return out, nil
}
