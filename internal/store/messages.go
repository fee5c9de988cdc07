package store

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brrmrz19/secret-page-app/internal/models"
	"github.com/brrmrz19/secret-page-app/pkg/errors"
)

// Messages is the pgx-backed row store for secret_messages. It implements
// secrets.MessageStore.
type Messages struct {
	pool *pgxpool.Pool
}

func NewMessages(pool *pgxpool.Pool) *Messages {
	return &Messages{pool: pool}
}

func (s *Messages) Insert(ctx context.Context, msg *models.SecretMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	err := s.pool.QueryRow(ctx, `
		INSERT INTO secret_messages (id, user_id, message)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`, msg.ID, msg.UserID, msg.Message).Scan(&msg.CreatedAt, &msg.UpdatedAt)

	if err != nil {
		return errors.Wrap(err, errors.ErrCodeStore, "failed to create secret message")
	}
	return nil
}

func (s *Messages) Get(ctx context.Context, id string) (*models.SecretMessage, error) {
	var msg models.SecretMessage
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, message, created_at, updated_at
		FROM secret_messages WHERE id = $1
	`, id).Scan(&msg.ID, &msg.UserID, &msg.Message, &msg.CreatedAt, &msg.UpdatedAt)

	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, errors.New(errors.ErrCodeNotFound, "secret message not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "failed to query secret message")
	}
	return &msg, nil
}

func (s *Messages) Update(ctx context.Context, id, text string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE secret_messages SET message = $1, updated_at = NOW() WHERE id = $2
	`, text, id)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeStore, "failed to update secret message")
	}
	if tag.RowsAffected() == 0 {
		return errors.New(errors.ErrCodeNotFound, "secret message not found")
	}
	return nil
}

func (s *Messages) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM secret_messages WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeStore, "failed to delete secret message")
	}
	if tag.RowsAffected() == 0 {
		return errors.New(errors.ErrCodeNotFound, "secret message not found")
	}
	return nil
}

func (s *Messages) ListByOwner(ctx context.Context, ownerID string) ([]models.SecretMessage, error) {
	var out []models.SecretMessage
	err := withReadRetry(ctx, func() error {
		var opErr error
		out, opErr = s.listByOwner(ctx, ownerID)
		return opErr
	})
	return out, err
}

func (s *Messages) listByOwner(ctx context.Context, ownerID string) ([]models.SecretMessage, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, message, created_at, updated_at
		FROM secret_messages
		WHERE user_id = $1
		ORDER BY created_at, id
	`, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "failed to query secret messages")
	}
	defer rows.Close()

	out := []models.SecretMessage{}
	for rows.Next() {
		var msg models.SecretMessage
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.Message, &msg.CreatedAt, &msg.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeStore, "failed to scan secret message")
		}
		out = append(out, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "failed to read secret messages")
	}
	return out, nil
}
