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

// Users is the pgx-backed store for account rows and their profiles.
type Users struct {
	pool *pgxpool.Pool
}

func NewUsers(pool *pgxpool.Pool) *Users {
	return &Users{pool: pool}
}

// Create inserts an account row and its profile in one transaction.
func (s *Users) Create(ctx context.Context, email, passwordHash, firstName, lastName string) (*models.User, *models.Profile, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeStore, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	user := &models.User{ID: uuid.NewString(), Email: email}
	err = tx.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, user.ID, email, passwordHash).Scan(&user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, nil, errors.Wrap(err, errors.ErrCodeConflict, "email already registered")
		}
		return nil, nil, errors.Wrap(err, errors.ErrCodeStore, "failed to create user")
	}

	profile := &models.Profile{ID: user.ID, FirstName: firstName, LastName: lastName}
	err = tx.QueryRow(ctx, `
		INSERT INTO profiles (id, first_name, last_name)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, profile.ID, firstName, lastName).Scan(&profile.CreatedAt)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeStore, "failed to create profile")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeStore, "failed to commit registration")
	}
	return user, profile, nil
}

func (s *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at FROM users WHERE email = $1
	`, email).Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt)

	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, errors.New(errors.ErrCodeNotFound, "user not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "failed to query user")
	}
	return &user, nil
}

func (s *Users) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at FROM users WHERE id = $1
	`, id).Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt)

	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, errors.New(errors.ErrCodeNotFound, "user not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "failed to query user")
	}
	return &user, nil
}

func (s *Users) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	err := s.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, created_at FROM profiles WHERE id = $1
	`, id).Scan(&profile.ID, &profile.FirstName, &profile.LastName, &profile.CreatedAt)

	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, errors.New(errors.ErrCodeNotFound, "profile not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "failed to query profile")
	}
	return &profile, nil
}

// GetProfiles returns the profiles for the given ids, preserving nothing in
// particular about order.
func (s *Users) GetProfiles(ctx context.Context, ids []string) ([]models.Profile, error) {
	if len(ids) == 0 {
		return []models.Profile{}, nil
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, first_name, last_name, created_at FROM profiles WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "failed to query profiles")
	}
	defer rows.Close()

	return scanProfiles(rows)
}

// ListOthers returns every profile except the given user's, the "people you
// may know" listing.
func (s *Users) ListOthers(ctx context.Context, userID string) ([]models.Profile, error) {
	var out []models.Profile
	err := withReadRetry(ctx, func() error {
		var opErr error
		out, opErr = s.listOthers(ctx, userID)
		return opErr
	})
	return out, err
}

func (s *Users) listOthers(ctx context.Context, userID string) ([]models.Profile, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, first_name, last_name, created_at
		FROM profiles WHERE id <> $1
		ORDER BY first_name, last_name
	`, userID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "failed to query profiles")
	}
	defer rows.Close()

	return scanProfiles(rows)
}

// DeleteAccount removes everything the user owns and the account row last,
// so a failed run can be retried without losing the login needed to retry.
func (s *Users) DeleteAccount(ctx context.Context, userID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeStore, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	steps := []string{
		`DELETE FROM secret_messages WHERE user_id = $1`,
		`DELETE FROM friend_requests WHERE sender_id = $1 OR receiver_id = $1`,
		`DELETE FROM profiles WHERE id = $1`,
		`DELETE FROM users WHERE id = $1`,
	}
	for _, stmt := range steps {
		if _, err := tx.Exec(ctx, stmt, userID); err != nil {
			return errors.Wrap(err, errors.ErrCodeStore, "failed to delete account data")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeStore, "failed to commit account deletion")
	}
	return nil
}

func scanProfiles(rows pgx.Rows) ([]models.Profile, error) {
	out := []models.Profile{}
	for rows.Next() {
		var profile models.Profile
		if err := rows.Scan(&profile.ID, &profile.FirstName, &profile.LastName, &profile.CreatedAt); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeStore, "failed to scan profile")
		}
		out = append(out, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "failed to read profiles")
	}
	return out, nil
}
