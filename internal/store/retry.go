package store

import (
	"context"
	"time"

	"github.com/brrmrz19/secret-page-app/pkg/errors"
)

const readAttempts = 3

// withReadRetry retries an idempotent read with exponential backoff when the
// database is unreachable. Mutations are never routed through here: retrying
// a failed write could apply its side effect twice.
func withReadRetry(ctx context.Context, op func() error) error {
	backoff := 50 * time.Millisecond

	var err error
	for attempt := 0; attempt < readAttempts; attempt++ {
		err = op()
		// Only transport failures are worth retrying
		if err == nil || !errors.Is(err, errors.ErrCodeStore) {
			return err
		}

		select {
		case <-ctx.Done():
			return err
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}
