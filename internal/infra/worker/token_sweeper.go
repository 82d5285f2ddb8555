package worker

import (
	"context"
	"log"
	"time"
)

type ExpiredTokenDeleter interface {
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// TokenSweeper deletes download tokens whose expiry is long past. Tokens
// are kept for a grace period after expiry so support can still explain
// a 410 to a confused prospect; the audit ledger is never touched.
type TokenSweeper struct {
	Repo     ExpiredTokenDeleter
	Interval time.Duration
	Retain   time.Duration
}

func NewTokenSweeper(repo ExpiredTokenDeleter) *TokenSweeper {
	return &TokenSweeper{
		Repo:     repo,
		Interval: time.Hour,
		Retain:   24 * time.Hour,
	}
}

// Start blocks until ctx is cancelled; run it in its own goroutine.
func (s *TokenSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *TokenSweeper) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-s.Retain)
	deleted, err := s.Repo.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		log.Printf("[sweeper] failed to delete expired tokens: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("[sweeper] deleted %d expired tokens", deleted)
	}
}
