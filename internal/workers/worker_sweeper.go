package workers

import (
	"context"
	"time"

	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/internal/store"
)

// sessionSweeper periodically deletes expired session rows so revoked and
// stale sessions do not accumulate in storage.
type sessionSweeper struct {
	sessions store.SessionRepository
	interval time.Duration
	logger   *logger.Logger
}

func (w *sessionSweeper) Run() {
	interval := w.interval
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			w.sweep(context.Background())
		}
	}()
}

func (w *sessionSweeper) sweep(ctx context.Context) {
	deleted, err := w.sessions.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		w.logger.Error().Err(err).Msg("session sweep failed")
		return
	}

	if deleted > 0 {
		w.logger.Info().Int64("deleted", deleted).Msg("expired sessions purged")
	}
}
