package worker

import (
	"context"
	"log/slog"
	"time"
)

// ReloadTimeout bounds a single catalog reload.
const ReloadTimeout = 30 * time.Second

// Reloader swaps in a freshly loaded catalog.
type Reloader interface {
	Reload(ctx context.Context) error
}

// StartRefreshWorker kicks off a background routine that reloads the catalog
// every interval until ctx is cancelled. The returned channel is closed once
// the routine has stopped.
func StartRefreshWorker(ctx context.Context, reloader Reloader, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	if interval <= 0 {
		close(done)
		return done
	}

	slog.Info("starting catalog refresh worker", slog.Duration("interval", interval))
	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				slog.Info("catalog refresh worker stopped")
				return
			case <-ticker.C:
				refresh(ctx, reloader)
			}
		}
	}()
	return done
}

func refresh(ctx context.Context, reloader Reloader) {
	ctx, cancel := context.WithTimeout(ctx, ReloadTimeout)
	defer cancel()
	// Reload logs its own failures; the previous snapshot stays live.
	if err := reloader.Reload(ctx); err != nil {
		slog.Debug("scheduled catalog refresh skipped", slog.Any("error", err))
	}
}
