package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"culinarycompass/models"
)

// Source loads a complete catalog from some backing system.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]models.Restaurant, error)
}

// Snapshot is one immutable version of the catalog.
type Snapshot struct {
	Restaurants []models.Restaurant
	Source      string
	LoadedAt    time.Time
}

// Store holds the current snapshot. Readers never block; Reload swaps in a
// whole new snapshot so a search always sees one consistent version.
// Reloads are serialized so a slow load can never overwrite a newer one.
type Store struct {
	source  Source
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
}

// NewStore returns a store with an empty snapshot. Call Reload to populate it.
func NewStore(source Source) *Store {
	s := &Store{source: source}
	s.current.Store(&Snapshot{Source: source.Name()})
	return s
}

// Snapshot returns the current catalog version.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Restaurants returns the records of the current snapshot.
func (s *Store) Restaurants() []models.Restaurant {
	return s.current.Load().Restaurants
}

// Reload loads the source and swaps the result in. On failure the previous
// snapshot stays in place and the error is returned.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	restaurants, err := s.source.Load(ctx)
	if err != nil {
		slog.Error("catalog reload failed",
			slog.String("source", s.source.Name()),
			slog.Int("kept", len(s.Restaurants())),
			slog.Any("error", err),
		)
		return fmt.Errorf("reload %s catalog: %w", s.source.Name(), err)
	}
	s.current.Store(&Snapshot{
		Restaurants: restaurants,
		Source:      s.source.Name(),
		LoadedAt:    time.Now().UTC(),
	})
	slog.Info("catalog loaded",
		slog.String("source", s.source.Name()),
		slog.Int("restaurants", len(restaurants)),
		slog.Duration("took", time.Since(start)),
	)
	return nil
}
