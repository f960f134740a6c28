package search

import (
	"context"
	"fmt"
	"time"

	"culinarycompass/geo"
	"culinarycompass/models"
)

// CatalogReader hands out the current immutable catalog snapshot.
type CatalogReader interface {
	Restaurants() []models.Restaurant
}

// Clock returns the reference instant for open-hours checks.
type Clock func() time.Time

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// Service answers search queries against a catalog using an injected clock.
type Service struct {
	catalog CatalogReader
	now     Clock
}

// NewService wires a catalog and a clock. A nil clock falls back to time.Now.
func NewService(catalog CatalogReader, now Clock) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{catalog: catalog, now: now}
}

// Search validates the user location and evaluates q against one catalog
// snapshot. The snapshot and the clock are each read exactly once.
func (s *Service) Search(ctx context.Context, q models.SearchQuery) ([]models.Result, error) {
	if err := geo.Validate(q.UserLocation); err != nil {
		return nil, fmt.Errorf("user location: %w", err)
	}
	restaurants := s.catalog.Restaurants()
	return EvaluateContext(ctx, restaurants, q, s.now())
}
