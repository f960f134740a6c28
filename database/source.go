package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"culinarycompass/geo"
	"culinarycompass/models"
)

const selectRestaurants = `
	SELECT r.id, r.name, r.rating, r.average_price,
	       COALESCE(r.cuisines, '{}'), COALESCE(r.tags, '{}'),
	       r.open_hours, COALESCE(r.special_flags, '{}'),
	       r.latitude, r.longitude,
	       COALESCE(r.image_url, ''), COALESCE(r.distance_text, ''), COALESCE(r.price_text, '')
	FROM restaurants r
	ORDER BY r.id ASC
`

// Source loads the catalog from the restaurants table.
type Source struct {
	DB *sql.DB
}

func NewSource(db *sql.DB) *Source {
	return &Source{DB: db}
}

func (s *Source) Name() string { return "postgres" }

// Load reads every restaurant row in id order.
func (s *Source) Load(ctx context.Context) ([]models.Restaurant, error) {
	rows, err := s.DB.QueryContext(ctx, selectRestaurants)
	if err != nil {
		return nil, fmt.Errorf("query restaurants: %w", err)
	}
	defer rows.Close()

	restaurants := []models.Restaurant{}
	for rows.Next() {
		r, err := ScanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate restaurants: %w", err)
	}
	return restaurants, nil
}

// RowScanner is the subset of *sql.Rows used by ScanRestaurant.
type RowScanner interface {
	Scan(dest ...any) error
}

// ScanRestaurant reads one row produced by the catalog query.
func ScanRestaurant(rows RowScanner) (models.Restaurant, error) {
	var r models.Restaurant
	err := rows.Scan(
		&r.ID, &r.Name, &r.Rating, &r.AveragePrice,
		pq.Array(&r.Cuisines), pq.Array(&r.Tags),
		&r.OpenHours, pq.Array(&r.SpecialFlags),
		&r.Location.Latitude, &r.Location.Longitude,
		&r.ImageURL, &r.DistanceText, &r.PriceText,
	)
	if err != nil {
		return models.Restaurant{}, fmt.Errorf("scan restaurant: %w", err)
	}
	if err := geo.Validate(r.Location); err != nil {
		return models.Restaurant{}, fmt.Errorf("restaurant %d: %w", r.ID, err)
	}
	return r, nil
}
