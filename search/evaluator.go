package search

import (
	"context"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"culinarycompass/geo"
	"culinarycompass/hours"
	"culinarycompass/models"
)

// Price tier boundaries. 25000 and 50000 both belong to the mid tier.
const (
	LowPriceCeiling  = 25000.0
	HighPriceFloor   = 50000.0
	distanceTextUnit = " km"
)

type candidate struct {
	restaurant *models.Restaurant
	distance   float64
	label      string
}

// Evaluate filters, annotates and orders restaurants for q as of now.
// restaurants is read but never modified.
func Evaluate(restaurants []models.Restaurant, q models.SearchQuery, now time.Time) []models.Result {
	results, _ := EvaluateContext(context.Background(), restaurants, q, now)
	return results
}

// EvaluateContext is Evaluate with cooperative cancellation checked between
// records.
func EvaluateContext(ctx context.Context, restaurants []models.Restaurant, q models.SearchQuery, now time.Time) ([]models.Result, error) {
	needle := strings.ToLower(q.QueryText)
	matches := make([]candidate, 0, len(restaurants))

	for i := range restaurants {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r := &restaurants[i]

		distance := geo.Distance(q.UserLocation, r.Location)
		open, label := hours.IsOpen(r.OpenHours, now)

		if !matchesText(r, needle) {
			continue
		}
		if q.OpenNow && !open {
			continue
		}
		if !intersects(q.Cuisines, r.Cuisines) {
			continue
		}
		if !intersects(q.SpecialFlags, r.SpecialFlags) {
			continue
		}
		if !inPriceRange(r.AveragePrice, q.PriceRange) {
			continue
		}
		if q.RadiusKm > 0 && distance > q.RadiusKm {
			continue
		}

		matches = append(matches, candidate{restaurant: r, distance: distance, label: label})
	}

	sortCandidates(matches, q.SortBy)

	results := make([]models.Result, 0, len(matches))
	for _, m := range matches {
		results = append(results, assemble(m))
	}
	return results, nil
}

func matchesText(r *models.Restaurant, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Name), needle) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// intersects reports whether any wanted value is present in have. An empty
// wanted list imposes no constraint.
func intersects(wanted, have []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		if slices.Contains(have, w) {
			return true
		}
	}
	return false
}

func inPriceRange(price float64, tier string) bool {
	switch tier {
	case models.PriceLow:
		return price < LowPriceCeiling
	case models.PriceMid:
		return price >= LowPriceCeiling && price <= HighPriceFloor
	case models.PriceHigh:
		return price > HighPriceFloor
	default:
		return true
	}
}

func sortCandidates(matches []candidate, sortBy string) {
	if sortBy == models.SortByRating {
		slices.SortStableFunc(matches, func(a, b candidate) int {
			return compareFloat(b.restaurant.Rating, a.restaurant.Rating)
		})
		return
	}
	slices.SortStableFunc(matches, func(a, b candidate) int {
		return compareFloat(a.distance, b.distance)
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func assemble(m candidate) models.Result {
	rounded := RoundKm(m.distance)
	r := *m.restaurant
	r.Cuisines = slices.Clone(r.Cuisines)
	r.Tags = slices.Clone(r.Tags)
	r.SpecialFlags = slices.Clone(r.SpecialFlags)

	result := models.Result{
		Restaurant:           r,
		CalculatedDistanceKm: rounded,
		OpenStatusText:       m.label,
	}
	result.DistanceText = FormatKm(rounded)
	return result
}

// RoundKm rounds a distance to one decimal place.
func RoundKm(km float64) float64 {
	return math.Round(km*10) / 10
}

// FormatKm renders a rounded distance for display, e.g. "1.5 km".
func FormatKm(km float64) string {
	return strconv.FormatFloat(km, 'f', 1, 64) + distanceTextUnit
}
