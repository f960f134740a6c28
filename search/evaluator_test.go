package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"culinarycompass/hours"
	"culinarycompass/models"
)

var benThanh = models.Coordinates{Latitude: 10.7725, Longitude: 106.6980}

func at(hour, minute int) time.Time {
	return time.Date(2024, time.March, 9, hour, minute, 0, 0, time.UTC)
}

func restaurant(id int64, name string, lat, lon float64) models.Restaurant {
	return models.Restaurant{
		ID:           id,
		Name:         name,
		Rating:       4.0,
		AveragePrice: 30000,
		OpenHours:    "00:00 - 23:59",
		Location:     models.Coordinates{Latitude: lat, Longitude: lon},
		DistanceText: "placeholder",
	}
}

func ids(results []models.Result) []int64 {
	out := make([]int64, 0, len(results))
	for _, r := range results {
		out = append(out, r.ID)
	}
	return out
}

func TestEvaluateEndToEnd(t *testing.T) {
	match := restaurant(1, "Phở Hòa", 10.7769, 106.7009)
	match.OpenHours = "06:00 - 22:00"
	farAway := restaurant(2, "Cơm Tấm Xa", 10.8231, 106.6297)
	farAway.OpenHours = "06:00 - 22:00"
	closed := restaurant(3, "Bún Đêm", 10.7800, 106.6950)
	closed.OpenHours = "22:00 - 02:00"

	q := models.NewSearchQuery(benThanh)
	q.RadiusKm = 5
	q.OpenNow = true

	results := Evaluate([]models.Restaurant{match, farAway, closed}, q, at(12, 0))

	require.Len(t, results, 1)
	require.Equal(t, int64(1), results[0].ID)
	require.Equal(t, 0.6, results[0].CalculatedDistanceKm)
	require.Equal(t, "0.6 km", results[0].DistanceText)
	require.Equal(t, hours.LabelOpen, results[0].OpenStatusText)
}

func TestEvaluateDoesNotMutateCatalog(t *testing.T) {
	r := restaurant(1, "Phở Hòa", 10.7769, 106.7009)
	r.Cuisines = []string{"vietnamese"}
	catalog := []models.Restaurant{r}

	results := Evaluate(catalog, models.NewSearchQuery(benThanh), at(12, 0))
	require.Len(t, results, 1)
	results[0].Cuisines[0] = "changed"

	require.Equal(t, "placeholder", catalog[0].DistanceText)
	require.Equal(t, "vietnamese", catalog[0].Cuisines[0])
}

func TestEvaluateTextFilter(t *testing.T) {
	byName := restaurant(1, "Pizza 4P's", 10.7769, 106.7009)
	byTag := restaurant(2, "Quán Ngon", 10.7769, 106.7009)
	byTag.Tags = []string{"Wood-fired PIZZA"}
	byCuisineOnly := restaurant(3, "Bếp Ý", 10.7769, 106.7009)
	byCuisineOnly.Cuisines = []string{"pizza"}
	catalog := []models.Restaurant{byName, byTag, byCuisineOnly}

	q := models.NewSearchQuery(benThanh)
	q.QueryText = "PiZzA"

	require.Equal(t, []int64{1, 2}, ids(Evaluate(catalog, q, at(12, 0))))
}

func TestEvaluateCuisineAndFlagFilters(t *testing.T) {
	a := restaurant(1, "A", 10.7769, 106.7009)
	a.Cuisines = []string{"vietnamese", "noodles"}
	a.SpecialFlags = []string{"vegetarian"}
	b := restaurant(2, "B", 10.7769, 106.7009)
	b.Cuisines = []string{"japanese"}
	b.SpecialFlags = []string{"wheelchair", "halal"}
	c := restaurant(3, "C", 10.7769, 106.7009)
	catalog := []models.Restaurant{a, b, c}

	cases := []struct {
		name     string
		cuisines []string
		flags    []string
		expected []int64
	}{
		{name: "no constraints", expected: []int64{1, 2, 3}},
		{name: "empty lists", cuisines: []string{}, flags: []string{}, expected: []int64{1, 2, 3}},
		{name: "one cuisine", cuisines: []string{"japanese"}, expected: []int64{2}},
		{name: "cuisines are ored", cuisines: []string{"japanese", "noodles"}, expected: []int64{1, 2}},
		{name: "unknown cuisine", cuisines: []string{"french"}, expected: []int64{}},
		{name: "flags are ored", flags: []string{"halal", "vegetarian"}, expected: []int64{1, 2}},
		{name: "cuisine and flag together", cuisines: []string{"vietnamese"}, flags: []string{"halal"}, expected: []int64{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := models.NewSearchQuery(benThanh)
			q.Cuisines = tc.cuisines
			q.SpecialFlags = tc.flags
			require.Equal(t, tc.expected, ids(Evaluate(catalog, q, at(12, 0))))
		})
	}
}

func TestEvaluatePriceTiers(t *testing.T) {
	prices := []float64{24999, 25000, 50000, 50001}
	catalog := make([]models.Restaurant, 0, len(prices))
	for i, p := range prices {
		r := restaurant(int64(i+1), "R", 10.7769, 106.7009)
		r.AveragePrice = p
		catalog = append(catalog, r)
	}

	cases := []struct {
		tier     string
		expected []int64
	}{
		{tier: "", expected: []int64{1, 2, 3, 4}},
		{tier: models.PriceLow, expected: []int64{1}},
		{tier: models.PriceMid, expected: []int64{2, 3}},
		{tier: models.PriceHigh, expected: []int64{4}},
		{tier: "luxury", expected: []int64{1, 2, 3, 4}},
	}

	for _, tc := range cases {
		t.Run("tier "+tc.tier, func(t *testing.T) {
			q := models.NewSearchQuery(benThanh)
			q.PriceRange = tc.tier
			require.Equal(t, tc.expected, ids(Evaluate(catalog, q, at(12, 0))))
		})
	}
}

func TestEvaluateRadius(t *testing.T) {
	near := restaurant(1, "Near", 10.7769, 106.7009) // 0.6 km
	mid := restaurant(2, "Mid", 10.7300, 106.7200)   // 5.3 km
	far := restaurant(3, "Far", 10.9000, 106.8000)   // 18.0 km
	catalog := []models.Restaurant{far, mid, near}

	q := models.NewSearchQuery(benThanh)
	require.Equal(t, []int64{1, 2}, ids(Evaluate(catalog, q, at(12, 0))))

	q.RadiusKm = 5
	require.Equal(t, []int64{1}, ids(Evaluate(catalog, q, at(12, 0))))

	q.RadiusKm = 0
	require.Equal(t, []int64{1, 2, 3}, ids(Evaluate(catalog, q, at(12, 0))))

	q.RadiusKm = -1
	require.Equal(t, []int64{1, 2, 3}, ids(Evaluate(catalog, q, at(12, 0))))
}

func TestEvaluateSorting(t *testing.T) {
	a := restaurant(1, "A", 10.7300, 106.7200) // 5.3 km
	a.Rating = 4.5
	b := restaurant(2, "B", 10.7769, 106.7009) // 0.6 km
	b.Rating = 4.0
	c := restaurant(3, "C", 10.7626, 106.6822) // 2.0 km
	c.Rating = 4.5
	d := restaurant(4, "D", 10.7550, 106.6650) // 4.1 km
	d.Rating = 4.8
	catalog := []models.Restaurant{a, b, c, d}

	q := models.NewSearchQuery(benThanh)
	require.Equal(t, []int64{2, 3, 4, 1}, ids(Evaluate(catalog, q, at(12, 0))))

	q.SortBy = models.SortByRating
	require.Equal(t, []int64{4, 1, 3, 2}, ids(Evaluate(catalog, q, at(12, 0))))

	q.SortBy = "popularity"
	require.Equal(t, []int64{2, 3, 4, 1}, ids(Evaluate(catalog, q, at(12, 0))))
}

func TestEvaluateLabelWithoutOpenNow(t *testing.T) {
	open := restaurant(1, "Open", 10.7769, 106.7009)
	open.OpenHours = "09:00 - 22:00"
	shut := restaurant(2, "Shut", 10.7800, 106.6950)
	shut.OpenHours = "garbage"

	results := Evaluate([]models.Restaurant{open, shut}, models.NewSearchQuery(benThanh), at(12, 0))

	require.Len(t, results, 2)
	require.Equal(t, hours.LabelOpen, results[0].OpenStatusText)
	require.Equal(t, hours.LabelClosed, results[1].OpenStatusText)
	require.Equal(t, "0.9 km", results[1].DistanceText)
}

func TestEvaluateEmptyCatalog(t *testing.T) {
	results := Evaluate(nil, models.NewSearchQuery(benThanh), at(12, 0))
	require.NotNil(t, results)
	require.Empty(t, results)
}

func TestEvaluateContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := EvaluateContext(ctx, []models.Restaurant{restaurant(1, "A", 10.7769, 106.7009)}, models.NewSearchQuery(benThanh), at(12, 0))
	require.ErrorIs(t, err, context.Canceled)
}

func TestFormatKm(t *testing.T) {
	require.Equal(t, "1.0 km", FormatKm(RoundKm(0.96)))
	require.Equal(t, "12.3 km", FormatKm(RoundKm(12.34)))
	require.Equal(t, "0.0 km", FormatKm(RoundKm(0)))
}
