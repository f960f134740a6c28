package handlers

import (
	"net/http"
	"slices"
	"time"

	"culinarycompass/catalog"
	"culinarycompass/models"
)

// CatalogReader hands out the current catalog snapshot.
type CatalogReader interface {
	Restaurants() []models.Restaurant
}

// CuisinesHandler lists every distinct cuisine in the catalog, sorted, to
// populate the cuisine filter.
func CuisinesHandler(reader CatalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, distinct(reader.Restaurants(), func(r models.Restaurant) []string {
			return r.Cuisines
		}))
	}
}

// SpecialFlagsHandler lists every distinct special flag in the catalog.
func SpecialFlagsHandler(reader CatalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, distinct(reader.Restaurants(), func(r models.Restaurant) []string {
			return r.SpecialFlags
		}))
	}
}

// SnapshotReader exposes the catalog version currently served.
type SnapshotReader interface {
	Snapshot() *catalog.Snapshot
}

// HealthHandler reports liveness along with the size, source and load time of
// the served catalog. loadedAt is null until the first successful reload.
func HealthHandler(snapshots SnapshotReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := snapshots.Snapshot()
		var loadedAt *time.Time
		if !snap.LoadedAt.IsZero() {
			loadedAt = &snap.LoadedAt
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":      "Culinary Compass API is running!",
			"restaurants": len(snap.Restaurants),
			"source":      snap.Source,
			"loadedAt":    loadedAt,
		})
	}
}

func distinct(restaurants []models.Restaurant, values func(models.Restaurant) []string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range restaurants {
		for _, v := range values(r) {
			if _, ok := seen[v]; ok || v == "" {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}
