package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"culinarycompass/models"
)

// Ben Thanh Market, used when the client sends no location.
const (
	DefaultLatitude  = 10.7725
	DefaultLongitude = 106.6980
)

const maxSearchBodyBytes = 1 << 20

// ErrBadRequestBody marks a search body that is not valid JSON.
var ErrBadRequestBody = errors.New("invalid request body")

// Searcher evaluates a parsed query.
type Searcher interface {
	Search(ctx context.Context, q models.SearchQuery) ([]models.Result, error)
}

// SearchRequest is the JSON body accepted by POST /api/search. Pointer fields
// distinguish absent keys from explicit zero values. RadiusKm stays raw so an
// explicit null can be told apart from a missing key.
type SearchRequest struct {
	UserLatitude  *float64        `json:"userLatitude"`
	UserLongitude *float64        `json:"userLongitude"`
	QueryText     string          `json:"queryText"`
	RadiusKm      json.RawMessage `json:"radiusKm"`
	PriceRange    *string         `json:"priceRange"`
	SortBy        string          `json:"sortBy"`
	OpenNow       bool            `json:"openNow"`
	Cuisines      []string        `json:"cuisines"`
	SpecialFlags  []string        `json:"specialFlags"`
}

// Query applies the documented defaults. An absent radius becomes
// DefaultRadiusKm. An explicit 0 or null disables the radius filter.
func (req SearchRequest) Query() (models.SearchQuery, error) {
	loc := models.Coordinates{Latitude: DefaultLatitude, Longitude: DefaultLongitude}
	if req.UserLatitude != nil {
		loc.Latitude = *req.UserLatitude
	}
	if req.UserLongitude != nil {
		loc.Longitude = *req.UserLongitude
	}

	q := models.NewSearchQuery(loc)
	q.QueryText = req.QueryText
	q.OpenNow = req.OpenNow
	q.Cuisines = req.Cuisines
	q.SpecialFlags = req.SpecialFlags
	radius, err := req.radius()
	if err != nil {
		return models.SearchQuery{}, err
	}
	q.RadiusKm = radius
	if req.PriceRange != nil {
		q.PriceRange = *req.PriceRange
	}
	if req.SortBy != "" {
		q.SortBy = req.SortBy
	}
	return q, nil
}

func (req SearchRequest) radius() (float64, error) {
	switch {
	case len(req.RadiusKm) == 0:
		return models.DefaultRadiusKm, nil
	case bytes.Equal(req.RadiusKm, []byte("null")):
		return 0, nil
	}
	var km float64
	if err := json.Unmarshal(req.RadiusKm, &km); err != nil {
		return 0, fmt.Errorf("%w: radiusKm: %v", ErrBadRequestBody, err)
	}
	return km, nil
}

// ParseSearchRequest decodes a search body into a query.
func ParseSearchRequest(body io.Reader) (models.SearchQuery, error) {
	var req SearchRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return models.SearchQuery{}, fmt.Errorf("%w: %v", ErrBadRequestBody, err)
	}
	return req.Query()
}

// SearchHandler answers POST /api/search with a JSON array of results.
func SearchHandler(searcher Searcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := ParseSearchRequest(http.MaxBytesReader(w, r.Body, maxSearchBodyBytes))
		if err != nil {
			writeError(w, r, err)
			return
		}

		results, err := searcher.Search(r.Context(), q)
		if err != nil {
			writeError(w, r, err)
			return
		}

		slog.Debug("search evaluated",
			slog.String("requestId", RequestIDFrom(r.Context())),
			slog.String("query", q.QueryText),
			slog.Float64("radiusKm", q.RadiusKm),
			slog.String("sortBy", q.SortBy),
			slog.Int("results", len(results)),
		)
		writeJSON(w, http.StatusOK, results)
	}
}
