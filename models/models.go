package models

// Coordinates is a point on the globe in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Restaurant represents one catalog entry as loaded from the data source.
// Records are shared by every query and must never be mutated after loading.
type Restaurant struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Rating       float64     `json:"rating"`
	AveragePrice float64     `json:"averagePrice"`
	Cuisines     []string    `json:"cuisines"`
	Tags         []string    `json:"tags"`
	OpenHours    string      `json:"openHours"`
	SpecialFlags []string    `json:"specialFlags"`
	Location     Coordinates `json:"location"`
	ImageURL     string      `json:"image_url"`
	DistanceText string      `json:"distance_text"`
	PriceText    string      `json:"price_text"`
}

// Price tiers accepted by SearchQuery.PriceRange.
const (
	PriceLow  = "low"
	PriceMid  = "mid"
	PriceHigh = "high"
)

// Sort keys accepted by SearchQuery.SortBy.
const (
	SortByDistance = "distance"
	SortByRating   = "rating"
)

// DefaultRadiusKm is applied when the caller does not send a radius.
const DefaultRadiusKm = 10.0

// SearchQuery carries the filter and ordering criteria of one search request.
type SearchQuery struct {
	UserLocation Coordinates
	QueryText    string
	// RadiusKm <= 0 disables the radius filter. Negative values are treated as
	// no limit rather than excluding every record.
	RadiusKm     float64
	PriceRange   string
	SortBy       string
	OpenNow      bool
	Cuisines     []string
	SpecialFlags []string
}

// NewSearchQuery returns a query for the given location with every other
// field at its default.
func NewSearchQuery(loc Coordinates) SearchQuery {
	return SearchQuery{
		UserLocation: loc,
		RadiusKm:     DefaultRadiusKm,
		SortBy:       SortByDistance,
	}
}

// Result is a restaurant annotated with the query-specific fields.
type Result struct {
	Restaurant
	CalculatedDistanceKm float64 `json:"calculated_distance_km"`
	OpenStatusText       string  `json:"open_status_text"`
}
