package catalog

import (
	"encoding/json"
	"errors"
	"fmt"

	"culinarycompass/geo"
	"culinarycompass/models"
)

var (
	// ErrMissingField marks a record without one of the required keys.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidRecord marks a record whose values cannot be used.
	ErrInvalidRecord = errors.New("invalid restaurant record")
)

// record mirrors the on-disk JSON shape. Pointers let us tell a missing key
// apart from a zero value.
type record struct {
	ID           *int64          `json:"id"`
	Name         *string         `json:"name"`
	Rating       *float64        `json:"rating"`
	AveragePrice *float64        `json:"averagePrice"`
	Cuisines     *[]string       `json:"cuisines"`
	Tags         *[]string       `json:"tags"`
	OpenHours    *string         `json:"openHours"`
	SpecialFlags *[]string       `json:"specialFlags"`
	Location     *recordLocation `json:"location"`
	ImageURL     *string         `json:"image_url"`
	DistanceText *string         `json:"distance_text"`
	PriceText    *string         `json:"price_text"`
}

type recordLocation struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// DecodeRecord parses one restaurant JSON object, requiring every key.
func DecodeRecord(raw json.RawMessage) (models.Restaurant, error) {
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return models.Restaurant{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return rec.toRestaurant()
}

// DecodeRecords parses a JSON array of restaurant objects. The first bad
// record fails the whole batch.
func DecodeRecords(data []byte) ([]models.Restaurant, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	restaurants := make([]models.Restaurant, 0, len(items))
	for i, item := range items {
		r, err := DecodeRecord(item)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		restaurants = append(restaurants, r)
	}
	return restaurants, nil
}

func (rec record) toRestaurant() (models.Restaurant, error) {
	missing := func(key string) error {
		return fmt.Errorf("%w %q", ErrMissingField, key)
	}
	switch {
	case rec.ID == nil:
		return models.Restaurant{}, missing("id")
	case rec.Name == nil:
		return models.Restaurant{}, missing("name")
	case rec.Rating == nil:
		return models.Restaurant{}, missing("rating")
	case rec.AveragePrice == nil:
		return models.Restaurant{}, missing("averagePrice")
	case rec.Cuisines == nil:
		return models.Restaurant{}, missing("cuisines")
	case rec.Tags == nil:
		return models.Restaurant{}, missing("tags")
	case rec.OpenHours == nil:
		return models.Restaurant{}, missing("openHours")
	case rec.SpecialFlags == nil:
		return models.Restaurant{}, missing("specialFlags")
	case rec.Location == nil:
		return models.Restaurant{}, missing("location")
	case rec.Location.Latitude == nil:
		return models.Restaurant{}, missing("location.latitude")
	case rec.Location.Longitude == nil:
		return models.Restaurant{}, missing("location.longitude")
	case rec.ImageURL == nil:
		return models.Restaurant{}, missing("image_url")
	case rec.DistanceText == nil:
		return models.Restaurant{}, missing("distance_text")
	case rec.PriceText == nil:
		return models.Restaurant{}, missing("price_text")
	}

	loc := models.Coordinates{Latitude: *rec.Location.Latitude, Longitude: *rec.Location.Longitude}
	if err := geo.Validate(loc); err != nil {
		return models.Restaurant{}, fmt.Errorf("%w: id %d: %v", ErrInvalidRecord, *rec.ID, err)
	}

	return models.Restaurant{
		ID:           *rec.ID,
		Name:         *rec.Name,
		Rating:       *rec.Rating,
		AveragePrice: *rec.AveragePrice,
		Cuisines:     *rec.Cuisines,
		Tags:         *rec.Tags,
		OpenHours:    *rec.OpenHours,
		SpecialFlags: *rec.SpecialFlags,
		Location:     loc,
		ImageURL:     *rec.ImageURL,
		DistanceText: *rec.DistanceText,
		PriceText:    *rec.PriceText,
	}, nil
}
