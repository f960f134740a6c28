package geo

import (
	"errors"
	"fmt"
	"math"

	"culinarycompass/models"
)

// EarthRadiusKm is the mean radius of the sphere used for distance math.
const EarthRadiusKm = 6371.0

// ErrInvalidCoordinates marks a latitude or longitude outside its range.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// Distance returns the great-circle distance in kilometres between a and b
// using the haversine formula.
func Distance(a, b models.Coordinates) float64 {
	lat1 := toRadians(a.Latitude)
	lon1 := toRadians(a.Longitude)
	lat2 := toRadians(b.Latitude)
	lon2 := toRadians(b.Longitude)

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// Validate reports whether c lies within [-90,90] x [-180,180].
func Validate(c models.Coordinates) error {
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v must be between -90 and 90", ErrInvalidCoordinates, c.Latitude)
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v must be between -180 and 180", ErrInvalidCoordinates, c.Longitude)
	}
	return nil
}
