package domain

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// MapLocation is a named geographic point. It serves double duty: as a
// trip-level city and, synthesized from POI fields, as an activity's
// specific place.
//
// Identity is the ID alone — two locations with the same ID are the same
// location regardless of name or coordinate.
type MapLocation struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	UnifiedMapURL string    `json:"unified_map_url"` // "open in maps" link, may be empty
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
}

// NewMapLocation validates the coordinate and returns the location.
// Out-of-range or non-finite coordinates are rejected with ErrValidation;
// there is no fallback coordinate.
func NewMapLocation(id uuid.UUID, name, mapURL string, lat, lon float64) (MapLocation, error) {
	if err := ValidateCoordinate(lat, lon); err != nil {
		return MapLocation{}, fmt.Errorf("location %q: %w", name, err)
	}
	return MapLocation{
		ID:            id,
		Name:          name,
		UnifiedMapURL: mapURL,
		Latitude:      lat,
		Longitude:     lon,
	}, nil
}

// ValidateCoordinate reports whether (lat, lon) is a finite coordinate with
// lat in [-90, 90] and lon in [-180, 180]. Every entry point that accepts an
// externally supplied coordinate goes through this check.
func ValidateCoordinate(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return fmt.Errorf("%w: coordinate must be finite", ErrValidation)
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrValidation, lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrValidation, lon)
	}
	return nil
}

// Equal compares by identifier only.
func (l MapLocation) Equal(other MapLocation) bool {
	return l.ID == other.ID
}
