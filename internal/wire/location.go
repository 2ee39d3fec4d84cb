package wire

import (
	"fmt"

	"github.com/mberman/trip-planner-backend/internal/domain"
)

// LocationRow is the wire representation of a map_locations row.
type LocationRow struct {
	ID            string  `json:"id"`
	TripID        string  `json:"trip_id"`
	Name          string  `json:"name"`
	UnifiedMapURL string  `json:"unified_map_url"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
}

// EncodeLocation converts a city into its insert payload for the given trip.
func EncodeLocation(tripID string, loc domain.MapLocation) LocationRow {
	return LocationRow{
		ID:            loc.ID.String(),
		TripID:        tripID,
		Name:          loc.Name,
		UnifiedMapURL: loc.UnifiedMapURL,
		Latitude:      loc.Latitude,
		Longitude:     loc.Longitude,
	}
}

// DecodeLocation converts a stored row into a MapLocation.
// It fails on a bad identifier or an out-of-range/non-finite coordinate;
// the caller drops the city from its trip rather than failing the trip.
func DecodeLocation(row LocationRow) (domain.MapLocation, error) {
	id, err := parseID(row.ID)
	if err != nil {
		return domain.MapLocation{}, fmt.Errorf("location %q: %w", row.Name, err)
	}
	loc, err := domain.NewMapLocation(id, row.Name, row.UnifiedMapURL, row.Latitude, row.Longitude)
	if err != nil {
		return domain.MapLocation{}, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	return loc, nil
}
