package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a single planned event inside a trip. It always references one
// of the owning trip's cities; the optional POI fields narrow the location to
// a specific place within that city.
type Activity struct {
	ID                uuid.UUID        `json:"id"`
	TripID            uuid.UUID        `json:"trip_id"`
	Name              string           `json:"name"`
	Date              time.Time        `json:"date"`
	StartTime         time.Time        `json:"start_time"`
	EndTime           time.Time        `json:"end_time"`
	City              MapLocation      `json:"city"`
	POIName           *string          `json:"poi_name,omitempty"`
	POIAddress        *string          `json:"poi_address,omitempty"`
	POILatitude       *float64         `json:"poi_latitude,omitempty"`
	POILongitude      *float64         `json:"poi_longitude,omitempty"`
	Category          ActivityCategory `json:"category"`
	Notes             *string          `json:"notes,omitempty"`
	IsAddedToCalendar bool             `json:"is_added_to_calendar"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// Location derives the activity's effective location. If the POI override is
// complete (name plus both coordinates) it wins and a MapLocation is
// synthesized from it with a fresh identifier and no map URL; otherwise the
// city is returned unchanged. The derivation is pure and total: a POI
// coordinate that fails validation falls back to the city rather than
// producing an invalid location.
func (a Activity) Location() MapLocation {
	if a.POIName == nil || a.POILatitude == nil || a.POILongitude == nil {
		return a.City
	}
	loc, err := NewMapLocation(uuid.New(), *a.POIName, "", *a.POILatitude, *a.POILongitude)
	if err != nil {
		return a.City
	}
	return loc
}

// HasPOI reports whether the POI override is complete enough to take effect.
func (a Activity) HasPOI() bool {
	return a.POIName != nil && a.POILatitude != nil && a.POILongitude != nil
}
