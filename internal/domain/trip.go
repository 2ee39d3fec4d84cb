// Package domain contains the core data types for the trip planner.
// This package has no I/O and is imported by every other internal package
// (wire, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the root aggregate of a travel plan: a date range, an ordered list
// of cities, and the activities planned in them.
//
// The domain view owns its children exclusively; the remote store relates
// them by foreign key instead, so the wire package reconstructs ownership on
// every fetch. Every activity's TripID equals the trip's own ID once a trip
// has been decoded.
type Trip struct {
	ID         uuid.UUID     `json:"id"`
	Name       string        `json:"name"`
	StartDate  time.Time     `json:"start_date"`
	EndDate    time.Time     `json:"end_date"`
	IsAllDay   bool          `json:"is_all_day"`
	Cities     []MapLocation `json:"cities"`
	Activities []Activity    `json:"activities"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// CityByID resolves a city reference against the trip's city list.
// Returns false when no city matches.
func (t Trip) CityByID(id uuid.UUID) (MapLocation, bool) {
	for _, c := range t.Cities {
		if c.ID == id {
			return c, true
		}
	}
	return MapLocation{}, false
}
