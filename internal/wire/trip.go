package wire

import (
	"fmt"
	"time"

	"github.com/mberman/trip-planner-backend/internal/domain"
)

// TripRow is the wire representation of a trips row, joined with its child
// map_locations and activities rows as the remote store returns them.
type TripRow struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	StartDate    string        `json:"start_date"`
	EndDate      string        `json:"end_date"`
	IsAllDay     bool          `json:"is_all_day"`
	CreatedAt    string        `json:"created_at"`
	UpdatedAt    string        `json:"updated_at"`
	MapLocations []LocationRow `json:"map_locations"`
	Activities   []ActivityRow `json:"activities"`
}

// TripInsertRow is the payload sent when creating a trip. The created_at and
// updated_at values are sent day-precision here while the activity update
// path stamps RFC 3339 instants; the asymmetry matches the store's current
// contents and is kept until the stored rows are migrated.
type TripInsertRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	IsAllDay  bool   `json:"is_all_day"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// TripUpdateRow is the payload sent when updating a trip's own fields.
// Like the activity update path it re-sends every field and stamps a precise
// updated_at instant.
type TripUpdateRow struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	IsAllDay  bool   `json:"is_all_day"`
	UpdatedAt string `json:"updated_at"`
}

// DecodeStats counts the child rows dropped while decoding an aggregate.
// The drops are silent toward API clients but observable here so the service
// can log them.
type DecodeStats struct {
	CitiesDropped     int
	ActivitiesDropped int
}

// Add accumulates another row's stats.
func (s *DecodeStats) Add(other DecodeStats) {
	s.CitiesDropped += other.CitiesDropped
	s.ActivitiesDropped += other.ActivitiesDropped
}

// EncodeTrip converts trip fields into the insert payload.
func EncodeTrip(t domain.Trip) TripInsertRow {
	return TripInsertRow{
		ID:        t.ID.String(),
		Name:      t.Name,
		StartDate: FormatDate(t.StartDate),
		EndDate:   FormatDate(t.EndDate),
		IsAllDay:  t.IsAllDay,
		CreatedAt: FormatDate(t.CreatedAt),
		UpdatedAt: FormatDate(t.UpdatedAt),
	}
}

// EncodeTripUpdate converts trip fields into the update payload, stamping
// updated_at with now.
func EncodeTripUpdate(t domain.Trip, now time.Time) TripUpdateRow {
	return TripUpdateRow{
		Name:      t.Name,
		StartDate: FormatDate(t.StartDate),
		EndDate:   FormatDate(t.EndDate),
		IsAllDay:  t.IsAllDay,
		UpdatedAt: FormatTimestamp(now),
	}
}

// DecodeTrip reconstructs a trip aggregate from its stored rows.
//
// The trip itself fails to decode only when its identifier or one of its
// date fields is malformed. Child rows are folded best-effort: a city that
// fails the coordinate check is dropped from the city list, and an activity
// that fails any of its decode conditions is dropped from the activity list.
// Every decoded activity's TripID is set to the trip's own identifier. The
// number of dropped children is reported alongside the trip.
func DecodeTrip(row TripRow, now time.Time) (domain.Trip, DecodeStats, error) {
	var stats DecodeStats

	id, err := parseID(row.ID)
	if err != nil {
		return domain.Trip{}, stats, fmt.Errorf("trip %q: %w", row.Name, err)
	}
	startDate, err := ParseDate(row.StartDate)
	if err != nil {
		return domain.Trip{}, stats, fmt.Errorf("trip %q: start: %w", row.Name, err)
	}
	endDate, err := ParseDate(row.EndDate)
	if err != nil {
		return domain.Trip{}, stats, fmt.Errorf("trip %q: end: %w", row.Name, err)
	}

	trip := domain.Trip{
		ID:        id,
		Name:      row.Name,
		StartDate: startDate,
		EndDate:   endDate,
		IsAllDay:  row.IsAllDay,
		CreatedAt: parseTimestamp(row.CreatedAt, now),
		UpdatedAt: parseTimestamp(row.UpdatedAt, now),
	}

	trip.Cities = make([]domain.MapLocation, 0, len(row.MapLocations))
	for _, lr := range row.MapLocations {
		loc, err := DecodeLocation(lr)
		if err != nil {
			stats.CitiesDropped++
			continue
		}
		trip.Cities = append(trip.Cities, loc)
	}

	// Activities resolve their city against the already-decoded city list,
	// so a dropped city takes its activities down with it.
	trip.Activities = make([]domain.Activity, 0, len(row.Activities))
	for _, ar := range row.Activities {
		a, err := DecodeActivity(ar, trip, now)
		if err != nil {
			stats.ActivitiesDropped++
			continue
		}
		trip.Activities = append(trip.Activities, a)
	}

	return trip, stats, nil
}
