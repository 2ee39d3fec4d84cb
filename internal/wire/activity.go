package wire

import (
	"fmt"
	"time"

	"github.com/mberman/trip-planner-backend/internal/domain"
)

// ActivityRow is the wire representation of an activities row.
type ActivityRow struct {
	ID                string   `json:"id"`
	TripID            string   `json:"trip_id"`
	Name              string   `json:"name"`
	Date              string   `json:"date"`
	StartTime         string   `json:"start_time"`
	EndTime           string   `json:"end_time"`
	CityID            string   `json:"city_id"`
	POIName           *string  `json:"poi_name"`
	POIAddress        *string  `json:"poi_address"`
	POILatitude       *float64 `json:"poi_latitude"`
	POILongitude      *float64 `json:"poi_longitude"`
	Category          string   `json:"category"`
	Notes             *string  `json:"notes"`
	IsAddedToCalendar bool     `json:"is_added_to_calendar"`
	CreatedAt         string   `json:"created_at,omitempty"`
	UpdatedAt         string   `json:"updated_at,omitempty"`
}

// ActivityUpdateRow is the payload sent when updating an activity.
// Every derived field is re-sent regardless of what changed (full-row upsert
// semantics, not a partial patch), and updated_at is stamped with a fresh
// RFC 3339 instant — a stricter format than the day-precision dates used on
// the insert path.
type ActivityUpdateRow struct {
	Name              string   `json:"name"`
	Date              string   `json:"date"`
	StartTime         string   `json:"start_time"`
	EndTime           string   `json:"end_time"`
	CityID            string   `json:"city_id"`
	POIName           *string  `json:"poi_name"`
	POIAddress        *string  `json:"poi_address"`
	POILatitude       *float64 `json:"poi_latitude"`
	POILongitude      *float64 `json:"poi_longitude"`
	Category          string   `json:"category"`
	Notes             *string  `json:"notes"`
	IsAddedToCalendar bool     `json:"is_added_to_calendar"`
	UpdatedAt         string   `json:"updated_at"`
}

// EncodeActivity converts an activity into its insert payload.
func EncodeActivity(a domain.Activity) ActivityRow {
	return ActivityRow{
		ID:                a.ID.String(),
		TripID:            a.TripID.String(),
		Name:              a.Name,
		Date:              FormatDate(a.Date),
		StartTime:         FormatTime(a.StartTime),
		EndTime:           FormatTime(a.EndTime),
		CityID:            a.City.ID.String(),
		POIName:           a.POIName,
		POIAddress:        a.POIAddress,
		POILatitude:       a.POILatitude,
		POILongitude:      a.POILongitude,
		Category:          a.Category.String(),
		Notes:             a.Notes,
		IsAddedToCalendar: a.IsAddedToCalendar,
	}
}

// EncodeActivityUpdate converts an activity into its update payload,
// stamping updated_at with now.
func EncodeActivityUpdate(a domain.Activity, now time.Time) ActivityUpdateRow {
	return ActivityUpdateRow{
		Name:              a.Name,
		Date:              FormatDate(a.Date),
		StartTime:         FormatTime(a.StartTime),
		EndTime:           FormatTime(a.EndTime),
		CityID:            a.City.ID.String(),
		POIName:           a.POIName,
		POIAddress:        a.POIAddress,
		POILatitude:       a.POILatitude,
		POILongitude:      a.POILongitude,
		Category:          a.Category.String(),
		Notes:             a.Notes,
		IsAddedToCalendar: a.IsAddedToCalendar,
		UpdatedAt:         FormatTimestamp(now),
	}
}

// DecodeActivity converts a stored row into an Activity owned by trip,
// resolving the row's city_id against the trip's
// already-decoded city list (case-insensitive match on the canonical UUID
// string). It fails — and the caller drops the activity — when:
//
//   - the id does not parse
//   - the date field does not parse as yyyy-MM-dd
//   - no city in cities matches city_id
//   - the category is not a member of the closed enumeration
//   - the combined date+start-time or date+end-time string does not parse
//
// created_at/updated_at use the lenient fallback: unparsable values default
// to now instead of failing the activity.
func DecodeActivity(row ActivityRow, trip domain.Trip, now time.Time) (domain.Activity, error) {
	id, err := parseID(row.ID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("activity %q: %w", row.Name, err)
	}

	date, err := ParseDate(row.Date)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("activity %q: %w", row.Name, err)
	}

	var city domain.MapLocation
	found := false
	for _, c := range trip.Cities {
		if equalID(c.ID.String(), row.CityID) {
			city = c
			found = true
			break
		}
	}
	if !found {
		return domain.Activity{}, fmt.Errorf("%w: activity %q references unknown city %q", domain.ErrDecode, row.Name, row.CityID)
	}

	category, err := domain.ParseCategory(row.Category)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("%w: activity %q: %v", domain.ErrDecode, row.Name, err)
	}

	// Times are stored as bare clock strings; reattach the activity date
	// before parsing so the reconstructed instants carry the right day.
	startTime, err := ParseDateTime(row.Date + " " + row.StartTime)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("activity %q: start: %w", row.Name, err)
	}
	endTime, err := ParseDateTime(row.Date + " " + row.EndTime)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("activity %q: end: %w", row.Name, err)
	}

	return domain.Activity{
		ID:                id,
		TripID:            trip.ID,
		Name:              row.Name,
		Date:              date,
		StartTime:         startTime,
		EndTime:           endTime,
		City:              city,
		POIName:           row.POIName,
		POIAddress:        row.POIAddress,
		POILatitude:       row.POILatitude,
		POILongitude:      row.POILongitude,
		Category:          category,
		Notes:             row.Notes,
		IsAddedToCalendar: row.IsAddedToCalendar,
		CreatedAt:         parseTimestamp(row.CreatedAt, now),
		UpdatedAt:         parseTimestamp(row.UpdatedAt, now),
	}, nil
}
