package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TripForm is the immutable input state for creating or editing a trip.
// Validate is the save gate: any interface layer (HTTP handler, CLI, test)
// builds a form and asks it whether saving is allowed, keeping the rules
// independent of any UI toolkit.
type TripForm struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
	IsAllDay  bool
	Cities    []MapLocation
}

// Validate enforces the trip save rules:
//   - name must be non-empty (whitespace-only is rejected)
//   - start date must not be after end date
//   - at least one city is required
//   - city names must be unique within the form
//
// All violations are reported as ErrValidation.
func (f TripForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if f.StartDate.After(f.EndDate) {
		return fmt.Errorf("%w: start date must not be after end date", ErrValidation)
	}
	if len(f.Cities) == 0 {
		return fmt.Errorf("%w: at least one city is required", ErrValidation)
	}
	seen := make(map[string]bool, len(f.Cities))
	for _, c := range f.Cities {
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate city %q", ErrValidation, c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

// ValidateForUpdate enforces the rules for editing an existing trip's scalar
// fields. Cities are fixed at creation, so the city rules do not apply.
func (f TripForm) ValidateForUpdate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if f.StartDate.After(f.EndDate) {
		return fmt.Errorf("%w: start date must not be after end date", ErrValidation)
	}
	return nil
}

// ActivityForm is the immutable input state for creating or editing an
// activity within a trip.
type ActivityForm struct {
	Name              string
	Date              time.Time
	StartTime         time.Time
	EndTime           time.Time
	CityID            uuid.UUID
	POIName           *string
	POIAddress        *string
	POILatitude       *float64
	POILongitude      *float64
	Category          ActivityCategory
	Notes             *string
	IsAddedToCalendar bool
}

// NewActivityForm returns the default form state for a new activity on the
// given trip: 09:00–10:00 on the trip's start date, first city preselected.
func NewActivityForm(trip Trip) ActivityForm {
	d := trip.StartDate
	f := ActivityForm{
		Name:      "",
		Date:      d,
		StartTime: time.Date(d.Year(), d.Month(), d.Day(), 9, 0, 0, 0, d.Location()),
		EndTime:   time.Date(d.Year(), d.Month(), d.Day(), 10, 0, 0, 0, d.Location()),
		Category:  CategoryPlaces,
	}
	if len(trip.Cities) > 0 {
		f.CityID = trip.Cities[0].ID
	}
	return f
}

// Validate enforces the activity save rules against the owning trip:
//   - name must be non-empty
//   - start time must not be after end time
//   - the referenced city must be one of the trip's cities
//   - the category must be a member of the closed enumeration
//   - POI coordinates, when present, must pass the coordinate check
//
// All violations are reported as ErrValidation.
func (f ActivityForm) Validate(trip Trip) error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if f.StartTime.After(f.EndTime) {
		return fmt.Errorf("%w: start time must not be after end time", ErrValidation)
	}
	if _, ok := trip.CityByID(f.CityID); !ok {
		return fmt.Errorf("%w: city %s is not part of trip %q", ErrValidation, f.CityID, trip.Name)
	}
	if !f.Category.Valid() {
		return fmt.Errorf("%w: unknown activity category %q", ErrValidation, f.Category)
	}
	if f.POILatitude != nil && f.POILongitude != nil {
		if err := ValidateCoordinate(*f.POILatitude, *f.POILongitude); err != nil {
			return err
		}
	}
	return nil
}

// Activity materializes the form into an Activity owned by trip.
// Call Validate first; Activity does not re-check the rules.
func (f ActivityForm) Activity(id uuid.UUID, trip Trip, now time.Time) Activity {
	city, _ := trip.CityByID(f.CityID)
	var notes *string
	if f.Notes != nil && *f.Notes != "" {
		notes = f.Notes
	}
	return Activity{
		ID:                id,
		TripID:            trip.ID,
		Name:              f.Name,
		Date:              f.Date,
		StartTime:         f.StartTime,
		EndTime:           f.EndTime,
		City:              city,
		POIName:           f.POIName,
		POIAddress:        f.POIAddress,
		POILatitude:       f.POILatitude,
		POILongitude:      f.POILongitude,
		Category:          f.Category,
		Notes:             notes,
		IsAddedToCalendar: f.IsAddedToCalendar,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
