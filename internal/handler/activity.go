package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mberman/trip-planner-backend/internal/domain"
)

const timeLayout = "15:04:05"

// activityRequest is the payload for creating or updating an activity.
type activityRequest struct {
	Name              string   `json:"name" validate:"required"`
	Date              string   `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime         string   `json:"start_time" validate:"required,datetime=15:04:05"`
	EndTime           string   `json:"end_time" validate:"required,datetime=15:04:05"`
	CityID            string   `json:"city_id" validate:"required,uuid"`
	POIName           *string  `json:"poi_name"`
	POIAddress        *string  `json:"poi_address"`
	POILatitude       *float64 `json:"poi_latitude" validate:"omitempty,latitude"`
	POILongitude      *float64 `json:"poi_longitude" validate:"omitempty,longitude"`
	Category          string   `json:"category" validate:"required"`
	Notes             *string  `json:"notes"`
	IsAddedToCalendar bool     `json:"is_added_to_calendar"`
}

// form converts the request into a domain form. The clock times are
// reattached to the activity date so the form carries full instants.
func (req activityRequest) form() (domain.ActivityForm, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return domain.ActivityForm{}, err
	}
	start, err := time.Parse(timeLayout, req.StartTime)
	if err != nil {
		return domain.ActivityForm{}, err
	}
	end, err := time.Parse(timeLayout, req.EndTime)
	if err != nil {
		return domain.ActivityForm{}, err
	}
	cityID, err := uuid.Parse(req.CityID)
	if err != nil {
		return domain.ActivityForm{}, err
	}
	onDate := func(clock time.Time) time.Time {
		return time.Date(date.Year(), date.Month(), date.Day(),
			clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC)
	}
	return domain.ActivityForm{
		Name:              req.Name,
		Date:              date,
		StartTime:         onDate(start),
		EndTime:           onDate(end),
		CityID:            cityID,
		POIName:           req.POIName,
		POIAddress:        req.POIAddress,
		POILatitude:       req.POILatitude,
		POILongitude:      req.POILongitude,
		Category:          domain.ActivityCategory(req.Category),
		Notes:             req.Notes,
		IsAddedToCalendar: req.IsAddedToCalendar,
	}, nil
}

// CreateActivity handles POST /api/trips/{tripID}/activities. The form is
// validated against the owning trip: the city must be one of the trip's
// cities and the category a member of the closed enumeration.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.tripFromPath(w, r)
	if !ok {
		return
	}
	var req activityRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	form, err := req.form()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
		return
	}
	activity, err := s.trips.CreateActivity(r.Context(), trip, form)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, activity)
}

// UpdateActivity handles PUT /api/trips/{tripID}/activities/{id}. The whole
// derived row is re-sent regardless of which fields changed.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.tripFromPath(w, r)
	if !ok {
		return
	}
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}
	var req activityRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	form, err := req.form()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
		return
	}
	if err := s.trips.UpdateActivity(r.Context(), trip, id, form); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteActivity handles DELETE /api/activities/{id}. An activity is deleted
// independently of its trip, so no trip lookup is involved.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}
	if err := s.trips.DeleteActivity(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
