package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mberman/trip-planner-backend/internal/domain"
	"github.com/mberman/trip-planner-backend/internal/service"
)

const dateLayout = "2006-01-02"

// cityRequest is one city in a trip create payload.
type cityRequest struct {
	Name          string  `json:"name" validate:"required"`
	UnifiedMapURL string  `json:"unified_map_url"`
	Latitude      float64 `json:"latitude" validate:"latitude"`
	Longitude     float64 `json:"longitude" validate:"longitude"`
}

// tripRequest is the payload for creating or updating a trip. Cities are
// honored on create only; a trip's cities are fixed after creation.
type tripRequest struct {
	Name      string        `json:"name" validate:"required"`
	StartDate string        `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string        `json:"end_date" validate:"required,datetime=2006-01-02"`
	IsAllDay  bool          `json:"is_all_day"`
	Cities    []cityRequest `json:"cities" validate:"omitempty,dive"`
}

// decodeAndValidate reads the JSON body into v and runs struct validation.
// It writes the error response itself and reports whether the caller should
// proceed.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "malformed JSON body")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return false
	}
	return true
}

// form converts the request into a domain form. Dates were already shape-
// checked by the validator, so parse errors here are impossible in practice.
func (req tripRequest) form() (domain.TripForm, error) {
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return domain.TripForm{}, err
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return domain.TripForm{}, err
	}
	cities := make([]domain.MapLocation, 0, len(req.Cities))
	for _, c := range req.Cities {
		city, err := domain.NewMapLocation(uuid.New(), c.Name, c.UnifiedMapURL, c.Latitude, c.Longitude)
		if err != nil {
			return domain.TripForm{}, err
		}
		cities = append(cities, city)
	}
	return domain.TripForm{
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		IsAllDay:  req.IsAllDay,
		Cities:    cities,
	}, nil
}

// ListTrips handles GET /api/trips. Every call triggers a fresh fetch and
// returns the published state wholesale, matching the refetch-after-mutation
// contract: clients re-list to observe their own writes.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	s.trips.FetchTrips(r.Context())
	st := s.trips.State()
	if st.Status == service.StatusFailed {
		writeError(w, http.StatusBadGateway, "remote_error", st.Err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// CreateTrip handles POST /api/trips. It returns 201 with the new trip's id.
// A city insert can fail after the trip row was written; the store then holds
// a trip with fewer cities than requested and the response reports the error.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	form, err := req.form()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
		return
	}
	id, err := s.trips.CreateTrip(r.Context(), form)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

// UpdateTrip handles PUT /api/trips/{id}, overwriting the trip's scalar
// fields. Cities in the payload are ignored.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}
	var req tripRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	req.Cities = nil
	form, err := req.form()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
		return
	}
	if err := s.trips.UpdateTrip(r.Context(), id, form); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTrip handles DELETE /api/trips/{id}. Child rows cascade in the store.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}
	if err := s.trips.DeleteTrip(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
