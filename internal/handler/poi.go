package handler

import (
	"net/http"
	"strconv"

	"github.com/mberman/trip-planner-backend/internal/domain"
	"github.com/mberman/trip-planner-backend/internal/poi"
)

// SearchPOI handles GET /api/poi/search?q=&lat=&lon=. The query resolves
// against the external place provider, biased to the given center.
func (s *Server) SearchPOI(w http.ResponseWriter, r *http.Request) {
	if s.poi == nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", "place search is not configured")
		return
	}

	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "query parameter q is required")
		return
	}
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "query parameter lat must be a number")
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "query parameter lon must be a number")
		return
	}
	if err := domain.ValidateCoordinate(lat, lon); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
		return
	}

	candidates, err := s.poi.Search(r.Context(), q, poi.Coordinate{Latitude: lat, Longitude: lon})
	if err != nil {
		writeError(w, http.StatusBadGateway, "remote_error", "place search failed")
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}
