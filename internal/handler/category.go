package handler

import (
	"net/http"

	"github.com/mberman/trip-planner-backend/internal/domain"
)

// categoryResponse pairs each category with its display icon tag.
type categoryResponse struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// ListCategories handles GET /api/categories, returning the closed
// enumeration of activity categories with their icon tags.
func (s *Server) ListCategories(w http.ResponseWriter, _ *http.Request) {
	cats := domain.Categories()
	out := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryResponse{Name: c.String(), Icon: c.Icon()})
	}
	writeJSON(w, http.StatusOK, out)
}
