// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, activity.go, poi.go) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mberman/trip-planner-backend/internal/domain"
	"github.com/mberman/trip-planner-backend/internal/poi"
	"github.com/mberman/trip-planner-backend/internal/service"
)

// TripServicer defines the business operations the trip and activity
// handlers depend on. Defining the interface here (in the consumer package)
// follows the Go convention: "accept interfaces, return concrete types". It
// lets handler tests inject a mock without touching the store.
type TripServicer interface {
	State() service.TripsState
	FetchTrips(ctx context.Context)
	TripByID(id uuid.UUID) (domain.Trip, bool)
	CreateTrip(ctx context.Context, form domain.TripForm) (uuid.UUID, error)
	UpdateTrip(ctx context.Context, id uuid.UUID, form domain.TripForm) error
	DeleteTrip(ctx context.Context, id uuid.UUID) error
	CreateActivity(ctx context.Context, trip domain.Trip, form domain.ActivityForm) (domain.Activity, error)
	UpdateActivity(ctx context.Context, trip domain.Trip, id uuid.UUID, form domain.ActivityForm) error
	DeleteActivity(ctx context.Context, id uuid.UUID) error
}

// POISearcher defines the place-search operation the POI handler depends on.
type POISearcher interface {
	Search(ctx context.Context, query string, center poi.Coordinate) ([]poi.Candidate, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	trips    TripServicer
	poi      POISearcher
	validate *validator.Validate
}

// NewServer constructs the Server with all its dependencies. poiSearcher may
// be nil when no place-search provider is configured; the POI endpoint then
// reports itself unavailable.
func NewServer(trips TripServicer, poiSearcher POISearcher) *Server {
	return &Server{
		trips:    trips,
		poi:      poiSearcher,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Routes mounts every endpoint on a fresh chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/trips", s.ListTrips)
		r.Post("/trips", s.CreateTrip)
		r.Put("/trips/{id}", s.UpdateTrip)
		r.Delete("/trips/{id}", s.DeleteTrip)

		r.Post("/trips/{tripID}/activities", s.CreateActivity)
		r.Put("/trips/{tripID}/activities/{id}", s.UpdateActivity)
		r.Delete("/activities/{id}", s.DeleteActivity)

		r.Get("/categories", s.ListCategories)
		r.Get("/poi/search", s.SearchPOI)
	})

	return r
}

// tripFromPath resolves the {tripID} path parameter against the published
// state, refetching once when the trip is not yet loaded.
func (s *Server) tripFromPath(w http.ResponseWriter, r *http.Request) (domain.Trip, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid trip id")
		return domain.Trip{}, false
	}
	trip, ok := s.trips.TripByID(id)
	if !ok {
		s.trips.FetchTrips(r.Context())
		trip, ok = s.trips.TripByID(id)
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "trip not found")
		return domain.Trip{}, false
	}
	return trip, true
}

// idFromPath parses the {id} path parameter as a UUID.
func idFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
