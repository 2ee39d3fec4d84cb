// Package service contains the data-service layer: it orchestrates round
// trips to the remote store, converts through the wire package, and
// republishes the resulting domain aggregates to observers. No SQL or HTTP
// lives here — the service depends on the repo.Store interface.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mberman/trip-planner-backend/internal/domain"
	"github.com/mberman/trip-planner-backend/internal/repo"
	"github.com/mberman/trip-planner-backend/internal/wire"
)

// Observer receives every published state change.
type Observer func(TripsState)

// TripService holds the process-wide trips state and implements all
// trip and activity operations against the remote store.
//
// Operations may overlap freely — there is no mutual exclusion between a
// fetch and a concurrent mutation. Each fetch carries a generation number;
// a completion whose generation is stale is discarded instead of
// overwriting state published by a later fetch.
type TripService struct {
	store repo.Store
	log   *slog.Logger

	// now and newID are injection points for tests.
	now   func() time.Time
	newID func() uuid.UUID

	mu        sync.Mutex
	state     TripsState
	fetchGen  uint64
	observers []Observer
}

// NewTripService constructs a TripService backed by the provided store.
func NewTripService(store repo.Store, log *slog.Logger) *TripService {
	return &TripService{
		store: store,
		log:   log,
		now:   time.Now,
		newID: uuid.New,
		state: Idle(),
	}
}

// State returns the currently published state.
func (s *TripService) State() TripsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// TripByID looks up a trip in the currently published state. It returns
// false when the state is not loaded or no trip matches.
func (s *TripService) TripByID(id uuid.UUID) (domain.Trip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.state.Trips {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Trip{}, false
}

// Subscribe registers an observer for every subsequent state change.
// Observers are invoked synchronously, outside the service lock.
func (s *TripService) Subscribe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// publish stores the new state and notifies observers. Publishing is skipped
// when gen is stale, i.e. another fetch started after the one reporting.
func (s *TripService) publish(gen uint64, st TripsState) {
	s.mu.Lock()
	if gen != 0 && gen != s.fetchGen {
		s.mu.Unlock()
		s.log.Debug("discarding stale fetch result", "generation", gen, "current", s.fetchGen)
		return
	}
	s.state = st
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(st)
	}
}

// FetchTrips performs one round trip retrieving every trip with its child
// rows, decodes each through the wire package, and publishes the result
// wholesale. Trips that fail trip-level decode are dropped from the
// published list; dropped child rows are logged but never surface as errors.
// A transport failure publishes a failed state with a display message.
func (s *TripService) FetchTrips(ctx context.Context) {
	s.mu.Lock()
	s.fetchGen++
	gen := s.fetchGen
	s.mu.Unlock()
	s.publish(gen, Loading())

	rows, err := s.store.FetchTrips(ctx)
	if err != nil {
		s.log.Error("fetch trips failed", "error", err)
		s.publish(gen, Failed(fmt.Sprintf("Failed to fetch trips: %v", err)))
		return
	}

	now := s.now()
	trips := make([]domain.Trip, 0, len(rows))
	var stats wire.DecodeStats
	tripsDropped := 0
	for _, row := range rows {
		trip, st, err := wire.DecodeTrip(row, now)
		if err != nil {
			tripsDropped++
			s.log.Warn("dropping undecodable trip", "trip_id", row.ID, "error", err)
			continue
		}
		stats.Add(st)
		trips = append(trips, trip)
	}
	if tripsDropped > 0 || stats.CitiesDropped > 0 || stats.ActivitiesDropped > 0 {
		s.log.Warn("fetch decoded with drops",
			"trips_dropped", tripsDropped,
			"cities_dropped", stats.CitiesDropped,
			"activities_dropped", stats.ActivitiesDropped,
		)
	}

	s.publish(gen, Loaded(trips))
}

// CreateTrip validates the form and persists the trip: one insert for the
// trip row, then one insert per city, sequentially. There is no rollback —
// a failed city insert leaves the already-written trip with fewer cities
// than requested, and the error reports how far it got. On success the
// caller is expected to re-invoke FetchTrips to observe the effect.
func (s *TripService) CreateTrip(ctx context.Context, form domain.TripForm) (uuid.UUID, error) {
	if err := form.Validate(); err != nil {
		return uuid.Nil, fmt.Errorf("service.TripService.CreateTrip: %w", err)
	}

	now := s.now()
	trip := domain.Trip{
		ID:        s.newID(),
		Name:      form.Name,
		StartDate: form.StartDate,
		EndDate:   form.EndDate,
		IsAllDay:  form.IsAllDay,
		Cities:    form.Cities,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.InsertTrip(ctx, wire.EncodeTrip(trip)); err != nil {
		return uuid.Nil, fmt.Errorf("service.TripService.CreateTrip: trip row: %w", err)
	}
	tripID := trip.ID.String()
	for i, city := range trip.Cities {
		if err := s.store.InsertLocation(ctx, wire.EncodeLocation(tripID, city)); err != nil {
			return trip.ID, fmt.Errorf("service.TripService.CreateTrip: city %d of %d (%q): %w",
				i+1, len(trip.Cities), city.Name, err)
		}
	}
	return trip.ID, nil
}

// UpdateTrip overwrites the scalar fields of an existing trip, stamping a
// fresh updated_at instant. Cities are fixed at creation and not editable.
func (s *TripService) UpdateTrip(ctx context.Context, id uuid.UUID, form domain.TripForm) error {
	if err := form.ValidateForUpdate(); err != nil {
		return fmt.Errorf("service.TripService.UpdateTrip: %w", err)
	}
	row := wire.EncodeTripUpdate(domain.Trip{
		Name:      form.Name,
		StartDate: form.StartDate,
		EndDate:   form.EndDate,
		IsAllDay:  form.IsAllDay,
	}, s.now())
	if err := s.store.UpdateTrip(ctx, id.String(), row); err != nil {
		return fmt.Errorf("service.TripService.UpdateTrip: %w", err)
	}
	return nil
}

// DeleteTrip removes a trip by id. Child rows are cascaded by the store.
func (s *TripService) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteTrip(ctx, id.String()); err != nil {
		return fmt.Errorf("service.TripService.DeleteTrip: %w", err)
	}
	return nil
}

// CreateActivity validates the form against its owning trip and inserts the
// activity. The seven wire-format fields are derived fresh from the form.
func (s *TripService) CreateActivity(ctx context.Context, trip domain.Trip, form domain.ActivityForm) (domain.Activity, error) {
	if err := form.Validate(trip); err != nil {
		return domain.Activity{}, fmt.Errorf("service.TripService.CreateActivity: %w", err)
	}
	activity := form.Activity(s.newID(), trip, s.now())
	if err := s.store.InsertActivity(ctx, wire.EncodeActivity(activity)); err != nil {
		return domain.Activity{}, fmt.Errorf("service.TripService.CreateActivity: %w", err)
	}
	return activity, nil
}

// UpdateActivity validates the form and overwrites the stored activity with
// the full derived payload — an upsert of every field regardless of which
// changed — stamping a fresh RFC 3339 updated_at.
func (s *TripService) UpdateActivity(ctx context.Context, trip domain.Trip, id uuid.UUID, form domain.ActivityForm) error {
	if err := form.Validate(trip); err != nil {
		return fmt.Errorf("service.TripService.UpdateActivity: %w", err)
	}
	now := s.now()
	activity := form.Activity(id, trip, now)
	if err := s.store.UpdateActivity(ctx, id.String(), wire.EncodeActivityUpdate(activity, now)); err != nil {
		return fmt.Errorf("service.TripService.UpdateActivity: %w", err)
	}
	return nil
}

// DeleteActivity removes a single activity row by identifier equality.
// No cascade is involved; the activity is deleted independently of its trip.
func (s *TripService) DeleteActivity(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteActivity(ctx, id.String()); err != nil {
		return fmt.Errorf("service.TripService.DeleteActivity: %w", err)
	}
	return nil
}
