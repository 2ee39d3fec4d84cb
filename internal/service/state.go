package service

import "github.com/mberman/trip-planner-backend/internal/domain"

// Status is the lifecycle of the published trips list. Exactly one status
// holds at a time; a state can never be loading and failed at once.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusFailed  Status = "failed"
)

// TripsState is the process-wide published state: the current trip list with
// its loading/error status. Trips is populated only when loaded; Err only
// when failed. Build states through the constructors so the invariant holds.
type TripsState struct {
	Status Status        `json:"status"`
	Trips  []domain.Trip `json:"trips"`
	Err    string        `json:"error,omitempty"`
}

// Idle is the state before the first fetch.
func Idle() TripsState { return TripsState{Status: StatusIdle} }

// Loading is the state while a fetch is in flight.
func Loading() TripsState { return TripsState{Status: StatusLoading} }

// Loaded publishes a fresh trip list, wholesale. A nil slice is normalized
// so observers can always range over Trips.
func Loaded(trips []domain.Trip) TripsState {
	if trips == nil {
		trips = []domain.Trip{}
	}
	return TripsState{Status: StatusLoaded, Trips: trips}
}

// Failed publishes a terminal, human-readable failure for the last fetch.
func Failed(msg string) TripsState { return TripsState{Status: StatusFailed, Err: msg} }
