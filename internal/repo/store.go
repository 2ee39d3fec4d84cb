// Package repo defines the remote store surface and its Postgres
// implementation. The store moves wire rows; it never touches domain types —
// all encoding policy lives in the wire package, so the PostgREST transport
// and the direct Postgres transport share one codec.
package repo

import (
	"context"

	"github.com/mberman/trip-planner-backend/internal/wire"
)

// Store is the generic query/insert/update/delete capability over the named
// tables trips, map_locations, and activities. The service layer depends on
// this interface; production wires either the Postgres implementation below
// or the PostgREST client, and tests wire a mock.
type Store interface {
	// FetchTrips returns every trip row joined with its child city and
	// activity rows, ordered by creation time descending.
	FetchTrips(ctx context.Context) ([]wire.TripRow, error)

	// InsertTrip inserts a single trips row. Cities are inserted separately,
	// one round trip each.
	InsertTrip(ctx context.Context, row wire.TripInsertRow) error

	// InsertLocation inserts a single map_locations row.
	InsertLocation(ctx context.Context, row wire.LocationRow) error

	// UpdateTrip overwrites the scalar fields of a trip by id.
	// Returns domain.ErrNotFound if no trip with that id exists.
	UpdateTrip(ctx context.Context, id string, row wire.TripUpdateRow) error

	// DeleteTrip removes a trip row by identifier equality. Child rows are a
	// remote-store concern (FK cascade); no cascade happens here.
	// Returns domain.ErrNotFound if no trip with that id exists.
	DeleteTrip(ctx context.Context, id string) error

	// InsertActivity inserts a single activities row.
	InsertActivity(ctx context.Context, row wire.ActivityRow) error

	// UpdateActivity overwrites an activity row by id with the full payload.
	// Returns domain.ErrNotFound if no activity with that id exists.
	UpdateActivity(ctx context.Context, id string, row wire.ActivityUpdateRow) error

	// DeleteActivity removes an activity row by identifier equality.
	// Returns domain.ErrNotFound if no activity with that id exists.
	DeleteActivity(ctx context.Context, id string) error
}
