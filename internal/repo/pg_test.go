package repo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mberman/trip-planner-backend/internal/domain"
	"github.com/mberman/trip-planner-backend/internal/repo"
	"github.com/mberman/trip-planner-backend/internal/wire"
	"github.com/mberman/trip-planner-backend/migrations"
	"github.com/mberman/trip-planner-backend/testutil"
)

var migrateOnce sync.Once

// newTestStore opens a transaction against the test database and returns a
// PGStore backed by that transaction. The transaction is rolled back when
// the test finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL to be set; migrations are applied on first use.
func newTestStore(t *testing.T) *repo.PGStore {
	t.Helper()

	migrateOnce.Do(func() {
		db := testutil.NewSQLDB(t)
		provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
		require.NoError(t, err, "create goose provider")
		_, err = provider.Up(context.Background())
		require.NoError(t, err, "apply migrations")
	})

	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return repo.NewPGStore(tx)
}

func insertTripFixture(t *testing.T, s *repo.PGStore) (tripID, cityID string) {
	t.Helper()
	ctx := context.Background()

	tripID = uuid.NewString()
	cityID = uuid.NewString()

	require.NoError(t, s.InsertTrip(ctx, wire.TripInsertRow{
		ID:        tripID,
		Name:      "Summer in Portugal",
		StartDate: "2025-07-05",
		EndDate:   "2025-07-10",
		CreatedAt: "2025-07-01",
		UpdatedAt: "2025-07-01",
	}))
	require.NoError(t, s.InsertLocation(ctx, wire.LocationRow{
		ID:        cityID,
		TripID:    tripID,
		Name:      "Lisbon",
		Latitude:  38.7223,
		Longitude: -9.1393,
	}))
	return tripID, cityID
}

func activityRowFixture(tripID, cityID string) wire.ActivityRow {
	return wire.ActivityRow{
		ID:        uuid.NewString(),
		TripID:    tripID,
		Name:      "Tram 28 ride",
		Date:      "2025-07-06",
		StartTime: "09:00:00",
		EndTime:   "10:30:00",
		CityID:    cityID,
		Category:  "Tours",
	}
}

func TestPGStore_FetchTrips_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tripID, cityID := insertTripFixture(t, s)
	activity := activityRowFixture(tripID, cityID)
	require.NoError(t, s.InsertActivity(ctx, activity))

	got, err := s.FetchTrips(ctx)

	require.NoError(t, err)
	require.Len(t, got, 1)
	trip := got[0]
	assert.Equal(t, tripID, trip.ID)
	assert.Equal(t, "2025-07-05", trip.StartDate)
	assert.Equal(t, "2025-07-10", trip.EndDate)

	require.Len(t, trip.MapLocations, 1)
	assert.Equal(t, cityID, trip.MapLocations[0].ID)
	assert.InDelta(t, 38.7223, trip.MapLocations[0].Latitude, 1e-9)

	require.Len(t, trip.Activities, 1)
	assert.Equal(t, activity.ID, trip.Activities[0].ID)
	assert.Equal(t, "09:00:00", trip.Activities[0].StartTime)
	assert.Equal(t, "Tours", trip.Activities[0].Category)

	// Rows read over a direct connection decode through the same path as
	// rows read over PostgREST, with nothing dropped.
	decoded, stats, err := wire.DecodeTrip(trip, time.Now())
	require.NoError(t, err)
	assert.Zero(t, stats.CitiesDropped)
	assert.Zero(t, stats.ActivitiesDropped)
	assert.Len(t, decoded.Activities, 1)
}

func TestPGStore_FetchTrips_OrderedByCreation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := uuid.NewString()
	newer := uuid.NewString()
	require.NoError(t, s.InsertTrip(ctx, wire.TripInsertRow{
		ID: older, Name: "Older", StartDate: "2025-01-01", EndDate: "2025-01-02",
		CreatedAt: "2025-01-01", UpdatedAt: "2025-01-01",
	}))
	require.NoError(t, s.InsertTrip(ctx, wire.TripInsertRow{
		ID: newer, Name: "Newer", StartDate: "2025-02-01", EndDate: "2025-02-02",
		CreatedAt: "2025-02-01", UpdatedAt: "2025-02-01",
	}))

	got, err := s.FetchTrips(ctx)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer, got[0].ID, "newest trip first")
	assert.Equal(t, older, got[1].ID)
}

func TestPGStore_UpdateTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tripID, _ := insertTripFixture(t, s)

	err := s.UpdateTrip(ctx, tripID, wire.TripUpdateRow{
		Name:      "Renamed",
		StartDate: "2025-07-05",
		EndDate:   "2025-07-12",
		UpdatedAt: "2025-07-20T12:00:00Z",
	})

	require.NoError(t, err)
	got, err := s.FetchTrips(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Renamed", got[0].Name)
	assert.Equal(t, "2025-07-12", got[0].EndDate)
	assert.Equal(t, "2025-07-20T12:00:00Z", got[0].UpdatedAt)
}

func TestPGStore_UpdateTrip_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateTrip(context.Background(), uuid.NewString(), wire.TripUpdateRow{
		Name: "x", StartDate: "2025-01-01", EndDate: "2025-01-02", UpdatedAt: "2025-01-01T00:00:00Z",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPGStore_DeleteTrip_CascadesToChildren(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tripID, cityID := insertTripFixture(t, s)
	require.NoError(t, s.InsertActivity(ctx, activityRowFixture(tripID, cityID)))

	require.NoError(t, s.DeleteTrip(ctx, tripID))

	got, err := s.FetchTrips(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPGStore_UpdateActivity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tripID, cityID := insertTripFixture(t, s)
	activity := activityRowFixture(tripID, cityID)
	require.NoError(t, s.InsertActivity(ctx, activity))

	err := s.UpdateActivity(ctx, activity.ID, wire.ActivityUpdateRow{
		Name:      "Dinner",
		Date:      "2025-07-07",
		StartTime: "19:00:00",
		EndTime:   "21:00:00",
		CityID:    cityID,
		Category:  "Restaurant",
		UpdatedAt: "2025-07-20T12:00:00Z",
	})

	require.NoError(t, err)
	got, err := s.FetchTrips(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Activities, 1)
	assert.Equal(t, "Dinner", got[0].Activities[0].Name)
	assert.Equal(t, "19:00:00", got[0].Activities[0].StartTime)
	assert.Equal(t, "Restaurant", got[0].Activities[0].Category)
}

func TestPGStore_UpdateActivity_NotFound(t *testing.T) {
	s := newTestStore(t)
	tripID, cityID := insertTripFixture(t, s)
	_ = tripID

	err := s.UpdateActivity(context.Background(), uuid.NewString(), wire.ActivityUpdateRow{
		Name: "x", Date: "2025-07-07", StartTime: "19:00:00", EndTime: "21:00:00",
		CityID: cityID, Category: "Bar", UpdatedAt: "2025-07-20T12:00:00Z",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPGStore_DeleteActivity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tripID, cityID := insertTripFixture(t, s)
	activity := activityRowFixture(tripID, cityID)
	require.NoError(t, s.InsertActivity(ctx, activity))

	require.NoError(t, s.DeleteActivity(ctx, activity.ID))

	got, err := s.FetchTrips(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Activities)
}

func TestPGStore_DeleteActivity_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.DeleteActivity(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
