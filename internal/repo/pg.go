package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mberman/trip-planner-backend/internal/domain"
	"github.com/mberman/trip-planner-backend/internal/wire"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and
// pgx.Tx. Accepting this interface instead of *pgxpool.Pool directly allows
// integration tests to pass a transaction that is rolled back after each
// test, giving free per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// tsFormat renders a timestamptz as the RFC 3339 instant the wire codec
// expects, so rows read over a direct connection look the same as rows read
// over PostgREST.
const tsFormat = `YYYY-MM-DD"T"HH24:MI:SS"Z"`

// PGStore is the direct-connection Postgres implementation of Store.
// Dates, times, and ids travel as the same wire strings the PostgREST
// transport uses; the SQL casts both ways.
type PGStore struct {
	db db
}

// NewPGStore constructs a Store backed by the provided connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPGStore(db db) *PGStore {
	return &PGStore{db: db}
}

var _ Store = (*PGStore)(nil)

// FetchTrips reads all three tables and stitches children onto their trips
// by foreign key. PostgREST does this join server-side; here it is done in
// one pass per table to keep the SQL plain.
func (s *PGStore) FetchTrips(ctx context.Context) ([]wire.TripRow, error) {
	const tripsQ = `
		SELECT id::text, name, start_date::text, end_date::text, is_all_day,
		       to_char(created_at AT TIME ZONE 'UTC', '` + tsFormat + `'),
		       to_char(updated_at AT TIME ZONE 'UTC', '` + tsFormat + `')
		FROM trips
		ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, tripsQ)
	if err != nil {
		return nil, fmt.Errorf("repo.PGStore.FetchTrips: trips: %w", err)
	}
	defer rows.Close()

	var trips []wire.TripRow
	index := map[string]int{} // lowercased trip id -> position in trips
	for rows.Next() {
		var t wire.TripRow
		if err := rows.Scan(&t.ID, &t.Name, &t.StartDate, &t.EndDate, &t.IsAllDay, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("repo.PGStore.FetchTrips: scan trip: %w", err)
		}
		index[strings.ToLower(t.ID)] = len(trips)
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PGStore.FetchTrips: trips rows: %w", err)
	}

	if err := s.attachLocations(ctx, trips, index); err != nil {
		return nil, err
	}
	if err := s.attachActivities(ctx, trips, index); err != nil {
		return nil, err
	}
	return trips, nil
}

func (s *PGStore) attachLocations(ctx context.Context, trips []wire.TripRow, index map[string]int) error {
	const q = `
		SELECT id::text, trip_id::text, name, unified_map_url, latitude, longitude
		FROM map_locations`

	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return fmt.Errorf("repo.PGStore.FetchTrips: locations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l wire.LocationRow
		if err := rows.Scan(&l.ID, &l.TripID, &l.Name, &l.UnifiedMapURL, &l.Latitude, &l.Longitude); err != nil {
			return fmt.Errorf("repo.PGStore.FetchTrips: scan location: %w", err)
		}
		if i, ok := index[strings.ToLower(l.TripID)]; ok {
			trips[i].MapLocations = append(trips[i].MapLocations, l)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("repo.PGStore.FetchTrips: location rows: %w", err)
	}
	return nil
}

func (s *PGStore) attachActivities(ctx context.Context, trips []wire.TripRow, index map[string]int) error {
	const q = `
		SELECT id::text, trip_id::text, name, date::text, start_time::text, end_time::text,
		       city_id::text, poi_name, poi_address, poi_latitude, poi_longitude,
		       category, notes, is_added_to_calendar,
		       to_char(created_at AT TIME ZONE 'UTC', '` + tsFormat + `'),
		       to_char(updated_at AT TIME ZONE 'UTC', '` + tsFormat + `')
		FROM activities`

	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return fmt.Errorf("repo.PGStore.FetchTrips: activities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a wire.ActivityRow
		err := rows.Scan(&a.ID, &a.TripID, &a.Name, &a.Date, &a.StartTime, &a.EndTime,
			&a.CityID, &a.POIName, &a.POIAddress, &a.POILatitude, &a.POILongitude,
			&a.Category, &a.Notes, &a.IsAddedToCalendar, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return fmt.Errorf("repo.PGStore.FetchTrips: scan activity: %w", err)
		}
		if i, ok := index[strings.ToLower(a.TripID)]; ok {
			trips[i].Activities = append(trips[i].Activities, a)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("repo.PGStore.FetchTrips: activity rows: %w", err)
	}
	return nil
}

// InsertTrip inserts a single trips row.
func (s *PGStore) InsertTrip(ctx context.Context, row wire.TripInsertRow) error {
	const q = `
		INSERT INTO trips (id, name, start_date, end_date, is_all_day, created_at, updated_at)
		VALUES (@id::uuid, @name, @start_date::date, @end_date::date, @is_all_day,
		        @created_at::timestamptz, @updated_at::timestamptz)`

	args := pgx.NamedArgs{
		"id":         row.ID,
		"name":       row.Name,
		"start_date": row.StartDate,
		"end_date":   row.EndDate,
		"is_all_day": row.IsAllDay,
		"created_at": row.CreatedAt,
		"updated_at": row.UpdatedAt,
	}
	if _, err := s.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.PGStore.InsertTrip: %w", err)
	}
	return nil
}

// InsertLocation inserts a single map_locations row.
func (s *PGStore) InsertLocation(ctx context.Context, row wire.LocationRow) error {
	const q = `
		INSERT INTO map_locations (id, trip_id, name, unified_map_url, latitude, longitude)
		VALUES (@id::uuid, @trip_id::uuid, @name, @unified_map_url, @latitude, @longitude)`

	args := pgx.NamedArgs{
		"id":              row.ID,
		"trip_id":         row.TripID,
		"name":            row.Name,
		"unified_map_url": row.UnifiedMapURL,
		"latitude":        row.Latitude,
		"longitude":       row.Longitude,
	}
	if _, err := s.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.PGStore.InsertLocation: %w", err)
	}
	return nil
}

// UpdateTrip overwrites the scalar fields of a trip.
func (s *PGStore) UpdateTrip(ctx context.Context, id string, row wire.TripUpdateRow) error {
	const q = `
		UPDATE trips
		SET name       = @name,
		    start_date = @start_date::date,
		    end_date   = @end_date::date,
		    is_all_day = @is_all_day,
		    updated_at = @updated_at::timestamptz
		WHERE id = @id::uuid`

	args := pgx.NamedArgs{
		"id":         id,
		"name":       row.Name,
		"start_date": row.StartDate,
		"end_date":   row.EndDate,
		"is_all_day": row.IsAllDay,
		"updated_at": row.UpdatedAt,
	}
	tag, err := s.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("repo.PGStore.UpdateTrip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PGStore.UpdateTrip: %w", domain.ErrNotFound)
	}
	return nil
}

// DeleteTrip removes a trip by primary key. The schema cascades to children.
func (s *PGStore) DeleteTrip(ctx context.Context, id string) error {
	const q = `DELETE FROM trips WHERE id = @id::uuid`

	tag, err := s.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.PGStore.DeleteTrip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PGStore.DeleteTrip: %w", domain.ErrNotFound)
	}
	return nil
}

// InsertActivity inserts a single activities row.
func (s *PGStore) InsertActivity(ctx context.Context, row wire.ActivityRow) error {
	const q = `
		INSERT INTO activities (id, trip_id, name, date, start_time, end_time, city_id,
		                        poi_name, poi_address, poi_latitude, poi_longitude,
		                        category, notes, is_added_to_calendar)
		VALUES (@id::uuid, @trip_id::uuid, @name, @date::date, @start_time::time, @end_time::time,
		        @city_id::uuid, @poi_name, @poi_address, @poi_latitude, @poi_longitude,
		        @category, @notes, @is_added_to_calendar)`

	if _, err := s.db.Exec(ctx, q, activityArgs(row)); err != nil {
		return fmt.Errorf("repo.PGStore.InsertActivity: %w", err)
	}
	return nil
}

// UpdateActivity overwrites an activity row by id with the full payload.
func (s *PGStore) UpdateActivity(ctx context.Context, id string, row wire.ActivityUpdateRow) error {
	const q = `
		UPDATE activities
		SET name                 = @name,
		    date                 = @date::date,
		    start_time           = @start_time::time,
		    end_time             = @end_time::time,
		    city_id              = @city_id::uuid,
		    poi_name             = @poi_name,
		    poi_address          = @poi_address,
		    poi_latitude         = @poi_latitude,
		    poi_longitude        = @poi_longitude,
		    category             = @category,
		    notes                = @notes,
		    is_added_to_calendar = @is_added_to_calendar,
		    updated_at           = @updated_at::timestamptz
		WHERE id = @id::uuid`

	args := pgx.NamedArgs{
		"id":                   id,
		"name":                 row.Name,
		"date":                 row.Date,
		"start_time":           row.StartTime,
		"end_time":             row.EndTime,
		"city_id":              row.CityID,
		"poi_name":             row.POIName,
		"poi_address":          row.POIAddress,
		"poi_latitude":         row.POILatitude,
		"poi_longitude":        row.POILongitude,
		"category":             row.Category,
		"notes":                row.Notes,
		"is_added_to_calendar": row.IsAddedToCalendar,
		"updated_at":           row.UpdatedAt,
	}
	tag, err := s.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("repo.PGStore.UpdateActivity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PGStore.UpdateActivity: %w", domain.ErrNotFound)
	}
	return nil
}

// DeleteActivity removes an activity by primary key.
func (s *PGStore) DeleteActivity(ctx context.Context, id string) error {
	const q = `DELETE FROM activities WHERE id = @id::uuid`

	tag, err := s.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.PGStore.DeleteActivity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PGStore.DeleteActivity: %w", domain.ErrNotFound)
	}
	return nil
}

func activityArgs(row wire.ActivityRow) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":                   row.ID,
		"trip_id":              row.TripID,
		"name":                 row.Name,
		"date":                 row.Date,
		"start_time":           row.StartTime,
		"end_time":             row.EndTime,
		"city_id":              row.CityID,
		"poi_name":             row.POIName,
		"poi_address":          row.POIAddress,
		"poi_latitude":         row.POILatitude,
		"poi_longitude":        row.POILongitude,
		"category":             row.Category,
		"notes":                row.Notes,
		"is_added_to_calendar": row.IsAddedToCalendar,
	}
}
