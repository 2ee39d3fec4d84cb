package wire_test

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mberman/trip-planner-backend/internal/domain"
	"github.com/mberman/trip-planner-backend/internal/wire"
)

func TestDecodeLocation_RoundTripsCoordinate(t *testing.T) {
	cases := []struct{ lat, lon float64 }{
		{0, 0},
		{38.7223, -9.1393},
		{-90, -180},
		{90, 180},
		{89.999999, 179.999999},
	}
	for _, tc := range cases {
		row := wire.LocationRow{
			ID:        uuid.New().String(),
			Name:      "Somewhere",
			Latitude:  tc.lat,
			Longitude: tc.lon,
		}

		loc, err := wire.DecodeLocation(row)
		require.NoError(t, err, "lat=%v lon=%v", tc.lat, tc.lon)

		encoded := wire.EncodeLocation(uuid.New().String(), loc)
		assert.Equal(t, tc.lat, encoded.Latitude)
		assert.Equal(t, tc.lon, encoded.Longitude)
	}
}

func TestDecodeLocation_RejectsOutOfRange(t *testing.T) {
	cases := []struct{ lat, lon float64 }{
		{90.1, 0},
		{-90.1, 0},
		{0, 180.1},
		{0, -180.1},
		{math.NaN(), 0},
		{0, math.NaN()},
		{math.Inf(1), 0},
		{0, math.Inf(-1)},
	}
	for _, tc := range cases {
		row := wire.LocationRow{
			ID:        uuid.New().String(),
			Name:      "Broken",
			Latitude:  tc.lat,
			Longitude: tc.lon,
		}

		_, err := wire.DecodeLocation(row)

		assert.ErrorIs(t, err, domain.ErrDecode, "lat=%v lon=%v", tc.lat, tc.lon)
	}
}

func TestDecodeLocation_RejectsBadID(t *testing.T) {
	row := wire.LocationRow{ID: "xyz", Name: "Lisbon", Latitude: 38.7, Longitude: -9.1}

	_, err := wire.DecodeLocation(row)

	assert.ErrorIs(t, err, domain.ErrDecode)
}

func TestEncodeLocation_CarriesTripForeignKey(t *testing.T) {
	loc, err := domain.NewMapLocation(uuid.New(), "Lisbon", "https://maps.apple.com/?q=Lisbon", 38.7223, -9.1393)
	require.NoError(t, err)
	tripID := uuid.New().String()

	row := wire.EncodeLocation(tripID, loc)

	assert.Equal(t, tripID, row.TripID)
	assert.Equal(t, loc.ID.String(), row.ID)
	assert.Equal(t, "https://maps.apple.com/?q=Lisbon", row.UnifiedMapURL)
}
