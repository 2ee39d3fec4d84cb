package poi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mberman/trip-planner-backend/internal/poi"
)

func newGoogleServer(t *testing.T, body string, gotQuery *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func TestGoogleClient_Search(t *testing.T) {
	body := `{
		"status": "OK",
		"results": [
			{"name": "Cafe X", "formatted_address": "1 Rua Augusta, Lisboa",
			 "geometry": {"location": {"lat": 38.71, "lng": -9.14}}},
			{"name": "Broken", "formatted_address": "nowhere",
			 "geometry": {"location": {"lat": 123.0, "lng": 0.0}}}
		]
	}`
	var query string
	srv := newGoogleServer(t, body, &query)
	defer srv.Close()

	c := poi.NewGoogleClientWithBaseURL(srv.URL, "places-key")
	got, err := c.Search(context.Background(), "cafe", poi.Coordinate{Latitude: 38.72, Longitude: -9.13}, poi.DefaultRadiusMeters)

	require.NoError(t, err)
	// The out-of-range candidate is dropped, not returned.
	require.Len(t, got, 1)
	assert.Equal(t, "Cafe X", got[0].Name)
	assert.Equal(t, "1 Rua Augusta, Lisboa", got[0].Address)
	assert.InDelta(t, 38.71, got[0].Latitude, 1e-9)
	assert.Contains(t, query, "radius=10000")
	assert.Contains(t, query, "key=places-key")
}

func TestGoogleClient_Search_ZeroResults(t *testing.T) {
	var query string
	srv := newGoogleServer(t, `{"status":"ZERO_RESULTS","results":[]}`, &query)
	defer srv.Close()

	c := poi.NewGoogleClientWithBaseURL(srv.URL, "places-key")
	got, err := c.Search(context.Background(), "xyzzy", poi.Coordinate{}, poi.DefaultRadiusMeters)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGoogleClient_Search_ProviderError(t *testing.T) {
	var query string
	srv := newGoogleServer(t, `{"status":"REQUEST_DENIED","error_message":"bad key"}`, &query)
	defer srv.Close()

	c := poi.NewGoogleClientWithBaseURL(srv.URL, "places-key")
	_, err := c.Search(context.Background(), "cafe", poi.Coordinate{}, poi.DefaultRadiusMeters)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
	assert.Contains(t, err.Error(), "bad key")
}
