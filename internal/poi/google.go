package poi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mberman/trip-planner-backend/internal/domain"
)

const defaultGoogleBaseURL = "https://maps.googleapis.com"

// GoogleClient searches places through the Google Places text-search API.
type GoogleClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewGoogleClient returns a client for the production Places endpoint.
func NewGoogleClient(apiKey string) *GoogleClient {
	return NewGoogleClientWithBaseURL(defaultGoogleBaseURL, apiKey)
}

// NewGoogleClientWithBaseURL is the test seam: it points the client at an
// alternate host such as an httptest server.
func NewGoogleClientWithBaseURL(baseURL, apiKey string) *GoogleClient {
	return &GoogleClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type textSearchResponse struct {
	Results []struct {
		Name             string `json:"name"`
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

// Search resolves a free-text query into named candidates, biased to a
// circle of radiusMeters around center. Candidates whose coordinates fail
// the range check are dropped rather than returned.
func (c *GoogleClient) Search(ctx context.Context, query string, center Coordinate, radiusMeters int) ([]Candidate, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("location", strconv.FormatFloat(center.Latitude, 'f', -1, 64)+","+strconv.FormatFloat(center.Longitude, 'f', -1, 64))
	q.Set("radius", strconv.Itoa(radiusMeters))
	q.Set("key", c.apiKey)

	u := c.baseURL + "/maps/api/place/textsearch/json?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("poi.GoogleClient.Search: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("poi.GoogleClient.Search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("poi.GoogleClient.Search: status %d: %s", resp.StatusCode, snippet)
	}

	var body textSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("poi.GoogleClient.Search: decode response: %w", err)
	}

	switch body.Status {
	case "OK":
	case "ZERO_RESULTS":
		return []Candidate{}, nil
	default:
		return nil, fmt.Errorf("poi.GoogleClient.Search: provider status %s: %s", body.Status, body.ErrorMessage)
	}

	out := make([]Candidate, 0, len(body.Results))
	for _, r := range body.Results {
		lat, lng := r.Geometry.Location.Lat, r.Geometry.Location.Lng
		if err := domain.ValidateCoordinate(lat, lng); err != nil {
			continue
		}
		out = append(out, Candidate{
			Name:      r.Name,
			Address:   r.FormattedAddress,
			Latitude:  lat,
			Longitude: lng,
		})
	}
	return out, nil
}
