// Package postgrest is a hand-rolled client for the Supabase PostgREST
// surface, covering exactly the query/insert/update/delete capability the
// data service consumes. It implements repo.Store so the service does not
// know which transport it is talking through.
//
// Timeouts and retries are the HTTP client's concern; any failure here is
// terminal for that one operation.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mberman/trip-planner-backend/internal/domain"
	"github.com/mberman/trip-planner-backend/internal/repo"
	"github.com/mberman/trip-planner-backend/internal/wire"
)

// Client talks to a PostgREST endpoint rooted at baseURL/rest/v1.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var _ repo.Store = (*Client)(nil)

// New constructs a Client for the given Supabase project URL and API key.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchTrips selects all trips with their child rows embedded, newest first.
func (c *Client) FetchTrips(ctx context.Context) ([]wire.TripRow, error) {
	q := url.Values{}
	q.Set("select", "*,map_locations(*),activities(*)")
	q.Set("order", "created_at.desc")

	var trips []wire.TripRow
	if err := c.do(ctx, http.MethodGet, "trips", q, nil, &trips); err != nil {
		return nil, fmt.Errorf("postgrest.Client.FetchTrips: %w", err)
	}
	return trips, nil
}

// InsertTrip inserts a single trips row.
func (c *Client) InsertTrip(ctx context.Context, row wire.TripInsertRow) error {
	if err := c.do(ctx, http.MethodPost, "trips", nil, row, nil); err != nil {
		return fmt.Errorf("postgrest.Client.InsertTrip: %w", err)
	}
	return nil
}

// InsertLocation inserts a single map_locations row.
func (c *Client) InsertLocation(ctx context.Context, row wire.LocationRow) error {
	if err := c.do(ctx, http.MethodPost, "map_locations", nil, row, nil); err != nil {
		return fmt.Errorf("postgrest.Client.InsertLocation: %w", err)
	}
	return nil
}

// UpdateTrip patches a trip row by id.
func (c *Client) UpdateTrip(ctx context.Context, id string, row wire.TripUpdateRow) error {
	if err := c.patchByID(ctx, "trips", id, row); err != nil {
		return fmt.Errorf("postgrest.Client.UpdateTrip: %w", err)
	}
	return nil
}

// DeleteTrip deletes a trip row by id. Child rows cascade in the store.
func (c *Client) DeleteTrip(ctx context.Context, id string) error {
	if err := c.deleteByID(ctx, "trips", id); err != nil {
		return fmt.Errorf("postgrest.Client.DeleteTrip: %w", err)
	}
	return nil
}

// InsertActivity inserts a single activities row.
func (c *Client) InsertActivity(ctx context.Context, row wire.ActivityRow) error {
	if err := c.do(ctx, http.MethodPost, "activities", nil, row, nil); err != nil {
		return fmt.Errorf("postgrest.Client.InsertActivity: %w", err)
	}
	return nil
}

// UpdateActivity patches an activity row by id with the full payload.
func (c *Client) UpdateActivity(ctx context.Context, id string, row wire.ActivityUpdateRow) error {
	if err := c.patchByID(ctx, "activities", id, row); err != nil {
		return fmt.Errorf("postgrest.Client.UpdateActivity: %w", err)
	}
	return nil
}

// DeleteActivity deletes an activity row by id.
func (c *Client) DeleteActivity(ctx context.Context, id string) error {
	if err := c.deleteByID(ctx, "activities", id); err != nil {
		return fmt.Errorf("postgrest.Client.DeleteActivity: %w", err)
	}
	return nil
}

// patchByID issues PATCH table?id=eq.{id} and maps "no rows touched" to
// domain.ErrNotFound using the returned representation.
func (c *Client) patchByID(ctx context.Context, table, id string, body any) error {
	q := url.Values{}
	q.Set("id", "eq."+id)

	var touched []json.RawMessage
	if err := c.do(ctx, http.MethodPatch, table, q, body, &touched); err != nil {
		return err
	}
	if len(touched) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// deleteByID issues DELETE table?id=eq.{id} with the same not-found mapping.
func (c *Client) deleteByID(ctx context.Context, table, id string) error {
	q := url.Values{}
	q.Set("id", "eq."+id)

	var touched []json.RawMessage
	if err := c.do(ctx, http.MethodDelete, table, q, nil, &touched); err != nil {
		return err
	}
	if len(touched) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// do executes one round trip against table. A non-nil out gets the decoded
// JSON response; writes ask PostgREST to return the touched representation
// when out is non-nil and minimal otherwise.
func (c *Client) do(ctx context.Context, method, table string, query url.Values, body, out any) error {
	endpoint := c.baseURL + "/rest/v1/" + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		if out != nil {
			req.Header.Set("Prefer", "return=representation")
		} else {
			req.Header.Set("Prefer", "return=minimal")
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: status %d: %s", method, table, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
