package poi_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mberman/trip-planner-backend/internal/poi"
)

// fakeProvider serves canned candidates keyed by query, optionally blocking
// on a per-query gate so tests can control completion order. started, when
// set, receives the query the moment the provider is entered.
type fakeProvider struct {
	mu      sync.Mutex
	results map[string][]poi.Candidate
	gates   map[string]chan struct{}
	started chan string
}

func (f *fakeProvider) Search(_ context.Context, query string, _ poi.Coordinate, _ int) ([]poi.Candidate, error) {
	if f.started != nil {
		f.started <- query
	}
	f.mu.Lock()
	gate := f.gates[query]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.results[query], nil
}

func TestSearcher_PublishesLatest(t *testing.T) {
	p := &fakeProvider{results: map[string][]poi.Candidate{
		"cafe": {{Name: "Cafe X"}},
	}}
	s := poi.NewSearcher(p)

	got, err := s.Search(context.Background(), "cafe", poi.Coordinate{})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, got, s.Candidates())
}

func TestSearcher_StaleResponseDiscarded(t *testing.T) {
	slowGate := make(chan struct{})
	p := &fakeProvider{
		results: map[string][]poi.Candidate{
			"ca":   {{Name: "stale result"}},
			"cafe": {{Name: "Cafe X"}},
		},
		gates:   map[string]chan struct{}{"ca": slowGate},
		started: make(chan string, 2),
	}
	s := poi.NewSearcher(p)

	done := make(chan struct{})
	go func() {
		_, _ = s.Search(context.Background(), "ca", poi.Coordinate{}) // keystroke 1, slow
		close(done)
	}()

	// Wait until the slow query has registered its generation and entered
	// the provider before issuing the next keystroke.
	require.Equal(t, "ca", <-p.started)

	_, err := s.Search(context.Background(), "cafe", poi.Coordinate{}) // keystroke 2
	require.NoError(t, err)

	close(slowGate)
	<-done

	// The older query's late completion must not overwrite the newer results.
	got := s.Candidates()
	require.Len(t, got, 1)
	assert.Equal(t, "Cafe X", got[0].Name)
}

func TestSearcher_NilResultsNormalized(t *testing.T) {
	p := &fakeProvider{results: map[string][]poi.Candidate{}}
	s := poi.NewSearcher(p)

	got, err := s.Search(context.Background(), "nothing", poi.Coordinate{})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
