package poi

import (
	"context"
	"sync"
)

// Provider is the place-search capability the session depends on.
type Provider interface {
	Search(ctx context.Context, query string, center Coordinate, radiusMeters int) ([]Candidate, error)
}

// Searcher is a search-as-you-type session over a Provider. Every call to
// Search issues a new query without cancelling the previous one; each query
// carries a generation number and a completion whose generation is stale is
// discarded, so the published candidate list always reflects the most recent
// query rather than whichever response happened to arrive last.
type Searcher struct {
	provider Provider

	mu         sync.Mutex
	gen        uint64
	candidates []Candidate
}

// NewSearcher wraps provider in a fresh session with no results.
func NewSearcher(provider Provider) *Searcher {
	return &Searcher{provider: provider}
}

// Candidates returns the results of the most recent query that completed
// while still current.
func (s *Searcher) Candidates() []Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.candidates
}

// Search issues a new query biased to center and publishes its results,
// unless a later query started while this one was in flight. It returns the
// candidates from this call regardless of whether they were published.
func (s *Searcher) Search(ctx context.Context, query string, center Coordinate) ([]Candidate, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	candidates, err := s.provider.Search(ctx, query, center, DefaultRadiusMeters)
	if err != nil {
		return nil, err
	}
	if candidates == nil {
		candidates = []Candidate{}
	}

	s.mu.Lock()
	if gen == s.gen {
		s.candidates = candidates
	}
	s.mu.Unlock()
	return candidates, nil
}
