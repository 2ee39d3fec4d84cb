// Package poi resolves free-text queries into named coordinates through an
// external place-search provider. The provider sits behind an interface so
// handlers and the search session can be tested against a fake.
package poi

// DefaultRadiusMeters is the search bias radius around the query center.
const DefaultRadiusMeters = 10_000

// Coordinate is a plain latitude/longitude pair used to bias a search.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Candidate is one named place returned by a search: name, display address,
// and the resolved coordinate.
type Candidate struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
