package bookhound

import "context"

// Geocoder resolves free-text place names to coordinates.
type Geocoder interface {
	// SearchKeyword returns the best-match coordinate for the query, or
	// nil when nothing matched. No match is not an error.
	SearchKeyword(ctx context.Context, query string) (*Coordinate, error)
}
