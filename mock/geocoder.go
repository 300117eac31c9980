package mock

import (
	"context"

	"bookhound"
)

var _ bookhound.Geocoder = (*Geocoder)(nil)

// Geocoder is a mock implementation of bookhound.Geocoder.
type Geocoder struct {
	SearchKeywordFn func(ctx context.Context, query string) (*bookhound.Coordinate, error)
}

func (g *Geocoder) SearchKeyword(ctx context.Context, query string) (*bookhound.Coordinate, error) {
	return g.SearchKeywordFn(ctx, query)
}
