package slog

import (
	"context"
	"log/slog"
	"time"

	"bookhound"
)

// Ensure LoggingGeocoder implements bookhound.Geocoder.
var _ bookhound.Geocoder = (*LoggingGeocoder)(nil)

// LoggingGeocoder wraps a Geocoder with operation logging.
type LoggingGeocoder struct {
	next   bookhound.Geocoder
	logger *slog.Logger
}

// NewLoggingGeocoder creates a new LoggingGeocoder.
func NewLoggingGeocoder(next bookhound.Geocoder, logger *slog.Logger) *LoggingGeocoder {
	return &LoggingGeocoder{next: next, logger: logger}
}

// SearchKeyword delegates to the wrapped geocoder and logs the operation.
func (g *LoggingGeocoder) SearchKeyword(ctx context.Context, query string) (coord *bookhound.Coordinate, err error) {
	defer func(begin time.Time) {
		g.logger.Debug("geocode",
			"query", query,
			"matched", coord != nil,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.SearchKeyword(ctx, query)
}
