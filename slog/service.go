// Package slog provides logging decorators for the engine's domain
// interfaces. Each decorator wraps an implementation and logs one line
// per operation with its outcome and duration.
package slog

import (
	"context"
	"log/slog"
	"time"

	"bookhound"
)

// Ensure LoggingService implements bookhound.Service.
var _ bookhound.Service = (*LoggingService)(nil)

// LoggingService wraps a Service with operation logging.
type LoggingService struct {
	next   bookhound.Service
	name   string
	logger *slog.Logger
}

// NewLoggingService creates a new LoggingService.
func NewLoggingService(next bookhound.Service, name string, logger *slog.Logger) *LoggingService {
	return &LoggingService{next: next, name: name, logger: logger}
}

// GetLibraries delegates to the wrapped service and logs the operation.
func (s *LoggingService) GetLibraries(ctx context.Context) (libraries []bookhound.Library, err error) {
	defer func(begin time.Time) {
		s.logger.Info("get libraries",
			"service", s.name,
			"count", len(libraries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.GetLibraries(ctx)
}

// Search delegates to the wrapped service and logs the operation,
// including how many entities were emitted.
func (s *LoggingService) Search(ctx context.Context, keyword string, libraryIDs []string, emit bookhound.EmitFunc) (err error) {
	emitted := 0
	defer func(begin time.Time) {
		s.logger.Info("search",
			"service", s.name,
			"keyword", keyword,
			"libraries", len(libraryIDs),
			"entities", emitted,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, keyword, libraryIDs, func(e bookhound.SearchEntity) error {
		emitted++
		return emit(e)
	})
}
