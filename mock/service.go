package mock

import (
	"context"

	"bookhound"
)

var _ bookhound.Service = (*Service)(nil)

// Service is a mock implementation of bookhound.Service.
type Service struct {
	GetLibrariesFn func(ctx context.Context) ([]bookhound.Library, error)
	SearchFn       func(ctx context.Context, keyword string, libraryIDs []string, emit bookhound.EmitFunc) error
}

func (s *Service) GetLibraries(ctx context.Context) ([]bookhound.Library, error) {
	return s.GetLibrariesFn(ctx)
}

func (s *Service) Search(ctx context.Context, keyword string, libraryIDs []string, emit bookhound.EmitFunc) error {
	return s.SearchFn(ctx, keyword, libraryIDs, emit)
}
