package bookhound

import "context"

// SearchEntity is one book together with the holdings the source site
// returned for it.
type SearchEntity struct {
	Book Book `json:"book"`

	// HoldingSummaries holds one entry per owning library/copy.
	HoldingSummaries []HoldingSummary `json:"holdingSummaries"`

	// URL is a reconstructed deep link to the item's detail page.
	URL *string `json:"url,omitempty"`
}

// EmitFunc receives search entities as a service produces them.
// Returning an error stops the producing search.
type EmitFunc func(SearchEntity) error

// Service is the contract every site adapter satisfies.
type Service interface {
	// GetLibraries returns the site's library directory. Results are
	// memoized per adapter for the directory cache TTL.
	GetLibraries(ctx context.Context) ([]Library, error)

	// Search runs one keyword query restricted to the given library IDs
	// (all of which must carry this service's prefix) and calls emit for
	// each result in source page order. Zero matches is a normal outcome,
	// not an error.
	Search(ctx context.Context, keyword string, libraryIDs []string, emit EmitFunc) error
}
