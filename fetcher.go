package bookhound

import (
	"context"
	"net/url"
)

// Fetcher performs HTTP round trips against catalog sites.
// The context controls timeout and cancellation on every call.
type Fetcher interface {
	// Get retrieves the body at url as text.
	Get(ctx context.Context, url string) (string, error)

	// PostForm submits an application/x-www-form-urlencoded body and
	// returns the response text. Catalog search forms rely on repeated
	// keys, which url.Values preserves.
	PostForm(ctx context.Context, url string, form url.Values) (string, error)

	// GetBinary retrieves the body at url as raw bytes. Used for
	// spreadsheet exports.
	GetBinary(ctx context.Context, url string) ([]byte, error)
}
