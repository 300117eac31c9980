package mock

import (
	"context"
	"net/url"

	"bookhound"
)

var _ bookhound.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of bookhound.Fetcher.
type Fetcher struct {
	GetFn       func(ctx context.Context, url string) (string, error)
	PostFormFn  func(ctx context.Context, url string, form url.Values) (string, error)
	GetBinaryFn func(ctx context.Context, url string) ([]byte, error)
}

func (f *Fetcher) Get(ctx context.Context, url string) (string, error) {
	return f.GetFn(ctx, url)
}

func (f *Fetcher) PostForm(ctx context.Context, url string, form url.Values) (string, error) {
	return f.PostFormFn(ctx, url, form)
}

func (f *Fetcher) GetBinary(ctx context.Context, url string) ([]byte, error) {
	return f.GetBinaryFn(ctx, url)
}
