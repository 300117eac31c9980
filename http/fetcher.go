// Package http provides the HTTP implementation of bookhound.Fetcher used
// against catalog sites. The sites are server-rendered, so plain requests
// suffice; no JavaScript execution is involved.
package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bookhound"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// Ensure Fetcher implements bookhound.Fetcher at compile time.
var _ bookhound.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves content from catalog sites over HTTP.
// An optional per-host rate limiter keeps concurrent searches polite
// toward any single site.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	limiter *HostLimiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHostLimiter rate-limits requests per target host.
func WithHostLimiter(l *HostLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Get retrieves the body at rawurl as text.
func (f *Fetcher) Get(ctx context.Context, rawurl string) (string, error) {
	body, err := f.do(ctx, http.MethodGet, rawurl, "", nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// PostForm submits a form-encoded body and returns the response text.
func (f *Fetcher) PostForm(ctx context.Context, rawurl string, form url.Values) (string, error) {
	body, err := f.do(ctx, http.MethodPost, rawurl,
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetBinary retrieves the body at rawurl as raw bytes.
func (f *Fetcher) GetBinary(ctx context.Context, rawurl string) ([]byte, error) {
	return f.do(ctx, http.MethodGet, rawurl, "", nil)
}

func (f *Fetcher) do(ctx context.Context, method, rawurl, contentType string, body io.Reader) ([]byte, error) {
	if f.limiter != nil {
		if u, err := url.Parse(rawurl); err == nil {
			if err := f.limiter.Wait(ctx, u.Host); err != nil {
				return nil, err
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, rawurl, body)
	if err != nil {
		return nil, bookhound.Errorf(bookhound.EINVALID, "invalid request for %s: %v", rawurl, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, bookhound.Errorf(bookhound.EUNAVAILABLE, "%s %s: %v", method, rawurl, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, bookhound.Errorf(bookhound.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, rawurl)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, bookhound.Errorf(bookhound.EUNAVAILABLE, "reading %s: %v", rawurl, err)
	}

	return b, nil
}
