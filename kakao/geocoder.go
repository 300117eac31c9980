// Package kakao implements bookhound.Geocoder on top of the Kakao Local
// keyword-search API. Library display names collide across cities, so
// callers are expected to pass district-qualified queries.
package kakao

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"bookhound"
)

const keywordSearchURL = "https://dapi.kakao.com/v2/local/search/keyword.json"

// Ensure Geocoder implements bookhound.Geocoder at compile time.
var _ bookhound.Geocoder = (*Geocoder)(nil)

// Geocoder resolves place names via the Kakao Local API.
type Geocoder struct {
	client  *http.Client
	apiKey  string
	baseURL string
	logger  *slog.Logger
}

// Option configures a Geocoder.
type Option func(*Geocoder)

// WithBaseURL overrides the API endpoint. Used in tests.
func WithBaseURL(u string) Option {
	return func(g *Geocoder) {
		g.baseURL = u
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(g *Geocoder) {
		g.logger = l
	}
}

// New creates a Geocoder authenticated with the given REST API key.
func New(apiKey string, opts ...Option) *Geocoder {
	g := &Geocoder{
		client:  &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: keywordSearchURL,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type document struct {
	X string `json:"x"` // longitude
	Y string `json:"y"` // latitude
}

type keywordResponse struct {
	Meta struct {
		TotalCount int `json:"total_count"`
	} `json:"meta"`
	Documents []document `json:"documents"`
}

// SearchKeyword returns the best-match coordinate for the query, or nil
// when nothing matched. API failures are logged and reported as no match,
// since a missing coordinate never blocks a directory resolve.
func (g *Geocoder) SearchKeyword(ctx context.Context, query string) (*bookhound.Coordinate, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("size", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, bookhound.Errorf(bookhound.EINVALID, "kakao request: %v", err)
	}
	req.Header.Set("Authorization", "KakaoAK "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("kakao keyword search failed", "query", query, "err", err)
		return nil, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		g.logger.Warn("kakao keyword search read failed", "query", query, "err", err)
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		g.logger.Warn("kakao keyword search non-200", "query", query, "status", resp.StatusCode)
		return nil, nil
	}

	var kr keywordResponse
	if err := json.Unmarshal(body, &kr); err != nil {
		g.logger.Warn("kakao keyword search decode failed", "query", query, "err", err)
		return nil, nil
	}
	if kr.Meta.TotalCount < 1 || len(kr.Documents) == 0 {
		return nil, nil
	}

	lng, err := strconv.ParseFloat(kr.Documents[0].X, 64)
	if err != nil {
		return nil, nil
	}
	lat, err := strconv.ParseFloat(kr.Documents[0].Y, 64)
	if err != nil {
		return nil, nil
	}
	return &bookhound.Coordinate{Latitude: lat, Longitude: lng}, nil
}
