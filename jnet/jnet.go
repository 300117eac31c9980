// Package jnet implements the bookhound.Service contract for the family
// of Korean public-library catalog sites built on the J-net/KOLAS search
// frontend. The sites share one page structure with per-district
// variations, so the package provides a single search algorithm driven by
// a per-site Config of paths, selectors and field-extraction hooks.
//
// Optional site capabilities (bulk export endpoints, alternate row
// layouts) are explicit Config fields checked with presence tests; there
// is no probing.
package jnet

import (
	"context"
	"log/slog"
	"net/url"

	"bookhound"

	"github.com/PuerkitoBio/goquery"
)

// Ensure Searcher implements bookhound.Service at compile time.
var _ bookhound.Service = (*Searcher)(nil)

// Config describes one catalog site.
type Config struct {
	// Name is the service's registry name. Library IDs are namespaced as
	// "<Name>:<siteLocalKey>".
	Name string

	// BaseURL is the site origin, e.g. "https://splib.or.kr/".
	BaseURL string

	// IndexPath serves the search form carrying the library checkbox list.
	IndexPath string

	// SearchPath receives the keyword query form.
	SearchPath string

	// DetailPath is the template target for reconstructed item deep links.
	DetailPath string

	// ExportTextPath is the tab-delimited bulk export endpoint.
	// Empty means the site offers none.
	ExportTextPath string

	// ExportExcelPath is the spreadsheet bulk export endpoint.
	// Empty means the site offers none.
	ExportExcelPath string

	// LibraryItems selects the library entries on the index page.
	LibraryItems string

	// LibraryInput selects the checkbox input inside a library entry.
	LibraryInput string

	// ResultItems selects the result rows on a search response.
	ResultItems string

	// BuildQuery builds the search form for a keyword and the site-local
	// library keys. Nil uses the shared J-net form.
	BuildQuery func(keyword string, libraryKeys []string) url.Values

	// NormalizeLibraryName rewrites a scraped library display name.
	// Nil is identity.
	NormalizeLibraryName func(name string) string

	// GeocodeQuery transforms a library name into a geocoder query,
	// typically prefixing the district since raw names collide across
	// cities. Nil is identity.
	GeocodeQuery func(name string) string

	// FetchLibraries overrides the directory scrape for sites that
	// publish their library list outside the search form. Nil scrapes
	// IndexPath with LibraryItems/LibraryInput.
	FetchLibraries func(ctx context.Context, s *Searcher) ([]bookhound.Library, error)

	// Row holds the per-field extraction hooks for one result row.
	Row RowHooks
}

// RowHooks are the pluggable field extractors run against one result row.
// Optional fields return nil when the row does not expose them; hooks log
// their own warnings on a miss.
type RowHooks struct {
	Title       func(s *Searcher, row *goquery.Selection) *string
	Author      func(s *Searcher, row *goquery.Selection) *string
	Publisher   func(s *Searcher, row *goquery.Selection) *string
	PublishYear func(s *Searcher, row *goquery.Selection) *int
	CallNumber  func(s *Searcher, row *goquery.Selection) *string

	// ISBN is required on the row-parse fallback path; failure to find it
	// is a structural error for the whole response.
	ISBN func(s *Searcher, row *goquery.Selection) (string, error)

	// Site extracts the owning library's display name and the optional
	// sub-location.
	Site func(s *Searcher, row *goquery.Selection) (library string, location *string, err error)

	// Status reads and classifies the row's availability. Nil result
	// means the status could not be recognized.
	Status func(s *Searcher, row *goquery.Selection) *bookhound.HoldingStatus

	// ExportID extracts the identifier the bulk export endpoints accept.
	// Nil routes the row through the fallback path.
	ExportID func(s *Searcher, row *goquery.Selection) *string

	// DetailURL reconstructs the absolute detail-page link from
	// identifiers embedded in the row.
	DetailURL func(s *Searcher, row *goquery.Selection) *string
}

// Searcher runs the shared directory and search algorithm for one site.
type Searcher struct {
	cfg      Config
	fetcher  bookhound.Fetcher
	cache    bookhound.Cache
	geocoder bookhound.Geocoder
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithFetcher sets the HTTP fetcher. Required for live use.
func WithFetcher(f bookhound.Fetcher) Option {
	return func(s *Searcher) { s.fetcher = f }
}

// WithCache sets the directory cache. Nil disables memoization.
func WithCache(c bookhound.Cache) Option {
	return func(s *Searcher) { s.cache = c }
}

// WithGeocoder sets the geocoder used to attach library coordinates.
// Nil leaves coordinates absent.
func WithGeocoder(g bookhound.Geocoder) Option {
	return func(s *Searcher) { s.geocoder = g }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Searcher) { s.logger = l }
}

// New creates a Searcher for cfg, filling unset Config fields with the
// shared J-net defaults.
func New(cfg Config, opts ...Option) *Searcher {
	applyDefaults(&cfg)
	s := &Searcher{
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Default selectors for the classic J-net skin.
const (
	defaultLibraryItems = "ul.searchCheckList li:not(.total)"
	defaultLibraryInput = "input[name='searchLibraryArr']"
	defaultResultItems  = "#contents ul.resultList > li:not(.emptyNote):not(.noResultNote):not(.message)"
)

func applyDefaults(cfg *Config) {
	if cfg.LibraryItems == "" {
		cfg.LibraryItems = defaultLibraryItems
	}
	if cfg.LibraryInput == "" {
		cfg.LibraryInput = defaultLibraryInput
	}
	if cfg.ResultItems == "" {
		cfg.ResultItems = defaultResultItems
	}
	if cfg.BuildQuery == nil {
		cfg.BuildQuery = DefaultQuery
	}
	if cfg.NormalizeLibraryName == nil {
		cfg.NormalizeLibraryName = func(name string) string { return name }
	}
	if cfg.GeocodeQuery == nil {
		cfg.GeocodeQuery = func(name string) string { return name }
	}

	r := &cfg.Row
	if r.Title == nil {
		r.Title = titleA
	}
	if r.Author == nil {
		r.Author = authorA
	}
	if r.Publisher == nil {
		r.Publisher = publisherA
	}
	if r.PublishYear == nil {
		r.PublishYear = publishYearA
	}
	if r.CallNumber == nil {
		r.CallNumber = callNumberA
	}
	if r.ISBN == nil {
		r.ISBN = isbnA
	}
	if r.Site == nil {
		r.Site = siteA
	}
	if r.Status == nil {
		r.Status = StatusBar
	}
	if r.ExportID == nil {
		r.ExportID = exportIDA
	}
	if r.DetailURL == nil {
		r.DetailURL = detailURLTriple
	}
}

// DefaultQuery builds the classic J-net simple-search form.
func DefaultQuery(keyword string, libraryKeys []string) url.Values {
	q := url.Values{}
	q.Set("searchType", "SIMPLE")
	q.Set("searchKey", "ALL")
	q.Set("searchKeyword", keyword)
	for _, key := range libraryKeys {
		q.Add("searchLibraryArr", key)
	}
	return q
}

// Name returns the service's registry name.
func (s *Searcher) Name() string { return s.cfg.Name }

// IDPrefix returns the namespace prefix carried by this site's library
// IDs, including the trailing colon.
func (s *Searcher) IDPrefix() string { return s.cfg.Name + ":" }

// resolve joins a site-relative path onto the configured base URL.
func (s *Searcher) resolve(path string) string {
	base, err := url.Parse(s.cfg.BaseURL)
	if err != nil {
		return path
	}
	ref, err := url.Parse(path)
	if err != nil {
		return path
	}
	return base.ResolveReference(ref).String()
}
