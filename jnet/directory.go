package jnet

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"bookhound"

	"github.com/PuerkitoBio/goquery"
)

// directoryTTL bounds how long a scraped library directory is reused.
// Sites add and rename branches rarely, so a day is plenty.
const directoryTTL = 24 * time.Hour

// GetLibraries returns the site's selectable libraries, scraped from the
// search form's checkbox list and memoized through the cache.
func (s *Searcher) GetLibraries(ctx context.Context) ([]bookhound.Library, error) {
	key := "libraries:" + s.cfg.Name

	if s.cache != nil {
		if data, ok, err := s.cache.Get(ctx, key); err != nil {
			s.logger.Warn("directory cache read failed", "service", s.cfg.Name, "err", err)
		} else if ok {
			var libraries []bookhound.Library
			if err := json.Unmarshal(data, &libraries); err == nil {
				return libraries, nil
			}
			s.logger.Warn("directory cache entry corrupt", "service", s.cfg.Name)
		}
	}

	libraries, err := s.fetchLibraries(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		data, err := json.Marshal(libraries)
		if err == nil {
			err = s.cache.Set(ctx, key, data, directoryTTL)
		}
		if err != nil {
			s.logger.Warn("directory cache write failed", "service", s.cfg.Name, "err", err)
		}
	}
	return libraries, nil
}

func (s *Searcher) fetchLibraries(ctx context.Context) ([]bookhound.Library, error) {
	if s.cfg.FetchLibraries != nil {
		return s.cfg.FetchLibraries(ctx, s)
	}
	body, err := s.fetcher.Get(ctx, s.resolve(s.cfg.IndexPath))
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, bookhound.Errorf(bookhound.ESTRUCTURE, "%s: cannot parse index page: %v", s.cfg.Name, err)
	}

	var libraries []bookhound.Library
	doc.Find(s.cfg.LibraryItems).Each(func(_ int, item *goquery.Selection) {
		input := item.Find(s.cfg.LibraryInput).First()
		key, ok := input.Attr("value")
		if !ok {
			return
		}
		key = strings.TrimSpace(key)
		// The "all libraries" pseudo-entry is a UI shortcut, not a library.
		if key == "" || strings.EqualFold(key, "ALL") {
			return
		}
		name := s.cfg.NormalizeLibraryName(strings.TrimSpace(item.Text()))
		if name == "" {
			return
		}
		libraries = append(libraries, bookhound.Library{
			ID:         s.IDPrefix() + key,
			Name:       name,
			Coordinate: s.geocode(ctx, name),
		})
	})

	if len(libraries) == 0 {
		return nil, bookhound.Errorf(bookhound.ESTRUCTURE, "%s: no libraries found on index page", s.cfg.Name)
	}
	return libraries, nil
}

// geocode attaches a coordinate to a library name on a best-effort basis.
func (s *Searcher) geocode(ctx context.Context, name string) *bookhound.Coordinate {
	if s.geocoder == nil {
		return nil
	}
	coord, err := s.geocoder.SearchKeyword(ctx, s.cfg.GeocodeQuery(name))
	if err != nil {
		s.logger.Warn("geocoding failed", "service", s.cfg.Name, "library", name, "err", err)
		return nil
	}
	return coord
}
