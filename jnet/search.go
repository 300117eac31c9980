package jnet

import (
	"context"
	"strings"

	"bookhound"
	"bookhound/fuzzy"

	"github.com/PuerkitoBio/goquery"
)

// Search runs one keyword query against the site and emits entities in
// page order. Sites with a bulk export endpoint are read through it when
// possible; otherwise each result row is parsed in place.
func (s *Searcher) Search(ctx context.Context, keyword string, libraryIDs []string, emit bookhound.EmitFunc) error {
	keys := make([]string, 0, len(libraryIDs))
	for _, id := range libraryIDs {
		key, ok := strings.CutPrefix(id, s.IDPrefix())
		if !ok {
			return bookhound.Errorf(bookhound.EINVALID, "%s: library ID %q does not belong to this service", s.cfg.Name, id)
		}
		keys = append(keys, key)
	}

	candidates, err := s.libraryCandidates(ctx, libraryIDs)
	if err != nil {
		return err
	}

	body, err := s.fetcher.PostForm(ctx, s.resolve(s.cfg.SearchPath), s.cfg.BuildQuery(keyword, keys))
	if err != nil {
		return err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return bookhound.Errorf(bookhound.ESTRUCTURE, "%s: cannot parse search response: %v", s.cfg.Name, err)
	}

	rows := doc.Find(s.cfg.ResultItems)
	if rows.Length() == 0 {
		return nil
	}

	if s.exportAvailable() {
		if infos := s.collectExportRows(rows); len(infos) > 0 {
			return s.export(ctx, keyword, infos, candidates, emit)
		}
	}

	var outerErr error
	rows.EachWithBreak(func(_ int, row *goquery.Selection) bool {
		entity, err := s.parseRow(row, candidates)
		if err != nil {
			switch bookhound.ErrorCode(err) {
			case bookhound.ESTRUCTURE, bookhound.EUNAVAILABLE:
				outerErr = err
				return false
			default:
				// A single malformed row does not spoil the page.
				s.logger.Warn("dropping result row", "service", s.cfg.Name, "err", err)
				return true
			}
		}
		if err := emit(*entity); err != nil {
			outerErr = err
			return false
		}
		return true
	})
	return outerErr
}

// libraryCandidates resolves the requested library IDs against the
// directory, producing the fuzzy-match candidate set used to map scraped
// library names back to IDs.
func (s *Searcher) libraryCandidates(ctx context.Context, libraryIDs []string) ([]fuzzy.Candidate[bookhound.Library], error) {
	libraries, err := s.GetLibraries(ctx)
	if err != nil {
		return nil, err
	}

	requested := make(map[string]bool, len(libraryIDs))
	for _, id := range libraryIDs {
		requested[id] = true
	}

	var candidates []fuzzy.Candidate[bookhound.Library]
	for _, lib := range libraries {
		if len(requested) > 0 && !requested[lib.ID] {
			continue
		}
		candidates = append(candidates, fuzzy.Candidate[bookhound.Library]{Value: lib, Name: lib.Name})
	}
	if len(candidates) == 0 {
		return nil, bookhound.Errorf(bookhound.EINVALID, "%s: no requested library exists in the directory", s.cfg.Name)
	}
	return candidates, nil
}

// parseRow builds a single-holding entity from one result row.
func (s *Searcher) parseRow(row *goquery.Selection, candidates []fuzzy.Candidate[bookhound.Library]) (*bookhound.SearchEntity, error) {
	isbn, err := s.cfg.Row.ISBN(s, row)
	if err != nil {
		return nil, err
	}
	libName, location, err := s.cfg.Row.Site(s, row)
	if err != nil {
		return nil, err
	}
	library := fuzzy.SelectClosest(candidates, libName)
	detailURL := s.cfg.Row.DetailURL(s, row)

	return &bookhound.SearchEntity{
		Book: bookhound.Book{
			ISBN:        isbn,
			Title:       s.cfg.Row.Title(s, row),
			Author:      s.cfg.Row.Author(s, row),
			Publisher:   s.cfg.Row.Publisher(s, row),
			PublishYear: s.cfg.Row.PublishYear(s, row),
		},
		HoldingSummaries: []bookhound.HoldingSummary{{
			LibraryID:  library.ID,
			Location:   location,
			CallNumber: s.cfg.Row.CallNumber(s, row),
			Status:     s.cfg.Row.Status(s, row),
			URL:        detailURL,
		}},
		URL: detailURL,
	}, nil
}
