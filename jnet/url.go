package jnet

import (
	"net/url"
	"regexp"

	"bookhound"

	"github.com/PuerkitoBio/goquery"
)

// Result rows do not link detail pages directly; the identifiers are
// buried in a UI event handler. The detail URL is rebuilt from those
// identifiers onto the configured detail path, never copied verbatim.

var detailCallPattern = regexp.MustCompile(
	`(?:fnSearchResultDetail|fnSearchDetailView)\((\d+)\s*,\s*(\d+)\s*,\s*'(\w+)'\)`,
)

// detailParts extracts the (recKey, bookKey, publishFormCode) triple from
// a row's onclick handlers.
func detailParts(row *goquery.Selection) ([3]string, bool) {
	var parts [3]string
	found := false
	row.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		onclick, ok := a.Attr("onclick")
		if !ok {
			return true
		}
		if m := detailCallPattern.FindStringSubmatch(onclick); m != nil {
			parts = [3]string{m[1], m[2], m[3]}
			found = true
			return false
		}
		return true
	})
	return parts, found
}

// detailURLTriple rebuilds the detail-page URL from the standard J-net
// identifier triple.
func detailURLTriple(s *Searcher, row *goquery.Selection) *string {
	parts, ok := detailParts(row)
	if !ok {
		return nil
	}
	q := url.Values{}
	q.Set("recKey", parts[0])
	q.Set("bookKey", parts[1])
	q.Set("publishFormCode", parts[2])
	return s.detailURL(q)
}

// Some skins use a four-argument handler carrying the ISBN directly:
// fnDetail(bookKey, speciesKey, isbn, publishFormCode).
var detailQuadPattern = regexp.MustCompile(
	`fnDetail\('?(\d+)'?\s*,\s*'?(\d+)'?\s*,\s*'?(\d+)'?\s*,\s*'(\w+)'\)`,
)

// detailPartsQuad extracts the (bookKey, speciesKey, isbn,
// publishFormCode) quad from a row's onclick handlers.
func detailPartsQuad(row *goquery.Selection) ([4]string, bool) {
	var parts [4]string
	found := false
	row.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		onclick, ok := a.Attr("onclick")
		if !ok {
			return true
		}
		if m := detailQuadPattern.FindStringSubmatch(onclick); m != nil {
			parts = [4]string{m[1], m[2], m[3], m[4]}
			found = true
			return false
		}
		return true
	})
	return parts, found
}

// detailURL templates a query onto the configured detail path.
func (s *Searcher) detailURL(q url.Values) *string {
	u, err := url.Parse(s.resolve(s.cfg.DetailPath))
	if err != nil {
		return nil
	}
	u.RawQuery = q.Encode()
	return bookhound.String(u.String())
}
