package jnet

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"bookhound"

	"github.com/PuerkitoBio/goquery"
)

// Field hooks for the newer ".bookData" result row skin. Two close
// variants exist: the splib skin proper (numbered titles, ISBN hidden in
// a holdings-popup handler, bare info spans) and the sdm variant (info
// spans wrapped in .kor, ISBN carried by the detail handler).

var (
	splibTitlePattern = regexp.MustCompile(`^\d+\.\s*(.*)`)
	splibISBNPattern  = regexp.MustCompile(`fnCollectionBookList\(\s*[\w']+\s*,\s*[\w']+\s*,\s*[\w']+\s*,\s*[\w']+\s*,\s*'(\d+)'\)`)
)

func splibTitle(s *Searcher, row *goquery.Selection) *string {
	if el := row.Find(".book_name .title").First(); el.Length() > 0 {
		// Result titles are numbered, "3. 제목".
		if m := splibTitlePattern.FindStringSubmatch(strings.TrimSpace(el.Text())); m != nil {
			return bookhound.String(m[1])
		}
	}
	s.warnField("title")
	return nil
}

// splibISBN reads the ISBN out of the holdings-popup handler. The skin
// prints it nowhere else, so a miss drops the row rather than the page.
func splibISBN(s *Searcher, row *goquery.Selection) (string, error) {
	var isbn string
	row.Find(".bookDetailInfo a.btn_haveinfo").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		onclick, ok := a.Attr("onclick")
		if !ok {
			return true
		}
		if m := splibISBNPattern.FindStringSubmatch(onclick); m != nil {
			isbn = m[1]
			return false
		}
		return true
	})
	if isbn == "" {
		return "", bookhound.Errorf(bookhound.EINVALID, "%s: cannot parse ISBN from result row", s.cfg.Name)
	}
	return isbn, nil
}

func splibAuthor(s *Searcher, row *goquery.Selection) *string {
	if el := row.Find(".bookData .book_info.info01").First(); el.Length() > 0 {
		return bookhound.String(strings.TrimSpace(el.Text()))
	}
	s.warnField("author")
	return nil
}

func splibPublisher(s *Searcher, row *goquery.Selection) *string {
	if v := splibInfoSpan(row, ".bookData .book_info.info02", 0); v != nil {
		return v
	}
	s.warnField("publisher")
	return nil
}

func splibPublishYear(s *Searcher, row *goquery.Selection) *int {
	v := splibInfoSpan(row, ".bookData .book_info.info02", 1)
	if v == nil {
		s.warnField("publish date")
		return nil
	}
	year, err := strconv.Atoi(*v)
	if err != nil {
		s.warnField("publish year")
		return nil
	}
	return bookhound.Int(year)
}

func splibCallNumber(s *Searcher, row *goquery.Selection) *string {
	if v := splibInfoSpan(row, ".bookData .book_info.info02", 2); v != nil {
		return v
	}
	s.warnField("call number")
	return nil
}

func splibSite(s *Searcher, row *goquery.Selection) (string, *string, error) {
	library := splibInfoSpan(row, ".bookData .book_info.info03", 0)
	if library == nil {
		return "", nil, bookhound.Errorf(bookhound.ENOTFOUND, "%s: cannot find library on result row", s.cfg.Name)
	}
	location := splibInfoSpan(row, ".bookData .book_info.info03", 1)
	if location == nil {
		s.warnField("location")
	}
	return *library, location, nil
}

// splibInfoSpan returns the trimmed text of the idx-th direct span child
// under selector, nil when absent or empty.
func splibInfoSpan(row *goquery.Selection, selector string, idx int) *string {
	el := row.Find(selector).First()
	if el.Length() == 0 {
		return nil
	}
	span := el.ChildrenFiltered("span").Eq(idx)
	if span.Length() == 0 {
		return nil
	}
	v := strings.TrimSpace(span.Text())
	if v == "" {
		return nil
	}
	return bookhound.String(v)
}

// The sdm variant wraps each info line in a .kor element.

var sdmLibraryPattern = regexp.MustCompile(`^\[([^\]]+)\]\s*(.*)`)

func sdmTitle(s *Searcher, row *goquery.Selection) *string {
	if el := row.Find(".book_name .kor a").First(); el.Length() > 0 {
		if title, ok := el.Attr("title"); ok {
			return bookhound.String(strings.TrimSpace(title))
		}
	}
	s.warnField("title")
	return nil
}

func sdmAuthor(s *Searcher, row *goquery.Selection) *string {
	if el := row.Find(".bookData .book_info.info01 .kor").First(); el.Length() > 0 {
		return bookhound.String(strings.TrimSpace(el.Text()))
	}
	s.warnField("author")
	return nil
}

func sdmPublisher(s *Searcher, row *goquery.Selection) *string {
	if v := splibInfoSpan(row, ".bookData .book_info.info02 .kor", 0); v != nil {
		return v
	}
	s.warnField("publisher")
	return nil
}

func sdmPublishYear(s *Searcher, row *goquery.Selection) *int {
	v := splibInfoSpan(row, ".bookData .book_info.info02 .kor", 1)
	if v == nil {
		s.warnField("publish date")
		return nil
	}
	year, err := strconv.Atoi(*v)
	if err != nil {
		s.warnField("publish year")
		return nil
	}
	return bookhound.Int(year)
}

func sdmCallNumber(s *Searcher, row *goquery.Selection) *string {
	if v := splibInfoSpan(row, ".bookData .book_info.info02 .kor", 4); v != nil {
		return v
	}
	s.warnField("call number")
	return nil
}

// sdmISBN reads the ISBN carried as the third argument of the detail
// handler; the skin prints it nowhere else. A miss here is structural.
func sdmISBN(s *Searcher, row *goquery.Selection) (string, error) {
	parts, ok := detailPartsQuad(row)
	if !ok {
		return "", bookhound.Errorf(bookhound.ESTRUCTURE, "%s: cannot parse ISBN from result row", s.cfg.Name)
	}
	return parts[2], nil
}

func sdmSite(s *Searcher, row *goquery.Selection) (string, *string, error) {
	var library string
	var location *string
	row.Find(".bookData .book_info.info03 > p.kor").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		if m := sdmLibraryPattern.FindStringSubmatch(strings.TrimSpace(p.Text())); m != nil {
			library = m[1]
			if loc := strings.TrimSpace(m[2]); loc != "" {
				location = bookhound.String(loc)
			}
			return false
		}
		return true
	})
	if library == "" {
		return "", nil, bookhound.Errorf(bookhound.ENOTFOUND, "%s: cannot find library on result row", s.cfg.Name)
	}
	return library, location, nil
}

func sdmDetailURL(s *Searcher, row *goquery.Selection) *string {
	parts, ok := detailPartsQuad(row)
	if !ok {
		return nil
	}
	q := url.Values{}
	q.Set("bookKey", parts[0])
	q.Set("speciesKey", parts[1])
	q.Set("isbn", parts[2])
	q.Set("pubFormCode", parts[3])
	return s.detailURL(q)
}
