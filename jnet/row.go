package jnet

import (
	"strconv"
	"strings"

	"bookhound"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Default field hooks for the classic J-net result row ("type A"): a
// resultList item with .tit/.author/.data/.site sections and a
// .bookStateBar status strip.

func titleA(s *Searcher, row *goquery.Selection) *string {
	if el := row.Find(".tit > a").First(); el.Length() > 0 {
		return bookhound.String(strings.TrimSpace(el.Text()))
	}
	s.warnField("title")
	return nil
}

func authorA(s *Searcher, row *goquery.Selection) *string {
	if el := row.Find(".author > span:nth-child(1)").First(); el.Length() > 0 {
		return bookhound.String(strings.TrimPrefix(el.Text(), "저자 : "))
	}
	s.warnField("author")
	return nil
}

func publisherA(s *Searcher, row *goquery.Selection) *string {
	if el := row.Find(".author > span:nth-child(2)").First(); el.Length() > 0 {
		return bookhound.String(strings.TrimPrefix(el.Text(), "발행자: "))
	}
	s.warnField("publisher")
	return nil
}

func publishYearA(s *Searcher, row *goquery.Selection) *int {
	el := row.Find(".author > span:nth-child(3)").First()
	if el.Length() == 0 {
		s.warnField("publish date")
		return nil
	}
	yearText := strings.TrimSpace(strings.TrimPrefix(el.Text(), "발행연도: "))
	year, err := strconv.Atoi(yearText)
	if err != nil {
		s.warnField("publish year")
		return nil
	}
	return bookhound.Int(year)
}

func isbnA(s *Searcher, row *goquery.Selection) (string, error) {
	var isbn string
	row.Find(".data > span").EachWithBreak(func(_ int, sp *goquery.Selection) bool {
		text := strings.TrimSpace(sp.Text())
		if rest, ok := strings.CutPrefix(text, "ISBN:"); ok {
			isbn = strings.TrimSpace(rest)
			return false
		}
		return true
	})
	if isbn == "" {
		return "", bookhound.Errorf(bookhound.ESTRUCTURE, "%s: cannot parse ISBN from result row", s.cfg.Name)
	}
	return isbn, nil
}

func callNumberA(s *Searcher, row *goquery.Selection) *string {
	var call *string
	row.Find(".data > span").EachWithBreak(func(_ int, sp *goquery.Selection) bool {
		// The call number is a direct text node; nested spans carry
		// unrelated decorations.
		text := strings.TrimSpace(ownText(sp))
		if rest, ok := strings.CutPrefix(text, "청구기호:"); ok {
			call = bookhound.String(strings.TrimSpace(rest))
			return false
		}
		return true
	})
	if call == nil {
		s.warnField("call number")
	}
	return call
}

func siteA(s *Searcher, row *goquery.Selection) (string, *string, error) {
	var library string
	var location *string
	row.Find(".site > span").Each(func(_ int, sp *goquery.Selection) {
		text := strings.TrimSpace(sp.Text())
		if rest, ok := strings.CutPrefix(text, "도서관:"); ok {
			library = strings.TrimSpace(rest)
		} else if rest, ok := strings.CutPrefix(text, "자료실:"); ok {
			location = bookhound.String(strings.TrimSpace(rest))
		}
	})
	if library == "" {
		return "", nil, bookhound.Errorf(bookhound.ENOTFOUND, "%s: cannot find library on result row", s.cfg.Name)
	}
	return library, location, nil
}

func exportIDA(s *Searcher, row *goquery.Selection) *string {
	if input := row.Find("input[name='check']").First(); input.Length() > 0 {
		if v, ok := input.Attr("value"); ok && v != "" {
			return bookhound.String(v)
		}
	}
	if parts, ok := detailParts(row); ok {
		return bookhound.String(strings.Join(parts[:], "^"))
	}
	return nil
}

func (s *Searcher) warnField(field string) {
	s.logger.Warn("cannot parse field", "service", s.cfg.Name, "field", field)
}

// ownText concatenates the direct text-node children of a selection,
// excluding text inside nested elements.
func ownText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, node := range sel.Nodes {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
		}
	}
	return b.String()
}
