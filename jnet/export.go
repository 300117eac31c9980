package jnet

import (
	"bytes"
	"context"
	"net/url"
	"strconv"
	"strings"

	"bookhound"
	"bookhound/fuzzy"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"
)

// The bulk export endpoints return the bibliographic columns in one
// request but omit availability and deep links, so the page rows are
// still consulted for those two fields and merged back in by position.

// exportRow carries the per-row signals the export tables omit.
type exportRow struct {
	id     string
	url    *string
	status *bookhound.HoldingStatus
}

func (s *Searcher) exportAvailable() bool {
	return s.cfg.ExportTextPath != "" || s.cfg.ExportExcelPath != ""
}

// collectExportRows gathers the export identifiers the page rows expose.
// Rows without one are left to the fallback parser.
func (s *Searcher) collectExportRows(rows *goquery.Selection) []exportRow {
	var infos []exportRow
	rows.Each(func(_ int, row *goquery.Selection) {
		id := s.cfg.Row.ExportID(s, row)
		if id == nil {
			return
		}
		infos = append(infos, exportRow{
			id:     *id,
			url:    s.cfg.Row.DetailURL(s, row),
			status: s.cfg.Row.Status(s, row),
		})
	})
	return infos
}

// export reads the result set through the site's bulk export endpoint and
// emits one entity per table row.
func (s *Searcher) export(ctx context.Context, keyword string, infos []exportRow, candidates []fuzzy.Candidate[bookhound.Library], emit bookhound.EmitFunc) error {
	ids := make([]string, len(infos))
	for i, info := range infos {
		ids[i] = info.id
	}
	table, err := s.exportTable(ctx, keyword, ids)
	if err != nil {
		return err
	}
	if len(table) < 2 {
		return bookhound.Errorf(bookhound.ESTRUCTURE, "%s: export table has no data rows", s.cfg.Name)
	}
	cols := resolveColumns(table[0])
	if cols.isbn < 0 || cols.library < 0 {
		return bookhound.Errorf(bookhound.ESTRUCTURE, "%s: export table is missing the ISBN or library column", s.cfg.Name)
	}

	data := table[1:]
	if len(data) != len(infos) {
		s.logger.Warn("export row count differs from page row count",
			"service", s.cfg.Name, "export", len(data), "page", len(infos))
	}

	for i, row := range data {
		isbn := cellAt(row, cols.isbn)
		if isbn == nil {
			s.logger.Warn("dropping export row without ISBN", "service", s.cfg.Name)
			continue
		}
		libName := cellAt(row, cols.library)
		if libName == nil {
			s.logger.Warn("dropping export row without library", "service", s.cfg.Name)
			continue
		}
		library := fuzzy.SelectClosest(candidates, *libName)

		var year *int
		if y := cellAt(row, cols.year); y != nil {
			if n, err := strconv.Atoi(*y); err == nil {
				year = bookhound.Int(n)
			}
		}

		entity := bookhound.SearchEntity{
			Book: bookhound.Book{
				ISBN:        *isbn,
				Title:       cellAt(row, cols.title),
				Author:      cellAt(row, cols.author),
				Publisher:   cellAt(row, cols.publisher),
				PublishYear: year,
			},
			HoldingSummaries: []bookhound.HoldingSummary{{
				LibraryID:  library.ID,
				Location:   cellAt(row, cols.location),
				CallNumber: cellAt(row, cols.callNumber),
			}},
		}
		if i < len(infos) {
			entity.URL = infos[i].url
			entity.HoldingSummaries[0].URL = infos[i].url
			entity.HoldingSummaries[0].Status = infos[i].status
		}
		if err := emit(entity); err != nil {
			return err
		}
	}
	return nil
}

// exportTable fetches the export payload and normalizes it to a cell
// matrix, header row first.
func (s *Searcher) exportTable(ctx context.Context, keyword string, ids []string) ([][]string, error) {
	q := url.Values{}
	q.Set("searchKeyword", keyword)
	for _, id := range ids {
		q.Add("check", id)
	}

	if s.cfg.ExportTextPath != "" {
		body, err := s.fetcher.PostForm(ctx, s.resolve(s.cfg.ExportTextPath), q)
		if err != nil {
			return nil, err
		}
		return parseTabTable(body), nil
	}

	data, err := s.fetcher.GetBinary(ctx, s.resolve(s.cfg.ExportExcelPath)+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	return parseExcelTable(s.cfg.Name, data)
}

func parseTabTable(body string) [][]string {
	var table [][]string
	for _, line := range strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := strings.Split(line, "\t")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		table = append(table, cells)
	}
	return table
}

func parseExcelTable(service string, data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, bookhound.Errorf(bookhound.EUNAVAILABLE, "%s: cannot open export spreadsheet: %v", service, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, bookhound.Errorf(bookhound.EUNAVAILABLE, "%s: export spreadsheet has no sheets", service)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, bookhound.Errorf(bookhound.EUNAVAILABLE, "%s: cannot read export spreadsheet: %v", service, err)
	}
	return rows, nil
}

// exportColumns holds the resolved column index per field, -1 for absent.
type exportColumns struct {
	title      int
	author     int
	publisher  int
	year       int
	callNumber int
	isbn       int
	library    int
	location   int
}

// resolveColumns matches the header row against the labels the sites are
// known to print for each field.
func resolveColumns(header []string) exportColumns {
	return exportColumns{
		title:      findColumn(header, "서명"),
		author:     findColumn(header, "저자"),
		publisher:  findColumn(header, "출판사", "발행자"),
		year:       findColumn(header, "발행년", "출판년도", "출판연도", "발행년도", "발행연도"),
		callNumber: findColumn(header, "청구기호"),
		isbn:       findColumn(header, "ISBN", "표준번호(ISBN, ISSN)"),
		library:    findColumn(header, "도서관"),
		location:   findColumn(header, "자료실", "자료실명"),
	}
}

func findColumn(header []string, labels ...string) int {
	for i, cell := range header {
		cell = strings.TrimSpace(cell)
		for _, label := range labels {
			if cell == label {
				return i
			}
		}
	}
	return -1
}

// cellAt returns the trimmed cell value, mapping absent and placeholder
// cells to nil.
func cellAt(row []string, idx int) *string {
	if idx < 0 || idx >= len(row) {
		return nil
	}
	v := strings.TrimSpace(row[idx])
	if v == "" || v == "-" {
		return nil
	}
	return bookhound.String(v)
}
