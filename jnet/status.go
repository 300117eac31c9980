package jnet

import (
	"regexp"
	"strconv"
	"strings"

	"bookhound"

	"github.com/PuerkitoBio/goquery"
)

// AuxSignals bundles the secondary availability signals a site exposes
// next to its raw status label.
type AuxSignals struct {
	// Requests is the outstanding hold count, when printed.
	Requests *int

	// Due is the return-due date, when printed.
	Due *bookhound.Date

	// HoldButton reports whether the page offers a hold/reservation
	// action for the row. Site-specific heuristic; see the readers below.
	HoldButton bool
}

var (
	requestsPattern = regexp.MustCompile(`예약[:\s]*(\d+)명?`)
	duePattern      = regexp.MustCompile(`반납예정일[:\s]*(\d{4})\.(\d{2})\.(\d{2})`)
)

// Classify maps a raw J-net status label plus aux signals onto the
// canonical holding status. The primary tag is decided by the label's
// known prefixes; "not loanable" is subclassified into OnLoan when the
// bracketed sub-detail says so. Unrecognized labels yield nil, and
// callers emit the holding without a status rather than guessing.
func Classify(rawStatus string, aux AuxSignals) *bookhound.HoldingStatus {
	text := strings.TrimSpace(rawStatus)

	if rest, ok := strings.CutPrefix(text, "대출가능"); ok {
		st := &bookhound.HoldingStatus{
			Available:         &bookhound.AvailableStatus{Detail: trimDetail(rest)},
			Requests:          aux.Requests,
			RequestsAvailable: aux.HoldButton,
		}
		if aux.Requests != nil {
			st.IsRequested = bookhound.Bool(*aux.Requests > 0)
		}
		return st
	}

	if rest, ok := strings.CutPrefix(text, "대출불가"); ok {
		detail := trimDetail(rest)
		if strings.Contains(detail, "대출중") {
			st := &bookhound.HoldingStatus{
				OnLoan: &bookhound.OnLoanStatus{
					Detail: trimDetail(strings.TrimPrefix(detail, "대출중")),
					Due:    aux.Due,
				},
				Requests:          aux.Requests,
				RequestsAvailable: aux.HoldButton,
			}
			if aux.Requests != nil {
				st.IsRequested = bookhound.Bool(*aux.Requests > 0)
			}
			return st
		}
		return &bookhound.HoldingStatus{
			Unavailable:       &bookhound.UnavailableStatus{Detail: detail},
			IsRequested:       bookhound.Bool(strings.Contains(detail, "예약")),
			Requests:          aux.Requests,
			RequestsAvailable: aux.HoldButton,
		}
	}

	return nil
}

func trimDetail(s string) string {
	return strings.Trim(s, "[]() ")
}

// scanAux extracts hold-count and due-date signals from free text.
func scanAux(text string, aux *AuxSignals) {
	if m := requestsPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			aux.Requests = bookhound.Int(n)
		}
	}
	if m := duePattern.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		aux.Due = &bookhound.Date{Year: year, Month: month, Day: day}
	}
}

// StatusBar reads the classic J-net ".bookStateBar" status strip: the
// label sits in a bold element, the hold count and due date in the
// surrounding text, and hold availability is signaled by a reservation
// button labeled 도서예약신청.
func StatusBar(s *Searcher, row *goquery.Selection) *bookhound.HoldingStatus {
	bar := row.Find(".bookStateBar").First()
	if bar.Length() == 0 {
		s.warnField("status")
		return nil
	}
	txt := bar.Find("p.txt").First()
	if txt.Length() == 0 {
		s.warnField("status text")
		return nil
	}
	b := txt.Find("b").First()
	if b.Length() == 0 {
		return nil
	}

	var aux AuxSignals
	scanAux(txt.Text(), &aux)
	if btn := bar.Find(".stateArea .state.typeA").First(); btn.Length() > 0 {
		aux.HoldButton = strings.TrimSpace(btn.Text()) == "도서예약신청"
	}

	return s.classifyLogged(strings.TrimSpace(b.Text()), aux)
}

// StatusBookData returns a reader for the ".bookData" row layout used by
// the splib skin: the label sits in a .status element, the aux signals in
// the spans selected by auxSelector, and hold availability is signaled by
// a reservation link in .bookBtnWrap.
func StatusBookData(auxSelector string) func(*Searcher, *goquery.Selection) *bookhound.HoldingStatus {
	return func(s *Searcher, row *goquery.Selection) *bookhound.HoldingStatus {
		el := row.Find(".bookData .status").First()
		if el.Length() == 0 {
			s.warnField("status")
			return nil
		}

		var aux AuxSignals
		row.Find(auxSelector).Each(func(_ int, sp *goquery.Selection) {
			scanAux(sp.Text(), &aux)
		})
		row.Find(".bookBtnWrap a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			if onclick, ok := a.Attr("onclick"); ok && strings.Contains(onclick, "fnLoanReservationApplyProc") {
				aux.HoldButton = true
				return false
			}
			return true
		})

		return s.classifyLogged(strings.TrimSpace(el.Text()), aux)
	}
}

func (s *Searcher) classifyLogged(rawStatus string, aux AuxSignals) *bookhound.HoldingStatus {
	st := Classify(rawStatus, aux)
	if st == nil {
		s.logger.Warn("unrecognized holding status", "service", s.cfg.Name, "status", rawStatus)
	}
	return st
}
