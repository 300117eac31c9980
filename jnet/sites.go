package jnet

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"bookhound"

	"github.com/PuerkitoBio/goquery"
)

// Sites returns the configs for every supported catalog site, in
// registration order. Raw library names repeat across districts, so each
// site qualifies its geocoding queries with its own district.
func Sites() []Config {
	return []Config{
		{
			Name:         "seoul-gangnam",
			BaseURL:      "https://library.gangnam.go.kr/",
			IndexPath:    "/intro/menu/10003/program/30001/plusSearchSimple.do",
			SearchPath:   "/intro/menu/10003/program/30001/plusSearchResultList.do",
			DetailPath:   "/intro/menu/10003/program/30001/plusSearchResultDetail.do",
			GeocodeQuery: seoulDistrict("강남구"),
		},
		{
			Name:           "seoul-gwangjin",
			BaseURL:        "https://www.gwangjinlib.seoul.kr/",
			IndexPath:      "/gjinfo/menu/10036/program/30010/plusSearchSimple.do",
			SearchPath:     "/gjinfo/menu/10036/program/30010/plusSearchResultList.do",
			DetailPath:     "/gjinfo/menu/10036/program/30010/plusSearchDetailView.do",
			ExportTextPath: "/search/exportTextBookList.do",
			GeocodeQuery:   seoulDistrict("광진구"),
		},
		{
			Name:           "seoul-gwanak",
			BaseURL:        "https://lib.gwanak.go.kr/",
			IndexPath:      "/galib/menu/10003/program/30001/searchSimple.do",
			SearchPath:     "/galib/menu/10003/program/30001/searchResultList.do",
			DetailPath:     "/galib/menu/10003/program/30001/searchResultDetail.do",
			ExportTextPath: "/kolaseek/search/exportTextBookList.do",
			LibraryItems:   "ul.chk_lib li",
			GeocodeQuery:   seoulDistrict("관악구"),
		},
		{
			Name:         "seoul-dongdaemun",
			BaseURL:      "https://www.l4d.or.kr/",
			IndexPath:    "/intro/menu/10096/program/30010/plusSearchSimple.do",
			SearchPath:   "/intro/menu/10096/program/30010/plusSearchResultList.do",
			DetailPath:   "/intro/menu/10096/program/30010/plusSearchResultDetail.do",
			GeocodeQuery: seoulDistrict("동대문구"),
		},
		{
			Name:            "seoul-mapo",
			BaseURL:         "https://mplib.mapo.go.kr/",
			IndexPath:       "/mcl/MENU1039/PGM3007/plusSearchSimple.do",
			SearchPath:      "/mcl/PGM3007/plusSearchResultList.do",
			DetailPath:      "/mcl/MENU1039/PGM3007/plusSearchDetailView.do",
			ExportExcelPath: "/cmmn/exportExcelBookList.do",
			GeocodeQuery:    seoulDistrict("마포구"),
		},
		{
			Name:       "sblib",
			BaseURL:    "https://www.sblib.seoul.kr/",
			IndexPath:  "/library/menu/10012/program/30003/searchSimple.do",
			SearchPath: "/library/menu/10012/program/30003/searchResultList.do",
			DetailPath: "/library/menu/10012/program/30003/searchResultDetail.do",
			// The checkbox labels carry bare branch names, "정릉" etc.
			NormalizeLibraryName: func(name string) string { return name + "도서관" },
			BuildQuery:           sblibQuery,
			GeocodeQuery:         seoulDistrict("성북구"),
		},
		{
			Name:       "gdlib",
			BaseURL:    "https://gdlibrary.or.kr/",
			IndexPath:  "/web/menu/10045/program/30003/searchSimple.do",
			SearchPath: "/web/menu/10045/program/30003/searchResultList.do",
			DetailPath: "/web/menu/10045/program/30003/searchResultDetail.do",
			NormalizeLibraryName: func(name string) string {
				return strings.ReplaceAll(name, "북카페:", "다독다독 ")
			},
			GeocodeQuery: seoulDistrict("강동구"),
		},
		{
			Name:            "seoul-songpa",
			BaseURL:         "https://splib.or.kr/",
			IndexPath:       "/intro/menu/10003/program/30001/plusSearchSimple.do",
			SearchPath:      "/intro/menu/10003/program/30001/plusSearchResultList.do",
			DetailPath:      "/intro/menu/10003/program/30001/plusSearchResultDetail.do",
			ExportExcelPath: "/book/exportExcelBookList.do",
			LibraryItems:    "#contents .searchCheckBox ul > li, #contents ol.finder_lib > li",
			LibraryInput:    "input[type=checkbox]",
			ResultItems:     "#contents .bookList > ul > li:not(.emptyNote):not(.noResultNote):not(.message)",
			GeocodeQuery:    seoulDistrict("송파구"),
			Row:             splibRowHooks(),
		},
		{
			Name:         "seoul-seodaemun",
			BaseURL:      "https://lib.sdm.or.kr/",
			IndexPath:    "/sdmlib/menu/10003/program/30001/searchSimple.do",
			SearchPath:   "/sdmlib/menu/10003/program/30001/searchResultList.do",
			DetailPath:   "/sdmlib/menu/10003/program/30001/searchResultDetail.do",
			LibraryItems: "#contents ol.finder_lib > li",
			LibraryInput: "input[type=checkbox]",
			ResultItems:  "#contents .bookList > ul > li:not(.emptyNote):not(.noResultNote):not(.message)",
			BuildQuery:   seodaemunQuery,
			GeocodeQuery: seoulDistrict("서대문구"),
			Row: RowHooks{
				Title:       sdmTitle,
				Author:      sdmAuthor,
				Publisher:   sdmPublisher,
				PublishYear: sdmPublishYear,
				CallNumber:  sdmCallNumber,
				ISBN:        sdmISBN,
				Site:        sdmSite,
				Status:      StatusBookData(".bookData .book_info.info03 .kor"),
				DetailURL:   sdmDetailURL,
			},
		},
		{
			Name:           "splib",
			BaseURL:        "https://splib.or.kr/",
			SearchPath:     "/intro/menu/10003/program/30001/plusSearchResultList.do",
			DetailPath:     "/intro/menu/10003/program/30001/plusSearchResultDetail.do",
			ResultItems:    "#searchForm .bookList .listWrap > li",
			BuildQuery:     splibQuery,
			FetchLibraries: splibLibraries,
			GeocodeQuery:   seoulDistrict("송파구"),
			Row:            splibRowHooks(),
		},
	}
}

func seoulDistrict(district string) func(string) string {
	return func(name string) string {
		return "서울시 " + district + " " + name
	}
}

// sblibQuery is the KOLAS-flavored form sblib runs instead of the shared
// one: a single comma-joined library key parameter.
func sblibQuery(keyword string, libraryKeys []string) url.Values {
	q := url.Values{}
	q.Set("query", keyword)
	q.Set("categoryManageCode", strings.Join(libraryKeys, ","))
	return q
}

// seodaemunQuery matches the shared form except for the library key
// parameter name.
func seodaemunQuery(keyword string, libraryKeys []string) url.Values {
	q := url.Values{}
	q.Set("searchType", "SIMPLE")
	q.Set("searchKey", "ALL")
	q.Set("searchKeyword", keyword)
	for _, key := range libraryKeys {
		q.Add("searchManageCodeArr", key)
	}
	return q
}

func splibQuery(keyword string, libraryKeys []string) url.Values {
	q := DefaultQuery(keyword, libraryKeys)
	q.Set("searchCategory", "BOOK")
	return q
}

func splibRowHooks() RowHooks {
	return RowHooks{
		Title:       splibTitle,
		Author:      splibAuthor,
		Publisher:   splibPublisher,
		PublishYear: splibPublishYear,
		CallNumber:  splibCallNumber,
		ISBN:        splibISBN,
		Site:        splibSite,
		Status:      StatusBookData(".bookData .book_info.info04 span"),
	}
}

// splib publishes its branch list on a static contents page, with each
// branch's search key only on that branch's own index page.
const splibBranchListPath = "/intro/menu/10022/contents/40003/contents.do"

var splibBranchNamePattern = regexp.MustCompile(`^[\p{L}\p{N}\s]+`)

func splibLibraries(ctx context.Context, s *Searcher) ([]bookhound.Library, error) {
	body, err := s.fetcher.Get(ctx, s.resolve(splibBranchListPath))
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, bookhound.Errorf(bookhound.ESTRUCTURE, "%s: cannot parse branch list page: %v", s.cfg.Name, err)
	}
	root := doc.Find("#contents .publiclib_wrap ul").First()
	if root.Length() == 0 {
		return nil, bookhound.Errorf(bookhound.ESTRUCTURE, "%s: cannot find branch list", s.cfg.Name)
	}

	type branch struct {
		name string
		href string
	}
	var branches []branch
	root.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		title := li.Find("h3").First()
		name := strings.TrimSpace(splibBranchNamePattern.FindString(strings.TrimSpace(title.Text())))
		href, _ := title.Find("a").First().Attr("href")
		if name == "" || href == "" {
			return
		}
		branches = append(branches, branch{name: name, href: href})
	})
	if len(branches) == 0 {
		return nil, bookhound.Errorf(bookhound.ESTRUCTURE, "%s: no branches found on branch list", s.cfg.Name)
	}

	var libraries []bookhound.Library
	for _, b := range branches {
		page, err := s.fetcher.Get(ctx, s.resolve(b.href))
		if err != nil {
			return nil, err
		}
		bdoc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
		if err != nil {
			return nil, bookhound.Errorf(bookhound.ESTRUCTURE, "%s: cannot parse branch page for %s: %v", s.cfg.Name, b.name, err)
		}
		key, ok := bdoc.Find("#mainSearchForm input[name='searchLibraryArr']").First().Attr("value")
		if !ok || key == "" {
			return nil, bookhound.Errorf(bookhound.ESTRUCTURE, "%s: cannot find search key for branch %s", s.cfg.Name, b.name)
		}
		libraries = append(libraries, bookhound.Library{
			ID:         s.IDPrefix() + key,
			Name:       b.name,
			Coordinate: s.geocode(ctx, b.name),
		})
	}
	return libraries, nil
}
