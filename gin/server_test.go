package gin_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookhound"
	"bookhound/aggregate"
	bookgin "bookhound/gin"
	"bookhound/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, name string, svc *mock.Service) *bookgin.Server {
	t.Helper()
	r := aggregate.NewRegistry()
	require.NoError(t, r.Register(name, svc))
	return bookgin.NewServer(aggregate.New(r))
}

func TestServer_Libraries(t *testing.T) {
	t.Parallel()

	t.Run("returns the aggregated directory", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t, "gangnam", &mock.Service{
			GetLibrariesFn: func(context.Context) ([]bookhound.Library, error) {
				return []bookhound.Library{{ID: "gangnam:MA", Name: "강남도서관"}}, nil
			},
		})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/libraries", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

		var body struct {
			Libraries []bookhound.Library `json:"libraries"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Libraries, 1)
		assert.Equal(t, "gangnam:MA", body.Libraries[0].ID)
	})

	t.Run("maps service failure to bad gateway", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t, "gangnam", &mock.Service{
			GetLibrariesFn: func(context.Context) ([]bookhound.Library, error) {
				return nil, bookhound.Errorf(bookhound.EUNAVAILABLE, "site down")
			},
		})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/libraries", nil))

		require.Equal(t, http.StatusBadGateway, rec.Code)
		var body struct {
			Code string `json:"code"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, bookhound.EUNAVAILABLE, body.Code)
	})
}

func TestServer_Search(t *testing.T) {
	t.Parallel()

	t.Run("streams one NDJSON line per entity", func(t *testing.T) {
		t.Parallel()

		var gotIDs []string
		srv := newServer(t, "gangnam", &mock.Service{
			SearchFn: func(_ context.Context, keyword string, ids []string, emit bookhound.EmitFunc) error {
				assert.Equal(t, "체공녀", keyword)
				gotIDs = ids
				if err := emit(bookhound.SearchEntity{Book: bookhound.Book{ISBN: "1111"}}); err != nil {
					return err
				}
				return emit(bookhound.SearchEntity{Book: bookhound.Book{ISBN: "2222"}})
			},
		})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
			"/search?term=%EC%B2%B4%EA%B3%B5%EB%85%80&library_ids=gangnam:MA,gangnam:MB", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/x-ndjson", rec.Header().Get("Content-Type"))
		assert.Equal(t, []string{"gangnam:MA", "gangnam:MB"}, gotIDs)

		lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
		require.Len(t, lines, 2)

		var isbns []string
		for _, line := range lines {
			var parsed struct {
				Entities []bookhound.SearchEntity `json:"entities"`
			}
			require.NoError(t, json.Unmarshal([]byte(line), &parsed))
			require.Len(t, parsed.Entities, 1)
			isbns = append(isbns, parsed.Entities[0].Book.ISBN)
		}
		assert.ElementsMatch(t, []string{"1111", "2222"}, isbns)
	})

	t.Run("rejects a missing term", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t, "gangnam", &mock.Service{})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?library_ids=gangnam:MA", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects missing library IDs", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t, "gangnam", &mock.Service{})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?term=abc", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("failing service yields an empty stream", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t, "gangnam", &mock.Service{
			SearchFn: func(context.Context, string, []string, bookhound.EmitFunc) error {
				return bookhound.Errorf(bookhound.ESTRUCTURE, "layout changed")
			},
		})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?term=abc&library_ids=gangnam:MA", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, strings.TrimSpace(rec.Body.String()))
	})
}
