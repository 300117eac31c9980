package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"bookhound"
	"bookhound/aggregate"
	"bookhound/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeps(t *testing.T, name string, svc *mock.Service) (*Dependencies, *bytes.Buffer) {
	t.Helper()
	r := aggregate.NewRegistry()
	require.NoError(t, r.Register(name, svc))

	var stdout bytes.Buffer
	return &Dependencies{
		Ctx:        context.Background(),
		Stdout:     &stdout,
		Stderr:     &bytes.Buffer{},
		Logger:     slog.New(slog.NewTextHandler(os.Stderr, nil)),
		Registry:   r,
		Aggregator: aggregate.New(r),
	}, &stdout
}

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints and exports results", func(t *testing.T) {
		t.Parallel()

		deps, stdout := testDeps(t, "gangnam", &mock.Service{
			SearchFn: func(_ context.Context, keyword string, ids []string, emit bookhound.EmitFunc) error {
				assert.Equal(t, "체공녀", keyword)
				assert.Equal(t, []string{"gangnam:MA"}, ids)
				return emit(bookhound.SearchEntity{
					Book: bookhound.Book{ISBN: "9791160402537", Title: bookhound.String("체공녀 강주룡")},
					HoldingSummaries: []bookhound.HoldingSummary{{
						LibraryID: "gangnam:MA",
						Status: &bookhound.HoldingStatus{
							Available: &bookhound.AvailableStatus{Detail: "비치중"},
						},
					}},
				})
			},
		})

		exportPath := filepath.Join(t.TempDir(), "results.json")
		cmd := &SearchCmd{
			Keyword:    "체공녀",
			LibraryIDs: []string{"gangnam:MA"},
			Export:     exportPath,
		}
		require.NoError(t, cmd.Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "9791160402537")
		assert.Contains(t, out, "체공녀 강주룡")
		assert.Contains(t, out, "gangnam:MA(대출가능)")

		data, err := os.ReadFile(exportPath)
		require.NoError(t, err)
		var exported []bookhound.SearchEntity
		require.NoError(t, json.Unmarshal(data, &exported))
		require.Len(t, exported, 1)
		assert.Equal(t, "9791160402537", exported[0].Book.ISBN)
	})

	t.Run("defaults to every library", func(t *testing.T) {
		t.Parallel()

		deps, stdout := testDeps(t, "gangnam", &mock.Service{
			GetLibrariesFn: func(context.Context) ([]bookhound.Library, error) {
				return []bookhound.Library{
					{ID: "gangnam:MA", Name: "강남도서관"},
					{ID: "gangnam:MB", Name: "논현도서관"},
				}, nil
			},
			SearchFn: func(_ context.Context, _ string, ids []string, emit bookhound.EmitFunc) error {
				assert.Equal(t, []string{"gangnam:MA", "gangnam:MB"}, ids)
				return nil
			},
		})

		cmd := &SearchCmd{Keyword: "아무거나"}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "No results.")
	})
}

func TestLibrariesCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout := testDeps(t, "gangnam", &mock.Service{
		GetLibrariesFn: func(context.Context) ([]bookhound.Library, error) {
			return []bookhound.Library{
				{ID: "gangnam:MA", Name: "강남도서관", Coordinate: &bookhound.Coordinate{Latitude: 37.49, Longitude: 127.03}},
				{ID: "gangnam:MB", Name: "논현도서관"},
			}, nil
		},
	})

	cmd := &LibrariesCmd{}
	require.NoError(t, cmd.Run(deps))

	out := stdout.String()
	assert.Contains(t, out, "gangnam:MA  강남도서관  (37.49000, 127.03000)")
	assert.Contains(t, out, "gangnam:MB  논현도서관")
}
