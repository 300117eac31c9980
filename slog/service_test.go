package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"bookhound"
	bookslog "bookhound/slog"
	"bookhound/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingService_GetLibraries(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.Service{
		GetLibrariesFn: func(context.Context) ([]bookhound.Library, error) {
			return []bookhound.Library{{ID: "gangnam:MA", Name: "강남도서관"}}, nil
		},
	}

	svc := bookslog.NewLoggingService(inner, "gangnam", debugLogger(&buf))
	libraries, err := svc.GetLibraries(context.Background())

	require.NoError(t, err)
	assert.Len(t, libraries, 1)
	output := buf.String()
	assert.Contains(t, output, "get libraries")
	assert.Contains(t, output, "service=gangnam")
	assert.Contains(t, output, "count=1")
	assert.Contains(t, output, "duration=")
}

func TestLoggingService_Search(t *testing.T) {
	t.Parallel()

	t.Run("logs emitted entity count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Service{
			SearchFn: func(_ context.Context, _ string, _ []string, emit bookhound.EmitFunc) error {
				if err := emit(bookhound.SearchEntity{Book: bookhound.Book{ISBN: "1111"}}); err != nil {
					return err
				}
				return emit(bookhound.SearchEntity{Book: bookhound.Book{ISBN: "2222"}})
			},
		}

		svc := bookslog.NewLoggingService(inner, "gangnam", debugLogger(&buf))
		seen := 0
		err := svc.Search(context.Background(), "키워드", []string{"gangnam:MA"}, func(bookhound.SearchEntity) error {
			seen++
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 2, seen)
		output := buf.String()
		assert.Contains(t, output, "search")
		assert.Contains(t, output, "entities=2")
		assert.Contains(t, output, "libraries=1")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Service{
			SearchFn: func(context.Context, string, []string, bookhound.EmitFunc) error {
				return bookhound.Errorf(bookhound.EUNAVAILABLE, "site down")
			},
		}

		svc := bookslog.NewLoggingService(inner, "gangnam", debugLogger(&buf))
		err := svc.Search(context.Background(), "키워드", nil, func(bookhound.SearchEntity) error {
			return nil
		})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "site down")
	})
}

func TestLoggingGeocoder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.Geocoder{
		SearchKeywordFn: func(context.Context, string) (*bookhound.Coordinate, error) {
			return nil, nil
		},
	}

	g := bookslog.NewLoggingGeocoder(inner, debugLogger(&buf))
	coord, err := g.SearchKeyword(context.Background(), "서울시 강남구 강남도서관")

	require.NoError(t, err)
	assert.Nil(t, coord)
	output := buf.String()
	assert.Contains(t, output, "geocode")
	assert.Contains(t, output, "matched=false")
}

func TestLoggingCache(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := bookslog.NewLoggingCache(mock.NewMapCache(), debugLogger(&buf))

	require.NoError(t, c.Set(context.Background(), "libraries:gangnam", []byte("[]"), 24*time.Hour))
	_, ok, err := c.Get(context.Background(), "libraries:gangnam")

	require.NoError(t, err)
	assert.True(t, ok)
	output := buf.String()
	assert.Contains(t, output, "cache set")
	assert.Contains(t, output, "cache get")
	assert.Contains(t, output, "hit=true")
}
