package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"bookhound"
	bookhoundhttp "bookhound/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Get(t *testing.T) {
	t.Parallel()

	t.Run("returns body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body>도서관</body></html>"))
		}))
		defer server.Close()

		fetcher := bookhoundhttp.NewFetcher()

		html, err := fetcher.Get(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>도서관</body></html>", html)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := bookhoundhttp.NewFetcher(bookhoundhttp.WithTimeout(10 * time.Millisecond))

		_, err := fetcher.Get(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, bookhound.EUNAVAILABLE, bookhound.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := bookhoundhttp.NewFetcher()

		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		_, err := fetcher.Get(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("returns EUNAVAILABLE for non-200 status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		fetcher := bookhoundhttp.NewFetcher()

		_, err := fetcher.Get(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, bookhound.EUNAVAILABLE, bookhound.ErrorCode(err))
	})
}

func TestFetcher_PostForm(t *testing.T) {
	t.Parallel()

	t.Run("submits form with repeated keys", func(t *testing.T) {
		t.Parallel()

		var got url.Values
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			got = r.PostForm
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := bookhoundhttp.NewFetcher()

		form := url.Values{}
		form.Set("searchKeyword", "편의점")
		form.Add("searchLibraryArr", "ME")
		form.Add("searchLibraryArr", "MA")

		body, err := fetcher.PostForm(context.Background(), server.URL, form)
		require.NoError(t, err)
		assert.Equal(t, "ok", body)
		assert.Equal(t, "편의점", got.Get("searchKeyword"))
		assert.Equal(t, []string{"ME", "MA"}, got["searchLibraryArr"])
	})
}

func TestFetcher_GetBinary(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte{0x50, 0x4b, 0x03, 0x04})
	}))
	defer server.Close()

	fetcher := bookhoundhttp.NewFetcher()

	b, err := fetcher.GetBinary(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x50, 0x4b, 0x03, 0x04}, b)
}
