package http_test

import (
	"context"
	"testing"
	"time"

	bookhoundhttp "bookhound/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("first request per host is immediate", func(t *testing.T) {
		t.Parallel()

		limiter := bookhoundhttp.NewHostLimiter(1.0)

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "library.gangnam.go.kr"))
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("different hosts do not throttle each other", func(t *testing.T) {
		t.Parallel()

		limiter := bookhoundhttp.NewHostLimiter(1.0)

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "splib.or.kr"))
		require.NoError(t, limiter.Wait(context.Background(), "lib.sdm.or.kr"))
		require.NoError(t, limiter.Wait(context.Background(), "mplib.mapo.go.kr"))
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("second request to same host waits", func(t *testing.T) {
		t.Parallel()

		limiter := bookhoundhttp.NewHostLimiter(10.0) // 100ms between requests

		require.NoError(t, limiter.Wait(context.Background(), "splib.or.kr"))
		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "splib.or.kr"))
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("returns error when context canceled", func(t *testing.T) {
		t.Parallel()

		limiter := bookhoundhttp.NewHostLimiter(0.001)

		require.NoError(t, limiter.Wait(context.Background(), "splib.or.kr"))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		assert.Error(t, limiter.Wait(ctx, "splib.or.kr"))
	})
}
