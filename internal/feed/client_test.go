package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trade-journal-go/internal/config"
)

func newTestClient(baseURL string) *RestClient {
	return NewRestClient(&config.Feed{
		BaseURL:        baseURL,
		ApiKey:         "test-key",
		RateLimit:      1000,
		RateLimitBurst: 10,
	}, zap.NewNop())
}

func TestDailyCloses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/daily", r.URL.Path)
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		assert.Equal(t, "5", r.URL.Query().Get("days"))
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"symbol":"AAPL","candles":[
			{"date":"2026-08-25","close":101.5},
			{"date":"not-a-date","close":55},
			{"date":"2026-08-26","close":102.25}
		]}`)
	}))
	defer srv.Close()

	points, err := newTestClient(srv.URL).DailyCloses(context.Background(), "AAPL", 5)
	require.NoError(t, err)

	// The malformed candle is skipped, not fatal.
	require.Len(t, points, 2)
	assert.Equal(t, 101.5, points[0].Close)
	assert.Equal(t, time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC), points[1].Date)
}

func TestDailyClosesRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"symbol":"AAPL","candles":[{"date":"2026-08-26","close":100}]}`)
	}))
	defer srv.Close()

	points, err := newTestClient(srv.URL).DailyCloses(context.Background(), "AAPL", 1)
	require.NoError(t, err)
	assert.Len(t, points, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDailyClosesPermanentFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown symbol", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).DailyCloses(context.Background(), "NOPE", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestDailyClosesRejectsBadDays(t *testing.T) {
	_, err := newTestClient("http://localhost").DailyCloses(context.Background(), "AAPL", 0)
	assert.Error(t, err)
}
