package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/grail"
	grailhttp "github.com/fwojciec/grail/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() grailhttp.Option {
	return grailhttp.WithRetryWait(time.Millisecond, 5*time.Millisecond)
}

func TestClient_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html><body>Rune list</body></html>"))
		}))
		defer server.Close()

		client := grailhttp.NewClient()
		defer client.Close()

		body, err := client.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Rune list</body></html>", body)
	})

	t.Run("sends user agent and query params", func(t *testing.T) {
		t.Parallel()

		var gotUA, gotPage string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			gotPage = r.URL.Query().Get("page")
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		client := grailhttp.NewClient(grailhttp.WithUserAgent("grail-test"))
		defer client.Close()

		_, err := client.Get(context.Background(), server.URL, map[string]string{"page": "Unique_Armor"})
		require.NoError(t, err)
		assert.Equal(t, "grail-test", gotUA)
		assert.Equal(t, "Unique_Armor", gotPage)
	})

	t.Run("retries transient server errors", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte("recovered"))
		}))
		defer server.Close()

		client := grailhttp.NewClient(fastRetry())
		defer client.Close()

		body, err := client.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "recovered", body)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("reports exhausted throttling as status error", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := grailhttp.NewClient(grailhttp.WithRetries(2), fastRetry())
		defer client.Close()

		_, err := client.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, http.StatusTooManyRequests, grail.StatusCode(err))
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("does not retry forbidden", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := grailhttp.NewClient(fastRetry())
		defer client.Close()

		_, err := client.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, grail.StatusCode(err))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		client := grailhttp.NewClient(grailhttp.WithTimeout(10*time.Millisecond), grailhttp.WithRetries(0))
		defer client.Close()

		_, err := client.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		client := grailhttp.NewClient(grailhttp.WithRetries(0), grailhttp.WithRateLimit(1))
		defer client.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.Fetch(ctx, server.URL)
		require.Error(t, err)
	})
}
