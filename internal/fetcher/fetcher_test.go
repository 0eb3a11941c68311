package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFetch_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<table class="local"><tr><td>1</td><td>Лом</td></tr></table>`))
	}))
	defer server.Close()

	f := NewPageFetcher(server.URL, 5*time.Second, zap.NewNop())
	body, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Contains(t, body, "Лом")
}

func TestFetch_DecodesWindows1251(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=windows-1251")
		// "Лом" in windows-1251
		w.Write([]byte{'<', 'p', '>', 0xCB, 0xEE, 0xEC, '<', '/', 'p', '>'})
	}))
	defer server.Close()

	f := NewPageFetcher(server.URL, 5*time.Second, zap.NewNop())
	body, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "<p>Лом</p>", body)
}

func TestFetch_ServiceUnavailable(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	f := NewPageFetcher(server.URL, 5*time.Second, zap.NewNop())
	_, err := f.Fetch(context.Background())

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Equal(t, "503 Service Unavailable", fetchErr.Status)
	require.Contains(t, err.Error(), "503")
	require.Equal(t, 1, calls, "failed fetch must not be retried")
}

func TestFetch_Timeout(t *testing.T) {
	done := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()
	defer close(done)

	f := NewPageFetcher(server.URL, 50*time.Millisecond, zap.NewNop())
	_, err := f.Fetch(context.Background())

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Empty(t, fetchErr.Status)
	require.Error(t, fetchErr.Err)
}
