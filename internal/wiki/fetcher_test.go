package wiki_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/wikicrawl/internal/wiki"
)

func TestFetchSuccess(t *testing.T) {
	t.Parallel()

	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	fetcher := wiki.NewFetcher(server.Client(), "wikicrawl-test/1.0")

	body, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", string(body))
	assert.Equal(t, "wikicrawl-test/1.0", gotUserAgent)
}

func TestFetchHTTPStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := wiki.NewFetcher(server.Client(), "wikicrawl-test/1.0")

	_, err := fetcher.Fetch(context.Background(), server.URL)
	require.Error(t, err)

	var fetchErr *wiki.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, wiki.FetchHTTPStatus, fetchErr.Kind)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
}

func TestFetchTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(2 * time.Second)
		_, _ = w.Write([]byte("too late"))
	}))
	defer server.Close()

	fetcher := wiki.NewFetcher(server.Client(), "wikicrawl-test/1.0")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := fetcher.Fetch(ctx, server.URL)
	require.Error(t, err)

	var fetchErr *wiki.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, wiki.FetchTimeout, fetchErr.Kind)
}

func TestFetchUnreachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("gone"))
	}))
	server.Close()

	fetcher := wiki.NewFetcher(http.DefaultClient, "wikicrawl-test/1.0")

	_, err := fetcher.Fetch(context.Background(), server.URL)
	require.Error(t, err)

	var fetchErr *wiki.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, wiki.FetchUnreachable, fetchErr.Kind)
}
