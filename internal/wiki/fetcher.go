// Package wiki implements the bounded-depth encyclopedia article crawler:
// page fetching, content extraction, article link filtering, and the
// cycle-safe recursive traversal that assembles the article tree.
package wiki

import (
	"context"
	"errors"
	"io"
	"net/http"
)

// maxResponseBodyBytes limits the size of fetched page responses.
const maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB

// Fetcher retrieves raw page markup over HTTP. It performs a single GET per
// call with a bounded timeout and no retries; retry policy belongs to callers.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
}

// NewFetcher creates a new page fetcher.
func NewFetcher(client *http.Client, userAgent string) *Fetcher {
	return &Fetcher{
		httpClient: client,
		userAgent:  userAgent,
	}
}

// Fetch performs a single GET for the given URL and returns the raw document
// body on HTTP 200. Any other outcome is reported as a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if reqErr != nil {
		return nil, &FetchError{Kind: FetchUnreachable, URL: pageURL, Err: reqErr}
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, doErr := f.httpClient.Do(req)
	if doErr != nil {
		return nil, &FetchError{Kind: classifyTransportError(doErr), URL: pageURL, Err: doErr}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Kind: FetchHTTPStatus, URL: pageURL, StatusCode: resp.StatusCode}
	}

	limited := io.LimitReader(resp.Body, maxResponseBodyBytes)

	body, readErr := io.ReadAll(limited)
	if readErr != nil {
		return nil, &FetchError{Kind: classifyTransportError(readErr), URL: pageURL, Err: readErr}
	}

	return body, nil
}

// classifyTransportError distinguishes timeouts from other transport failures.
func classifyTransportError(err error) FetchErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return FetchTimeout
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FetchTimeout
	}

	return FetchUnreachable
}
