package wiki

import (
	"errors"
	"fmt"
)

// ErrNoResult is returned by Crawl when the seed article itself could not be
// fetched or extracted. It is the only crawl failure surfaced to callers;
// failures below the seed prune their branch and are not reported.
var ErrNoResult = errors.New("crawl produced no result")

// FetchErrorKind classifies a page fetch failure.
type FetchErrorKind int

const (
	// FetchUnreachable covers connection-level failures.
	FetchUnreachable FetchErrorKind = iota
	// FetchTimeout covers deadline and timeout failures.
	FetchTimeout
	// FetchHTTPStatus covers non-200 HTTP responses.
	FetchHTTPStatus
)

// String returns the string representation of a fetch error kind.
func (k FetchErrorKind) String() string {
	switch k {
	case FetchUnreachable:
		return "unreachable"
	case FetchTimeout:
		return "timeout"
	case FetchHTTPStatus:
		return "http_status"
	default:
		return "unknown"
	}
}

// FetchError reports a failed page fetch.
type FetchError struct {
	Kind       FetchErrorKind
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Kind == FetchHTTPStatus {
		return fmt.Sprintf("fetch %s: http status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// ExtractErrorKind classifies a page extraction failure.
type ExtractErrorKind int

const (
	// MissingTitle means the page has no title heading element.
	MissingTitle ExtractErrorKind = iota
	// MissingContent means the page has no main content container.
	MissingContent
)

// String returns the string representation of an extract error kind.
func (k ExtractErrorKind) String() string {
	switch k {
	case MissingTitle:
		return "missing_title"
	case MissingContent:
		return "missing_content"
	default:
		return "unknown"
	}
}

// ExtractError reports a structurally malformed page.
type ExtractError struct {
	Kind ExtractErrorKind
}

// Error implements the error interface.
func (e *ExtractError) Error() string {
	return "extract: " + e.Kind.String()
}
