package wiki

import (
	"fmt"
	"net/url"
	"strings"
)

// articlePathPrefix is the path prefix of encyclopedia article pages.
const articlePathPrefix = "/wiki/"

// namespaceSeparator marks service pages (Category:, Talk:, File:, and so on).
const namespaceSeparator = ":"

// LinkFilter classifies raw hrefs as in-scope article links and resolves
// accepted ones against the site origin. The filter is intentionally
// conservative: dropping a valid article link is acceptable, following a
// non-article page is not.
type LinkFilter struct {
	base *url.URL
}

// NewLinkFilter creates a link filter scoped to the given site origin.
func NewLinkFilter(baseURL string) (*LinkFilter, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", baseURL)
	}
	return &LinkFilter{base: base}, nil
}

// Accept reports whether rawHref is an in-scope article link. When accepted,
// the href is resolved against the base origin and the absolute URL returned.
func (f *LinkFilter) Accept(rawHref string) (string, bool) {
	if !strings.HasPrefix(rawHref, articlePathPrefix) {
		return "", false
	}
	if strings.Contains(rawHref, namespaceSeparator) {
		return "", false
	}

	ref, err := url.Parse(rawHref)
	if err != nil {
		return "", false
	}

	// Fragments address sections within a page; drop them so every article
	// has one canonical URL in the visited set.
	ref.Fragment = ""

	return f.base.ResolveReference(ref).String(), true
}
