package wiki

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selectors for the encyclopedia article layout.
const (
	titleSelector   = "h1#firstHeading"
	contentSelector = "div#mw-content-text"
)

// citationPattern matches bracketed numeric footnote markers such as [1].
var citationPattern = regexp.MustCompile(`\[\d+\]`)

// ExtractedPage is the normalized result of parsing one article page.
type ExtractedPage struct {
	Title string
	Body  string
	// Links holds accepted absolute article URLs in first-occurrence order,
	// duplicates collapsed.
	Links []string
}

// ContentExtractor parses article markup into normalized text and in-scope
// article links using goquery.
type ContentExtractor struct {
	filter *LinkFilter
}

// NewContentExtractor creates a new content extractor using the given link filter.
func NewContentExtractor(filter *LinkFilter) *ContentExtractor {
	return &ContentExtractor{filter: filter}
}

// Extract parses markup and returns the article title, normalized body text,
// and the accepted article links found in the content container.
// Returns *ExtractError when the title heading or content container is absent.
func (e *ContentExtractor) Extract(markup []byte) (*ExtractedPage, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, &ExtractError{Kind: MissingContent}
	}

	heading := doc.Find(titleSelector).First()
	if heading.Length() == 0 {
		return nil, &ExtractError{Kind: MissingTitle}
	}

	content := doc.Find(contentSelector).First()
	if content.Length() == 0 {
		return nil, &ExtractError{Kind: MissingContent}
	}

	return &ExtractedPage{
		Title: strings.TrimSpace(heading.Text()),
		Body:  extractBody(content),
		Links: e.extractLinks(content),
	}, nil
}

// extractBody collects paragraph texts in document order, skips blank
// paragraphs, joins them with a newline, and strips citation markers.
func extractBody(content *goquery.Selection) string {
	var paragraphs []string

	content.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := p.Text()
		if strings.TrimSpace(text) == "" {
			return
		}
		paragraphs = append(paragraphs, text)
	})

	return StripCitations(strings.Join(paragraphs, "\n"))
}

// extractLinks collects accepted article links from anchors in the content
// container, preserving first-occurrence order and collapsing duplicates.
func (e *ContentExtractor) extractLinks(content *goquery.Selection) []string {
	var links []string
	seen := make(map[string]struct{})

	content.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, exists := a.Attr("href")
		if !exists {
			return
		}

		absolute, ok := e.filter.Accept(href)
		if !ok {
			return
		}

		if _, dup := seen[absolute]; dup {
			return
		}
		seen[absolute] = struct{}{}
		links = append(links, absolute)
	})

	return links
}

// StripCitations removes bracketed numeric footnote markers from text.
// Applying it to already-stripped text is a no-op.
func StripCitations(text string) string {
	return citationPattern.ReplaceAllString(text, "")
}
