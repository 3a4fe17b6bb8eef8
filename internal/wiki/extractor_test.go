package wiki_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/wikicrawl/internal/wiki"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Go - Encyclopedia</title></head>
<body>
<h1 id="firstHeading">Go (programming language)</h1>
<div id="mw-content-text">
	<p>Go is a statically typed language.[1]</p>
	<p>   </p>
	<p>It was designed at Google.[2][13]</p>
	<a href="/wiki/Compiler">Compiler</a>
	<a href="/wiki/Category:Languages">Category</a>
	<a href="/wiki/Type_system">Type system</a>
	<a href="/wiki/Compiler">Compiler again</a>
	<a href="https://other.site/wiki/External">External</a>
</div>
</body>
</html>`

const missingTitleHTML = `<html><body>
<div id="mw-content-text"><p>Orphan content.</p></div>
</body></html>`

const missingContentHTML = `<html><body>
<h1 id="firstHeading">Lonely Title</h1>
</body></html>`

func newTestExtractor(t *testing.T) *wiki.ContentExtractor {
	t.Helper()

	filter, err := wiki.NewLinkFilter("https://example.org")
	require.NoError(t, err)

	return wiki.NewContentExtractor(filter)
}

func TestExtractFullPage(t *testing.T) {
	t.Parallel()

	page, err := newTestExtractor(t).Extract([]byte(articleHTML))
	require.NoError(t, err)

	assert.Equal(t, "Go (programming language)", page.Title)
	assert.Equal(t, "Go is a statically typed language.\nIt was designed at Google.", page.Body)
	assert.Equal(t, []string{
		"https://example.org/wiki/Compiler",
		"https://example.org/wiki/Type_system",
	}, page.Links)
}

func TestExtractMissingTitle(t *testing.T) {
	t.Parallel()

	_, err := newTestExtractor(t).Extract([]byte(missingTitleHTML))
	require.Error(t, err)

	var extractErr *wiki.ExtractError
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, wiki.MissingTitle, extractErr.Kind)
}

func TestExtractMissingContent(t *testing.T) {
	t.Parallel()

	_, err := newTestExtractor(t).Extract([]byte(missingContentHTML))
	require.Error(t, err)

	var extractErr *wiki.ExtractError
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, wiki.MissingContent, extractErr.Kind)
}

func TestStripCitations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single marker", "Fact.[1]", "Fact."},
		{"multi-digit marker", "Fact.[42]", "Fact."},
		{"adjacent markers", "Fact.[1][2][3]", "Fact."},
		{"no markers", "Plain text.", "Plain text."},
		{"non-numeric bracket kept", "See [note] here.", "See [note] here."},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := wiki.StripCitations(tt.input)
			assert.Equal(t, tt.want, got)

			// Stripping is idempotent.
			assert.Equal(t, got, wiki.StripCitations(got))
		})
	}
}
