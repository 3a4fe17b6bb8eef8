package wiki_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/wikicrawl/internal/wiki"
)

func TestLinkFilterAccept(t *testing.T) {
	t.Parallel()

	filter, err := wiki.NewLinkFilter("https://example.org")
	require.NoError(t, err)

	tests := []struct {
		name     string
		href     string
		want     string
		accepted bool
	}{
		// Accepted article links
		{"plain article", "/wiki/Go", "https://example.org/wiki/Go", true},
		{
			"article with parentheses",
			"/wiki/Python_(programming_language)",
			"https://example.org/wiki/Python_(programming_language)",
			true,
		},
		{"relative href resolves against base", "/wiki/Foo", "https://example.org/wiki/Foo", true},
		{"section fragment stripped", "/wiki/Foo#History", "https://example.org/wiki/Foo", true},

		// Namespace pages
		{"category page", "/wiki/Category:Programming", "", false},
		{"talk page", "/wiki/Talk:Python", "", false},
		{"file page", "/wiki/File:Logo.svg", "", false},

		// Wrong prefix
		{"protocol-relative external", "//other.site/wiki/X", "", false},
		{"index.php link", "/w/index.php?title=X", "", false},
		{"absolute external", "https://other.site/wiki/X", "", false},
		{"anchor", "#History", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, accepted := filter.Accept(tt.href)
			assert.Equal(t, tt.accepted, accepted)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLinkFilterCanonicalAcrossFragments(t *testing.T) {
	t.Parallel()

	filter, err := wiki.NewLinkFilter("https://example.org")
	require.NoError(t, err)

	plain, ok := filter.Accept("/wiki/Foo")
	require.True(t, ok)
	section, ok := filter.Accept("/wiki/Foo#History")
	require.True(t, ok)

	// Section links and the plain article link share one canonical URL, so
	// the article cannot be expanded twice under fragment-differing URLs.
	assert.Equal(t, plain, section)
}

func TestNewLinkFilterRejectsRelativeBase(t *testing.T) {
	t.Parallel()

	_, err := wiki.NewLinkFilter("example.org")
	assert.Error(t, err)
}
