package crawler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/wikicrawl/internal/config/crawler"
)

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	cfg := crawler.New()

	assert.Equal(t, crawler.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, crawler.DefaultMaxDepth, cfg.MaxDepth)
	assert.Equal(t, crawler.DefaultFanout, cfg.Fanout)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*crawler.Config)
		wantErr string
	}{
		{"valid defaults", func(*crawler.Config) {}, ""},
		{"zero depth allowed", func(c *crawler.Config) { c.MaxDepth = 0 }, ""},
		{"empty base url", func(c *crawler.Config) { c.BaseURL = "" }, "base_url cannot be empty"},
		{"non-http base url", func(c *crawler.Config) { c.BaseURL = "ftp://example.org" }, "base_url must be http or https"},
		{"negative depth", func(c *crawler.Config) { c.MaxDepth = -1 }, "max_depth cannot be negative"},
		{"zero fanout", func(c *crawler.Config) { c.Fanout = 0 }, "fanout must be positive"},
		{"zero in-flight cap", func(c *crawler.Config) { c.MaxInFlight = 0 }, "max_in_flight must be positive"},
		{"zero timeout", func(c *crawler.Config) { c.RequestTimeout = 0 }, "request_timeout must be positive"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := crawler.New()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
