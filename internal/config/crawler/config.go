// Package crawler provides configuration for the article crawler component.
// It covers crawl depth, per-node fan-out, concurrency, and the base site
// used to resolve and scope article links.
package crawler

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Default configuration values
const (
	// DefaultBaseURL is the encyclopedia origin crawled by default.
	DefaultBaseURL = "https://en.wikipedia.org"
	// DefaultMaxDepth is the default depth budget for a crawl run.
	DefaultMaxDepth = 5
	// DefaultFanout is the default number of child links expanded per node.
	DefaultFanout = 3
	// DefaultMaxInFlight caps concurrent fetches across a whole crawl run.
	DefaultMaxInFlight = 8
	// DefaultRequestTimeout is the timeout for a single page fetch.
	DefaultRequestTimeout = 15 * time.Second
	// DefaultUserAgent identifies the crawler to the target site.
	DefaultUserAgent = "wikicrawl/1.0"
)

// Config represents the crawler configuration.
type Config struct {
	// BaseURL is the site origin relative article links resolve against.
	BaseURL string `env:"CRAWLER_BASE_URL" yaml:"base_url"`
	// MaxDepth is the depth budget; the seed article is depth 0.
	MaxDepth int `env:"CRAWLER_MAX_DEPTH" yaml:"max_depth"`
	// Fanout is the maximum number of child links expanded per node.
	Fanout int `env:"CRAWLER_FANOUT" yaml:"fanout"`
	// MaxInFlight is the global cap on concurrent page fetches per run.
	MaxInFlight int `env:"CRAWLER_MAX_IN_FLIGHT" yaml:"max_in_flight"`
	// RequestTimeout is the timeout for each page fetch.
	RequestTimeout time.Duration `env:"CRAWLER_REQUEST_TIMEOUT" yaml:"request_timeout"`
	// UserAgent is the user agent sent with page fetches.
	UserAgent string `env:"CRAWLER_USER_AGENT" yaml:"user_agent"`
}

// New creates a new Config instance with default values.
func New() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		MaxDepth:       DefaultMaxDepth,
		Fanout:         DefaultFanout,
		MaxInFlight:    DefaultMaxInFlight,
		RequestTimeout: DefaultRequestTimeout,
		UserAgent:      DefaultUserAgent,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url cannot be empty")
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base_url must be http or https, got %q", parsed.Scheme)
	}
	if c.MaxDepth < 0 {
		return errors.New("max_depth cannot be negative")
	}
	if c.Fanout <= 0 {
		return errors.New("fanout must be positive")
	}
	if c.MaxInFlight <= 0 {
		return errors.New("max_in_flight must be positive")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request_timeout must be positive")
	}
	return nil
}
