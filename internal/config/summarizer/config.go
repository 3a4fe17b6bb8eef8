// Package summarizer provides configuration for the digest generation client.
package summarizer

import (
	"errors"
	"time"
)

// Default configuration values
const (
	// DefaultBaseURL is the Mistral API origin.
	DefaultBaseURL = "https://api.mistral.ai/v1"
	// DefaultModel is the chat model used for digest generation.
	DefaultModel = "mistral-tiny"
	// DefaultTemperature controls generation randomness.
	DefaultTemperature = 0.7
	// DefaultRequestTimeout is the timeout for a single completion call.
	DefaultRequestTimeout = 30 * time.Second
	// DefaultMaxRetries bounds retry attempts on transient API failures.
	DefaultMaxRetries = 2
)

// Config represents summarizer configuration settings.
type Config struct {
	// BaseURL is the chat-completions API origin.
	BaseURL string `env:"MISTRAL_BASE_URL" yaml:"base_url"`
	// APIKey authenticates against the API.
	APIKey string `env:"MISTRAL_API_KEY" json:"-" yaml:"api_key"`
	// Model is the chat model identifier.
	Model string `env:"MISTRAL_MODEL" yaml:"model"`
	// Temperature controls generation randomness, 0 to 1.
	Temperature float64 `env:"MISTRAL_TEMPERATURE" yaml:"temperature"`
	// RequestTimeout is the timeout for each completion call.
	RequestTimeout time.Duration `env:"MISTRAL_REQUEST_TIMEOUT" yaml:"request_timeout"`
	// MaxRetries bounds retry attempts on transient API failures.
	MaxRetries int `env:"MISTRAL_MAX_RETRIES" yaml:"max_retries"`
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		Model:          DefaultModel,
		Temperature:    DefaultTemperature,
		RequestTimeout: DefaultRequestTimeout,
		MaxRetries:     DefaultMaxRetries,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("summarizer API key is required")
	}
	if c.Model == "" {
		return errors.New("summarizer model cannot be empty")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("summarizer request_timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return errors.New("summarizer max_retries cannot be negative")
	}
	return nil
}
