// Package server provides server configuration types and functions.
package server

import (
	"errors"
	"time"
)

// Default configuration values
const (
	DefaultAddress      = ":8080"
	DefaultReadTimeout  = 15 * time.Second
	DefaultWriteTimeout = 2 * time.Minute
	DefaultIdleTimeout  = 60 * time.Second
)

// Config represents server-specific configuration settings.
type Config struct {
	// Address is the address to listen on (e.g., ":8080")
	Address string `env:"SERVER_ADDRESS" yaml:"address"`
	// ReadTimeout is the maximum duration for reading the entire request
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" yaml:"read_timeout"`
	// WriteTimeout is the maximum duration before timing out writes of the response.
	// A parse request spans a full crawl plus summarization, so this is generous.
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" yaml:"write_timeout"`
	// IdleTimeout is the maximum amount of time to wait for the next request
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" yaml:"idle_timeout"`
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		Address:      DefaultAddress,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		IdleTimeout:  DefaultIdleTimeout,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Address == "" {
		return errors.New("server address cannot be empty")
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 || c.IdleTimeout <= 0 {
		return errors.New("server timeouts must be positive")
	}
	return nil
}
