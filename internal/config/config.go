// Package config provides configuration management for the wikicrawl
// application. Values are resolved from YAML config files, environment
// variables, and defaults via Viper.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/jonesrussell/wikicrawl/internal/config/crawler"
	dbconfig "github.com/jonesrussell/wikicrawl/internal/config/database"
	"github.com/jonesrussell/wikicrawl/internal/config/server"
	"github.com/jonesrussell/wikicrawl/internal/config/summarizer"
	"github.com/jonesrussell/wikicrawl/internal/logger"
)

// Interface defines the interface for configuration management.
type Interface interface {
	// GetServerConfig returns the server configuration.
	GetServerConfig() *server.Config
	// GetCrawlerConfig returns the crawler configuration.
	GetCrawlerConfig() *crawler.Config
	// GetDatabaseConfig returns the database configuration.
	GetDatabaseConfig() *dbconfig.Config
	// GetSummarizerConfig returns the summarizer configuration.
	GetSummarizerConfig() *summarizer.Config
	// GetLoggerConfig returns the logger configuration.
	GetLoggerConfig() *logger.Config
	// Validate validates the configuration.
	Validate() error
}

// Ensure Config implements Interface
var _ Interface = (*Config)(nil)

// Config represents the application configuration.
type Config struct {
	// Server holds server-specific configuration
	Server *server.Config `yaml:"server"`
	// Crawler holds crawler-specific configuration
	Crawler *crawler.Config `yaml:"crawler"`
	// Database holds database configuration
	Database *dbconfig.Config `yaml:"database"`
	// Summarizer holds digest generation configuration
	Summarizer *summarizer.Config `yaml:"summarizer"`
	// Logger holds logger configuration
	Logger *logger.Config `yaml:"logger"`
}

// LoadFromViper builds the application configuration from the global Viper
// state. Environment variables take precedence over config file values.
func LoadFromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Server:     server.NewConfig(),
		Crawler:    crawler.New(),
		Database:   dbconfig.LoadFromViper(v),
		Summarizer: summarizer.NewConfig(),
		Logger:     &logger.Config{},
	}

	applyServer(cfg.Server, v)
	applyCrawler(cfg.Crawler, v)
	applySummarizer(cfg.Summarizer, v)
	applyLogger(cfg.Logger, v)

	return cfg
}

// applyServer overrides server defaults with configured values.
func applyServer(cfg *server.Config, v *viper.Viper) {
	if addr := v.GetString("server.address"); addr != "" {
		cfg.Address = addr
	}
	setDuration(&cfg.ReadTimeout, v, "server.read_timeout")
	setDuration(&cfg.WriteTimeout, v, "server.write_timeout")
	setDuration(&cfg.IdleTimeout, v, "server.idle_timeout")
}

// applyCrawler overrides crawler defaults with configured values.
func applyCrawler(cfg *crawler.Config, v *viper.Viper) {
	if base := v.GetString("crawler.base_url"); base != "" {
		cfg.BaseURL = base
	}
	if v.IsSet("crawler.max_depth") {
		cfg.MaxDepth = v.GetInt("crawler.max_depth")
	}
	if v.IsSet("crawler.fanout") {
		cfg.Fanout = v.GetInt("crawler.fanout")
	}
	if v.IsSet("crawler.max_in_flight") {
		cfg.MaxInFlight = v.GetInt("crawler.max_in_flight")
	}
	setDuration(&cfg.RequestTimeout, v, "crawler.request_timeout")
	if ua := v.GetString("crawler.user_agent"); ua != "" {
		cfg.UserAgent = ua
	}
}

// applySummarizer overrides summarizer defaults with configured values.
func applySummarizer(cfg *summarizer.Config, v *viper.Viper) {
	if base := v.GetString("summarizer.base_url"); base != "" {
		cfg.BaseURL = base
	}
	cfg.APIKey = v.GetString("summarizer.api_key")
	if model := v.GetString("summarizer.model"); model != "" {
		cfg.Model = model
	}
	if v.IsSet("summarizer.temperature") {
		cfg.Temperature = v.GetFloat64("summarizer.temperature")
	}
	setDuration(&cfg.RequestTimeout, v, "summarizer.request_timeout")
	if v.IsSet("summarizer.max_retries") {
		cfg.MaxRetries = v.GetInt("summarizer.max_retries")
	}
}

// applyLogger overrides logger defaults with configured values.
func applyLogger(cfg *logger.Config, v *viper.Viper) {
	cfg.Level = logger.Level(v.GetString("logger.level"))
	cfg.Encoding = v.GetString("logger.encoding")
	cfg.Development = v.GetBool("logger.development")
}

// setDuration sets dst from the Viper key when a positive duration is configured.
func setDuration(dst *time.Duration, v *viper.Viper, key string) {
	if d := v.GetDuration(key); d > 0 {
		*dst = d
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Crawler.Validate(); err != nil {
		return fmt.Errorf("crawler: %w", err)
	}
	return nil
}

// GetServerConfig returns the server configuration.
func (c *Config) GetServerConfig() *server.Config {
	return c.Server
}

// GetCrawlerConfig returns the crawler configuration.
func (c *Config) GetCrawlerConfig() *crawler.Config {
	return c.Crawler
}

// GetDatabaseConfig returns the database configuration.
func (c *Config) GetDatabaseConfig() *dbconfig.Config {
	return c.Database
}

// GetSummarizerConfig returns the summarizer configuration.
func (c *Config) GetSummarizerConfig() *summarizer.Config {
	return c.Summarizer
}

// GetLoggerConfig returns the logger configuration.
func (c *Config) GetLoggerConfig() *logger.Config {
	return c.Logger
}
