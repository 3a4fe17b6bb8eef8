// Package cmd implements the command-line interface for wikicrawl.
// It provides the root command and subcommands for crawling encyclopedia
// articles and serving the HTTP API.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/wikicrawl/cmd/crawl"
	"github.com/jonesrussell/wikicrawl/cmd/httpd"
	"github.com/jonesrussell/wikicrawl/internal/config/crawler"
	"github.com/jonesrussell/wikicrawl/internal/config/summarizer"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug mode for all commands
	Debug bool

	// rootCmd represents the root command for the wikicrawl CLI.
	rootCmd = &cobra.Command{
		Use:   "wikicrawl",
		Short: "An encyclopedia article crawler with digest generation",
		Long: `wikicrawl recursively crawls encyclopedia articles from a seed URL,
persists the resulting article tree, and generates an AI digest of the
root article.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	// Load .env file early so environment variables are available
	_ = godotenv.Load()

	// Parse flags early to get debug flag before creating logger
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug mode")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("wikicrawl version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(crawl.Command())
	rootCmd.AddCommand(httpd.Command())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Environment variables take precedence over config file values.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Config file is optional; defaults and environment variables suffice.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config file not found: %v (using defaults and environment variables)\n", err)
	}

	if err := bindEnvVars(); err != nil {
		return err
	}

	setupDevelopmentLogging()

	return nil
}

// bindEnvVars maps well-known environment variables to config keys.
func bindEnvVars() error {
	bindings := map[string][]string{
		"app.environment":     {"APP_ENV"},
		"app.debug":           {"APP_DEBUG"},
		"logger.level":        {"LOG_LEVEL"},
		"logger.encoding":     {"LOG_FORMAT"},
		"crawler.base_url":    {"CRAWLER_BASE_URL"},
		"summarizer.api_key":  {"MISTRAL_API_KEY"},
		"summarizer.model":    {"MISTRAL_MODEL"},
		"summarizer.base_url": {"MISTRAL_BASE_URL"},
	}

	for key, envVars := range bindings {
		if err := viper.BindEnv(append([]string{key}, envVars...)...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", envVars[0], err)
		}
	}

	return nil
}

// setupDevelopmentLogging configures development logging settings based on
// environment and the debug flag.
func setupDevelopmentLogging() {
	debugFlag := Debug || viper.GetBool("app.debug")
	isDev := viper.GetString("app.environment") == "development"

	if debugFlag {
		viper.Set("logger.level", "debug")
	}

	if isDev {
		viper.Set("logger.development", true)
		viper.Set("logger.encoding", "console")
	}

	Debug = debugFlag
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app", map[string]any{
		"name":        "wikicrawl",
		"version":     "1.0.0",
		"environment": "production",
		"debug":       false,
	})

	viper.SetDefault("logger", map[string]any{
		"level":       "info",
		"development": false,
		"encoding":    "json",
	})

	viper.SetDefault("server", map[string]any{
		"address":       ":8080",
		"read_timeout":  "15s",
		"write_timeout": "2m",
		"idle_timeout":  "60s",
	})

	viper.SetDefault("crawler", map[string]any{
		"base_url":        crawler.DefaultBaseURL,
		"max_depth":       crawler.DefaultMaxDepth,
		"fanout":          crawler.DefaultFanout,
		"max_in_flight":   crawler.DefaultMaxInFlight,
		"request_timeout": "15s",
		"user_agent":      crawler.DefaultUserAgent,
	})

	viper.SetDefault("summarizer", map[string]any{
		"base_url":        summarizer.DefaultBaseURL,
		"model":           summarizer.DefaultModel,
		"temperature":     summarizer.DefaultTemperature,
		"request_timeout": "30s",
		"max_retries":     summarizer.DefaultMaxRetries,
	})
}
