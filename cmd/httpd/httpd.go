// Package httpd implements the HTTP server command for the crawler service.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/wikicrawl/internal/api"
	"github.com/jonesrussell/wikicrawl/internal/config"
	"github.com/jonesrussell/wikicrawl/internal/database"
	"github.com/jonesrussell/wikicrawl/internal/ingest"
	"github.com/jonesrussell/wikicrawl/internal/logger"
	"github.com/jonesrussell/wikicrawl/internal/summarizer"
	"github.com/jonesrussell/wikicrawl/internal/wiki"
)

const (
	signalChannelBufferSize = 1
	errorChannelBufferSize  = 1
	defaultShutdownTimeout  = 30 * time.Second
)

// Command returns the httpd command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Start the HTTP API server",
		Long:  `Start the HTTP API server exposing parse and summary endpoints.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Start()
		},
	}
}

// Start starts the HTTP server and runs until interrupted.
// It handles graceful shutdown on SIGINT or SIGTERM signals.
func Start() error {
	cfg := config.LoadFromViper(viper.GetViper())
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(cfg.GetLoggerConfig())
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	db, err := database.NewPostgresConnection(cfg.GetDatabaseConfig())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	service, err := buildIngestService(cfg, db, log)
	if err != nil {
		return err
	}

	handler := api.NewArticlesHandler(service, log)
	router := api.NewRouter(log, handler, db.DB)
	server := api.NewServer(cfg.GetServerConfig(), router)

	log.Info("Starting HTTP server", "addr", cfg.GetServerConfig().Address)
	errChan := make(chan error, errorChannelBufferSize)
	go func() {
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()

	return runUntilInterrupt(log, server, errChan)
}

// buildIngestService wires the crawler, repositories, and summarizer into
// the ingest service.
func buildIngestService(cfg *config.Config, db *sqlx.DB, log logger.Interface) (*ingest.Service, error) {
	crawlerCfg := cfg.GetCrawlerConfig()

	filter, err := wiki.NewLinkFilter(crawlerCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("create link filter: %w", err)
	}

	fetcher := wiki.NewFetcher(
		&http.Client{Timeout: crawlerCfg.RequestTimeout},
		crawlerCfg.UserAgent,
	)
	crawler := wiki.NewCrawler(fetcher, wiki.NewContentExtractor(filter), log, wiki.Config{
		MaxDepth:    crawlerCfg.MaxDepth,
		Fanout:      crawlerCfg.Fanout,
		MaxInFlight: crawlerCfg.MaxInFlight,
	})

	// Without an API key the service still crawls and persists; digests are
	// simply absent.
	var digester ingest.Summarizer
	sumCfg := cfg.GetSummarizerConfig()
	if sumErr := sumCfg.Validate(); sumErr == nil {
		digester = summarizer.NewClient(sumCfg, log)
	} else {
		log.Warn("summarizer disabled", "reason", sumErr.Error())
	}

	return ingest.NewService(
		database.NewArticleRepository(db),
		database.NewSummaryRepository(db),
		crawler,
		digester,
		sumCfg.Model,
		log,
	), nil
}

// runUntilInterrupt runs the server until interrupted by signal or error.
func runUntilInterrupt(log logger.Interface, server *http.Server, errChan chan error) error {
	sigChan := make(chan os.Signal, signalChannelBufferSize)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case serverErr := <-errChan:
		log.Error("Server error", "error", serverErr)
		return fmt.Errorf("server error: %w", serverErr)
	case sig := <-sigChan:
		return shutdownServer(log, server, sig)
	}
}

// shutdownServer performs graceful shutdown of the server.
func shutdownServer(log logger.Interface, server *http.Server, sig os.Signal) error {
	log.Info("Shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	log.Info("Stopping HTTP server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to stop server", "error", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	log.Info("Server stopped successfully")
	return nil
}
