// Package crawl implements the crawl command for one-shot article crawls
// from the command line.
package crawl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/wikicrawl/internal/config"
	"github.com/jonesrussell/wikicrawl/internal/database"
	"github.com/jonesrussell/wikicrawl/internal/ingest"
	"github.com/jonesrussell/wikicrawl/internal/logger"
	"github.com/jonesrussell/wikicrawl/internal/summarizer"
	"github.com/jonesrussell/wikicrawl/internal/wiki"
)

// bodyPreviewLen is the number of body characters shown in the table output.
const bodyPreviewLen = 60

// options holds the crawl command flags.
type options struct {
	url     string
	depth   int
	fanout  int
	persist bool
	output  string
}

// Command returns the crawl command.
func Command() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl an article tree from a seed URL",
		Long: `Crawl recursively fetches encyclopedia articles starting from the seed
URL, following in-scope article links up to the configured depth and
fan-out. With --persist the tree is written to the database and a digest
is generated for the root article.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.url, "url", "u", "", "seed article URL (required)")
	cmd.Flags().IntVar(&opts.depth, "depth", -1, "depth budget (overrides config)")
	cmd.Flags().IntVar(&opts.fanout, "fanout", -1, "per-node fan-out limit (overrides config)")
	cmd.Flags().BoolVar(&opts.persist, "persist", false, "persist the tree and generate a digest")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "output format: table or json")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

// run executes the crawl command.
func run(ctx context.Context, opts *options) error {
	cfg := config.LoadFromViper(viper.GetViper())
	applyFlagOverrides(cfg, opts)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(cfg.GetLoggerConfig())
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	crawlerCfg := cfg.GetCrawlerConfig()

	filter, err := wiki.NewLinkFilter(crawlerCfg.BaseURL)
	if err != nil {
		return fmt.Errorf("create link filter: %w", err)
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

	// Interrupt cancels the crawl; the partial tree is still reported.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.persist {
		return runPersist(ctx, cfg, crawler, log, opts)
	}

	tree, err := crawler.Crawl(ctx, opts.url)
	if err != nil {
		if errors.Is(err, wiki.ErrNoResult) {
			return fmt.Errorf("seed article could not be crawled: %s", opts.url)
		}
		return err
	}

	return printTree(tree, opts.output)
}

// runPersist crawls through the ingest service, persisting the tree and
// generating a digest for the root article.
func runPersist(
	ctx context.Context,
	cfg *config.Config,
	crawler *wiki.Crawler,
	log logger.Interface,
	opts *options,
) error {
	db, err := database.NewPostgresConnection(cfg.GetDatabaseConfig())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	var digester ingest.Summarizer
	sumCfg := cfg.GetSummarizerConfig()
	if sumErr := sumCfg.Validate(); sumErr == nil {
		digester = summarizer.NewClient(sumCfg, log)
	} else {
		log.Warn("summarizer disabled", "reason", sumErr.Error())
	}

	service := ingest.NewService(
		database.NewArticleRepository(db),
		database.NewSummaryRepository(db),
		crawler,
		digester,
		sumCfg.Model,
		log,
	)

	article, err := service.Parse(ctx, opts.url)
	if err != nil {
		return err
	}

	fmt.Printf("Persisted article tree rooted at %s (root id %s)\n", article.URL, article.ID)
	return nil
}

// applyFlagOverrides applies command-line bounds on top of the loaded config.
func applyFlagOverrides(cfg *config.Config, opts *options) {
	if opts.depth >= 0 {
		cfg.GetCrawlerConfig().MaxDepth = opts.depth
	}
	if opts.fanout > 0 {
		cfg.GetCrawlerConfig().Fanout = opts.fanout
	}
}

// printTree renders the crawled tree to stdout.
func printTree(tree *wiki.Node, output string) error {
	if output == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(tree)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Depth", "Title", "URL", "Children", "Body"})
	appendRows(t, tree)
	t.Render()

	fmt.Printf("%d article(s) crawled\n", tree.Count())
	return nil
}

// appendRows walks the tree pre-order, one table row per node.
func appendRows(t table.Writer, node *wiki.Node) {
	preview := node.Body
	if len(preview) > bodyPreviewLen {
		preview = preview[:bodyPreviewLen] + "..."
	}

	t.AppendRow(table.Row{node.Depth, node.Title, node.URL, len(node.Children), preview})

	for _, child := range node.Children {
		appendRows(t, child)
	}
}
