package wiki

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/jonesrussell/wikicrawl/internal/logger"
)

// Node is one article in the crawled tree. A node owns its children
// exclusively; parent linkage is reintroduced by the persistence layer.
type Node struct {
	URL      string  `json:"url"`
	Title    string  `json:"title"`
	Body     string  `json:"body"`
	Depth    int     `json:"depth"`
	Children []*Node `json:"children"`
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, child := range n.Children {
		total += child.Count()
	}
	return total
}

// PageFetcher retrieves raw markup for a URL.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) ([]byte, error)
}

// PageExtractor parses markup into a normalized page.
type PageExtractor interface {
	Extract(markup []byte) (*ExtractedPage, error)
}

// Config holds the traversal bounds for a crawler.
type Config struct {
	// MaxDepth is the depth budget; the seed is depth 0.
	MaxDepth int
	// Fanout is the maximum number of child links expanded per node.
	Fanout int
	// MaxInFlight caps concurrent fetches across the whole run.
	MaxInFlight int
}

// Crawler drives the bounded-depth, cycle-safe traversal. Sibling branches
// run concurrently; tree shape and content match the sequential traversal.
type Crawler struct {
	fetcher   PageFetcher
	extractor PageExtractor
	log       logger.Interface
	cfg       Config
}

// NewCrawler creates a new crawler.
func NewCrawler(fetcher PageFetcher, extractor PageExtractor, log logger.Interface, cfg Config) *Crawler {
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = 1
	}
	return &Crawler{
		fetcher:   fetcher,
		extractor: extractor,
		log:       log,
		cfg:       cfg,
	}
}

// Crawl builds the article tree starting from seedURL. Branch failures prune
// the branch silently; only a seed that yields nothing is reported, as
// ErrNoResult. Cancelling ctx stops issuing fetches and returns the partial
// tree finalized so far.
func (c *Crawler) Crawl(ctx context.Context, seedURL string) (*Node, error) {
	run := &crawlRun{
		crawler: c,
		visited: NewVisitedSet(),
		sem:     semaphore.NewWeighted(int64(c.cfg.MaxInFlight)),
		log:     c.log.With("run_id", uuid.New().String()),
	}

	run.log.Info("crawl started",
		"seed", seedURL,
		"max_depth", c.cfg.MaxDepth,
		"fanout", c.cfg.Fanout,
	)

	root := run.branch(ctx, seedURL, 0)
	if root == nil {
		run.log.Warn("crawl produced no result", "seed", seedURL)
		return nil, ErrNoResult
	}

	run.log.Info("crawl finished", "seed", seedURL, "nodes", root.Count())
	return root, nil
}

// crawlRun carries the per-run shared state: the visited set and the global
// fetch semaphore. Everything else is branch-local.
type crawlRun struct {
	crawler *Crawler
	visited *VisitedSet
	sem     *semaphore.Weighted
	log     logger.Interface
}

// branch expands one URL at the given depth and returns its subtree, or nil
// when the branch is pruned (already visited, over budget, fetch or extract
// failure, or cancellation). Pruning is a normal outcome, not an error.
func (r *crawlRun) branch(ctx context.Context, pageURL string, depth int) *Node {
	if depth > r.crawler.cfg.MaxDepth {
		return nil
	}

	// Claim before fetching so concurrent branches discovering the same URL
	// expand it at most once.
	if !r.visited.Claim(pageURL) {
		r.log.Debug("branch pruned", "url", pageURL, "reason", "already_visited")
		return nil
	}

	page := r.fetchAndExtract(ctx, pageURL)
	if page == nil {
		return nil
	}

	node := &Node{
		URL:   pageURL,
		Title: page.Title,
		Body:  page.Body,
		Depth: depth,
	}

	// A node at the depth limit is finalized without attempting expansion.
	if depth == r.crawler.cfg.MaxDepth {
		return node
	}

	links := page.Links
	if len(links) > r.crawler.cfg.Fanout {
		links = links[:r.crawler.cfg.Fanout]
	}

	// Children are collected into slots indexed by issue order so the tree
	// order follows link discovery order, not fetch completion order.
	results := make([]*Node, len(links))

	var g errgroup.Group
	for i, link := range links {
		i, link := i, link
		g.Go(func() error {
			results[i] = r.branch(ctx, link, depth+1)
			return nil
		})
	}
	_ = g.Wait()

	for _, child := range results {
		if child != nil {
			node.Children = append(node.Children, child)
		}
	}

	return node
}

// fetchAndExtract fetches and parses one page under the run-wide fetch cap.
// Returns nil when the branch should be pruned.
func (r *crawlRun) fetchAndExtract(ctx context.Context, pageURL string) *ExtractedPage {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		// Context cancelled while waiting; stop issuing fetches.
		return nil
	}

	markup, fetchErr := r.crawler.fetcher.Fetch(ctx, pageURL)
	r.sem.Release(1)
	if fetchErr != nil {
		r.log.Debug("branch pruned", "url", pageURL, "reason", "fetch_failed", "error", fetchErr.Error())
		return nil
	}

	page, extractErr := r.crawler.extractor.Extract(markup)
	if extractErr != nil {
		r.log.Debug("branch pruned", "url", pageURL, "reason", "extract_failed", "error", extractErr.Error())
		return nil
	}

	return page
}
