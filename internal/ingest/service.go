// Package ingest orchestrates a crawl run end to end: duplicate-seed check,
// tree construction, flattening the tree into the article store, and digest
// generation for the root article.
package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonesrussell/wikicrawl/internal/database"
	"github.com/jonesrussell/wikicrawl/internal/domain"
	"github.com/jonesrussell/wikicrawl/internal/logger"
	"github.com/jonesrussell/wikicrawl/internal/wiki"
)

// ErrAlreadyExists is returned when the seed URL is already recorded.
// Callers check this before a crawl is launched, so no crawl work is wasted.
var ErrAlreadyExists = errors.New("article already exists")

// CrawlRunner builds an article tree from a seed URL.
type CrawlRunner interface {
	Crawl(ctx context.Context, seedURL string) (*wiki.Node, error)
}

// Summarizer produces a digest for article text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Service ties the crawler, repositories, and summarizer together.
type Service struct {
	articles   database.ArticleRepositoryInterface
	summaries  database.SummaryRepositoryInterface
	crawler    CrawlRunner
	summarizer Summarizer
	model      string
	log        logger.Interface
}

// NewService creates a new ingest service. The summarizer may be nil, in
// which case digest generation is skipped.
func NewService(
	articles database.ArticleRepositoryInterface,
	summaries database.SummaryRepositoryInterface,
	crawler CrawlRunner,
	summarizer Summarizer,
	model string,
	log logger.Interface,
) *Service {
	return &Service{
		articles:   articles,
		summaries:  summaries,
		crawler:    crawler,
		summarizer: summarizer,
		model:      model,
		log:        log.WithComponent("ingest"),
	}
}

// Parse crawls from seedURL, persists the resulting tree, and generates a
// digest for the root article. A summarizer failure leaves the articles
// persisted with the digest absent; that is a valid end state.
func (s *Service) Parse(ctx context.Context, seedURL string) (*domain.Article, error) {
	exists, err := s.articles.ExistsByURL(ctx, seedURL)
	if err != nil {
		return nil, fmt.Errorf("check existing article: %w", err)
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	tree, err := s.crawler.Crawl(ctx, seedURL)
	if err != nil {
		return nil, fmt.Errorf("crawl %s: %w", seedURL, err)
	}

	root, err := s.persistTree(ctx, tree, nil)
	if err != nil {
		return nil, err
	}

	s.generateDigest(ctx, root)

	return root, nil
}

// persistTree stores the tree in pre-order, assigning each child its parent's
// record ID. Parent linkage exists only in storage; the in-memory tree keeps
// pure ownership.
func (s *Service) persistTree(ctx context.Context, node *wiki.Node, parentID *string) (*domain.Article, error) {
	article := &domain.Article{
		URL:      node.URL,
		Title:    node.Title,
		Body:     node.Body,
		Depth:    node.Depth,
		ParentID: parentID,
	}

	if err := s.articles.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("persist article %s: %w", node.URL, err)
	}

	for _, child := range node.Children {
		if _, err := s.persistTree(ctx, child, &article.ID); err != nil {
			return nil, err
		}
	}

	return article, nil
}

// generateDigest summarizes the root article body and persists the result.
// Failures are logged and swallowed; they do not invalidate the crawl.
func (s *Service) generateDigest(ctx context.Context, root *domain.Article) {
	if s.summarizer == nil {
		return
	}

	digest, err := s.summarizer.Summarize(ctx, root.Body)
	if err != nil {
		s.log.Warn("digest generation failed",
			"article_id", root.ID,
			"error", err.Error(),
		)
		return
	}

	summary := &domain.Summary{
		ArticleID: root.ID,
		Body:      digest,
		Model:     s.model,
	}
	if err := s.summaries.Create(ctx, summary); err != nil {
		s.log.Error("persist digest failed",
			"article_id", root.ID,
			"error", err.Error(),
		)
		return
	}

	s.log.Info("digest persisted", "article_id", root.ID, "summary_id", summary.ID)
}

// GetSummary returns the digest for the article recorded at the given URL.
func (s *Service) GetSummary(ctx context.Context, url string) (*domain.Summary, error) {
	article, err := s.articles.GetByURL(ctx, url)
	if err != nil {
		return nil, err
	}

	return s.summaries.GetByArticleID(ctx, article.ID)
}
