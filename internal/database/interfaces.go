package database

import (
	"context"
	"errors"

	"github.com/jonesrussell/wikicrawl/internal/domain"
)

// Sentinel errors returned by repositories.
var (
	// ErrArticleNotFound is returned when no article matches the lookup.
	ErrArticleNotFound = errors.New("article not found")
	// ErrSummaryNotFound is returned when an article has no summary.
	ErrSummaryNotFound = errors.New("summary not found")
)

// ArticleRepositoryInterface defines database operations for articles.
type ArticleRepositoryInterface interface {
	Create(ctx context.Context, article *domain.Article) error
	GetByURL(ctx context.Context, url string) (*domain.Article, error)
	ExistsByURL(ctx context.Context, url string) (bool, error)
	ListByParent(ctx context.Context, parentID string) ([]*domain.Article, error)
}

// SummaryRepositoryInterface defines database operations for summaries.
type SummaryRepositoryInterface interface {
	Create(ctx context.Context, summary *domain.Summary) error
	GetByArticleID(ctx context.Context, articleID string) (*domain.Summary, error)
}
