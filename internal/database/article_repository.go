package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/wikicrawl/internal/domain"
)

// ArticleRepository handles database operations for articles.
type ArticleRepository struct {
	db *sqlx.DB
}

// NewArticleRepository creates a new article repository.
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// Ensure ArticleRepository implements the interface
var _ ArticleRepositoryInterface = (*ArticleRepository)(nil)

// Create inserts a new article. The article URL is unique; inserting a
// duplicate URL fails with a constraint violation.
func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	if article.ID == "" {
		article.ID = uuid.New().String()
	}

	query := `
		INSERT INTO articles (id, url, title, body, depth, parent_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		article.ID,
		article.URL,
		article.Title,
		article.Body,
		article.Depth,
		article.ParentID,
	).Scan(&article.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}

	return nil
}

// GetByURL retrieves an article by its canonical URL.
func (r *ArticleRepository) GetByURL(ctx context.Context, url string) (*domain.Article, error) {
	var article domain.Article
	query := `
		SELECT id, url, title, body, depth, parent_id, created_at
		FROM articles
		WHERE url = $1
	`

	err := r.db.GetContext(ctx, &article, query, url)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return &article, nil
}

// ExistsByURL reports whether an article with the given URL is already recorded.
func (r *ArticleRepository) ExistsByURL(ctx context.Context, url string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM articles WHERE url = $1)`

	err := r.db.GetContext(ctx, &exists, query, url)
	if err != nil {
		return false, fmt.Errorf("failed to check article existence: %w", err)
	}

	return exists, nil
}

// ListByParent retrieves the child articles of the given parent, in insertion order.
func (r *ArticleRepository) ListByParent(ctx context.Context, parentID string) ([]*domain.Article, error) {
	var articles []*domain.Article
	query := `
		SELECT id, url, title, body, depth, parent_id, created_at
		FROM articles
		WHERE parent_id = $1
		ORDER BY created_at ASC
	`

	err := r.db.SelectContext(ctx, &articles, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list child articles: %w", err)
	}

	if articles == nil {
		articles = []*domain.Article{}
	}

	return articles, nil
}
