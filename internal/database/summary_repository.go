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

// SummaryRepository handles database operations for article summaries.
type SummaryRepository struct {
	db *sqlx.DB
}

// NewSummaryRepository creates a new summary repository.
func NewSummaryRepository(db *sqlx.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Ensure SummaryRepository implements the interface
var _ SummaryRepositoryInterface = (*SummaryRepository)(nil)

// Create inserts a new summary keyed to an article.
func (r *SummaryRepository) Create(ctx context.Context, summary *domain.Summary) error {
	if summary.ID == "" {
		summary.ID = uuid.New().String()
	}

	query := `
		INSERT INTO summaries (id, article_id, body, model)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		summary.ID,
		summary.ArticleID,
		summary.Body,
		summary.Model,
	).Scan(&summary.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create summary: %w", err)
	}

	return nil
}

// GetByArticleID retrieves the summary for the given article.
func (r *SummaryRepository) GetByArticleID(ctx context.Context, articleID string) (*domain.Summary, error) {
	var summary domain.Summary
	query := `
		SELECT id, article_id, body, model, created_at
		FROM summaries
		WHERE article_id = $1
	`

	err := r.db.GetContext(ctx, &summary, query, articleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSummaryNotFound
		}
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}

	return &summary, nil
}
