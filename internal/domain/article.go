// Package domain provides domain models used across the application.
package domain

import "time"

// Article is a persisted encyclopedia article. The crawl tree is flattened
// into articles linked by ParentID, a self-reference to the parent article.
type Article struct {
	// Unique identifier for the article record
	ID string `db:"id" json:"id"`
	// Canonical absolute URL, unique per article
	URL string `db:"url" json:"url"`
	// Title of the article
	Title string `db:"title" json:"title"`
	// Normalized plain text body, citation markers stripped
	Body string `db:"body" json:"body"`
	// Depth in the crawl tree, 0 for the seed article
	Depth int `db:"depth" json:"depth"`
	// ParentID links to the article this one was discovered from
	ParentID *string `db:"parent_id" json:"parent_id,omitempty"`
	// Record creation timestamp
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Summary is the generated digest of a root article.
type Summary struct {
	// Unique identifier for the summary record
	ID string `db:"id" json:"id"`
	// ArticleID links to the summarized article
	ArticleID string `db:"article_id" json:"article_id"`
	// Body is the digest text
	Body string `db:"body" json:"body"`
	// Model is the generation model identifier
	Model string `db:"model" json:"model,omitempty"`
	// Record creation timestamp
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
