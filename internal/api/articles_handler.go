package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/wikicrawl/internal/database"
	"github.com/jonesrussell/wikicrawl/internal/domain"
	"github.com/jonesrussell/wikicrawl/internal/ingest"
	"github.com/jonesrussell/wikicrawl/internal/logger"
	"github.com/jonesrussell/wikicrawl/internal/wiki"
)

// IngestService drives crawl-and-persist runs and summary lookups.
type IngestService interface {
	Parse(ctx context.Context, seedURL string) (*domain.Article, error)
	GetSummary(ctx context.Context, url string) (*domain.Summary, error)
}

// ArticlesHandler handles article parse and summary HTTP requests.
type ArticlesHandler struct {
	service IngestService
	log     logger.Interface
}

// NewArticlesHandler creates a new articles handler.
func NewArticlesHandler(service IngestService, log logger.Interface) *ArticlesHandler {
	return &ArticlesHandler{
		service: service,
		log:     log.WithComponent("api"),
	}
}

// Parse handles POST /api/v1/parse?url=...
// It crawls from the seed URL, persists the article tree, generates a digest
// for the root article, and returns the root article record.
func (h *ArticlesHandler) Parse(c *gin.Context) {
	seedURL, ok := h.seedFromQuery(c)
	if !ok {
		return
	}

	article, err := h.service.Parse(c.Request.Context(), seedURL)
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrAlreadyExists):
			respondBadRequest(c, "article already exists in database")
		case errors.Is(err, wiki.ErrNoResult):
			respondBadRequest(c, "failed to parse article from source")
		default:
			h.log.Error("parse failed", "url", seedURL, "error", err.Error())
			respondInternalError(c, "failed to parse article")
		}
		return
	}

	c.JSON(http.StatusOK, article)
}

// GetSummary handles GET /api/v1/summary?url=...
// It returns the previously generated digest for the article at the URL.
func (h *ArticlesHandler) GetSummary(c *gin.Context) {
	seedURL, ok := h.seedFromQuery(c)
	if !ok {
		return
	}

	summary, err := h.service.GetSummary(c.Request.Context(), seedURL)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrArticleNotFound):
			respondNotFound(c, "article")
		case errors.Is(err, database.ErrSummaryNotFound):
			respondNotFound(c, "summary")
		default:
			h.log.Error("summary lookup failed", "url", seedURL, "error", err.Error())
			respondInternalError(c, "failed to get summary")
		}
		return
	}

	c.JSON(http.StatusOK, summary)
}

// seedFromQuery validates the url query parameter. It must be an absolute
// http(s) URL.
func (h *ArticlesHandler) seedFromQuery(c *gin.Context) (string, bool) {
	raw := c.Query("url")
	if raw == "" {
		respondBadRequest(c, "url query parameter is required")
		return "", false
	}

	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		respondBadRequest(c, "url must be an absolute http(s) URL")
		return "", false
	}

	return raw, true
}
