package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/wikicrawl/internal/api/middleware"
	"github.com/jonesrussell/wikicrawl/internal/config/server"
	"github.com/jonesrussell/wikicrawl/internal/logger"
)

// Pinger checks database connectivity for the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewRouter builds the gin router with all API routes registered.
func NewRouter(log logger.Interface, articles *ArticlesHandler, db Pinger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(requestLogger(log))

	router.GET("/health", healthHandler(db))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/parse", articles.Parse)
		v1.GET("/summary", articles.GetSummary)
	}

	return router
}

// NewServer wraps the router in an http.Server with the configured timeouts.
func NewServer(cfg *server.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// requestLogger logs each request with method, path, and status.
func requestLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}

// healthHandler reports liveness and database connectivity.
func healthHandler(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			if err := db.PingContext(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "degraded",
					"db":     err.Error(),
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
