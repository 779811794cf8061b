// Package server exposes the aggregator over HTTP with gin.
//
// Routes:
//
//	GET  /api/health
//	POST /api/events/search              JSON body {location, genre, date}
//	GET  /api/events/platform/:platform  query string location, genre, date
//	GET  /metrics                        Prometheus exposition
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pfrederiksen/music-events/internal/event"
	"github.com/pfrederiksen/music-events/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// Searcher is the part of the aggregator the HTTP layer depends on.
type Searcher interface {
	SearchEvents(ctx context.Context, q event.Query) ([]*event.Event, error)
	GetEventsByPlatform(ctx context.Context, platform string, q event.Query) ([]*event.Event, error)
}

// NewRouter wires the API routes and the metrics endpoint.
func NewRouter(s Searcher) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), cors())

	h := &handlers{searcher: s}

	api := r.Group("/api")
	api.GET("/health", h.health)
	api.POST("/events/search", h.search)
	api.GET("/events/platform/:platform", h.platform)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, addr string, s Searcher) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(s),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", logger.Fields{"addr": addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// requestLogger logs one line per request through the structured logger.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logger.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Warn("request failed", fields)
			return
		}
		logger.Debug("request", fields)
	}
}

// cors allows browser clients on any origin, matching the public read-only API.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
