// Package server exposes the catalog client over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Sternrassler/spotify-catalog-client/pkg/logging"
	"github.com/Sternrassler/spotify-catalog-client/pkg/metrics"
)

type Server struct {
	*http.Server
	logger          zerolog.Logger
	shutdownTimeout time.Duration
}

// New builds the HTTP server. It returns an error when cfg.Port is not a port number.
func New(cfg Config, h *CatalogHandler, logger zerolog.Logger) (*Server, error) {
	httpPort, err := strconv.Atoi(cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("invalid port %q: %w", cfg.Port, err)
	}

	internalServer := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", httpPort),
		Handler:           NewEngine(cfg, h, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &Server{
		Server:          internalServer,
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}, nil
}

// NewEngine registers the routes on a new gin engine.
func NewEngine(cfg Config, h *CatalogHandler, logger zerolog.Logger) *gin.Engine {
	engine := gin.New()

	if !cfg.disableMiddleware {
		engine.Use(gin.Recovery())
		engine.Use(requestLogger(logger))
		engine.Use(otelgin.Middleware(logging.ComponentServer))
	}

	engine.GET("/health", h.Health)
	engine.GET("/ready", h.Ready)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	artists := engine.Group("/v1/artists")
	artists.GET("", h.Artists)
	artists.GET("/:id", h.Artist)
	artists.GET("/:id/albums", h.Albums)
	artists.GET("/:id/top-tracks", h.TopTracks)
	artists.GET("/:id/related-artists", h.RelatedArtists)

	return engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.Addr).Msg("Starting catalog server")
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.shutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info().Msg("Shutting down catalog server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := logger.Debug()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = logger.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	}
}
