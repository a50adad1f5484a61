// Package server exposes assembled pages, posts and the sitemap over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/pagebuilder/internal/config"
	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/metrics"
	"git.home.luguber.info/inful/pagebuilder/internal/server/handlers"
	"git.home.luguber.info/inful/pagebuilder/internal/server/middleware"
)

// Server serves the page API.
type Server struct {
	cfg        config.ServerConfig
	pages      *handlers.PageHandlers
	monitoring *handlers.MonitoringHandlers
	registry   *prom.Registry
	logger     *slog.Logger
}

// New creates a server over assembler. source names the content store for
// the health endpoint. A nil registry serves the default Prometheus registry.
func New(cfg *config.Config, assembler handlers.Assembler, source string, registry *prom.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:        cfg.Server,
		pages:      handlers.NewPageHandlers(assembler, strings.TrimRight(cfg.Site.BaseURL, "/"), cfg.CMS.AllowDrafts, logger),
		monitoring: handlers.NewMonitoringHandlers(source, time.Now(), logger),
		registry:   registry,
		logger:     logger,
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/pages", s.pages.HandleListPages)
	mux.HandleFunc("GET /api/pages/{type}", s.pages.HandlePage)
	mux.HandleFunc("GET /api/posts/{slug}", s.pages.HandlePost)
	mux.HandleFunc("GET /sitemap.xml", s.pages.HandleSitemap)
	mux.HandleFunc("GET /healthz", s.monitoring.HandleHealthCheck)
	mux.Handle("GET /metrics", metrics.HTTPHandler(s.registry))
	return middleware.Chain(s.logger, ferrors.NewHTTPErrorAdapter(s.logger))(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", slog.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "http server failed").
			WithContext("addr", s.cfg.Addr).
			Build()
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		s.logger.Info("HTTP server stopped")
		return nil
	}
}
