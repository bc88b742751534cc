// Package web provides the HTTP conversion service: a workbook is posted
// and the generated SQL script or kernel document comes back.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/cda/internal/catalog"
	"github.com/JonMunkholm/cda/internal/config"
	"github.com/JonMunkholm/cda/internal/pipeline"
	cdamw "github.com/JonMunkholm/cda/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP server of the conversion service.
type Server struct {
	conv    *pipeline.Converter
	catalog *catalog.Catalog
	cfg     config.ServerConfig
	limiter *Limiter
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a new Server instance.
func NewServer(conv *pipeline.Converter, cat *catalog.Catalog, cfg config.ServerConfig) *Server {
	s := &Server{
		conv:    conv,
		catalog: cat,
		cfg:     cfg,
		limiter: NewLimiter(cfg.MaxConcurrent, cfg.QueueTimeout),
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(cdamw.RealIP(s.cfg.TrustedProxies))
	s.router.Use(cdamw.Logger)
	s.router.Use(middleware.Recoverer)
	if s.cfg.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}
	s.router.Use(securityHeaders)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(cdamw.APIKey(s.cfg.APIKeys, rejectAuth))

		r.Get("/picklists", s.handleListPicklists)
		r.Post("/convert/{format}", s.handleConvert)
	})
}

// Start listens on the configured address until Shutdown.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	slog.Info("server starting", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server and waits for running conversions.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	err := s.server.Shutdown(ctx)

	if n := s.limiter.Active(); n > 0 {
		slog.Info("waiting for conversions to complete", "active", n)
		if derr := s.limiter.Drain(ctx); derr != nil {
			slog.Warn("conversions did not complete in time", "error", derr)
		}
	}
	return err
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses. The service only
// returns data, so nothing may be framed or executed.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}
