package api

import (
	"context"
	"net/http"
	"time"

	"github.com/fbcbank/card-intake/internal/config"
)

// Server represents the API server
type Server struct {
	config  config.ServerConfig
	handler http.Handler
	server  *http.Server
}

// Deps are the collaborators the routes are built from. Limiter may be nil.
type Deps struct {
	Applications Submitter
	Documents    DocumentSource
	Health       *HealthChecker
	Limiter      *RateLimiter
}

// NewServer creates a new API server
func NewServer(cfg config.ServerConfig, d Deps) *Server {
	h := NewHandlers(d.Applications, d.Documents)
	return &Server{
		config:  cfg,
		handler: SetupRoutes(cfg, h, d.Health, d.Limiter),
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	s.server = &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.handler,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler for testing
func (s *Server) Handler() http.Handler {
	return s.handler
}
