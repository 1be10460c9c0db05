// Package server provides the browser dashboard: an HTML form page plus a
// small JSON/CSV/PNG API backed by the simulator and presenter.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mwiater/codsim/internal/logging"
	"github.com/mwiater/codsim/internal/simulation"
)

// Config holds the HTTP server configuration.
type Config struct {
	Addr         string
	AllowOrigins []string
	Simulator    simulation.Simulator
	Defaults     simulation.Request
}

// Server wraps the HTTP server with configuration.
type Server struct {
	cfg    Config
	srv    *http.Server
	engine *gin.Engine
}

// New creates a new HTTP server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Simulator == nil {
		return nil, errors.New("server: simulator is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8501"
	}
	if err := cfg.Defaults.Validate(); err != nil {
		return nil, fmt.Errorf("server defaults: %w", err)
	}

	engine := newRouter(cfg)
	return &Server{
		cfg:    cfg,
		engine: engine,
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	logging.LogEvent("HTTP server starting on %s", s.srv.Addr)
	fmt.Printf("codsim dashboard: http://%s\n", s.srv.Addr)

	go func() {
		<-ctx.Done()
		logging.LogEvent("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			logging.LogEvent("HTTP server shutdown error: %v", err)
		}
	}()

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Handler returns the underlying http.Handler (useful for testing).
func (s *Server) Handler() http.Handler {
	return s.engine
}
