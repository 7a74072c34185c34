// Package server provides the HTTP API for Listahan.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/listahan/listahan/internal/config"
	"github.com/listahan/listahan/internal/extract"
	"go.uber.org/zap"
)

// Server is the HTTP server for the Listahan API.
type Server struct {
	extractor *extract.Service
	config    *config.ServerConfig
	exportCfg *config.ExportConfig
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	extractor *extract.Service,
	cfg *config.ServerConfig,
	exportCfg *config.ExportConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		extractor: extractor,
		config:    cfg,
		exportCfg: exportCfg,
		logger:    logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.routes(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/extract", s.handleExtract)
	r.Post("/api/v1/export/excel", s.handleExportExcel)
	r.Post("/api/v1/export/gsheet", s.handleExportSheet)
	r.Get("/health", s.handleHealth)
	return r
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
