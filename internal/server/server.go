// Package server exposes the analytics core over a small JSON HTTP API for
// the dashboard frontend.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/feed"
	"trade-journal-go/internal/journal"
)

// Server provides the HTTP interface over the journal and indicator engine.
type Server struct {
	server  *http.Server
	journal *journal.Journal
	feed    feed.Client
	cfg     *config.Config
	logger  *zap.Logger
}

// NewServer creates the API server and registers its routes.
func NewServer(cfg *config.Config, j *journal.Journal, feedClient feed.Client, logger *zap.Logger) *Server {
	s := &Server{
		journal: j,
		feed:    feedClient,
		cfg:     cfg,
		logger:  logger.Named("api-server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /api/trades", s.listTradesHandler)
	mux.HandleFunc("POST /api/trades", s.addTradeHandler)
	mux.HandleFunc("PUT /api/trades/{id}", s.updateTradeHandler)
	mux.HandleFunc("DELETE /api/trades/{id}", s.deleteTradeHandler)
	mux.HandleFunc("GET /api/performance", s.performanceHandler)
	mux.HandleFunc("GET /api/indicators/{kind}", s.indicatorsHandler)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: mux,
	}
	return s
}

// Start runs the HTTP server in a new goroutine.
func (s *Server) Start() {
	s.logger.Info("Starting API server", zap.String("address", s.server.Addr))
	go func() {
		if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
			s.logger.Error("API server failed", zap.Error(err))
		}
	}()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping API server...")
	return s.server.Shutdown(ctx)
}

// Handler exposes the route table for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
