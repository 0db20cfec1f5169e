// Package web provides the HTTP server and routing
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"exercise-resolver/internal/config"
	"exercise-resolver/internal/dictionary"
	"exercise-resolver/internal/resolver"
	"exercise-resolver/internal/web/handlers"
)

// Server represents the HTTP server
type Server struct {
	server   *http.Server
	handlers *handlers.Handlers
	logger   *slog.Logger
}

// NewServer creates a new HTTP server
func NewServer(store handlers.Store, dict *dictionary.Index, res *resolver.Resolver, cfg *config.Config) *Server {
	handlers := handlers.NewHandlers(store, dict, res)

	mux := http.NewServeMux()

	// Routes
	mux.HandleFunc("GET /health", handlers.Health)

	// Resolution endpoints
	mux.HandleFunc("POST /api/resolve", handlers.Resolve)
	mux.HandleFunc("POST /api/resolve/batch", handlers.ResolveBatch)
	mux.HandleFunc("POST /api/prescription", handlers.ParsePrescription)

	// Catalog endpoints
	mux.HandleFunc("GET /api/exercises", handlers.ListExercises)
	mux.HandleFunc("GET /api/exercises/{slug}", handlers.GetExercise)
	mux.HandleFunc("GET /api/categories", handlers.ListCategories)

	// Telemetry and learned corrections
	mux.HandleFunc("GET /api/history", handlers.History)
	mux.HandleFunc("GET /api/stats", handlers.Stats)
	mux.HandleFunc("POST /api/aliases", handlers.ConfirmAlias)
	mux.HandleFunc("GET /api/aliases", handlers.ListAliases)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		server:   server,
		handlers: handlers,
		logger:   slog.Default(),
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
