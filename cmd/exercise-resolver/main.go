package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"exercise-resolver/internal/config"
	"exercise-resolver/internal/database"
	"exercise-resolver/internal/dictionary"
	"exercise-resolver/internal/resolver"
	"exercise-resolver/internal/web"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Setup structured logging
	setupLogging(cfg.LogLevel)

	slog.Info("Starting Exercise Resolver", "version", "1.0.0")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}()

	// Load the exercise dictionary (embedded catalog unless a path is set)
	dict, err := dictionary.Load(cfg.DictionaryPath, cfg.StrictDictionary)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}
	slog.Info("Dictionary loaded", "entries", dict.Len(), "categories", len(dict.Categories()))

	res := resolver.New(dict, resolver.WithThreshold(cfg.ResolveThreshold))

	server := web.NewServer(db, dict, res, cfg)

	return runServer(server, db)
}

func runServer(server *web.Server, db *database.DB) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start history cleanup routine (runs daily)
	go startHistoryCleanup(ctx, db)

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig.String())
	}

	// Stop the cleanup routine
	cancel()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server gracefully: %w", err)
	}

	slog.Info("Server shutdown complete")
	return nil
}

// setupLogging configures structured logging based on the log level
func setupLogging(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	handler := slog.NewTextHandler(os.Stdout, opts)
	logger := slog.New(handler)
	slog.SetDefault(logger)
}

// startHistoryCleanup runs a goroutine that prunes old resolution records periodically
func startHistoryCleanup(ctx context.Context, db *database.DB) {
	ticker := time.NewTicker(24 * time.Hour) // Run daily
	defer ticker.Stop()

	// Run cleanup immediately on startup
	cleanupOldRecords(db)

	for {
		select {
		case <-ctx.Done():
			slog.Info("History cleanup routine shutting down")
			return
		case <-ticker.C:
			cleanupOldRecords(db)
		}
	}
}

// cleanupOldRecords removes resolution records older than 60 days
func cleanupOldRecords(db *database.DB) {
	retention := 60 * 24 * time.Hour // 60 days

	slog.Info("Running history cleanup", "retention_days", 60)

	if err := db.DeleteOldResolutionRecords(retention); err != nil {
		slog.Error("Failed to cleanup old resolution records", "error", err)
		return
	}

	slog.Info("History cleanup completed")
}
