package web

import (
	"context"
	"net/http"
	"testing"
	"time"

	"exercise-resolver/internal/config"
	"exercise-resolver/internal/database"
	"exercise-resolver/internal/dictionary"
	"exercise-resolver/internal/resolver"

	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	db, err := database.New(":memory:")
	require.NoError(t, err)
	defer db.Close()

	dict, err := dictionary.Load("", true)
	require.NoError(t, err)

	cfg := &config.Config{
		ServerPort: "8080",
		LogLevel:   "info",
	}

	server := NewServer(db, dict, resolver.New(dict), cfg)
	require.NotNil(t, server)
	require.Equal(t, ":8080", server.server.Addr)
}

func TestServer_StartAndShutdown(t *testing.T) {
	db, err := database.New(":memory:")
	require.NoError(t, err)
	defer db.Close()

	dict, err := dictionary.Load("", true)
	require.NoError(t, err)

	cfg := &config.Config{
		ServerPort: "0", // Use random port
		LogLevel:   "info",
	}

	server := NewServer(db, dict, resolver.New(dict), cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	// Give server time to start
	time.Sleep(100 * time.Millisecond)

	err = server.Shutdown(ctx)
	require.NoError(t, err)

	// Start should have returned http.ErrServerClosed
	select {
	case err := <-errChan:
		require.Equal(t, http.ErrServerClosed, err)
	case <-time.After(time.Second):
		t.Fatal("Server did not shutdown within timeout")
	}
}
