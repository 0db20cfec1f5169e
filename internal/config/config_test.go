package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
	}{
		{
			name: "valid config",
			envVars: map[string]string{
				"SERVER_PORT":       "8080",
				"LOG_LEVEL":         "info",
				"RESOLVE_THRESHOLD": "0.6",
			},
			wantErr: false,
		},
		{
			name:    "defaults applied",
			envVars: map[string]string{},
			wantErr: false,
		},
		{
			name: "invalid log level",
			envVars: map[string]string{
				"LOG_LEVEL": "loud",
			},
			wantErr: true,
		},
		{
			name: "threshold above one",
			envVars: map[string]string{
				"RESOLVE_THRESHOLD": "1.5",
			},
			wantErr: true,
		},
		{
			name: "threshold zero",
			envVars: map[string]string{
				"RESOLVE_THRESHOLD": "0",
			},
			wantErr: true,
		},
		{
			name: "missing dictionary file",
			envVars: map[string]string{
				"DICTIONARY_PATH": "/nonexistent/catalog.json",
			},
			wantErr: true,
		},
		{
			name: "empty database path",
			envVars: map[string]string{
				"DATABASE_PATH": "",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			// Set test environment variables
			for key, value := range tt.envVars {
				os.Setenv(key, value)
			}

			cfg, err := Load()

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			// Verify defaults
			if _, exists := tt.envVars["SERVER_PORT"]; !exists {
				require.Equal(t, "8080", cfg.ServerPort)
			}
			if _, exists := tt.envVars["LOG_LEVEL"]; !exists {
				require.Equal(t, "info", cfg.LogLevel)
			}
			if _, exists := tt.envVars["RESOLVE_THRESHOLD"]; !exists {
				require.Equal(t, 0.6, cfg.ResolveThreshold)
			}
			require.False(t, cfg.StrictDictionary)
		})
	}
}

func TestLoadWithDictionaryFile(t *testing.T) {
	os.Clearenv()

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"exercises":[]}`), 0o644))

	os.Setenv("DICTIONARY_PATH", path)
	defer os.Unsetenv("DICTIONARY_PATH")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, path, cfg.DictionaryPath)
}

func TestValidateDictionaryPathIsDirectory(t *testing.T) {
	cfg := &Config{
		ServerPort:       "8080",
		LogLevel:         "info",
		DatabasePath:     "resolver.db",
		DictionaryPath:   os.TempDir(),
		ResolveThreshold: 0.6,
	}

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "must be a file")
}

func TestLoadStrictDictionary(t *testing.T) {
	os.Clearenv()
	os.Setenv("STRICT_DICTIONARY", "true")
	defer os.Unsetenv("STRICT_DICTIONARY")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.StrictDictionary)
}
