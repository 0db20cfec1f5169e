// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	ServerPort       string  `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel         string  `env:"LOG_LEVEL" envDefault:"info"`
	DatabasePath     string  `env:"DATABASE_PATH" envDefault:"resolver.db"`
	DictionaryPath   string  `env:"DICTIONARY_PATH"`
	ResolveThreshold float64 `env:"RESOLVE_THRESHOLD" envDefault:"0.6"`
	StrictDictionary bool    `env:"STRICT_DICTIONARY" envDefault:"false"`
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	logLevel := strings.ToLower(c.LogLevel)
	isValidLevel := false
	for _, level := range validLogLevels {
		if logLevel == level {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		return fmt.Errorf("invalid log level %q, must be one of: %v", c.LogLevel, validLogLevels)
	}

	if c.ResolveThreshold <= 0 || c.ResolveThreshold > 1 {
		return fmt.Errorf("RESOLVE_THRESHOLD must be in (0, 1], got: %v", c.ResolveThreshold)
	}

	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH cannot be empty")
	}

	// An explicit dictionary path must point at an existing file; empty
	// means the embedded catalog
	if c.DictionaryPath != "" {
		info, err := os.Stat(c.DictionaryPath)
		if err != nil {
			return fmt.Errorf("DICTIONARY_PATH is not readable: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("DICTIONARY_PATH must be a file, got directory: %s", c.DictionaryPath)
		}
	}

	return nil
}
