// Package config handles configuration of the docstore command from the environment.
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds all configuration for the command.
type Config struct {
	Store StoreConfig
	Log   LogConfig
}

// StoreConfig holds document store configuration.
type StoreConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables.
// A .env file in the working directory is read first if it exists.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Store: StoreConfig{
			URI:        getEnv("DOCSTORE_URI", "mongodb://localhost:27017"),
			Database:   getEnv("DOCSTORE_DATABASE", ""),
			Collection: getEnv("DOCSTORE_COLLECTION", ""),
			Timeout:    time.Duration(getEnvAsInt("DOCSTORE_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Log: LogConfig{
			Level:  getEnv("DOCSTORE_LOG_LEVEL", "info"),
			Format: getEnv("DOCSTORE_LOG_FORMAT", "console"),
		},
	}

	if cfg.Store.Timeout <= 0 {
		return nil, fmt.Errorf("DOCSTORE_TIMEOUT_SECONDS must be positive")
	}

	return cfg, nil
}

// RedactedURI returns the connection string with any password masked, for use in messages.
func (s StoreConfig) RedactedURI() string {
	scheme := strings.Index(s.URI, "://")
	if scheme < 0 {
		return s.URI
	}

	rest := s.URI[scheme+3:]
	hostsEnd := strings.IndexAny(rest, "/?")
	if hostsEnd < 0 {
		hostsEnd = len(rest)
	}
	at := strings.LastIndex(rest[:hostsEnd], "@")
	if at < 0 {
		return s.URI
	}

	user := rest[:at]
	if colon := strings.Index(user, ":"); colon >= 0 {
		user = user[:colon] + ":" + redacted
	}
	return s.URI[:scheme+3] + user + rest[at:]
}

const redacted = "xxxxx"

// Logger builds the zerolog logger described by the configuration.
func (c LogConfig) Logger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.Level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level %q: %w", c.Level, err)
	}

	switch strings.ToLower(c.Format) {
	case "json":
	case "console", "":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", c.Format)
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
