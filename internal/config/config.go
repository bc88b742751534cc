// Package config provides centralized configuration management for the
// converter. Settings come from environment variables (optionally seeded
// from a .env file) with defaults, and are validated on startup so a
// misconfiguration fails before any workbook is read.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Paths    PathsConfig
	Database DatabaseConfig
	Server   ServerConfig
	Logging  LoggingConfig
}

// PathsConfig holds the batch conversion locations.
type PathsConfig struct {
	// InputDir is scanned for *.xlsx workbooks (default: input)
	InputDir string `env:"INPUT_DIR" default:"input"`

	// OutputDir receives one subdirectory per workbook (default: output)
	OutputDir string `env:"OUTPUT_DIR" default:"output"`

	// KeywordsFile overrides the embedded reserved-word list when set
	KeywordsFile string `env:"KEYWORDS_FILE"`
}

// DatabaseConfig holds the settings used when a generated script is applied.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string. Only "apply" needs it.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// MinConns is the minimum number of connections to keep open (default: 0)
	MinConns int `env:"DB_MIN_CONNS" default:"0"`

	// ConnectTimeout bounds establishing the first connection (default: 10s)
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" default:"10s"`

	// ApplyTimeout bounds running one script (default: 5m)
	ApplyTimeout time.Duration `env:"DB_APPLY_TIMEOUT" default:"5m"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing the response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`

	// MaxUploadSize caps the workbook body in bytes (default: 32MB)
	MaxUploadSize int64 `env:"SERVER_MAX_UPLOAD_SIZE" default:"33554432"`

	// MaxConcurrent caps workbooks converted at the same time (default: 4)
	MaxConcurrent int `env:"SERVER_MAX_CONCURRENT" default:"4"`

	// QueueTimeout is how long a request waits for a conversion slot (default: 30s)
	QueueTimeout time.Duration `env:"SERVER_QUEUE_TIMEOUT" default:"30s"`

	// TrustedProxies lists proxy CIDRs whose X-Real-IP / X-Forwarded-For
	// headers are believed (comma-separated)
	TrustedProxies []string `env:"SERVER_TRUSTED_PROXIES"`

	// APIKeys, when set, are required in the X-API-Key header of /api
	// requests (comma-separated)
	APIKeys []string `env:"SERVER_API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
