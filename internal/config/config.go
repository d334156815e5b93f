// Package config provides environment-driven configuration for the pathfinder server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all application configuration values.
type Config struct {
	DatabaseURL        Secret
	Port               string
	ListenHost         string
	MetricsPort        string
	CORSOrigins        []string
	LogLevel           string
	JWTSecret          Secret
	JWTAlgorithm       string
	AccessTokenMinutes int
	DBMaxConns         int
	SeedDir            string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:  Secret(envOrDefault("DATABASE_URL", "")),
		Port:         envOrDefault("PORT", "3030"),
		ListenHost:   envOrDefault("LISTEN_HOST", "127.0.0.1"),
		MetricsPort:  envOrDefault("METRICS_PORT", "9091"),
		LogLevel:     envOrDefault("LOG_LEVEL", "info"),
		JWTSecret:    Secret(envOrDefault("JWT_SECRET", "")),
		JWTAlgorithm: strings.ToUpper(envOrDefault("JWT_ALGORITHM", "HS256")),
		SeedDir:      envOrDefault("SEED_DIR", ""),
	}

	minutes, err := strconv.Atoi(envOrDefault("ACCESS_TOKEN_EXPIRES_MINUTES", "60"))
	if err != nil || minutes < 1 || minutes > 1440 {
		return nil, fmt.Errorf("ACCESS_TOKEN_EXPIRES_MINUTES must be an integer between 1 and 1440")
	}
	cfg.AccessTokenMinutes = minutes

	maxConns, err := strconv.Atoi(envOrDefault("DB_MAX_CONNS", "10"))
	if err != nil || maxConns < 2 || maxConns > 200 {
		return nil, fmt.Errorf("DB_MAX_CONNS must be an integer between 2 and 200")
	}
	cfg.DBMaxConns = maxConns

	origins := envOrDefault("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")
	cfg.CORSOrigins = strings.Split(origins, ",")

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

// MetricsAddr returns the metrics listen address in host:port format.
func (c *Config) MetricsAddr() string {
	return c.ListenHost + ":" + c.MetricsPort
}

// AccessTokenTTL returns the lifetime of issued access tokens.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenMinutes) * time.Minute
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
