package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/keysort/parser"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxEntries    int
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration

	// URL input settings.
	HTTPTimeout      time.Duration
	AllowPrivateURLs bool

	// MaxFileSize caps file, URL, and inline content inputs in bytes.
	MaxFileSize int64
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from KEYSORT_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("KEYSORT_CACHE_ENABLED", true),
		CacheMaxEntries:    envInt("KEYSORT_CACHE_MAX_ENTRIES", 10),
		CacheTTL:           envDuration("KEYSORT_CACHE_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("KEYSORT_CACHE_SWEEP_INTERVAL", 60*time.Second),
		HTTPTimeout:        envDuration("KEYSORT_HTTP_TIMEOUT", 30*time.Second),
		AllowPrivateURLs:   envBool("KEYSORT_ALLOW_PRIVATE_URLS", false),
		MaxFileSize:        envInt64("KEYSORT_MAX_FILE_SIZE", parser.DefaultMaxFileSize),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid size env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
