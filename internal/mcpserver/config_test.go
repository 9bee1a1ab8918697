package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/keysort/parser"
)

// clearKeysortEnv clears all KEYSORT_* env vars to isolate tests from the ambient environment.
func clearKeysortEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"KEYSORT_CACHE_ENABLED", "KEYSORT_CACHE_MAX_ENTRIES",
		"KEYSORT_CACHE_TTL", "KEYSORT_CACHE_SWEEP_INTERVAL",
		"KEYSORT_HTTP_TIMEOUT", "KEYSORT_MAX_FILE_SIZE",
		"KEYSORT_ALLOW_PRIVATE_URLS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearKeysortEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxEntries)
	assert.Equal(t, 15*time.Minute, c.CacheTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 30*time.Second, c.HTTPTimeout)
	assert.Equal(t, parser.DefaultMaxFileSize, c.MaxFileSize)
	assert.False(t, c.AllowPrivateURLs)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearKeysortEnv(t)
	t.Setenv("KEYSORT_CACHE_ENABLED", "false")
	t.Setenv("KEYSORT_CACHE_MAX_ENTRIES", "50")
	t.Setenv("KEYSORT_CACHE_TTL", "30m")
	t.Setenv("KEYSORT_CACHE_SWEEP_INTERVAL", "30s")
	t.Setenv("KEYSORT_HTTP_TIMEOUT", "5s")
	t.Setenv("KEYSORT_MAX_FILE_SIZE", "1048576")
	t.Setenv("KEYSORT_ALLOW_PRIVATE_URLS", "true")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxEntries)
	assert.Equal(t, 30*time.Minute, c.CacheTTL)
	assert.Equal(t, 30*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 5*time.Second, c.HTTPTimeout)
	assert.Equal(t, int64(1048576), c.MaxFileSize)
	assert.True(t, c.AllowPrivateURLs)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	clearKeysortEnv(t)
	t.Setenv("KEYSORT_CACHE_ENABLED", "not-a-bool")
	t.Setenv("KEYSORT_CACHE_MAX_ENTRIES", "zero")
	t.Setenv("KEYSORT_CACHE_TTL", "eventually")
	t.Setenv("KEYSORT_MAX_FILE_SIZE", "-5")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxEntries)
	assert.Equal(t, 15*time.Minute, c.CacheTTL)
	assert.Equal(t, parser.DefaultMaxFileSize, c.MaxFileSize)
}

func TestLoadConfig_NonPositiveValuesFallBack(t *testing.T) {
	clearKeysortEnv(t)
	t.Setenv("KEYSORT_CACHE_MAX_ENTRIES", "0")
	t.Setenv("KEYSORT_HTTP_TIMEOUT", "-1s")

	c := loadConfig()

	assert.Equal(t, 10, c.CacheMaxEntries)
	assert.Equal(t, 30*time.Second, c.HTTPTimeout)
}
