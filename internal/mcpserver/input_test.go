package mcpserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/keysort/internal/testutil"
	"github.com/erraggy/keysort/parser"
)

func TestDocInput_ResolveFile(t *testing.T) {
	docCache.reset()
	path := testutil.WriteTempJSON(t, testutil.UnsortedJSON)
	input := docInput{File: path}
	result, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, parser.SourceFormatJSON, result.SourceFormat)
}

func TestDocInput_ResolveContent(t *testing.T) {
	docCache.reset()
	input := docInput{Content: testutil.UnsortedYAML}
	result, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, parser.SourceFormatYAML, result.SourceFormat)
}

func TestDocInput_ResolveNoneProvided(t *testing.T) {
	input := docInput{}
	_, err := input.resolve(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file, url, or content must be provided")
}

func TestDocInput_ResolveMultipleProvided(t *testing.T) {
	input := docInput{File: "foo.json", Content: "{}"}
	_, err := input.resolve(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file, url, or content must be provided")
}

func TestDocInput_ResolveFileNotFound(t *testing.T) {
	docCache.reset()
	input := docInput{File: "/nonexistent/path.json"}
	_, err := input.resolve(context.Background())
	assert.Error(t, err)
}

func TestDocCache_HitOnSameFile(t *testing.T) {
	docCache.reset()
	path := testutil.WriteTempJSON(t, testutil.UnsortedJSON)
	input := docInput{File: path}

	// First call populates cache.
	result1, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, docCache.size())

	// Second call should return the same pointer (cache hit).
	result2, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.Same(t, result1, result2, "expected same pointer from cache hit")
}

func TestDocCache_MissOnModifiedFile(t *testing.T) {
	docCache.reset()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"b": 1, "a": 2}`), 0o644))

	input := docInput{File: path}
	result1, err := input.resolve(context.Background())
	require.NoError(t, err)

	// Rewrite with a different mtime; the old key no longer matches.
	require.NoError(t, os.WriteFile(path, []byte(`{"c": 3}`), 0o644))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	result2, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, result1, result2, "expected fresh parse after modification")
}

func TestDocCache_ContentKeyedByHash(t *testing.T) {
	docCache.reset()
	input := docInput{Content: `{"a": 1}`}

	result1, err := input.resolve(context.Background())
	require.NoError(t, err)
	result2, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.Same(t, result1, result2)

	other := docInput{Content: `{"b": 2}`}
	result3, err := other.resolve(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, result1, result3)
	assert.Equal(t, 2, docCache.size())
}

func TestDocCache_SkippedWithExtraOptions(t *testing.T) {
	docCache.reset()
	input := docInput{Content: `{"a": 1}`}

	_, err := input.resolve(context.Background(), parser.WithMaxDepth(5))
	require.NoError(t, err)
	assert.Equal(t, 0, docCache.size(), "extra options must not be cached")
}

func TestDocCache_EvictsOldestAtCapacity(t *testing.T) {
	docCache.reset()
	saved := docCache.maxSize
	docCache.maxSize = 2
	defer func() { docCache.maxSize = saved }()

	for i := 0; i < 3; i++ {
		input := docInput{Content: fmt.Sprintf(`{"k%d": %d}`, i, i)}
		_, err := input.resolve(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 2, docCache.size())
}

func TestDocCache_ExpiredEntryRemoved(t *testing.T) {
	docCache.reset()
	parsed := &parser.ParseResult{}
	docCache.put("k", parsed, -time.Second)
	assert.Nil(t, docCache.get("k"))
	assert.Equal(t, 0, docCache.size())
}

func TestDocCache_Sweep(t *testing.T) {
	docCache.reset()
	parsed := &parser.ParseResult{}
	docCache.put("dead", parsed, -time.Second)
	docCache.put("live", parsed, time.Hour)
	docCache.sweep()
	assert.Equal(t, 1, docCache.size())
	assert.Same(t, parsed, docCache.get("live"))
}

func TestDocInput_ContentSizeLimit(t *testing.T) {
	docCache.reset()
	saved := cfg.MaxFileSize
	cfg.MaxFileSize = 16
	defer func() { cfg.MaxFileSize = saved }()

	input := docInput{Content: `{"key": "` + strings.Repeat("x", 32) + `"}`}
	_, err := input.resolve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")
}

func TestMakeCacheKey(t *testing.T) {
	path := testutil.WriteTempJSON(t, `{"a": 1}`)

	t.Run("file key includes mtime", func(t *testing.T) {
		key := makeCacheKey(docInput{File: path}, nil)
		assert.True(t, strings.HasPrefix(key, "file:"))
		assert.Contains(t, key, filepath.Base(path))
	})

	t.Run("content key is hashed", func(t *testing.T) {
		key := makeCacheKey(docInput{Content: `{"a": 1}`}, nil)
		assert.True(t, strings.HasPrefix(key, "content:"))
		assert.NotContains(t, key, `{"a"`)
	})

	t.Run("url key is the url", func(t *testing.T) {
		key := makeCacheKey(docInput{URL: "https://example.com/doc.json"}, nil)
		assert.Equal(t, "url:https://example.com/doc.json", key)
	})

	t.Run("missing file yields no key", func(t *testing.T) {
		key := makeCacheKey(docInput{File: "/nonexistent/doc.json"}, nil)
		assert.Empty(t, key)
	})

	t.Run("extra options disable caching", func(t *testing.T) {
		key := makeCacheKey(docInput{Content: `{}`}, []parser.Option{parser.WithMaxDepth(5)})
		assert.Empty(t, key)
	})
}
