package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/keysort/internal/testutil"
)

const sampleConfig = `[defaults]
recursive = true
order = "lexical"
max-depth = 50

[[override]]
pattern = "**/package.json"
order = "none"
recursive = false

[[override]]
pattern = "*.yaml,*.yml"
format = "yaml"
`

func TestLoad(t *testing.T) {
	path := testutil.WriteTempFile(t, "keysort.toml", sampleConfig)
	f, err := Load(path)
	require.NoError(t, err)

	require.NotNil(t, f.Defaults.Recursive)
	assert.True(t, *f.Defaults.Recursive)
	require.NotNil(t, f.Defaults.Order)
	assert.Equal(t, "lexical", *f.Defaults.Order)
	require.NotNil(t, f.Defaults.MaxDepth)
	assert.Equal(t, 50, *f.Defaults.MaxDepth)
	assert.Nil(t, f.Defaults.KeepGoing)

	require.Len(t, f.Overrides, 2)
	assert.Equal(t, "**/package.json", f.Overrides[0].Pattern)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadMalformedTOML(t *testing.T) {
	path := testutil.WriteTempFile(t, "bad.toml", "[defaults\nrecursive = true")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadOverrideWithoutPattern(t *testing.T) {
	path := testutil.WriteTempFile(t, "bad.toml", "[[override]]\norder = \"none\"\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no pattern")
}

func TestForMergesMatchingOverrides(t *testing.T) {
	path := testutil.WriteTempFile(t, "keysort.toml", sampleConfig)
	f, err := Load(path)
	require.NoError(t, err)

	t.Run("no override matches", func(t *testing.T) {
		s := f.For("service/config.json")
		require.NotNil(t, s.Recursive)
		assert.True(t, *s.Recursive)
		assert.Equal(t, "lexical", *s.Order)
		assert.Nil(t, s.Format)
	})

	t.Run("override wins over defaults", func(t *testing.T) {
		s := f.For("web/app/package.json")
		require.NotNil(t, s.Recursive)
		assert.False(t, *s.Recursive)
		assert.Equal(t, "none", *s.Order)
		// Untouched defaults survive.
		assert.Equal(t, 50, *s.MaxDepth)
	})

	t.Run("pattern list matches by basename", func(t *testing.T) {
		s := f.For("deploy/values.yml")
		require.NotNil(t, s.Format)
		assert.Equal(t, "yaml", *s.Format)
		assert.Equal(t, "lexical", *s.Order)
	})

	t.Run("stdin matches no overrides", func(t *testing.T) {
		s := f.For("")
		assert.Equal(t, "lexical", *s.Order)
		assert.Nil(t, s.Format)
	})
}

func TestForAppliesOverridesInOrder(t *testing.T) {
	text := `[[override]]
pattern = "*.json"
order = "numeric"

[[override]]
pattern = "data.json"
order = "none"
`
	path := testutil.WriteTempFile(t, "keysort.toml", text)
	f, err := Load(path)
	require.NoError(t, err)

	s := f.For("data.json")
	require.NotNil(t, s.Order)
	assert.Equal(t, "none", *s.Order, "later override wins")

	s = f.For("other.json")
	assert.Equal(t, "numeric", *s.Order)
}
