// Package testutil provides test fixtures and helpers for unit tests.
//
// Fixtures are raw document source strings rather than marshaled Go
// values: member order and duplicate keys are exactly what the tests
// exercise, and a round trip through a Go map would destroy both.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// UnsortedJSON is a nested document whose keys are deliberately out of
// lexical order at every level. It contains no duplicate keys.
const UnsortedJSON = `{
  "version": 2,
  "name": "demo",
  "servers": [
    {
      "port": 8080,
      "host": "localhost"
    }
  ],
  "database": {
    "user": "app",
    "host": "db.internal",
    "options": {
      "timeout": 30,
      "retries": 3
    }
  }
}
`

// DuplicateKeysJSON repeats keys at the top level and inside a nested
// object. First occurrences carry the values "first" and 1.
const DuplicateKeysJSON = `{
  "name": "first",
  "count": 1,
  "nested": {
    "id": "a",
    "id": "b"
  },
  "name": "second",
  "count": 2
}
`

// SortedJSON is already lexically sorted at every level and free of
// duplicates; sorting it must be a no-op.
const SortedJSON = `{
  "alpha": 1,
  "beta": {
    "delta": null,
    "gamma": [
      1,
      2
    ]
  }
}
`

// UnsortedYAML mirrors UnsortedJSON in YAML form, with a comment and a
// quoted scalar to exercise style preservation.
const UnsortedYAML = `# service settings
version: 2
name: "demo"
servers:
  - port: 8080
    host: localhost
database:
  user: app
  host: db.internal
`

// WriteTempFile writes source text to a file with the given name inside
// a fresh temporary directory and returns the full path. The file is
// cleaned up when the test completes (via t.TempDir).
func WriteTempFile(t *testing.T, name, source string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, []byte(source), 0600); err != nil {
		t.Fatalf("Failed to write temporary file %s: %v", name, err)
	}
	return tmpFile
}

// WriteTempJSON writes JSON source to a temporary test.json file.
func WriteTempJSON(t *testing.T, source string) string {
	t.Helper()
	return WriteTempFile(t, "test.json", source)
}

// WriteTempYAML writes YAML source to a temporary test.yaml file.
func WriteTempYAML(t *testing.T, source string) string {
	t.Helper()
	return WriteTempFile(t, "test.yaml", source)
}
