// Package config loads keysort CLI configuration from TOML files.
//
// A config file sets defaults for the sort and check commands and can
// scope option sets to documents matching glob patterns:
//
//	[defaults]
//	recursive = true
//	order = "lexical"
//
//	[[override]]
//	pattern = "**/package.json"
//	order = "none"
//
// Overrides apply in declaration order on top of the defaults; flags
// given on the command line win over both.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/erraggy/keysort/internal/globutil"
)

// Settings holds the option values a config file can set. Pointer fields
// distinguish "not set" from zero values so each layer only overrides
// what it actually specifies.
type Settings struct {
	Recursive    *bool   `toml:"recursive"`
	Order        *string `toml:"order"`
	FilePatterns *string `toml:"file-patterns"`
	Format       *string `toml:"format"`
	KeepGoing    *bool   `toml:"keep-going"`
	MaxDepth     *int    `toml:"max-depth"`
}

// merge overlays other onto s. Fields set in other win.
func (s *Settings) merge(other Settings) {
	if other.Recursive != nil {
		s.Recursive = other.Recursive
	}
	if other.Order != nil {
		s.Order = other.Order
	}
	if other.FilePatterns != nil {
		s.FilePatterns = other.FilePatterns
	}
	if other.Format != nil {
		s.Format = other.Format
	}
	if other.KeepGoing != nil {
		s.KeepGoing = other.KeepGoing
	}
	if other.MaxDepth != nil {
		s.MaxDepth = other.MaxDepth
	}
}

// Override scopes a settings block to documents matching a glob pattern
// list (same dialect as the -file-pattern flag).
type Override struct {
	Pattern string `toml:"pattern"`
	Settings
}

// File is a decoded keysort config file.
type File struct {
	Defaults  Settings   `toml:"defaults"`
	Overrides []Override `toml:"override"`
}

// Load reads and decodes a TOML config file. Override patterns are
// compiled eagerly so malformed config fails here, not at first use.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: decoding %s: %w", path, err)
	}

	for i, o := range f.Overrides {
		if o.Pattern == "" {
			return nil, fmt.Errorf("config: override %d in %s has no pattern", i+1, path)
		}
		if _, err := globutil.Compile(o.Pattern); err != nil {
			return nil, fmt.Errorf("config: override %d in %s: %w", i+1, path, err)
		}
	}

	return &f, nil
}

// For returns the effective settings for a document path: the defaults
// plus every override whose pattern matches, applied in declaration
// order. An empty docPath (stdin input) matches no overrides.
func (f *File) For(docPath string) Settings {
	s := f.Defaults
	if docPath == "" {
		return s
	}
	for _, o := range f.Overrides {
		patterns, err := globutil.Compile(o.Pattern)
		if err != nil {
			continue // validated at Load time
		}
		if patterns.Match(docPath) {
			s.merge(o.Settings)
		}
	}
	return s
}
