package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSourceFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    SourceFormat
		wantErr bool
	}{
		{"json", SourceFormatJSON, false},
		{"JSON", SourceFormatJSON, false},
		{"yaml", SourceFormatYAML, false},
		{"yml", SourceFormatYAML, false},
		{"  YAML  ", SourceFormatYAML, false},
		{"", SourceFormatUnknown, false},
		{"xml", SourceFormatUnknown, true},
		{"jsonl", SourceFormatUnknown, true},
	}
	for _, tt := range tests {
		t.Run("input_"+tt.input, func(t *testing.T) {
			got, err := ParseSourceFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{-5, "-5 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{52428800, "50.0 MiB"},
		{1073741824, "1.0 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.size), "FormatBytes(%d)", tt.size)
	}
}

func TestDetectFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want SourceFormat
	}{
		{"config.json", SourceFormatJSON},
		{"deploy.yaml", SourceFormatYAML},
		{"deploy.yml", SourceFormatYAML},
		{"DEPLOY.YAML", SourceFormatYAML},
		{"notes.txt", SourceFormatUnknown},
		{"Makefile", SourceFormatUnknown},
		{"/etc/app/settings.json", SourceFormatJSON},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, detectFormatFromPath(tt.path), "path %q", tt.path)
	}
}

func TestDetectFormatFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    SourceFormat
	}{
		{"object", `{"a": 1}`, SourceFormatJSON},
		{"array", `[1, 2]`, SourceFormatJSON},
		{"leading whitespace", "\n\t {\"a\": 1}", SourceFormatJSON},
		{"block mapping", "key: value\n", SourceFormatYAML},
		{"comment first", "# hello\nkey: value\n", SourceFormatYAML},
		{"empty", "", SourceFormatUnknown},
		{"whitespace only", "  \n ", SourceFormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectFormatFromContent([]byte(tt.content)))
		})
	}
}
