// Package issues provides a unified issue type for document analysis
// findings: duplicate keys, out-of-order keys, and structural problems.
package issues

import (
	"fmt"
	"sort"

	"github.com/erraggy/keysort/internal/severity"
)

// Codes identifying the kinds of issues the checker reports.
const (
	CodeDuplicateKey = "duplicate-key"
	CodeUnsortedKeys = "unsorted-keys"
	CodeNonStringKey = "non-string-key"
	CodeDepthLimit   = "depth-limit"
)

// Issue represents a single finding in a document.
type Issue struct {
	// Code identifies the kind of finding (see Code* constants)
	Code string
	// Path is the JSONPath to the enclosing object (e.g., "$.spec.ports[0]")
	Path string
	// Message is a human-readable description of the finding
	Message string
	// Severity indicates the severity level of the finding
	Severity severity.Severity
	// Key is the member key the finding is about (empty when not key-specific)
	Key string
	// Line is the 1-based line number in the source (0 if unknown)
	Line int
	// Column is the 1-based column number in the source (0 if unknown)
	Column int
	// File is the source file path (empty when the source was not a file)
	File string
}

// String returns a formatted representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	if i.Line > 0 {
		return fmt.Sprintf("%s %s (line %d, col %d): %s", symbol, i.Path, i.Line, i.Column, i.Message)
	}
	return fmt.Sprintf("%s %s: %s", symbol, i.Path, i.Message)
}

// Location returns the source location in IDE-friendly format.
// Returns "file:line:column" if file is set, "line:column" if only line is
// set, or the JSON path if location is unknown.
func (i Issue) Location() string {
	if i.Line == 0 {
		return i.Path
	}
	if i.File != "" {
		return fmt.Sprintf("%s:%d:%d", i.File, i.Line, i.Column)
	}
	return fmt.Sprintf("%d:%d", i.Line, i.Column)
}

// HasLocation returns true if this issue has source location information.
func (i Issue) HasLocation() bool {
	return i.Line > 0
}

// SortByLocation orders issues by line, then column, then path, so reports
// read top to bottom in source order. The sort is stable.
func SortByLocation(list []Issue) {
	sort.SliceStable(list, func(a, b int) bool {
		if list[a].Line != list[b].Line {
			return list[a].Line < list[b].Line
		}
		if list[a].Column != list[b].Column {
			return list[a].Column < list[b].Column
		}
		return list[a].Path < list[b].Path
	})
}

// CountAtLeast returns how many issues meet the severity threshold.
func CountAtLeast(list []Issue, threshold severity.Severity) int {
	n := 0
	for _, issue := range list {
		if issue.Severity.AtLeast(threshold) {
			n++
		}
	}
	return n
}
