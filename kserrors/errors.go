// Package kserrors provides structured error types for keysort.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - ConfigError: Invalid options, unknown sort policies, malformed custom orders
//   - ParseError: JSON/YAML deserialization failures
//   - StructureError: Well-formed documents the transform cannot process
//   - TransformError: Failures inside the dedup/sort/serialize pipeline
//   - ResourceLimitError: Resource exhaustion (depth, size limits)
//
// # Usage with errors.Is
//
//	result, err := sorter.SortWithOptions(sorter.WithFilePath("data.json"))
//	if err != nil {
//	    var cfgErr *kserrors.ConfigError
//	    if errors.As(err, &cfgErr) {
//	        // Bad option; report before touching the document
//	    }
//	}
package kserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")

	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrStructure indicates a document shape the transform cannot process.
	ErrStructure = errors.New("structure error")

	// ErrTransform indicates a failure inside the transform pipeline.
	ErrTransform = errors.New("transform error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")
)

// ConfigError represents an invalid configuration or input.
// This includes unknown sort policy identifiers, malformed custom-order
// mappings, invalid file patterns, and conflicting input sources. It is
// always reported before any document processing begins.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// ParseError represents a failure to parse a document.
// This covers JSON and YAML deserialization errors.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Format is the detected source format ("json", "yaml", or "" if unknown)
	Format string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// StructureError represents a well-formed document that the transform
// cannot process, such as a YAML mapping whose key is not a plain string
// scalar.
type StructureError struct {
	// Path is the file path or source identifier
	Path string
	// JSONPath is the location of the problematic node (e.g., "$.items[2]")
	JSONPath string
	// Line is the line number of the problematic node (0 if unknown)
	Line int
	// Column is the column number of the problematic node (0 if unknown)
	Column int
	// Message describes the structural problem
	Message string
}

// Error returns a human-readable error message.
func (e *StructureError) Error() string {
	msg := "structure error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.JSONPath != "" {
		msg += " at " + e.JSONPath
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" (line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as StructureError has no underlying cause.
func (e *StructureError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *StructureError) Is(target error) bool {
	return target == ErrStructure
}

// TransformError represents an unexpected failure inside the transform
// pipeline after configuration and parsing succeeded.
type TransformError struct {
	// Path is the file path or source identifier
	Path string
	// JSONPath is the location being processed when the failure occurred
	JSONPath string
	// Stage identifies the pipeline stage: "dedupe", "sort",
	// "serialize", or "canonicalize"
	Stage string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *TransformError) Error() string {
	msg := "transform error"
	if e.Stage != "" {
		msg += " during " + e.Stage
	}
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.JSONPath != "" {
		msg += " at " + e.JSONPath
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *TransformError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *TransformError) Is(target error) bool {
	return target == ErrTransform
}

// ResourceLimitError represents a resource exhaustion condition.
// This occurs when parsing or traversal exceeds configured limits.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded
	// Common values: "nesting_depth", "file_size"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as ResourceLimitError has no underlying cause.
func (e *ResourceLimitError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}
