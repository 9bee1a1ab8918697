package sorter

import (
	"fmt"
	"io"

	"github.com/erraggy/keysort/internal/options"
	"github.com/erraggy/keysort/keyorder"
	"github.com/erraggy/keysort/kserrors"
	"github.com/erraggy/keysort/parser"
)

// ErrorPolicy selects what happens when the transform fails after
// configuration and parsing succeeded.
type ErrorPolicy int

const (
	// ErrorFail aborts the operation with the error. This is the default.
	ErrorFail ErrorPolicy = iota

	// ErrorPassThrough returns the source bytes unchanged and records the
	// error as a warning on the result, the behavior a formatter host
	// wants so one bad document does not abort a formatting run. It can
	// mask real bugs; prefer ErrorFail outside host integrations.
	ErrorPassThrough
)

// String returns the string representation of the policy.
func (p ErrorPolicy) String() string {
	switch p {
	case ErrorFail:
		return "fail"
	case ErrorPassThrough:
		return "pass-through"
	default:
		return fmt.Sprintf("ErrorPolicy(%d)", int(p))
	}
}

// ParseErrorPolicy parses an error policy name as used by CLI flags.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch s {
	case "", "fail":
		return ErrorFail, nil
	case "pass-through", "passthrough":
		return ErrorPassThrough, nil
	default:
		return ErrorFail, &kserrors.ConfigError{
			Option:  "onError",
			Value:   s,
			Message: "unknown error policy (expected fail or pass-through)",
		}
	}
}

// Option is a function that configures a sort operation
type Option func(*sortConfig) error

// sortConfig holds configuration for a sort operation
type sortConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte
	parsed   *parser.ParseResult

	// Configuration options
	recursive    bool
	order        keyorder.Order
	filePatterns string
	onError      ErrorPolicy
	outputFormat parser.SourceFormat
	maxFileSize  int64
	maxDepth     int
	logger       parser.Logger
}

// SortWithOptions sorts a document using functional options.
// This provides a flexible, extensible API that combines input source
// selection and configuration in a single function call.
//
// Example:
//
//	result, err := sorter.SortWithOptions(
//	    sorter.WithFilePath("settings.json"),
//	    sorter.WithRecursive(true),
//	    sorter.WithOrder(keyorder.PolicyNumeric),
//	)
func SortWithOptions(opts ...Option) (*SortResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	s := &Sorter{
		Recursive:    cfg.recursive,
		Order:        cfg.order,
		FilePatterns: cfg.filePatterns,
		OnError:      cfg.onError,
		OutputFormat: cfg.outputFormat,
		MaxFileSize:  cfg.maxFileSize,
		MaxDepth:     cfg.maxDepth,
		Logger:       cfg.logger,
	}

	// Route to the appropriate sort method based on input source
	switch {
	case cfg.filePath != nil:
		return s.Sort(*cfg.filePath)
	case cfg.parsed != nil:
		return s.SortParsed(cfg.parsed)
	case cfg.reader != nil:
		parsed, err := parser.ParseWithOptions(
			parser.WithReader(cfg.reader),
			parser.WithLogger(cfg.logger),
			parser.WithMaxFileSize(cfg.maxFileSize),
			parser.WithMaxDepth(cfg.maxDepth),
		)
		if err != nil {
			return nil, fmt.Errorf("sorter: failed to parse document: %w", err)
		}
		return s.SortParsed(parsed)
	case cfg.bytes != nil:
		parsed, err := parser.ParseWithOptions(
			parser.WithBytes(cfg.bytes),
			parser.WithLogger(cfg.logger),
			parser.WithMaxFileSize(cfg.maxFileSize),
			parser.WithMaxDepth(cfg.maxDepth),
		)
		if err != nil {
			return nil, fmt.Errorf("sorter: failed to parse document: %w", err)
		}
		return s.SortParsed(parsed)
	default:
		// Should never reach here due to validation in applyOptions
		return nil, fmt.Errorf("sorter: no input source specified")
	}
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*sortConfig, error) {
	cfg := &sortConfig{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"sorter: must specify an input source (use WithFilePath, WithReader, WithBytes, or WithParsed)",
		"sorter: must specify exactly one input source",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil, cfg.parsed != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies the file path of the document to sort
func WithFilePath(path string) Option {
	return func(cfg *sortConfig) error {
		if path == "" {
			return fmt.Errorf("file path cannot be empty")
		}
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the document source
func WithReader(r io.Reader) Option {
	return func(cfg *sortConfig) error {
		if r == nil {
			return fmt.Errorf("reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies in-memory document content to sort
func WithBytes(data []byte) Option {
	return func(cfg *sortConfig) error {
		if data == nil {
			return fmt.Errorf("bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithParsed specifies an already-parsed document to sort.
// The parsed tree is never mutated; the sorter works on a deep copy.
func WithParsed(result *parser.ParseResult) Option {
	return func(cfg *sortConfig) error {
		if result == nil {
			return fmt.Errorf("parsed result cannot be nil")
		}
		cfg.parsed = result
		return nil
	}
}

// WithRecursive enables sorting of nested objects at every depth
func WithRecursive(recursive bool) Option {
	return func(cfg *sortConfig) error {
		cfg.recursive = recursive
		return nil
	}
}

// WithOrder specifies a named sort policy
func WithOrder(policy keyorder.Policy) Option {
	return func(cfg *sortConfig) error {
		if !policy.IsValid() {
			return &kserrors.ConfigError{
				Option:  "sortOrder",
				Value:   policy.String(),
				Message: "unknown sort policy",
			}
		}
		cfg.order = policy
		return nil
	}
}

// WithCustomOrder specifies a custom per-key ordering
func WithCustomOrder(order *keyorder.CustomOrder) Option {
	return func(cfg *sortConfig) error {
		if order == nil {
			return fmt.Errorf("custom order cannot be nil")
		}
		cfg.order = order
		return nil
	}
}

// WithOrderSpec specifies the sort order as raw configuration text:
// either one of the nine policy identifiers or a JSON object mapping
// keys to policies. Invalid text fails here, before any document is
// touched.
func WithOrderSpec(text string) Option {
	return func(cfg *sortConfig) error {
		order, err := keyorder.ParseOrderSpec(text)
		if err != nil {
			return err
		}
		cfg.order = order
		return nil
	}
}

// WithFilePatterns restricts the transform to documents whose source
// path matches one of the comma-separated glob patterns. Non-matching
// documents pass through unchanged with Skipped set on the result.
func WithFilePatterns(patterns string) Option {
	return func(cfg *sortConfig) error {
		cfg.filePatterns = patterns
		return nil
	}
}

// WithOnError selects the processing-failure policy
func WithOnError(policy ErrorPolicy) Option {
	return func(cfg *sortConfig) error {
		cfg.onError = policy
		return nil
	}
}

// WithOutputFormat selects the serialization format of the result.
// SourceFormatUnknown means the source format.
func WithOutputFormat(format parser.SourceFormat) Option {
	return func(cfg *sortConfig) error {
		cfg.outputFormat = format
		return nil
	}
}

// WithMaxFileSize caps the input size in bytes
func WithMaxFileSize(limit int64) Option {
	return func(cfg *sortConfig) error {
		cfg.maxFileSize = limit
		return nil
	}
}

// WithMaxDepth caps container nesting depth
func WithMaxDepth(depth int) Option {
	return func(cfg *sortConfig) error {
		cfg.maxDepth = depth
		return nil
	}
}

// WithLogger sets the logger for diagnostics
func WithLogger(logger parser.Logger) Option {
	return func(cfg *sortConfig) error {
		cfg.logger = logger
		return nil
	}
}
