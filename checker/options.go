package checker

import (
	"fmt"
	"io"

	"github.com/erraggy/keysort/internal/options"
	"github.com/erraggy/keysort/keyorder"
	"github.com/erraggy/keysort/kserrors"
	"github.com/erraggy/keysort/parser"
)

// Option is a function that configures a check operation
type Option func(*checkConfig) error

// checkConfig holds configuration for a check operation
type checkConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte
	parsed   *parser.ParseResult

	// Configuration options
	recursive   bool
	order       keyorder.Order
	maxFileSize int64
	maxDepth    int
	logger      parser.Logger
}

// CheckWithOptions analyzes a document using functional options.
//
// Example:
//
//	result, err := checker.CheckWithOptions(
//	    checker.WithFilePath("settings.json"),
//	    checker.WithOrder(keyorder.PolicyNumeric),
//	)
func CheckWithOptions(opts ...Option) (*CheckResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	c := &Checker{
		Recursive:   cfg.recursive,
		Order:       cfg.order,
		MaxFileSize: cfg.maxFileSize,
		MaxDepth:    cfg.maxDepth,
		Logger:      cfg.logger,
	}

	switch {
	case cfg.filePath != nil:
		return c.Check(*cfg.filePath)
	case cfg.parsed != nil:
		return c.CheckParsed(cfg.parsed)
	default:
		var parseOpts []parser.Option
		if cfg.reader != nil {
			parseOpts = append(parseOpts, parser.WithReader(cfg.reader))
		} else {
			parseOpts = append(parseOpts, parser.WithBytes(cfg.bytes))
		}
		parseOpts = append(parseOpts,
			parser.WithLogger(cfg.logger),
			parser.WithMaxFileSize(cfg.maxFileSize),
			parser.WithMaxDepth(cfg.maxDepth),
		)
		parsed, err := parser.ParseWithOptions(parseOpts...)
		if err != nil {
			return nil, fmt.Errorf("checker: failed to parse document: %w", err)
		}
		return c.CheckParsed(parsed)
	}
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*checkConfig, error) {
	cfg := &checkConfig{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"checker: must specify an input source (use WithFilePath, WithReader, WithBytes, or WithParsed)",
		"checker: must specify exactly one input source",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil, cfg.parsed != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies the file path of the document to check
func WithFilePath(path string) Option {
	return func(cfg *checkConfig) error {
		if path == "" {
			return fmt.Errorf("file path cannot be empty")
		}
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the document source
func WithReader(r io.Reader) Option {
	return func(cfg *checkConfig) error {
		if r == nil {
			return fmt.Errorf("reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies in-memory document content to check
func WithBytes(data []byte) Option {
	return func(cfg *checkConfig) error {
		if data == nil {
			return fmt.Errorf("bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithParsed specifies an already-parsed document to check
func WithParsed(result *parser.ParseResult) Option {
	return func(cfg *checkConfig) error {
		if result == nil {
			return fmt.Errorf("parsed result cannot be nil")
		}
		cfg.parsed = result
		return nil
	}
}

// WithRecursive extends the ordering check to nested objects
func WithRecursive(recursive bool) Option {
	return func(cfg *checkConfig) error {
		cfg.recursive = recursive
		return nil
	}
}

// WithOrder specifies the named policy keys are checked against
func WithOrder(policy keyorder.Policy) Option {
	return func(cfg *checkConfig) error {
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

// WithOrderSpec specifies the expected order as raw configuration text:
// a policy identifier or a JSON custom-order object
func WithOrderSpec(text string) Option {
	return func(cfg *checkConfig) error {
		order, err := keyorder.ParseOrderSpec(text)
		if err != nil {
			return err
		}
		cfg.order = order
		return nil
	}
}

// WithMaxFileSize caps the input size in bytes
func WithMaxFileSize(limit int64) Option {
	return func(cfg *checkConfig) error {
		cfg.maxFileSize = limit
		return nil
	}
}

// WithMaxDepth caps container nesting depth
func WithMaxDepth(depth int) Option {
	return func(cfg *checkConfig) error {
		cfg.maxDepth = depth
		return nil
	}
}

// WithLogger sets the logger for diagnostics
func WithLogger(logger parser.Logger) Option {
	return func(cfg *checkConfig) error {
		cfg.logger = logger
		return nil
	}
}
