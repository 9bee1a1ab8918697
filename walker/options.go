package walker

import (
	"context"
	"fmt"

	"github.com/erraggy/keysort/parser"
)

// WithFilePath specifies a file path to parse and walk.
func WithFilePath(path string) Option {
	return func(w *Walker) {
		w.filePath = &path
	}
}

// WithParsed specifies a pre-parsed result to walk.
func WithParsed(result *parser.ParseResult) Option {
	return func(w *Walker) {
		w.parsed = result
	}
}

// WithUserContext sets the context for cancellation and deadline propagation.
// The context is available to handlers via wc.Context().
func WithUserContext(ctx context.Context) Option {
	return func(w *Walker) {
		w.userCtx = ctx
	}
}

// WalkWithOptions walks a document using functional options for input,
// handlers, and configuration. All options use the unified Option type.
//
// Example:
//
//	walker.WalkWithOptions(
//	    walker.WithFilePath("config.json"),
//	    walker.WithMemberHandler(func(wc *walker.WalkContext, key, value *yaml.Node) walker.Action {
//	        fmt.Println(wc.JSONPath)
//	        return walker.Continue
//	    }),
//	)
func WalkWithOptions(opts ...Option) error {
	w := New()
	for _, opt := range opts {
		opt(w)
	}

	// Validate input
	if w.parsed == nil && w.filePath == nil {
		return fmt.Errorf("walker: no input source specified: use WithFilePath or WithParsed")
	}
	if w.parsed != nil && w.filePath != nil {
		return fmt.Errorf("walker: multiple input sources specified: use only one")
	}

	// Get or create ParseResult
	var result *parser.ParseResult
	if w.parsed != nil {
		result = w.parsed
	} else {
		p := parser.New()
		var err error
		result, err = p.Parse(*w.filePath)
		if err != nil {
			return fmt.Errorf("walker: failed to parse: %w", err)
		}
	}

	if result.Document == nil {
		return fmt.Errorf("walker: nil Document in ParseResult")
	}

	return w.walk(result.Document)
}
