package sorter

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/keysort/internal/globutil"
	"github.com/erraggy/keysort/keyorder"
	"github.com/erraggy/keysort/kserrors"
	"github.com/erraggy/keysort/parser"
)

// ChangeKind identifies the category of a recorded change.
type ChangeKind string

const (
	// ChangeDuplicateRemoved indicates a repeated key and its value
	// subtree were removed from an object.
	ChangeDuplicateRemoved ChangeKind = "duplicate-removed"

	// ChangeKeysReordered indicates an object's key sequence changed
	// under the configured sort order.
	ChangeKeysReordered ChangeKind = "keys-reordered"
)

// Change represents a single modification made to the document.
type Change struct {
	// Kind identifies the category of change
	Kind ChangeKind
	// Path is the JSONPath to the enclosing object (e.g., "$.database.options")
	Path string
	// Key is the removed duplicate key, or the first key whose position
	// changed in a reorder
	Key string
	// Line is the 1-based source line of the affected key (0 if unknown)
	Line int
	// Column is the 1-based source column of the affected key (0 if unknown)
	Column int
	// Description is a human-readable description of the change
	Description string
}

// String returns a formatted representation of the change.
func (c Change) String() string {
	if c.Line > 0 {
		return fmt.Sprintf("%s %s (line %d, col %d): %s", c.Kind, c.Path, c.Line, c.Column, c.Description)
	}
	return fmt.Sprintf("%s %s: %s", c.Kind, c.Path, c.Description)
}

// SortResult contains the results of a sort operation.
type SortResult struct {
	// Document is the root of the transformed node tree. It is always a
	// deep copy; the input tree is never mutated.
	Document *yaml.Node
	// Output is the transformed document serialized in OutputFormat.
	// When Skipped is true it holds the source bytes unchanged.
	Output []byte
	// SourcePath is the path to the source file
	SourcePath string
	// SourceFormat is the format of the source document (JSON or YAML)
	SourceFormat parser.SourceFormat
	// OutputFormat is the format Output is serialized in
	OutputFormat parser.SourceFormat
	// Changes contains all modifications made, in document order
	Changes []Change
	// DuplicatesRemoved is the number of duplicate keys removed
	DuplicatesRemoved int
	// ObjectsReordered is the number of objects whose key sequence changed
	ObjectsReordered int
	// Skipped is true when a file-pattern filter excluded the document;
	// the document passed through untransformed
	Skipped bool
	// SkipReason explains why the document was skipped
	SkipReason string
	// Warnings holds errors suppressed by ErrorPassThrough
	Warnings []string
	// Stats contains statistical information about the source document
	Stats parser.DocumentStats
	// Duration is how long the operation took, parsing included
	Duration time.Duration
}

// HasChanges returns true if the transform modified the document.
func (r *SortResult) HasChanges() bool {
	return len(r.Changes) > 0
}

// Sorter handles key deduplication and sorting of parsed documents.
// The zero value sorts non-recursively in lexical order.
type Sorter struct {
	// Recursive enables sorting of nested objects at every depth,
	// including objects reached only through arrays. When false, only
	// the root object's direct keys are sorted. Deduplication is always
	// recursive regardless of this flag.
	Recursive bool

	// Order determines the key ordering: a keyorder.Policy or a
	// *keyorder.CustomOrder. Nil means keyorder.DefaultPolicy.
	Order keyorder.Order

	// FilePatterns is an optional comma-separated glob list. When set,
	// documents whose source path matches no pattern pass through
	// untransformed.
	FilePatterns string

	// OnError selects what happens when the transform itself fails:
	// ErrorFail (default) aborts with the error, ErrorPassThrough
	// returns the source bytes unchanged and records the error as a
	// warning on the result.
	OnError ErrorPolicy

	// OutputFormat selects the serialization format of the result.
	// SourceFormatUnknown (the default) means the source format.
	OutputFormat parser.SourceFormat

	// MaxFileSize caps the input size in bytes (see parser.Parser).
	MaxFileSize int64

	// MaxDepth caps container nesting (see parser.Parser).
	MaxDepth int

	// Logger receives structured diagnostics. When nil, logging is disabled.
	Logger parser.Logger
}

// New creates a Sorter with default settings: non-recursive, lexical
// order, fail on processing errors.
func New() *Sorter {
	return &Sorter{}
}

// log returns the configured logger, or a NopLogger when none is set.
func (s *Sorter) log() parser.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return parser.NopLogger{}
}

func (s *Sorter) effectiveMaxDepth() int {
	switch {
	case s.MaxDepth < 0:
		return 0
	case s.MaxDepth == 0:
		return parser.DefaultMaxDepth
	default:
		return s.MaxDepth
	}
}

// order returns the configured ordering, defaulting to lexical.
func (s *Sorter) order() keyorder.Order {
	if s.Order != nil {
		return s.Order
	}
	return keyorder.DefaultPolicy
}

// Sort parses and transforms the document at the given file path.
//
// Configuration is validated before the file is read, so an unknown sort
// policy or a malformed pattern list never touches the document.
func (s *Sorter) Sort(docPath string) (*SortResult, error) {
	start := time.Now()

	patterns, err := s.compilePatterns()
	if err != nil {
		return nil, err
	}

	// Pattern exclusion is decided on the path alone; a skipped document
	// is still read (the caller wants its bytes back) but never parsed.
	if patterns != nil && !patterns.Match(docPath) {
		result, err := s.skipResult(docPath, patterns)
		if err != nil {
			return nil, err
		}
		result.Duration = time.Since(start)
		return result, nil
	}

	p := &parser.Parser{
		Logger:      s.Logger,
		MaxFileSize: s.MaxFileSize,
		MaxDepth:    s.MaxDepth,
	}
	parsed, err := p.Parse(docPath)
	if err != nil {
		return nil, fmt.Errorf("sorter: failed to parse document: %w", err)
	}

	result, err := s.transform(parsed)
	if err != nil {
		return nil, err
	}
	result.Duration = time.Since(start)
	return result, nil
}

// SortParsed transforms an already-parsed document. The caller's tree is
// never mutated: the transform operates on a deep copy.
func (s *Sorter) SortParsed(parsed *parser.ParseResult) (*SortResult, error) {
	start := time.Now()

	if parsed == nil || parsed.Document == nil {
		return nil, fmt.Errorf("sorter: document could not be parsed (nil document)")
	}

	patterns, err := s.compilePatterns()
	if err != nil {
		return nil, err
	}
	if patterns != nil && !patterns.Match(parsed.SourcePath) {
		result := &SortResult{
			Document:     parser.CopyNode(parsed.Document),
			Output:       parsed.Source,
			SourcePath:   parsed.SourcePath,
			SourceFormat: parsed.SourceFormat,
			OutputFormat: parsed.SourceFormat,
			Skipped:      true,
			SkipReason:   fmt.Sprintf("path %q matches no pattern in %q", parsed.SourcePath, patterns),
			Stats:        parsed.Stats,
			Duration:     time.Since(start),
		}
		return result, nil
	}

	result, err := s.transform(parsed)
	if err != nil {
		return nil, err
	}
	result.Duration = time.Since(start)
	return result, nil
}

// compilePatterns validates the FilePatterns list. It returns nil when no
// filtering is configured.
func (s *Sorter) compilePatterns() (*globutil.Patterns, error) {
	if s.FilePatterns == "" {
		return nil, nil
	}
	patterns, err := globutil.Compile(s.FilePatterns)
	if err != nil {
		return nil, &kserrors.ConfigError{
			Option:  "filePattern",
			Value:   s.FilePatterns,
			Message: "invalid pattern list",
			Cause:   err,
		}
	}
	if patterns.Empty() {
		return nil, nil
	}
	return patterns, nil
}

// skipResult builds the pass-through result for a pattern-excluded file.
// The file is read so the caller gets its bytes back, but never parsed.
func (s *Sorter) skipResult(docPath string, patterns *globutil.Patterns) (*SortResult, error) {
	source, err := os.ReadFile(docPath)
	if err != nil {
		return nil, fmt.Errorf("sorter: failed to read file %s: %w", docPath, err)
	}
	s.log().Debug("skipping document", "path", docPath, "patterns", patterns.String())
	return &SortResult{
		Output:     source,
		SourcePath: docPath,
		Skipped:    true,
		SkipReason: fmt.Sprintf("path %q matches no pattern in %q", docPath, patterns),
	}, nil
}

// transform runs the dedupe and sort passes over a copy of the parsed
// tree and serializes the outcome. Failures honor the OnError policy.
func (s *Sorter) transform(parsed *parser.ParseResult) (*SortResult, error) {
	result, err := s.run(parsed)
	if err == nil {
		return result, nil
	}
	if s.OnError == ErrorPassThrough {
		s.log().Warn("transform failed, passing document through",
			"path", parsed.SourcePath, "error", err)
		return &SortResult{
			Output:       parsed.Source,
			SourcePath:   parsed.SourcePath,
			SourceFormat: parsed.SourceFormat,
			OutputFormat: parsed.SourceFormat,
			Warnings:     []string{err.Error()},
			Stats:        parsed.Stats,
		}, nil
	}
	return nil, err
}

// run is the transform pipeline: copy, dedupe, sort, serialize.
func (s *Sorter) run(parsed *parser.ParseResult) (*SortResult, error) {
	copied := parsed.Copy()

	result := &SortResult{
		Document:     copied.Document,
		SourcePath:   parsed.SourcePath,
		SourceFormat: parsed.SourceFormat,
		OutputFormat: s.OutputFormat,
		Stats:        parsed.Stats,
	}
	if result.OutputFormat == parser.SourceFormatUnknown || result.OutputFormat == "" {
		result.OutputFormat = parsed.SourceFormat
	}

	maxDepth := s.effectiveMaxDepth()

	dupes, err := dedupeTree(copied.Root(), parsed.SourcePath, maxDepth)
	if err != nil {
		return nil, err
	}
	result.Changes = append(result.Changes, dupes...)
	result.DuplicatesRemoved = len(dupes)

	if cmp := s.order().Comparator(); cmp != nil {
		reorders, err := sortTree(copied.Root(), cmp, s.Recursive, parsed.SourcePath, maxDepth)
		if err != nil {
			return nil, err
		}
		result.Changes = append(result.Changes, reorders...)
		result.ObjectsReordered = len(reorders)
	}

	output, err := copied.Marshal(result.OutputFormat)
	if err != nil {
		return nil, err
	}
	result.Output = output

	s.log().Debug("transformed document",
		"path", result.SourcePath,
		"order", s.order().String(),
		"recursive", s.Recursive,
		"duplicatesRemoved", result.DuplicatesRemoved,
		"objectsReordered", result.ObjectsReordered)
	return result, nil
}

// depthLimit builds the error for a walk that exceeded the nesting limit.
func depthLimit(maxDepth, depth int, jsonPath string) error {
	return &kserrors.ResourceLimitError{
		ResourceType: "nesting_depth",
		Limit:        int64(maxDepth),
		Actual:       int64(depth),
		Message:      fmt.Sprintf("nesting depth limit exceeded at %s", jsonPath),
	}
}

// nonStringKey builds the error for a mapping key the transform cannot
// process. Parsed documents are rejected earlier; this guards hand-built
// trees handed to SortParsed.
func nonStringKey(sourcePath, jsonPath string, key *yaml.Node) error {
	return &kserrors.StructureError{
		Path:     sourcePath,
		JSONPath: jsonPath,
		Line:     key.Line,
		Column:   key.Column,
		Message:  "mapping key is not a string",
	}
}
