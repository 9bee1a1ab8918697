// Package parser loads JSON and YAML documents into an order-preserving
// node tree for key inspection and rewriting.
//
// Unlike encoding/json or a plain yaml map decode, the parser never folds
// duplicate object keys and never loses member order: documents are parsed
// into a yaml.Node tree in which every object member appears exactly as it
// did in the source, including repeated keys. This is the property the
// sorter and checker packages build on.
//
// JSON input is validated strictly before it is parsed, so JSON documents
// that rely on YAML leniencies (unquoted keys, trailing commas, comments)
// are rejected with a parse error rather than silently accepted.
package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/keysort/internal/jsonutil"
	"github.com/erraggy/keysort/kserrors"
)

const (
	// DefaultMaxFileSize is the maximum input size accepted when
	// Parser.MaxFileSize is zero (50 MiB).
	DefaultMaxFileSize int64 = 50 * 1024 * 1024

	// DefaultMaxDepth is the maximum container nesting depth accepted when
	// Parser.MaxDepth is zero. The root container counts as depth 1.
	DefaultMaxDepth = 100
)

// utf8BOM is stripped from input before format detection and parsing.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parser loads documents into order-preserving node trees.
// The zero value is usable; New applies no additional configuration.
type Parser struct {
	// Logger receives structured diagnostics. When nil, logging is disabled.
	Logger Logger

	// MaxFileSize caps the input size in bytes. Zero means
	// DefaultMaxFileSize; a negative value disables the limit.
	MaxFileSize int64

	// MaxDepth caps container nesting. Zero means DefaultMaxDepth;
	// a negative value disables the limit.
	MaxDepth int

	// Format forces the input format instead of auto-detecting it from the
	// file extension and content. Leave as SourceFormatUnknown to detect.
	Format SourceFormat
}

// New creates a Parser with default configuration.
func New() *Parser {
	return &Parser{}
}

// log returns the configured logger, or a NopLogger when none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

func (p *Parser) effectiveMaxFileSize() int64 {
	switch {
	case p.MaxFileSize < 0:
		return 0
	case p.MaxFileSize == 0:
		return DefaultMaxFileSize
	default:
		return p.MaxFileSize
	}
}

func (p *Parser) effectiveMaxDepth() int {
	switch {
	case p.MaxDepth < 0:
		return 0
	case p.MaxDepth == 0:
		return DefaultMaxDepth
	default:
		return p.MaxDepth
	}
}

// ParseResult holds a parsed document and metadata about how it was loaded.
type ParseResult struct {
	// SourcePath identifies where the document came from. For ParseReader
	// and ParseBytes a synthetic name is used.
	SourcePath string

	// SourceFormat is the detected (or forced) input format.
	SourceFormat SourceFormat

	// Document is the root of the parsed node tree. Its kind is
	// yaml.DocumentNode; use Root to access the top-level value.
	Document *yaml.Node

	// Source holds the raw input bytes exactly as read, after BOM removal.
	Source []byte

	// Stats summarizes the document structure.
	Stats DocumentStats

	// LoadTime is how long reading and parsing took.
	LoadTime time.Duration

	// SourceSize is the input size in bytes.
	SourceSize int64
}

// Root returns the top-level value node of the document, unwrapping the
// document node. It returns nil if the result holds no document.
func (r *ParseResult) Root() *yaml.Node {
	if r == nil || r.Document == nil || len(r.Document.Content) == 0 {
		return nil
	}
	return r.Document.Content[0]
}

// Copy returns a deep copy of the result. The node tree is fully copied,
// so mutating the copy's Document never affects the original.
func (r *ParseResult) Copy() *ParseResult {
	if r == nil {
		return nil
	}
	dup := *r
	dup.Document = CopyNode(r.Document)
	if r.Source != nil {
		dup.Source = make([]byte, len(r.Source))
		copy(dup.Source, r.Source)
	}
	return &dup
}

// Parse loads and parses the document at the given file path.
//
// The format is detected from the file extension, falling back to content
// sniffing. Inputs larger than the configured size limit are rejected
// before being read.
func (p *Parser) Parse(docPath string) (*ParseResult, error) {
	start := time.Now()

	info, err := os.Stat(docPath)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to stat file %s: %w", docPath, err)
	}
	if limit := p.effectiveMaxFileSize(); limit > 0 && info.Size() > limit {
		return nil, &kserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Actual:       info.Size(),
			Message:      fmt.Sprintf("file %s exceeds the maximum input size", docPath),
		}
	}

	data, err := os.ReadFile(docPath)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file %s: %w", docPath, err)
	}

	format := p.Format
	if format == SourceFormatUnknown || format == "" {
		format = detectFormatFromPath(docPath)
	}

	result, err := p.parseBytes(data, docPath, format)
	if err != nil {
		return nil, err
	}
	result.LoadTime = time.Since(start)

	p.log().Debug("parsed document",
		"path", result.SourcePath,
		"format", result.SourceFormat,
		"size", FormatBytes(result.SourceSize),
		"objects", result.Stats.Objects,
		"duration", result.LoadTime)
	return result, nil
}

// ParseReader reads the full contents of r and parses them.
// The synthetic source path is "ParseReader.json" or "ParseReader.yaml"
// depending on the detected format.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	start := time.Now()

	if r == nil {
		return nil, fmt.Errorf("parser: reader cannot be nil")
	}

	var data []byte
	var err error
	if limit := p.effectiveMaxFileSize(); limit > 0 {
		// Read one byte past the limit so oversized input is detected
		// without buffering the entire stream.
		data, err = io.ReadAll(io.LimitReader(r, limit+1))
		if err == nil && int64(len(data)) > limit {
			return nil, &kserrors.ResourceLimitError{
				ResourceType: "file_size",
				Limit:        limit,
				Actual:       int64(len(data)),
				Message:      "reader input exceeds the maximum input size",
			}
		}
	} else {
		data, err = io.ReadAll(r)
	}
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read input: %w", err)
	}

	result, err := p.parseBytes(data, "", p.Format)
	if err != nil {
		return nil, err
	}
	result.SourcePath = "ParseReader." + result.SourceFormat.String()
	result.LoadTime = time.Since(start)
	return result, nil
}

// ParseBytes parses a document held in memory.
// The synthetic source path is "ParseBytes.json" or "ParseBytes.yaml"
// depending on the detected format.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	start := time.Now()

	result, err := p.parseBytes(data, "", p.Format)
	if err != nil {
		return nil, err
	}
	result.SourcePath = "ParseBytes." + result.SourceFormat.String()
	result.LoadTime = time.Since(start)
	return result, nil
}

// parseBytes is the shared parse path: it enforces resource limits,
// resolves the format, validates JSON strictly, and decodes the input
// into a node tree with duplicate keys and member order intact.
func (p *Parser) parseBytes(data []byte, sourcePath string, format SourceFormat) (*ParseResult, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	if limit := p.effectiveMaxFileSize(); limit > 0 && int64(len(data)) > limit {
		return nil, &kserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Actual:       int64(len(data)),
			Message:      "input exceeds the maximum input size",
		}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &kserrors.ParseError{
			Path:    sourcePath,
			Format:  format.String(),
			Message: "document is empty",
		}
	}

	if format == SourceFormatUnknown || format == "" {
		format = detectFormatFromContent(data)
	}

	// Strict JSON validation happens before the node decode: the YAML
	// parser accepts a superset of JSON, and a key-rewriting tool must not
	// quietly repair malformed JSON on the way through.
	if format == SourceFormatJSON && !jsonutil.Valid(data) {
		var probe any
		cause := jsonutil.Unmarshal(data, &probe)
		return nil, &kserrors.ParseError{
			Path:    sourcePath,
			Format:  format.String(),
			Message: "invalid JSON",
			Cause:   cause,
		}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	var root yaml.Node
	if err := dec.Decode(&root); err != nil && err != io.EOF {
		return nil, &kserrors.ParseError{
			Path:    sourcePath,
			Format:  format.String(),
			Message: "invalid document",
			Cause:   err,
		}
	}
	// A YAML stream may carry further documents; rewriting a stream
	// would drop everything after the first, so refuse it outright.
	var extra yaml.Node
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, &kserrors.ParseError{
			Path:    sourcePath,
			Format:  format.String(),
			Message: "multi-document streams are not supported",
		}
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		// Comment-only or directive-only input decodes to an empty node.
		return nil, &kserrors.ParseError{
			Path:    sourcePath,
			Format:  format.String(),
			Message: "document is empty",
		}
	}

	stats, err := computeStats(&root, p.effectiveMaxDepth(), sourcePath)
	if err != nil {
		return nil, err
	}

	return &ParseResult{
		SourcePath:   sourcePath,
		SourceFormat: format,
		Document:     &root,
		Source:       data,
		Stats:        stats,
		SourceSize:   int64(len(data)),
	}, nil
}
