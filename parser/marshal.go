package parser

import (
	"bytes"
	"fmt"

	"github.com/gowebpki/jcs"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/keysort/internal/jsonutil"
	"github.com/erraggy/keysort/internal/pathutil"
	"github.com/erraggy/keysort/kserrors"
)

// marshalMaxDepth bounds serializer recursion so a hand-built cyclic tree
// fails with an error instead of exhausting the stack. Parsed documents
// are depth-checked long before this.
const marshalMaxDepth = 10000

// indentUnit is the indentation step for JSON output.
const indentUnit = "  "

// MarshalJSON renders a node tree as two-space-indented JSON with a
// trailing newline. Member order is emitted exactly as it appears in the
// tree, and scalar number literals that are already valid JSON pass
// through verbatim, so formatting a document never rewrites its values.
//
// YAML-only scalar spellings (hex integers, boolean names, .inf) are
// normalized to their JSON equivalents; numbers with no JSON
// representation produce a transform error.
func MarshalJSON(root *yaml.Node) ([]byte, error) {
	n := unwrapDocument(root)
	if n == nil {
		return nil, &kserrors.TransformError{
			Stage:   "serialize",
			Message: "no document to serialize",
		}
	}

	w := &jsonWriter{pb: pathutil.Get()}
	defer pathutil.Put(w.pb)

	if err := w.writeNode(n, 0, 0); err != nil {
		return nil, err
	}
	w.buf.WriteByte('\n')
	return w.buf.Bytes(), nil
}

// MarshalYAML renders a node tree as YAML with two-space indentation.
// Scalar styles, comments, and anchors survive the round trip.
func MarshalYAML(root *yaml.Node) ([]byte, error) {
	n := unwrapDocument(root)
	if n == nil {
		return nil, &kserrors.TransformError{
			Stage:   "serialize",
			Message: "no document to serialize",
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		_ = enc.Close()
		return nil, &kserrors.TransformError{
			Stage:   "serialize",
			Message: "failed to encode YAML",
			Cause:   err,
		}
	}
	if err := enc.Close(); err != nil {
		return nil, &kserrors.TransformError{
			Stage:   "serialize",
			Message: "failed to encode YAML",
			Cause:   err,
		}
	}
	return buf.Bytes(), nil
}

// MarshalCanonicalJSON renders a node tree as RFC 8785 canonical JSON:
// minimal whitespace, lexicographically sorted keys, and normalized
// number spellings. The output carries no trailing newline so it can be
// hashed directly.
//
// The tree must be free of duplicate keys; canonicalization of a
// document that still carries duplicates would silently drop members,
// so it is rejected instead. Run duplicate removal first.
func MarshalCanonicalJSON(root *yaml.Node) ([]byte, error) {
	stats, err := computeStats(root, 0, "")
	if err != nil {
		return nil, err
	}
	if stats.DuplicateKeys > 0 {
		return nil, &kserrors.TransformError{
			Stage:   "canonicalize",
			Message: fmt.Sprintf("document has %d duplicate keys; remove duplicates before canonicalizing", stats.DuplicateKeys),
		}
	}

	indented, err := MarshalJSON(root)
	if err != nil {
		return nil, err
	}
	canonical, err := jcs.Transform(indented)
	if err != nil {
		return nil, &kserrors.TransformError{
			Stage:   "canonicalize",
			Message: "failed to canonicalize JSON",
			Cause:   err,
		}
	}
	return canonical, nil
}

// Marshal renders the document in the given format. SourceFormatUnknown
// falls back to the format the document was parsed from, so a YAML
// source round-trips to YAML and a JSON source to JSON.
//
// When a JSON-sourced document is rendered as YAML, presentation styles
// are cleared on a copy first; otherwise the encoder would reproduce the
// JSON flow layout.
func (r *ParseResult) Marshal(format SourceFormat) ([]byte, error) {
	if format == SourceFormatUnknown || format == "" {
		format = r.SourceFormat
	}
	switch format {
	case SourceFormatYAML:
		if r.SourceFormat == SourceFormatJSON {
			converted := CopyNode(r.Document)
			ClearStyles(converted)
			return MarshalYAML(converted)
		}
		return MarshalYAML(r.Document)
	default:
		return MarshalJSON(r.Document)
	}
}

// unwrapDocument returns the top-level value node, stepping through a
// document wrapper when present.
func unwrapDocument(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		return n.Content[0]
	}
	return n
}

// jsonWriter emits a node tree as indented JSON, tracking the JSONPath of
// the node being written for error reporting.
type jsonWriter struct {
	buf bytes.Buffer
	pb  *pathutil.Builder
}

func (w *jsonWriter) writeNode(n *yaml.Node, indent, depth int) error {
	if n == nil {
		return &kserrors.TransformError{
			JSONPath: w.pb.String(),
			Stage:    "serialize",
			Message:  "nil node in document tree",
		}
	}
	if depth > marshalMaxDepth {
		return &kserrors.TransformError{
			JSONPath: w.pb.String(),
			Stage:    "serialize",
			Message:  "nesting too deep to serialize",
		}
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return &kserrors.TransformError{
				Stage:   "serialize",
				Message: "no document to serialize",
			}
		}
		return w.writeNode(n.Content[0], indent, depth+1)
	case yaml.MappingNode:
		return w.writeObject(n, indent, depth)
	case yaml.SequenceNode:
		return w.writeArray(n, indent, depth)
	case yaml.ScalarNode:
		return w.writeScalar(n)
	case yaml.AliasNode:
		if n.Alias == nil {
			return &kserrors.TransformError{
				JSONPath: w.pb.String(),
				Stage:    "serialize",
				Message:  "unresolved alias node",
			}
		}
		return w.writeNode(n.Alias, indent, depth+1)
	default:
		return &kserrors.TransformError{
			JSONPath: w.pb.String(),
			Stage:    "serialize",
			Message:  fmt.Sprintf("unsupported node kind %d", n.Kind),
		}
	}
}

func (w *jsonWriter) writeObject(n *yaml.Node, indent, depth int) error {
	if len(n.Content)%2 != 0 {
		return &kserrors.TransformError{
			JSONPath: w.pb.String(),
			Stage:    "serialize",
			Message:  "object has a key with no value",
		}
	}
	if len(n.Content) == 0 {
		w.buf.WriteString("{}")
		return nil
	}

	w.buf.WriteString("{\n")
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if !IsStringKey(key) {
			return &kserrors.StructureError{
				JSONPath: w.pb.String(),
				Line:     key.Line,
				Column:   key.Column,
				Message:  "mapping key is not a string",
			}
		}

		w.writeIndent(indent + 1)
		if err := w.writeString(key.Value); err != nil {
			return err
		}
		w.buf.WriteString(": ")

		w.pb.PushKey(key.Value)
		err := w.writeNode(value, indent+1, depth+1)
		w.pb.Pop()
		if err != nil {
			return err
		}

		if i+2 < len(n.Content) {
			w.buf.WriteByte(',')
		}
		w.buf.WriteByte('\n')
	}
	w.writeIndent(indent)
	w.buf.WriteByte('}')
	return nil
}

func (w *jsonWriter) writeArray(n *yaml.Node, indent, depth int) error {
	if len(n.Content) == 0 {
		w.buf.WriteString("[]")
		return nil
	}

	w.buf.WriteString("[\n")
	for i, child := range n.Content {
		w.writeIndent(indent + 1)

		w.pb.PushIndex(i)
		err := w.writeNode(child, indent+1, depth+1)
		w.pb.Pop()
		if err != nil {
			return err
		}

		if i+1 < len(n.Content) {
			w.buf.WriteByte(',')
		}
		w.buf.WriteByte('\n')
	}
	w.writeIndent(indent)
	w.buf.WriteByte(']')
	return nil
}

func (w *jsonWriter) writeScalar(n *yaml.Node) error {
	// Quoted and block scalars are strings no matter how they resolve.
	const stringStyles = yaml.DoubleQuotedStyle | yaml.SingleQuotedStyle | yaml.LiteralStyle | yaml.FoldedStyle
	if n.Tag == "!!str" || n.Style&stringStyles != 0 {
		return w.writeString(n.Value)
	}

	switch n.Tag {
	case "!!null":
		w.buf.WriteString("null")
	case "!!bool":
		if isTrueLiteral(n.Value) {
			w.buf.WriteString("true")
		} else {
			w.buf.WriteString("false")
		}
	case "!!int", "!!float":
		return w.writeNumber(n)
	default:
		// Timestamps, binary, and custom-tagged scalars serialize as strings.
		return w.writeString(n.Value)
	}
	return nil
}

// writeNumber emits a numeric scalar. Literals that are already valid
// JSON numbers pass through verbatim, preserving the source spelling
// ("1e3", "0.10", "-0"). YAML-only spellings are re-encoded from the
// decoded value.
func (w *jsonWriter) writeNumber(n *yaml.Node) error {
	if jsonutil.Valid([]byte(n.Value)) {
		w.buf.WriteString(n.Value)
		return nil
	}

	var v any
	if err := n.Decode(&v); err != nil {
		return &kserrors.TransformError{
			JSONPath: w.pb.String(),
			Stage:    "serialize",
			Message:  fmt.Sprintf("cannot decode numeric scalar %q", n.Value),
			Cause:    err,
		}
	}
	encoded, err := jsonutil.Marshal(v)
	if err != nil {
		// Infinities and NaN land here.
		return &kserrors.TransformError{
			JSONPath: w.pb.String(),
			Stage:    "serialize",
			Message:  fmt.Sprintf("numeric value %q has no JSON representation", n.Value),
			Cause:    err,
		}
	}
	w.buf.Write(encoded)
	return nil
}

func (w *jsonWriter) writeString(s string) error {
	encoded, err := jsonutil.Marshal(s)
	if err != nil {
		return &kserrors.TransformError{
			JSONPath: w.pb.String(),
			Stage:    "serialize",
			Message:  "failed to encode string",
			Cause:    err,
		}
	}
	w.buf.Write(encoded)
	return nil
}

func (w *jsonWriter) writeIndent(level int) {
	for i := 0; i < level; i++ {
		w.buf.WriteString(indentUnit)
	}
}

// isTrueLiteral reports whether a !!bool scalar spells a true value.
// The YAML 1.2 core schema resolves only true/True/TRUE and
// false/False/FALSE as booleans.
func isTrueLiteral(v string) bool {
	return v == "true" || v == "True" || v == "TRUE"
}
