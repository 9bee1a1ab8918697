package parser

import "go.yaml.in/yaml/v4"

// CopyNode returns a deep copy of a node tree. Anchored nodes that are
// referenced from several places are copied once and shared in the copy,
// preserving the alias structure of the original.
func CopyNode(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	return copyNode(n, make(map[*yaml.Node]*yaml.Node))
}

func copyNode(n *yaml.Node, seen map[*yaml.Node]*yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	if dup, ok := seen[n]; ok {
		return dup
	}

	dup := *n
	// Register before recursing so self-referential alias chains terminate.
	seen[n] = &dup

	dup.Alias = copyNode(n.Alias, seen)
	if n.Content != nil {
		dup.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			dup.Content[i] = copyNode(child, seen)
		}
	}
	return &dup
}

// ClearStyles recursively resets presentation styles so the YAML encoder
// chooses layout. A document parsed from JSON carries flow and
// double-quoted styles on every node; encoding it to YAML without
// clearing them reproduces the JSON layout verbatim.
func ClearStyles(n *yaml.Node) {
	if n == nil {
		return
	}
	n.Style = 0
	for _, child := range n.Content {
		ClearStyles(child)
	}
}

// IsObject reports whether n is an object (mapping) node.
func IsObject(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.MappingNode
}

// IsArray reports whether n is an array (sequence) node.
func IsArray(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.SequenceNode
}

// IsScalar reports whether n is a scalar node.
func IsScalar(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode
}

// IsStringKey reports whether n can serve as an object key: a scalar
// node resolved as a string. JSON object keys always satisfy this; YAML
// permits other key kinds, which this module rejects.
func IsStringKey(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode && n.Tag == "!!str"
}

// ObjectKeys returns the member keys of an object node in document order,
// including repeated keys. Non-string keys are skipped; callers that need
// to reject them should check IsStringKey while walking. Returns nil when
// n is not an object.
func ObjectKeys(n *yaml.Node) []string {
	if !IsObject(n) {
		return nil
	}
	keys := make([]string, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if IsStringKey(n.Content[i]) {
			keys = append(keys, n.Content[i].Value)
		}
	}
	return keys
}
