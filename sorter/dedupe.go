package sorter

import (
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/keysort/internal/pathutil"
	"github.com/erraggy/keysort/parser"
)

// dedupeTree removes duplicate keys from every object in the tree.
//
// Deduplication is scoped per object: each mapping node gets a fresh seen
// set, so a key repeated at the top level and the same key inside a
// nested object are independent. Within one object the first occurrence
// in source order wins and keeps its position; later occurrences are
// removed together with their value subtrees. Arrays are walked to reach
// nested objects but are never themselves deduplicated.
func dedupeTree(root *yaml.Node, sourcePath string, maxDepth int) ([]Change, error) {
	pb := pathutil.Get()
	defer pathutil.Put(pb)

	var changes []Change
	err := dedupeNode(root, 0, maxDepth, sourcePath, pb, &changes)
	return changes, err
}

func dedupeNode(n *yaml.Node, parentDepth, maxDepth int, sourcePath string, pb *pathutil.Builder, changes *[]Change) error {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case yaml.MappingNode:
		depth := parentDepth + 1
		if maxDepth > 0 && depth > maxDepth {
			return depthLimit(maxDepth, depth, pb.String())
		}

		// Fresh scope for this object; never shared with siblings,
		// ancestors, or nested objects.
		seen := make(map[string]struct{}, len(n.Content)/2)
		kept := n.Content[:0]
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if !parser.IsStringKey(key) {
				return nonStringKey(sourcePath, pb.String(), key)
			}
			if _, dup := seen[key.Value]; dup {
				*changes = append(*changes, Change{
					Kind:        ChangeDuplicateRemoved,
					Path:        pb.String(),
					Key:         key.Value,
					Line:        key.Line,
					Column:      key.Column,
					Description: fmt.Sprintf("removed duplicate key %q (first occurrence kept)", key.Value),
				})
				continue
			}
			seen[key.Value] = struct{}{}
			kept = append(kept, key, value)

			pb.PushKey(key.Value)
			err := dedupeNode(value, depth, maxDepth, sourcePath, pb, changes)
			pb.Pop()
			if err != nil {
				return err
			}
		}
		// Drop references to removed subtrees.
		for i := len(kept); i < len(n.Content); i++ {
			n.Content[i] = nil
		}
		n.Content = kept

	case yaml.SequenceNode:
		depth := parentDepth + 1
		if maxDepth > 0 && depth > maxDepth {
			return depthLimit(maxDepth, depth, pb.String())
		}
		for i, elem := range n.Content {
			pb.PushIndex(i)
			err := dedupeNode(elem, depth, maxDepth, sourcePath, pb, changes)
			pb.Pop()
			if err != nil {
				return err
			}
		}

	case yaml.DocumentNode:
		for _, child := range n.Content {
			if err := dedupeNode(child, parentDepth, maxDepth, sourcePath, pb, changes); err != nil {
				return err
			}
		}
	}
	// Scalar and alias nodes are opaque: aliases are never expanded, so
	// the anchored subtree is only processed where it is defined.
	return nil
}
