package parser

import (
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/keysort/internal/pathutil"
	"github.com/erraggy/keysort/kserrors"
)

// DocumentStats summarizes the structure of a parsed document.
type DocumentStats struct {
	// Objects is the number of object (mapping) nodes.
	Objects int
	// Arrays is the number of array (sequence) nodes.
	Arrays int
	// Members is the number of object members, duplicates included.
	Members int
	// Scalars is the number of scalar values, keys excluded.
	Scalars int
	// MaxDepth is the deepest container nesting observed. The root
	// container counts as depth 1; a document whose root is a scalar
	// has depth 0.
	MaxDepth int
	// DuplicateKeys is the number of members whose key already appeared
	// earlier in the same object.
	DuplicateKeys int
}

// computeStats walks the node tree counting structure, enforcing the
// nesting depth limit, and rejecting non-string object keys.
// Aliases are followed, so stats describe the expanded document.
func computeStats(root *yaml.Node, maxDepth int, sourcePath string) (DocumentStats, error) {
	var stats DocumentStats
	pb := pathutil.Get()
	defer pathutil.Put(pb)
	err := statsWalk(root, 0, maxDepth, sourcePath, pb, &stats)
	return stats, err
}

func statsWalk(n *yaml.Node, parentDepth, maxDepth int, sourcePath string, pb *pathutil.Builder, stats *DocumentStats) error {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		for _, child := range n.Content {
			if err := statsWalk(child, parentDepth, maxDepth, sourcePath, pb, stats); err != nil {
				return err
			}
		}

	case yaml.MappingNode:
		depth := parentDepth + 1
		if maxDepth > 0 && depth > maxDepth {
			return depthLimitError(maxDepth, depth, pb.String())
		}
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		stats.Objects++

		seen := make(map[string]struct{}, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if !IsStringKey(key) {
				return &kserrors.StructureError{
					Path:     sourcePath,
					JSONPath: pb.String(),
					Line:     key.Line,
					Column:   key.Column,
					Message:  "mapping key is not a string",
				}
			}
			stats.Members++
			if _, dup := seen[key.Value]; dup {
				stats.DuplicateKeys++
			} else {
				seen[key.Value] = struct{}{}
			}

			pb.PushKey(key.Value)
			err := statsWalk(value, depth, maxDepth, sourcePath, pb, stats)
			pb.Pop()
			if err != nil {
				return err
			}
		}

	case yaml.SequenceNode:
		depth := parentDepth + 1
		if maxDepth > 0 && depth > maxDepth {
			return depthLimitError(maxDepth, depth, pb.String())
		}
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		stats.Arrays++

		for i, child := range n.Content {
			pb.PushIndex(i)
			err := statsWalk(child, depth, maxDepth, sourcePath, pb, stats)
			pb.Pop()
			if err != nil {
				return err
			}
		}

	case yaml.ScalarNode:
		stats.Scalars++

	case yaml.AliasNode:
		// The YAML parser rejects self-containing anchors, so alias
		// chains always terminate.
		return statsWalk(n.Alias, parentDepth, maxDepth, sourcePath, pb, stats)
	}

	return nil
}

func depthLimitError(limit, actual int, jsonPath string) error {
	return &kserrors.ResourceLimitError{
		ResourceType: "nesting_depth",
		Limit:        int64(limit),
		Actual:       int64(actual),
		Message:      fmt.Sprintf("nesting depth exceeds the maximum at %s", jsonPath),
	}
}
