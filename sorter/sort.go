package sorter

import (
	"fmt"
	"sort"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/keysort/internal/pathutil"
	"github.com/erraggy/keysort/keyorder"
	"github.com/erraggy/keysort/parser"
)

// sortTree reorders object keys under cmp. The tree must already be
// deduplicated.
//
// When recursive is false only the root object's direct keys are sorted;
// nested structures keep their original order and a non-object root is
// left untouched. When recursive is true every object at every depth is
// sorted, including objects reached only through arrays. Array element
// order is never changed at any depth.
func sortTree(root *yaml.Node, cmp keyorder.Comparator, recursive bool, sourcePath string, maxDepth int) ([]Change, error) {
	pb := pathutil.Get()
	defer pathutil.Put(pb)

	var changes []Change
	err := sortNode(root, cmp, recursive, 0, maxDepth, sourcePath, pb, &changes)
	return changes, err
}

func sortNode(n *yaml.Node, cmp keyorder.Comparator, recursive bool, parentDepth, maxDepth int, sourcePath string, pb *pathutil.Builder, changes *[]Change) error {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case yaml.MappingNode:
		depth := parentDepth + 1
		if maxDepth > 0 && depth > maxDepth {
			return depthLimit(maxDepth, depth, pb.String())
		}
		if err := sortMembers(n, cmp, sourcePath, pb, changes); err != nil {
			return err
		}
		if !recursive {
			return nil
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			pb.PushKey(key.Value)
			err := sortNode(value, cmp, recursive, depth, maxDepth, sourcePath, pb, changes)
			pb.Pop()
			if err != nil {
				return err
			}
		}

	case yaml.SequenceNode:
		// The array's own element order is user-authored and preserved
		// verbatim; only objects inside it are sortable, and only in
		// recursive mode.
		if !recursive {
			return nil
		}
		depth := parentDepth + 1
		if maxDepth > 0 && depth > maxDepth {
			return depthLimit(maxDepth, depth, pb.String())
		}
		for i, elem := range n.Content {
			pb.PushIndex(i)
			err := sortNode(elem, cmp, recursive, depth, maxDepth, sourcePath, pb, changes)
			pb.Pop()
			if err != nil {
				return err
			}
		}

	case yaml.DocumentNode:
		for _, child := range n.Content {
			if err := sortNode(child, cmp, recursive, parentDepth, maxDepth, sourcePath, pb, changes); err != nil {
				return err
			}
		}
	}
	return nil
}

// member is a key/value pair reordered as a unit.
type member struct {
	key   *yaml.Node
	value *yaml.Node
}

// sortMembers stably sorts one object's key/value pairs under cmp and
// records a change when the sequence actually moved. Keys comparing
// equal keep their relative source order.
func sortMembers(n *yaml.Node, cmp keyorder.Comparator, sourcePath string, pb *pathutil.Builder, changes *[]Change) error {
	count := len(n.Content) / 2
	if count < 2 {
		return nil
	}

	members := make([]member, 0, count)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if !parser.IsStringKey(key) {
			return nonStringKey(sourcePath, pb.String(), key)
		}
		members = append(members, member{key: key, value: n.Content[i+1]})
	}

	sort.SliceStable(members, func(i, j int) bool {
		return cmp(members[i].key.Value, members[j].key.Value) < 0
	})

	moved := ""
	for i, m := range members {
		if moved == "" && n.Content[i*2] != m.key {
			moved = m.key.Value
		}
		n.Content[i*2] = m.key
		n.Content[i*2+1] = m.value
	}
	if moved != "" {
		*changes = append(*changes, Change{
			Kind:        ChangeKeysReordered,
			Path:        pb.String(),
			Key:         moved,
			Line:        n.Line,
			Column:      n.Column,
			Description: fmt.Sprintf("reordered %d keys", count),
		})
	}
	return nil
}
