package walker

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/keysort/parser"
)

// KeyInfo contains information about a collected object member.
type KeyInfo struct {
	// Key is the member key.
	Key string

	// JSONPath is the full path of the member.
	JSONPath string

	// Line and Column locate the key in the source document.
	Line   int
	Column int
}

// KeyCollector holds object members collected during a walk.
type KeyCollector struct {
	// All contains every member in traversal order, duplicates included.
	All []*KeyInfo

	// ByKey groups members by key name, for quick occurrence lookups.
	ByKey map[string][]*KeyInfo
}

// CollectKeys walks the document and collects every object member.
func CollectKeys(result *parser.ParseResult) (*KeyCollector, error) {
	collector := &KeyCollector{
		All:   make([]*KeyInfo, 0),
		ByKey: make(map[string][]*KeyInfo),
	}

	err := Walk(result,
		WithMemberHandler(func(wc *WalkContext, key, _ *yaml.Node) Action {
			info := &KeyInfo{
				Key:      key.Value,
				JSONPath: wc.JSONPath,
				Line:     key.Line,
				Column:   key.Column,
			}
			collector.All = append(collector.All, info)
			collector.ByKey[info.Key] = append(collector.ByKey[info.Key], info)
			return Continue
		}),
	)
	if err != nil {
		return nil, err
	}

	return collector, nil
}

// DuplicateKeyInfo describes a repeated key within a single object.
type DuplicateKeyInfo struct {
	// Key is the repeated member key.
	Key string

	// JSONPath is the path of the repeated member.
	JSONPath string

	// Line and Column locate the repeated occurrence.
	Line   int
	Column int

	// FirstLine is the line of the first occurrence the repeat collides with.
	FirstLine int
}

// CollectDuplicateKeys walks the document and reports every member whose
// key already appeared earlier in the same object, in traversal order.
// Only repeats within a single object count; the same key in different
// objects is unrelated.
func CollectDuplicateKeys(result *parser.ParseResult) ([]*DuplicateKeyInfo, error) {
	var dupes []*DuplicateKeyInfo

	err := Walk(result,
		WithObjectHandler(func(wc *WalkContext, obj *yaml.Node) Action {
			seen := make(map[string]*yaml.Node, len(obj.Content)/2)
			for i := 0; i+1 < len(obj.Content); i += 2 {
				key := obj.Content[i]
				first, ok := seen[key.Value]
				if !ok {
					seen[key.Value] = key
					continue
				}
				dupes = append(dupes, &DuplicateKeyInfo{
					Key:       key.Value,
					JSONPath:  memberPath(wc.JSONPath, key.Value),
					Line:      key.Line,
					Column:    key.Column,
					FirstLine: first.Line,
				})
			}
			return Continue
		}),
	)
	if err != nil {
		return nil, err
	}

	return dupes, nil
}

// memberPath joins an object's path with a member key.
func memberPath(objPath, key string) string {
	return objPath + "." + key
}
