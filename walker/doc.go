// Package walker provides a traversal API for parsed documents.
//
// The walker enables single-pass traversal of the order-preserving node
// tree produced by the parser package, calling typed handlers for
// objects, arrays, scalars, and individual object members. Duplicate
// keys are visited like any other member, which makes the walker the
// foundation for key analysis tools.
//
// # Quick Start
//
// Walk a document and collect the path of every object member:
//
//	result, _ := parser.ParseWithOptions(parser.WithFilePath("config.json"))
//
//	var paths []string
//	err := walker.Walk(result,
//	    walker.WithMemberHandler(func(wc *walker.WalkContext, key, value *yaml.Node) walker.Action {
//	        paths = append(paths, wc.JSONPath)
//	        return walker.Continue
//	    }),
//	)
//
// # Flow Control
//
// Handlers return an [Action] to control traversal:
//
//   - [Continue]: continue traversing children and siblings normally
//   - [SkipChildren]: skip all children of the current node, continue with siblings
//   - [Stop]: stop the entire walk immediately
//
// Example using SkipChildren to ignore a vendored subtree:
//
//	walker.Walk(result,
//	    walker.WithMemberHandler(func(wc *walker.WalkContext, key, value *yaml.Node) walker.Action {
//	        if key.Value == "vendor" {
//	            return walker.SkipChildren
//	        }
//	        return walker.Continue
//	    }),
//	)
//
// # Handler Types
//
//   - [ObjectHandler]: each object node, the root included
//   - [ArrayHandler]: each array node
//   - [ScalarHandler]: each scalar value
//   - [MemberHandler]: each object member, repeated keys included
//   - [SkippedHandler]: subtrees skipped by the depth limit
//
// # Collectors
//
// For common gather-everything passes, [CollectKeys] and
// [CollectDuplicateKeys] wrap the walker with ready-made handlers.
package walker
