// Package sorter deduplicates and sorts the member keys of JSON and YAML
// documents.
//
// The transform runs in two passes over an order-preserving node tree.
// Deduplication removes repeated keys within each object scope, keeping
// the first occurrence and discarding later ones together with their
// value subtrees. Sorting then reorders each object's keys under a
// configurable policy; values are never modified and array element order
// is never changed. The source format (JSON or YAML) is preserved in the
// SortResult.SourceFormat field, allowing tools to maintain format
// consistency when writing output.
//
// # Quick Start
//
// Sort a file using functional options:
//
//	result, err := sorter.SortWithOptions(
//		sorter.WithFilePath("settings.json"),
//		sorter.WithRecursive(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	os.Stdout.Write(result.Output)
//
// Or use a reusable Sorter instance:
//
//	s := sorter.New()
//	s.Recursive = true
//	result1, _ := s.Sort("api.yaml")
//	result2, _ := s.Sort("config.json")
//
// # Sort Orders
//
// The order is either one of the nine named policies from the keyorder
// package (lexical by default) or a custom per-key mapping parsed from
// JSON configuration text:
//
//	result, err := sorter.SortWithOptions(
//		sorter.WithFilePath("inventory.json"),
//		sorter.WithOrderSpec(`{"id": "numeric", "name": null}`),
//	)
//
// Policy "none" disables sorting entirely; deduplication still runs.
//
// # Deduplication
//
// Duplicate removal is scoped per object: a key repeated at the top
// level and the same key inside a nested object are independent
// occurrences. The first occurrence in source order always wins and
// keeps its position. Deduplication is always recursive, regardless of
// the Recursive sort flag, and runs before any sorting.
//
// # Change Reporting
//
// Every removed duplicate and every object whose key sequence changed is
// recorded in SortResult.Changes with its JSONPath location, which makes
// dry runs possible: transform in memory, report the changes, discard
// the output.
//
// # Pipeline Usage
//
// The sorter is designed to work in a pipeline with other keysort
// commands:
//
//	# Sort and verify
//	keysort sort config.json | keysort check -
package sorter
