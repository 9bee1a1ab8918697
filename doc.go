// Package keysort provides tools for deduplicating and sorting the member
// keys of JSON and YAML documents without touching values or array order.
//
// keysort parses a document into an order-preserving node tree, removes
// duplicate object keys (first occurrence wins), reorders the remaining
// keys under a configurable sort policy, and re-serializes the document
// with its values byte-for-byte intact.
//
// # Overview
//
// The library consists of five primary packages:
//
//   - parser: Parse JSON and YAML documents into order-preserving trees
//     and serialize them back (including RFC 8785 canonical JSON)
//   - keyorder: Sort policies, comparators, and custom per-key orderings
//   - sorter: The dedup + sort transform with change reporting
//   - checker: Read-only analysis reporting duplicate and out-of-order keys
//   - walker: Handler-based traversal over parsed document trees
//
// Structured errors for all of the above live in the kserrors package.
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/erraggy/keysort
//
// # Quick Start
//
// Sort the keys of a JSON document:
//
//	import "github.com/erraggy/keysort/sorter"
//
//	result, err := sorter.Sort("config.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	os.Stdout.Write(result.Output)
//
// Sort recursively with a named policy:
//
//	result, err := sorter.SortWithOptions(
//		sorter.WithFilePath("config.json"),
//		sorter.WithRecursive(true),
//		sorter.WithOrderSpec("caseInsensitiveLexical"),
//	)
//
// Check a document for duplicate keys without modifying it:
//
//	import "github.com/erraggy/keysort/checker"
//
//	report, err := checker.Check("config.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, issue := range report.Issues {
//		fmt.Println(issue)
//	}
//
// Apply a custom per-key ordering:
//
//	result, err := sorter.SortWithOptions(
//		sorter.WithBytes(data),
//		sorter.WithOrderSpec(`{"10a": "numeric", "2b": "numeric", "label": null}`),
//	)
//
// # Sort Policies
//
// Nine named policies are accepted wherever a sort order is configured:
//
//   - lexical (default), numeric
//   - caseInsensitiveLexical, caseInsensitiveNumeric
//   - reverseLexical, reverseNumeric
//   - caseInsensitiveReverseLexical, caseInsensitiveReverseNumeric
//   - none (deduplicate only, keep insertion order)
//
// The numeric policies order keys naturally: digit runs compare as
// integers ("item2" before "item10"), everything else byte-wise. A
// custom ordering is supplied as a JSON object mapping key names to
// policy identifiers (or null).
//
// # Command Line
//
// The keysort command exposes the library:
//
//	keysort sort -recursive -write config.json
//	keysort check config.json
//	keysort canon config.json
//	keysort mcp
//
// # Security Considerations
//
// All entry points implement the same guard rails:
//
//   - Input size limits: documents above the configured maximum are
//     rejected before parsing (default 50 MiB)
//   - Depth limits: traversal stops with a resource-limit error beyond
//     the configured nesting depth (default 100)
//   - Output safety: files are written with 0600 permissions and writes
//     through symlinks are refused
//   - URL fetching (MCP server only) blocks private and loopback
//     addresses unless explicitly allowed
package keysort
