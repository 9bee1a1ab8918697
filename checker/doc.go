// Package checker reports key problems in JSON and YAML documents
// without modifying them.
//
// The checker is the read-only counterpart of the sorter: it finds
// duplicate object keys (with the source location of each occurrence)
// and keys that are out of place under a configured sort order, and
// reports them as issues with severities. Nothing is rewritten; the
// checker is what a CI step or editor integration runs to decide whether
// a document needs formatting.
//
// # Quick Start
//
//	result, err := checker.CheckWithOptions(
//		checker.WithFilePath("settings.json"),
//		checker.WithRecursive(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, issue := range result.Issues {
//		fmt.Println(issue)
//	}
//	if result.HasErrors() {
//		os.Exit(1)
//	}
//
// # Severities
//
// Duplicate keys and non-string mapping keys are errors: the document
// carries data a transform would remove or cannot process. Out-of-order
// keys are warnings: sorting would repair them. Depth-limit hits are
// critical: the document could not be fully analyzed.
package checker
