package checker_test

import (
	"fmt"
	"log"

	"github.com/erraggy/keysort/checker"
)

// Example demonstrates checking a document for key problems.
func Example() {
	doc := `{"version": 2, "name": "demo", "name": "other"}`

	result, err := checker.CheckWithOptions(
		checker.WithBytes([]byte(doc)),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d error(s), %d warning(s)\n", result.ErrorCount(), result.WarningCount())
	for _, issue := range result.Issues {
		fmt.Printf("%s: %s\n", issue.Code, issue.Message)
	}

	// Output:
	// 1 error(s), 1 warning(s)
	// unsorted-keys: key "name" is out of order (sorts before "version")
	// duplicate-key: duplicate key "name" (first occurrence at line 1)
}
