package checker

import (
	"fmt"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/keysort/internal/issues"
	"github.com/erraggy/keysort/internal/severity"
	"github.com/erraggy/keysort/keyorder"
	"github.com/erraggy/keysort/parser"
	"github.com/erraggy/keysort/walker"
)

// CheckResult contains the results of a check operation.
type CheckResult struct {
	// Issues contains all findings, sorted by source location
	Issues []issues.Issue
	// SourcePath is the path to the source file
	SourcePath string
	// SourceFormat is the format of the source document (JSON or YAML)
	SourceFormat parser.SourceFormat
	// Stats contains statistical information about the document
	Stats parser.DocumentStats
	// Duration is how long the operation took, parsing included
	Duration time.Duration
}

// HasIssues returns true if any issues were found.
func (r *CheckResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// HasErrors returns true if any issue is error severity or worse.
func (r *CheckResult) HasErrors() bool {
	return r.ErrorCount() > 0
}

// ErrorCount returns the number of error-or-worse issues.
func (r *CheckResult) ErrorCount() int {
	return issues.CountAtLeast(r.Issues, severity.SeverityError)
}

// WarningCount returns the number of warning issues.
func (r *CheckResult) WarningCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == severity.SeverityWarning {
			n++
		}
	}
	return n
}

// Checker analyzes documents for duplicate and out-of-order keys.
// The zero value checks against lexical order, non-recursively.
type Checker struct {
	// Recursive extends the ordering check to nested objects at every
	// depth. Duplicate detection is always recursive.
	Recursive bool

	// Order is the ordering keys are checked against: a keyorder.Policy
	// or a *keyorder.CustomOrder. Nil means keyorder.DefaultPolicy;
	// keyorder.PolicyNone disables the ordering check entirely.
	Order keyorder.Order

	// MaxFileSize caps the input size in bytes (see parser.Parser).
	MaxFileSize int64

	// MaxDepth caps container nesting (see parser.Parser).
	MaxDepth int

	// Logger receives structured diagnostics. When nil, logging is disabled.
	Logger parser.Logger
}

// New creates a Checker with default settings.
func New() *Checker {
	return &Checker{}
}

// log returns the configured logger, or a NopLogger when none is set.
func (c *Checker) log() parser.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return parser.NopLogger{}
}

// order returns the configured ordering, defaulting to lexical.
func (c *Checker) order() keyorder.Order {
	if c.Order != nil {
		return c.Order
	}
	return keyorder.DefaultPolicy
}

// Check parses and analyzes the document at the given file path.
func (c *Checker) Check(docPath string) (*CheckResult, error) {
	start := time.Now()

	p := &parser.Parser{
		Logger:      c.Logger,
		MaxFileSize: c.MaxFileSize,
		MaxDepth:    c.MaxDepth,
	}
	parsed, err := p.Parse(docPath)
	if err != nil {
		return nil, fmt.Errorf("checker: failed to parse document: %w", err)
	}

	result, err := c.CheckParsed(parsed)
	if err != nil {
		return nil, err
	}
	result.Duration = time.Since(start)
	return result, nil
}

// CheckParsed analyzes an already-parsed document. The tree is never
// modified.
func (c *Checker) CheckParsed(parsed *parser.ParseResult) (*CheckResult, error) {
	start := time.Now()

	if parsed == nil || parsed.Document == nil {
		return nil, fmt.Errorf("checker: document could not be parsed (nil document)")
	}

	result := &CheckResult{
		SourcePath:   parsed.SourcePath,
		SourceFormat: parsed.SourceFormat,
		Stats:        parsed.Stats,
	}

	if err := c.collectIssues(parsed, result); err != nil {
		return nil, err
	}

	issues.SortByLocation(result.Issues)
	result.Duration = time.Since(start)

	c.log().Debug("checked document",
		"path", result.SourcePath,
		"issues", len(result.Issues),
		"errors", result.ErrorCount(),
		"warnings", result.WarningCount())
	return result, nil
}

// collectIssues runs the duplicate, ordering, and structural checks.
func (c *Checker) collectIssues(parsed *parser.ParseResult, result *CheckResult) error {
	file := ""
	if parsed.SourcePath != "" {
		file = parsed.SourcePath
	}

	dupes, err := walker.CollectDuplicateKeys(parsed)
	if err != nil {
		return fmt.Errorf("checker: %w", err)
	}
	for _, d := range dupes {
		result.Issues = append(result.Issues, issues.Issue{
			Code:     issues.CodeDuplicateKey,
			Path:     d.JSONPath,
			Message:  fmt.Sprintf("duplicate key %q (first occurrence at line %d)", d.Key, d.FirstLine),
			Severity: severity.SeverityError,
			Key:      d.Key,
			Line:     d.Line,
			Column:   d.Column,
			File:     file,
		})
	}

	cmp := c.order().Comparator()

	err = walker.Walk(parsed,
		walker.WithMaxDepth(c.MaxDepth),
		walker.WithObjectHandler(func(wc *walker.WalkContext, obj *yaml.Node) walker.Action {
			for i := 0; i+1 < len(obj.Content); i += 2 {
				key := obj.Content[i]
				if !parser.IsStringKey(key) {
					result.Issues = append(result.Issues, issues.Issue{
						Code:     issues.CodeNonStringKey,
						Path:     wc.JSONPath,
						Message:  "mapping key is not a string",
						Severity: severity.SeverityError,
						Line:     key.Line,
						Column:   key.Column,
						File:     file,
					})
				}
			}

			// Ordering check: the root object always, nested objects only
			// in recursive mode.
			if cmp != nil && (c.Recursive || wc.Depth == 1) {
				c.checkOrdering(wc, obj, cmp, file, result)
			}
			return walker.Continue
		}),
		walker.WithSkippedHandler(func(reason string, wc *walker.WalkContext) {
			if reason != "depth" {
				return
			}
			result.Issues = append(result.Issues, issues.Issue{
				Code:     issues.CodeDepthLimit,
				Path:     wc.JSONPath,
				Message:  "nesting depth limit reached; subtree not analyzed",
				Severity: severity.SeverityCritical,
				File:     file,
			})
		}),
	)
	if err != nil {
		return fmt.Errorf("checker: %w", err)
	}
	return nil
}

// checkOrdering reports the first key that sits before a key it should
// follow. Repeated keys are skipped; deduplication decides their fate,
// not ordering.
func (c *Checker) checkOrdering(wc *walker.WalkContext, obj *yaml.Node, cmp keyorder.Comparator, file string, result *CheckResult) {
	seen := make(map[string]struct{}, len(obj.Content)/2)
	var prev *yaml.Node
	for i := 0; i+1 < len(obj.Content); i += 2 {
		key := obj.Content[i]
		if !parser.IsStringKey(key) {
			continue
		}
		if _, dup := seen[key.Value]; dup {
			continue
		}
		seen[key.Value] = struct{}{}

		if prev != nil && cmp(prev.Value, key.Value) > 0 {
			result.Issues = append(result.Issues, issues.Issue{
				Code:     issues.CodeUnsortedKeys,
				Path:     wc.JSONPath,
				Message:  fmt.Sprintf("key %q is out of order (sorts before %q)", key.Value, prev.Value),
				Severity: severity.SeverityWarning,
				Key:      key.Value,
				Line:     key.Line,
				Column:   key.Column,
				File:     file,
			})
			return
		}
		prev = key
	}
}
