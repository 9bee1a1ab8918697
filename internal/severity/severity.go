// Package severity provides severity level constants for issues reported
// by the checker package and by sorter dry runs.
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

// Severity indicates the severity level of a reported issue.
type Severity int

const (
	// SeverityError indicates a problem in the document itself, such as a
	// duplicate member key that deduplication would remove.
	SeverityError Severity = iota

	// SeverityWarning indicates a deviation from the configured ordering
	// that sorting would repair, or another recommendation that does not
	// prevent processing.
	SeverityWarning

	// SeverityInfo indicates informational notices about processing
	// choices. These are non-actionable and mostly useful for debugging.
	SeverityInfo

	// SeverityCritical indicates a document the transform cannot process
	// at all, such as a nesting depth beyond the configured limit.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// AtLeast reports whether s is at least as severe as the threshold.
func (s Severity) AtLeast(threshold Severity) bool {
	return rank(s) >= rank(threshold)
}

// rank maps the declaration-order values onto the documented ordering.
func rank(s Severity) int {
	switch s {
	case SeverityInfo:
		return 0
	case SeverityWarning:
		return 1
	case SeverityError:
		return 2
	case SeverityCritical:
		return 3
	default:
		return -1
	}
}
