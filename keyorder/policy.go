package keyorder

import (
	"github.com/erraggy/keysort/kserrors"
)

// Policy identifies a named key-ordering policy. The string values are the
// wire identifiers accepted in configuration; they are part of the public
// contract and never change.
type Policy string

const (
	// PolicyLexical orders keys byte-wise. This is the default policy.
	PolicyLexical Policy = "lexical"

	// PolicyNumeric orders keys naturally: digit runs as integers,
	// everything else byte-wise.
	PolicyNumeric Policy = "numeric"

	// PolicyCaseInsensitiveLexical is PolicyLexical over case-folded keys.
	PolicyCaseInsensitiveLexical Policy = "caseInsensitiveLexical"

	// PolicyCaseInsensitiveNumeric is PolicyNumeric over case-folded keys.
	PolicyCaseInsensitiveNumeric Policy = "caseInsensitiveNumeric"

	// PolicyReverseLexical is PolicyLexical with the result negated.
	PolicyReverseLexical Policy = "reverseLexical"

	// PolicyReverseNumeric is PolicyNumeric with the result negated.
	PolicyReverseNumeric Policy = "reverseNumeric"

	// PolicyCaseInsensitiveReverseLexical negates the case-insensitive
	// lexical ordering.
	PolicyCaseInsensitiveReverseLexical Policy = "caseInsensitiveReverseLexical"

	// PolicyCaseInsensitiveReverseNumeric negates the case-insensitive
	// numeric ordering.
	PolicyCaseInsensitiveReverseNumeric Policy = "caseInsensitiveReverseNumeric"

	// PolicyNone disables sorting: deduplication still runs, insertion
	// order is kept.
	PolicyNone Policy = "none"
)

// DefaultPolicy is applied when no sort order is configured.
const DefaultPolicy = PolicyLexical

// Policies returns all policy identifiers in declaration order.
func Policies() []Policy {
	return []Policy{
		PolicyLexical,
		PolicyNumeric,
		PolicyCaseInsensitiveLexical,
		PolicyCaseInsensitiveNumeric,
		PolicyReverseLexical,
		PolicyReverseNumeric,
		PolicyCaseInsensitiveReverseLexical,
		PolicyCaseInsensitiveReverseNumeric,
		PolicyNone,
	}
}

// ParsePolicy resolves a policy identifier. Unknown identifiers return a
// *kserrors.ConfigError; they are never silently defaulted.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(s)
	if !p.IsValid() {
		return "", &kserrors.ConfigError{
			Option:  "sortOrder",
			Value:   s,
			Message: "unknown sort policy",
		}
	}
	return p, nil
}

// IsValid reports whether p is one of the declared policies.
func (p Policy) IsValid() bool {
	switch p {
	case PolicyLexical, PolicyNumeric,
		PolicyCaseInsensitiveLexical, PolicyCaseInsensitiveNumeric,
		PolicyReverseLexical, PolicyReverseNumeric,
		PolicyCaseInsensitiveReverseLexical, PolicyCaseInsensitiveReverseNumeric,
		PolicyNone:
		return true
	default:
		return false
	}
}

// String returns the wire identifier.
func (p Policy) String() string {
	return string(p)
}

// Comparator returns the pairwise ordering for p. PolicyNone returns nil:
// callers treat nil as "keep insertion order". A value that never passed
// ParsePolicy falls back to lexical so ordering stays consistent.
func (p Policy) Comparator() Comparator {
	switch p {
	case PolicyLexical:
		return Lexical
	case PolicyNumeric:
		return Numeric
	case PolicyCaseInsensitiveLexical:
		return CaseInsensitive(Lexical)
	case PolicyCaseInsensitiveNumeric:
		return CaseInsensitive(Numeric)
	case PolicyReverseLexical:
		return Reverse(Lexical)
	case PolicyReverseNumeric:
		return Reverse(Numeric)
	case PolicyCaseInsensitiveReverseLexical:
		return Reverse(CaseInsensitive(Lexical))
	case PolicyCaseInsensitiveReverseNumeric:
		return Reverse(CaseInsensitive(Numeric))
	case PolicyNone:
		return nil
	default:
		return Lexical
	}
}

// Describe returns a one-line human description for help output and tool
// discovery.
func (p Policy) Describe() string {
	switch p {
	case PolicyLexical:
		return "byte-wise string order (default)"
	case PolicyNumeric:
		return "natural order: digit runs compared as integers, lexical otherwise"
	case PolicyCaseInsensitiveLexical:
		return "lexical over case-folded keys"
	case PolicyCaseInsensitiveNumeric:
		return "numeric over case-folded keys"
	case PolicyReverseLexical:
		return "lexical, reversed"
	case PolicyReverseNumeric:
		return "numeric, reversed"
	case PolicyCaseInsensitiveReverseLexical:
		return "case-insensitive lexical, reversed"
	case PolicyCaseInsensitiveReverseNumeric:
		return "case-insensitive numeric, reversed"
	case PolicyNone:
		return "no sorting; deduplicate only"
	default:
		return "unknown policy"
	}
}

// bucketRank is the primary rank a policy contributes in a custom order.
// Numeric policies rank after unranked keys; reversed numeric policies
// rank before them; everything else shares the middle bucket.
func (p Policy) bucketRank() int {
	switch p {
	case PolicyReverseNumeric, PolicyCaseInsensitiveReverseNumeric:
		return -1
	case PolicyNumeric, PolicyCaseInsensitiveNumeric:
		return 1
	default:
		return 0
	}
}
