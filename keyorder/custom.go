package keyorder

import (
	"fmt"
	"strings"

	"github.com/erraggy/keysort/internal/jsonutil"
	"github.com/erraggy/keysort/kserrors"
)

// Order is a resolved sort order: either a named Policy or a CustomOrder.
// A nil Comparator means "keep insertion order".
type Order interface {
	Comparator() Comparator
	String() string
}

// CustomOrder maps individual member keys to the policy that determines
// their rank. Keys absent from the mapping (and keys mapped to JSON null)
// are unranked and sort lexically among themselves.
//
// Ordering is two-level: numeric-policy keys bucket after unranked keys
// and reversed-numeric keys before them; within a bucket, keys sharing the
// same policy order by that policy's comparator, and every remaining tie
// falls back to plain lexical order.
type CustomOrder struct {
	assigned map[string]Policy
	raw      string
}

// ParseCustomOrder parses the JSON-object configuration text mapping key
// names to policy identifiers or null. Malformed JSON, non-object
// documents, non-string values, and unknown policy identifiers all return
// a *kserrors.ConfigError.
func ParseCustomOrder(text string) (*CustomOrder, error) {
	var entries map[string]*string
	if err := jsonutil.Unmarshal([]byte(text), &entries); err != nil {
		return nil, &kserrors.ConfigError{
			Option:  "sortOrder",
			Message: "custom order must be a JSON object mapping keys to policy identifiers or null",
			Cause:   err,
		}
	}
	if entries == nil {
		// A JSON null decodes into a nil map without error.
		return nil, &kserrors.ConfigError{
			Option:  "sortOrder",
			Message: "custom order must be a JSON object mapping keys to policy identifiers or null",
		}
	}

	assigned := make(map[string]Policy, len(entries))
	for key, value := range entries {
		if value == nil {
			assigned[key] = PolicyNone
			continue
		}
		policy, err := ParsePolicy(*value)
		if err != nil {
			return nil, &kserrors.ConfigError{
				Option:  "sortOrder",
				Value:   *value,
				Message: fmt.Sprintf("custom order entry %q names an unknown policy", key),
			}
		}
		assigned[key] = policy
	}

	return &CustomOrder{assigned: assigned, raw: text}, nil
}

// PolicyFor returns the policy assigned to key, or PolicyNone when the key
// is unranked.
func (co *CustomOrder) PolicyFor(key string) Policy {
	if p, ok := co.assigned[key]; ok {
		return p
	}
	return PolicyNone
}

// Len returns the number of explicit assignments.
func (co *CustomOrder) Len() int {
	return len(co.assigned)
}

// String returns the configuration text the order was parsed from.
func (co *CustomOrder) String() string {
	return co.raw
}

// Comparator returns the pairwise ordering induced by the mapping.
func (co *CustomOrder) Comparator() Comparator {
	return func(a, b string) int {
		pa := co.PolicyFor(a)
		pb := co.PolicyFor(b)

		if ra, rb := pa.bucketRank(), pb.bucketRank(); ra != rb {
			return ra - rb
		}
		if pa == pb && pa != PolicyNone {
			if cmp := pa.Comparator(); cmp != nil {
				if c := cmp(a, b); c != 0 {
					return c
				}
			}
		}
		return Lexical(a, b)
	}
}

// ParseOrderSpec resolves raw sortOrder configuration text. Text that
// looks like a JSON object resolves as a custom order; everything else
// must be one of the nine policy identifiers. Empty text resolves to the
// default policy. All failures are *kserrors.ConfigError.
func ParseOrderSpec(text string) (Order, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return DefaultPolicy, nil
	}
	if strings.HasPrefix(trimmed, "{") {
		return ParseCustomOrder(trimmed)
	}
	return ParsePolicy(trimmed)
}
