// Package keyorder provides the sort policies applied to object member
// keys: comparator primitives, the modifiers that derive the full policy
// set, and custom per-key orderings.
//
// A Comparator is a plain pairwise ordering function. All comparators in
// this package are total and antisymmetric, and return exactly 0 for equal
// inputs, so they compose safely with stable sorts.
package keyorder

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Comparator orders two decoded member keys. It returns a negative value
// when a sorts before b, a positive value when a sorts after b, and 0 when
// the two keys are equivalent. Magnitudes carry no meaning beyond sign;
// Numeric in particular returns raw digit-run differences.
type Comparator func(a, b string) int

// Lexical orders keys by byte-wise string comparison.
func Lexical(a, b string) int {
	return strings.Compare(a, b)
}

// Numeric orders keys naturally: wherever both keys carry a run of ASCII
// decimal digits, the runs compare as integers; everything else compares
// byte-wise. "item2" sorts before "item10". Keys that differ only in
// digit-run spelling (leading zeros) fall back to whole-string lexical
// comparison so distinct keys never compare equal.
func Numeric(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			ra, ni := digitRun(a, i)
			rb, nj := digitRun(b, j)
			if c := compareDigitRuns(ra, rb); c != 0 {
				return c
			}
			i, j = ni, nj
			continue
		}
		if a[i] != b[j] {
			return int(a[i]) - int(b[j])
		}
		i++
		j++
	}
	if c := (len(a) - i) - (len(b) - j); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// digitRun returns the maximal digit run starting at i and the index just
// past it. s[i] must be a digit.
func digitRun(s string, i int) (string, int) {
	j := i + 1
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	return s[i:j], j
}

// compareDigitRuns compares two digit runs as non-negative integers.
// Runs that fit in int64 return their difference, saturated to
// ±math.MaxInt so the sign survives negation on 32-bit platforms.
// Longer runs are handled without big integers: after trimming leading
// zeros, a longer run is the larger number, and equal-length runs
// compare byte-wise.
func compareDigitRuns(ap, bp string) int {
	na, errA := strconv.ParseInt(ap, 10, 64)
	nb, errB := strconv.ParseInt(bp, 10, 64)
	if errA == nil && errB == nil {
		diff := na - nb
		switch {
		case diff > int64(math.MaxInt):
			return math.MaxInt
		case diff < -int64(math.MaxInt):
			return -math.MaxInt
		default:
			return int(diff)
		}
	}

	ta := strings.TrimLeft(ap, "0")
	tb := strings.TrimLeft(bp, "0")
	if len(ta) != len(tb) {
		return len(ta) - len(tb)
	}
	return strings.Compare(ta, tb)
}

// Reverse returns a comparator that negates the full result of cmp.
func Reverse(cmp Comparator) Comparator {
	return func(a, b string) int {
		return -cmp(a, b)
	}
}

// CaseInsensitive returns a comparator that applies cmp to the Unicode
// case-folded forms of both keys, breaking folded ties with cmp on the
// original strings so keys differing only by case order deterministically.
func CaseInsensitive(cmp Comparator) Comparator {
	return func(a, b string) int {
		folder := cases.Fold()
		if c := cmp(folder.String(a), folder.String(b)); c != 0 {
			return c
		}
		return cmp(a, b)
	}
}
