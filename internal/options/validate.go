// Package options provides shared utilities for option validation across
// the parser, sorter, and checker option surfaces.
package options

import "fmt"

// CountSet returns how many of the given source indicators are set.
func CountSet(sources ...bool) int {
	n := 0
	for _, set := range sources {
		if set {
			n++
		}
	}
	return n
}

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources is a variadic list of booleans indicating whether each source is
// set. noSourceMsg is the error message when no source is specified and
// multiSourceMsg the one for conflicting sources. Callers wrap the returned
// error into their package's configuration error type.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	switch CountSet(sources...) {
	case 0:
		return fmt.Errorf("%s", noSourceMsg)
	case 1:
		return nil
	default:
		return fmt.Errorf("%s", multiSourceMsg)
	}
}
