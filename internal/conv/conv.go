// Package conv provides checked integer narrowing for automaton builders.
//
// Builders size their tables with int arithmetic and store state and
// pattern identifiers as uint32. A failed narrowing means a limit check was
// skipped somewhere, so these helpers panic rather than return an error.
package conv

import "math"

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// uint comparison keeps this correct where int is 32 bits wide.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
