// Package simd provides the byte-search primitives the prefilters are built
// on: single, double and triple byte scans (Memchr, Memchr2, Memchr3),
// substring search (Memmem, Finder) and a byte rarity table (ByteRank).
//
// All routines are portable Go and process a machine word per step.
package simd

import "golang.org/x/sys/cpu"

// HasVectorUnit reports whether the CPU has the 128-bit byte shuffle
// instructions (SSSE3 on x86-64, ASIMD on arm64) that make nibble-table
// fingerprint scans cheaper than byte scans. Prefilter selection uses it to
// decide between the packed searcher and the memchr-based prefilters.
var HasVectorUnit = cpu.X86.HasSSSE3 || cpu.ARM64.HasASIMD
