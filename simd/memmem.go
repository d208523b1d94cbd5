package simd

import "bytes"

// Finder searches for one fixed needle.
//
// It picks the needle's rarest byte once, using the ByteFrequencies table,
// scans for that byte with Memchr and verifies the whole needle around each
// hit. A second rare byte at a different offset is checked before the full
// comparison, which discards most false candidates with a single load.
//
// A Finder is immutable and safe for concurrent use.
type Finder struct {
	needle []byte
	rare   RareByteInfo
}

// NewFinder returns a Finder for needle. The needle is copied.
func NewFinder(needle []byte) *Finder {
	n := make([]byte, len(needle))
	copy(n, needle)
	return &Finder{needle: n, rare: SelectRareBytes(n)}
}

// Needle returns the needle being searched for.
func (f *Finder) Needle() []byte {
	return f.needle
}

// Find returns the index of the first occurrence of the needle in haystack,
// or -1. An empty needle matches at 0.
func (f *Finder) Find(haystack []byte) int {
	needle := f.needle
	switch {
	case len(needle) == 0:
		return 0
	case len(needle) > len(haystack):
		return -1
	case len(needle) == 1:
		return Memchr(haystack, needle[0])
	}

	r := f.rare
	// Candidate rare bytes at positions before Index1 or past the last
	// possible needle start can never verify.
	last := len(haystack) - len(needle)
	at := r.Index1
	for at < len(haystack) {
		i := Memchr(haystack[at:], r.Byte1)
		if i < 0 {
			return -1
		}
		start := at + i - r.Index1
		if start > last {
			return -1
		}
		if haystack[start+r.Index2] == r.Byte2 &&
			bytes.Equal(haystack[start:start+len(needle)], needle) {
			return start
		}
		at += i + 1
	}
	return -1
}

// Memmem returns the index of the first instance of needle in haystack,
// or -1 if needle is not present. It behaves like bytes.Index.
//
// Callers searching for the same needle repeatedly should build a Finder
// once instead.
//
// Example:
//
//	pos := simd.Memmem([]byte("hello world"), []byte("world"))
//	// pos == 6
func Memmem(haystack, needle []byte) int {
	if len(needle) <= 1 || len(needle) > len(haystack) {
		switch {
		case len(needle) == 0:
			return 0
		case len(needle) > len(haystack):
			return -1
		default:
			return Memchr(haystack, needle[0])
		}
	}
	return (&Finder{needle: needle, rare: SelectRareBytes(needle)}).Find(haystack)
}
