package prefilter

import (
	"github.com/coregx/acmatch/automaton"
	"github.com/coregx/acmatch/simd"
)

// maxScanBytes is the most distinct bytes a memchr-based prefilter scans for.
const maxScanBytes = 3

// memchrN finds the first occurrence of any of bytes (1 to 3 of them).
func memchrN(haystack []byte, bytes []byte) int {
	switch len(bytes) {
	case 1:
		return simd.Memchr(haystack, bytes[0])
	case 2:
		return simd.Memchr2(haystack, bytes[0], bytes[1])
	default:
		return simd.Memchr3(haystack, bytes[0], bytes[1], bytes[2])
	}
}

// StartBytes reports positions holding one of the first bytes of the
// patterns.
type StartBytes struct {
	bytes   []byte
	count   int
	rankSum int
}

// Bytes returns the scanned bytes in ascending order.
func (p *StartBytes) Bytes() []byte { return p.bytes }

// FindIn implements automaton.Prefilter.
func (p *StartBytes) FindIn(haystack []byte, span automaton.Span) automaton.Candidate {
	i := memchrN(spanOf(haystack, span), p.bytes)
	if i < 0 {
		return automaton.NoCandidate()
	}
	return automaton.PossibleStartCandidate(span.Start + i)
}

// MemoryUsage implements automaton.Prefilter.
func (p *StartBytes) MemoryUsage() int { return 0 }

type startBytesBuilder struct {
	set             [256]bool
	count           int
	rankSum         int
	caseInsensitive bool
}

func newStartBytesBuilder(caseInsensitive bool) *startBytesBuilder {
	return &startBytesBuilder{caseInsensitive: caseInsensitive}
}

func (b *startBytesBuilder) add(pattern []byte) {
	if b.count > maxScanBytes || len(pattern) == 0 {
		return
	}
	b.addOne(pattern[0])
	if b.caseInsensitive {
		b.addOne(OppositeASCIICase(pattern[0]))
	}
}

func (b *startBytesBuilder) addOne(c byte) {
	if b.set[c] {
		return
	}
	b.set[c] = true
	b.count++
	b.rankSum += int(simd.ByteRank(c))
}

// build returns nil when there are too many start bytes or when any of them
// is outside ASCII, where byte frequencies are too unreliable to bet on.
func (b *startBytesBuilder) build() *StartBytes {
	if b.count == 0 || b.count > maxScanBytes {
		return nil
	}
	bytes := make([]byte, 0, maxScanBytes)
	for c := 0; c < 256; c++ {
		if !b.set[c] {
			continue
		}
		if c > 0x7F {
			return nil
		}
		bytes = append(bytes, byte(c))
	}
	return &StartBytes{bytes: bytes, count: b.count, rankSum: b.rankSum}
}

// RareBytes reports positions derived from the rarest byte of each pattern.
//
// Hits are backed off by the largest offset the byte has in any pattern, so
// the reported position is never past the start of a match containing it.
type RareBytes struct {
	bytes   []byte
	offsets [256]uint8
	count   int
	rankSum int
}

// Bytes returns the scanned bytes in ascending order.
func (p *RareBytes) Bytes() []byte { return p.bytes }

// FindIn implements automaton.Prefilter.
func (p *RareBytes) FindIn(haystack []byte, span automaton.Span) automaton.Candidate {
	i := memchrN(spanOf(haystack, span), p.bytes)
	if i < 0 {
		return automaton.NoCandidate()
	}
	pos := span.Start + i
	return automaton.PossibleStartCandidate(max(span.Start, pos-int(p.offsets[haystack[pos]])))
}

// MemoryUsage implements automaton.Prefilter.
func (p *RareBytes) MemoryUsage() int { return 0 }

type rareBytesBuilder struct {
	rare            [256]bool
	offsets         [256]uint8
	available       bool
	count           int
	rankSum         int
	caseInsensitive bool
}

func newRareBytesBuilder(caseInsensitive bool) *rareBytesBuilder {
	return &rareBytesBuilder{available: true, caseInsensitive: caseInsensitive}
}

// add records the offset of every byte of pattern and adds the pattern's
// rarest byte to the rare set, unless the pattern already contains a rare
// byte.
func (b *rareBytesBuilder) add(pattern []byte) {
	if !b.available {
		return
	}
	if b.count > maxScanBytes || len(pattern) >= maxRareOffset {
		b.available = false
		return
	}
	if len(pattern) == 0 {
		return
	}
	rarest, rank := pattern[0], simd.ByteRank(pattern[0])
	found := false
	for pos, c := range pattern {
		b.setOffset(pos, c)
		if found {
			continue
		}
		if b.rare[c] {
			found = true
			continue
		}
		if r := simd.ByteRank(c); r < rank {
			rarest, rank = c, r
		}
	}
	if !found {
		b.addRare(rarest)
		if b.caseInsensitive {
			b.addRare(OppositeASCIICase(rarest))
		}
	}
}

func (b *rareBytesBuilder) setOffset(pos int, c byte) {
	off := uint8(pos) // #nosec G115 -- pos < maxRareOffset
	b.offsets[c] = max(b.offsets[c], off)
	if b.caseInsensitive {
		o := OppositeASCIICase(c)
		b.offsets[o] = max(b.offsets[o], off)
	}
}

func (b *rareBytesBuilder) addRare(c byte) {
	if b.rare[c] {
		return
	}
	b.rare[c] = true
	b.count++
	b.rankSum += int(simd.ByteRank(c))
}

func (b *rareBytesBuilder) build() *RareBytes {
	if !b.available || b.count == 0 || b.count > maxScanBytes {
		return nil
	}
	p := &RareBytes{offsets: b.offsets, count: b.count, rankSum: b.rankSum}
	for c := 0; c < 256; c++ {
		if b.rare[c] {
			p.bytes = append(p.bytes, byte(c))
		}
	}
	return p
}
