package prefilter

import (
	"bytes"
	"math/bits"

	"github.com/coregx/acmatch/automaton"
)

const (
	// numBuckets is the number of pattern buckets. Each mask byte holds one
	// membership bit per bucket.
	numBuckets = 8

	// maxFingerprintLen is the number of leading pattern bytes the nibble
	// masks cover.
	maxFingerprintLen = 2
)

// Packed is a Teddy-style multi-pattern searcher for small pattern sets.
//
// Patterns are spread over 8 buckets. For each of the first fingerprint
// bytes of a pattern, the low and high nibble tables get the pattern's
// bucket bit set. A haystack position is a candidate when ANDing the nibble
// lookups of the bytes there leaves any bucket bit set; only the patterns of
// those buckets are then compared in full.
//
// Packed verifies its candidates, so every match it reports is confirmed. It
// resolves several patterns matching at one position by the match kind:
// the lowest pattern ID for leftmost-first, the longest pattern for
// leftmost-longest.
//
// Packed is immutable and safe for concurrent use.
type Packed struct {
	patterns  [][]byte
	buckets   [numBuckets][]automaton.PatternID
	loMasks   [maxFingerprintLen][16]byte
	hiMasks   [maxFingerprintLen][16]byte
	fpLen     int
	minLen    int
	matchKind automaton.MatchKind
}

// NewPacked returns a Packed searcher, or nil when patterns is empty, has
// more than MaxPackedPatterns entries, contains an empty pattern, or kind is
// not a leftmost kind.
func NewPacked(kind automaton.MatchKind, patterns [][]byte) *Packed {
	b := &packedBuilder{matchKind: kind}
	for _, p := range patterns {
		b.add(p)
	}
	return b.build()
}

// buildMasks assigns pattern i to bucket i % numBuckets and sets its bucket
// bit in the nibble tables of each fingerprint position.
func (p *Packed) buildMasks() {
	for i, pattern := range p.patterns {
		bucket := i % numBuckets
		p.buckets[bucket] = append(p.buckets[bucket], automaton.PatternID(i)) // #nosec G115 -- at most MaxPackedPatterns
		bit := byte(1) << bucket
		for pos := 0; pos < p.fpLen; pos++ {
			b := pattern[pos]
			p.loMasks[pos][b&0x0F] |= bit
			p.hiMasks[pos][b>>4] |= bit
		}
	}
}

// candidateMask returns the buckets whose fingerprint matches at
// haystack[i:].
func (p *Packed) candidateMask(haystack []byte, i int) byte {
	mask := byte(0xFF)
	for pos := 0; pos < p.fpLen; pos++ {
		b := haystack[i+pos]
		mask &= p.loMasks[pos][b&0x0F] & p.hiMasks[pos][b>>4]
	}
	return mask
}

// FindIn implements automaton.Prefilter.
func (p *Packed) FindIn(haystack []byte, span automaton.Span) automaton.Candidate {
	h := haystack[:span.End]
	for i := span.Start; i+p.minLen <= len(h); i++ {
		mask := p.candidateMask(h, i)
		if mask == 0 {
			continue
		}
		if m, ok := p.verify(h, i, mask); ok {
			return automaton.MatchCandidate(m)
		}
	}
	return automaton.NoCandidate()
}

// verify compares every pattern of the buckets in mask at haystack[pos:]
// and returns the preferred one that matches.
func (p *Packed) verify(haystack []byte, pos int, mask byte) (automaton.Match, bool) {
	var (
		best   automaton.PatternID
		bestOK bool
	)
	for mask != 0 {
		bucket := bits.TrailingZeros8(mask)
		mask &^= 1 << bucket
		for _, pid := range p.buckets[bucket] {
			pattern := p.patterns[pid]
			end := pos + len(pattern)
			if end > len(haystack) || !bytes.Equal(haystack[pos:end], pattern) {
				continue
			}
			if !bestOK || p.prefer(pid, best) {
				best, bestOK = pid, true
			}
		}
	}
	if !bestOK {
		return automaton.Match{}, false
	}
	return automaton.NewMatch(best, pos, pos+len(p.patterns[best])), true
}

// prefer reports whether pattern a wins over pattern b at the same start.
func (p *Packed) prefer(a, b automaton.PatternID) bool {
	if p.matchKind == automaton.MatchKindLeftmostLongest {
		la, lb := len(p.patterns[a]), len(p.patterns[b])
		if la != lb {
			return la > lb
		}
	}
	return a < b
}

// PatternsLen returns the number of patterns.
func (p *Packed) PatternsLen() int { return len(p.patterns) }

// MemoryUsage implements automaton.Prefilter.
func (p *Packed) MemoryUsage() int {
	n := 0
	for _, pattern := range p.patterns {
		n += len(pattern) + 24
	}
	for _, bucket := range p.buckets {
		n += len(bucket) * 4
	}
	return n
}

type packedBuilder struct {
	matchKind automaton.MatchKind
	patterns  [][]byte
	disabled  bool
	minLen    int
	maxLen    int
}

func (b *packedBuilder) add(pattern []byte) {
	if b.disabled {
		return
	}
	if len(pattern) == 0 || len(b.patterns) >= MaxPackedPatterns {
		b.disabled = true
		b.patterns = nil
		return
	}
	if len(b.patterns) == 0 || len(pattern) < b.minLen {
		b.minLen = len(pattern)
	}
	b.maxLen = max(b.maxLen, len(pattern))
	b.patterns = append(b.patterns, bytes.Clone(pattern))
}

func (b *packedBuilder) build() *Packed {
	if b.disabled || len(b.patterns) == 0 || !b.matchKind.IsLeftmost() {
		return nil
	}
	p := &Packed{
		patterns:  b.patterns,
		fpLen:     min(b.minLen, maxFingerprintLen),
		minLen:    b.minLen,
		matchKind: b.matchKind,
	}
	p.buildMasks()
	return p
}
