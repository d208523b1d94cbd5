// Package prefilter builds the candidate scanners that let automaton search
// routines skip input that cannot contain a match.
//
// A prefilter is built from the same patterns as the automaton it serves.
// The builder picks one strategy from what the pattern set allows:
//   - one pattern → Memmem (substring search, reports matches itself)
//   - few distinct first bytes → StartBytes (memchr on first bytes)
//   - few rare bytes → RareBytes (memchr on rare bytes, backed off by offset)
//   - leftmost match kinds with ≤ 64 patterns → Packed (bucketed fingerprints)
//   - many leftmost-first patterns → AhoCorasick (external automaton)
//
// Any empty pattern disables prefiltering, since every position would be a
// candidate.
//
// Example usage:
//
//	b := prefilter.NewBuilder(prefilter.Config{MatchKind: automaton.MatchKindStandard})
//	b.Add([]byte("Sherlock"))
//	b.Add([]byte("Moriarty"))
//	pre := b.Build()
//	if pre != nil {
//	    c := pre.FindIn(haystack, automaton.Span{Start: 0, End: len(haystack)})
//	    _ = c
//	}
package prefilter

import (
	"log/slog"

	"github.com/coregx/acmatch/automaton"
	"github.com/coregx/acmatch/simd"
)

const (
	// MaxPackedPatterns is the largest pattern set Packed accepts.
	MaxPackedPatterns = 64

	// maxPackedPatternLen bounds pattern length when preferring Packed over
	// the byte-based prefilters.
	maxPackedPatternLen = 16

	// maxRareOffset is the exclusive bound on pattern length for RareBytes,
	// since offsets are stored in a byte.
	maxRareOffset = 256

	// rankSlack lets StartBytes win over RareBytes even when its bytes are
	// slightly more common, since a start byte needs no back-off.
	rankSlack = 50
)

// Config controls prefilter construction.
type Config struct {
	// MatchKind is the match semantics of the automaton being served.
	// Packed and AhoCorasick are only built for leftmost kinds.
	MatchKind automaton.MatchKind

	// ASCIICaseInsensitive makes the prefilter match ASCII letters in either
	// case, as the automaton does.
	ASCIICaseInsensitive bool

	// Logger receives the strategy decision at Debug level. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// Builder accumulates patterns and picks a prefilter for them.
//
// Patterns must be added in pattern ID order.
type Builder struct {
	cfg     Config
	count   int
	enabled bool

	startBytes *startBytesBuilder
	rareBytes  *rareBytesBuilder
	memmem     *memmemBuilder
	packed     *packedBuilder
	ac         *ahoCorasickBuilder
}

// NewBuilder returns an empty Builder.
func NewBuilder(cfg Config) *Builder {
	b := &Builder{
		cfg:        cfg,
		enabled:    true,
		startBytes: newStartBytesBuilder(cfg.ASCIICaseInsensitive),
		rareBytes:  newRareBytesBuilder(cfg.ASCIICaseInsensitive),
		memmem:     &memmemBuilder{},
	}
	if cfg.MatchKind.IsLeftmost() {
		b.packed = &packedBuilder{matchKind: cfg.MatchKind}
	}
	if cfg.MatchKind.IsLeftmostFirst() {
		b.ac = &ahoCorasickBuilder{}
	}
	return b
}

// Add adds the next pattern.
func (b *Builder) Add(pattern []byte) {
	if len(pattern) == 0 {
		b.enabled = false
	}
	if !b.enabled {
		return
	}
	b.count++
	b.startBytes.add(pattern)
	b.rareBytes.add(pattern)
	b.memmem.add(pattern)
	if b.packed != nil {
		b.packed.add(pattern)
	}
	if b.ac != nil {
		b.ac.add(pattern)
	}
}

// Build returns the chosen prefilter, or nil when no strategy is worth
// using.
func (b *Builder) Build() automaton.Prefilter {
	pre, name := b.choose()
	logger := b.cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if pre == nil {
		logger.Debug("prefilter disabled", "patterns", b.count, "enabled", b.enabled)
		return nil
	}
	logger.Debug("prefilter selected",
		"strategy", name,
		"patterns", b.count,
		"memory", pre.MemoryUsage())
	return pre
}

func (b *Builder) choose() (automaton.Prefilter, string) {
	if !b.enabled || b.count == 0 {
		return nil, ""
	}
	if !b.cfg.ASCIICaseInsensitive {
		if pre := b.memmem.build(); pre != nil {
			return pre, "memmem"
		}
	}

	var (
		packed         *Packed
		patlen, minlen int
	)
	if !b.cfg.ASCIICaseInsensitive && b.packed != nil {
		packed = b.packed.build()
		patlen, minlen = b.packed.maxLen, b.packed.minLen
	}
	// Packed is only worth preferring over memchr scans when it comes with
	// enough selective bytes and the CPU can scan fingerprints wide.
	preferPacked := func(count int) bool {
		return packed != nil && simd.HasVectorUnit &&
			patlen <= maxPackedPatternLen && minlen >= 2 && count >= 3
	}

	start := b.startBytes.build()
	rare := b.rareBytes.build()
	switch {
	case start != nil && rare != nil:
		if preferPacked(start.count) && rare.count >= 3 {
			return packed, "packed"
		}
		hasFewerBytes := start.count < rare.count
		hasRarerBytes := start.rankSum <= rare.rankSum+rankSlack
		if hasFewerBytes || hasRarerBytes {
			return start, "start-bytes"
		}
		return rare, "rare-bytes"
	case start != nil:
		if preferPacked(start.count) {
			return packed, "packed"
		}
		return start, "start-bytes"
	case rare != nil:
		if preferPacked(rare.count) {
			return packed, "packed"
		}
		return rare, "rare-bytes"
	case b.cfg.ASCIICaseInsensitive:
		return nil, ""
	case packed != nil:
		return packed, "packed"
	case b.ac != nil:
		if pre := b.ac.build(); pre != nil {
			return pre, "aho-corasick"
		}
	}
	return nil, ""
}

// OppositeASCIICase returns b with its ASCII case flipped. Bytes that are
// not ASCII letters are returned unchanged.
func OppositeASCIICase(b byte) byte {
	switch {
	case 'A' <= b && b <= 'Z':
		return b | 0x20
	case 'a' <= b && b <= 'z':
		return b &^ 0x20
	default:
		return b
	}
}

// spanOf returns haystack[span.Start:span.End].
func spanOf(haystack []byte, span automaton.Span) []byte {
	return haystack[span.Start:span.End]
}
