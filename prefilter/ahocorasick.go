package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/acmatch/automaton"
)

// AhoCorasick scans with an independent Aho-Corasick automaton for pattern
// sets too large for Packed.
//
// It only reports possible starts: the position it reports is backed off
// from the end of the found occurrence by the longest pattern length, which
// is never past the start of the leftmost match regardless of which
// occurrence the inner automaton reports.
type AhoCorasick struct {
	ac     *ahocorasick.Automaton
	maxLen int
	size   int
}

// NewAhoCorasick returns an AhoCorasick prefilter for patterns. It returns
// nil when patterns is empty, contains an empty pattern, or the inner
// automaton cannot be built.
func NewAhoCorasick(patterns [][]byte) *AhoCorasick {
	b := &ahoCorasickBuilder{}
	for _, p := range patterns {
		b.add(p)
	}
	pre := b.build()
	if pre == nil {
		return nil
	}
	return pre.(*AhoCorasick)
}

// FindIn implements automaton.Prefilter.
func (p *AhoCorasick) FindIn(haystack []byte, span automaton.Span) automaton.Candidate {
	if span.Start >= span.End {
		return automaton.NoCandidate()
	}
	m := p.ac.Find(haystack[:span.End], span.Start)
	if m == nil {
		return automaton.NoCandidate()
	}
	return automaton.PossibleStartCandidate(max(span.Start, m.End-p.maxLen))
}

// MemoryUsage implements automaton.Prefilter. It approximates the inner
// automaton by the total pattern length.
func (p *AhoCorasick) MemoryUsage() int { return p.size }

type ahoCorasickBuilder struct {
	patterns [][]byte
	disabled bool
}

func (b *ahoCorasickBuilder) add(pattern []byte) {
	if len(pattern) == 0 {
		b.disabled = true
	}
	if !b.disabled {
		b.patterns = append(b.patterns, pattern)
	}
}

// build returns an automaton.Prefilter rather than *AhoCorasick so a failed
// build never yields a typed nil interface.
func (b *ahoCorasickBuilder) build() automaton.Prefilter {
	if b.disabled || len(b.patterns) == 0 {
		return nil
	}
	builder := ahocorasick.NewBuilder()
	p := &AhoCorasick{}
	for _, pattern := range b.patterns {
		builder.AddPattern(pattern)
		p.maxLen = max(p.maxLen, len(pattern))
		p.size += len(pattern)
	}
	ac, err := builder.Build()
	if err != nil {
		return nil
	}
	p.ac = ac
	return p
}
