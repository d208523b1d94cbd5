package prefilter

import (
	"github.com/coregx/acmatch/automaton"
	"github.com/coregx/acmatch/simd"
)

// Memmem is the prefilter for a single pattern. It finds the pattern itself,
// so every candidate it reports is a confirmed match of pattern 0.
type Memmem struct {
	finder *simd.Finder
}

// NewMemmem returns a Memmem prefilter for needle.
func NewMemmem(needle []byte) *Memmem {
	return &Memmem{finder: simd.NewFinder(needle)}
}

// FindIn implements automaton.Prefilter.
func (p *Memmem) FindIn(haystack []byte, span automaton.Span) automaton.Candidate {
	i := p.finder.Find(spanOf(haystack, span))
	if i < 0 {
		return automaton.NoCandidate()
	}
	start := span.Start + i
	return automaton.MatchCandidate(automaton.NewMatch(0, start, start+len(p.finder.Needle())))
}

// MemoryUsage implements automaton.Prefilter.
func (p *Memmem) MemoryUsage() int {
	return len(p.finder.Needle())
}

type memmemBuilder struct {
	count  int
	needle []byte
}

func (b *memmemBuilder) add(pattern []byte) {
	b.count++
	if b.count == 1 {
		b.needle = pattern
	} else {
		b.needle = nil
	}
}

func (b *memmemBuilder) build() automaton.Prefilter {
	if b.count != 1 {
		return nil
	}
	return NewMemmem(b.needle)
}
