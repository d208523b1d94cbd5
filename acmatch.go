// Package acmatch finds occurrences of many literal patterns at once using
// the Aho-Corasick algorithm.
//
// A search runs in time linear in the haystack, independent of the number
// of patterns. Three backends implement the same automaton contract and
// report identical matches:
//   - nfa/noncontiguous: the trie with failure links everything is built from
//   - nfa/contiguous: the same NFA packed into one flat allocation
//   - dfa: failure transitions resolved ahead of time
//
// AhoCorasick picks one automatically (see Kind) and wraps the search
// algorithms of package automaton behind a small API.
//
// Basic usage:
//
//	ac, err := acmatch.New([]string{"apple", "maple", "Snapple"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, m := range ac.FindAll([]byte("Nobody likes maple in their apple flavored Snapple.")) {
//	    fmt.Println(m.Pattern(), m.Start(), m.End())
//	}
//
// Match semantics:
//   - MatchKindStandard reports matches as soon as they are seen. It is the
//     only kind supporting overlapping and stream searches.
//   - MatchKindLeftmostFirst behaves like a regex alternation: the leftmost
//     match wins, ties go to the pattern listed first.
//   - MatchKindLeftmostLongest: the leftmost match wins, ties go to the
//     longest pattern.
//
// An AhoCorasick is immutable and safe for concurrent use. Iterators and
// OverlappingState are not; give each goroutine its own.
package acmatch

import (
	"fmt"

	"github.com/coregx/acmatch/automaton"
	"github.com/coregx/acmatch/dfa"
	"github.com/coregx/acmatch/nfa/contiguous"
	"github.com/coregx/acmatch/nfa/noncontiguous"
)

// AhoCorasick is a compiled set of patterns.
//
// Example:
//
//	ac := acmatch.MustNew([]string{"foo", "bar"})
//	if ac.IsMatchString("xxbarxx") {
//	    println("matched!")
//	}
type AhoCorasick struct {
	aut       automaton.Automaton
	kind      Kind
	startKind StartKind
}

// New compiles patterns with DefaultConfig. Pattern i gets PatternID i.
func New(patterns []string) (*AhoCorasick, error) {
	return NewWithConfig(patterns, DefaultConfig())
}

// MustNew is like New but panics if the patterns cannot be compiled.
//
// This is useful for pattern sets known at compile time.
func MustNew(patterns []string) *AhoCorasick {
	ac, err := New(patterns)
	if err != nil {
		panic("acmatch: New: " + err.Error())
	}
	return ac
}

// NewWithConfig compiles patterns with a custom configuration.
//
// Example:
//
//	cfg := acmatch.DefaultConfig()
//	cfg.MatchKind = acmatch.MatchKindLeftmostLongest
//	ac, err := acmatch.NewWithConfig([]string{"Sam", "Samwise"}, cfg)
func NewWithConfig(patterns []string, cfg Config) (*AhoCorasick, error) {
	bs := make([][]byte, len(patterns))
	for i, p := range patterns {
		bs[i] = []byte(p)
	}
	return NewBytesWithConfig(bs, cfg)
}

// NewBytesWithConfig is NewWithConfig for byte slice patterns. Patterns
// need not be valid UTF-8.
func NewBytesWithConfig(patterns [][]byte, cfg Config) (*AhoCorasick, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	nnfa, err := noncontiguous.NewWithConfig(noncontiguous.Config{
		MatchKind:            cfg.MatchKind,
		ASCIICaseInsensitive: cfg.ASCIICaseInsensitive,
		Prefilter:            cfg.Prefilter,
		DenseDepth:           cfg.DenseDepth,
		Logger:               cfg.Logger,
	}, patterns)
	if err != nil {
		return nil, err
	}

	log := cfg.logger()
	ac := &AhoCorasick{startKind: cfg.StartKind}
	switch cfg.Kind {
	case KindAuto:
		log.Debug("choosing Aho-Corasick backend",
			"patterns", nnfa.PatternsLen(),
			"max_pattern_len", nnfa.MaxPatternLen(),
			"start_kind", cfg.StartKind)
		ac.aut, ac.kind = buildAuto(cfg, nnfa)
	case KindNoncontiguousNFA:
		log.Debug("forcefully chose noncontiguous NFA")
		ac.aut, ac.kind = nnfa, KindNoncontiguousNFA
	case KindContiguousNFA:
		log.Debug("forcefully chose contiguous NFA")
		cnfa, err := contiguous.FromNoncontiguous(contiguousConfig(cfg), nnfa)
		if err != nil {
			return nil, fmt.Errorf("acmatch: building contiguous NFA: %w", err)
		}
		ac.aut, ac.kind = cnfa, KindContiguousNFA
	case KindDFA:
		log.Debug("forcefully chose DFA")
		d, err := dfa.FromNoncontiguous(dfaConfig(cfg), nnfa)
		if err != nil {
			return nil, fmt.Errorf("acmatch: building DFA: %w", err)
		}
		ac.aut, ac.kind = d, KindDFA
	}
	return ac, nil
}

// buildAuto tries the backends from fastest to most compact. Both later
// steps only reshuffle the NFA already built, so a failed attempt is cheap.
func buildAuto(cfg Config, nnfa *noncontiguous.NFA) (automaton.Automaton, Kind) {
	log := cfg.logger()
	if cfg.StartKind != automaton.StartKindBoth && nnfa.PatternsLen() <= autoDFAMaxPatterns {
		d, err := dfa.FromNoncontiguous(dfaConfig(cfg), nnfa)
		if err == nil {
			log.Debug("chose DFA", "memory", d.MemoryUsage())
			return d, KindDFA
		}
		log.Debug("failed to build DFA, trying something else", "error", err)
	}
	cnfa, err := contiguous.FromNoncontiguous(contiguousConfig(cfg), nnfa)
	if err == nil {
		log.Debug("chose contiguous NFA", "memory", cnfa.MemoryUsage())
		return cnfa, KindContiguousNFA
	}
	log.Debug("failed to build contiguous NFA, trying something else", "error", err)
	log.Debug("chose noncontiguous NFA", "memory", nnfa.MemoryUsage())
	return nnfa, KindNoncontiguousNFA
}

func contiguousConfig(cfg Config) contiguous.Config {
	c := contiguous.DefaultConfig()
	c.DenseDepth = cfg.DenseDepth
	c.ByteClasses = cfg.ByteClasses
	c.Logger = cfg.Logger
	return c
}

func dfaConfig(cfg Config) dfa.Config {
	c := dfa.DefaultConfig()
	c.StartKind = cfg.StartKind
	c.ByteClasses = cfg.ByteClasses
	c.Logger = cfg.Logger
	return c
}

// Kind returns the backend in use. It is never KindAuto.
func (ac *AhoCorasick) Kind() Kind { return ac.kind }

// MatchKind returns the match semantics.
func (ac *AhoCorasick) MatchKind() MatchKind { return ac.aut.MatchKind() }

// StartKind returns the configured start kind.
func (ac *AhoCorasick) StartKind() StartKind { return ac.startKind }

// PatternsLen returns the number of patterns.
func (ac *AhoCorasick) PatternsLen() int { return ac.aut.PatternsLen() }

// PatternLen returns the length in bytes of pattern pid.
func (ac *AhoCorasick) PatternLen(pid PatternID) int { return ac.aut.PatternLen(pid) }

// MinPatternLen returns the length of the shortest pattern, or 0 when there
// are none.
func (ac *AhoCorasick) MinPatternLen() int { return ac.aut.MinPatternLen() }

// MaxPatternLen returns the length of the longest pattern.
func (ac *AhoCorasick) MaxPatternLen() int { return ac.aut.MaxPatternLen() }

// MemoryUsage returns the approximate heap usage in bytes.
func (ac *AhoCorasick) MemoryUsage() int { return ac.aut.MemoryUsage() }

// Automaton returns the underlying automaton, for use with the lower level
// search routines of package automaton.
func (ac *AhoCorasick) Automaton() automaton.Automaton { return ac.aut }

// String returns a short description of the automaton.
func (ac *AhoCorasick) String() string {
	return fmt.Sprintf("AhoCorasick(kind=%s, match_kind=%s, patterns=%d)",
		ac.kind, ac.aut.MatchKind(), ac.aut.PatternsLen())
}
