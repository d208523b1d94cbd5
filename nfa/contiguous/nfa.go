// Package contiguous implements an Aho-Corasick NFA stored in a single
// []uint32.
//
// A state ID is the offset of the state's encoding in that slice. Every
// state starts with a header word and its failure link, followed by its
// transitions in one of three encodings:
//
//	dense  header 0xFF: one next state per byte class, Fail where the
//	       trie has no edge
//	one    header 0xFE | class<<8: a single next state. Only non-match
//	       states use it, and most states in a large trie are of this kind.
//	sparse header n: ceil(n/4) words of packed classes, then n next states
//
// Match states append their pattern IDs. A single pattern is stored as one
// word with the high bit set; otherwise a count word precedes the IDs.
//
// The dead state sits at offset 0. The fail sentinel 1 is never the offset
// of a state, since the dead state is longer than one word.
package contiguous

import (
	"fmt"
	"iter"
	"strings"
	"unsafe"

	"github.com/coregx/acmatch/automaton"
	"github.com/coregx/acmatch/internal/alphabet"
	"github.com/coregx/acmatch/internal/seal"
)

const (
	// Dead is the dead state.
	Dead automaton.StateID = 0

	// Fail is the sentinel for a missing transition.
	Fail automaton.StateID = 1
)

const (
	kindDense uint32 = 0xFF
	kindOne   uint32 = 0xFE

	// maxSparseTransitions keeps sparse counts clear of the kind sentinels.
	// States with more transitions are rare and encoded densely.
	maxSparseTransitions = 127

	singleMatch uint32 = 1 << 31
)

// NFA is a contiguous Aho-Corasick NFA. It implements automaton.Automaton
// and is immutable and safe for concurrent use once built.
type NFA struct {
	seal.Backend

	repr        []uint32
	patternLens []int
	stateLen    int
	prefilter   automaton.Prefilter
	matchKind   automaton.MatchKind
	classes     alphabet.ByteClasses
	alphabetLen int

	minPatternLen int
	maxPatternLen int

	startUnanchored automaton.StateID
	startAnchored   automaton.StateID
	maxMatch        automaton.StateID
	maxSpecial      automaton.StateID
}

// u32Len returns the number of words needed to pack n classes.
func u32Len(n int) int {
	return (n + 3) / 4
}

// transLen returns the number of words the header, failure link and
// transitions of the state at o occupy.
func (n *NFA) transLen(o int) int {
	switch kind := n.repr[o] & 0xFF; kind {
	case kindDense:
		return 2 + n.alphabetLen
	case kindOne:
		return 3
	default:
		k := int(kind)
		return 2 + u32Len(k) + k
	}
}

// encodedLen returns the number of words the state at o occupies.
func (n *NFA) encodedLen(o int) int {
	size := n.transLen(o)
	if n.IsMatch(automaton.StateID(o)) { // #nosec G115 -- o is a state ID
		if w := n.repr[o+size]; w&singleMatch != 0 {
			size++
		} else {
			size += 1 + int(w)
		}
	}
	return size
}

// follow returns the transition of the state at o on class, or Fail.
func (n *NFA) follow(o int, class byte) automaton.StateID {
	repr := n.repr
	switch kind := repr[o] & 0xFF; kind {
	case kindDense:
		return automaton.StateID(repr[o+2+int(class)])
	case kindOne:
		if byte(repr[o]>>8) == class {
			return automaton.StateID(repr[o+2])
		}
	default:
		k := int(kind)
		nexts := o + 2 + u32Len(k)
		for i := range k {
			if byte(repr[o+2+i/4]>>(8*(i%4))) == class {
				return automaton.StateID(repr[nexts+i])
			}
		}
	}
	return Fail
}

// StartState implements automaton.Automaton. Both start states always exist.
func (n *NFA) StartState(anchored automaton.Anchored) (automaton.StateID, error) {
	if anchored.IsAnchored() {
		return n.startAnchored, nil
	}
	return n.startUnanchored, nil
}

// NextState implements automaton.Automaton.
func (n *NFA) NextState(anchored automaton.Anchored, sid automaton.StateID, b byte) automaton.StateID {
	class := n.classes.Get(b)
	for {
		o := int(sid)
		if next := n.follow(o, class); next != Fail {
			return next
		}
		// Failure links lead to proper suffixes, which cannot start at the
		// anchor.
		if anchored.IsAnchored() {
			return Dead
		}
		sid = automaton.StateID(n.repr[o+1])
	}
}

// IsSpecial implements automaton.Automaton.
func (n *NFA) IsSpecial(sid automaton.StateID) bool { return sid <= n.maxSpecial }

// IsDead implements automaton.Automaton.
func (n *NFA) IsDead(sid automaton.StateID) bool { return sid == Dead }

// IsMatch implements automaton.Automaton.
func (n *NFA) IsMatch(sid automaton.StateID) bool {
	return !n.IsDead(sid) && sid <= n.maxMatch
}

// IsStart implements automaton.Automaton.
func (n *NFA) IsStart(sid automaton.StateID) bool {
	return sid == n.startUnanchored || sid == n.startAnchored
}

// MatchKind implements automaton.Automaton.
func (n *NFA) MatchKind() automaton.MatchKind { return n.matchKind }

// MatchLen implements automaton.Automaton.
func (n *NFA) MatchLen(sid automaton.StateID) int {
	if !n.IsMatch(sid) {
		return 0
	}
	o := int(sid)
	w := n.repr[o+n.transLen(o)]
	if w&singleMatch != 0 {
		return 1
	}
	return int(w)
}

// MatchPattern implements automaton.Automaton.
func (n *NFA) MatchPattern(sid automaton.StateID, index int) automaton.PatternID {
	o := int(sid)
	at := o + n.transLen(o)
	if w := n.repr[at]; w&singleMatch != 0 {
		return automaton.PatternID(w &^ singleMatch)
	}
	return automaton.PatternID(n.repr[at+1+index])
}

// PatternsLen implements automaton.Automaton.
func (n *NFA) PatternsLen() int { return len(n.patternLens) }

// PatternLen implements automaton.Automaton.
func (n *NFA) PatternLen(pid automaton.PatternID) int { return n.patternLens[pid] }

// MinPatternLen implements automaton.Automaton.
func (n *NFA) MinPatternLen() int { return n.minPatternLen }

// MaxPatternLen implements automaton.Automaton.
func (n *NFA) MaxPatternLen() int { return n.maxPatternLen }

// MemoryUsage implements automaton.Automaton.
func (n *NFA) MemoryUsage() int {
	size := len(n.repr)*int(unsafe.Sizeof(uint32(0))) +
		len(n.patternLens)*int(unsafe.Sizeof(int(0)))
	if n.prefilter != nil {
		size += n.prefilter.MemoryUsage()
	}
	return size
}

// Prefilter implements automaton.Automaton.
func (n *NFA) Prefilter() automaton.Prefilter { return n.prefilter }

// Len returns the number of states, counting the fail sentinel.
func (n *NFA) Len() int { return n.stateLen }

// ByteClasses returns the byte classes dense rows are indexed by.
func (n *NFA) ByteClasses() alphabet.ByteClasses { return n.classes }

// Fail returns the failure link of sid.
func (n *NFA) Fail(sid automaton.StateID) automaton.StateID {
	return automaton.StateID(n.repr[int(sid)+1])
}

// States returns the ID of every encoded state in ascending order. The
// fail sentinel has no encoding and is not included.
func (n *NFA) States() iter.Seq[automaton.StateID] {
	return func(yield func(automaton.StateID) bool) {
		for o := 0; o < len(n.repr); o += n.encodedLen(o) {
			if !yield(automaton.StateID(o)) { // #nosec G115 -- bounded by MaxStateID at build time
				return
			}
		}
	}
}

// Transitions returns the explicit transitions of sid by byte in ascending
// order. Transitions to Fail are omitted.
func (n *NFA) Transitions(sid automaton.StateID) iter.Seq2[byte, automaton.StateID] {
	return func(yield func(byte, automaton.StateID) bool) {
		for b := range 256 {
			next := n.follow(int(sid), n.classes.Get(byte(b)))
			if next == Fail {
				continue
			}
			if !yield(byte(b), next) {
				return
			}
		}
	}
}

// String renders every state with its failure link, transitions and
// matches, followed by a summary.
func (n *NFA) String() string {
	var sb strings.Builder
	sb.WriteString("contiguous.NFA(\n")
	for sid := range n.States() {
		fmt.Fprintf(&sb, "%s%06d(%06d): %s\n",
			automaton.StateIndicator(n, sid), sid, n.Fail(sid),
			automaton.FormatTransitions(n.Transitions(sid)))
		if n.IsMatch(sid) {
			parts := make([]string, n.MatchLen(sid))
			for i := range parts {
				parts[i] = fmt.Sprint(n.MatchPattern(sid, i))
			}
			fmt.Fprintf(&sb, "         matches: %s\n", strings.Join(parts, ", "))
		}
		if sid == Dead {
			fmt.Fprintf(&sb, "F %06d:\n", Fail)
		}
	}
	fmt.Fprintf(&sb, "match kind: %s\n", n.matchKind)
	fmt.Fprintf(&sb, "prefilter: %t\n", n.prefilter != nil)
	fmt.Fprintf(&sb, "state length: %d\n", n.stateLen)
	fmt.Fprintf(&sb, "pattern length: %d\n", len(n.patternLens))
	fmt.Fprintf(&sb, "shortest pattern length: %d\n", n.minPatternLen)
	fmt.Fprintf(&sb, "longest pattern length: %d\n", n.maxPatternLen)
	fmt.Fprintf(&sb, "alphabet length: %d\n", n.alphabetLen)
	fmt.Fprintf(&sb, "memory usage: %d\n", n.MemoryUsage())
	sb.WriteString(")\n")
	return sb.String()
}
