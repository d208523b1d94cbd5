// Package dfa implements an Aho-Corasick DFA: every failure transition of
// the NFA is resolved at construction time, so a search does exactly one
// table lookup per haystack byte.
//
// State IDs are premultiplied: the ID of the i'th state is i<<stride2, so
// the next state is trans[sid+class]. The table is laid out like the NFA it
// is built from, with the dead state first, the unused fail state second
// and the match states right after them, which keeps IsMatch and IsSpecial
// single comparisons.
package dfa

import (
	"fmt"
	"iter"
	"strings"
	"unsafe"

	"github.com/coregx/acmatch/automaton"
	"github.com/coregx/acmatch/internal/alphabet"
	"github.com/coregx/acmatch/internal/seal"
)

// Dead is the dead state.
const Dead automaton.StateID = 0

// DFA is an Aho-Corasick DFA. It implements automaton.Automaton and is
// immutable and safe for concurrent use once built.
type DFA struct {
	seal.Backend

	trans         []automaton.StateID
	matches       [][]automaton.PatternID
	matchesMemory int
	patternLens   []int
	prefilter     automaton.Prefilter
	matchKind     automaton.MatchKind
	startKind     automaton.StartKind
	stateLen      int
	alphabetLen   int
	stride2       int
	classes       alphabet.ByteClasses

	minPatternLen int
	maxPatternLen int

	// A start ID of Dead means the DFA was built without that start state.
	startUnanchored automaton.StateID
	startAnchored   automaton.StateID
	maxMatch        automaton.StateID
	maxSpecial      automaton.StateID
}

// matchIndex maps a match state to its slot in matches. The dead and fail
// states have no slot.
func (d *DFA) matchIndex(sid automaton.StateID) int {
	return (int(sid) >> d.stride2) - 2
}

// StartState implements automaton.Automaton. It fails for the start state
// the DFA's StartKind left out.
func (d *DFA) StartState(anchored automaton.Anchored) (automaton.StateID, error) {
	if anchored.IsAnchored() {
		if d.startAnchored == Dead {
			return Dead, automaton.ErrUnsupportedAnchored
		}
		return d.startAnchored, nil
	}
	if d.startUnanchored == Dead {
		return Dead, automaton.ErrUnsupportedUnanchored
	}
	return d.startUnanchored, nil
}

// NextState implements automaton.Automaton. The anchor mode is already
// encoded in which half of the table sid belongs to.
func (d *DFA) NextState(_ automaton.Anchored, sid automaton.StateID, b byte) automaton.StateID {
	return d.trans[int(sid)+int(d.classes.Get(b))]
}

// IsSpecial implements automaton.Automaton.
func (d *DFA) IsSpecial(sid automaton.StateID) bool { return sid <= d.maxSpecial }

// IsDead implements automaton.Automaton.
func (d *DFA) IsDead(sid automaton.StateID) bool { return sid == Dead }

// IsMatch implements automaton.Automaton.
func (d *DFA) IsMatch(sid automaton.StateID) bool {
	return !d.IsDead(sid) && sid <= d.maxMatch
}

// IsStart implements automaton.Automaton.
func (d *DFA) IsStart(sid automaton.StateID) bool {
	return sid == d.startUnanchored || sid == d.startAnchored
}

// MatchKind implements automaton.Automaton.
func (d *DFA) MatchKind() automaton.MatchKind { return d.matchKind }

// MatchLen implements automaton.Automaton.
func (d *DFA) MatchLen(sid automaton.StateID) int {
	if !d.IsMatch(sid) {
		return 0
	}
	return len(d.matches[d.matchIndex(sid)])
}

// MatchPattern implements automaton.Automaton.
func (d *DFA) MatchPattern(sid automaton.StateID, index int) automaton.PatternID {
	return d.matches[d.matchIndex(sid)][index]
}

// PatternsLen implements automaton.Automaton.
func (d *DFA) PatternsLen() int { return len(d.patternLens) }

// PatternLen implements automaton.Automaton.
func (d *DFA) PatternLen(pid automaton.PatternID) int { return d.patternLens[pid] }

// MinPatternLen implements automaton.Automaton.
func (d *DFA) MinPatternLen() int { return d.minPatternLen }

// MaxPatternLen implements automaton.Automaton.
func (d *DFA) MaxPatternLen() int { return d.maxPatternLen }

// MemoryUsage implements automaton.Automaton.
func (d *DFA) MemoryUsage() int {
	size := len(d.trans)*int(unsafe.Sizeof(automaton.StateID(0))) +
		len(d.matches)*int(unsafe.Sizeof([]automaton.PatternID(nil))) +
		d.matchesMemory +
		len(d.patternLens)*int(unsafe.Sizeof(int(0)))
	if d.prefilter != nil {
		size += d.prefilter.MemoryUsage()
	}
	return size
}

// Prefilter implements automaton.Automaton.
func (d *DFA) Prefilter() automaton.Prefilter { return d.prefilter }

// StartKind returns the start states the DFA was built with.
func (d *DFA) StartKind() automaton.StartKind { return d.startKind }

// Len returns the number of states, including the dead and fail states.
func (d *DFA) Len() int { return d.stateLen }

// Stride2 returns log2 of the row width. State IDs are multiples of
// 1<<Stride2().
func (d *DFA) Stride2() int { return d.stride2 }

// ByteClasses returns the byte classes rows are indexed by.
func (d *DFA) ByteClasses() alphabet.ByteClasses { return d.classes }

// States returns every state ID in ascending order.
func (d *DFA) States() iter.Seq[automaton.StateID] {
	return func(yield func(automaton.StateID) bool) {
		for i := range d.stateLen {
			if !yield(automaton.StateID(i << d.stride2)) { // #nosec G115 -- checked against MaxStateID at build time
				return
			}
		}
	}
}

// Transitions returns the transitions of sid that do not lead to the dead
// state, by byte in ascending order.
func (d *DFA) Transitions(sid automaton.StateID) iter.Seq2[byte, automaton.StateID] {
	return func(yield func(byte, automaton.StateID) bool) {
		for b := range 256 {
			next := d.NextState(automaton.AnchoredNo, sid, byte(b))
			if next == Dead {
				continue
			}
			if !yield(byte(b), next) {
				return
			}
		}
	}
}

// String renders every state with its transitions and matches, followed by
// a summary.
func (d *DFA) String() string {
	var sb strings.Builder
	sb.WriteString("dfa.DFA(\n")
	for sid := range d.States() {
		// The fail state only exists to keep the NFA's layout.
		if int(sid)>>d.stride2 == 1 {
			fmt.Fprintf(&sb, "F %06d:\n", sid)
			continue
		}
		fmt.Fprintf(&sb, "%s%06d: %s\n",
			automaton.StateIndicator(d, sid), sid,
			automaton.FormatTransitions(d.Transitions(sid)))
		if d.IsMatch(sid) {
			parts := make([]string, d.MatchLen(sid))
			for i := range parts {
				parts[i] = fmt.Sprint(d.MatchPattern(sid, i))
			}
			fmt.Fprintf(&sb, "         matches: %s\n", strings.Join(parts, ", "))
		}
	}
	fmt.Fprintf(&sb, "match kind: %s\n", d.matchKind)
	fmt.Fprintf(&sb, "start kind: %s\n", d.startKind)
	fmt.Fprintf(&sb, "prefilter: %t\n", d.prefilter != nil)
	fmt.Fprintf(&sb, "state length: %d\n", d.stateLen)
	fmt.Fprintf(&sb, "pattern length: %d\n", len(d.patternLens))
	fmt.Fprintf(&sb, "shortest pattern length: %d\n", d.minPatternLen)
	fmt.Fprintf(&sb, "longest pattern length: %d\n", d.maxPatternLen)
	fmt.Fprintf(&sb, "alphabet length: %d\n", d.alphabetLen)
	fmt.Fprintf(&sb, "stride: %d\n", 1<<d.stride2)
	fmt.Fprintf(&sb, "memory usage: %d\n", d.MemoryUsage())
	sb.WriteString(")\n")
	return sb.String()
}
