// Package automaton defines the capability interface shared by every
// Aho-Corasick backend in this module and the search algorithms built on it.
//
// The algorithms here are written once against Automaton and work unchanged
// with each backend:
//   - Find: single-shot forward search honouring the automaton's MatchKind
//   - FindOverlapping: resumable search reporting every match, driven by an
//     OverlappingState the caller owns
//   - StreamChunkIter: incremental search over an io.Reader that splits the
//     stream into matched and unmatched chunks
//   - FindIter, FindOverlappingIter, ReplaceAll*: thin adapters on top
//
// The set of backends is closed. Automaton embeds an unexported seal, so only
// nfa/noncontiguous, nfa/contiguous and dfa in this module implement it.
//
// Example:
//
//	nfa, _ := noncontiguous.New([]string{"apple", "maple"})
//	m, ok, err := automaton.Find(nfa, automaton.NewInputString("Snapple"))
//	// ok == true, m.Start() == 2, m.End() == 7
//
// Everything in this package is synchronous and allocation-light. An
// Automaton is immutable once built and may be shared between goroutines;
// each goroutine drives its own OverlappingState or stream iterator.
package automaton

import (
	"fmt"
	"iter"
	"strings"

	"github.com/coregx/acmatch/internal/seal"
)

// Automaton is the capability contract of an Aho-Corasick automaton.
//
// StartState and NextState always return a valid StateID or an explicit
// error. Every other method is only defined for valid StateIDs obtained from
// the same automaton; given anything else the result is unspecified (it may
// panic with an index error) but never memory-unsafe, as IDs are plain
// indices.
type Automaton interface {
	seal.Sealed

	// StartState returns the start state for the given anchor mode, or an
	// error matching ErrUnsupportedAnchored / ErrUnsupportedUnanchored when
	// the automaton was built without that start state.
	StartState(anchored Anchored) (StateID, error)

	// NextState returns the state reached from sid on byte b. It is total
	// over all bytes. For anchored searches a failed transition leads to the
	// dead state instead of following failure links.
	NextState(anchored Anchored, sid StateID, b byte) StateID

	// IsSpecial reports whether sid is a dead, match or (only when a
	// prefilter is present) start state. Search loops check it once per byte
	// and only then ask the finer-grained predicates.
	IsSpecial(sid StateID) bool

	// IsDead reports whether sid is the dead state. The dead state is a sink.
	IsDead(sid StateID) bool

	// IsMatch reports whether sid is a match state.
	IsMatch(sid StateID) bool

	// IsStart reports whether sid is the anchored or unanchored start state.
	IsStart(sid StateID) bool

	// MatchKind returns the match semantics fixed at construction.
	MatchKind() MatchKind

	// MatchLen returns the number of patterns that match in sid. Defined only
	// for match states.
	MatchLen(sid StateID) int

	// MatchPattern returns the index'th pattern matching in sid. Defined only
	// for match states and index < MatchLen(sid).
	MatchPattern(sid StateID, index int) PatternID

	// PatternsLen returns the number of patterns compiled.
	PatternsLen() int

	// PatternLen returns the length in bytes of pattern pid.
	PatternLen(pid PatternID) int

	// MinPatternLen returns the length of the shortest pattern, or 0 when
	// there are no patterns.
	MinPatternLen() int

	// MaxPatternLen returns the length of the longest pattern.
	MaxPatternLen() int

	// MemoryUsage returns the approximate heap usage in bytes, including
	// the prefilter.
	MemoryUsage() int

	// Prefilter returns the prefilter, or nil when none was built.
	Prefilter() Prefilter
}

// matchAt builds the match for the index'th pattern of match state sid,
// given that sid was entered after consuming the byte before offset at.
func matchAt(aut Automaton, sid StateID, index, at int) Match {
	pid := aut.MatchPattern(sid, index)
	return NewMatch(pid, at-aut.PatternLen(pid), at)
}

// StateIndicator returns the two-character marker backends use when
// rendering a state in debug output: "D " for dead, "*>" for a start state
// that matches, "* " for a match state, " >" for a start state.
func StateIndicator(aut Automaton, sid StateID) string {
	switch {
	case aut.IsDead(sid):
		return "D "
	case aut.IsMatch(sid) && aut.IsStart(sid):
		return "*>"
	case aut.IsMatch(sid):
		return "* "
	case aut.IsStart(sid):
		return " >"
	default:
		return "  "
	}
}

// DebugByte renders b the way debug dumps of transitions show it: printable
// ASCII as itself, everything else as a \x escape.
func DebugByte(b byte) string {
	if b == ' ' {
		return "' '"
	}
	if b > ' ' && b < 0x7F && b != '\\' {
		return string(rune(b))
	}
	return fmt.Sprintf(`\x%02X`, b)
}

// FormatTransitions renders transitions as a comma separated list, merging
// runs of consecutive bytes that lead to the same state into ranges:
// "a => 4, c-f => 5". Bytes must arrive in ascending order.
func FormatTransitions(trans iter.Seq2[byte, StateID]) string {
	var (
		sb         strings.Builder
		start, end byte
		next       StateID
		open       bool
	)
	flush := func() {
		if sb.Len() > 0 {
			sb.WriteString(", ")
		}
		if start == end {
			fmt.Fprintf(&sb, "%s => %d", DebugByte(start), next)
		} else {
			fmt.Fprintf(&sb, "%s-%s => %d", DebugByte(start), DebugByte(end), next)
		}
	}
	for b, sid := range trans {
		if open && sid == next && int(b) == int(end)+1 {
			end = b
			continue
		}
		if open {
			flush()
		}
		start, end, next, open = b, b, sid, true
	}
	if open {
		flush()
	}
	return sb.String()
}
