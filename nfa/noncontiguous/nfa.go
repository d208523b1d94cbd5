// Package noncontiguous implements the noncontiguous NFA, the Aho-Corasick
// automaton every other backend is built from.
//
// The NFA is a trie of all patterns plus a failure link per state. States
// close to the start state carry a dense transition row indexed by byte
// class; deeper states only keep a sorted list of their trie transitions
// and defer every other byte to their failure link. This keeps memory low
// for large pattern sets at the cost of a failure-link walk per missing
// transition.
//
// State layout after construction:
//
//	0            dead state (every byte loops back to it)
//	1            fail sentinel (never a search state)
//	2..max_match match states
//	max_match+1  unanchored start state
//	max_match+2  anchored start state
//	...          all other states
//
// so that "is this a match state" is a single comparison.
package noncontiguous

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
	// Dead is the dead state. Every transition out of it leads back to it.
	Dead automaton.StateID = 0

	// Fail is the sentinel returned by a missing transition. It tells the
	// search to follow the current state's failure link.
	Fail automaton.StateID = 1
)

// Transition is one trie edge.
type Transition struct {
	Byte byte
	Next automaton.StateID
}

type state struct {
	// sparse holds the trie transitions sorted by byte.
	sparse []Transition
	// dense is nil unless the state is within the dense depth. It
	// is indexed by byte class and holds Fail where sparse has no entry.
	dense   []automaton.StateID
	matches []automaton.PatternID
	fail    automaton.StateID
	depth   uint32
}

// NFA is a noncontiguous Aho-Corasick NFA. It implements
// automaton.Automaton and is immutable and safe for concurrent use once
// built.
type NFA struct {
	seal.Backend

	states      []state
	classes     alphabet.ByteClasses
	patternLens []int
	matchKind   automaton.MatchKind
	prefilter   automaton.Prefilter

	minPatternLen int
	maxPatternLen int

	startUnanchored automaton.StateID
	startAnchored   automaton.StateID
	maxMatch        automaton.StateID
	maxSpecial      automaton.StateID
}

// New builds an NFA for patterns with DefaultConfig.
func New(patterns []string) (*NFA, error) {
	return NewWithConfig(DefaultConfig(), toBytes(patterns))
}

// NewWithConfig builds an NFA for patterns. Pattern i gets PatternID i.
func NewWithConfig(cfg Config, patterns [][]byte) (*NFA, error) {
	return newBuilder(cfg).build(patterns)
}

func toBytes(patterns []string) [][]byte {
	out := make([][]byte, len(patterns))
	for i, p := range patterns {
		out[i] = []byte(p)
	}
	return out
}

// follow returns the transition of sid on b, or Fail.
func (n *NFA) follow(sid automaton.StateID, b byte) automaton.StateID {
	st := &n.states[sid]
	if st.dense != nil {
		return st.dense[n.classes.Get(b)]
	}
	for _, t := range st.sparse {
		if t.Byte >= b {
			if t.Byte == b {
				return t.Next
			}
			break
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
	for {
		next := n.follow(sid, b)
		if next != Fail {
			return next
		}
		if anchored.IsAnchored() {
			return Dead
		}
		sid = n.states[sid].fail
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
func (n *NFA) MatchLen(sid automaton.StateID) int { return len(n.states[sid].matches) }

// MatchPattern implements automaton.Automaton.
func (n *NFA) MatchPattern(sid automaton.StateID, index int) automaton.PatternID {
	return n.states[sid].matches[index]
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
	size := len(n.states)*int(unsafe.Sizeof(state{})) +
		len(n.patternLens)*int(unsafe.Sizeof(int(0)))
	for i := range n.states {
		st := &n.states[i]
		size += len(st.sparse)*int(unsafe.Sizeof(Transition{})) +
			len(st.dense)*int(unsafe.Sizeof(automaton.StateID(0))) +
			len(st.matches)*int(unsafe.Sizeof(automaton.PatternID(0)))
	}
	if n.prefilter != nil {
		size += n.prefilter.MemoryUsage()
	}
	return size
}

// Prefilter implements automaton.Automaton.
func (n *NFA) Prefilter() automaton.Prefilter { return n.prefilter }

// Len returns the number of states, including the dead and fail states.
func (n *NFA) Len() int { return len(n.states) }

// Transitions returns the trie transitions of sid in ascending byte order.
// The returned slice must not be modified.
func (n *NFA) Transitions(sid automaton.StateID) []Transition {
	return n.states[sid].sparse
}

// Fail returns the failure link of sid.
func (n *NFA) Fail(sid automaton.StateID) automaton.StateID { return n.states[sid].fail }

// Depth returns the distance of sid from the start state in the trie.
func (n *NFA) Depth(sid automaton.StateID) int { return int(n.states[sid].depth) }

// Matches returns the patterns matching in sid. The returned slice must not
// be modified.
func (n *NFA) Matches(sid automaton.StateID) []automaton.PatternID {
	return n.states[sid].matches
}

// ByteClasses returns the byte classes induced by the pattern bytes.
func (n *NFA) ByteClasses() alphabet.ByteClasses { return n.classes }

// MaxMatchID returns the largest match state ID. Every match state has an
// ID in [2, MaxMatchID()].
func (n *NFA) MaxMatchID() automaton.StateID { return n.maxMatch }

// States returns every state ID in ascending order.
func (n *NFA) States() iter.Seq[automaton.StateID] {
	return func(yield func(automaton.StateID) bool) {
		for i := range n.states {
			if !yield(automaton.StateID(i)) { // #nosec G115 -- bounded by MaxStateID at build time
				return
			}
		}
	}
}

func (n *NFA) transitionSeq(sid automaton.StateID) iter.Seq2[byte, automaton.StateID] {
	return func(yield func(byte, automaton.StateID) bool) {
		for _, t := range n.states[sid].sparse {
			if !yield(t.Byte, t.Next) {
				return
			}
		}
	}
}

// String renders every state with its failure link, transitions and
// matches, followed by a summary.
func (n *NFA) String() string {
	var sb strings.Builder
	sb.WriteString("noncontiguous.NFA(\n")
	for sid := range n.States() {
		if sid == Fail {
			fmt.Fprintf(&sb, "F %06d:\n", sid)
			continue
		}
		fmt.Fprintf(&sb, "%s%06d(%06d): %s\n",
			automaton.StateIndicator(n, sid), sid, n.states[sid].fail,
			automaton.FormatTransitions(n.transitionSeq(sid)))
		if n.IsMatch(sid) {
			fmt.Fprintf(&sb, "         matches: %s\n", formatPatterns(n.states[sid].matches))
		}
	}
	fmt.Fprintf(&sb, "match kind: %s\n", n.matchKind)
	fmt.Fprintf(&sb, "prefilter: %t\n", n.prefilter != nil)
	fmt.Fprintf(&sb, "state length: %d\n", len(n.states))
	fmt.Fprintf(&sb, "pattern length: %d\n", len(n.patternLens))
	fmt.Fprintf(&sb, "shortest pattern length: %d\n", n.minPatternLen)
	fmt.Fprintf(&sb, "longest pattern length: %d\n", n.maxPatternLen)
	fmt.Fprintf(&sb, "memory usage: %d\n", n.MemoryUsage())
	sb.WriteString(")\n")
	return sb.String()
}

func formatPatterns(pids []automaton.PatternID) string {
	parts := make([]string, len(pids))
	for i, pid := range pids {
		parts[i] = fmt.Sprint(pid)
	}
	return strings.Join(parts, ", ")
}
