package automaton

import (
	"fmt"
	"math"
)

// StateID is an opaque handle to a state of one automaton.
//
// A StateID is only meaningful for the automaton that produced it, either
// through StartState or NextState. Backends encode it however they like
// (an index, a premultiplied row offset, an offset into a packed slice), so
// StateIDs must never be compared across automata or ordered by callers.
type StateID uint32

// PatternID identifies a pattern by its position in the compiled pattern
// set. A PatternID is valid iff it is less than PatternsLen().
type PatternID uint32

const (
	// MaxStateID is the largest state ID any backend may allocate.
	MaxStateID = StateID(math.MaxInt32 - 1)

	// MaxPatternID is the largest pattern ID a pattern set may use.
	MaxPatternID = PatternID(math.MaxInt32 - 1)

	// MaxPatternLen is the length of the longest pattern a backend accepts.
	MaxPatternLen = math.MaxInt32 - 1
)

// Span is a half-open range [Start, End) of haystack offsets.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.Start >= s.End
}

// Contains reports whether offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return s.Start <= offset && offset < s.End
}

// Offset returns the span shifted right by n bytes.
func (s Span) Offset(n int) Span {
	return Span{Start: s.Start + n, End: s.End + n}
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Match is a single pattern occurrence: the pattern that matched and the
// span of the haystack it matched. Start <= End always holds.
type Match struct {
	pattern PatternID
	span    Span
}

// NewMatch creates a match of pattern pid covering [start, end).
// It panics if start > end.
func NewMatch(pid PatternID, start, end int) Match {
	if start > end {
		panic(fmt.Sprintf("automaton: invalid match span %d..%d", start, end))
	}
	return Match{pattern: pid, span: Span{Start: start, End: end}}
}

// Pattern returns the ID of the pattern that matched.
func (m Match) Pattern() PatternID { return m.pattern }

// Start returns the starting offset of the match.
func (m Match) Start() int { return m.span.Start }

// End returns the ending offset (exclusive) of the match.
func (m Match) End() int { return m.span.End }

// Span returns the matched range.
func (m Match) Span() Span { return m.span }

// Len returns the length of the match in bytes.
func (m Match) Len() int { return m.span.End - m.span.Start }

// IsEmpty reports whether the match has zero length. Empty matches occur
// only when the pattern set contains the empty pattern.
func (m Match) IsEmpty() bool { return m.span.Start == m.span.End }

// Offset returns the match shifted right by n bytes.
func (m Match) Offset(n int) Match {
	return Match{pattern: m.pattern, span: m.span.Offset(n)}
}

func (m Match) String() string {
	return fmt.Sprintf("Match(pattern=%d, span=%s)", m.pattern, m.span)
}

// MatchKind selects which pattern wins when several could match.
//
// The kind is fixed when an automaton is built. Search routines read it but
// never change it; the leftmost policies are resolved during construction by
// deciding which states match which patterns.
type MatchKind uint8

const (
	// MatchKindStandard reports the first match state entered while scanning
	// left to right. It is the only kind that supports overlapping and
	// streaming search.
	MatchKindStandard MatchKind = iota

	// MatchKindLeftmostFirst reports the leftmost match, preferring the
	// pattern that was added first when several start at the same offset.
	MatchKindLeftmostFirst

	// MatchKindLeftmostLongest reports the leftmost match, preferring the
	// longest pattern when several start at the same offset.
	MatchKindLeftmostLongest
)

// IsStandard reports whether k is MatchKindStandard.
func (k MatchKind) IsStandard() bool { return k == MatchKindStandard }

// IsLeftmost reports whether k is one of the leftmost kinds.
func (k MatchKind) IsLeftmost() bool {
	return k == MatchKindLeftmostFirst || k == MatchKindLeftmostLongest
}

// IsLeftmostFirst reports whether k is MatchKindLeftmostFirst.
func (k MatchKind) IsLeftmostFirst() bool { return k == MatchKindLeftmostFirst }

// String returns a human-readable name of the match kind.
func (k MatchKind) String() string {
	switch k {
	case MatchKindStandard:
		return "Standard"
	case MatchKindLeftmostFirst:
		return "LeftmostFirst"
	case MatchKindLeftmostLongest:
		return "LeftmostLongest"
	default:
		return fmt.Sprintf("MatchKind(%d)", uint8(k))
	}
}

// Anchored selects the start state of a search.
type Anchored uint8

const (
	// AnchoredNo lets a match begin anywhere in the span.
	AnchoredNo Anchored = iota

	// AnchoredYes requires a match to begin exactly at the span start.
	AnchoredYes
)

// IsAnchored reports whether a is AnchoredYes.
func (a Anchored) IsAnchored() bool { return a == AnchoredYes }

func (a Anchored) String() string {
	if a == AnchoredYes {
		return "Yes"
	}
	return "No"
}

// StartKind records which start states a backend was built with.
type StartKind uint8

const (
	// StartKindUnanchored builds only the unanchored start state.
	StartKindUnanchored StartKind = iota

	// StartKindAnchored builds only the anchored start state.
	StartKindAnchored

	// StartKindBoth builds both start states.
	StartKindBoth
)

func (k StartKind) String() string {
	switch k {
	case StartKindUnanchored:
		return "Unanchored"
	case StartKindAnchored:
		return "Anchored"
	case StartKindBoth:
		return "Both"
	default:
		return fmt.Sprintf("StartKind(%d)", uint8(k))
	}
}

// Input describes one search: the haystack, the span of it to search, the
// anchor mode and whether the search may stop at the first match state.
//
// An Input borrows its haystack for the duration of a single search call;
// the haystack must not be mutated while a search is running.
type Input struct {
	haystack []byte
	span     Span
	anchored Anchored
	earliest bool
}

// NewInput creates an unanchored, non-earliest Input covering the whole
// haystack.
func NewInput(haystack []byte) Input {
	return Input{haystack: haystack, span: Span{Start: 0, End: len(haystack)}}
}

// NewInputString is NewInput for string haystacks.
func NewInputString(haystack string) Input {
	return NewInput([]byte(haystack))
}

// WithSpan returns a copy of in searching only [start, end).
// It panics if the range does not fit the haystack.
func (in Input) WithSpan(start, end int) Input {
	in.SetSpan(start, end)
	return in
}

// WithAnchored returns a copy of in using anchor mode a.
func (in Input) WithAnchored(a Anchored) Input {
	in.anchored = a
	return in
}

// WithEarliest returns a copy of in that stops at the first match state
// regardless of match kind.
func (in Input) WithEarliest(yes bool) Input {
	in.earliest = yes
	return in
}

// SetSpan sets the searched range to [start, end).
//
// start may exceed end by exactly one, which marks the input as done (see
// IsDone). It panics for any other out-of-range value.
func (in *Input) SetSpan(start, end int) {
	if start < 0 || end > len(in.haystack) || start > end+1 {
		panic(fmt.Sprintf("automaton: invalid span %d..%d for haystack of length %d",
			start, end, len(in.haystack)))
	}
	in.span = Span{Start: start, End: end}
}

// SetStart moves the start of the searched range.
func (in *Input) SetStart(start int) {
	in.SetSpan(start, in.span.End)
}

// SetEnd moves the end of the searched range.
func (in *Input) SetEnd(end int) {
	in.SetSpan(in.span.Start, end)
}

// SetAnchored sets the anchor mode.
func (in *Input) SetAnchored(a Anchored) { in.anchored = a }

// SetEarliest sets the earliest flag.
func (in *Input) SetEarliest(yes bool) { in.earliest = yes }

// Haystack returns the full haystack, not just the searched span.
func (in Input) Haystack() []byte { return in.haystack }

// Start returns the first offset searched.
func (in Input) Start() int { return in.span.Start }

// End returns the offset one past the last byte searched.
func (in Input) End() int { return in.span.End }

// Span returns the searched range.
func (in Input) Span() Span { return in.span }

// Anchored returns the anchor mode.
func (in Input) Anchored() Anchored { return in.anchored }

// Earliest reports whether the search may stop at the first match state.
func (in Input) Earliest() bool { return in.earliest }

// IsDone reports whether the span has been advanced past its end. An empty
// span is not done: the empty pattern can still match there.
func (in Input) IsDone() bool { return in.span.Start > in.span.End }
