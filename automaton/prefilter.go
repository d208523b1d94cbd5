package automaton

// Prefilter finds candidate match positions faster than walking an
// automaton byte by byte.
//
// Search routines consult a prefilter only for unanchored searches, once
// before the walk starts and again whenever the walk falls back into a start
// state. A prefilter must never skip over the start of a real match: every
// candidate it reports is at or before the leftmost possible match start in
// the span, and a "none" answer means no match exists in the span at all.
type Prefilter interface {
	// FindIn searches haystack[span.Start:span.End]. Reported offsets are
	// relative to the whole haystack.
	FindIn(haystack []byte, span Span) Candidate

	// MemoryUsage returns the heap bytes used by the prefilter.
	MemoryUsage() int
}

// CandidateKind classifies a prefilter result.
type CandidateKind uint8

const (
	// CandidateNone means no match can occur in the searched span.
	CandidateNone CandidateKind = iota

	// CandidateMatch means the prefilter confirmed a match itself.
	CandidateMatch

	// CandidatePossibleStart means a match may start at the reported offset
	// and the automaton must confirm it.
	CandidatePossibleStart
)

// Candidate is the result of a prefilter scan.
type Candidate struct {
	kind  CandidateKind
	match Match
	start int
}

// NoCandidate returns a Candidate reporting that no match is possible.
func NoCandidate() Candidate {
	return Candidate{kind: CandidateNone}
}

// MatchCandidate returns a Candidate reporting a confirmed match.
func MatchCandidate(m Match) Candidate {
	return Candidate{kind: CandidateMatch, match: m, start: m.Start()}
}

// PossibleStartCandidate returns a Candidate reporting that a match may
// start at offset at.
func PossibleStartCandidate(at int) Candidate {
	return Candidate{kind: CandidatePossibleStart, start: at}
}

// Kind returns the kind of the candidate.
func (c Candidate) Kind() CandidateKind { return c.kind }

// Match returns the confirmed match when Kind is CandidateMatch.
func (c Candidate) Match() (Match, bool) {
	return c.match, c.kind == CandidateMatch
}

// Position returns the offset at which the next match may start, or false
// when the candidate is CandidateNone.
func (c Candidate) Position() (int, bool) {
	if c.kind == CandidateNone {
		return 0, false
	}
	return c.start, true
}
