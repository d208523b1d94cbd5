package automaton

// OverlappingState carries an overlapping search across calls to
// FindOverlapping.
//
// A state belongs to one logical search: create it with
// NewOverlappingState, pass the same pointer to every call over the same
// Input, and read the result of each call with Match. Resetting or sharing a
// state in the middle of a search produces unspecified (but memory-safe)
// results.
type OverlappingState struct {
	mat      Match
	hasMatch bool

	// id is the state the walk stopped in. hasID is false until the first
	// call resolves a start state, since which start state applies depends
	// on the Input.
	id    StateID
	hasID bool

	// at is the offset of the next byte to consume.
	at int

	// next is the index of the next pattern to report from match state id.
	// It may equal MatchLen(id), in which case the walk advances first.
	next    int
	hasNext bool
}

// NewOverlappingState returns a state positioned at the start of a search.
func NewOverlappingState() *OverlappingState {
	return &OverlappingState{}
}

// Match returns the match reported by the most recent FindOverlapping call,
// or false if that call found none.
func (s *OverlappingState) Match() (Match, bool) {
	return s.mat, s.hasMatch
}

func (s *OverlappingState) report(m Match) {
	s.mat, s.hasMatch = m, true
}

// FindOverlapping reports the next match of an overlapping search. The
// match, if any, is read back with state.Match().
//
// Every pattern ending at a position is reported before the walk moves on,
// one per call, in the order MatchPattern lists them. The walk itself is
// driven by the automaton's transitions without any leftmost resolution, so
// callers should only use it with MatchKindStandard automata;
// NewFindOverlappingIter enforces that.
func FindOverlapping(aut Automaton, input Input, state *OverlappingState) error {
	state.hasMatch = false
	if input.IsDone() {
		return nil
	}
	var pre Prefilter
	if !input.Anchored().IsAnchored() {
		pre = aut.Prefilter()
	}
	return findOverlappingFwd(aut, &input, pre, state)
}

func findOverlappingFwd(aut Automaton, input *Input, pre Prefilter, state *OverlappingState) error {
	anchored := input.Anchored()
	if !state.hasID {
		sid, err := aut.StartState(anchored)
		if err != nil {
			return err
		}
		// The empty pattern matches before any byte is consumed.
		if aut.IsMatch(sid) {
			i := 0
			if state.hasNext {
				i = state.next
			}
			if i < aut.MatchLen(sid) {
				state.next, state.hasNext = i+1, true
				state.report(matchAt(aut, sid, i, input.Start()))
				return nil
			}
		}
		state.at = input.Start()
		state.id, state.hasID = sid, true
		state.hasNext = false
	} else if state.hasNext {
		if state.next < aut.MatchLen(state.id) {
			state.report(matchAt(aut, state.id, state.next, state.at+1))
			state.next++
			return nil
		}
		state.at++
		state.hasNext = false
	}

	sid := state.id
	haystack := input.Haystack()
	end := input.End()
	for state.at < end {
		sid = aut.NextState(anchored, sid, haystack[state.at])
		if aut.IsSpecial(sid) {
			state.id = sid
			switch {
			case aut.IsDead(sid):
				return nil
			case aut.IsMatch(sid):
				state.next, state.hasNext = 1, true
				state.report(matchAt(aut, sid, 0, state.at+1))
				return nil
			case pre != nil:
				i, ok := pre.FindIn(haystack, Span{Start: state.at, End: end}).Position()
				if !ok {
					return nil
				}
				if i > state.at {
					state.at = i
					continue
				}
			}
		}
		state.at++
	}
	state.id = sid
	return nil
}
