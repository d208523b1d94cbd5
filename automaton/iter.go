package automaton

import "iter"

// FindIter yields non-overlapping matches in order.
//
// Each search starts where the previous match ended. An empty match that
// ends where the previous match ended is never reported; the iterator bumps
// the start by one byte and searches again instead, so iteration always
// terminates.
type FindIter struct {
	aut          Automaton
	input        Input
	lastMatchEnd int
	hasLastMatch bool
	err          error
}

// NewFindIter returns an iterator over the non-overlapping matches of aut in
// input. It fails if aut has no start state for input's anchor mode.
func NewFindIter(aut Automaton, input Input) (*FindIter, error) {
	if _, err := aut.StartState(input.Anchored()); err != nil {
		return nil, err
	}
	return &FindIter{aut: aut, input: input}, nil
}

// Next returns the next match, or false when the haystack is exhausted.
func (it *FindIter) Next() (Match, bool) {
	if it.err != nil {
		return Match{}, false
	}
	m, ok := it.search()
	if !ok {
		return Match{}, false
	}
	if m.IsEmpty() && it.hasLastMatch && m.End() == it.lastMatchEnd {
		it.input.SetStart(it.input.Start() + 1)
		if m, ok = it.search(); !ok {
			return Match{}, false
		}
	}
	it.input.SetStart(m.End())
	it.lastMatchEnd, it.hasLastMatch = m.End(), true
	return m, true
}

// Err returns the error that stopped iteration, if any. Since the start
// state is checked by NewFindIter, it is nil for every backend in this
// module.
func (it *FindIter) Err() error { return it.err }

// All returns the remaining matches as a sequence.
func (it *FindIter) All() iter.Seq[Match] {
	return func(yield func(Match) bool) {
		for {
			m, ok := it.Next()
			if !ok || !yield(m) {
				return
			}
		}
	}
}

func (it *FindIter) search() (Match, bool) {
	m, ok, err := Find(it.aut, it.input)
	if err != nil {
		it.err = err
		return Match{}, false
	}
	return m, ok
}

// FindOverlappingIter yields every match, including matches that overlap.
type FindOverlappingIter struct {
	aut   Automaton
	input Input
	state *OverlappingState
	err   error
}

// NewFindOverlappingIter returns an iterator over all overlapping matches.
//
// Only MatchKindStandard automata support overlapping iteration, and the
// search must be unanchored.
func NewFindOverlappingIter(aut Automaton, input Input) (*FindOverlappingIter, error) {
	if kind := aut.MatchKind(); !kind.IsStandard() {
		return nil, unsupportedOverlapping(kind)
	}
	if input.Anchored().IsAnchored() {
		return nil, ErrInvalidAnchoredOverlapping
	}
	if _, err := aut.StartState(input.Anchored()); err != nil {
		return nil, err
	}
	return &FindOverlappingIter{aut: aut, input: input, state: NewOverlappingState()}, nil
}

// Next returns the next match, or false when the haystack is exhausted.
func (it *FindOverlappingIter) Next() (Match, bool) {
	if it.err != nil {
		return Match{}, false
	}
	if err := FindOverlapping(it.aut, it.input, it.state); err != nil {
		it.err = err
		return Match{}, false
	}
	return it.state.Match()
}

// Err returns the error that stopped iteration, if any.
func (it *FindOverlappingIter) Err() error { return it.err }

// All returns the remaining matches as a sequence.
func (it *FindOverlappingIter) All() iter.Seq[Match] {
	return func(yield func(Match) bool) {
		for {
			m, ok := it.Next()
			if !ok || !yield(m) {
				return
			}
		}
	}
}
