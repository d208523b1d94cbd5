package automaton

// Find runs a forward search and returns the match selected by the
// automaton's MatchKind.
//
// For MatchKindStandard (or when input.Earliest() is set) the search stops
// at the first match state it enters. For the leftmost kinds the walk keeps
// going until the dead state or the end of the span, each match state
// overwriting the previous one; the automaton has already encoded the
// leftmost policy in which states match which patterns, so the last
// recorded match is the answer.
//
// The only error is a start state the automaton was not built with.
func Find(aut Automaton, input Input) (Match, bool, error) {
	if input.IsDone() {
		return Match{}, false, nil
	}
	earliest := aut.MatchKind().IsStandard() || input.Earliest()
	if input.Anchored().IsAnchored() {
		return findFwd(aut, &input, nil, AnchoredYes, earliest)
	}
	return findFwd(aut, &input, aut.Prefilter(), AnchoredNo, earliest)
}

func findFwd(
	aut Automaton,
	input *Input,
	pre Prefilter,
	anchored Anchored,
	earliest bool,
) (Match, bool, error) {
	sid, err := aut.StartState(anchored)
	if err != nil {
		return Match{}, false, err
	}
	at := input.Start()
	var (
		mat      Match
		hasMatch bool
	)
	if aut.IsMatch(sid) {
		mat, hasMatch = matchAt(aut, sid, 0, at), true
		if earliest {
			return mat, true, nil
		}
	}
	if pre != nil {
		cand := pre.FindIn(input.Haystack(), input.Span())
		switch cand.Kind() {
		case CandidateNone:
			return Match{}, false, nil
		case CandidateMatch:
			m, _ := cand.Match()
			return m, true, nil
		case CandidatePossibleStart:
			at, _ = cand.Position()
		}
	}

	haystack := input.Haystack()
	end := input.End()
	for at < end {
		sid = aut.NextState(anchored, sid, haystack[at])
		if aut.IsSpecial(sid) {
			switch {
			case aut.IsDead(sid):
				return mat, hasMatch, nil
			case aut.IsMatch(sid):
				m := matchAt(aut, sid, 0, at+1)
				// Shared failure structure can surface a pattern that began
				// after the anchor point; such a match is not anchored.
				if !(anchored.IsAnchored() && m.Start() > input.Start()) {
					mat, hasMatch = m, true
					if earliest {
						return mat, true, nil
					}
				}
			case pre != nil:
				// Back in a start state: no match is in progress, so the
				// prefilter may skip ahead.
				i, ok := pre.FindIn(haystack, Span{Start: at, End: end}).Position()
				if !ok {
					return mat, hasMatch, nil
				}
				if i > at {
					at = i
					continue
				}
			}
		}
		at++
	}
	return mat, hasMatch, nil
}
