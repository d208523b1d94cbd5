package noncontiguous

import (
	"slices"

	"github.com/coregx/acmatch/automaton"
	"github.com/coregx/acmatch/internal/alphabet"
	"github.com/coregx/acmatch/internal/sparse"
	"github.com/coregx/acmatch/prefilter"
)

type builder struct {
	cfg     Config
	nfa     *NFA
	byteset alphabet.ByteClassSet
	pre     *prefilter.Builder
}

func newBuilder(cfg Config) *builder {
	b := &builder{
		cfg: cfg,
		nfa: &NFA{matchKind: cfg.MatchKind},
	}
	if cfg.Prefilter {
		b.pre = prefilter.NewBuilder(prefilter.Config{
			MatchKind:            cfg.MatchKind,
			ASCIICaseInsensitive: cfg.ASCIICaseInsensitive,
			Logger:               cfg.Logger,
		})
	}
	return b
}

func (b *builder) build(patterns [][]byte) (*NFA, error) {
	nfa := b.nfa
	// The dead and fail states come first. The start states are allocated
	// while the unanchored start ID is still 0, so their failure links
	// point at the dead state.
	for range 4 {
		if _, err := b.allocState(0); err != nil {
			return nil, err
		}
	}
	nfa.startUnanchored, nfa.startAnchored = 2, 3
	b.initFullState(Dead, Dead)
	b.initFullState(nfa.startUnanchored, Fail)
	b.initFullState(nfa.startAnchored, Fail)

	if err := b.buildTrie(patterns); err != nil {
		return nil, err
	}
	nfa.classes = b.byteset.ByteClasses()
	b.setAnchoredStartState()
	b.addUnanchoredStartStateLoop()
	b.densify()
	b.fillFailureTransitions()
	b.closeStartStateLoopForLeftmost()
	b.shuffle()

	nfa.maxSpecial = nfa.maxMatch
	if b.pre != nil {
		nfa.prefilter = b.pre.Build()
		if nfa.prefilter != nil {
			nfa.maxSpecial = nfa.startAnchored
		}
	}

	b.cfg.logger().Debug("noncontiguous NFA built",
		"patterns", len(nfa.patternLens),
		"states", len(nfa.states),
		"alphabet", nfa.classes.AlphabetLen(),
		"match_kind", nfa.matchKind,
		"prefilter", nfa.prefilter != nil,
		"memory", nfa.MemoryUsage())
	return nfa, nil
}

func (b *builder) allocState(depth int) (automaton.StateID, error) {
	nfa := b.nfa
	if len(nfa.states) > int(automaton.MaxStateID) {
		return 0, automaton.NewStateIDOverflow(uint64(len(nfa.states)))
	}
	id := automaton.StateID(len(nfa.states)) // #nosec G115 -- checked against MaxStateID
	nfa.states = append(nfa.states, state{
		fail:  nfa.startUnanchored,
		depth: uint32(depth), // #nosec G115 -- depth < MaxPatternLen
	})
	return id, nil
}

// initFullState gives sid a transition to next on every byte.
func (b *builder) initFullState(sid, next automaton.StateID) {
	trans := make([]Transition, 256)
	for i := range trans {
		trans[i] = Transition{Byte: byte(i), Next: next}
	}
	b.nfa.states[sid].sparse = trans
}

// addTransition adds or replaces the transition of prev on c.
func (b *builder) addTransition(prev automaton.StateID, c byte, next automaton.StateID) {
	st := &b.nfa.states[prev]
	if st.dense != nil {
		st.dense[b.nfa.classes.Get(c)] = next
	}
	i, found := slices.BinarySearchFunc(st.sparse, c, func(t Transition, c byte) int {
		return int(t.Byte) - int(c)
	})
	if found {
		st.sparse[i].Next = next
		return
	}
	st.sparse = slices.Insert(st.sparse, i, Transition{Byte: c, Next: next})
}

// buildTrie adds every pattern to the trie rooted at the unanchored start
// state.
func (b *builder) buildTrie(patterns [][]byte) error {
	nfa := b.nfa
	caseInsensitive := b.cfg.ASCIICaseInsensitive
	leftmostFirst := b.cfg.MatchKind.IsLeftmostFirst()
	nfa.minPatternLen = -1

patterns:
	for i, pat := range patterns {
		if i > int(automaton.MaxPatternID) {
			return automaton.NewPatternIDOverflow(uint64(i))
		}
		pid := automaton.PatternID(i) // #nosec G115 -- checked against MaxPatternID
		if len(pat) > automaton.MaxPatternLen {
			return automaton.NewPatternTooLong(pid, len(pat))
		}
		if nfa.minPatternLen < 0 || len(pat) < nfa.minPatternLen {
			nfa.minPatternLen = len(pat)
		}
		nfa.maxPatternLen = max(nfa.maxPatternLen, len(pat))
		nfa.patternLens = append(nfa.patternLens, len(pat))
		// Every pattern goes to the prefilter, even ones leftmost-first
		// semantics make unmatchable, so prefilter pattern IDs line up.
		if b.pre != nil {
			b.pre.Add(pat)
		}

		prev := nfa.startUnanchored
		sawMatch := false
		for depth, c := range pat {
			// Under leftmost-first semantics a pattern that has an earlier
			// pattern as a prefix can never match.
			sawMatch = sawMatch || nfa.isMatchState(prev)
			if leftmostFirst && sawMatch {
				continue patterns
			}

			b.byteset.SetByte(c)
			if caseInsensitive {
				b.byteset.SetByte(prefilter.OppositeASCIICase(c))
			}

			if next := nfa.follow(prev, c); next != Fail {
				prev = next
				continue
			}
			next, err := b.allocState(depth + 1)
			if err != nil {
				return err
			}
			b.addTransition(prev, c, next)
			if caseInsensitive {
				b.addTransition(prev, prefilter.OppositeASCIICase(c), next)
			}
			prev = next
		}
		nfa.states[prev].matches = append(nfa.states[prev].matches, pid)
	}
	if nfa.minPatternLen < 0 {
		nfa.minPatternLen = 0
	}
	return nil
}

// isMatchState reports whether sid has matches. It is used during
// construction, before shuffle makes IsMatch a range check.
func (n *NFA) isMatchState(sid automaton.StateID) bool {
	return len(n.states[sid].matches) > 0
}

// setAnchoredStartState copies the unanchored start state into the
// anchored one. The anchored start state never follows failure links.
func (b *builder) setAnchoredStartState() {
	nfa := b.nfa
	uid, aid := nfa.startUnanchored, nfa.startAnchored
	nfa.states[aid].sparse = slices.Clone(nfa.states[uid].sparse)
	nfa.states[aid].matches = slices.Clone(nfa.states[uid].matches)
	nfa.states[aid].fail = Dead
}

// addUnanchoredStartStateLoop makes every byte without a trie transition
// loop back to the unanchored start state.
func (b *builder) addUnanchoredStartStateLoop() {
	uid := b.nfa.startUnanchored
	trans := b.nfa.states[uid].sparse
	for i := range trans {
		if trans[i].Next == Fail {
			trans[i].Next = uid
		}
	}
}

// densify gives every state within the dense depth a row indexed by byte
// class.
func (b *builder) densify() {
	nfa := b.nfa
	alphabetLen := nfa.classes.AlphabetLen()
	for i := range nfa.states {
		sid := automaton.StateID(i) // #nosec G115 -- bounded by MaxStateID
		if sid == Dead || sid == Fail {
			continue
		}
		st := &nfa.states[i]
		if int(st.depth) > b.cfg.DenseDepth {
			continue
		}
		st.dense = make([]automaton.StateID, alphabetLen)
		for j := range st.dense {
			st.dense[j] = Fail
		}
		for _, t := range st.sparse {
			st.dense[nfa.classes.Get(t.Byte)] = t.Next
		}
	}
}

// queuedSet returns the set tracking states already queued during the
// breadth-first walk. Without case insensitivity the trie is a tree and
// nothing is reached twice, so the set stays empty and reports nothing.
func (b *builder) queuedSet() *queued {
	if !b.cfg.ASCIICaseInsensitive {
		return &queued{}
	}
	return &queued{set: sparse.New(len(b.nfa.states))}
}

type queued struct {
	set *sparse.Set
}

func (q *queued) insert(sid automaton.StateID) {
	if q.set != nil {
		q.set.Insert(uint32(sid))
	}
}

func (q *queued) contains(sid automaton.StateID) bool {
	return q.set != nil && q.set.Contains(uint32(sid))
}

// fillFailureTransitions computes failure links breadth first.
//
// The failure link of a state points at the state for the longest proper
// suffix of its path that is also a trie path. Match sets are inherited
// along failure links so a state reports every pattern ending there.
//
// Under leftmost semantics, match states fail to the dead state instead:
// once a match is seen, the search only continues to extend it, never to
// restart at a later position.
func (b *builder) fillFailureTransitions() {
	nfa := b.nfa
	leftmost := b.cfg.MatchKind.IsLeftmost()
	uid := nfa.startUnanchored
	seen := b.queuedSet()
	var queue []automaton.StateID

	for _, t := range nfa.states[uid].sparse {
		if t.Next == uid || seen.contains(t.Next) {
			continue
		}
		queue = append(queue, t.Next)
		seen.insert(t.Next)
		if leftmost && nfa.isMatchState(t.Next) {
			nfa.states[t.Next].fail = Dead
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, t := range nfa.states[id].sparse {
			if seen.contains(t.Next) {
				continue
			}
			queue = append(queue, t.Next)
			seen.insert(t.Next)
			if leftmost && nfa.isMatchState(t.Next) {
				nfa.states[t.Next].fail = Dead
				continue
			}
			fail := nfa.states[id].fail
			for nfa.follow(fail, t.Byte) == Fail {
				fail = nfa.states[fail].fail
			}
			fail = nfa.follow(fail, t.Byte)
			nfa.states[t.Next].fail = fail
			b.copyMatches(fail, t.Next)
		}
		// Every state also reports the empty pattern, if there is one.
		if !leftmost {
			b.copyMatches(uid, id)
		}
	}
}

func (b *builder) copyMatches(src, dst automaton.StateID) {
	if src == dst {
		return
	}
	states := b.nfa.states
	states[dst].matches = append(states[dst].matches, states[src].matches...)
}

// closeStartStateLoopForLeftmost turns the start state's self loop into a
// transition to the dead state when the start state matches, which only
// happens with an empty pattern. Under leftmost semantics the search then
// stops after the empty match instead of restarting at every position.
func (b *builder) closeStartStateLoopForLeftmost() {
	nfa := b.nfa
	uid := nfa.startUnanchored
	st := &nfa.states[uid]
	if !b.cfg.MatchKind.IsLeftmost() || !nfa.isMatchState(uid) {
		return
	}
	for i := range st.sparse {
		if st.sparse[i].Next != uid {
			continue
		}
		st.sparse[i].Next = Dead
		if st.dense != nil {
			st.dense[nfa.classes.Get(st.sparse[i].Byte)] = Dead
		}
	}
}

// shuffle renumbers states so that match states come right after the fail
// state, followed by the two start states.
func (b *builder) shuffle() {
	nfa := b.nfa
	oldUID, oldAID := nfa.startUnanchored, nfa.startAnchored

	// slots[new] = old
	slots := make([]automaton.StateID, len(nfa.states))
	for i := range slots {
		slots[i] = automaton.StateID(i) // #nosec G115 -- bounded by MaxStateID
	}
	// where[old] = new
	where := slices.Clone(slots)
	swap := func(a, c automaton.StateID) {
		if a == c {
			return
		}
		oa, oc := slots[a], slots[c]
		slots[a], slots[c] = oc, oa
		where[oa], where[oc] = c, a
	}

	next := automaton.StateID(4)
	for i := 4; i < len(slots); i++ {
		if !nfa.isMatchState(slots[i]) {
			continue
		}
		swap(automaton.StateID(i), next) // #nosec G115 -- bounded by MaxStateID
		next++
	}
	newAID := next - 1
	swap(where[oldAID], newAID)
	newUID := next - 2
	swap(where[oldUID], newUID)

	nfa.maxMatch = next - 3
	nfa.startUnanchored = newUID
	nfa.startAnchored = newAID
	if nfa.isMatchState(oldAID) {
		nfa.maxMatch = newAID
	}

	states := make([]state, len(nfa.states))
	for newID, oldID := range slots {
		st := nfa.states[oldID]
		st.fail = where[st.fail]
		for i := range st.sparse {
			st.sparse[i].Next = where[st.sparse[i].Next]
		}
		for i := range st.dense {
			st.dense[i] = where[st.dense[i]]
		}
		states[newID] = st
	}
	nfa.states = states
}
