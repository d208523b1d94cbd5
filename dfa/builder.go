package dfa

import (
	"slices"
	"unsafe"

	"github.com/coregx/acmatch/automaton"
	"github.com/coregx/acmatch/internal/alphabet"
	"github.com/coregx/acmatch/nfa/noncontiguous"
)

// New builds a DFA for patterns with DefaultConfig.
func New(patterns []string) (*DFA, error) {
	bs := make([][]byte, len(patterns))
	for i, p := range patterns {
		bs[i] = []byte(p)
	}
	return NewWithConfig(DefaultConfig(), bs)
}

// NewWithConfig builds a DFA for patterns. Pattern i gets PatternID i.
func NewWithConfig(cfg Config, patterns [][]byte) (*DFA, error) {
	nnfa, err := noncontiguous.NewWithConfig(cfg.noncontiguous(), patterns)
	if err != nil {
		return nil, err
	}
	return FromNoncontiguous(cfg, nnfa)
}

// FromNoncontiguous builds a DFA from nnfa. Only the StartKind, ByteClasses
// and Logger settings of cfg apply; everything else comes from nnfa,
// including its prefilter.
//
// It fails with a StateIDOverflow error if the premultiplied state IDs do
// not fit automaton.MaxStateID.
func FromNoncontiguous(cfg Config, nnfa *noncontiguous.NFA) (*DFA, error) {
	classes := nnfa.ByteClasses()
	if !cfg.ByteClasses {
		classes = alphabet.Singletons()
	}
	stateLen := nnfa.Len()
	if cfg.StartKind == automaton.StartKindBoth {
		// The anchored half reuses the dead, fail and start states.
		stateLen = 2*nnfa.Len() - 4
	}
	stride2 := classes.Stride2()
	stride := 1 << stride2
	if stateLen > (int(automaton.MaxStateID)+stride)>>stride2 {
		return nil, automaton.NewStateIDOverflow(uint64(stateLen) << stride2)
	}

	numMatchStates := int(nnfa.MaxMatchID()) - 1
	if cfg.StartKind == automaton.StartKindBoth {
		numMatchStates *= 2
	}
	d := &DFA{
		trans:         make([]automaton.StateID, stateLen<<stride2),
		matches:       make([][]automaton.PatternID, numMatchStates),
		patternLens:   make([]int, nnfa.PatternsLen()),
		prefilter:     nnfa.Prefilter(),
		matchKind:     nnfa.MatchKind(),
		startKind:     cfg.StartKind,
		stateLen:      stateLen,
		alphabetLen:   classes.AlphabetLen(),
		stride2:       stride2,
		classes:       classes,
		minPatternLen: nnfa.MinPatternLen(),
		maxPatternLen: nnfa.MaxPatternLen(),
	}
	for i := range d.patternLens {
		d.patternLens[i] = nnfa.PatternLen(automaton.PatternID(i)) // #nosec G115 -- bounded by MaxPatternID
	}

	switch cfg.StartKind {
	case automaton.StartKindBoth:
		d.buildBothStarts(nnfa)
	case automaton.StartKindAnchored:
		d.buildOneStart(automaton.AnchoredYes, nnfa)
	default:
		d.buildOneStart(automaton.AnchoredNo, nnfa)
	}
	d.trans = slices.Clip(d.trans)

	cfg.logger().Debug("DFA built",
		"states", d.stateLen,
		"start_kind", d.startKind,
		"alphabet", d.alphabetLen,
		"stride", stride,
		"memory", d.MemoryUsage())
	return d, nil
}

func (d *DFA) setMatches(sid automaton.StateID, pids []automaton.PatternID) {
	i := d.matchIndex(sid)
	d.matches[i] = append(d.matches[i], pids...)
	d.matchesMemory += len(pids) * int(unsafe.Sizeof(automaton.PatternID(0)))
}

// buildOneStart fills the table for a DFA with a single start state. The
// table mirrors the NFA state for state, with every Fail transition
// resolved through the failure links (or to the dead state when anchored).
func (d *DFA) buildOneStart(anchored automaton.Anchored, nnfa *noncontiguous.NFA) {
	toDFA := func(sid automaton.StateID) automaton.StateID {
		return sid << d.stride2
	}
	for oldID := range nnfa.States() {
		newID := toDFA(oldID)
		if matches := nnfa.Matches(oldID); len(matches) > 0 {
			d.setMatches(newID, matches)
		}
		fail := nnfa.Fail(oldID)
		eachClass(nnfa, oldID, &d.classes, func(b, class byte, next automaton.StateID) {
			if next == noncontiguous.Fail {
				switch {
				case anchored.IsAnchored(), fail == noncontiguous.Dead:
					next = noncontiguous.Dead
				default:
					next = nnfa.NextState(automaton.AnchoredNo, fail, b)
				}
			}
			d.trans[int(newID)+int(class)] = toDFA(next)
		})
	}

	uid, _ := nnfa.StartState(automaton.AnchoredNo)
	aid, _ := nnfa.StartState(automaton.AnchoredYes)
	d.maxMatch = toDFA(nnfa.MaxMatchID())
	d.maxSpecial = d.maxMatch
	if nnfa.IsSpecial(aid) {
		d.maxSpecial = max(d.maxSpecial, toDFA(aid))
	}
	if anchored.IsAnchored() {
		d.startAnchored = toDFA(aid)
	} else {
		d.startUnanchored = toDFA(uid)
	}
}

// buildBothStarts fills the table for a DFA with both start states. Every
// state other than the dead, fail and start states gets two rows: an
// unanchored one that resolves failure transitions and an anchored one that
// sends them to the dead state. The rows of a pair are adjacent, so the
// match states stay in one contiguous range.
//
// Rows are first written with NFA targets and then remapped into the half
// of the table the row belongs to.
func (d *DFA) buildBothStarts(nnfa *noncontiguous.NFA) {
	stride := automaton.StateID(1) << d.stride2
	uid, _ := nnfa.StartState(automaton.AnchoredNo)
	aid, _ := nnfa.StartState(automaton.AnchoredYes)

	remapUnanchored := make([]automaton.StateID, nnfa.Len())
	remapAnchored := make([]automaton.StateID, nnfa.Len())
	isAnchored := make([]bool, d.stateLen)
	newID := Dead
	for oldID := range nnfa.States() {
		switch oldID {
		case noncontiguous.Dead, noncontiguous.Fail:
			remapUnanchored[oldID] = newID
			remapAnchored[oldID] = newID
			newID += stride
		case uid, aid:
			if oldID == uid {
				remapUnanchored[oldID] = newID
			} else {
				remapAnchored[oldID] = newID
				isAnchored[int(newID)>>d.stride2] = true
			}
			if matches := nnfa.Matches(oldID); len(matches) > 0 {
				d.setMatches(newID, matches)
			}
			row := int(newID)
			eachClass(nnfa, oldID, &d.classes, func(_, class byte, next automaton.StateID) {
				if next == noncontiguous.Fail {
					next = noncontiguous.Dead
				}
				d.trans[row+int(class)] = next
			})
			newID += stride
		default:
			unewID, anewID := newID, newID+stride
			newID += 2 * stride
			remapUnanchored[oldID] = unewID
			remapAnchored[oldID] = anewID
			isAnchored[int(anewID)>>d.stride2] = true
			if matches := nnfa.Matches(oldID); len(matches) > 0 {
				d.setMatches(unewID, matches)
				d.setMatches(anewID, matches)
			}
			fail := nnfa.Fail(oldID)
			urow, arow := int(unewID), int(anewID)
			eachClass(nnfa, oldID, &d.classes, func(b, class byte, next automaton.StateID) {
				if next != noncontiguous.Fail {
					d.trans[urow+int(class)] = next
					d.trans[arow+int(class)] = next
					return
				}
				if fail != noncontiguous.Dead {
					next = nnfa.NextState(automaton.AnchoredNo, fail, b)
				} else {
					next = noncontiguous.Dead
				}
				d.trans[urow+int(class)] = next
			})
		}
	}

	for i, anchored := range isAnchored {
		row := d.trans[i<<d.stride2 : (i+1)<<d.stride2]
		remap := remapUnanchored
		if anchored {
			remap = remapAnchored
		}
		for j, next := range row {
			row[j] = remap[next]
		}
	}

	d.maxSpecial = remapAnchored[nnfa.MaxMatchID()]
	d.maxMatch = d.maxSpecial
	if nnfa.IsSpecial(aid) {
		d.maxSpecial = max(d.maxSpecial, remapAnchored[aid])
	}
	d.startUnanchored = remapUnanchored[uid]
	d.startAnchored = remapAnchored[aid]
}

// eachClass calls f once per byte class of the NFA state sid, in ascending
// class order, with a representative byte and the transition on it. Classes
// without an explicit transition report noncontiguous.Fail.
func eachClass(
	nnfa *noncontiguous.NFA,
	sid automaton.StateID,
	classes *alphabet.ByteClasses,
	f func(b, class byte, next automaton.StateID),
) {
	trans := nnfa.Transitions(sid)
	prev, ti := -1, 0
	for b := range 256 {
		next := noncontiguous.Fail
		if ti < len(trans) && int(trans[ti].Byte) == b {
			next = trans[ti].Next
			ti++
		}
		class := classes.Get(byte(b))
		if int(class) == prev {
			continue
		}
		prev = int(class)
		f(byte(b), class, next)
	}
}
