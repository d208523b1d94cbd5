package contiguous

import (
	"slices"

	"github.com/coregx/acmatch/automaton"
	"github.com/coregx/acmatch/internal/alphabet"
	"github.com/coregx/acmatch/internal/conv"
	"github.com/coregx/acmatch/nfa/noncontiguous"
)

// New builds a contiguous NFA for patterns with DefaultConfig.
func New(patterns []string) (*NFA, error) {
	bs := make([][]byte, len(patterns))
	for i, p := range patterns {
		bs[i] = []byte(p)
	}
	return NewWithConfig(DefaultConfig(), bs)
}

// NewWithConfig builds a contiguous NFA for patterns. Pattern i gets
// PatternID i.
func NewWithConfig(cfg Config, patterns [][]byte) (*NFA, error) {
	nnfa, err := noncontiguous.NewWithConfig(cfg.noncontiguous(), patterns)
	if err != nil {
		return nil, err
	}
	return FromNoncontiguous(cfg, nnfa)
}

// FromNoncontiguous compacts nnfa into a contiguous NFA. Only the
// DenseDepth, ByteClasses and Logger settings of cfg apply; everything else
// comes from nnfa, including its prefilter.
//
// It fails with a StateIDOverflow error if the encoding outgrows
// automaton.MaxStateID words.
func FromNoncontiguous(cfg Config, nnfa *noncontiguous.NFA) (*NFA, error) {
	classes := nnfa.ByteClasses()
	if !cfg.ByteClasses {
		classes = alphabet.Singletons()
	}
	nfa := &NFA{
		patternLens:   make([]int, nnfa.PatternsLen()),
		stateLen:      nnfa.Len(),
		prefilter:     nnfa.Prefilter(),
		matchKind:     nnfa.MatchKind(),
		classes:       classes,
		alphabetLen:   classes.AlphabetLen(),
		minPatternLen: nnfa.MinPatternLen(),
		maxPatternLen: nnfa.MaxPatternLen(),
	}
	for i := range nfa.patternLens {
		nfa.patternLens[i] = nnfa.PatternLen(automaton.PatternID(i)) // #nosec G115 -- bounded by MaxPatternID
	}

	// States are written in noncontiguous ID order with noncontiguous
	// transition targets, then remapped once every offset is known. The
	// order is preserved, so the match and start ranges survive remapping.
	remap := make([]automaton.StateID, nnfa.Len())
	for oldID := range nnfa.States() {
		if oldID == noncontiguous.Fail {
			remap[oldID] = Fail
			continue
		}
		newID, err := nfa.write(nnfa, oldID, nnfa.Depth(oldID) <= cfg.DenseDepth)
		if err != nil {
			return nil, err
		}
		remap[oldID] = newID
	}
	for _, sid := range remap {
		if sid != Fail {
			nfa.remap(int(sid), remap)
		}
	}

	uid, _ := nnfa.StartState(automaton.AnchoredNo)
	aid, _ := nnfa.StartState(automaton.AnchoredYes)
	nfa.startUnanchored = remap[uid]
	nfa.startAnchored = remap[aid]
	nfa.maxMatch = remap[nnfa.MaxMatchID()]
	nfa.maxSpecial = nfa.maxMatch
	if nnfa.IsSpecial(aid) {
		nfa.maxSpecial = max(nfa.maxSpecial, nfa.startAnchored)
	}
	nfa.repr = slices.Clip(nfa.repr)

	cfg.logger().Debug("contiguous NFA built",
		"states", nfa.stateLen,
		"words", len(nfa.repr),
		"alphabet", nfa.alphabetLen,
		"memory", nfa.MemoryUsage())
	return nfa, nil
}

// write appends the encoding of nnfa's state oldID and returns its offset.
func (n *NFA) write(nnfa *noncontiguous.NFA, oldID automaton.StateID, forceDense bool) (automaton.StateID, error) {
	if len(n.repr) > int(automaton.MaxStateID) {
		return 0, automaton.NewStateIDOverflow(uint64(len(n.repr)))
	}
	sid := automaton.StateID(len(n.repr)) // #nosec G115 -- checked against MaxStateID
	trans := nnfa.Transitions(oldID)
	matches := nnfa.Matches(oldID)
	fail := uint32(nnfa.Fail(oldID))

	switch {
	case forceDense || len(trans) > maxSparseTransitions:
		n.repr = append(n.repr, kindDense, fail)
		row := len(n.repr)
		for range n.alphabetLen {
			n.repr = append(n.repr, uint32(noncontiguous.Fail))
		}
		for _, t := range trans {
			n.repr[row+int(n.classes.Get(t.Byte))] = uint32(t.Next)
		}
	case len(trans) == 1 && len(matches) == 0:
		class := uint32(n.classes.Get(trans[0].Byte))
		n.repr = append(n.repr, kindOne|class<<8, fail, uint32(trans[0].Next))
	default:
		n.repr = append(n.repr, conv.IntToUint32(len(trans)), fail)
		var word uint32
		for i, t := range trans {
			word |= uint32(n.classes.Get(t.Byte)) << (8 * (i % 4))
			if i%4 == 3 || i == len(trans)-1 {
				n.repr = append(n.repr, word)
				word = 0
			}
		}
		for _, t := range trans {
			n.repr = append(n.repr, uint32(t.Next))
		}
	}

	switch len(matches) {
	case 0:
	case 1:
		n.repr = append(n.repr, singleMatch|uint32(matches[0]))
	default:
		n.repr = append(n.repr, conv.IntToUint32(len(matches)))
		for _, pid := range matches {
			n.repr = append(n.repr, uint32(pid))
		}
	}
	return sid, nil
}

// remap rewrites the failure link and transitions of the state at o from
// noncontiguous IDs to offsets. Match words are left alone.
func (n *NFA) remap(o int, remap []automaton.StateID) {
	repr := n.repr
	repr[o+1] = uint32(remap[repr[o+1]])
	var nexts []uint32
	switch kind := repr[o] & 0xFF; kind {
	case kindDense:
		nexts = repr[o+2 : o+2+n.alphabetLen]
	case kindOne:
		nexts = repr[o+2 : o+3]
	default:
		k := int(kind)
		start := o + 2 + u32Len(k)
		nexts = repr[start : start+k]
	}
	for i, next := range nexts {
		nexts[i] = uint32(remap[next])
	}
}
