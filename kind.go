package acmatch

import "fmt"

// Kind selects the automaton backend an AhoCorasick searches with.
//
// All backends report identical matches. They differ in build time, memory
// usage and search speed:
//   - KindNoncontiguousNFA: fastest to build, largest and slowest to search
//   - KindContiguousNFA: one flat allocation, a good default for large sets
//   - KindDFA: one table lookup per byte, largest for many patterns
type Kind uint8

const (
	// KindAuto picks a backend from the pattern set and start kind: a DFA
	// for at most 100 patterns when only one start kind is needed, otherwise
	// a contiguous NFA, otherwise a noncontiguous NFA.
	KindAuto Kind = iota

	// KindNoncontiguousNFA is the trie-shaped NFA every other backend is
	// built from.
	KindNoncontiguousNFA

	// KindContiguousNFA packs the NFA into a single []uint32.
	KindContiguousNFA

	// KindDFA resolves every failure transition ahead of time.
	KindDFA
)

// autoDFAMaxPatterns is the largest pattern set KindAuto builds a DFA for.
const autoDFAMaxPatterns = 100

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindAuto:
		return "Auto"
	case KindNoncontiguousNFA:
		return "NoncontiguousNFA"
	case KindContiguousNFA:
		return "ContiguousNFA"
	case KindDFA:
		return "DFA"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}
