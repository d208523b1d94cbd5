package acmatch

import (
	"bytes"
	"io"
	"strings"

	"github.com/coregx/acmatch/automaton"
)

// checkAnchored rejects searches the configured StartKind does not allow,
// whatever the backend supports.
func (ac *AhoCorasick) checkAnchored(want Anchored) error {
	switch ac.startKind {
	case automaton.StartKindBoth:
		return nil
	case automaton.StartKindAnchored:
		if !want.IsAnchored() {
			return &MatchError{Kind: automaton.UnsupportedUnanchored}
		}
	default:
		if want.IsAnchored() {
			return &MatchError{Kind: automaton.UnsupportedAnchored}
		}
	}
	return nil
}

// input returns the Input used by the methods that take a plain haystack:
// unanchored, or anchored when only anchored searches were configured.
func (ac *AhoCorasick) input(haystack []byte) Input {
	in := automaton.NewInput(haystack)
	if ac.startKind == automaton.StartKindAnchored {
		in.SetAnchored(automaton.AnchoredYes)
	}
	return in
}

// IsMatch reports whether any pattern occurs in haystack. It stops at the
// first match state, so it may be faster than Find.
func (ac *AhoCorasick) IsMatch(haystack []byte) bool {
	_, ok, _ := automaton.Find(ac.aut, ac.input(haystack).WithEarliest(true))
	return ok
}

// IsMatchString is IsMatch for a string haystack.
func (ac *AhoCorasick) IsMatchString(haystack string) bool {
	return ac.IsMatch([]byte(haystack))
}

// Find returns the first match in haystack according to the match kind.
func (ac *AhoCorasick) Find(haystack []byte) (Match, bool) {
	m, ok, _ := automaton.Find(ac.aut, ac.input(haystack))
	return m, ok
}

// FindString is Find for a string haystack.
func (ac *AhoCorasick) FindString(haystack string) (Match, bool) {
	return ac.Find([]byte(haystack))
}

// FindInput returns the first match described by input. It fails when
// input's anchor mode is not allowed by the configured StartKind.
func (ac *AhoCorasick) FindInput(input Input) (Match, bool, error) {
	if err := ac.checkAnchored(input.Anchored()); err != nil {
		return Match{}, false, err
	}
	return automaton.Find(ac.aut, input)
}

// FindOverlapping reports the next overlapping match through state. Call it
// repeatedly with the same state until state.Match() reports false. It
// requires MatchKindStandard and an unanchored input.
func (ac *AhoCorasick) FindOverlapping(input Input, state *OverlappingState) error {
	if err := ac.checkAnchored(input.Anchored()); err != nil {
		return err
	}
	return automaton.FindOverlapping(ac.aut, input, state)
}

// FindIter returns an iterator over the non-overlapping matches of input.
func (ac *AhoCorasick) FindIter(input Input) (*FindIter, error) {
	if err := ac.checkAnchored(input.Anchored()); err != nil {
		return nil, err
	}
	return automaton.NewFindIter(ac.aut, input)
}

// FindAll returns every non-overlapping match in haystack.
func (ac *AhoCorasick) FindAll(haystack []byte) []Match {
	it, err := automaton.NewFindIter(ac.aut, ac.input(haystack))
	if err != nil {
		return nil
	}
	var matches []Match
	for m := range it.All() {
		matches = append(matches, m)
	}
	return matches
}

// FindAllString is FindAll for a string haystack.
func (ac *AhoCorasick) FindAllString(haystack string) []Match {
	return ac.FindAll([]byte(haystack))
}

// FindOverlappingIter returns an iterator over every match of input,
// including overlapping ones. It requires MatchKindStandard and an
// unanchored input.
func (ac *AhoCorasick) FindOverlappingIter(input Input) (*FindOverlappingIter, error) {
	if err := ac.checkAnchored(input.Anchored()); err != nil {
		return nil, err
	}
	return automaton.NewFindOverlappingIter(ac.aut, input)
}

// FindAllOverlapping returns every match in haystack, including
// overlapping ones.
func (ac *AhoCorasick) FindAllOverlapping(haystack []byte) ([]Match, error) {
	it, err := ac.FindOverlappingIter(automaton.NewInput(haystack))
	if err != nil {
		return nil, err
	}
	var matches []Match
	for m := range it.All() {
		matches = append(matches, m)
	}
	return matches, it.Err()
}

// ReplaceAll replaces every non-overlapping match of pattern i with with[i].
// with must hold exactly one replacement per pattern.
func (ac *AhoCorasick) ReplaceAll(haystack string, with []string) (string, error) {
	if err := ac.checkAnchored(automaton.AnchoredNo); err != nil {
		return "", err
	}
	return automaton.ReplaceAll(ac.aut, haystack, with)
}

// ReplaceAllBytes is ReplaceAll for byte slices.
func (ac *AhoCorasick) ReplaceAllBytes(haystack []byte, with [][]byte) ([]byte, error) {
	if err := ac.checkAnchored(automaton.AnchoredNo); err != nil {
		return nil, err
	}
	return automaton.ReplaceAllBytes(ac.aut, haystack, with)
}

// ReplaceAllFunc writes haystack to dst, letting fn write the replacement
// for every non-overlapping match. Returning false from fn stops the
// replacement; the rest of haystack is copied unchanged.
func (ac *AhoCorasick) ReplaceAllFunc(
	haystack string,
	dst *strings.Builder,
	fn func(m Match, matched string, dst *strings.Builder) bool,
) error {
	if err := ac.checkAnchored(automaton.AnchoredNo); err != nil {
		return err
	}
	return automaton.ReplaceAllFunc(ac.aut, haystack, dst, fn)
}

// ReplaceAllBytesFunc is ReplaceAllFunc for byte slices.
func (ac *AhoCorasick) ReplaceAllBytesFunc(
	haystack []byte,
	dst *bytes.Buffer,
	fn func(m Match, matched []byte, dst *bytes.Buffer) bool,
) error {
	if err := ac.checkAnchored(automaton.AnchoredNo); err != nil {
		return err
	}
	return automaton.ReplaceAllBytesFunc(ac.aut, haystack, dst, fn)
}

// StreamFindIter returns an iterator over the matches read from r. It
// requires MatchKindStandard and no empty pattern. Memory use is bounded
// by the longest pattern, not by the length of the stream.
func (ac *AhoCorasick) StreamFindIter(r io.Reader) (*StreamFindIter, error) {
	if err := ac.checkAnchored(automaton.AnchoredNo); err != nil {
		return nil, err
	}
	return automaton.NewStreamFindIter(ac.aut, r)
}

// StreamReplaceAll copies r to w, replacing every match of pattern i with
// with[i]. It has the requirements of StreamFindIter.
func (ac *AhoCorasick) StreamReplaceAll(r io.Reader, w io.Writer, with [][]byte) error {
	if err := ac.checkAnchored(automaton.AnchoredNo); err != nil {
		return err
	}
	return automaton.StreamReplaceAll(ac.aut, r, w, with)
}

// StreamReplaceAllFunc copies r to w, letting fn write the replacement for
// every match. It has the requirements of StreamFindIter.
func (ac *AhoCorasick) StreamReplaceAllFunc(
	r io.Reader,
	w io.Writer,
	fn func(m Match, matched []byte, w io.Writer) error,
) error {
	if err := ac.checkAnchored(automaton.AnchoredNo); err != nil {
		return err
	}
	return automaton.StreamReplaceAllFunc(ac.aut, r, w, fn)
}
