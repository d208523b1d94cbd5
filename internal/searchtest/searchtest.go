// Package searchtest is the search-semantics suite every backend runs.
//
// A backend test supplies a BuildFunc and calls Run; the suite exercises
// forward, anchored, overlapping and streaming search against fixed
// fixtures and against a brute-force reference on random inputs.
package searchtest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/acmatch/automaton"
)

// Options are the construction settings the suite varies.
type Options struct {
	MatchKind            automaton.MatchKind
	ASCIICaseInsensitive bool
	Prefilter            bool
}

// BuildFunc builds the automaton under test. It must support both anchored
// and unanchored searches.
type BuildFunc func(opts Options, patterns []string) (automaton.Automaton, error)

var kinds = []automaton.MatchKind{
	automaton.MatchKindStandard,
	automaton.MatchKindLeftmostFirst,
	automaton.MatchKindLeftmostLongest,
}

// Run runs the whole suite, once with and once without a prefilter.
func Run(t *testing.T, build BuildFunc) {
	for _, pre := range []bool{false, true} {
		t.Run(fmt.Sprintf("prefilter=%t", pre), func(t *testing.T) {
			opts := func(kind automaton.MatchKind) Options {
				return Options{MatchKind: kind, Prefilter: pre}
			}
			std, lf, ll := opts(automaton.MatchKindStandard), opts(automaton.MatchKindLeftmostFirst), opts(automaton.MatchKindLeftmostLongest)

			t.Run("standard", func(t *testing.T) { RunFindIter(t, build, std, concat(Basics, Standard)) })
			t.Run("leftmost_first", func(t *testing.T) { RunFindIter(t, build, lf, concat(Basics, LeftmostFirst)) })
			t.Run("leftmost_longest", func(t *testing.T) { RunFindIter(t, build, ll, concat(Basics, LeftmostLongest)) })
			t.Run("overlapping", func(t *testing.T) { RunOverlapping(t, build, std, Overlapping) })
			t.Run("anchored_standard", func(t *testing.T) { RunAnchored(t, build, std, concat(Anchored, AnchoredStandard)) })
			t.Run("anchored_leftmost_first", func(t *testing.T) { RunAnchored(t, build, lf, Anchored) })
			t.Run("anchored_leftmost_longest", func(t *testing.T) { RunAnchored(t, build, ll, Anchored) })
			for _, kind := range kinds {
				ci := opts(kind)
				ci.ASCIICaseInsensitive = true
				t.Run("case_insensitive_"+kind.String(), func(t *testing.T) { RunFindIter(t, build, ci, CaseInsensitive) })
			}
			t.Run("stream", func(t *testing.T) { RunStream(t, build, std, concat(Basics, Standard, Overlapping)) })
			t.Run("span", func(t *testing.T) { RunSpan(t, build, pre) })
			t.Run("random", func(t *testing.T) { RunRandom(t, build, pre) })
		})
	}
	t.Run("earliest", func(t *testing.T) { RunEarliest(t, build) })
	t.Run("errors", func(t *testing.T) { RunErrors(t, build) })
}

func concat(sets ...[]Case) []Case {
	return slices.Concat(sets...)
}

// MustBuild builds an automaton and fails the test on error.
func MustBuild(t *testing.T, build BuildFunc, opts Options, patterns []string) automaton.Automaton {
	t.Helper()
	aut, err := build(opts, patterns)
	require.NoError(t, err)
	return aut
}

// CheckMatch asserts that m is a well-formed match of aut in haystack.
func CheckMatch(t *testing.T, aut automaton.Automaton, haystack []byte, m automaton.Match) {
	t.Helper()
	assert.LessOrEqual(t, 0, m.Start())
	assert.LessOrEqual(t, m.Start(), m.End())
	assert.LessOrEqual(t, m.End(), len(haystack))
	assert.Less(t, int(m.Pattern()), aut.PatternsLen())
	assert.Equal(t, aut.PatternLen(m.Pattern()), m.Len())
}

func toM(ms []automaton.Match) []M {
	var out []M
	for _, m := range ms {
		out = append(out, M{int(m.Pattern()), m.Start(), m.End()})
	}
	return out
}

func findAll(t *testing.T, aut automaton.Automaton, input automaton.Input) []automaton.Match {
	t.Helper()
	it, err := automaton.NewFindIter(aut, input)
	require.NoError(t, err)
	var ms []automaton.Match
	var prev automaton.Match
	for m := range it.All() {
		CheckMatch(t, aut, input.Haystack(), m)
		if len(ms) > 0 {
			assert.GreaterOrEqual(t, m.Start(), prev.End(), "non-overlapping matches overlap")
			if m.IsEmpty() || prev.IsEmpty() {
				assert.Greater(t, m.Start(), prev.Start(), "no forward progress")
			}
		}
		ms = append(ms, m)
		prev = m
	}
	require.NoError(t, it.Err())
	return ms
}

// RunFindIter checks non-overlapping iteration over each case.
func RunFindIter(t *testing.T, build BuildFunc, opts Options, cases []Case) {
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			aut := MustBuild(t, build, opts, tc.Patterns)
			got := findAll(t, aut, automaton.NewInputString(tc.Haystack))
			assert.Equal(t, tc.Want, toM(got), "patterns=%q haystack=%q", tc.Patterns, tc.Haystack)

			m, ok, err := automaton.Find(aut, automaton.NewInputString(tc.Haystack))
			require.NoError(t, err)
			assert.Equal(t, len(tc.Want) > 0, ok)
			if ok {
				assert.Equal(t, tc.Want[0], M{int(m.Pattern()), m.Start(), m.End()})
			}
		})
	}
}

// RunAnchored checks anchored non-overlapping iteration over each case.
func RunAnchored(t *testing.T, build BuildFunc, opts Options, cases []Case) {
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			aut := MustBuild(t, build, opts, tc.Patterns)
			input := automaton.NewInputString(tc.Haystack).WithAnchored(automaton.AnchoredYes)
			got := findAll(t, aut, input)
			assert.Equal(t, tc.Want, toM(got))
			for i, m := range got {
				if i > 0 {
					assert.Equal(t, got[i-1].End(), m.Start(), "anchored match must start where the last one ended")
				}
			}
		})
	}
}

// RunOverlapping checks overlapping search over each case, both through
// FindOverlapping with a shared state and through the iterator.
func RunOverlapping(t *testing.T, build BuildFunc, opts Options, cases []Case) {
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			aut := MustBuild(t, build, opts, tc.Patterns)
			input := automaton.NewInputString(tc.Haystack)

			state := automaton.NewOverlappingState()
			var got []automaton.Match
			for {
				require.NoError(t, automaton.FindOverlapping(aut, input, state))
				m, ok := state.Match()
				if !ok {
					break
				}
				CheckMatch(t, aut, input.Haystack(), m)
				got = append(got, m)
			}
			assert.Equal(t, tc.Want, toM(got))

			// Exhausted states stay exhausted.
			require.NoError(t, automaton.FindOverlapping(aut, input, state))
			_, ok := state.Match()
			assert.False(t, ok)

			it, err := automaton.NewFindOverlappingIter(aut, input)
			require.NoError(t, err)
			assert.Equal(t, tc.Want, toM(slices.Collect(it.All())))
		})
	}
}

type readerCase struct {
	name string
	wrap func(io.Reader) io.Reader
}

var readers = []readerCase{
	{"whole", func(r io.Reader) io.Reader { return r }},
	{"one_byte", iotest.OneByteReader},
	{"half", iotest.HalfReader},
	{"data_err", iotest.DataErrReader},
}

// RunStream checks that streaming search reports the same matches as
// FindIter and that its chunks reproduce the haystack, for several read
// patterns. Cases with empty patterns are skipped.
func RunStream(t *testing.T, build BuildFunc, opts Options, cases []Case) {
	for _, tc := range cases {
		if slices.Contains(tc.Patterns, "") {
			continue
		}
		t.Run(tc.Name, func(t *testing.T) {
			aut := MustBuild(t, build, opts, tc.Patterns)
			want := findAll(t, aut, automaton.NewInputString(tc.Haystack))
			for _, rc := range readers {
				t.Run(rc.name, func(t *testing.T) {
					got, out := streamAll(t, aut, rc.wrap(bytes.NewReader([]byte(tc.Haystack))))
					assert.Equal(t, tc.Haystack, string(out), "chunks must reproduce the stream")
					assert.Equal(t, toM(want), toM(got))
				})
			}
		})
	}
}

func streamAll(t *testing.T, aut automaton.Automaton, r io.Reader) ([]automaton.Match, []byte) {
	t.Helper()
	it, err := automaton.NewStreamChunkIter(aut, r)
	require.NoError(t, err)
	var (
		out     []byte
		matches []automaton.Match
	)
	for {
		chunk, err := it.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		if chunk.IsMatch {
			assert.Equal(t, chunk.Match.Len(), len(chunk.Bytes))
			assert.Equal(t, len(out), chunk.Match.Start())
			matches = append(matches, chunk.Match)
		}
		out = append(out, chunk.Bytes...)
	}
	_, err = it.Next()
	assert.ErrorIs(t, err, io.EOF, "exhausted stream keeps returning EOF")
	return matches, out
}

// RunSpan checks searches restricted to a sub-span of the haystack.
func RunSpan(t *testing.T, build BuildFunc, pre bool) {
	tests := []struct {
		name       string
		start, end int
		want       []M
	}{
		{"full", 0, 6, []M{{0, 0, 3}, {0, 3, 6}}},
		{"skip_first", 1, 6, []M{{0, 3, 6}}},
		{"cut_second", 0, 5, []M{{0, 0, 3}}},
		{"inner", 1, 5, nil},
		{"empty", 3, 3, nil},
	}
	for _, kind := range kinds {
		aut := MustBuild(t, build, Options{MatchKind: kind, Prefilter: pre}, []string{"abc"})
		for _, tt := range tests {
			t.Run(kind.String()+"/"+tt.name, func(t *testing.T) {
				input := automaton.NewInputString("abcabc").WithSpan(tt.start, tt.end)
				assert.Equal(t, tt.want, toM(findAll(t, aut, input)))
			})
		}
	}
}

// RunEarliest checks that earliest searches stop at the first match state
// for every match kind.
func RunEarliest(t *testing.T, build BuildFunc) {
	for _, kind := range kinds {
		aut := MustBuild(t, build, Options{MatchKind: kind}, []string{"abcd", "bc", "b"})
		input := automaton.NewInputString("xabcd").WithEarliest(true)
		m, ok, err := automaton.Find(aut, input)
		require.NoError(t, err)
		require.True(t, ok, kind.String())
		assert.Equal(t, 2, m.End(), kind.String())
	}
}

// RunErrors checks construction-time rejections.
func RunErrors(t *testing.T, build BuildFunc) {
	input := automaton.NewInputString("abc")

	ll := MustBuild(t, build, Options{MatchKind: automaton.MatchKindLeftmostLongest}, []string{"a"})
	_, err := automaton.NewFindOverlappingIter(ll, input)
	assert.ErrorIs(t, err, automaton.ErrUnsupportedOverlapping)
	var merr *automaton.MatchError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, automaton.MatchKindLeftmostLongest, merr.MatchKind)

	lf := MustBuild(t, build, Options{MatchKind: automaton.MatchKindLeftmostFirst}, []string{"a"})
	_, err = automaton.NewFindOverlappingIter(lf, input)
	assert.ErrorIs(t, err, automaton.ErrUnsupportedOverlapping)
	_, err = automaton.NewStreamChunkIter(lf, bytes.NewReader(nil))
	assert.ErrorIs(t, err, automaton.ErrUnsupportedStream)

	std := MustBuild(t, build, Options{MatchKind: automaton.MatchKindStandard}, []string{"a"})
	_, err = automaton.NewFindOverlappingIter(std, input.WithAnchored(automaton.AnchoredYes))
	assert.ErrorIs(t, err, automaton.ErrInvalidAnchoredOverlapping)

	empty := MustBuild(t, build, Options{MatchKind: automaton.MatchKindStandard}, []string{"a", ""})
	_, err = automaton.NewStreamChunkIter(empty, bytes.NewReader(nil))
	assert.ErrorIs(t, err, automaton.ErrUnsupportedEmptyPattern)
	_, err = automaton.NewStreamFindIter(empty, bytes.NewReader(nil))
	assert.ErrorIs(t, err, automaton.ErrUnsupportedEmptyPattern)

	none := MustBuild(t, build, Options{MatchKind: automaton.MatchKindStandard}, nil)
	it, err := automaton.NewStreamFindIter(none, bytes.NewReader([]byte("abc")))
	require.NoError(t, err)
	_, err = it.Next()
	assert.ErrorIs(t, err, io.EOF)
}

// RunRandom compares every search mode with a brute-force reference over
// random patterns and haystacks drawn from a small alphabet.
func RunRandom(t *testing.T, build BuildFunc, pre bool) {
	rng := rand.New(rand.NewPCG(7, uint64(len(fmt.Sprint(pre)))))
	const alphabet = "abcA"
	randString := func(minLen, maxLen int) string {
		b := make([]byte, minLen+rng.IntN(maxLen-minLen+1))
		for i := range b {
			b[i] = alphabet[rng.IntN(len(alphabet))]
		}
		return string(b)
	}

	for iter := 0; iter < 200; iter++ {
		patterns := make([]string, 1+rng.IntN(5))
		for i := range patterns {
			patterns[i] = randString(1, 4)
		}
		haystack := randString(0, 30)
		msg := fmt.Sprintf("patterns=%q haystack=%q", patterns, haystack)

		for _, kind := range kinds {
			aut := MustBuild(t, build, Options{MatchKind: kind, Prefilter: pre}, patterns)
			got := toM(findAll(t, aut, automaton.NewInputString(haystack)))
			assert.Equal(t, naiveFind(kind, patterns, haystack), got, "%s %s", kind, msg)

			if kind.IsStandard() {
				it, err := automaton.NewFindOverlappingIter(aut, automaton.NewInputString(haystack))
				require.NoError(t, err)
				overlapping := toM(slices.Collect(it.All()))
				slices.SortFunc(overlapping, compareM)
				assert.Equal(t, naiveOverlapping(patterns, haystack), overlapping, "overlapping %s", msg)

				streamed, _ := streamAll(t, aut, iotest.OneByteReader(bytes.NewReader([]byte(haystack))))
				assert.Equal(t, got, toM(streamed), "stream %s", msg)
			}
		}
	}
}

func compareM(a, b M) int {
	if a.End != b.End {
		return a.End - b.End
	}
	if a.Start != b.Start {
		return a.Start - b.Start
	}
	return a.Pattern - b.Pattern
}

func occurrences(patterns []string, haystack string) []M {
	var out []M
	for start := 0; start < len(haystack); start++ {
		for pid, p := range patterns {
			if start+len(p) <= len(haystack) && haystack[start:start+len(p)] == p {
				out = append(out, M{pid, start, start + len(p)})
			}
		}
	}
	return out
}

func naiveOverlapping(patterns []string, haystack string) []M {
	out := occurrences(patterns, haystack)
	slices.SortFunc(out, compareM)
	return out
}

// naiveFind is the reference for non-overlapping search of non-empty
// patterns.
//
// Standard reports the occurrence that ends first, preferring the longest
// one ending there. The leftmost kinds report the occurrence that starts
// first, preferring the lowest pattern ID or the longest pattern.
func naiveFind(kind automaton.MatchKind, patterns []string, haystack string) []M {
	var out []M
	at := 0
	for {
		var (
			best  M
			found bool
		)
		for _, o := range occurrences(patterns, haystack) {
			if o.Start < at {
				continue
			}
			if !found || better(kind, o, best) {
				best, found = o, true
			}
		}
		if !found {
			return out
		}
		out = append(out, best)
		at = best.End
	}
}

func better(kind automaton.MatchKind, a, b M) bool {
	switch kind {
	case automaton.MatchKindStandard:
		if a.End != b.End {
			return a.End < b.End
		}
		if a.End-a.Start != b.End-b.Start {
			return a.End-a.Start > b.End-b.Start
		}
	case automaton.MatchKindLeftmostFirst:
		if a.Start != b.Start {
			return a.Start < b.Start
		}
	case automaton.MatchKindLeftmostLongest:
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End-a.Start != b.End-b.Start {
			return a.End-a.Start > b.End-b.Start
		}
	}
	return a.Pattern < b.Pattern
}
