package automaton_test

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/acmatch/automaton"
	"github.com/coregx/acmatch/nfa/noncontiguous"
)

func build(t *testing.T, kind automaton.MatchKind, patterns ...string) *noncontiguous.NFA {
	t.Helper()
	cfg := noncontiguous.DefaultConfig()
	cfg.MatchKind = kind
	bs := make([][]byte, len(patterns))
	for i, p := range patterns {
		bs[i] = []byte(p)
	}
	nfa, err := noncontiguous.NewWithConfig(cfg, bs)
	require.NoError(t, err)
	return nfa
}

func spans(ms []automaton.Match) []string {
	var out []string
	for _, m := range ms {
		out = append(out, m.Span().String())
	}
	return out
}

func TestFindDoneInput(t *testing.T) {
	nfa := build(t, automaton.MatchKindStandard, "")
	input := automaton.NewInputString("ab")
	input.SetStart(2)
	m, ok, err := automaton.Find(nfa, input)
	require.NoError(t, err)
	require.True(t, ok, "the empty pattern matches at the end")
	assert.Equal(t, automaton.NewMatch(0, 2, 2), m)

	input.SetStart(3)
	_, ok, err = automaton.Find(nfa, input)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFindIterEmptyMatches(t *testing.T) {
	nfa := build(t, automaton.MatchKindStandard, "")
	it, err := automaton.NewFindIter(nfa, automaton.NewInputString("abc"))
	require.NoError(t, err)
	got := slices.Collect(it.All())
	assert.Equal(t, []string{"0..0", "1..1", "2..2", "3..3"}, spans(got))

	// Once exhausted, the iterator stays exhausted.
	_, ok := it.Next()
	assert.False(t, ok)
}

func TestFindIterStopsEarly(t *testing.T) {
	nfa := build(t, automaton.MatchKindLeftmostFirst, "a")
	it, err := automaton.NewFindIter(nfa, automaton.NewInputString("aaaa"))
	require.NoError(t, err)
	n := 0
	for range it.All() {
		n++
		if n == 2 {
			break
		}
	}
	m, ok := it.Next()
	require.True(t, ok, "breaking out of All leaves the rest")
	assert.Equal(t, 2, m.Start())
}

func TestFindOverlappingResumes(t *testing.T) {
	nfa := build(t, automaton.MatchKindStandard, "a", "aa", "aaa")
	input := automaton.NewInputString("aaa")
	state := automaton.NewOverlappingState()

	var got []string
	for {
		require.NoError(t, automaton.FindOverlapping(nfa, input, state))
		m, ok := state.Match()
		if !ok {
			break
		}
		got = append(got, m.String())
	}
	assert.Equal(t, []string{
		"Match(pattern=0, span=0..1)",
		"Match(pattern=1, span=0..2)",
		"Match(pattern=0, span=1..2)",
		"Match(pattern=2, span=0..3)",
		"Match(pattern=1, span=1..3)",
		"Match(pattern=0, span=2..3)",
	}, got)
}

func TestFindOverlappingEmptyPatternAtEveryOffset(t *testing.T) {
	nfa := build(t, automaton.MatchKindStandard, "", "b")
	it, err := automaton.NewFindOverlappingIter(nfa, automaton.NewInputString("ab"))
	require.NoError(t, err)
	assert.Equal(t, []string{"0..0", "1..1", "1..2", "2..2"}, spans(slices.Collect(it.All())))
}

func TestStreamAcrossBufferBoundary(t *testing.T) {
	// Put matches right at and across the first buffer boundary.
	const size = 64 * 1024
	haystack := bytes.Repeat([]byte{'x'}, 3*size)
	offsets := []int{size - 6, size + 2, 2*size - 3, 3*size - 6}
	for _, off := range offsets {
		copy(haystack[off:], "needle")
	}
	nfa := build(t, automaton.MatchKindStandard, "needle")

	for _, r := range []io.Reader{
		bytes.NewReader(haystack),
		iotest.HalfReader(bytes.NewReader(haystack)),
		iotest.DataErrReader(bytes.NewReader(haystack)),
	} {
		it, err := automaton.NewStreamFindIter(nfa, r)
		require.NoError(t, err)
		var starts []int
		for {
			m, err := it.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			require.NoError(t, err)
			starts = append(starts, m.Start())
		}
		assert.Equal(t, offsets, starts)
	}
}

func TestStreamReaderError(t *testing.T) {
	boom := errors.New("boom")
	nfa := build(t, automaton.MatchKindStandard, "ab")
	r := io.MultiReader(strings.NewReader("xxab"), iotest.ErrReader(boom))
	it, err := automaton.NewStreamFindIter(nfa, r)
	require.NoError(t, err)

	var errs []error
	for range 3 {
		_, err := it.Next()
		errs = append(errs, err)
	}
	assert.ErrorIs(t, errs[len(errs)-1], boom, "read errors are returned unchanged")
	_, err = it.Next()
	assert.ErrorIs(t, err, boom, "errors are sticky")
}

func TestStreamChunks(t *testing.T) {
	nfa := build(t, automaton.MatchKindStandard, "fox", "dog")
	it, err := automaton.NewStreamChunkIter(nfa, strings.NewReader("the fox and the dog"))
	require.NoError(t, err)

	type chunk struct {
		text    string
		isMatch bool
	}
	var got []chunk
	for {
		c, err := it.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, chunk{string(c.Bytes), c.IsMatch})
	}
	assert.Equal(t, []chunk{
		{"the ", false},
		{"fox", true},
		{" and the ", false},
		{"dog", true},
	}, got)
}

func TestReplaceAll(t *testing.T) {
	nfa := build(t, automaton.MatchKindLeftmostFirst, "apple", "banana", "app")
	got, err := automaton.ReplaceAll(nfa, "an apple, a banana, an app", []string{"fruit", "FRUIT", "program"})
	require.NoError(t, err)
	assert.Equal(t, "an fruit, a FRUIT, an program", got)

	gotBytes, err := automaton.ReplaceAllBytes(nfa, []byte("apple app"), [][]byte{[]byte("1"), []byte("2"), []byte("3")})
	require.NoError(t, err)
	assert.Equal(t, "1 3", string(gotBytes))

	_, err = automaton.ReplaceAll(nfa, "x", []string{"only one"})
	assert.ErrorIs(t, err, automaton.ErrInvalidReplacements)
	var merr *automaton.MatchError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, 1, merr.Got)
	assert.Equal(t, 3, merr.Want)

	_, err = automaton.ReplaceAllBytes(nfa, nil, nil)
	assert.ErrorIs(t, err, automaton.ErrInvalidReplacements)
}

func TestReplaceAllFunc(t *testing.T) {
	nfa := build(t, automaton.MatchKindStandard, "a", "b")
	var dst strings.Builder
	n := 0
	err := automaton.ReplaceAllFunc(nfa, "xaxbxa", &dst, func(m automaton.Match, matched string, dst *strings.Builder) bool {
		dst.WriteString(strings.ToUpper(matched))
		n++
		return n < 2
	})
	require.NoError(t, err)
	assert.Equal(t, "xAxBxa", dst.String(), "returning false copies the rest unchanged")

	var buf bytes.Buffer
	err = automaton.ReplaceAllBytesFunc(nfa, []byte("ab"), &buf, func(m automaton.Match, _ []byte, dst *bytes.Buffer) bool {
		dst.WriteString("<")
		dst.WriteByte(byte('0' + m.Pattern()))
		dst.WriteString(">")
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, "<0><1>", buf.String())
}

func TestReplaceAllSkipsSplitRunes(t *testing.T) {
	// "\xa9" is the second byte of "é" in UTF-8.
	nfa := build(t, automaton.MatchKindStandard, "\xa9", "x")
	got, err := automaton.ReplaceAll(nfa, "éx", []string{"?", "y"})
	require.NoError(t, err)
	assert.Equal(t, "éy", got)

	gotBytes, err := automaton.ReplaceAllBytes(nfa, []byte("éx"), [][]byte{[]byte("?"), []byte("y")})
	require.NoError(t, err)
	assert.Equal(t, "\xc3?y", string(gotBytes), "byte replacement ignores rune boundaries")
}

type failWriter struct{ err error }

func (w failWriter) Write([]byte) (int, error) { return 0, w.err }

func TestStreamReplaceAll(t *testing.T) {
	nfa := build(t, automaton.MatchKindStandard, "cat", "dog")
	var out bytes.Buffer
	err := automaton.StreamReplaceAll(nfa, iotest.OneByteReader(strings.NewReader("a cat and a dog")), &out,
		[][]byte{[]byte("dog"), []byte("cat")})
	require.NoError(t, err)
	assert.Equal(t, "a dog and a cat", out.String())

	out.Reset()
	err = automaton.StreamReplaceAllFunc(nfa, strings.NewReader("cat dog"), &out,
		func(m automaton.Match, matched []byte, w io.Writer) error {
			_, err := w.Write(bytes.ToUpper(matched))
			return err
		})
	require.NoError(t, err)
	assert.Equal(t, "CAT DOG", out.String())

	boom := errors.New("boom")
	err = automaton.StreamReplaceAll(nfa, strings.NewReader("cat"), failWriter{boom}, [][]byte{nil, nil})
	assert.ErrorIs(t, err, boom)

	err = automaton.StreamReplaceAllFunc(nfa, strings.NewReader("x cat"), io.Discard,
		func(automaton.Match, []byte, io.Writer) error { return boom })
	assert.ErrorIs(t, err, boom)

	err = automaton.StreamReplaceAll(nfa, strings.NewReader(""), io.Discard, nil)
	assert.ErrorIs(t, err, automaton.ErrInvalidReplacements)

	lf := build(t, automaton.MatchKindLeftmostFirst, "cat")
	err = automaton.StreamReplaceAll(lf, strings.NewReader(""), io.Discard, [][]byte{nil})
	assert.ErrorIs(t, err, automaton.ErrUnsupportedStream)
}
