package automaton

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		msg      string
	}{
		{"anchored", ErrUnsupportedAnchored, ErrUnsupportedAnchored, "anchored searches are not supported or enabled"},
		{"unanchored", ErrUnsupportedUnanchored, ErrUnsupportedUnanchored, "unanchored searches are not supported or enabled"},
		{"overlapping", unsupportedOverlapping(MatchKindLeftmostFirst), ErrUnsupportedOverlapping,
			"overlapping searches are not supported with match kind LeftmostFirst"},
		{"anchored_overlapping", ErrInvalidAnchoredOverlapping, ErrInvalidAnchoredOverlapping,
			"anchored overlapping searches are not supported"},
		{"stream", unsupportedStream(MatchKindLeftmostLongest), ErrUnsupportedStream,
			"streaming searches are not supported with match kind LeftmostLongest"},
		{"empty_pattern", ErrUnsupportedEmptyPattern, ErrUnsupportedEmptyPattern,
			"streaming searches are not supported with an empty pattern"},
		{"replacements", invalidReplacements(1, 3), ErrInvalidReplacements,
			"got 1 replacements, want one per pattern (3)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.msg)
			assert.ErrorIs(t, tt.err, tt.sentinel)

			wrapped := fmt.Errorf("searching: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			var merr *MatchError
			require.ErrorAs(t, wrapped, &merr)
			assert.Equal(t, tt.sentinel.(*MatchError).Kind, merr.Kind)
		})
	}

	assert.NotErrorIs(t, ErrUnsupportedStream, ErrUnsupportedOverlapping)
	assert.NotErrorIs(t, ErrUnsupportedStream, ErrStateIDOverflow)
	assert.Equal(t, "UnknownErrorKind(42)", ErrorKind(42).String())
	assert.Equal(t, "UnknownErrorKind(42)", (&MatchError{Kind: 42}).Error())
}

func TestBuildError(t *testing.T) {
	err := NewStateIDOverflow(1 << 40)
	assert.ErrorIs(t, err, ErrStateIDOverflow)
	assert.NotErrorIs(t, err, ErrPatternIDOverflow)
	assert.Equal(t, uint64(MaxStateID), err.Max)
	assert.Contains(t, err.Error(), "state identifiers exhausted: attempted 1099511627776")

	perr := NewPatternIDOverflow(uint64(MaxPatternID) + 1)
	assert.ErrorIs(t, perr, ErrPatternIDOverflow)
	assert.Contains(t, perr.Error(), "pattern identifiers exhausted")

	lerr := NewPatternTooLong(7, MaxPatternLen+1)
	assert.ErrorIs(t, lerr, ErrPatternTooLong)
	assert.Equal(t, PatternID(7), lerr.Pattern)
	assert.Contains(t, lerr.Error(), "pattern 7 with length")

	var berr *BuildError
	require.ErrorAs(t, fmt.Errorf("build: %w", lerr), &berr)
	assert.Equal(t, PatternTooLong, berr.Kind)
	assert.False(t, errors.Is(lerr, ErrUnsupportedStream))
	assert.Equal(t, "UnknownBuildErrorKind(9)", BuildErrorKind(9).String())
}

func TestCandidate(t *testing.T) {
	none := NoCandidate()
	assert.Equal(t, CandidateNone, none.Kind())
	_, ok := none.Position()
	assert.False(t, ok)
	_, ok = none.Match()
	assert.False(t, ok)

	m := NewMatch(2, 5, 8)
	mc := MatchCandidate(m)
	assert.Equal(t, CandidateMatch, mc.Kind())
	got, ok := mc.Match()
	require.True(t, ok)
	assert.Equal(t, m, got)
	pos, ok := mc.Position()
	require.True(t, ok)
	assert.Equal(t, 5, pos)

	ps := PossibleStartCandidate(11)
	assert.Equal(t, CandidatePossibleStart, ps.Kind())
	pos, ok = ps.Position()
	require.True(t, ok)
	assert.Equal(t, 11, pos)
	_, ok = ps.Match()
	assert.False(t, ok)
}
