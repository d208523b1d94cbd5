package automaton

import (
	"errors"
	"fmt"
)

// ErrorKind classifies search errors.
type ErrorKind uint8

const (
	// UnsupportedAnchored indicates an anchored search on an automaton
	// without an anchored start state.
	UnsupportedAnchored ErrorKind = iota

	// UnsupportedUnanchored indicates an unanchored search on an automaton
	// built only with an anchored start state.
	UnsupportedUnanchored

	// UnsupportedOverlapping indicates overlapping iteration over an
	// automaton whose match kind is not MatchKindStandard.
	UnsupportedOverlapping

	// InvalidAnchoredOverlapping indicates overlapping iteration requested
	// together with an anchored search.
	InvalidAnchoredOverlapping

	// UnsupportedStream indicates a streaming search over an automaton whose
	// match kind is not MatchKindStandard.
	UnsupportedStream

	// UnsupportedEmptyPattern indicates a streaming search over an automaton
	// that can match the empty string.
	UnsupportedEmptyPattern

	// InvalidReplacements indicates a replacement list whose length differs
	// from the number of patterns.
	InvalidReplacements
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case UnsupportedAnchored:
		return "UnsupportedAnchored"
	case UnsupportedUnanchored:
		return "UnsupportedUnanchored"
	case UnsupportedOverlapping:
		return "UnsupportedOverlapping"
	case InvalidAnchoredOverlapping:
		return "InvalidAnchoredOverlapping"
	case UnsupportedStream:
		return "UnsupportedStream"
	case UnsupportedEmptyPattern:
		return "UnsupportedEmptyPattern"
	case InvalidReplacements:
		return "InvalidReplacements"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// MatchError is returned when a search cannot be run as requested.
//
// Errors are reported synchronously, either by the search call itself or by
// the constructor of an iterator, and are never retried internally.
type MatchError struct {
	Kind ErrorKind

	// MatchKind is the automaton's match kind for UnsupportedOverlapping and
	// UnsupportedStream.
	MatchKind MatchKind

	// Got and Want hold the lengths compared for InvalidReplacements.
	Got  int
	Want int
}

// Error implements the error interface
func (e *MatchError) Error() string {
	switch e.Kind {
	case UnsupportedAnchored:
		return "anchored searches are not supported or enabled"
	case UnsupportedUnanchored:
		return "unanchored searches are not supported or enabled"
	case UnsupportedOverlapping:
		return fmt.Sprintf("overlapping searches are not supported with match kind %s", e.MatchKind)
	case InvalidAnchoredOverlapping:
		return "anchored overlapping searches are not supported"
	case UnsupportedStream:
		return fmt.Sprintf("streaming searches are not supported with match kind %s", e.MatchKind)
	case UnsupportedEmptyPattern:
		return "streaming searches are not supported with an empty pattern"
	case InvalidReplacements:
		return fmt.Sprintf("got %d replacements, want one per pattern (%d)", e.Got, e.Want)
	default:
		return e.Kind.String()
	}
}

// Is reports whether target is a *MatchError of the same kind, so that
// errors.Is(err, ErrUnsupportedStream) works regardless of MatchKind.
func (e *MatchError) Is(target error) bool {
	var t *MatchError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinel errors for errors.Is comparisons.
var (
	ErrUnsupportedAnchored        = &MatchError{Kind: UnsupportedAnchored}
	ErrUnsupportedUnanchored      = &MatchError{Kind: UnsupportedUnanchored}
	ErrUnsupportedOverlapping     = &MatchError{Kind: UnsupportedOverlapping}
	ErrInvalidAnchoredOverlapping = &MatchError{Kind: InvalidAnchoredOverlapping}
	ErrUnsupportedStream          = &MatchError{Kind: UnsupportedStream}
	ErrUnsupportedEmptyPattern    = &MatchError{Kind: UnsupportedEmptyPattern}
	ErrInvalidReplacements        = &MatchError{Kind: InvalidReplacements}
)

func unsupportedOverlapping(kind MatchKind) error {
	return &MatchError{Kind: UnsupportedOverlapping, MatchKind: kind}
}

func unsupportedStream(kind MatchKind) error {
	return &MatchError{Kind: UnsupportedStream, MatchKind: kind}
}

func invalidReplacements(got, want int) error {
	return &MatchError{Kind: InvalidReplacements, Got: got, Want: want}
}

// BuildErrorKind classifies construction errors.
type BuildErrorKind uint8

const (
	// StateIDOverflow indicates an automaton needing more states than
	// MaxStateID allows.
	StateIDOverflow BuildErrorKind = iota

	// PatternIDOverflow indicates more patterns than MaxPatternID allows.
	PatternIDOverflow

	// PatternTooLong indicates a pattern longer than MaxPatternLen.
	PatternTooLong
)

// String returns a human-readable build error kind name
func (k BuildErrorKind) String() string {
	switch k {
	case StateIDOverflow:
		return "StateIDOverflow"
	case PatternIDOverflow:
		return "PatternIDOverflow"
	case PatternTooLong:
		return "PatternTooLong"
	default:
		return fmt.Sprintf("UnknownBuildErrorKind(%d)", k)
	}
}

// BuildError is returned when an automaton cannot be constructed.
type BuildError struct {
	Kind BuildErrorKind

	// Max and Requested hold the limit and the attempted value for the
	// overflow kinds.
	Max       uint64
	Requested uint64

	// Pattern and Len identify the offending pattern for PatternTooLong.
	Pattern PatternID
	Len     int
}

// Error implements the error interface
func (e *BuildError) Error() string {
	switch e.Kind {
	case StateIDOverflow:
		return fmt.Sprintf("state identifiers exhausted: attempted %d, maximum is %d", e.Requested, e.Max)
	case PatternIDOverflow:
		return fmt.Sprintf("pattern identifiers exhausted: attempted %d, maximum is %d", e.Requested, e.Max)
	case PatternTooLong:
		return fmt.Sprintf("pattern %d with length %d exceeds the maximum pattern length", e.Pattern, e.Len)
	default:
		return e.Kind.String()
	}
}

// Is reports whether target is a *BuildError of the same kind.
func (e *BuildError) Is(target error) bool {
	var t *BuildError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// NewStateIDOverflow returns a StateIDOverflow error for an attempt to
// allocate state ID requested.
func NewStateIDOverflow(requested uint64) *BuildError {
	return &BuildError{Kind: StateIDOverflow, Max: uint64(MaxStateID), Requested: requested}
}

// NewPatternIDOverflow returns a PatternIDOverflow error for an attempt to
// add pattern number requested.
func NewPatternIDOverflow(requested uint64) *BuildError {
	return &BuildError{Kind: PatternIDOverflow, Max: uint64(MaxPatternID), Requested: requested}
}

// NewPatternTooLong returns a PatternTooLong error.
func NewPatternTooLong(pid PatternID, length int) *BuildError {
	return &BuildError{Kind: PatternTooLong, Pattern: pid, Len: length}
}

// Sentinel build errors for errors.Is comparisons.
var (
	ErrStateIDOverflow   = &BuildError{Kind: StateIDOverflow}
	ErrPatternIDOverflow = &BuildError{Kind: PatternIDOverflow}
	ErrPatternTooLong    = &BuildError{Kind: PatternTooLong}
)
