package acmatch

import "github.com/coregx/acmatch/automaton"

// Types shared with the automaton package, re-exported so that most callers
// only need to import acmatch.
type (
	// Match is a single pattern occurrence.
	Match = automaton.Match
	// Span is a half-open byte range of a haystack.
	Span = automaton.Span
	// Input configures a single search.
	Input = automaton.Input
	// PatternID identifies a pattern by its position in the pattern list.
	PatternID = automaton.PatternID
	// MatchKind selects which pattern wins when several could match.
	MatchKind = automaton.MatchKind
	// Anchored selects the start state of a search.
	Anchored = automaton.Anchored
	// StartKind selects which start states are built.
	StartKind = automaton.StartKind
	// OverlappingState carries an overlapping search between calls.
	OverlappingState = automaton.OverlappingState
	// FindIter yields non-overlapping matches.
	FindIter = automaton.FindIter
	// FindOverlappingIter yields every match, including overlapping ones.
	FindOverlappingIter = automaton.FindOverlappingIter
	// StreamFindIter yields matches read from an io.Reader.
	StreamFindIter = automaton.StreamFindIter
	// MatchError is returned when a search cannot run as requested.
	MatchError = automaton.MatchError
	// BuildError is returned when an automaton cannot be constructed.
	BuildError = automaton.BuildError
)

const (
	MatchKindStandard        = automaton.MatchKindStandard
	MatchKindLeftmostFirst   = automaton.MatchKindLeftmostFirst
	MatchKindLeftmostLongest = automaton.MatchKindLeftmostLongest

	AnchoredNo  = automaton.AnchoredNo
	AnchoredYes = automaton.AnchoredYes

	StartKindUnanchored = automaton.StartKindUnanchored
	StartKindAnchored   = automaton.StartKindAnchored
	StartKindBoth       = automaton.StartKindBoth
)

// Sentinel errors for errors.Is comparisons.
var (
	ErrUnsupportedAnchored        = automaton.ErrUnsupportedAnchored
	ErrUnsupportedUnanchored      = automaton.ErrUnsupportedUnanchored
	ErrUnsupportedOverlapping     = automaton.ErrUnsupportedOverlapping
	ErrInvalidAnchoredOverlapping = automaton.ErrInvalidAnchoredOverlapping
	ErrUnsupportedStream          = automaton.ErrUnsupportedStream
	ErrUnsupportedEmptyPattern    = automaton.ErrUnsupportedEmptyPattern
	ErrInvalidReplacements        = automaton.ErrInvalidReplacements
	ErrStateIDOverflow            = automaton.ErrStateIDOverflow
	ErrPatternIDOverflow          = automaton.ErrPatternIDOverflow
	ErrPatternTooLong             = automaton.ErrPatternTooLong
)

// NewInput returns an Input searching all of haystack, unanchored.
func NewInput(haystack []byte) Input { return automaton.NewInput(haystack) }

// NewInputString is NewInput for a string haystack.
func NewInputString(haystack string) Input { return automaton.NewInputString(haystack) }

// NewOverlappingState returns the state for a fresh overlapping search.
func NewOverlappingState() *OverlappingState { return automaton.NewOverlappingState() }
