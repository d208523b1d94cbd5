package acmatch

import (
	"log/slog"

	"github.com/coregx/acmatch/automaton"
	"github.com/coregx/acmatch/nfa/noncontiguous"
)

// Config controls how an AhoCorasick is built.
//
// Example:
//
//	cfg := acmatch.DefaultConfig()
//	cfg.MatchKind = acmatch.MatchKindLeftmostFirst
//	cfg.ASCIICaseInsensitive = true
//	ac, err := acmatch.NewWithConfig(patterns, cfg)
type Config struct {
	// MatchKind selects the match semantics. Overlapping and stream
	// searches require MatchKindStandard.
	// Default: MatchKindStandard
	MatchKind MatchKind

	// StartKind selects which searches are allowed. Searches taking no
	// Input run anchored when StartKind is StartKindAnchored. With
	// StartKindBoth KindAuto never picks a DFA, since a DFA supporting both
	// carries two copies of its transition table.
	// Default: StartKindUnanchored
	StartKind StartKind

	// Kind forces a backend. KindAuto chooses one.
	// Default: KindAuto
	Kind Kind

	// ASCIICaseInsensitive makes ASCII letters match either case. Bytes
	// outside ASCII still match exactly.
	// Default: false
	ASCIICaseInsensitive bool

	// Prefilter enables a literal prefilter that skips ahead to candidate
	// positions during unanchored searches.
	// Default: true
	Prefilter bool

	// DenseDepth is the trie depth up to which NFA states get a dense
	// transition row. -1 disables dense rows. The DFA ignores it.
	// Default: 3
	DenseDepth int

	// ByteClasses shrinks transition rows by grouping bytes that no pattern
	// distinguishes. Disabling it only makes sense for debugging.
	// Default: true
	ByteClasses bool

	// Logger receives build decisions at Debug level: the backend chosen,
	// its size and the prefilter in use. Searches never log. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with sensible defaults:
// standard match semantics, unanchored searches, automatic backend
// selection, prefilter and byte classes on.
func DefaultConfig() Config {
	return Config{
		MatchKind:   automaton.MatchKindStandard,
		StartKind:   automaton.StartKindUnanchored,
		Kind:        KindAuto,
		Prefilter:   true,
		DenseDepth:  noncontiguous.DefaultDenseDepth,
		ByteClasses: true,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of range.
//
// Valid ranges:
//   - MatchKind, StartKind, Kind: one of the declared constants
//   - DenseDepth: -1 or more
func (c Config) Validate() error {
	switch c.MatchKind {
	case automaton.MatchKindStandard, automaton.MatchKindLeftmostFirst, automaton.MatchKindLeftmostLongest:
	default:
		return &ConfigError{Field: "MatchKind", Message: "unknown match kind " + c.MatchKind.String()}
	}

	switch c.StartKind {
	case automaton.StartKindUnanchored, automaton.StartKindAnchored, automaton.StartKindBoth:
	default:
		return &ConfigError{Field: "StartKind", Message: "unknown start kind " + c.StartKind.String()}
	}

	if c.Kind > KindDFA {
		return &ConfigError{Field: "Kind", Message: "unknown kind " + c.Kind.String()}
	}

	if c.DenseDepth < -1 {
		return &ConfigError{Field: "DenseDepth", Message: "must be -1 (disabled) or a depth >= 0"}
	}

	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "acmatch: invalid config: " + e.Field + ": " + e.Message
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
