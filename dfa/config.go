package dfa

import (
	"log/slog"

	"github.com/coregx/acmatch/automaton"
	"github.com/coregx/acmatch/nfa/noncontiguous"
)

// Config controls DFA construction.
//
// Example:
//
//	cfg := dfa.DefaultConfig()
//	cfg.StartKind = automaton.StartKindBoth
//	d, err := dfa.NewWithConfig(cfg, patterns)
type Config struct {
	// MatchKind selects the match semantics.
	// Default: MatchKindStandard
	MatchKind automaton.MatchKind

	// ASCIICaseInsensitive makes ASCII letters match either case.
	// Default: false
	ASCIICaseInsensitive bool

	// Prefilter enables building a prefilter alongside the automaton.
	// Default: true
	Prefilter bool

	// StartKind selects which searches the DFA supports. StartKindBoth
	// roughly doubles the transition table, since anchored searches need
	// their own copy of every state without failure transitions.
	// Default: StartKindUnanchored
	StartKind automaton.StartKind

	// ByteClasses indexes rows by byte class instead of by byte. Turning it
	// off makes every row 256 entries wide.
	// Default: true
	ByteClasses bool

	// Logger receives construction details at Debug level. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the default DFA configuration.
func DefaultConfig() Config {
	return Config{
		MatchKind:   automaton.MatchKindStandard,
		Prefilter:   true,
		StartKind:   automaton.StartKindUnanchored,
		ByteClasses: true,
	}
}

func (c Config) noncontiguous() noncontiguous.Config {
	cfg := noncontiguous.DefaultConfig()
	cfg.MatchKind = c.MatchKind
	cfg.ASCIICaseInsensitive = c.ASCIICaseInsensitive
	cfg.Prefilter = c.Prefilter
	cfg.Logger = c.Logger
	return cfg
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
