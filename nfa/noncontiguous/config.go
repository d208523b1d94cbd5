package noncontiguous

import (
	"log/slog"

	"github.com/coregx/acmatch/automaton"
)

// DefaultDenseDepth is the default depth up to which states get a dense row.
const DefaultDenseDepth = 3

// Config controls NFA construction.
//
// Example:
//
//	cfg := noncontiguous.DefaultConfig()
//	cfg.MatchKind = automaton.MatchKindLeftmostFirst
//	nfa, err := noncontiguous.NewWithConfig(cfg, patterns)
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

	// DenseDepth is the trie depth up to which states get a dense
	// transition row. The start states have depth 0; a negative value
	// disables dense rows. Larger values trade memory for search speed.
	// Default: 3
	DenseDepth int

	// Logger receives construction details at Debug level. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the default NFA configuration.
func DefaultConfig() Config {
	return Config{
		MatchKind:  automaton.MatchKindStandard,
		Prefilter:  true,
		DenseDepth: DefaultDenseDepth,
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
