package contiguous

import (
	"log/slog"

	"github.com/coregx/acmatch/automaton"
	"github.com/coregx/acmatch/nfa/noncontiguous"
)

// DefaultDenseDepth is the default depth up to which states are encoded
// densely.
const DefaultDenseDepth = 2

// Config controls contiguous NFA construction.
//
// MatchKind, ASCIICaseInsensitive and Prefilter only apply when the NFA is
// built from patterns; FromNoncontiguous inherits them from its input.
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

	// DenseDepth is the trie depth up to which states get a dense row.
	// Deeper states use a sparse encoding unless they have too many
	// transitions for one.
	// Default: 2
	DenseDepth int

	// ByteClasses indexes dense rows by byte class instead of by byte.
	// Turning it off makes every dense row 256 entries wide.
	// Default: true
	ByteClasses bool

	// Logger receives construction details at Debug level. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the default contiguous NFA configuration.
func DefaultConfig() Config {
	return Config{
		MatchKind:   automaton.MatchKindStandard,
		Prefilter:   true,
		DenseDepth:  DefaultDenseDepth,
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
