package contiguous

import (
	"bytes"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/acmatch/automaton"
	"github.com/coregx/acmatch/internal/searchtest"
	"github.com/coregx/acmatch/nfa/noncontiguous"
)

func toBytes(patterns []string) [][]byte {
	out := make([][]byte, len(patterns))
	for i, p := range patterns {
		out[i] = []byte(p)
	}
	return out
}

func builder(mod func(*Config)) searchtest.BuildFunc {
	return func(opts searchtest.Options, patterns []string) (automaton.Automaton, error) {
		cfg := DefaultConfig()
		cfg.MatchKind = opts.MatchKind
		cfg.ASCIICaseInsensitive = opts.ASCIICaseInsensitive
		cfg.Prefilter = opts.Prefilter
		if mod != nil {
			mod(&cfg)
		}
		return NewWithConfig(cfg, toBytes(patterns))
	}
}

func TestSearch(t *testing.T) {
	searchtest.Run(t, builder(nil))
}

func TestEncodings(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"all_sparse", func(c *Config) { c.DenseDepth = -1 }},
		{"all_dense", func(c *Config) { c.DenseDepth = 100 }},
		{"no_byte_classes", func(c *Config) { c.ByteClasses = false }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			build := builder(tt.mod)
			opts := searchtest.Options{MatchKind: automaton.MatchKindStandard}
			searchtest.RunFindIter(t, build, opts, slices.Concat(searchtest.Basics, searchtest.Standard))
			searchtest.RunOverlapping(t, build, opts, searchtest.Overlapping)
			opts.MatchKind = automaton.MatchKindLeftmostLongest
			searchtest.RunFindIter(t, build, opts, slices.Concat(searchtest.Basics, searchtest.LeftmostLongest))
			searchtest.RunAnchored(t, build, opts, searchtest.Anchored)
		})
	}
}

// TestMirrorsNoncontiguous walks both NFAs in lockstep and checks that they
// agree on every state they visit.
func TestMirrorsNoncontiguous(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	for range 50 {
		patterns := make([]string, 1+rng.IntN(20))
		for i := range patterns {
			patterns[i] = randString(rng, 1+rng.IntN(6))
		}
		haystack := randString(rng, 60)

		for _, kind := range []automaton.MatchKind{automaton.MatchKindStandard, automaton.MatchKindLeftmostFirst} {
			ncfg := noncontiguous.DefaultConfig()
			ncfg.MatchKind = kind
			nnfa, err := noncontiguous.NewWithConfig(ncfg, toBytes(patterns))
			require.NoError(t, err)
			cnfa, err := FromNoncontiguous(DefaultConfig(), nnfa)
			require.NoError(t, err)

			for _, anchored := range []automaton.Anchored{automaton.AnchoredNo, automaton.AnchoredYes} {
				nsid, _ := nnfa.StartState(anchored)
				csid, _ := cnfa.StartState(anchored)
				for i := range len(haystack) {
					nsid = nnfa.NextState(anchored, nsid, haystack[i])
					csid = cnfa.NextState(anchored, csid, haystack[i])
					require.Equal(t, nnfa.IsDead(nsid), cnfa.IsDead(csid))
					require.Equal(t, nnfa.IsMatch(nsid), cnfa.IsMatch(csid))
					require.Equal(t, nnfa.IsSpecial(nsid), cnfa.IsSpecial(csid))
					require.Equal(t, nnfa.MatchLen(nsid), cnfa.MatchLen(csid))
					for j := range nnfa.MatchLen(nsid) {
						require.Equal(t, nnfa.MatchPattern(nsid, j), cnfa.MatchPattern(csid, j))
					}
				}
			}
		}
	}
}

func TestLayout(t *testing.T) {
	nfa, err := New([]string{"he", "she", "his", "hers", ""})
	require.NoError(t, err)

	states := slices.Collect(nfa.States())
	require.NotEmpty(t, states)
	assert.Equal(t, Dead, states[0])
	assert.NotContains(t, states, Fail)
	assert.Equal(t, nfa.Len()-1, len(states), "every state but the fail sentinel is encoded")

	uid, _ := nfa.StartState(automaton.AnchoredNo)
	aid, _ := nfa.StartState(automaton.AnchoredYes)
	assert.True(t, nfa.IsMatch(uid), "the empty pattern makes the start states match")
	assert.True(t, nfa.IsMatch(aid))
	for _, sid := range states {
		if sid != Dead {
			assert.Positive(t, nfa.MatchLen(sid), "every state reports the empty pattern")
		}
	}
	for b := range 256 {
		assert.Equal(t, Dead, nfa.NextState(automaton.AnchoredNo, Dead, byte(b)))
	}
}

func TestSingleAndMultiMatchEncoding(t *testing.T) {
	nfa, err := New([]string{"abc", "bc", "c"})
	require.NoError(t, err)

	sid, _ := nfa.StartState(automaton.AnchoredYes)
	var got [][]automaton.PatternID
	for _, b := range []byte("abc") {
		sid = nfa.NextState(automaton.AnchoredYes, sid, b)
		var pids []automaton.PatternID
		for i := range nfa.MatchLen(sid) {
			pids = append(pids, nfa.MatchPattern(sid, i))
		}
		got = append(got, pids)
	}
	assert.Equal(t, [][]automaton.PatternID{nil, nil, {0, 1, 2}}, got)

	sid, _ = nfa.StartState(automaton.AnchoredYes)
	sid = nfa.NextState(automaton.AnchoredYes, sid, 'c')
	assert.Equal(t, 1, nfa.MatchLen(sid))
	assert.Equal(t, automaton.PatternID(2), nfa.MatchPattern(sid, 0))
}

func TestSmallerThanNoncontiguous(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	patterns := make([]string, 1000)
	for i := range patterns {
		patterns[i] = randString(rng, 8+rng.IntN(8))
	}
	ncfg := noncontiguous.DefaultConfig()
	ncfg.Prefilter = false
	nnfa, err := noncontiguous.NewWithConfig(ncfg, toBytes(patterns))
	require.NoError(t, err)
	cnfa, err := FromNoncontiguous(DefaultConfig(), nnfa)
	require.NoError(t, err)
	assert.Less(t, cnfa.MemoryUsage(), nnfa.MemoryUsage())
}

func TestTransitions(t *testing.T) {
	nfa, err := New([]string{"ab"})
	require.NoError(t, err)
	aid, _ := nfa.StartState(automaton.AnchoredYes)

	var bs []byte
	for b := range nfa.Transitions(aid) {
		bs = append(bs, b)
	}
	assert.Equal(t, []byte("a"), bs, "the anchored start state only has trie edges")

	uid, _ := nfa.StartState(automaton.AnchoredNo)
	n := 0
	for range nfa.Transitions(uid) {
		n++
	}
	assert.Equal(t, 256, n, "the unanchored start state loops on every byte")
}

func TestString(t *testing.T) {
	nfa, err := New([]string{"ab", "b"})
	require.NoError(t, err)
	out := nfa.String()
	assert.True(t, strings.HasPrefix(out, "contiguous.NFA(\n"))
	assert.Contains(t, out, "D 000000(000000): \\x00-\\xFF => 0\n")
	assert.Contains(t, out, "F 000001:\n")
	assert.Contains(t, out, "matches: 0, 1")
	assert.Contains(t, out, "alphabet length: 4")
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err := NewWithConfig(cfg, toBytes([]string{"foo"}))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "noncontiguous NFA built")
	assert.Contains(t, buf.String(), "contiguous NFA built")
}

func randString(rng *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = "abcd"[rng.IntN(4)]
	}
	return string(b)
}

func BenchmarkFind(b *testing.B) {
	nfa, err := New([]string{"Sherlock", "Watson", "Moriarty", "Hudson"})
	if err != nil {
		b.Fatal(err)
	}
	haystack := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 1000)
	b.SetBytes(int64(len(haystack)))
	b.ResetTimer()
	for range b.N {
		if _, _, err := automaton.Find(nfa, automaton.NewInput(haystack)); err != nil {
			b.Fatal(err)
		}
	}
}
