package prefilter_test

import (
	"fmt"

	"github.com/coregx/acmatch/automaton"
	"github.com/coregx/acmatch/prefilter"
)

func ExampleBuilder() {
	b := prefilter.NewBuilder(prefilter.Config{MatchKind: automaton.MatchKindStandard})
	b.Add([]byte("foo"))
	b.Add([]byte("bar"))
	pre := b.Build()

	haystack := []byte("a barrel of fools")
	pos, ok := pre.FindIn(haystack, automaton.Span{Start: 0, End: len(haystack)}).Position()
	fmt.Println(pos, ok)
	// Output: 2 true
}

func ExampleMemmem() {
	pre := prefilter.NewMemmem([]byte("fox"))
	haystack := []byte("the quick brown fox")
	m, ok := pre.FindIn(haystack, automaton.Span{Start: 0, End: len(haystack)}).Match()
	fmt.Println(m.Span(), ok)
	// Output: 16..19 true
}
