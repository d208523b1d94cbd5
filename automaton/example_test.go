package automaton_test

import (
	"fmt"
	"strings"

	"github.com/coregx/acmatch/automaton"
	"github.com/coregx/acmatch/nfa/noncontiguous"
)

func ExampleFind() {
	nfa, err := noncontiguous.New([]string{"Samwise", "Sam"})
	if err != nil {
		panic(err)
	}
	m, ok, err := automaton.Find(nfa, automaton.NewInputString("Samwise Gamgee"))
	if err != nil {
		panic(err)
	}
	fmt.Println(ok, m.Pattern(), m.Span())
	// Output: true 1 0..3
}

func ExampleNewFindOverlappingIter() {
	nfa, err := noncontiguous.New([]string{"append", "appendage", "app"})
	if err != nil {
		panic(err)
	}
	it, err := automaton.NewFindOverlappingIter(nfa, automaton.NewInputString("appendage"))
	if err != nil {
		panic(err)
	}
	for m := range it.All() {
		fmt.Println(m.Pattern(), m.Span())
	}
	// Output:
	// 2 0..3
	// 0 0..6
	// 1 0..9
}

func ExampleStreamReplaceAll() {
	nfa, err := noncontiguous.New([]string{"fox", "dog"})
	if err != nil {
		panic(err)
	}
	var out strings.Builder
	err = automaton.StreamReplaceAll(nfa, strings.NewReader("the quick brown fox jumps over the lazy dog"), &out,
		[][]byte{[]byte("cat"), []byte("mouse")})
	if err != nil {
		panic(err)
	}
	fmt.Println(out.String())
	// Output: the quick brown cat jumps over the lazy mouse
}
