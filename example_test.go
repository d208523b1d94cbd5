package acmatch_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/coregx/acmatch"
)

// ExampleNew demonstrates finding every non-overlapping match.
func ExampleNew() {
	ac, err := acmatch.New([]string{"apple", "maple", "Snapple"})
	if err != nil {
		panic(err)
	}

	for _, m := range ac.FindAllString("Nobody likes maple in their apple flavored Snapple.") {
		fmt.Println(m.Pattern(), m.Span())
	}
	// Output:
	// 1 13..18
	// 0 28..33
	// 2 43..50
}

// ExampleNewWithConfig demonstrates leftmost-longest match semantics.
func ExampleNewWithConfig() {
	cfg := acmatch.DefaultConfig()
	cfg.MatchKind = acmatch.MatchKindLeftmostLongest
	ac, err := acmatch.NewWithConfig([]string{"Sam", "Samwise"}, cfg)
	if err != nil {
		panic(err)
	}

	m, ok := ac.FindString("Samwise")
	fmt.Println(ok, m.Pattern(), m.Span())
	// Output: true 1 0..7
}

// ExampleAhoCorasick_IsMatchString demonstrates case insensitive matching.
func ExampleAhoCorasick_IsMatchString() {
	cfg := acmatch.DefaultConfig()
	cfg.ASCIICaseInsensitive = true
	ac, err := acmatch.NewWithConfig([]string{"needle"}, cfg)
	if err != nil {
		panic(err)
	}

	fmt.Println(ac.IsMatchString("a NeEdLe in a haystack"))
	// Output: true
}

// ExampleAhoCorasick_FindAllOverlapping demonstrates overlapping matches.
func ExampleAhoCorasick_FindAllOverlapping() {
	ac := acmatch.MustNew([]string{"append", "appendage", "app"})

	ms, err := ac.FindAllOverlapping([]byte("append the app to the appendage"))
	if err != nil {
		panic(err)
	}
	for _, m := range ms {
		fmt.Println(m.Pattern(), m.Span())
	}
	// Output:
	// 2 0..3
	// 0 0..6
	// 2 11..14
	// 2 22..25
	// 0 22..28
	// 1 22..31
}

// ExampleAhoCorasick_ReplaceAll demonstrates replacing each pattern.
func ExampleAhoCorasick_ReplaceAll() {
	ac := acmatch.MustNew([]string{"apple", "maple", "Snapple"})

	out, err := ac.ReplaceAll("Nobody likes maple in their apple flavored Snapple.",
		[]string{"fruit", "fruit", "drink"})
	if err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output: Nobody likes fruit in their fruit flavored drink.
}

// ExampleAhoCorasick_StreamReplaceAll demonstrates replacing while copying
// from a reader to a writer.
func ExampleAhoCorasick_StreamReplaceAll() {
	ac := acmatch.MustNew([]string{"fox", "brown", "quick"})

	err := ac.StreamReplaceAll(strings.NewReader("The quick brown fox."), os.Stdout,
		[][]byte{[]byte("sloth"), []byte("grey"), []byte("slow")})
	if err != nil {
		panic(err)
	}
	// Output: The slow grey sloth.
}
