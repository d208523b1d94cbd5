package searchtest

// M is an expected match: pattern ID and span.
type M struct {
	Pattern int
	Start   int
	End     int
}

// Case is one search fixture.
type Case struct {
	Name     string
	Patterns []string
	Haystack string
	Want     []M
}

// Basics hold for every match kind.
var Basics = []Case{
	{"no_patterns", nil, "abc", nil},
	{"empty_pattern_empty_haystack", []string{""}, "", []M{{0, 0, 0}}},
	{"empty_pattern", []string{""}, "a", []M{{0, 0, 0}, {0, 1, 1}}},
	{"empty_pattern_every_offset", []string{""}, "abc", []M{{0, 0, 0}, {0, 1, 1}, {0, 2, 2}, {0, 3, 3}}},
	{"single_empty_haystack", []string{"a"}, "", nil},
	{"single", []string{"a"}, "a", []M{{0, 0, 1}}},
	{"single_repeated", []string{"a"}, "aa", []M{{0, 0, 1}, {0, 1, 2}}},
	{"single_three", []string{"a"}, "aaa", []M{{0, 0, 1}, {0, 1, 2}, {0, 2, 3}}},
	{"single_gap", []string{"a"}, "aba", []M{{0, 0, 1}, {0, 2, 3}}},
	{"single_late", []string{"a"}, "bba", []M{{0, 2, 3}}},
	{"single_absent", []string{"a"}, "bbb", nil},
	{"single_scattered", []string{"a"}, "bababbbba", []M{{0, 1, 2}, {0, 3, 4}, {0, 8, 9}}},
	{"double_empty_haystack", []string{"aa"}, "", nil},
	{"double", []string{"aa"}, "aa", []M{{0, 0, 2}}},
	{"double_twice", []string{"aa"}, "aabbaa", []M{{0, 0, 2}, {0, 4, 6}}},
	{"double_absent", []string{"aa"}, "abbab", nil},
	{"double_late", []string{"aa"}, "abbabaa", []M{{0, 5, 7}}},
	{"triple", []string{"abc"}, "abc", []M{{0, 0, 3}}},
	{"triple_after_false_starts", []string{"abc"}, "zazabzabcz", []M{{0, 6, 9}}},
	{"triple_twice", []string{"abc"}, "zazabczabcz", []M{{0, 3, 6}, {0, 7, 10}}},
	{"two_singles", []string{"a", "b"}, "abba", []M{{0, 0, 1}, {1, 1, 2}, {1, 2, 3}, {0, 3, 4}}},
	{"two_singles_swapped", []string{"b", "a"}, "abba", []M{{1, 0, 1}, {0, 1, 2}, {0, 2, 3}, {1, 3, 4}}},
	{"suffix_only", []string{"abc", "bc"}, "xbc", []M{{1, 1, 3}}},
	{"two_words_empty", []string{"foo", "bar"}, "", nil},
	{"two_words_adjacent", []string{"foo", "bar"}, "foobarfoo", []M{{0, 0, 3}, {1, 3, 6}, {0, 6, 9}}},
	{"two_words_spaced", []string{"foo", "bar"}, "bar foo bar", []M{{1, 0, 3}, {0, 4, 7}, {1, 8, 11}}},
	{"three_singles", []string{"a", "b", "c"}, "xyzabcabc", []M{{0, 3, 4}, {1, 4, 5}, {2, 5, 6}, {0, 6, 7}, {1, 7, 8}, {2, 8, 9}}},
	{"names", []string{"Sherlock", "Watson"}, "Sherlock Holmes and Dr. Watson", []M{{0, 0, 8}, {1, 24, 30}}},
	{"nested_suffixes", []string{"abcd", "bcd", "cd"}, "abcd", []M{{0, 0, 4}}},
	{"nested_suffixes_last", []string{"bcd", "cd", "abcd"}, "abcd", []M{{2, 0, 4}}},
	{"high_bytes", []string{"\xff\xfe", "\x00"}, "a\xff\xfe\x00", []M{{0, 1, 3}, {1, 3, 4}}},
}

// Standard hold for MatchKindStandard: the first match state entered
// wins.
var Standard = []Case{
	{"prefix_first", []string{"a", "ab"}, "ab", []M{{0, 0, 1}}},
	{"shorter_ends_first", []string{"abc", "b"}, "xabcx", []M{{1, 2, 3}}},
	{"later_pattern_ends_first", []string{"ab", "a"}, "ab", []M{{1, 0, 1}}},
	{"own_match_first", []string{"he", "she", "his", "hers"}, "she", []M{{1, 0, 3}}},
	{"inherited_match", []string{"abcdefg", "bcde", "bcdef"}, "abcdef", []M{{1, 1, 5}}},
	{"prefix_word", []string{"foo", "foobar"}, "foobar", []M{{0, 0, 3}}},
	{"inner_match", []string{"abcd", "b", "bce"}, "abce", []M{{1, 1, 2}}},
	{"empty_and_single", []string{"", "a"}, "a", []M{{0, 0, 0}, {0, 1, 1}}},
}

// LeftmostFirst hold for MatchKindLeftmostFirst: the leftmost match wins,
// ties broken by pattern order.
var LeftmostFirst = []Case{
	{"prefix_first", []string{"a", "ab"}, "ab", []M{{0, 0, 1}}},
	{"longer_first", []string{"ab", "a"}, "ab", []M{{0, 0, 2}}},
	{"leftmost_wins", []string{"abc", "b"}, "xabcx", []M{{0, 1, 4}}},
	{"priority_at_same_start", []string{"abcd", "b", "bce"}, "abce", []M{{1, 1, 2}}},
	{"prefix_word", []string{"foo", "foobar"}, "foobar", []M{{0, 0, 3}}},
	{"suffix_priority", []string{"abcdefg", "bcde", "bcdef"}, "abcdef", []M{{1, 1, 5}}},
	{"empty_first", []string{"", "a"}, "a", []M{{0, 0, 0}, {0, 1, 1}}},
	{"samwise", []string{"Sam", "Samwise"}, "Samwise", []M{{0, 0, 3}}},
	{"repeated", []string{"ab", "abab"}, "ababab", []M{{0, 0, 2}, {0, 2, 4}, {0, 4, 6}}},
}

// LeftmostLongest hold for MatchKindLeftmostLongest: the leftmost match
// wins, ties broken by length.
var LeftmostLongest = []Case{
	{"prefix_longest", []string{"a", "ab"}, "ab", []M{{1, 0, 2}}},
	{"longer_first", []string{"ab", "a"}, "ab", []M{{0, 0, 2}}},
	{"leftmost_wins", []string{"abc", "b"}, "xabcx", []M{{0, 1, 4}}},
	{"longest_at_same_start", []string{"abcd", "b", "bce"}, "abce", []M{{2, 1, 4}}},
	{"prefix_word", []string{"foo", "foobar"}, "foobar", []M{{1, 0, 6}}},
	{"suffix_longest", []string{"abcdefg", "bcde", "bcdef"}, "abcdef", []M{{2, 1, 6}}},
	{"chain", []string{"a", "ab", "abc"}, "abcd", []M{{2, 0, 3}}},
	{"empty_then_longer", []string{"", "a"}, "a", []M{{1, 0, 1}}},
	{"samwise", []string{"Sam", "Samwise"}, "Samwise", []M{{1, 0, 7}}},
	{"repeated", []string{"ab", "abab"}, "ababab", []M{{1, 0, 4}, {0, 4, 6}}},
}

// Overlapping hold for overlapping search with MatchKindStandard. Matches
// ending at the same offset are listed in match-list order.
var Overlapping = []Case{
	{"appendage", []string{"append", "appendage", "app"}, "append the app to the appendage",
		[]M{{2, 0, 3}, {0, 0, 6}, {2, 11, 14}, {2, 22, 25}, {0, 22, 28}, {1, 22, 31}}},
	{"duplicates", []string{"a", "a"}, "a", []M{{0, 0, 1}, {1, 0, 1}}},
	{"nested_suffixes", []string{"abcd", "bcd", "cd", "b"}, "abcd", []M{{3, 1, 2}, {0, 0, 4}, {1, 1, 4}, {2, 2, 4}}},
	{"empty_and_single", []string{"", "a"}, "a", []M{{0, 0, 0}, {1, 0, 1}, {0, 1, 1}}},
	{"empty_every_offset", []string{""}, "ab", []M{{0, 0, 0}, {0, 1, 1}, {0, 2, 2}}},
	{"self_overlap", []string{"a", "aa"}, "aaa", []M{{0, 0, 1}, {1, 0, 2}, {0, 1, 2}, {1, 1, 3}, {0, 2, 3}}},
	{"he_she", []string{"he", "she", "his", "hers"}, "ushers", []M{{1, 1, 4}, {0, 2, 4}, {3, 2, 6}}},
	{"absent", []string{"abc"}, "ab", nil},
}

// Anchored hold for anchored non-overlapping iteration with every match
// kind: each match must start where the previous one ended.
var Anchored = []Case{
	{"repeated", []string{"a"}, "aa", []M{{0, 0, 1}, {0, 1, 2}}},
	{"not_at_start", []string{"a"}, "ba", nil},
	{"later_start_rejected", []string{"b"}, "ab", nil},
	{"adjacent", []string{"a", "b"}, "ab", []M{{0, 0, 1}, {1, 1, 2}}},
	{"leftmost_not_at_start", []string{"abc", "b"}, "xabcx", nil},
	{"stops_at_gap", []string{"foo", "bar"}, "foobar foo", []M{{0, 0, 3}, {1, 3, 6}}},
}

// AnchoredStandard hold for anchored iteration with MatchKindStandard.
var AnchoredStandard = []Case{
	{"inherited_match_discarded", []string{"abcd", "bc"}, "abcd", []M{{0, 0, 4}}},
	{"prefix_first", []string{"a", "ab"}, "ab", []M{{0, 0, 1}}},
}

// CaseInsensitive hold for ASCII case-insensitive automata of every kind.
var CaseInsensitive = []Case{
	{"upper_haystack", []string{"abc"}, "ABC", []M{{0, 0, 3}}},
	{"mixed", []string{"abc"}, "aBc xAbC", []M{{0, 0, 3}, {0, 5, 8}}},
	{"mixed_pattern", []string{"AbC"}, "abc", []M{{0, 0, 3}}},
	{"digits_untouched", []string{"a1"}, "A1 a1", []M{{0, 0, 2}, {0, 3, 5}}},
	{"non_ascii_untouched", []string{"\xe9t\xe9"}, "\xc9T\xc9 \xe9T\xe9", []M{{0, 4, 7}}},
	{"many_start_bytes", []string{"foo", "bar", "baz"}, "FOO BaR bAZ", []M{{0, 0, 3}, {1, 4, 7}, {2, 8, 11}}},
}
