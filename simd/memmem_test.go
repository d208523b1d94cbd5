package simd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemmem(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		want     int
	}{
		{"empty_needle", "hello", "", 0},
		{"empty_haystack", "", "x", -1},
		{"both_empty", "", "", 0},
		{"single_byte", "hello", "e", 1},
		{"at_start", "hello world", "hello", 0},
		{"at_end", "hello world", "world", 6},
		{"in_middle", "hello world", "lo wo", 3},
		{"not_found", "hello world", "xyz", -1},
		{"needle_too_long", "hi", "hello", -1},
		{"overlapping", "aaaa", "aa", 0},
		{"repeated_prefix", "aaaaabaaaa", "ab", 4},
		{"http", "GET /index.html HTTP/1.1", "HTTP", 16},
		{"rare_byte_near_end", "zzzzzzzzq", "zq", 7},
		{"rare_byte_before_start", "qzzzzzzzzzzq", "zzq", 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Memmem([]byte(tt.haystack), []byte(tt.needle))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, bytes.Index([]byte(tt.haystack), []byte(tt.needle)), got)
		})
	}
}

func TestFinder(t *testing.T) {
	f := NewFinder([]byte("Sherlock"))
	assert.Equal(t, []byte("Sherlock"), f.Needle())

	haystack := []byte("Mr. Sherlock Holmes, Sherlock")
	assert.Equal(t, 4, f.Find(haystack))
	assert.Equal(t, 21, 5+f.Find(haystack[5:]))
	assert.Equal(t, -1, f.Find([]byte("Sherloc")))
}

func FuzzMemmem(f *testing.F) {
	f.Add([]byte("hello world"), []byte("wor"))
	f.Add([]byte("aaaaab"), []byte("aab"))
	f.Fuzz(func(t *testing.T, haystack, needle []byte) {
		if got, want := Memmem(haystack, needle), bytes.Index(haystack, needle); got != want {
			t.Errorf("Memmem(%q, %q) = %d, want %d", haystack, needle, got, want)
		}
	})
}
