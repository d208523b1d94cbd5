package simd

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemchr(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   byte
		want     int
	}{
		{"empty_haystack", "", 'a', -1},
		{"single_match", "a", 'a', 0},
		{"single_no_match", "a", 'b', -1},
		{"first_position", "hello", 'h', 0},
		{"last_position", "hello", 'o', 4},
		{"multiple_returns_first", "hello world", 'o', 4},
		{"null_byte", "\x01\x02\x00\x00", 0, 2},
		{"high_byte", "\x01\x02\xff\x04", 0xff, 2},
		{"past_first_word", "the quick brown fox jumps over the lazy dog", 'z', 37},
		{"tail_after_words", "0123456789abcdefX", 'X', 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Memchr([]byte(tt.haystack), tt.needle)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, bytes.IndexByte([]byte(tt.haystack), tt.needle), got)
		})
	}
}

// TestMemchrSizes places the needle at every offset of haystacks around the
// word size, so each of the short, word and tail loops finds it.
func TestMemchrSizes(t *testing.T) {
	for _, size := range []int{1, 7, 8, 9, 15, 16, 17, 63, 64, 65} {
		for pos := 0; pos < size; pos++ {
			haystack := bytes.Repeat([]byte{'.'}, size)
			haystack[pos] = 'x'
			if pos+1 < size {
				haystack[size-1] = 'x'
			}
			name := fmt.Sprintf("size_%d_pos_%d", size, pos)
			assert.Equal(t, pos, Memchr(haystack, 'x'), name)
			assert.Equal(t, pos, Memchr2(haystack, 'y', 'x'), name)
			assert.Equal(t, pos, Memchr3(haystack, 'y', 'z', 'x'), name)
		}
		haystack := bytes.Repeat([]byte{'.'}, size)
		assert.Equal(t, -1, Memchr(haystack, 'x'))
		assert.Equal(t, -1, Memchr2(haystack, 'x', 'y'))
		assert.Equal(t, -1, Memchr3(haystack, 'x', 'y', 'z'))
	}
}

func TestMemchr2(t *testing.T) {
	tests := []struct {
		haystack string
		n1, n2   byte
		want     int
	}{
		{"", 'a', 'b', -1},
		{"hello", 'l', 'o', 2},
		{"hello", 'o', 'l', 2},
		{"hello world, again and again", 'g', 'w', 6},
		{"abcdefghijklmnop", 'x', 'p', 15},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Memchr2([]byte(tt.haystack), tt.n1, tt.n2), "%q", tt.haystack)
	}
}

func TestMemchr3(t *testing.T) {
	tests := []struct {
		haystack   string
		n1, n2, n3 byte
		want       int
	}{
		{"", 'a', 'b', 'c', -1},
		{"hello", 'x', 'y', 'o', 4},
		{"a long haystack without the bytes", 'X', 'Y', 'Z', -1},
		{"a long haystack with a Z late in it", 'X', 'Y', 'Z', 23},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Memchr3([]byte(tt.haystack), tt.n1, tt.n2, tt.n3), "%q", tt.haystack)
	}
}

func FuzzMemchr3(f *testing.F) {
	f.Add([]byte("hello world"), byte('o'), byte('w'), byte('z'))
	f.Add([]byte{}, byte(0), byte(1), byte(2))
	f.Fuzz(func(t *testing.T, haystack []byte, n1, n2, n3 byte) {
		want := -1
		for i, b := range haystack {
			if b == n1 || b == n2 || b == n3 {
				want = i
				break
			}
		}
		if got := Memchr3(haystack, n1, n2, n3); got != want {
			t.Errorf("Memchr3(%q, %q, %q, %q) = %d, want %d", haystack, n1, n2, n3, got, want)
		}
	})
}

func BenchmarkMemchr(b *testing.B) {
	for _, size := range []int{64, 4096, 65536} {
		haystack := bytes.Repeat([]byte("abcdefgh"), size/8)
		haystack[len(haystack)-1] = 'z'
		b.Run(fmt.Sprintf("%d", size), func(b *testing.B) {
			b.SetBytes(int64(size))
			for i := 0; i < b.N; i++ {
				Memchr(haystack, 'z')
			}
		})
	}
}
