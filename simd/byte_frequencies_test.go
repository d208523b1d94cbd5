package simd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByteRank(t *testing.T) {
	assert.Greater(t, ByteRank(' '), ByteRank('z'), "space is more common than z")
	assert.Greater(t, ByteRank('e'), ByteRank('q'))
	assert.Less(t, ByteRank('Z'), ByteRank('a'))
	assert.Equal(t, byte(255), ByteRank(' '))
}

func TestSelectRareBytes(t *testing.T) {
	tests := []struct {
		needle    string
		wantByte1 byte
	}{
		{"hello", 'h'},
		{"quick", 'q'},
		{"ZZZ@", 'Z'},
		{"a", 'a'},
	}
	for _, tt := range tests {
		t.Run(tt.needle, func(t *testing.T) {
			info := SelectRareBytes([]byte(tt.needle))
			assert.Equal(t, tt.wantByte1, info.Byte1)
			assert.Equal(t, tt.needle[info.Index1], info.Byte1)
			assert.Equal(t, tt.needle[info.Index2], info.Byte2)
		})
	}
}
