package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_Basic(t *testing.T) {
	s := New(100)

	assert.False(t, s.Contains(0))

	assert.True(t, s.Insert(5), "first insert")
	assert.True(t, s.Contains(5))
	assert.False(t, s.Insert(5), "duplicate insert")

	assert.True(t, s.Insert(0))
	assert.True(t, s.Insert(99))
	for _, v := range []uint32{5, 0, 99} {
		assert.True(t, s.Contains(v), "value %d", v)
	}
	assert.False(t, s.Contains(1))
}

func TestSet_StaleSparseEntries(t *testing.T) {
	s := New(16)
	// Fresh sparse slots are zero and so point at dense[0]; only a matching
	// dense entry makes a value a member.
	assert.True(t, s.Insert(9))
	assert.False(t, s.Contains(0))
	assert.False(t, s.Contains(3))
	assert.True(t, s.Insert(3))
	assert.True(t, s.Contains(3))
}

func TestSet_OutOfRange(t *testing.T) {
	s := New(4)

	assert.False(t, s.Contains(4))
	assert.False(t, s.Contains(1<<31))
	assert.Panics(t, func() { s.Insert(4) })
}

func TestSet_ZeroCapacity(t *testing.T) {
	s := New(0)
	assert.False(t, s.Contains(0))
}
