package automaton

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptyReader struct{}

func (emptyReader) Read([]byte) (int, error) { return 0, nil }

func TestRollingBuffer(t *testing.T) {
	buf := newRollingBuffer(4)
	assert.Equal(t, 4, buf.minLen())
	assert.GreaterOrEqual(t, len(buf.buf), defaultBufferCapacity)

	more, err := buf.fill(iotest.OneByteReader(bytes.NewReader([]byte("abcdefgh"))))
	require.NoError(t, err)
	require.True(t, more)
	assert.Equal(t, "abcd", string(buf.bytes()), "fill stops once minLen bytes are buffered")

	buf.roll()
	assert.Equal(t, "abcd", string(buf.bytes()), "roll keeps the trailing minLen bytes")
}

func TestRollingBufferShortStream(t *testing.T) {
	buf := newRollingBuffer(8)
	more, err := buf.fill(bytes.NewReader([]byte("abc")))
	require.NoError(t, err)
	assert.True(t, more)
	assert.Equal(t, "abc", string(buf.bytes()))

	more, err = buf.fill(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.False(t, more)
	assert.Panics(t, buf.roll, "rolling below minLen is an internal bug")
}

func TestRollingBufferRollKeepsTail(t *testing.T) {
	buf := newRollingBuffer(3)
	_, err := buf.fill(bytes.NewReader([]byte("0123456789")))
	require.NoError(t, err)
	require.Equal(t, "0123456789", string(buf.bytes()))
	buf.roll()
	assert.Equal(t, "789", string(buf.bytes()))
}

func TestRollingBufferErrors(t *testing.T) {
	boom := errors.New("boom")
	buf := newRollingBuffer(4)
	_, err := buf.fill(iotest.ErrReader(boom))
	assert.ErrorIs(t, err, boom)

	buf = newRollingBuffer(4)
	_, err = buf.fill(emptyReader{})
	assert.ErrorIs(t, err, io.ErrNoProgress)

	buf = newRollingBuffer(4)
	more, err := buf.fill(iotest.TimeoutReader(iotest.OneByteReader(bytes.NewReader([]byte("abcdef")))))
	assert.ErrorIs(t, err, iotest.ErrTimeout)
	assert.True(t, more, "bytes read before the error are kept")
	assert.Equal(t, "a", string(buf.bytes()))
}
