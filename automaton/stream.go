package automaton

import (
	"errors"
	"io"
)

const (
	// defaultBufferCapacity is the minimum capacity of a stream buffer.
	defaultBufferCapacity = 64 * 1024

	// maxConsecutiveEmptyReads bounds how often a reader may return (0, nil)
	// in a row before fill gives up with io.ErrNoProgress.
	maxConsecutiveEmptyReads = 100
)

// rollingBuffer holds the window of stream bytes a StreamChunkIter works on.
//
// After the first fill the buffer always holds at least min bytes unless the
// stream ended, and roll keeps exactly the trailing min bytes. Since min is
// at least the longest pattern, a match is never split between two windows.
type rollingBuffer struct {
	buf []byte
	min int
	end int
}

func newRollingBuffer(maxPatternLen int) *rollingBuffer {
	keep := max(1, maxPatternLen)
	return &rollingBuffer{
		buf: make([]byte, max(keep*8, defaultBufferCapacity)),
		min: keep,
	}
}

// bytes returns the live window.
func (b *rollingBuffer) bytes() []byte { return b.buf[:b.end] }

// minLen returns the number of bytes roll retains.
func (b *rollingBuffer) minLen() int { return b.min }

// fill reads from r until the window holds at least minLen bytes. It returns
// false when r is exhausted without yielding a single byte.
func (b *rollingBuffer) fill(r io.Reader) (bool, error) {
	readAny := false
	empty := 0
	for {
		n, err := r.Read(b.buf[b.end:])
		b.end += n
		if n > 0 {
			readAny = true
			empty = 0
		}
		switch {
		case errors.Is(err, io.EOF):
			return readAny, nil
		case err != nil:
			return readAny, err
		case b.end >= b.min:
			return true, nil
		case n == 0:
			empty++
			if empty >= maxConsecutiveEmptyReads {
				return readAny, io.ErrNoProgress
			}
		}
	}
}

// roll discards everything but the trailing minLen bytes, moving them to the
// front of the buffer. It panics if the window is shorter than minLen.
func (b *rollingBuffer) roll() {
	if b.end < b.min {
		panic("automaton: rolling a buffer shorter than its minimum length")
	}
	copy(b.buf, b.buf[b.end-b.min:b.end])
	b.end = b.min
}

// StreamChunk is one piece of a searched stream. Concatenating the Bytes of
// every chunk a StreamChunkIter yields reproduces the stream exactly.
type StreamChunk struct {
	// Bytes aliases the iterator's buffer and is valid until the next call
	// to Next.
	Bytes []byte

	// Match is the match covering Bytes, set only when IsMatch is true.
	// Its span is in absolute stream offsets.
	Match Match

	IsMatch bool
}

// StreamChunkIter splits a stream into alternating unmatched and matched
// chunks.
//
// It searches with MatchKindStandard semantics: a match is reported as soon
// as its last byte is read, and the search restarts at the unanchored start
// state right after it, so reported matches never overlap.
type StreamChunkIter struct {
	aut   Automaton
	r     io.Reader
	buf   *rollingBuffer
	start StateID
	sid   StateID

	// absolutePos is the stream offset of buf.bytes()[bufferPos].
	absolutePos int
	bufferPos   int
	// reportedPos is the buffer offset up to which bytes have been returned.
	reportedPos int

	err error
}

// NewStreamChunkIter returns a chunk iterator over r.
//
// It fails with an UnsupportedStream error unless aut uses
// MatchKindStandard, and with ErrUnsupportedEmptyPattern if aut can match the
// empty string.
func NewStreamChunkIter(aut Automaton, r io.Reader) (*StreamChunkIter, error) {
	if kind := aut.MatchKind(); !kind.IsStandard() {
		return nil, unsupportedStream(kind)
	}
	if aut.PatternsLen() > 0 && aut.MinPatternLen() == 0 {
		return nil, ErrUnsupportedEmptyPattern
	}
	start, err := aut.StartState(AnchoredNo)
	if err != nil {
		return nil, err
	}
	return &StreamChunkIter{
		aut:   aut,
		r:     r,
		buf:   newRollingBuffer(aut.MaxPatternLen()),
		start: start,
		sid:   start,
	}, nil
}

// Next returns the next chunk. It returns io.EOF once the whole stream has
// been reported, and any read error from the underlying reader unchanged.
// Errors are sticky.
func (it *StreamChunkIter) Next() (StreamChunk, error) {
	if it.err != nil {
		return StreamChunk{}, it.err
	}
	for {
		if it.aut.IsMatch(it.sid) {
			mat := matchAt(it.aut, it.sid, 0, it.absolutePos)
			if matStart := it.bufferPos - mat.Len(); matStart > it.reportedPos {
				return it.nonMatch(matStart), nil
			}
			it.sid = it.start
			bytes := it.buf.bytes()[it.bufferPos-mat.Len() : it.bufferPos]
			it.reportedPos += len(bytes)
			return StreamChunk{Bytes: bytes, Match: mat, IsMatch: true}, nil
		}
		if it.bufferPos >= len(it.buf.bytes()) {
			// Bytes before the trailing window can no longer be part of a
			// match.
			if end := len(it.buf.bytes()) - it.buf.minLen(); it.reportedPos < end {
				return it.nonMatch(end), nil
			}
			if n := len(it.buf.bytes()); n >= it.buf.minLen() {
				it.bufferPos = it.buf.minLen()
				it.reportedPos -= n - it.buf.minLen()
				it.buf.roll()
			}
			more, err := it.buf.fill(it.r)
			if err != nil {
				it.err = err
				return StreamChunk{}, err
			}
			if !more {
				if end := len(it.buf.bytes()); it.reportedPos < end {
					return it.nonMatch(end), nil
				}
				it.err = io.EOF
				return StreamChunk{}, io.EOF
			}
		}
		start := it.absolutePos
		for _, b := range it.buf.bytes()[it.bufferPos:] {
			it.sid = it.aut.NextState(AnchoredNo, it.sid, b)
			it.absolutePos++
			if it.aut.IsMatch(it.sid) {
				break
			}
		}
		it.bufferPos += it.absolutePos - start
	}
}

// nonMatch reports the unreported bytes up to buffer offset end.
func (it *StreamChunkIter) nonMatch(end int) StreamChunk {
	bytes := it.buf.bytes()[it.reportedPos:end]
	it.reportedPos = end
	return StreamChunk{Bytes: bytes}
}

// StreamFindIter yields the matches of a streaming search. It reports the
// same matches FindIter reports over the whole stream held in memory.
type StreamFindIter struct {
	chunks *StreamChunkIter
}

// NewStreamFindIter returns a match iterator over r. It has the same
// requirements as NewStreamChunkIter.
func NewStreamFindIter(aut Automaton, r io.Reader) (*StreamFindIter, error) {
	chunks, err := NewStreamChunkIter(aut, r)
	if err != nil {
		return nil, err
	}
	return &StreamFindIter{chunks: chunks}, nil
}

// Next returns the next match, io.EOF at the end of the stream, or the
// reader's error.
func (it *StreamFindIter) Next() (Match, error) {
	for {
		chunk, err := it.chunks.Next()
		if err != nil {
			return Match{}, err
		}
		if chunk.IsMatch {
			return chunk.Match, nil
		}
	}
}
