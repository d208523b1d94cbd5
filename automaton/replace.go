package automaton

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"unicode/utf8"
)

// ReplaceAll replaces every non-overlapping match in haystack with
// with[m.Pattern()]. with must hold exactly one entry per pattern.
func ReplaceAll(aut Automaton, haystack string, with []string) (string, error) {
	if len(with) != aut.PatternsLen() {
		return "", invalidReplacements(len(with), aut.PatternsLen())
	}
	var dst strings.Builder
	dst.Grow(len(haystack))
	err := ReplaceAllFunc(aut, haystack, &dst, func(m Match, _ string, dst *strings.Builder) bool {
		dst.WriteString(with[m.Pattern()])
		return true
	})
	if err != nil {
		return "", err
	}
	return dst.String(), nil
}

// ReplaceAllBytes is ReplaceAll for byte slices.
func ReplaceAllBytes(aut Automaton, haystack []byte, with [][]byte) ([]byte, error) {
	if len(with) != aut.PatternsLen() {
		return nil, invalidReplacements(len(with), aut.PatternsLen())
	}
	var dst bytes.Buffer
	dst.Grow(len(haystack))
	err := ReplaceAllBytesFunc(aut, haystack, &dst, func(m Match, _ []byte, dst *bytes.Buffer) bool {
		dst.Write(with[m.Pattern()])
		return true
	})
	if err != nil {
		return nil, err
	}
	return dst.Bytes(), nil
}

// ReplaceAllFunc appends haystack to dst, letting fn write the replacement
// for every non-overlapping match. fn receives the match and the matched
// text; returning false stops replacing and copies the rest of haystack
// through unchanged.
//
// Matches that start or end inside a UTF-8 encoded rune are left in place.
func ReplaceAllFunc(
	aut Automaton,
	haystack string,
	dst *strings.Builder,
	fn func(m Match, matched string, dst *strings.Builder) bool,
) error {
	it, err := NewFindIter(aut, NewInputString(haystack))
	if err != nil {
		return err
	}
	last := 0
	for m, ok := it.Next(); ok; m, ok = it.Next() {
		if !isRuneBoundary(haystack, m.Start()) || !isRuneBoundary(haystack, m.End()) {
			continue
		}
		dst.WriteString(haystack[last:m.Start()])
		last = m.End()
		if !fn(m, haystack[m.Start():m.End()], dst) {
			break
		}
	}
	dst.WriteString(haystack[last:])
	return it.Err()
}

// ReplaceAllBytesFunc is ReplaceAllFunc for byte slices. No match is
// skipped.
func ReplaceAllBytesFunc(
	aut Automaton,
	haystack []byte,
	dst *bytes.Buffer,
	fn func(m Match, matched []byte, dst *bytes.Buffer) bool,
) error {
	it, err := NewFindIter(aut, NewInput(haystack))
	if err != nil {
		return err
	}
	last := 0
	for m, ok := it.Next(); ok; m, ok = it.Next() {
		dst.Write(haystack[last:m.Start()])
		last = m.End()
		if !fn(m, haystack[m.Start():m.End()], dst) {
			break
		}
	}
	dst.Write(haystack[last:])
	return it.Err()
}

// StreamReplaceAll copies r to w, replacing every match with
// with[m.Pattern()]. It has the requirements of NewStreamChunkIter.
func StreamReplaceAll(aut Automaton, r io.Reader, w io.Writer, with [][]byte) error {
	if len(with) != aut.PatternsLen() {
		return invalidReplacements(len(with), aut.PatternsLen())
	}
	return StreamReplaceAllFunc(aut, r, w, func(m Match, _ []byte, w io.Writer) error {
		_, err := w.Write(with[m.Pattern()])
		return err
	})
}

// StreamReplaceAllFunc copies r to w, letting fn write the replacement for
// every match. Errors from r, w or fn stop the copy and are returned as is.
func StreamReplaceAllFunc(
	aut Automaton,
	r io.Reader,
	w io.Writer,
	fn func(m Match, matched []byte, w io.Writer) error,
) error {
	it, err := NewStreamChunkIter(aut, r)
	if err != nil {
		return err
	}
	for {
		chunk, err := it.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if chunk.IsMatch {
			err = fn(chunk.Match, chunk.Bytes, w)
		} else {
			_, err = w.Write(chunk.Bytes)
		}
		if err != nil {
			return err
		}
	}
}

func isRuneBoundary(s string, i int) bool {
	return i == 0 || i == len(s) || utf8.RuneStart(s[i])
}
