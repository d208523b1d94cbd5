// Package alphabet provides byte equivalence classes for automaton
// transition tables.
//
// Two bytes belong to the same class if no state of the automaton ever
// distinguishes between them. A pattern set over lowercase ASCII words
// typically needs a few dozen classes instead of 256, which shrinks every
// dense row and every DFA state by the same factor.
package alphabet

import "math/bits"

// ByteClasses maps each byte value to its equivalence class.
type ByteClasses struct {
	classes [256]byte
	len     int
}

// Singletons returns ByteClasses in which every byte is its own class.
// It is used when alphabet reduction is turned off.
func Singletons() ByteClasses {
	var bc ByteClasses
	for i := range 256 {
		bc.classes[i] = byte(i)
	}
	bc.len = 256
	return bc
}

// Get returns the class of b.
func (bc *ByteClasses) Get(b byte) byte {
	return bc.classes[b]
}

// AlphabetLen returns the number of distinct classes.
func (bc *ByteClasses) AlphabetLen() int {
	return bc.len
}

// Stride2 returns log2 of the smallest power of two that is at least
// AlphabetLen. Tables that premultiply state IDs use 1<<Stride2 as row width.
func (bc *ByteClasses) Stride2() int {
	if bc.len <= 1 {
		return 0
	}
	return bits.Len(uint(bc.len - 1))
}

// ByteClassSet records the bytes at which classes change while patterns are
// added. Classes are contiguous byte ranges.
type ByteClassSet struct {
	// bit i is set if byte i ends a class.
	bits [4]uint64
}

// SetRange marks [start, end] as a range whose transitions may differ from
// its neighbours.
func (s *ByteClassSet) SetRange(start, end byte) {
	if start > 0 {
		s.set(start - 1)
	}
	s.set(end)
}

// SetByte is SetRange(b, b).
func (s *ByteClassSet) SetByte(b byte) {
	s.SetRange(b, b)
}

func (s *ByteClassSet) set(b byte) {
	s.bits[b/64] |= 1 << (b % 64)
}

func (s *ByteClassSet) contains(b byte) bool {
	return s.bits[b/64]&(1<<(b%64)) != 0
}

// ByteClasses converts the recorded boundaries into a class table.
func (s *ByteClassSet) ByteClasses() ByteClasses {
	var bc ByteClasses
	class := 0
	for b := range 256 {
		bc.classes[b] = byte(class)
		if b < 255 && s.contains(byte(b)) {
			class++
		}
	}
	bc.len = class + 1
	return bc
}
