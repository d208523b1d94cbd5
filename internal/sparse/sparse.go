// Package sparse provides a sparse set of state identifiers.
//
// Automaton builders use it to remember which states a breadth-first walk
// has already queued. Insertion and lookup are O(1) and the set is never
// zeroed after allocation.
package sparse

// Set is a set of uint32 values drawn from [0, capacity).
//
// It keeps a sparse array (value -> position in dense) for membership and a
// dense array of members. A value is a member iff the two arrays point at
// each other.
type Set struct {
	sparse []uint32
	dense  []uint32
}

// New returns an empty set able to hold values below capacity.
func New(capacity int) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value and reports whether it was newly added.
// It panics if value is not below the capacity.
func (s *Set) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	//nolint:gosec // G115: len(dense) < capacity, which fits in uint32
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set.
func (s *Set) Contains(value uint32) bool {
	if int(value) >= len(s.sparse) {
		return false
	}
	i := s.sparse[value]
	return int(i) < len(s.dense) && s.dense[i] == value
}
