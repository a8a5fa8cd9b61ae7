package presence

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Set is a set of occupied slot numbers.
// The zero value is an empty set; the bitmap is allocated on first Add.
type Set struct {
	rb *roaring.Bitmap
}

// Add marks slot as occupied. It returns true if the slot was newly added.
func (s *Set) Add(slot uint32) bool {
	if s.rb == nil {
		s.rb = roaring.New()
	}
	return s.rb.CheckedAdd(slot)
}

// Contains reports whether slot is occupied.
func (s *Set) Contains(slot uint32) bool {
	return s.rb != nil && s.rb.Contains(slot)
}

// Cardinality returns the number of occupied slots.
func (s *Set) Cardinality() uint64 {
	if s.rb == nil {
		return 0
	}
	return s.rb.GetCardinality()
}

// IsEmpty returns true if no slot is occupied.
func (s *Set) IsEmpty() bool {
	return s.rb == nil || s.rb.IsEmpty()
}

// Ascending iterates occupied slots from lowest to highest.
func (s *Set) Ascending() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		if s.rb == nil {
			return
		}
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// Descending iterates occupied slots from highest to lowest.
func (s *Set) Descending() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		if s.rb == nil {
			return
		}
		it := s.rb.ReverseIterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() Set {
	if s.rb == nil {
		return Set{}
	}
	return Set{rb: s.rb.Clone()}
}

// Reset empties the set and releases its containers.
func (s *Set) Reset() {
	s.rb = nil
}
