// Package container implements container data structures.
package container

import (
	"iter"
	"math/bits"
)

const (
	// DefaultFirstSegmentBits sizes the first segment (16 items).
	DefaultFirstSegmentBits = 4
	// MaxFirstSegmentBits caps the first segment at 1Mi items.
	MaxFirstSegmentBits = 20
)

// SegmentedArray is a growth-only array made of geometrically sized segments.
//
// Segment k holds 1<<(b+k) items where b is the first segment's bit width, so
// the array doubles its capacity with every new segment but never copies or
// moves an item once it has been placed. Pointers returned by At therefore stay
// valid (and observe later writes) for the lifetime of the array.
//
// Index to (segment, offset) mapping is O(1):
//
//	n      = i + 1<<b
//	seg    = bitlen(n) - 1 - b
//	offset = n - 1<<(seg+b)
//
// The zero value is an empty array using DefaultFirstSegmentBits.
// SegmentedArray is not safe for concurrent mutation.
type SegmentedArray[T any] struct {
	segments [][]T
	length   int
	first    uint8
	fixed    bool // first has been chosen explicitly
}

// SetFirstSegmentBits chooses the first segment size. It is a no-op once storage
// has been allocated. Values are clamped to [0, MaxFirstSegmentBits].
func (sa *SegmentedArray[T]) SetFirstSegmentBits(firstBits int) {
	if len(sa.segments) > 0 {
		return
	}
	sa.first = uint8(min(max(firstBits, 0), MaxFirstSegmentBits))
	sa.fixed = true
}

func (sa *SegmentedArray[T]) base() uint {
	if !sa.fixed {
		return DefaultFirstSegmentBits
	}
	return uint(sa.first)
}

// Len returns the number of items.
func (sa *SegmentedArray[T]) Len() int {
	return sa.length
}

// Cap returns the number of items the allocated segments can hold.
func (sa *SegmentedArray[T]) Cap() int {
	return int(sa.capacity())
}

func (sa *SegmentedArray[T]) capacity() uint64 {
	b := sa.base()
	return (uint64(1) << (uint(len(sa.segments)) + b)) - (uint64(1) << b)
}

// Segments returns the number of allocated segments.
func (sa *SegmentedArray[T]) Segments() int {
	return len(sa.segments)
}

// Locate maps an index to its segment and offset within that segment.
func (sa *SegmentedArray[T]) Locate(i int) (seg, off int) {
	b := sa.base()
	n := uint64(i) + uint64(1)<<b
	seg = bits.Len64(n) - 1 - int(b)
	off = int(n - uint64(1)<<(uint(seg)+b))
	return seg, off
}

// At returns a pointer to the item at index i.
// i must be below Len; callers own the bounds check.
func (sa *SegmentedArray[T]) At(i int) *T {
	seg, off := sa.Locate(i)
	return &sa.segments[seg][off]
}

// Append stores value at index Len and reports whether a new segment was allocated.
func (sa *SegmentedArray[T]) Append(value T) bool {
	grew := sa.Grow(sa.length+1) > 0
	*sa.At(sa.length - 1) = value
	return grew
}

// Grow extends the array to at least n items. New items hold the zero value.
// It returns the number of segments allocated; it never shrinks the array.
func (sa *SegmentedArray[T]) Grow(n int) int {
	if n <= sa.length {
		return 0
	}
	b := sa.base()
	added := 0
	for sa.capacity() < uint64(n) {
		size := 1 << (uint(len(sa.segments)) + b)
		sa.segments = append(sa.segments, make([]T, size))
		added++
	}
	sa.length = n
	return added
}

// All iterates items in ascending index order.
func (sa *SegmentedArray[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		i := 0
		for _, seg := range sa.segments {
			for j := range seg {
				if i >= sa.length {
					return
				}
				if !yield(i, &seg[j]) {
					return
				}
				i++
			}
		}
	}
}

// Backward iterates items in descending index order.
func (sa *SegmentedArray[T]) Backward() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := sa.length - 1; i >= 0; i-- {
			if !yield(i, sa.At(i)) {
				return
			}
		}
	}
}

// DropBefore releases every segment below seg. Items stored there must not be
// accessed afterwards; it exists for consuming iteration.
func (sa *SegmentedArray[T]) DropBefore(seg int) {
	for k := 0; k < seg && k < len(sa.segments); k++ {
		sa.segments[k] = nil
	}
}

// Clone returns a copy whose segments do not share storage with sa.
// Items themselves are copied by assignment.
func (sa *SegmentedArray[T]) Clone() SegmentedArray[T] {
	out := SegmentedArray[T]{
		segments: make([][]T, len(sa.segments)),
		length:   sa.length,
		first:    sa.first,
		fixed:    sa.fixed,
	}
	for k, seg := range sa.segments {
		out.segments[k] = append([]T(nil), seg...)
	}
	return out
}

// Reset drops all storage, keeping the segment sizing.
func (sa *SegmentedArray[T]) Reset() {
	sa.segments = nil
	sa.length = 0
}
