package idxarena

import (
	"fmt"
	"iter"
	"math"
	"strings"

	"github.com/hupe1980/idxarena/internal/conv"
	"github.com/hupe1980/idxarena/internal/container"
)

// MaxLen is the largest number of values an arena can hold. Raw value
// math.MaxUint32 is never allocated, which keeps it free for OptIdx.
const MaxLen = math.MaxUint32

// maxLen is MaxLen outside of tests.
var maxLen uint64 = MaxLen

// Arena is a growth-only store of values addressed by sequentially assigned handles.
//
// The k-th allocation returns a handle with raw value k. Values are never removed
// or moved: pointers obtained from Ptr or Pointers stay valid, and keep referring
// to the stored value, while the arena grows.
//
// The zero value is an empty arena ready to use. An Arena must not be mutated
// concurrently; concurrent readers are fine while no goroutine allocates.
type Arena[T any] struct {
	data container.SegmentedArray[T]
	opts *options
}

// New creates an empty arena.
func New[T any](opts ...Option) *Arena[T] {
	a := &Arena[T]{opts: applyOptions(opts)}
	if a.opts != nil && a.opts.segmentBitsSet {
		a.data.SetFirstSegmentBits(a.opts.segmentBits)
	}
	return a
}

// FromSlice creates an arena holding values in order; values[k] gets raw handle k.
func FromSlice[T any](values []T, opts ...Option) *Arena[T] {
	a := New[T](opts...)
	for _, v := range values {
		a.Alloc(v)
	}
	return a
}

// Collect creates an arena from a sequence, allocating each value in order.
func Collect[T any](seq iter.Seq[T], opts ...Option) *Arena[T] {
	a := New[T](opts...)
	for v := range seq {
		a.Alloc(v)
	}
	return a
}

// Len returns the number of allocated values.
func (a *Arena[T]) Len() int {
	return a.data.Len()
}

// IsEmpty reports whether nothing has been allocated yet.
func (a *Arena[T]) IsEmpty() bool {
	return a.data.Len() == 0
}

// NextIdx returns the handle the next Alloc will return, without allocating.
//
// It lets a value refer to itself (or to a sibling allocated right after it)
// before it is stored. It panics with a *CapacityError if the arena is full.
func (a *Arena[T]) NextIdx() Idx[T] {
	raw, err := a.nextRaw()
	if err != nil {
		panic(err)
	}
	return FromRaw[T](raw)
}

// Alloc appends value and returns its handle.
//
// It panics with a *CapacityError if the arena already holds MaxLen values.
// Use TryAlloc to handle that case as an error.
func (a *Arena[T]) Alloc(value T) Idx[T] {
	i, err := a.TryAlloc(value)
	if err != nil {
		panic(err)
	}
	return i
}

// TryAlloc appends value and returns its handle, or a *CapacityError if the
// 32-bit index space is exhausted. The arena is unchanged on error.
func (a *Arena[T]) TryAlloc(value T) (Idx[T], error) {
	raw, err := a.nextRaw()
	if err != nil {
		a.opts.recordCapacityExceeded(kindArena, a.data.Len(), err)
		return Idx[T]{}, err
	}
	if a.data.Append(value) {
		a.opts.recordGrow(kindArena, a.data.Segments(), a.data.Cap())
	}
	return FromRaw[T](raw), nil
}

func (a *Arena[T]) nextRaw() (RawIdx, error) {
	n := a.data.Len()
	v, err := conv.ToUint32(n)
	if err != nil || uint64(v) >= maxLen {
		return 0, &CapacityError{Len: n, cause: err}
	}
	return RawIdx(v), nil
}

func (a *Arena[T]) checkIndex(i Idx[T]) int {
	if uint64(i.raw) >= uint64(a.data.Len()) {
		panic(&IndexError{Raw: i.raw, Len: a.data.Len()})
	}
	return int(i.raw)
}

// Get returns a copy of the value at i.
//
// It panics with an *IndexError if i was not allocated by this arena.
func (a *Arena[T]) Get(i Idx[T]) T {
	return *a.data.At(a.checkIndex(i))
}

// Ptr returns a pointer to the value at i for in-place mutation.
//
// It panics with an *IndexError if i was not allocated by this arena.
func (a *Arena[T]) Ptr(i Idx[T]) *T {
	return a.data.At(a.checkIndex(i))
}

// All iterates (handle, value) pairs in ascending handle order.
// It yields exactly Len pairs.
func (a *Arena[T]) All() iter.Seq2[Idx[T], T] {
	return func(yield func(Idx[T], T) bool) {
		for k, p := range a.data.All() {
			if !yield(FromRaw[T](RawIdx(k)), *p) {
				return
			}
		}
	}
}

// Pointers iterates (handle, pointer) pairs in ascending handle order.
func (a *Arena[T]) Pointers() iter.Seq2[Idx[T], *T] {
	return func(yield func(Idx[T], *T) bool) {
		for k, p := range a.data.All() {
			if !yield(FromRaw[T](RawIdx(k)), p) {
				return
			}
		}
	}
}

// Backward iterates (handle, value) pairs in descending handle order.
func (a *Arena[T]) Backward() iter.Seq2[Idx[T], T] {
	return func(yield func(Idx[T], T) bool) {
		for k, p := range a.data.Backward() {
			if !yield(FromRaw[T](RawIdx(k)), *p) {
				return
			}
		}
	}
}

// BackwardPointers iterates (handle, pointer) pairs in descending handle order.
func (a *Arena[T]) BackwardPointers() iter.Seq2[Idx[T], *T] {
	return func(yield func(Idx[T], *T) bool) {
		for k, p := range a.data.Backward() {
			if !yield(FromRaw[T](RawIdx(k)), p) {
				return
			}
		}
	}
}

// Values iterates the stored values in ascending handle order.
func (a *Arena[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, p := range a.data.All() {
			if !yield(*p) {
				return
			}
		}
	}
}

// Clone returns an arena holding copies of a's values under the same handles.
// Values are copied by assignment.
func (a *Arena[T]) Clone() *Arena[T] {
	return &Arena[T]{data: a.data.Clone(), opts: a.opts}
}

// String renders the arena as Arena{len: n, data: [...]}, for diagnostics only.
func (a *Arena[T]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Arena{len: %d, data: [", a.Len())
	for k, p := range a.data.All() {
		if k > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v", *p)
	}
	sb.WriteString("]}")
	return sb.String()
}

// Equal reports whether a and b hold equal values in the same order.
func Equal[T comparable](a, b *Arena[T]) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i, v := range a.All() {
		if b.Get(i) != v {
			return false
		}
	}
	return true
}
