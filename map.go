package idxarena

import (
	"fmt"
	"iter"
	"strings"

	"github.com/hupe1980/idxarena/internal/container"
	"github.com/hupe1980/idxarena/internal/conv"
	"github.com/hupe1980/idxarena/internal/presence"
)

// Map attaches optional values of type V to handles of kind T.
//
// It shares the index space of an Arena[T] without referring to one: any
// Idx[T] can be used as a key. Inserting at handle i grows the backing extent to
// at least i+1 slots, and slots below i that were never inserted stay unset.
// The extent never shrinks, and re-inserting a handle overwrites its value.
//
// Occupied slots are tracked in a Roaring bitmap, so iteration only visits set
// slots and always runs in ascending handle order. Values live in segmented
// storage: pointers from Ptr stay valid while the map grows.
//
// The zero value is an empty map ready to use. A Map must not be mutated
// concurrently, and must not be inserted into while one of its iterators runs.
type Map[T, V any] struct {
	slots   container.SegmentedArray[V]
	present presence.Set
	opts    *options
}

// Entry is a (handle, value) pair used to build a Map.
type Entry[T, V any] struct {
	Idx   Idx[T]
	Value V
}

// NewMap creates an empty map.
func NewMap[T, V any](opts ...Option) *Map[T, V] {
	m := &Map[T, V]{opts: applyOptions(opts)}
	if m.opts != nil && m.opts.segmentBitsSet {
		m.slots.SetFirstSegmentBits(m.opts.segmentBits)
	}
	return m
}

// MapOf creates a map by inserting entries in order; the last entry for a
// handle wins.
//
// The map carries no options. To name it or attach a logger or metrics
// collector, build it with CollectMap instead.
func MapOf[T, V any](entries ...Entry[T, V]) *Map[T, V] {
	m := NewMap[T, V]()
	for _, e := range entries {
		m.Insert(e.Idx, e.Value)
	}
	return m
}

// CollectMap creates a map by inserting each pair of seq in order; the last pair
// for a handle wins.
func CollectMap[T, V any](seq iter.Seq2[Idx[T], V], opts ...Option) *Map[T, V] {
	m := NewMap[T, V](opts...)
	for i, v := range seq {
		m.Insert(i, v)
	}
	return m
}

// Insert stores value at i, overwriting any previous value there.
func (m *Map[T, V]) Insert(i Idx[T], value V) {
	n, err := conv.ToInt(uint64(i.raw) + 1)
	if err != nil {
		// only reachable where int is 32 bits wide
		ce := &CapacityError{Len: m.slots.Len(), cause: err}
		m.opts.recordCapacityExceeded(kindMap, m.slots.Len(), ce)
		panic(ce)
	}
	if added := m.slots.Grow(n); added > 0 {
		m.opts.recordGrow(kindMap, m.slots.Segments(), m.slots.Cap())
	}
	*m.slots.At(int(i.raw)) = value
	m.present.Add(uint32(i.raw))
}

// Contains reports whether a value is stored at i.
func (m *Map[T, V]) Contains(i Idx[T]) bool {
	return m.present.Contains(uint32(i.raw))
}

// Get returns the value at i and true, or the zero value and false if the slot
// is unset or beyond the extent.
func (m *Map[T, V]) Get(i Idx[T]) (V, bool) {
	if p := m.Ptr(i); p != nil {
		return *p, true
	}
	var zero V
	return zero, false
}

// Ptr returns a pointer to the value at i, or nil if the slot is unset or beyond
// the extent.
func (m *Map[T, V]) Ptr(i Idx[T]) *V {
	if !m.present.Contains(uint32(i.raw)) {
		return nil
	}
	return m.slots.At(int(i.raw))
}

// MustGet returns the value at i.
//
// It panics with an *UnsetError if no value was inserted at i.
func (m *Map[T, V]) MustGet(i Idx[T]) V {
	return *m.MustPtr(i)
}

// MustPtr returns a pointer to the value at i.
//
// It panics with an *UnsetError if no value was inserted at i.
func (m *Map[T, V]) MustPtr(i Idx[T]) *V {
	p := m.Ptr(i)
	if p == nil {
		panic(&UnsetError{Raw: i.raw, Extent: m.slots.Len()})
	}
	return p
}

// Len returns the number of set slots, i.e. distinct handles ever inserted.
func (m *Map[T, V]) Len() int {
	return int(m.present.Cardinality())
}

// IsEmpty reports whether no slot is set.
func (m *Map[T, V]) IsEmpty() bool {
	return m.present.IsEmpty()
}

// Extent returns the backing length: one past the highest handle ever inserted.
func (m *Map[T, V]) Extent() int {
	return m.slots.Len()
}

// Values iterates the values of set slots in ascending handle order.
func (m *Map[T, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for raw := range m.present.Ascending() {
			if !yield(*m.slots.At(int(raw))) {
				return
			}
		}
	}
}

// ValuePointers iterates pointers to the values of set slots in ascending
// handle order.
func (m *Map[T, V]) ValuePointers() iter.Seq[*V] {
	return func(yield func(*V) bool) {
		for raw := range m.present.Ascending() {
			if !yield(m.slots.At(int(raw))) {
				return
			}
		}
	}
}

// All iterates (handle, value) pairs of set slots in ascending handle order.
func (m *Map[T, V]) All() iter.Seq2[Idx[T], V] {
	return func(yield func(Idx[T], V) bool) {
		for raw := range m.present.Ascending() {
			if !yield(FromRaw[T](RawIdx(raw)), *m.slots.At(int(raw))) {
				return
			}
		}
	}
}

// Pointers iterates (handle, pointer) pairs of set slots in ascending handle
// order.
func (m *Map[T, V]) Pointers() iter.Seq2[Idx[T], *V] {
	return func(yield func(Idx[T], *V) bool) {
		for raw := range m.present.Ascending() {
			if !yield(FromRaw[T](RawIdx(raw)), m.slots.At(int(raw))) {
				return
			}
		}
	}
}

// Backward iterates (handle, value) pairs of set slots in descending handle
// order.
func (m *Map[T, V]) Backward() iter.Seq2[Idx[T], V] {
	return func(yield func(Idx[T], V) bool) {
		for raw := range m.present.Descending() {
			if !yield(FromRaw[T](RawIdx(raw)), *m.slots.At(int(raw))) {
				return
			}
		}
	}
}

// Drain hands every (handle, value) pair of set slots to the caller in ascending
// handle order and releases the map's storage.
//
// The map is emptied as soon as the returned sequence starts running (extent
// and length drop to zero). Storage segments are released as iteration moves
// past them; stopping early releases the rest.
func (m *Map[T, V]) Drain() iter.Seq2[Idx[T], V] {
	return func(yield func(Idx[T], V) bool) {
		slots, present := m.slots, m.present
		m.slots.Reset()
		m.present.Reset()

		released := 0
		for raw := range present.Ascending() {
			seg, _ := slots.Locate(int(raw))
			if seg > released {
				slots.DropBefore(seg)
				released = seg
			}
			if !yield(FromRaw[T](RawIdx(raw)), *slots.At(int(raw))) {
				return
			}
		}
	}
}

// Clone returns a map holding copies of m's values under the same handles.
// Values are copied by assignment.
func (m *Map[T, V]) Clone() *Map[T, V] {
	return &Map[T, V]{
		slots:   m.slots.Clone(),
		present: m.present.Clone(),
		opts:    m.opts,
	}
}

// String renders the map as Map{len: n, extent: e, entries: {i: v, ...}}, for
// diagnostics only.
func (m *Map[T, V]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Map{len: %d, extent: %d, entries: {", m.Len(), m.Extent())
	first := true
	for i, v := range m.All() {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&sb, "%d: %v", i.raw, v)
	}
	sb.WriteString("}}")
	return sb.String()
}

// MapEqual reports whether a and b have the same extent and hold equal values
// under the same set handles. Options are not compared.
func MapEqual[T any, V comparable](a, b *Map[T, V]) bool {
	if a.Extent() != b.Extent() || a.Len() != b.Len() {
		return false
	}
	for i, v := range a.All() {
		if w, ok := b.Get(i); !ok || w != v {
			return false
		}
	}
	return true
}
