package idxarena

import (
	"maps"
	"slices"
	"testing"

	"github.com/hupe1980/idxarena/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idx(raw uint32) Idx[expr] { return FromRaw[expr](RawIdx(raw)) }

func TestMap_Insert(t *testing.T) {
	t.Run("zero value", func(t *testing.T) {
		var m Map[expr, string]
		assert.True(t, m.IsEmpty())
		assert.Equal(t, 0, m.Len())
		assert.Equal(t, 0, m.Extent())
		_, ok := m.Get(idx(0))
		assert.False(t, ok)
		assert.Nil(t, m.Ptr(idx(0)))
	})

	t.Run("grows with unset gap", func(t *testing.T) {
		m := NewMap[expr, string]()
		m.Insert(idx(5), "x")

		v, ok := m.Get(idx(5))
		require.True(t, ok)
		assert.Equal(t, "x", v)
		for raw := range uint32(5) {
			_, ok := m.Get(idx(raw))
			assert.False(t, ok, "slot %d", raw)
			assert.False(t, m.Contains(idx(raw)))
		}
		_, ok = m.Get(idx(6))
		assert.False(t, ok, "beyond extent")

		assert.Equal(t, 6, m.Extent())
		assert.Equal(t, 1, m.Len())
		assert.False(t, m.IsEmpty())
	})

	t.Run("extent never shrinks", func(t *testing.T) {
		m := NewMap[expr, int]()
		m.Insert(idx(9), 1)
		m.Insert(idx(2), 2)
		assert.Equal(t, 10, m.Extent())
		assert.Equal(t, 2, m.Len())
	})

	t.Run("last write wins", func(t *testing.T) {
		m := NewMap[expr, string]()
		m.Insert(idx(2), "a")
		m.Insert(idx(2), "b")
		assert.Equal(t, "b", m.MustGet(idx(2)))
		assert.Equal(t, 1, m.Len())
	})

	t.Run("zero value payload is still set", func(t *testing.T) {
		m := NewMap[expr, int]()
		m.Insert(idx(1), 0)
		v, ok := m.Get(idx(1))
		assert.True(t, ok)
		assert.Equal(t, 0, v)
		assert.False(t, m.Contains(idx(0)))
	})

	t.Run("mutate through ptr", func(t *testing.T) {
		m := NewMap[expr, []int]()
		m.Insert(idx(3), nil)
		p := m.Ptr(idx(3))
		require.NotNil(t, p)
		for raw := range uint32(100) {
			m.Insert(idx(raw+4), nil)
		}
		*p = append(*p, 1)
		(*m.MustPtr(idx(3)))[0] = 7
		assert.Equal(t, []int{7}, m.MustGet(idx(3)))
	})

	t.Run("shares index space with arena", func(t *testing.T) {
		exprs := New[expr]()
		a := exprs.Alloc(expr{name: "a"})
		b := exprs.Alloc(expr{name: "b"})

		types := NewMap[expr, string]()
		types.Insert(b, "int")
		assert.False(t, types.Contains(a))
		assert.Equal(t, "int", types.MustGet(b))
		assert.Equal(t, 2, exprs.Len(), "arena untouched")
	})
}

func TestMap_MustGet(t *testing.T) {
	m := NewMap[expr, string]()
	m.Insert(idx(2), "x")

	assert.PanicsWithError(t, "no value at index 1", func() { m.MustGet(idx(1)) })
	assert.PanicsWithError(t, "no value at index 5 (extent 3)", func() { m.MustPtr(idx(5)) })

	err := recoverError(func() { m.MustGet(idx(0)) })
	assert.ErrorIs(t, err, ErrUnset)

	var ue *UnsetError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, RawIdx(0), ue.Raw)
	assert.Equal(t, 3, ue.Extent)
}

func TestMap_BulkBuild(t *testing.T) {
	m := MapOf(
		Entry[expr, string]{Idx: idx(3), Value: "a"},
		Entry[expr, string]{Idx: idx(1), Value: "b"},
		Entry[expr, string]{Idx: idx(3), Value: "c"},
	)

	var got []Entry[expr, string]
	for i, v := range m.All() {
		got = append(got, Entry[expr, string]{Idx: i, Value: v})
	}
	assert.Equal(t, []Entry[expr, string]{
		{Idx: idx(1), Value: "b"},
		{Idx: idx(3), Value: "c"},
	}, got)
	assert.Equal(t, 4, m.Extent())

	seq := func(yield func(Idx[expr], string) bool) {
		_ = yield(idx(3), "a") && yield(idx(1), "b") && yield(idx(3), "c")
	}
	assert.Equal(t, m.String(), CollectMap(seq).String())

	t.Run("collect with options", func(t *testing.T) {
		mc := &BasicMetricsCollector{}
		c := CollectMap(seq, WithName("types"), WithMetricsCollector(mc), WithSegmentBits(0))
		assert.True(t, MapEqual(m, c))
		assert.Equal(t, int64(7), mc.Snapshot().MaxCapacity)
	})
}

func TestMap_Iteration(t *testing.T) {
	m := NewMap[expr, int](WithSegmentBits(0))
	for _, raw := range []uint32{7, 0, 300, 2} {
		m.Insert(idx(raw), int(raw)*10)
	}

	t.Run("values skip unset slots", func(t *testing.T) {
		assert.Equal(t, []int{0, 20, 70, 3000}, slices.Collect(m.Values()))
	})

	t.Run("pairs ascending", func(t *testing.T) {
		var keys []RawIdx
		for i, v := range m.All() {
			keys = append(keys, i.Raw())
			assert.Equal(t, int(i.Raw())*10, v)
		}
		assert.Equal(t, []RawIdx{0, 2, 7, 300}, keys)
	})

	t.Run("pairs descending", func(t *testing.T) {
		var keys []RawIdx
		for i, v := range m.Backward() {
			keys = append(keys, i.Raw())
			assert.Equal(t, int(i.Raw())*10, v)
		}
		assert.Equal(t, []RawIdx{300, 7, 2, 0}, keys)

		keys = keys[:0]
		for i := range m.Backward() {
			keys = append(keys, i.Raw())
			break
		}
		assert.Equal(t, []RawIdx{300}, keys)
	})

	t.Run("mutable", func(t *testing.T) {
		c := m.Clone()
		for p := range c.ValuePointers() {
			*p++
		}
		for _, p := range c.Pointers() {
			*p *= 2
		}
		assert.Equal(t, []int{2, 42, 142, 6002}, slices.Collect(c.Values()))
		assert.Equal(t, []int{0, 20, 70, 3000}, slices.Collect(m.Values()), "clone is independent")

		c.Insert(idx(1), 1)
		assert.False(t, m.Contains(idx(1)))
	})

	t.Run("early stop", func(t *testing.T) {
		var keys []RawIdx
		for i := range m.All() {
			keys = append(keys, i.Raw())
			if len(keys) == 2 {
				break
			}
		}
		assert.Equal(t, []RawIdx{0, 2}, keys)
	})
}

func TestMap_Drain(t *testing.T) {
	t.Run("yields set slots and empties the map", func(t *testing.T) {
		m := NewMap[expr, string](WithSegmentBits(0))
		m.Insert(idx(40), "c")
		m.Insert(idx(0), "a")
		m.Insert(idx(9), "b")

		var got []Entry[expr, string]
		for i, v := range m.Drain() {
			got = append(got, Entry[expr, string]{Idx: i, Value: v})
			assert.Equal(t, 0, m.Len(), "map is emptied up front")
		}
		assert.Equal(t, []Entry[expr, string]{
			{Idx: idx(0), Value: "a"},
			{Idx: idx(9), Value: "b"},
			{Idx: idx(40), Value: "c"},
		}, got)
		assert.Equal(t, 0, m.Extent())
		assert.True(t, m.IsEmpty())
		assert.Empty(t, slices.Collect(m.Values()))
		assert.Empty(t, maps.Collect(m.Backward()))
	})

	t.Run("early stop still releases", func(t *testing.T) {
		m := NewMap[expr, int]()
		m.Insert(idx(1), 1)
		m.Insert(idx(2), 2)
		for range m.Drain() {
			break
		}
		assert.Equal(t, 0, m.Len())
		assert.Equal(t, 0, m.Extent())

		m.Insert(idx(0), 5)
		assert.Equal(t, 5, m.MustGet(idx(0)), "map is reusable")
	})
}

func TestMap_String(t *testing.T) {
	m := NewMap[expr, string]()
	assert.Equal(t, "Map{len: 0, extent: 0, entries: {}}", m.String())

	m.Insert(idx(3), "x")
	m.Insert(idx(1), "y")
	assert.Equal(t, "Map{len: 2, extent: 4, entries: {1: y, 3: x}}", m.String())
}

func TestMapEqual(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var zero Map[expr, int]
		assert.True(t, MapEqual(&zero, NewMap[expr, int]()))
	})

	t.Run("same entries in any insert order", func(t *testing.T) {
		a := MapOf(
			Entry[expr, string]{Idx: idx(1), Value: "x"},
			Entry[expr, string]{Idx: idx(4), Value: "y"},
		)
		b := NewMap[expr, string](WithName("b"), WithSegmentBits(0))
		b.Insert(idx(4), "y")
		b.Insert(idx(1), "x")
		assert.True(t, MapEqual(a, b))
		assert.True(t, MapEqual(b, a))
	})

	t.Run("different extent", func(t *testing.T) {
		a := NewMap[expr, string]()
		a.Insert(idx(1), "x")
		a.Insert(idx(2), "y")
		b := NewMap[expr, string]()
		b.Insert(idx(1), "x")
		b.Insert(idx(5), "y")
		require.Equal(t, a.Len(), b.Len())
		assert.False(t, MapEqual(a, b))
		assert.False(t, MapEqual(b, a))
	})

	t.Run("different set slots within the same extent", func(t *testing.T) {
		a := NewMap[expr, int]()
		a.Insert(idx(0), 1)
		a.Insert(idx(3), 2)
		b := NewMap[expr, int]()
		b.Insert(idx(1), 1)
		b.Insert(idx(3), 2)
		require.Equal(t, a.Extent(), b.Extent())
		assert.False(t, MapEqual(a, b))
	})

	t.Run("different value", func(t *testing.T) {
		a := MapOf(Entry[expr, int]{Idx: idx(2), Value: 1})
		b := MapOf(Entry[expr, int]{Idx: idx(2), Value: 0})
		assert.False(t, MapEqual(a, b))
	})

	t.Run("extra entry", func(t *testing.T) {
		a := MapOf(Entry[expr, int]{Idx: idx(2), Value: 1})
		b := a.Clone()
		b.Insert(idx(0), 1)
		assert.False(t, MapEqual(a, b))
	})
}

func TestMap_MatchesReference(t *testing.T) {
	rng := testutil.NewRNG(42)
	m := NewMap[expr, int](WithSegmentBits(2))
	ref := map[uint32]int{}
	var maxRaw uint32

	for k, raw := range rng.Uint32s(5000, 20_000) {
		m.Insert(idx(raw), k)
		ref[raw] = k
		maxRaw = max(maxRaw, raw)
	}

	assert.Equal(t, len(ref), m.Len())
	assert.Equal(t, int(maxRaw)+1, m.Extent())

	keys := slices.Sorted(maps.Keys(ref))
	var gotKeys []uint32
	for i, v := range m.All() {
		gotKeys = append(gotKeys, i.Uint32())
		assert.Equal(t, ref[i.Uint32()], v)
	}
	assert.Equal(t, keys, gotKeys)

	for raw := range uint32(maxRaw + 1) {
		want, inRef := ref[raw]
		got, ok := m.Get(idx(raw))
		require.Equal(t, inRef, ok, "slot %d", raw)
		assert.Equal(t, want, got)
	}
}
