package idxarena

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
)

// RawIdx is the untyped 32-bit slot offset underlying every handle.
type RawIdx uint32

// String returns the decimal slot number.
func (r RawIdx) String() string {
	return strconv.FormatUint(uint64(r), 10)
}

// noneRaw is never handed out by an arena; OptIdx relies on it.
const noneRaw = RawIdx(math.MaxUint32)

// Idx is a handle to a value of kind T stored in an Arena[T] (or keyed in a Map[T, V]).
//
// T only separates index spaces: an Idx[Expr] cannot be passed where an Idx[Stmt]
// is expected, although both are a single uint32 at runtime. Crossing kinds
// requires Cast.
//
// Idx is comparable and can be used as a map key. The zero value equals Dummy.
type Idx[T any] struct {
	raw RawIdx
}

// FromRaw wraps a raw slot offset as a handle of kind T.
func FromRaw[T any](raw RawIdx) Idx[T] {
	return Idx[T]{raw: raw}
}

// Dummy returns the placeholder handle (raw 0).
//
// It is identical to the first handle any arena hands out, so it must be
// overwritten before it is read through. Prefer OptIdx where the placeholder
// needs to be distinguishable.
func Dummy[T any]() Idx[T] {
	return Idx[T]{}
}

// Cast reinterprets a handle of kind T as a handle of kind U with the same raw value.
func Cast[U, T any](i Idx[T]) Idx[U] {
	return Idx[U]{raw: i.raw}
}

// Raw returns the underlying slot offset.
func (i Idx[T]) Raw() RawIdx {
	return i.raw
}

// Uint32 returns the slot offset as a plain integer.
func (i Idx[T]) Uint32() uint32 {
	return uint32(i.raw)
}

// Compare orders handles by raw value; it returns -1, 0 or +1.
func (i Idx[T]) Compare(other Idx[T]) int {
	return cmp.Compare(i.raw, other.raw)
}

// Less reports whether i sorts before other.
func (i Idx[T]) Less(other Idx[T]) bool {
	return i.raw < other.raw
}

// String renders the handle as Idx<Kind>(n), for diagnostics only.
func (i Idx[T]) String() string {
	return fmt.Sprintf("Idx<%s>(%d)", kindName[T](), i.raw)
}

func kindName[T any]() string {
	t := reflect.TypeFor[T]()
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}

// SortIdx sorts handles in ascending raw order.
func SortIdx[T any](s []Idx[T]) {
	slices.SortFunc(s, Idx[T].Compare)
}

// OptIdx is an optional handle whose empty state is distinct from every handle an
// arena can return. The zero value is None.
type OptIdx[T any] struct {
	// raw+1; zero means none
	v uint32
}

// Some wraps a present handle.
//
// It panics if i carries the reserved raw value math.MaxUint32, which no arena
// ever allocates.
func Some[T any](i Idx[T]) OptIdx[T] {
	if i.raw == noneRaw {
		panic(fmt.Sprintf("idxarena: raw index %d is reserved", i.raw))
	}
	return OptIdx[T]{v: uint32(i.raw) + 1}
}

// None returns the empty optional handle.
func None[T any]() OptIdx[T] {
	return OptIdx[T]{}
}

// Get returns the handle and whether it is present.
func (o OptIdx[T]) Get() (Idx[T], bool) {
	if o.v == 0 {
		return Idx[T]{}, false
	}
	return Idx[T]{raw: RawIdx(o.v - 1)}, true
}

// IsSome reports whether a handle is present.
func (o OptIdx[T]) IsSome() bool {
	return o.v != 0
}

// MustGet returns the handle; it panics if none is present.
func (o OptIdx[T]) MustGet() Idx[T] {
	i, ok := o.Get()
	if !ok {
		panic(fmt.Sprintf("idxarena: OptIdx<%s> is none", kindName[T]()))
	}
	return i
}

// String renders Some(Idx<Kind>(n)) or None<Kind>.
func (o OptIdx[T]) String() string {
	if i, ok := o.Get(); ok {
		return "Some(" + i.String() + ")"
	}
	return "None<" + kindName[T]() + ">"
}
