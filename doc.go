// Package idxarena provides a growth-only, index-addressed value store (Arena) and a
// sparse map keyed by the same index space (Map).
//
// Larger systems such as compilers and graph or IR builders can reference entities
// through small integer handles instead of pointers. Handles are plain values, so
// nodes can refer to each other (or to themselves, via NextIdx) without ownership
// cycles or invalidation hazards.
//
// # Handles
//
// Idx[T] wraps a 32-bit RawIdx. The type parameter T separates index spaces at
// compile time: an Idx[Expr] is not accepted where an Idx[Stmt] is expected, even
// though both are a single uint32. Crossing kinds is explicit with Cast.
//
//	type Expr struct{ Lhs, Rhs idxarena.Idx[Expr] }
//
//	exprs := idxarena.New[Expr]()
//	lit := exprs.Alloc(Expr{})
//	add := exprs.Alloc(Expr{Lhs: lit, Rhs: lit})
//	exprs.Ptr(add).Rhs = exprs.Alloc(Expr{})
//
// Dummy returns the raw-0 placeholder, which is indistinguishable from the first
// allocated handle. OptIdx is the explicit optional handle; its empty state never
// collides with a real handle.
//
// # Arena
//
// Arena[T] assigns handles 0, 1, 2, ... in allocation order and never removes or
// moves a value. Storage is segmented, so pointers returned by Ptr remain valid while
// the arena grows.
//
// # Sparse Map
//
// Map[T, V] stores optional values under Idx[T] keys. Inserting at i grows the map to
// at least i+1 slots; slots that were never inserted stay unset and are skipped by
// iteration. Re-inserting overwrites (last write wins).
//
//	types := idxarena.NewMap[Expr, string]()
//	types.Insert(add, "int")
//	if t, ok := types.Get(lit); !ok { ... }
//
// # Failure Model
//
// Reading a handle that was never allocated (Arena.Get, Arena.Ptr), or directly
// reading an unset map slot (Map.MustGet, Map.MustPtr), is a programming error and
// panics with an *IndexError or *UnsetError. Both unwrap to sentinel errors
// (ErrIndexOutOfRange, ErrUnset) for use with errors.Is after recover.
//
// An arena holds at most MaxLen values. Alloc panics with a *CapacityError beyond
// that; TryAlloc returns the same error instead.
//
// # Concurrency
//
// Arena and Map have a single owner. Concurrent reads are safe while nobody
// mutates; any mutation must be synchronized by the caller.
//
// # Observability
//
// WithLogger and WithMetricsCollector report storage growth and capacity
// failures. The promcollector package exports them to Prometheus.
package idxarena
