// Package conv provides checked integer conversions for the 32-bit index space.
//
// Arenas hand out uint32 handles but size themselves with Go's platform int.
// These helpers turn a length or offset into a raw handle value (and back)
// without silently wrapping around.
//
// For conversions that are provably safe by construction (e.g. a handle that was
// already bounds-checked against a slice length), use direct casts instead.
package conv
