// Package presence tracks which slots of a sparse, index-addressed store hold a value.
//
// A Set is a 32-bit Roaring bitmap: dense runs of occupied slots compress into run
// containers, long unset gaps cost nothing, and iteration always yields slot numbers
// in ascending order.
package presence
