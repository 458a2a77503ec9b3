// Package colgo provides the memory foundation for columnar data processing
// in Go.
//
// Colgo centers on two buffer forms. A growable, exclusively-owned buffer
// (buffer.Mutable) assembles column data element by element or in bulk, with
// 64-byte aligned, cache-line-multiple allocations and amortized-doubling
// growth. Freezing converts it, without copying, into an immutable,
// reference-counted buffer (buffer.Buffer) that any number of readers can
// share; the backing memory is released exactly once when the last reference
// drops.
//
// # Quick Start
//
//	m := buffer.New[uint32](nil)
//	m.Push(256)
//	m.ExtendFromSlice([]uint32{1, 2, 3})
//
//	b := m.Freeze()
//	defer b.Release()
//
//	_ = b.Values() // read-only, shareable across goroutines
//
// # Allocators
//
// The memory package supplies the allocation layer: a Go-heap allocator
// (default), an off-heap allocator backed by anonymous mappings, and a
// checked allocator that detects leaks and double frees in tests. All of
// them guarantee 64-byte alignment.
//
// # Boolean Data
//
// Boolean sequences are stored bit-packed, one bit per value, LSB-first
// within each byte:
//
//	m := buffer.FromBools(nil, 0, seq)
//
// # Foreign Memory
//
// Memory owned by another system, such as a file mapping, can be wrapped
// into an immutable buffer whose release action runs when the last reference
// drops (buffer.WrapForeign).
package colgo
