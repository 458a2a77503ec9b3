// Package buffer provides the memory primitive behind colgo columns: a
// growable, exclusively-owned buffer of native elements, and the immutable,
// reference-counted buffer produced by freezing it.
//
// # Lifecycle
//
// A Mutable is built up by exactly one owner, then consumed by Freeze. The
// conversion is zero-copy: ownership of the backing block moves to the frozen
// Buffer, the Mutable becomes inert, and the block is released exactly once
// when the last Buffer reference drops.
//
//	m := buffer.New[uint32](nil)
//	m.Push(256)
//	m.ExtendFromSlice([]uint32{1, 2, 3})
//	b := m.Freeze()
//	defer b.Release()
//
// # Capacity Policy
//
// Backing allocations are always a multiple of 64 bytes and aligned to 64
// bytes, so element data starts on a cache line and stays suitable for
// vectorized access. Growth doubles the capacity with that 64-byte floor,
// giving amortized O(1) appends.
//
// # Trusted Fast Paths
//
// FromTrustedLenSeq and TryFromTrustedLenSeq allocate once for a declared
// element count and write without per-element capacity checks. The declared
// count is a caller contract; a sequence that produces a different number of
// elements is a fatal error, not a recoverable one.
//
// # Concurrency
//
// A Mutable must only ever be touched by its single owner. A frozen Buffer is
// safe for concurrent read-only use from any number of goroutines.
package buffer
