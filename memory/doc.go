// Package memory provides the aligned allocation layer beneath colgo buffers.
//
// # Overview
//
// Every allocator in this package hands out blocks aligned to 64 bytes, the
// cache-line multiple the buffer layer relies on for vectorized access. The
// block's capacity travels with the block itself as len(b); Reallocate and
// Free must be called with a slice previously returned by the same allocator,
// unsliced. Violating that contract is a programming error, not a recoverable
// condition.
//
// # Allocators
//
//   - GoAllocator: Go-heap memory, aligned by over-allocation. Free is a
//     no-op; the garbage collector reclaims blocks once unreferenced.
//   - MmapAllocator: off-heap memory from anonymous mappings. Free unmaps
//     deterministically and keeps large column buffers out of the garbage
//     collector's scan set.
//   - CheckedAllocator: wraps another allocator with bookkeeping that detects
//     leaks, double frees and foreign blocks. Intended for tests.
//
// Allocation failure is fatal at this layer: callers sit at the base of the
// allocation stack and cannot meaningfully recover, so a failed mapping
// panics instead of returning an error.
package memory
