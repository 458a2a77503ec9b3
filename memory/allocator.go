package memory

// Alignment is the byte alignment of every allocated block (64 bytes, one
// cache line, also the AVX-512 vector width).
const Alignment = 64

// Allocator hands out 64-byte aligned blocks of raw memory.
//
// A block's capacity is its slice length. Reallocate and Free must receive a
// slice previously returned by this allocator, unsliced; passing anything
// else is a contract violation.
type Allocator interface {
	// Allocate returns a block of at least size bytes. The content is
	// unspecified; callers must not read before writing.
	Allocate(size int) []byte

	// AllocateZeroed returns a block of at least size bytes with every byte
	// set to zero.
	AllocateZeroed(size int) []byte

	// Reallocate returns a block of the given size holding the first
	// min(len(b), size) bytes of b. The returned block may or may not alias b.
	Reallocate(size int, b []byte) []byte

	// Free releases a block previously obtained from this allocator.
	Free(b []byte)
}

// DefaultAllocator is the allocator used when none is supplied.
//
// DefaultAllocator is safe to use from multiple goroutines.
var DefaultAllocator Allocator = NewGoAllocator()

// RoundUpToMultipleOf64 rounds n up to the next multiple of 64.
// This is the capacity policy shared by all buffer allocations.
func RoundUpToMultipleOf64(n int) int {
	return (n + 63) &^ 63
}
