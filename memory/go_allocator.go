package memory

import "unsafe"

// GoAllocator allocates blocks on the Go heap, aligned to 64 bytes by
// over-allocating and offsetting to the first aligned address. The underlying
// array stays reachable through the returned slice, so Free is a no-op and
// the garbage collector reclaims the block once the last reference drops.
type GoAllocator struct{}

// NewGoAllocator creates a new GoAllocator.
func NewGoAllocator() *GoAllocator { return &GoAllocator{} }

// Allocate returns a 64-byte aligned block of the given size.
func (a *GoAllocator) Allocate(size int) []byte {
	if size <= 0 {
		return nil
	}

	// Allocate size + Alignment so an aligned start can always be found
	// within the first Alignment-1 bytes.
	raw := make([]byte, size+Alignment)

	addr := uintptr(unsafe.Pointer(&raw[0])) //nolint:gosec // alignment requires the address
	shift := int((Alignment - (addr & (Alignment - 1))) & (Alignment - 1))

	return raw[shift : shift+size : shift+size]
}

// AllocateZeroed returns a zero-filled aligned block. The Go heap zeroes all
// allocations, so this is identical to Allocate.
func (a *GoAllocator) AllocateZeroed(size int) []byte {
	return a.Allocate(size)
}

// Reallocate returns a block of the given size holding the first
// min(len(b), size) bytes of b.
func (a *GoAllocator) Reallocate(size int, b []byte) []byte {
	if size == len(b) {
		return b
	}

	nb := a.Allocate(size)
	copy(nb, b)
	a.Free(b)
	return nb
}

// Free is a no-op; the garbage collector owns the block.
func (a *GoAllocator) Free(b []byte) {}
