package memory

import (
	"fmt"
	"sync"

	"github.com/hupe1980/colgo/internal/mmap"
)

// MmapAllocator allocates blocks from anonymous memory mappings, keeping them
// off the Go heap. Pages are aligned to the page size, which subsumes the
// 64-byte alignment contract. Free unmaps the block deterministically.
//
// MmapAllocator is safe to use from multiple goroutines.
type MmapAllocator struct {
	mu       sync.Mutex
	mappings map[*byte]*mmap.Mapping
}

// NewMmapAllocator creates a new MmapAllocator.
func NewMmapAllocator() *MmapAllocator {
	return &MmapAllocator{
		mappings: make(map[*byte]*mmap.Mapping),
	}
}

// Allocate returns a block of the given size backed by an anonymous mapping.
// Mapping failure is fatal.
func (a *MmapAllocator) Allocate(size int) []byte {
	if size <= 0 {
		return nil
	}

	m, err := mmap.MapAnon(size)
	if err != nil {
		panic(fmt.Sprintf("memory: anonymous mapping of %d bytes failed: %v", size, err))
	}

	b := m.Bytes()[:size:size]

	a.mu.Lock()
	a.mappings[&b[0]] = m
	a.mu.Unlock()

	return b
}

// AllocateZeroed returns a zero-filled block. Anonymous pages are zero-filled
// by the kernel, so this is identical to Allocate.
func (a *MmapAllocator) AllocateZeroed(size int) []byte {
	return a.Allocate(size)
}

// Reallocate maps a new block, copies min(len(b), size) bytes and unmaps the
// old block.
func (a *MmapAllocator) Reallocate(size int, b []byte) []byte {
	if size == len(b) {
		return b
	}

	nb := a.Allocate(size)
	copy(nb, b)
	a.Free(b)
	return nb
}

// Free unmaps a block previously returned by Allocate. Freeing a block this
// allocator does not own is a contract violation and panics.
func (a *MmapAllocator) Free(b []byte) {
	if len(b) == 0 {
		return
	}

	a.mu.Lock()
	m, ok := a.mappings[&b[0]]
	if ok {
		delete(a.mappings, &b[0])
	}
	a.mu.Unlock()

	if !ok {
		panic("memory: free of block not owned by this allocator")
	}

	_ = m.Close()
}

// Advise forwards an access-pattern hint for a live block to the kernel.
func (a *MmapAllocator) Advise(b []byte, pattern mmap.AccessPattern) error {
	if len(b) == 0 {
		return nil
	}

	a.mu.Lock()
	m, ok := a.mappings[&b[0]]
	a.mu.Unlock()

	if !ok {
		return fmt.Errorf("memory: advise on block not owned by this allocator")
	}
	return m.Advise(pattern)
}

// Live returns the number of blocks currently mapped.
func (a *MmapAllocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.mappings)
}

// Close unmaps every live block. Blocks handed out earlier become invalid.
func (a *MmapAllocator) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var firstErr error
	for k, m := range a.mappings {
		if err := m.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(a.mappings, k)
	}
	return firstErr
}
