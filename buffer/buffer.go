package buffer

import (
	"sync/atomic"
	"unsafe"

	"github.com/hupe1980/colgo/types"
)

// Buffer is an immutable, reference-counted view over a range of native
// elements. Buffers are cheap to share: Retain adds a holder, Release drops
// one, and the backing memory is released exactly once, via its recorded
// Deallocation, when the last holder drops.
//
// No operation mutates through a Buffer, which makes concurrent read-only
// use from multiple goroutines safe.
type Buffer[T types.Native] struct {
	data    []T
	dealloc *Deallocation
	parent  *Buffer[T] // non-nil for windows; the window holds one parent ref
	refs    atomic.Int64
}

// Freeze consumes the mutable buffer and converts it into an immutable
// Buffer without copying: the backing block and length move to the new
// buffer, whose deallocation strategy records the allocator and the block's
// capacity. The mutable becomes inert and will never free the transferred
// memory. The conversion is irreversible.
func (m *Mutable[T]) Freeze() *Buffer[T] {
	b := &Buffer[T]{
		data:    m.data[:m.len:m.len],
		dealloc: allocatorOwned(m.mem, m.block),
	}
	b.refs.Store(1)

	// Disarm: ownership has moved.
	m.block, m.data, m.len = nil, nil, 0

	return b
}

// WrapForeign wraps memory owned by a foreign system (e.g. a file mapping)
// into an immutable Buffer. The release action runs exactly once, when the
// last reference drops.
func WrapForeign[T types.Native](data []T, release func() error) *Buffer[T] {
	b := &Buffer[T]{
		data:    data,
		dealloc: Foreign(release),
	}
	b.refs.Store(1)
	return b
}

// Len returns the number of elements in the buffer.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// IsEmpty reports whether the buffer holds no elements.
func (b *Buffer[T]) IsEmpty() bool {
	return len(b.data) == 0
}

// Values returns the elements as a slice. The slice must be treated as
// read-only and is valid only while the caller holds a reference.
func (b *Buffer[T]) Values() []T {
	return b.data
}

// Bytes returns the raw bytes of the elements. The slice must be treated as
// read-only and is valid only while the caller holds a reference.
func (b *Buffer[T]) Bytes() []byte {
	if len(b.data) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&b.data[0])), types.BytesFor[T](len(b.data))) //nolint:gosec // raw byte view over element data
}

// Retain adds a reference. Retaining a fully released buffer panics.
func (b *Buffer[T]) Retain() {
	if b.refs.Add(1) <= 1 {
		panic("buffer: retain of released buffer")
	}
}

// Release drops a reference. When the last reference drops the backing
// memory is released exactly once, using the recorded deallocation strategy.
// Releasing more often than retained panics.
func (b *Buffer[T]) Release() {
	refs := b.refs.Add(-1)
	if refs < 0 {
		panic("buffer: release of already released buffer")
	}
	if refs > 0 {
		return
	}

	b.data = nil
	if b.parent != nil {
		b.parent.Release()
		b.parent = nil
		return
	}
	_ = b.dealloc.run()
}

// Window returns a buffer viewing elements [offset, offset+length) of b.
// The window shares the backing memory and holds its own reference to b;
// releasing the window releases that reference.
func (b *Buffer[T]) Window(offset, length int) *Buffer[T] {
	if offset < 0 || length < 0 || offset+length > len(b.data) {
		panic("buffer: window out of range")
	}

	b.Retain()
	w := &Buffer[T]{
		data:   b.data[offset : offset+length : offset+length],
		parent: b,
	}
	w.refs.Store(1)
	return w
}

// Deallocation exposes the buffer's recorded release strategy, e.g. to
// inspect the allocation capacity in tests.
func (b *Buffer[T]) Deallocation() *Deallocation {
	if b.parent != nil {
		return b.parent.Deallocation()
	}
	return b.dealloc
}
