package buffer

import (
	"unsafe"

	"github.com/hupe1980/colgo/memory"
	"github.com/hupe1980/colgo/types"
)

// Mutable is a growable buffer of native elements with exclusive ownership of
// its backing memory. Use Push to insert an item, ExtendFromSlice to insert
// many, and Freeze to convert it into an immutable Buffer.
//
// The backing allocation is always 64-byte aligned and a multiple of 64 bytes.
// A Mutable is not safe for concurrent use; it has exactly one owner at a
// time.
type Mutable[T types.Native] struct {
	mem   memory.Allocator
	block []byte // backing allocation; nil iff capacity is 0
	data  []T    // full-capacity element view over block
	len   int    // invariant: len <= len(data)
}

// capacityFor rounds an element count up so the backing byte allocation is a
// multiple of 64 bytes.
func capacityFor[T types.Native](elems int) int {
	sz := types.Size[T]()
	return memory.RoundUpToMultipleOf64(elems*sz) / sz
}

func elemView[T types.Native](block []byte, elems int) []T {
	if len(block) == 0 || elems == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&block[0])), elems) //nolint:gosec // aligned raw block reinterpretation
}

// New creates an empty Mutable with no backing allocation.
// A nil allocator selects memory.DefaultAllocator.
func New[T types.Native](mem memory.Allocator) *Mutable[T] {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	return &Mutable[T]{mem: mem}
}

// WithCapacity creates a Mutable whose initial capacity holds at least
// sizeBytes bytes of elements, rounded up to the 64-byte policy. The memory
// is uninitialized and the length is 0.
func WithCapacity[T types.Native](mem memory.Allocator, sizeBytes int) *Mutable[T] {
	m := New[T](mem)
	sz := types.Size[T]()
	elems := (sizeBytes + sz - 1) / sz
	if elems > 0 {
		capacity := capacityFor[T](elems)
		m.block = m.mem.Allocate(types.BytesFor[T](capacity))
		m.data = elemView[T](m.block, capacity)
	}
	return m
}

// FromLenZeroed creates a Mutable of the given length where every element is
// the zero value. This is the only constructor that produces initialized
// elements without explicit writes.
func FromLenZeroed[T types.Native](mem memory.Allocator, length int) *Mutable[T] {
	m := New[T](mem)
	if length > 0 {
		capacity := capacityFor[T](length)
		m.block = m.mem.AllocateZeroed(types.BytesFor[T](capacity))
		m.data = elemView[T](m.block, capacity)
		m.len = length
	}
	return m
}

// FromSlice creates a Mutable holding a copy of items.
func FromSlice[T types.Native](mem memory.Allocator, items []T) *Mutable[T] {
	m := New[T](mem)
	m.ExtendFromSlice(items)
	return m
}

// Len returns the number of valid elements.
// The invariant m.Len() <= m.Cap() is always upheld.
func (m *Mutable[T]) Len() int {
	return m.len
}

// Cap returns the number of elements the current allocation can hold without
// reallocation.
func (m *Mutable[T]) Cap() int {
	return len(m.data)
}

// IsEmpty reports whether the buffer holds no elements.
func (m *Mutable[T]) IsEmpty() bool {
	return m.len == 0
}

// Values returns the valid elements as a slice. The slice aliases the
// buffer's memory and is invalidated by any operation that grows the buffer.
func (m *Mutable[T]) Values() []T {
	return m.data[:m.len]
}

// Bytes returns the raw bytes of the valid elements. The slice aliases the
// buffer's memory and is invalidated by any operation that grows the buffer.
func (m *Mutable[T]) Bytes() []byte {
	if m.block == nil {
		return nil
	}
	return m.block[:types.BytesFor[T](m.len)]
}

// Ptr returns a raw pointer to the buffer's memory, aligned to 64 bytes.
// It is nil when the capacity is 0.
func (m *Mutable[T]) Ptr() unsafe.Pointer {
	if m.block == nil {
		return nil
	}
	return unsafe.Pointer(&m.block[0]) //nolint:gosec // raw pointer introspection is part of the API
}

// Reserve ensures capacity for at least additional more elements,
// reallocating if needed. The common already-has-room path is a single
// comparison.
func (m *Mutable[T]) Reserve(additional int) {
	if required := m.len + additional; required > len(m.data) {
		m.grow(required)
	}
}

// grow reallocates to max(policy(required), 2*cap): amortized doubling with a
// 64-byte-multiple floor.
func (m *Mutable[T]) grow(required int) {
	capacity := capacityFor[T](required)
	if doubled := 2 * len(m.data); doubled > capacity {
		capacity = doubled
	}

	byteSize := types.BytesFor[T](capacity)
	if m.block == nil {
		m.block = m.mem.Allocate(byteSize)
	} else {
		m.block = m.mem.Reallocate(byteSize, m.block)
	}
	m.data = elemView[T](m.block, capacity)
}

// Push appends a single element, growing if needed. Amortized O(1).
func (m *Mutable[T]) Push(v T) {
	m.Reserve(1)
	m.data[m.len] = v
	m.len++
}

// ExtendFromSlice bulk-copies items into the buffer, growing at most once.
func (m *Mutable[T]) ExtendFromSlice(items []T) {
	if len(items) == 0 {
		return
	}
	m.Reserve(len(items))
	copy(m.data[m.len:], items)
	m.len += len(items)
}

// Resize changes the logical length. Growing writes fill into every newly
// exposed slot; shrinking only moves the length. Truncation never
// deallocates and never clears the bytes beyond the new length.
func (m *Mutable[T]) Resize(newLen int, fill T) {
	if newLen < 0 {
		panic("buffer: resize to negative length")
	}
	if newLen > m.len {
		m.Reserve(newLen - m.len)
		for i := m.len; i < newLen; i++ {
			m.data[i] = fill
		}
	}
	m.len = newLen
}

// Clear drops all elements, keeping the allocation.
func (m *Mutable[T]) Clear() {
	m.len = 0
}

// SetLen sets the logical length without writing any element.
//
// The caller must guarantee that every element up to n is initialized;
// violating this exposes uninitialized memory. The length is still asserted
// against the capacity.
func (m *Mutable[T]) SetLen(n int) {
	if n < 0 || n > len(m.data) {
		panic("buffer: length out of capacity range")
	}
	m.len = n
}

// Free releases the backing allocation without freezing. The buffer becomes
// inert. Calling Free after Freeze is a no-op; ownership already moved to the
// frozen buffer.
func (m *Mutable[T]) Free() {
	if m.block != nil {
		m.mem.Free(m.block)
	}
	m.block, m.data, m.len = nil, nil, 0
}
