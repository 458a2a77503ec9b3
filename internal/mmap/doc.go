// Package mmap provides anonymous and file-backed memory mappings.
//
// # Overview
//
// Anonymous mappings (MapAnon) supply off-heap, page-aligned memory blocks to
// the allocator layer. Page alignment subsumes the 64-byte alignment the
// buffer layer requires, and off-heap memory keeps large column buffers out
// of the garbage collector's scan set.
//
// File mappings (Open) give zero-copy, read-only access to on-disk data. The
// resulting bytes can be wrapped into an immutable buffer whose release
// action unmaps the file.
//
// # Usage
//
//	m, err := mmap.MapAnon(1 << 20)
//	if err != nil { ... }
//	defer m.Close()
//	data := m.Bytes()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with madvise(2) for access hints
//   - Windows: VirtualAlloc / CreateFileMapping (madvise is a no-op)
//
// # Thread Safety
//
// A Mapping is safe for concurrent read access. Close is idempotent and
// protected by an atomic flag, but callers must ensure no goroutines access
// Bytes() after Close() returns.
package mmap
