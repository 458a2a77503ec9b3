package memory

import (
	"log/slog"
	"sync"

	"github.com/hupe1980/colgo/internal/conv"
)

// TestingT is the subset of testing.TB that AssertEmpty needs.
type TestingT interface {
	Errorf(format string, args ...any)
	Helper()
}

// Stats tracks checked-allocator usage.
//
// Note on semantics:
//   - Allocs/Frees: cumulative operation counts
//   - BytesAllocated: cumulative bytes handed out
//   - BytesInUse: bytes currently outstanding
type Stats struct {
	Allocs         uint64
	Frees          uint64
	BytesAllocated uint64
	BytesInUse     int
}

// CheckedAllocator wraps another Allocator and tracks every outstanding
// block. It detects leaks, double frees and frees of blocks it never handed
// out. Intended for tests and debug builds; the bookkeeping takes a mutex per
// operation.
type CheckedAllocator struct {
	mem     Allocator
	logger  *slog.Logger
	metrics MetricsCollector

	mu     sync.Mutex
	blocks map[*byte]int
	stats  Stats
}

// CheckedOption is a configuration option for CheckedAllocator.
type CheckedOption func(*CheckedAllocator)

// WithLogger sets a structured logger for allocation events.
func WithLogger(logger *slog.Logger) CheckedOption {
	return func(a *CheckedAllocator) {
		a.logger = logger
	}
}

// WithMetricsCollector sets the metrics collector for allocation events.
func WithMetricsCollector(metrics MetricsCollector) CheckedOption {
	return func(a *CheckedAllocator) {
		a.metrics = metrics
	}
}

// NewCheckedAllocator wraps mem with leak and double-free detection.
func NewCheckedAllocator(mem Allocator, opts ...CheckedOption) *CheckedAllocator {
	a := &CheckedAllocator{
		mem:     mem,
		metrics: NoopMetricsCollector{},
		blocks:  make(map[*byte]int),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Allocate implements Allocator.
func (a *CheckedAllocator) Allocate(size int) []byte {
	b := a.mem.Allocate(size)
	a.record(b)
	a.metrics.RecordAllocate(len(b))

	if a.logger != nil {
		a.logger.Debug("allocate", "size", size)
	}
	return b
}

// AllocateZeroed implements Allocator.
func (a *CheckedAllocator) AllocateZeroed(size int) []byte {
	b := a.mem.AllocateZeroed(size)
	a.record(b)
	a.metrics.RecordAllocate(len(b))

	if a.logger != nil {
		a.logger.Debug("allocate zeroed", "size", size)
	}
	return b
}

// Reallocate implements Allocator.
func (a *CheckedAllocator) Reallocate(size int, b []byte) []byte {
	oldSize := len(b)
	a.forget(b, "reallocate")

	nb := a.mem.Reallocate(size, b)
	a.record(nb)
	a.metrics.RecordReallocate(oldSize, len(nb))

	if a.logger != nil {
		a.logger.Debug("reallocate", "old_size", oldSize, "new_size", size)
	}
	return nb
}

// Free implements Allocator. Freeing a block this allocator did not hand out,
// or freeing the same block twice, panics.
func (a *CheckedAllocator) Free(b []byte) {
	a.forget(b, "free")
	a.mem.Free(b)
	a.metrics.RecordFree(len(b))

	if a.logger != nil {
		a.logger.Debug("free", "size", len(b))
	}
}

func (a *CheckedAllocator) record(b []byte) {
	if len(b) == 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.blocks[&b[0]] = len(b)

	sizeU64, _ := conv.IntToUint64(len(b))
	a.stats.Allocs++
	a.stats.BytesAllocated += sizeU64
	a.stats.BytesInUse += len(b)
}

func (a *CheckedAllocator) forget(b []byte, op string) {
	if len(b) == 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	size, ok := a.blocks[&b[0]]
	if !ok || size != len(b) {
		panic("memory: " + op + " of unknown or already freed block")
	}
	delete(a.blocks, &b[0])

	a.stats.Frees++
	a.stats.BytesInUse -= size
}

// CurrentAllocs returns the number of outstanding blocks.
func (a *CheckedAllocator) CurrentAllocs() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.blocks)
}

// Stats returns the current allocator statistics.
func (a *CheckedAllocator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// AssertEmpty fails the test if any block is still outstanding, reporting
// each leaked block's size.
func (a *CheckedAllocator) AssertEmpty(t TestingT) {
	t.Helper()

	a.mu.Lock()
	defer a.mu.Unlock()

	for _, size := range a.blocks {
		if a.logger != nil {
			a.logger.Error("leaked block", "size", size)
		}
		t.Errorf("memory: leaked block of %d bytes", size)
	}
}
