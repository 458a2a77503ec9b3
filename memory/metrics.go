package memory

import "sync/atomic"

// MetricsCollector defines an interface for collecting allocator metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordAllocate is called after each allocation of size bytes.
	RecordAllocate(size int)

	// RecordReallocate is called after each reallocation from oldSize to
	// newSize bytes.
	RecordReallocate(oldSize, newSize int)

	// RecordFree is called after each free of size bytes.
	RecordFree(size int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAllocate(int)        {}
func (NoopMetricsCollector) RecordReallocate(int, int) {}
func (NoopMetricsCollector) RecordFree(int)            {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AllocCount   atomic.Int64
	AllocBytes   atomic.Int64
	ReallocCount atomic.Int64
	FreeCount    atomic.Int64
	FreeBytes    atomic.Int64
}

// RecordAllocate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAllocate(size int) {
	b.AllocCount.Add(1)
	b.AllocBytes.Add(int64(size))
}

// RecordReallocate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReallocate(oldSize, newSize int) {
	b.ReallocCount.Add(1)
	b.AllocBytes.Add(int64(newSize))
	b.FreeBytes.Add(int64(oldSize))
}

// RecordFree implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFree(size int) {
	b.FreeCount.Add(1)
	b.FreeBytes.Add(int64(size))
}
