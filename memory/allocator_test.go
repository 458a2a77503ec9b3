package memory

import (
	"fmt"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestRoundUpToMultipleOf64(t *testing.T) {
	assert.Equal(t, 0, RoundUpToMultipleOf64(0))
	assert.Equal(t, 64, RoundUpToMultipleOf64(1))
	assert.Equal(t, 64, RoundUpToMultipleOf64(63))
	assert.Equal(t, 64, RoundUpToMultipleOf64(64))
	assert.Equal(t, 128, RoundUpToMultipleOf64(65))
	assert.Equal(t, 192, RoundUpToMultipleOf64(129))
}

func TestGoAllocatorAllocate(t *testing.T) {
	a := NewGoAllocator()
	sizes := []int{1, 10, 63, 64, 65, 100, 1024}

	for _, size := range sizes {
		buf := a.Allocate(size)
		assert.Len(t, buf, size)

		addr := uintptr(unsafe.Pointer(&buf[0]))
		assert.Equal(t, uintptr(0), addr%Alignment, "Address %d should be aligned to %d for size %d", addr, Alignment, size)
	}

	assert.Nil(t, a.Allocate(0))
	assert.Nil(t, a.Allocate(-1))
}

func TestGoAllocatorAllocateZeroed(t *testing.T) {
	a := NewGoAllocator()

	buf := a.AllocateZeroed(256)
	for i, b := range buf {
		assert.Equal(t, byte(0), b, "byte at index %d not zero", i)
	}
}

func TestGoAllocatorReallocate(t *testing.T) {
	a := NewGoAllocator()

	t.Run("grow preserves content", func(t *testing.T) {
		buf := a.Allocate(64)
		for i := range buf {
			buf[i] = byte(i)
		}

		nb := a.Reallocate(256, buf)
		assert.Len(t, nb, 256)

		addr := uintptr(unsafe.Pointer(&nb[0]))
		assert.Equal(t, uintptr(0), addr%Alignment)

		for i := 0; i < 64; i++ {
			assert.Equal(t, byte(i), nb[i])
		}
	})

	t.Run("same size returns same block", func(t *testing.T) {
		buf := a.Allocate(128)
		nb := a.Reallocate(128, buf)
		assert.Equal(t, &buf[0], &nb[0])
	})

	t.Run("shrink preserves prefix", func(t *testing.T) {
		buf := a.Allocate(128)
		for i := range buf {
			buf[i] = byte(i)
		}

		nb := a.Reallocate(64, buf)
		assert.Len(t, nb, 64)
		for i := 0; i < 64; i++ {
			assert.Equal(t, byte(i), nb[i])
		}
	})
}

func BenchmarkGoAllocatorAllocate(b *testing.B) {
	a := NewGoAllocator()
	sizes := []int{64, 256, 1024, 4096}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = a.Allocate(size)
			}
		})
	}
}
