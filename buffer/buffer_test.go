package buffer

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/colgo/internal/mmap"
	"github.com/hupe1980/colgo/memory"
	"github.com/hupe1980/colgo/types"
)

func unsafePtrOf[T types.Native](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Pointer(&s[0])
}

func unsafeU32View(b []byte) []uint32 {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&b[0])), len(b)/4)
}

func TestFreeze(t *testing.T) {
	t.Run("byte exactness", func(t *testing.T) {
		m := New[uint32](nil)
		m.ExtendFromSlice([]uint32{2, 0})

		b := m.Freeze()
		defer b.Release()

		assert.Equal(t, 2, b.Len())
		assert.Equal(t, []byte{2, 0, 0, 0, 0, 0, 0, 0}, b.Bytes())
		assert.Equal(t, []uint32{2, 0}, b.Values())
	})

	t.Run("zero copy handoff", func(t *testing.T) {
		m := FromSlice(nil, []uint64{1, 2, 3})
		ptr := m.Ptr()

		b := m.Freeze()
		defer b.Release()

		assert.Equal(t, uintptr(ptr), uintptr(unsafePtrOf(b.Values())))
	})

	t.Run("mutable is inert afterwards", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.NewGoAllocator())

		m := FromSlice(mem, []uint32{5, 6})
		b := m.Freeze()

		assert.Equal(t, 0, m.Len())
		assert.Equal(t, 0, m.Cap())
		assert.Nil(t, m.Ptr())

		// The disarmed mutable must not free memory it no longer owns.
		m.Free()
		assert.Equal(t, 1, mem.CurrentAllocs())

		b.Release()
		mem.AssertEmpty(t)
	})

	t.Run("records allocation capacity", func(t *testing.T) {
		m := FromSlice(nil, []uint32{1, 2, 3})
		capBytes := 4 * m.Cap()

		b := m.Freeze()
		defer b.Release()

		assert.Equal(t, capBytes, b.Deallocation().CapacityBytes())
		assert.Zero(t, capBytes%64)
	})

	t.Run("empty buffer", func(t *testing.T) {
		b := New[uint8](nil).Freeze()
		defer b.Release()

		assert.Equal(t, 0, b.Len())
		assert.True(t, b.IsEmpty())
		assert.Nil(t, b.Bytes())
	})
}

func TestBufferRefCounting(t *testing.T) {
	t.Run("released exactly once", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.NewGoAllocator())

		b := FromSlice(mem, []uint32{1}).Freeze()
		b.Retain()
		b.Retain()

		b.Release()
		b.Release()
		assert.Equal(t, 1, mem.CurrentAllocs(), "memory must survive until the last holder drops")

		b.Release()
		mem.AssertEmpty(t)
	})

	t.Run("release past zero panics", func(t *testing.T) {
		b := FromSlice(nil, []uint32{1}).Freeze()
		b.Release()

		assert.Panics(t, func() { b.Release() })
	})

	t.Run("retain after release panics", func(t *testing.T) {
		b := FromSlice(nil, []uint32{1}).Freeze()
		b.Release()

		assert.Panics(t, func() { b.Retain() })
	})
}

func TestBufferWindow(t *testing.T) {
	t.Run("views a sub range", func(t *testing.T) {
		b := FromSlice(nil, []uint32{0, 1, 2, 3, 4, 5}).Freeze()

		w := b.Window(2, 3)
		assert.Equal(t, []uint32{2, 3, 4}, w.Values())
		assert.Equal(t, 3, w.Len())

		w.Release()
		b.Release()
	})

	t.Run("keeps the parent alive", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.NewGoAllocator())

		b := FromSlice(mem, []uint32{0, 1, 2, 3}).Freeze()
		w := b.Window(1, 2)

		b.Release()
		assert.Equal(t, 1, mem.CurrentAllocs(), "window still references the block")
		assert.Equal(t, []uint32{1, 2}, w.Values())

		w.Release()
		mem.AssertEmpty(t)
	})

	t.Run("out of range panics", func(t *testing.T) {
		b := FromSlice(nil, []uint32{1, 2}).Freeze()
		defer b.Release()

		assert.Panics(t, func() { b.Window(1, 2) })
		assert.Panics(t, func() { b.Window(-1, 1) })
	})
}

func TestWrapForeign(t *testing.T) {
	t.Run("release action runs exactly once", func(t *testing.T) {
		var released atomic.Int32
		data := []uint8{1, 2, 3}

		b := WrapForeign(data, func() error {
			released.Add(1)
			return nil
		})
		b.Retain()

		b.Release()
		assert.Equal(t, int32(0), released.Load())

		b.Release()
		assert.Equal(t, int32(1), released.Load())
	})

	t.Run("file mapping", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "col.bin")
		require.NoError(t, os.WriteFile(path, []byte{7, 0, 0, 0, 9, 0, 0, 0}, 0o600))

		mapping, err := mmap.Open(path)
		require.NoError(t, err)

		raw := mapping.Bytes()
		elems := unsafeU32View(raw)

		b := WrapForeign(elems, mapping.Close)
		assert.Equal(t, []uint32{7, 9}, b.Values())
		assert.Equal(t, 0, b.Deallocation().CapacityBytes())

		b.Release()
	})
}

func TestBufferConcurrentReaders(t *testing.T) {
	src := make([]uint64, 4096)
	for i := range src {
		src[i] = uint64(i)
	}
	var want uint64
	for _, v := range src {
		want += v
	}

	b := FromSlice(nil, src).Freeze()
	defer b.Release()

	var g errgroup.Group
	for r := 0; r < 8; r++ {
		g.Go(func() error {
			b.Retain()
			defer b.Release()

			var sum uint64
			for _, v := range b.Values() {
				sum += v
			}
			if sum != want {
				return assert.AnError
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
}
