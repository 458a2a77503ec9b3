package buffer

import (
	"sync/atomic"

	"github.com/hupe1980/colgo/memory"
)

type deallocKind uint8

const (
	deallocAllocator deallocKind = iota
	deallocForeign
)

// Deallocation records how a frozen buffer's backing memory must be released.
// There are exactly two origins: a block owned by a colgo allocator, freed
// with its recorded capacity, or memory owned by a foreign system, released
// through an opaque action. The set is closed by construction.
type Deallocation struct {
	kind    deallocKind
	mem     memory.Allocator
	block   []byte // original allocation; len is the recorded capacity in bytes
	release func() error
	done    atomic.Bool
}

func allocatorOwned(mem memory.Allocator, block []byte) *Deallocation {
	return &Deallocation{kind: deallocAllocator, mem: mem, block: block}
}

// Foreign describes memory that did not originate from a colgo allocator,
// e.g. a file mapping. The release action is invoked exactly once, when the
// last reference to the buffer drops. A nil release means the memory needs no
// explicit release.
func Foreign(release func() error) *Deallocation {
	return &Deallocation{kind: deallocForeign, release: release}
}

// CapacityBytes returns the recorded allocation capacity for allocator-owned
// memory, or 0 for foreign memory.
func (d *Deallocation) CapacityBytes() int {
	if d == nil || d.kind != deallocAllocator {
		return 0
	}
	return len(d.block)
}

// run executes the strategy. It is idempotent: the memory is released at most
// once no matter how often run is called.
func (d *Deallocation) run() error {
	if d == nil || d.done.Swap(true) {
		return nil
	}

	switch d.kind {
	case deallocAllocator:
		if d.block != nil {
			d.mem.Free(d.block)
		}
		return nil
	default:
		if d.release != nil {
			return d.release()
		}
		return nil
	}
}
