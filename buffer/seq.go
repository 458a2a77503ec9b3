package buffer

import (
	"fmt"
	"iter"

	"github.com/hupe1980/colgo/memory"
	"github.com/hupe1980/colgo/types"
)

// ExtendFromSeq appends every element of seq. sizeHint is a lower bound on
// the element count and is reserved up front; a hint of 0 is always valid.
// Elements beyond the hint grow the buffer through the normal doubling
// policy.
//
// The length commit is panic-safe: if the sequence itself panics mid-way,
// every element already written is accounted for in Len, so no initialized
// memory becomes invisible and nothing is double-freed.
func (m *Mutable[T]) ExtendFromSeq(sizeHint int, seq iter.Seq[T]) {
	if sizeHint > 0 {
		m.Reserve(sizeHint)
	}

	n := m.len
	defer func() { m.len = n }()

	for v := range seq {
		if n == len(m.data) {
			m.len = n
			m.grow(n + 1)
		}
		m.data[n] = v
		n++
	}
}

// FromSeq creates a Mutable from a finite sequence. sizeHint is a lower
// bound on the element count, used for the initial allocation.
func FromSeq[T types.Native](mem memory.Allocator, sizeHint int, seq iter.Seq[T]) *Mutable[T] {
	m := WithCapacity[T](mem, types.BytesFor[T](sizeHint))
	m.ExtendFromSeq(0, seq)
	return m
}

// FromTrustedLenSeq creates a Mutable from a sequence asserted to produce
// exactly count elements. The capacity is allocated once and elements are
// written without per-element capacity checks, which makes this markedly
// faster than FromSeq for hot paths.
//
// The declared count is a caller contract. A sequence that produces a
// different number of elements is a fatal error: the mismatch is detected
// after consumption and panics.
func FromTrustedLenSeq[T types.Native](mem memory.Allocator, count int, seq iter.Seq[T]) *Mutable[T] {
	m := WithCapacity[T](mem, types.BytesFor[T](count))

	n := 0
	for v := range seq {
		// No capacity re-check here; an overrun beyond the rounded-up
		// capacity faults on the bounds check below.
		m.data[n] = v
		n++
	}
	if n != count {
		panic(fmt.Sprintf("buffer: trusted length %d, sequence produced %d elements", count, n))
	}
	m.len = count

	return m
}

// TryFromTrustedLenSeq is the fallible variant of FromTrustedLenSeq for
// sequences that can fail per element. The first error abandons the
// construction: the allocation is freed and the error is returned, leaving
// no buffer behind. A count mismatch remains fatal.
func TryFromTrustedLenSeq[T types.Native](mem memory.Allocator, count int, seq iter.Seq2[T, error]) (*Mutable[T], error) {
	m := WithCapacity[T](mem, types.BytesFor[T](count))

	n := 0
	for v, err := range seq {
		if err != nil {
			m.Free()
			return nil, err
		}
		m.data[n] = v
		n++
	}
	if n != count {
		panic(fmt.Sprintf("buffer: trusted length %d, sequence produced %d elements", count, n))
	}
	m.len = count

	return m, nil
}

// FromBools creates a bit-packed Mutable from a sequence of booleans, one
// bit per value, least-significant bit first within each byte. A final
// partial byte is appended with its unset high bits left at zero. sizeHint
// is a lower bound on the number of booleans.
func FromBools(mem memory.Allocator, sizeHint int, seq iter.Seq[bool]) *Mutable[uint8] {
	m := WithCapacity[uint8](mem, (sizeHint+7)/8)

	next, stop := iter.Pull(seq)
	defer stop()

	for {
		var acc uint8
		mask := uint8(1)
		exhausted := false

		// Collect up to 8 booleans into an accumulator byte.
		for mask != 0 {
			v, ok := next()
			if !ok {
				exhausted = true
				break
			}
			if v {
				acc |= mask
			}
			mask <<= 1
		}

		// The sequence ended before providing a bit for this byte.
		if exhausted && mask == 1 {
			break
		}

		if m.len == len(m.data) {
			m.grow(m.len + 1)
		}
		m.data[m.len] = acc
		m.len++

		if exhausted {
			break
		}
	}

	return m
}
