package tinystr

import (
	"math/bits"

	"github.com/rawbytedev/tinystr/internal/alloc"
)

// Capacity returns how many bytes the value can hold before growing.
// Inline values always report InlineCapacity.
func (s *String) Capacity() int {
	if s.IsInline() {
		return InlineCapacity
	}
	_, _, capacity := s.asHeap()
	return capacity
}

// Reserve grows capacity by additional bytes. Stays inline when the new
// capacity still fits the inline buffer.
func (s *String) Reserve(additional int) {
	if additional < 0 {
		panic("tinystr: negative reservation")
	}
	newCap := s.Capacity() + additional
	if s.IsInline() {
		if newCap > InlineCapacity {
			s.MoveToHeap(newCap)
		}
	} else {
		s.resize(newCap)
	}
}

// ReserveExact grows capacity by exactly additional bytes with no rounding.
// An inline value is promoted even when the result would still fit inline.
func (s *String) ReserveExact(additional int) {
	if additional < 0 {
		panic("tinystr: negative reservation")
	}
	newCap := s.Capacity() + additional
	if s.IsInline() {
		s.MoveToHeap(newCap)
	} else {
		s.resize(newCap)
	}
}

// MoveToHeap promotes an inline value to a heap buffer of the given
// capacity. A no-op when already heap-resident. Promotion is one-way; only
// Shrink demotes. Panics when capacity is below the current length or at or
// beyond MaxCapacity.
func (s *String) MoveToHeap(capacity int) {
	if !s.IsInline() {
		return
	}
	in := s.asInline()
	n := len(in)
	if capacity < n {
		panic("tinystr: capacity below current length")
	}
	if capacity >= MaxCapacity {
		panic("tinystr: capacity out of range")
	}
	ptr := mem.Alloc(capacity)
	copy(alloc.Bytes(ptr, n), in)
	s.setHeap(ptr, n, capacity)
}

// Shrink demotes a heap value back inline when the content fits, releasing
// the heap buffer; otherwise it trims capacity to the exact length. A no-op
// on inline values.
func (s *String) Shrink() {
	if s.IsInline() {
		return
	}
	ptr, n, capacity := s.asHeap()
	if ptr == 0 {
		s.reset()
		return
	}
	if n <= InlineCapacity {
		var tmp [InlineCapacity]byte
		copy(tmp[:n], alloc.Bytes(ptr, n))
		s.reset()
		copy(s.raw[inlineOff:], tmp[:n])
		s.raw[tagOff] = byte(n) | tagInline
		mem.Free(ptr, capacity)
	} else {
		s.resize(n)
	}
}

// resize reallocates the heap buffer to newCap, preserving the first Len
// bytes. Heap-resident values only.
func (s *String) resize(newCap int) {
	if s.IsInline() {
		panic("tinystr: resize of inline value")
	}
	ptr, length, capacity := s.asHeap()
	if newCap < length {
		panic("tinystr: capacity below current length")
	}
	if newCap >= MaxCapacity {
		panic("tinystr: capacity out of range")
	}
	if ptr == 0 {
		// zero value: first real allocation
		s.setHeap(mem.Alloc(newCap), length, newCap)
		return
	}
	next := mem.Grow(ptr, capacity, newCap)
	s.setWord(heapPtrOff, uint(next))
	s.setWord(heapCapOff, uint(newCap))
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
