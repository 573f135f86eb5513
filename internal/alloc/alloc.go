// Package alloc provides the manual allocation capability backing tinystr's
// heap-resident strings. Buffers are addressed by raw uintptr inside the
// string representation, so the allocator keeps every live buffer in a
// registry: the registry reference is what keeps the memory alive, and
// removing it (Free or Take) is what releases ownership. Freeing a pointer
// the registry does not know is a programmer error and panics, which is how
// double-frees surface in tests instead of corrupting memory.
package alloc

import (
	"sync"
	"unsafe"
)

// Allocator hands out raw buffers addressed by uintptr. All methods are
// synchronous; failures are programmer errors and panic.
type Allocator interface {
	// Alloc returns a zeroed buffer of at least size bytes.
	Alloc(size int) uintptr
	// Adopt takes ownership of b's full backing array (len..cap included)
	// and returns its base address. The caller must not use b afterwards.
	Adopt(b []byte) uintptr
	// Grow reallocates ptr from oldCap to newCap, preserving
	// min(oldCap, newCap) bytes, and returns the new base address.
	Grow(ptr uintptr, oldCap, newCap int) uintptr
	// Free releases ptr. capacity must match what it was allocated with.
	Free(ptr uintptr, capacity int)
	// Take releases ptr from the allocator and returns its backing slice,
	// transferring ownership to the caller (and the garbage collector).
	Take(ptr uintptr, capacity int) []byte
}

// Heap is the default registry-backed allocator.
type Heap struct {
	mu  sync.Mutex
	reg map[uintptr][]byte
}

func NewHeap() *Heap {
	return &Heap{reg: make(map[uintptr][]byte)}
}

func (h *Heap) Alloc(size int) uintptr {
	if size < 0 {
		panic("alloc: negative size")
	}
	if size == 0 {
		// zero-size makes share a base address; keep registry keys unique
		size = 1
	}
	b := make([]byte, size)
	ptr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	h.mu.Lock()
	if _, ok := h.reg[ptr]; ok {
		h.mu.Unlock()
		panic("alloc: base address already tracked")
	}
	h.reg[ptr] = b
	h.mu.Unlock()
	return ptr
}

func (h *Heap) Adopt(b []byte) uintptr {
	if cap(b) == 0 {
		panic("alloc: adopt of zero-capacity buffer")
	}
	b = b[:cap(b)]
	ptr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	h.mu.Lock()
	if _, ok := h.reg[ptr]; ok {
		h.mu.Unlock()
		panic("alloc: base address already tracked")
	}
	h.reg[ptr] = b
	h.mu.Unlock()
	return ptr
}

func (h *Heap) Grow(ptr uintptr, oldCap, newCap int) uintptr {
	h.mu.Lock()
	old, ok := h.reg[ptr]
	if !ok {
		h.mu.Unlock()
		panic("alloc: grow of untracked pointer")
	}
	delete(h.reg, ptr)
	h.mu.Unlock()

	size := newCap
	if size == 0 {
		size = 1
	}
	b := make([]byte, size)
	n := oldCap
	if newCap < n {
		n = newCap
	}
	copy(b, old[:n])
	next := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	h.mu.Lock()
	h.reg[next] = b
	h.mu.Unlock()
	return next
}

func (h *Heap) Free(ptr uintptr, capacity int) {
	h.mu.Lock()
	_, ok := h.reg[ptr]
	if ok {
		delete(h.reg, ptr)
	}
	h.mu.Unlock()
	if !ok {
		panic("alloc: free of untracked pointer")
	}
}

func (h *Heap) Take(ptr uintptr, capacity int) []byte {
	h.mu.Lock()
	b, ok := h.reg[ptr]
	if ok {
		delete(h.reg, ptr)
	}
	h.mu.Unlock()
	if !ok {
		panic("alloc: take of untracked pointer")
	}
	if capacity <= len(b) {
		return b[:capacity]
	}
	return b
}

// Bytes aliases n bytes at ptr as a slice. ptr must address a buffer that is
// still tracked (or otherwise kept alive) and n must not exceed its capacity.
func Bytes(ptr uintptr, n int) []byte {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), n)
}
