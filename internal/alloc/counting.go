package alloc

import "sync/atomic"

// Counting wraps an Allocator and tracks live allocations. The default
// allocator is always wrapped, so tests can observe allocation behaviour
// (inline construction allocates nothing, shrink releases, and so on)
// without swapping allocators mid-run.
type Counting struct {
	inner Allocator

	live      atomic.Int64
	liveBytes atomic.Int64
	total     atomic.Int64
}

func NewCounting(inner Allocator) *Counting {
	return &Counting{inner: inner}
}

// Live reports the number of buffers currently owned by the allocator.
func (c *Counting) Live() int64 { return c.live.Load() }

// LiveBytes reports the total declared capacity of live buffers. Declared,
// not physical: Heap backs a zero-sized request with one byte, and that byte
// counts as zero here, matching what Free and Take are later told.
func (c *Counting) LiveBytes() int64 { return c.liveBytes.Load() }

// Total reports how many buffers were ever allocated or adopted.
func (c *Counting) Total() int64 { return c.total.Load() }

func (c *Counting) Alloc(size int) uintptr {
	ptr := c.inner.Alloc(size)
	c.live.Add(1)
	c.liveBytes.Add(int64(size))
	c.total.Add(1)
	return ptr
}

func (c *Counting) Adopt(b []byte) uintptr {
	n := cap(b)
	ptr := c.inner.Adopt(b)
	c.live.Add(1)
	c.liveBytes.Add(int64(n))
	c.total.Add(1)
	return ptr
}

func (c *Counting) Grow(ptr uintptr, oldCap, newCap int) uintptr {
	next := c.inner.Grow(ptr, oldCap, newCap)
	c.liveBytes.Add(int64(newCap - oldCap))
	c.total.Add(1)
	return next
}

func (c *Counting) Free(ptr uintptr, capacity int) {
	c.inner.Free(ptr, capacity)
	c.live.Add(-1)
	c.liveBytes.Add(int64(-capacity))
}

func (c *Counting) Take(ptr uintptr, capacity int) []byte {
	b := c.inner.Take(ptr, capacity)
	c.live.Add(-1)
	c.liveBytes.Add(int64(-capacity))
	return b
}

var std = NewCounting(NewHeap())

// Default returns the process-wide allocator.
func Default() *Counting { return std }
