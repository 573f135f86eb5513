package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocFree(t *testing.T) {
	h := NewHeap()
	ptr := h.Alloc(32)
	require.NotZero(t, ptr)
	b := Bytes(ptr, 32)
	copy(b, "hello")
	assert.Equal(t, "hello", string(Bytes(ptr, 5)))
	h.Free(ptr, 32)
}

func TestDoubleFreePanics(t *testing.T) {
	h := NewHeap()
	ptr := h.Alloc(8)
	h.Free(ptr, 8)
	assert.Panics(t, func() { h.Free(ptr, 8) })
}

func TestGrowPreservesContent(t *testing.T) {
	h := NewHeap()
	ptr := h.Alloc(8)
	copy(Bytes(ptr, 8), "12345678")
	next := h.Grow(ptr, 8, 16)
	assert.Equal(t, "12345678", string(Bytes(next, 8)))
	// the old address is gone
	assert.Panics(t, func() { h.Free(ptr, 8) })
	h.Free(next, 16)
}

func TestGrowShrinks(t *testing.T) {
	h := NewHeap()
	ptr := h.Alloc(16)
	copy(Bytes(ptr, 16), "abcdefghijklmnop")
	next := h.Grow(ptr, 16, 4)
	assert.Equal(t, "abcd", string(Bytes(next, 4)))
	h.Free(next, 4)
}

func TestAdoptTake(t *testing.T) {
	h := NewHeap()
	donor := make([]byte, 5, 20)
	copy(donor, "world")
	ptr := h.Adopt(donor)

	out := h.Take(ptr, 20)
	assert.Equal(t, "world", string(out[:5]))
	assert.Panics(t, func() { h.Free(ptr, 20) })
}

func TestZeroSizeAllocsStayDistinct(t *testing.T) {
	h := NewHeap()
	a := h.Alloc(0)
	b := h.Alloc(0)
	assert.NotEqual(t, a, b)
	h.Free(a, 0)
	h.Free(b, 0)
}

func TestCounting(t *testing.T) {
	c := NewCounting(NewHeap())
	assert.Zero(t, c.Live())

	a := c.Alloc(10)
	b := c.Alloc(20)
	assert.Equal(t, int64(2), c.Live())
	assert.Equal(t, int64(30), c.LiveBytes())

	b = c.Grow(b, 20, 50)
	assert.Equal(t, int64(2), c.Live())
	assert.Equal(t, int64(60), c.LiveBytes())

	c.Free(a, 10)
	_ = c.Take(b, 50)
	assert.Zero(t, c.Live())
	assert.Zero(t, c.LiveBytes())
	assert.Equal(t, int64(3), c.Total())
}

func TestCountingZeroSizeIsDeclaredBytes(t *testing.T) {
	c := NewCounting(NewHeap())
	ptr := c.Alloc(0)
	// one live buffer, zero declared bytes, however Heap backs it
	assert.Equal(t, int64(1), c.Live())
	assert.Zero(t, c.LiveBytes())
	c.Free(ptr, 0)
	assert.Zero(t, c.Live())
	assert.Zero(t, c.LiveBytes())
}
