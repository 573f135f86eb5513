package tinystr

import (
	"math/bits"
	"unsafe"

	"github.com/rawbytedev/tinystr/internal/alloc"
)

const (
	wordSize = bits.UintSize / 8
	rawSize  = 3 * wordSize

	// InlineCapacity is the longest byte length stored without allocation:
	// 23 bytes on 64-bit targets, 11 on 32-bit.
	InlineCapacity = rawSize - 1

	// MaxCapacity is one bit short of the address width. Heap capacities must
	// stay below it so the high bit of the heap length word always reads 0.
	MaxCapacity = 1<<(bits.UintSize-1) - 1

	tagInline byte = 1 << 7
	lenMask   byte = tagInline - 1
)

// Heap length words never reach MaxCapacity, so the inline tag stored in the
// same byte is unambiguous. word/setWord are the only raw accessors; methods
// that need a particular shape read it through asHeap/asInline, which check
// the discriminant and panic on a mismatch.

func (s *String) word(off int) uint {
	return *(*uint)(unsafe.Pointer(&s.raw[off]))
}

func (s *String) setWord(off int, v uint) {
	*(*uint)(unsafe.Pointer(&s.raw[off])) = v
}

func (s *String) heapPtr() uintptr {
	return uintptr(s.word(heapPtrOff))
}

// IsInline reports whether the content lives in the inline buffer.
func (s *String) IsInline() bool {
	return s.raw[tagOff]&tagInline != 0
}

// asHeap returns the raw heap words. Panics when the value is inline, so a
// shape mix-up fails loudly instead of misreading overlapped words.
func (s *String) asHeap() (ptr uintptr, length, capacity int) {
	if s.IsInline() {
		panic("tinystr: heap view of inline value")
	}
	return s.heapPtr(), int(s.word(heapLenOff)), int(s.word(heapCapOff))
}

// asInline views the inline content in place. Panics when the value is
// heap-resident.
func (s *String) asInline() []byte {
	if !s.IsInline() {
		panic("tinystr: inline view of heap value")
	}
	n := int(s.raw[tagOff] & lenMask)
	return s.raw[inlineOff : inlineOff+n]
}

// Len returns the logical length in bytes.
func (s *String) Len() int {
	if s.IsInline() {
		return int(s.raw[tagOff] & lenMask)
	}
	return int(s.word(heapLenOff))
}

// SetLen sets the logical length without writing content. The bytes up to n
// must already be initialized to valid UTF-8; this is an escape hatch for
// callers that fill the buffer through UnsafeBytes. Panics if n exceeds the
// current capacity.
func (s *String) SetLen(n int) {
	if n < 0 || n > s.Capacity() {
		panic("tinystr: length exceeds capacity")
	}
	if s.IsInline() {
		s.raw[tagOff] = byte(n) | tagInline
	} else {
		s.setWord(heapLenOff, uint(n))
	}
}

// setHeap installs the heap shape. length stays below MaxCapacity+1, so the
// tag bit ends up clear.
func (s *String) setHeap(ptr uintptr, length, capacity int) {
	s.setWord(heapPtrOff, uint(ptr))
	s.setWord(heapCapOff, uint(capacity))
	s.setWord(heapLenOff, uint(length))
}

// reset leaves the value as the empty inline string. Used both by New and to
// mark moved-from values so Release never runs twice over the same buffer.
func (s *String) reset() {
	s.raw = [rawSize]byte{}
	s.raw[tagOff] = tagInline
}

// bytes views the current content in place, whichever shape is active.
func (s *String) bytes() []byte {
	if s.IsInline() {
		return s.asInline()
	}
	ptr, n, _ := s.asHeap()
	return alloc.Bytes(ptr, n)
}
