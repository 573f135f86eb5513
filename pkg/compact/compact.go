// Package compact provides a read-optimized sibling of tinystr.String: two
// machine words instead of three, a smaller inline threshold (15 bytes on
// 64-bit targets, 7 on 32-bit), and no growth API. Heap-resident values are
// always exact-fit, so there is no capacity word; the saved word is what
// makes the type attractive for dense storage of many mostly-immutable
// short strings.
package compact

import (
	"bytes"
	"math/bits"
	"unsafe"

	"github.com/cespare/xxhash/v2"

	"github.com/rawbytedev/tinystr"
	"github.com/rawbytedev/tinystr/internal/alloc"
	"github.com/rawbytedev/tinystr/internal/common"
)

const (
	wordSize = bits.UintSize / 8
	rawSize  = 2 * wordSize

	// InlineCapacity is 15 on 64-bit targets, 7 on 32-bit.
	InlineCapacity = rawSize - 1

	// MaxLen keeps the high bit of the heap length word clear.
	MaxLen = 1<<(bits.UintSize-1) - 1

	tagInline byte = 1 << 7
	lenMask   byte = tagInline - 1
)

var mem alloc.Allocator = alloc.Default()

// String is the compact small-string value. Construction is the only
// mutation path; content never changes afterwards.
type String struct {
	raw [rawSize]byte
}

// Heap is the raw heap shape: buffer address and exact length.
type Heap struct {
	Ptr uintptr
	Len int
}

// Inline is the raw inline shape with the tag bit cleared in Len.
type Inline struct {
	Data [InlineCapacity]byte
	Len  byte
}

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

// Len returns the logical length in bytes.
func (s *String) Len() int {
	if s.IsInline() {
		return int(s.raw[tagOff] & lenMask)
	}
	return int(s.word(heapLenOff))
}

// IsEmpty reports whether the value holds no bytes.
func (s *String) IsEmpty() bool { return s.Len() == 0 }

func (s *String) bytes() []byte {
	n := s.Len()
	if s.IsInline() {
		return s.raw[inlineOff : inlineOff+n]
	}
	return alloc.Bytes(s.heapPtr(), n)
}

// New builds a value from text: inline when it fits, otherwise one exact-fit
// allocation.
func New(text string) String {
	return newIn(mem, text)
}

func newIn(a alloc.Allocator, text string) String {
	n := len(text)
	if n <= InlineCapacity {
		var s String
		copy(s.raw[inlineOff:], text)
		s.raw[tagOff] = byte(n) | tagInline
		return s
	}
	if n >= MaxLen {
		panic("compact: length out of range")
	}
	ptr := a.Alloc(n)
	copy(alloc.Bytes(ptr, n), text)
	var s String
	s.setWord(heapPtrOff, uint(ptr))
	s.setWord(heapLenOff, uint(n))
	return s
}

// FromBytes copies b into a new value. b must be valid UTF-8; use FromUTF8
// when that is not known.
func FromBytes(b []byte) String {
	return fromBytesIn(mem, b)
}

func fromBytesIn(a alloc.Allocator, b []byte) String {
	if len(b) == 0 {
		return newIn(a, "")
	}
	return newIn(a, unsafe.String(unsafe.SliceData(b), len(b)))
}

// FromUTF8 validates b and copies it on success. On failure the returned
// error is a *tinystr.Utf8Error carrying b and the failure offset.
func FromUTF8(b []byte) (String, error) {
	if pos, ok := common.ValidUTF8(b); !ok {
		return New(""), &tinystr.Utf8Error{Bytes: b, Pos: pos}
	}
	return FromBytes(b), nil
}

// Release frees the exact-fit buffer if one is owned and resets the value to
// the empty inline string. Safe to call more than once.
func (s *String) Release() {
	s.releaseIn(mem)
}

func (s *String) releaseIn(a alloc.Allocator) {
	if !s.IsInline() {
		if ptr := s.heapPtr(); ptr != 0 {
			a.Free(ptr, s.Len())
		}
	}
	s.raw = [rawSize]byte{}
	s.raw[tagOff] = tagInline
}

// Clone returns an independent copy. Heap-resident values always get a fresh
// exact-fit allocation; the buffer is never shared.
func (s *String) Clone() String {
	if s.IsInline() {
		return *s
	}
	return FromBytes(s.bytes())
}

// Bytes returns a copy of the content.
func (s *String) Bytes() []byte {
	out := make([]byte, s.Len())
	copy(out, s.bytes())
	return out
}

// String returns the content as an ordinary Go string, copying it.
func (s *String) String() string {
	return string(s.bytes())
}

// UnsafeString views the content without copying; valid only while the
// value is unmoved and unreleased.
func (s *String) UnsafeString() string {
	b := s.bytes()
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// Equal reports whether both values hold the same bytes.
func (s *String) Equal(o *String) bool {
	return bytes.Equal(s.bytes(), o.bytes())
}

// EqualString reports whether the content equals text.
func (s *String) EqualString(text string) bool {
	return s.UnsafeString() == text
}

// Hash64 returns the xxhash-64 digest of the content.
func (s *String) Hash64() uint64 {
	return xxhash.Sum64(s.bytes())
}

// ToHeap extracts the raw heap parts, marking the source as moved-from.
// Panics when the value is inline.
func (s *String) ToHeap() Heap {
	if s.IsInline() {
		panic("compact: to-heap of inline value")
	}
	h := Heap{Ptr: s.heapPtr(), Len: s.Len()}
	s.raw = [rawSize]byte{}
	s.raw[tagOff] = tagInline
	return h
}

// FromHeap is the inverse of ToHeap. It rejects parts whose length word
// would carry the inline tag bit.
func FromHeap(h Heap) String {
	if h.Len < 0 || h.Len >= MaxLen {
		panic("compact: malformed heap parts")
	}
	var s String
	s.setWord(heapPtrOff, uint(h.Ptr))
	s.setWord(heapLenOff, uint(h.Len))
	if s.IsInline() {
		panic("compact: heap parts carry the inline tag")
	}
	return s
}

// ToInline extracts the raw inline parts with the tag bit cleared, marking
// the source as moved-from. Panics when the value is heap-resident.
func (s *String) ToInline() Inline {
	if !s.IsInline() {
		panic("compact: to-inline of heap value")
	}
	var in Inline
	copy(in.Data[:], s.raw[inlineOff:inlineOff+InlineCapacity])
	in.Len = s.raw[tagOff] & lenMask
	s.raw = [rawSize]byte{}
	s.raw[tagOff] = tagInline
	return in
}

// FromInline is the inverse of ToInline, setting the tag bit on the way in.
func FromInline(in Inline) String {
	if int(in.Len) > InlineCapacity {
		panic("compact: inline length out of range")
	}
	var s String
	copy(s.raw[inlineOff:], in.Data[:])
	s.raw[tagOff] = in.Len | tagInline
	return s
}
