// Package tinystr implements a small-string value with the same physical
// size as a []byte header. Short strings live entirely inside the value (23
// bytes on 64-bit targets, 11 on 32-bit); longer ones move to a manually
// managed heap buffer. One bit distinguishes the two shapes: the high bit of
// the byte that overlays the most significant byte of the heap length word.
// Capacities are capped one bit short of the address width so a legitimate
// heap length can never set that bit.
//
// Values own their heap buffer exclusively. Call Release when a value may be
// heap-resident and is no longer needed; Release on an inline value is free.
// Moving a value between goroutines is fine as long as only one of them uses
// it afterwards, exactly like handing off a buffer.
//
// The zero value reads as an empty string and allocates on first mutation.
// New returns the empty inline value, which grows allocation-free up to
// InlineCapacity.
package tinystr

import (
	"fmt"
	"unicode/utf8"
	"unsafe"

	"github.com/rawbytedev/tinystr/internal/alloc"
	"github.com/rawbytedev/tinystr/internal/common"
)

var mem alloc.Allocator = alloc.Default()

// String is the small-string value. It is three machine words wide; copying
// a heap-resident String aliases the buffer, so treat copies as moves.
type String struct {
	raw [rawSize]byte
}

// Utf8Error reports construction from bytes that are not valid UTF-8. It
// carries the rejected input so the caller can salvage it.
type Utf8Error struct {
	Bytes []byte
	Pos   int
}

func (e *Utf8Error) Error() string {
	return fmt.Sprintf("tinystr: invalid utf-8 at byte %d", e.Pos)
}

// New returns the empty inline string.
func New() String {
	var s String
	s.raw[tagOff] = tagInline
	return s
}

// WithCapacity returns an empty string that can hold capacity bytes before
// growing. Capacities up to InlineCapacity stay inline and allocate nothing.
func WithCapacity(capacity int) String {
	if capacity < 0 || capacity >= MaxCapacity {
		panic("tinystr: capacity out of range")
	}
	s := New()
	if capacity > InlineCapacity {
		s.MoveToHeap(capacity)
	}
	return s
}

// FromString copies text into a new value: inline when it fits, otherwise a
// single allocation sized exactly to the input.
func FromString(text string) String {
	s := WithCapacity(len(text))
	s.PushString(text)
	return s
}

// FromBuffer adopts b's backing array without copying, like converting an
// owned growable buffer. The caller must not use b afterwards. b must be
// valid UTF-8; use FromUTF8 when that is not known. A zero-capacity buffer
// falls back to the empty inline value.
func FromBuffer(b []byte) String {
	if cap(b) == 0 {
		return New()
	}
	if cap(b) >= MaxCapacity {
		panic("tinystr: capacity out of range")
	}
	length := len(b)
	capacity := cap(b)
	var s String
	s.setHeap(mem.Adopt(b), length, capacity)
	return s
}

// FromUTF8 validates b and adopts it on success. On failure the returned
// error is a *Utf8Error carrying b and the offset of the first bad byte.
func FromUTF8(b []byte) (String, error) {
	if pos, ok := common.ValidUTF8(b); !ok {
		return New(), &Utf8Error{Bytes: b, Pos: pos}
	}
	return FromBuffer(b), nil
}

// FromUTF8Unchecked adopts b without validation. The caller attests that b
// is valid UTF-8; views handed out later assume it.
func FromUTF8Unchecked(b []byte) String {
	return FromBuffer(b)
}

// FromRawParts reconstructs a heap-resident value from raw parts previously
// produced by ToHeap or IntoBytes-style extraction. The parts must describe
// a live allocation; anything else is the caller's responsibility.
func FromRawParts(ptr uintptr, length, capacity int) String {
	return FromHeap(Heap{Ptr: ptr, Len: length, Cap: capacity})
}

// Release frees the heap buffer if one is owned and resets the value to the
// empty inline string. Safe to call more than once.
func (s *String) Release() {
	if !s.IsInline() {
		if ptr, _, capacity := s.asHeap(); ptr != 0 {
			mem.Free(ptr, capacity)
		}
	}
	s.reset()
}

// Clone returns an independent copy. Inline values copy by plain bit copy;
// heap values get a fresh buffer sized to the current length, dropping any
// capacity slack.
func (s *String) Clone() String {
	if s.IsInline() {
		return *s
	}
	c := WithCapacity(s.Len())
	c.pushBytes(s.bytes())
	return c
}

// PushString appends text, growing to the next power of two when capacity
// runs out.
func (s *String) PushString(text string) {
	s.pushBytes(stringBytes(text))
}

// Push appends a single rune, UTF-8 encoded.
func (s *String) Push(r rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	s.pushBytes(buf[:n])
}

// Truncate shortens the value to n bytes. A no-op when n >= Len. Truncation
// is byte-based; cutting inside a multi-byte rune leaves a partial sequence.
func (s *String) Truncate(n int) {
	if n < 0 {
		panic("tinystr: negative length")
	}
	if n < s.Len() {
		s.SetLen(n)
	}
}

func (s *String) pushBytes(b []byte) {
	oldLen := s.Len()
	newLen := oldLen + len(b)
	if s.IsInline() {
		if newLen > InlineCapacity {
			s.MoveToHeap(nextPow2(newLen))
		}
	} else if newLen > s.Capacity() {
		s.resize(nextPow2(newLen))
	}
	s.SetLen(newLen)
	copy(s.bytes()[oldLen:], b)
}

// stringBytes views text's bytes without copying; read-only use.
func stringBytes(text string) []byte {
	if len(text) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(text), len(text))
}
