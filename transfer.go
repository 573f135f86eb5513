package tinystr

import "unsafe"

// Heap is the raw heap shape: an owned buffer address plus length and
// capacity. Produced by ToHeap and consumed by FromHeap; whoever holds a
// Heap is responsible for eventually reinjecting or freeing it.
type Heap struct {
	Ptr uintptr
	Len int
	Cap int
}

// Inline is the raw inline shape. Len carries the logical length with the
// tag bit already cleared.
type Inline struct {
	Data [InlineCapacity]byte
	Len  byte
}

// ToHeap extracts the raw heap parts, marking the source as moved-from so
// its Release becomes a no-op. Panics when the value is inline; call
// MoveToHeap first when unsure.
func (s *String) ToHeap() Heap {
	if s.IsInline() {
		panic("tinystr: to-heap of inline value")
	}
	ptr, length, capacity := s.asHeap()
	h := Heap{Ptr: ptr, Len: length, Cap: capacity}
	s.reset()
	return h
}

// FromHeap is the inverse of ToHeap. It rejects parts whose length word
// would carry the inline tag bit.
func FromHeap(h Heap) String {
	if h.Len < 0 || h.Cap < 0 || h.Len > h.Cap || h.Cap >= MaxCapacity {
		panic("tinystr: malformed heap parts")
	}
	var s String
	s.setHeap(h.Ptr, h.Len, h.Cap)
	if s.IsInline() {
		panic("tinystr: heap parts carry the inline tag")
	}
	return s
}

// ToInline extracts the raw inline parts with the tag bit cleared, marking
// the source as moved-from. Panics when the value is heap-resident.
func (s *String) ToInline() Inline {
	if !s.IsInline() {
		panic("tinystr: to-inline of heap value")
	}
	var in Inline
	copy(in.Data[:], s.raw[inlineOff:inlineOff+InlineCapacity])
	in.Len = byte(len(s.asInline()))
	s.reset()
	return in
}

// FromInline is the inverse of ToInline, setting the tag bit on the way in.
func FromInline(in Inline) String {
	if int(in.Len) > InlineCapacity {
		panic("tinystr: inline length out of range")
	}
	var s String
	copy(s.raw[inlineOff:], in.Data[:])
	s.raw[tagOff] = in.Len | tagInline
	return s
}

// IntoBytes converts the value into a conventional growable buffer. Inline
// values are promoted first so the result always owns real memory; the
// buffer leaves the allocator and belongs to the garbage collector from here
// on. The source is left moved-from.
func (s *String) IntoBytes() []byte {
	if s.IsInline() {
		s.MoveToHeap(s.Len())
	}
	ptr, n, capacity := s.asHeap()
	if ptr == 0 {
		s.setHeap(mem.Alloc(0), 0, 0)
		ptr, n, capacity = s.asHeap()
	}
	b := mem.Take(ptr, capacity)
	s.reset()
	return b[:n]
}

// IntoString converts the value into an ordinary Go string without copying
// the content. The source is left moved-from.
func (s *String) IntoString() string {
	b := s.IntoBytes()
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
