package tinystr

import (
	"bytes"
	"strings"
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

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

// UnsafeBytes views the content in place. The slice is valid only until the
// next mutation, Release, or copy of the value; caller must ensure that.
func (s *String) UnsafeBytes() []byte {
	return s.bytes()
}

// UnsafeString views the content as a string without copying, under the same
// lifetime rules as UnsafeBytes.
func (s *String) UnsafeString() string {
	b := s.bytes()
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// IsEmpty reports whether the value holds no bytes.
func (s *String) IsEmpty() bool { return s.Len() == 0 }

// AppendTo appends the content to dst and returns the extended slice.
func (s *String) AppendTo(dst []byte) []byte {
	return append(dst, s.bytes()...)
}

// Equal reports whether both values hold the same bytes.
func (s *String) Equal(o *String) bool {
	return bytes.Equal(s.bytes(), o.bytes())
}

// EqualString reports whether the content equals text.
func (s *String) EqualString(text string) bool {
	return s.UnsafeString() == text
}

// Compare orders two values bytewise like bytes.Compare.
func (s *String) Compare(o *String) int {
	return bytes.Compare(s.bytes(), o.bytes())
}

// CompareString orders the content against text.
func (s *String) CompareString(text string) int {
	return strings.Compare(s.UnsafeString(), text)
}

// Hash64 returns the xxhash-64 digest of the content.
func (s *String) Hash64() uint64 {
	return xxhash.Sum64(s.bytes())
}
