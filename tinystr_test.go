package tinystr

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmpty(t *testing.T) {
	s := New()
	assert.True(t, s.IsInline())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, InlineCapacity, s.Capacity())
	assert.True(t, s.IsEmpty())
	assert.Equal(t, "", s.String())
}

func TestMisc(t *testing.T) {
	p1 := "Hello World!"
	p2 := "Hello World! .........xyz"
	p3 := " .........xyz"

	s1 := FromString(p1)
	assert.True(t, s1.EqualString(p1))

	s2 := FromString(p2)
	assert.True(t, s2.EqualString(p2))

	s3 := s1.Clone()
	s3.PushString(p3)
	assert.True(t, s3.EqualString(p2))

	s1.Release()
	s2.Release()
	s3.Release()
}

func TestInlineThreshold(t *testing.T) {
	s := FromString("Hello World!") // 12 bytes
	require.True(t, s.IsInline())
	assert.Equal(t, 12, s.Len())

	long := "Hello World! ........." // 22 bytes, still inline on 64-bit
	longer := long + "...."          // 26 bytes, heap everywhere
	v := FromString(longer)
	require.False(t, v.IsInline())
	assert.Equal(t, 26, v.Len())
	assert.GreaterOrEqual(t, v.Capacity(), 26)
	assert.Equal(t, longer, v.String())
	v.Release()
}

func TestAppendPromotes(t *testing.T) {
	s := FromString("Hello World!")
	require.True(t, s.IsInline())
	s.PushString(" .........xyz!")
	assert.Equal(t, 26, s.Len())
	assert.False(t, s.IsInline())
	assert.GreaterOrEqual(t, s.Capacity(), s.Len())
	assert.Equal(t, "Hello World! .........xyz!", s.String())
	s.Release()
}

func TestPushRune(t *testing.T) {
	s := New()
	s.Push('H')
	s.Push('é')
	s.Push('世')
	assert.Equal(t, "Hé世", s.String())
	assert.True(t, s.IsInline())
}

func TestTruncate(t *testing.T) {
	s := FromString("Hello World!")
	s.Truncate(5)
	assert.Equal(t, "Hello", s.String())
	s.Truncate(100) // no-op
	assert.Equal(t, "Hello", s.String())
	assert.Panics(t, func() { s.Truncate(-1) })
}

func TestPromotionMonotonic(t *testing.T) {
	s := FromString("Hello World! .........xyz")
	require.False(t, s.IsInline())
	s.Truncate(3)
	// truncation shortens but never demotes
	assert.False(t, s.IsInline())
	s.PushString("!")
	assert.False(t, s.IsInline())
	assert.Equal(t, "Hel!", s.String())
	s.Release()
}

func TestFromUTF8(t *testing.T) {
	s, err := FromUTF8([]byte("héllo"))
	require.NoError(t, err)
	assert.Equal(t, "héllo", s.String())
	s.Release()

	bad := []byte{'o', 'k', 0xff, 0xfe}
	_, err = FromUTF8(bad)
	require.Error(t, err)
	var ue *Utf8Error
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, 2, ue.Pos)
	assert.Equal(t, bad, ue.Bytes) // input handed back for salvage
}

func TestFromUTF8Unchecked(t *testing.T) {
	b := []byte("unchecked but fine and long enough to be heap")
	s := FromUTF8Unchecked(b)
	assert.False(t, s.IsInline())
	assert.Equal(t, "unchecked but fine and long enough to be heap", s.String())
	s.Release()
}

func TestCloneIndependence(t *testing.T) {
	s := FromString("Hello World! .........xyz")
	c := s.Clone()
	require.False(t, c.IsInline())
	assert.Equal(t, c.Len(), c.Capacity()) // capacity slack not preserved

	c.PushString("!!!")
	assert.Equal(t, "Hello World! .........xyz", s.String())
	assert.Equal(t, "Hello World! .........xyz!!!", c.String())

	s.PushString("???")
	assert.Equal(t, "Hello World! .........xyz!!!", c.String())

	s.Release()
	c.Release()
}

func TestZeroValue(t *testing.T) {
	var s String
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "", s.String())
	s.PushString("grows on first write, even past the inline threshold")
	assert.Equal(t, "grows on first write, even past the inline threshold", s.String())
	s.Release()
}

func TestRoundTrip(t *testing.T) {
	condition := func(text string) bool {
		s := FromString(text)
		ok := s.String() == text &&
			s.Len() == len(text) &&
			s.Capacity() >= s.Len() &&
			s.IsInline() == (len(text) <= InlineCapacity)
		s.Release()
		return ok
	}
	if err := quick.Check(condition, &quick.Config{}); err != nil {
		t.Errorf("Error: %v", err)
	}
}

func TestAppendProperty(t *testing.T) {
	condition := func(a, b string) bool {
		s := FromString(a)
		s.PushString(b)
		ok := s.Len() == len(a)+len(b) &&
			s.Capacity() >= s.Len() &&
			s.String() == a+b
		s.Release()
		return ok
	}
	if err := quick.Check(condition, &quick.Config{}); err != nil {
		t.Errorf("Error: %v", err)
	}
}

func FuzzPushString(f *testing.F) {
	f.Add("Hello World!", " .........xyz")
	f.Add("", "")
	f.Fuzz(fuzzAppend)
}

func fuzzAppend(t *testing.T, a, b string) {
	s := FromString(a)
	s.PushString(b)
	require.Equal(t, a+b, s.String())
	require.GreaterOrEqual(t, s.Capacity(), s.Len())
	s.Release()
}

func TestCompareAndHash(t *testing.T) {
	a := FromString("abc")
	b := FromString("abd")
	c := FromString("abc")
	assert.True(t, a.Equal(&c))
	assert.False(t, a.Equal(&b))
	assert.Negative(t, a.Compare(&b))
	assert.Positive(t, b.Compare(&a))
	assert.Zero(t, a.Compare(&c))
	assert.Equal(t, 0, a.CompareString("abc"))
	assert.Equal(t, a.Hash64(), c.Hash64())
	assert.NotEqual(t, a.Hash64(), b.Hash64())
}

func TestAppendTo(t *testing.T) {
	s := FromString("World")
	out := s.AppendTo([]byte("Hello "))
	assert.Equal(t, "Hello World", string(out))
}
