package compact

import (
	"fmt"
	"testing"
)

func BenchmarkNewInline(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := New("short value")
		s.Release()
	}
}

func BenchmarkNewHeap(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := New("a value past the inline threshold")
		s.Release()
	}
}

func BenchmarkPoolAddInterned(b *testing.B) {
	p := NewPool(PoolOptions{Intern: true})
	defer p.Release()
	keys := make([]string, 64)
	for i := range keys {
		keys[i] = fmt.Sprintf("interned-key-%02d", i)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Add(keys[i%len(keys)])
	}
}
