package compact

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/rawbytedev/tinystr"
	"github.com/rawbytedev/tinystr/internal/alloc"
	"github.com/rawbytedev/tinystr/internal/common"
)

var (
	ErrSnapshotTruncated = errors.New("compact: truncated snapshot")
	ErrPoolIndex         = errors.New("compact: pool index out of bounds")
)

// PoolOptions controls Pool behaviour.
type PoolOptions struct {
	// Intern deduplicates identical strings: Add returns the index of the
	// existing entry instead of storing a second copy.
	Intern bool

	// Allocator backs the heap-resident entries. Nil selects the package
	// default. A pool with its own allocator keeps its memory accounting
	// separate from every standalone value.
	Allocator alloc.Allocator
}

// Pool is an append-only dense store of compact strings. It has no internal
// synchronization; a pool has a single logical owner, like the values it
// holds. Release frees every heap-resident entry.
type Pool struct {
	opts  PoolOptions
	mem   alloc.Allocator
	items []String
	index map[uint64][]int // content hash -> candidate indexes
}

func NewPool(opts PoolOptions) *Pool {
	p := &Pool{opts: opts, mem: opts.Allocator}
	if p.mem == nil {
		p.mem = alloc.Default()
	}
	if opts.Intern {
		p.index = make(map[uint64][]int)
	}
	return p
}

// Len reports the number of stored strings.
func (p *Pool) Len() int { return len(p.items) }

// Add stores text and returns its index. With interning on, an identical
// existing entry is reused.
func (p *Pool) Add(text string) int {
	if p.opts.Intern {
		h := newIn(p.mem, text)
		sum := h.Hash64()
		for _, i := range p.index[sum] {
			if p.items[i].EqualString(text) {
				h.releaseIn(p.mem)
				return i
			}
		}
		i := len(p.items)
		p.items = append(p.items, h)
		p.index[sum] = append(p.index[sum], i)
		return i
	}
	i := len(p.items)
	p.items = append(p.items, newIn(p.mem, text))
	return i
}

// At returns the string at index i. Panics on an out-of-range index.
func (p *Pool) At(i int) *String {
	if i < 0 || i >= len(p.items) {
		panic(ErrPoolIndex)
	}
	return &p.items[i]
}

// Release frees every entry and empties the pool.
func (p *Pool) Release() {
	for i := range p.items {
		p.items[i].releaseIn(p.mem)
	}
	p.items = p.items[:0]
	if p.index != nil {
		p.index = make(map[uint64][]int)
	}
}

// Snapshot serializes the pool as zstd-compressed length-prefixed entries.
func (p *Pool) Snapshot() ([]byte, error) {
	est := 8
	for i := range p.items {
		est += 2 + p.items[i].Len()
	}
	raw := make([]byte, 0, est)
	raw = common.WriteVarUint(raw, uint64(len(p.items)))
	for i := range p.items {
		b := p.items[i].bytes()
		raw = common.WriteVarUint(raw, uint64(len(b)))
		raw = append(raw, b...)
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, fmt.Errorf("compact: snapshot encoder: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

// Restore replaces the pool contents from a Snapshot payload. Entries are
// validated as UTF-8; restored values are fresh exact-fit allocations.
func (p *Pool) Restore(data []byte) error {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return fmt.Errorf("compact: snapshot decoder: %w", err)
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return fmt.Errorf("compact: snapshot decode: %w", err)
	}

	count, n := common.ReadVarUint(raw)
	if n == 0 {
		return ErrSnapshotTruncated
	}
	cursor := n
	// every entry carries at least its one-byte length prefix, so a count
	// beyond the remaining payload cannot be honest
	if count > uint64(len(raw)-cursor) {
		return ErrSnapshotTruncated
	}
	items := make([]String, 0, count)
	release := func() {
		for i := range items {
			items[i].releaseIn(p.mem)
		}
	}
	for i := uint64(0); i < count; i++ {
		size, n := common.ReadVarUint(raw[cursor:])
		if n == 0 {
			release()
			return ErrSnapshotTruncated
		}
		cursor += n
		if uint64(len(raw)-cursor) < size {
			release()
			return ErrSnapshotTruncated
		}
		entry := raw[cursor : cursor+int(size)]
		if pos, ok := common.ValidUTF8(entry); !ok {
			release()
			return &tinystr.Utf8Error{Bytes: entry, Pos: pos}
		}
		cursor += int(size)
		items = append(items, fromBytesIn(p.mem, entry))
	}

	p.Release()
	p.items = items
	if p.opts.Intern {
		p.index = make(map[uint64][]int, len(items))
		for i := range items {
			sum := items[i].Hash64()
			p.index[sum] = append(p.index[sum], i)
		}
	}
	return nil
}
