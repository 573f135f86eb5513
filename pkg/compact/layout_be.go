//go:build armbe || arm64be || m68k || mips || mips64 || mips64p32 || ppc || ppc64 || s390 || s390x || shbe || sparc || sparc64

package compact

// Big-endian targets: heap words are len, ptr so the most significant byte
// of the len word is byte zero, overlaying the inline tag byte.
const (
	heapLenOff = 0
	heapPtrOff = wordSize

	inlineOff = 1
	tagOff    = 0
)
