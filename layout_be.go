//go:build armbe || arm64be || m68k || mips || mips64 || mips64p32 || ppc || ppc64 || s390 || s390x || shbe || sparc || sparc64

package tinystr

// Big-endian targets: heap words are len, ptr, cap so the most significant
// byte of the len word is byte zero, which is where the inline shape keeps
// its tag byte. Inline data follows the tag.
const (
	heapLenOff = 0
	heapPtrOff = wordSize
	heapCapOff = 2 * wordSize

	inlineOff = 1
	tagOff    = 0
)
