//go:build 386 || amd64 || amd64p32 || arm || arm64 || loong64 || mips64le || mipsle || ppc64le || riscv64 || wasm

package tinystr

// Little-endian targets: heap words are ptr, cap, len so the most significant
// byte of the len word is the last byte of the value, which is where the
// inline shape keeps its tag byte.
const (
	heapPtrOff = 0
	heapCapOff = wordSize
	heapLenOff = 2 * wordSize

	inlineOff = 0
	tagOff    = rawSize - 1
)
