//go:build 386 || amd64 || amd64p32 || arm || arm64 || loong64 || mips64le || mipsle || ppc64le || riscv64 || wasm

package compact

// Little-endian targets: heap words are ptr, len so the most significant
// byte of the len word is the last byte of the value, overlaying the inline
// tag byte.
const (
	heapPtrOff = 0
	heapLenOff = wordSize

	inlineOff = 0
	tagOff    = rawSize - 1
)
