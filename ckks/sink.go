package ckks

import (
	"unsafe"

	"github.com/tinylattice/ckks-embedded/ring"
)

// Sink is the caller-provided ciphertext emission point of spec.md §6:
// "emit(bytes, nbytes) -> nbytes_written". It is called with raw
// polynomial memory at the arena offset, in host byte order (unlike the
// table oracle's wire format, which is always little-endian regardless
// of host).
type Sink interface {
	Emit(data []byte) (int, error)
}

// EmitPoly hands p's backing ring.ZZ words to sink as raw host-order
// bytes, without a copy: this is the "raw polynomial memory at the
// arena offset" spec.md describes, not a serialisation step.
func EmitPoly(sink Sink, p ring.Poly) (int, error) {
	if len(p.Coeffs) == 0 {
		return sink.Emit(nil)
	}
	bytePtr := (*byte)(unsafe.Pointer(&p.Coeffs[0]))
	data := unsafe.Slice(bytePtr, len(p.Coeffs)*4)
	return sink.Emit(data)
}

// EmitSeed hands a PRNG seed to sink, the "emit the shareable PRNG's
// seed once, in lieu of all c1 values" space-saving option spec.md §4.7
// describes.
func EmitSeed(sink Sink, seed [ring.PRNGSeedSize]byte) (int, error) {
	return sink.Emit(seed[:])
}
