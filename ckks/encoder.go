// Package ckks implements the CKKS encode-encrypt core of spec.md §4.6-
// §4.8: the Encoder, the symmetric and asymmetric encryptor state
// machines, key material handles, and the ciphertext emission sink.
// Grounded throughout on the teacher's ckks/encoder.go and
// rlwe/encryptor.go.
package ckks

import (
	"math"

	"github.com/tinylattice/ckks-embedded/errs"
	"github.com/tinylattice/ckks-embedded/fft"
	"github.com/tinylattice/ckks-embedded/ring"
)

// Encoder turns a real vector into conj_vals_int (signed, unreduced)
// and from there into a ring.Poly reduced mod whichever prime the
// caller is currently working with. Grounded on the teacher's
// ckks/encoder.go Embed/ScaleUp split, generalised onto spec.md's
// gen=3 index map and its deliberately-unscaled IFFT (see fft.Backward).
type Encoder struct {
	N        int
	IndexMap fft.IndexMap
	IFFT     fft.RootSource
}

// NewEncoder builds an Encoder for degree n using the given index map
// and IFFT root-source policy.
func NewEncoder(n int, indexMap fft.IndexMap, ifftSource fft.RootSource) Encoder {
	return Encoder{N: n, IndexMap: indexMap, IFFT: ifftSource}
}

// EncodeBase runs spec.md §4.6 steps 1-3: v (length <= n/2) is embedded
// into conjVals via the index map, IFFT'd in place, then scaled by
// Δ/n, rounded, and written into conjValsInt. conjVals and conjValsInt
// are caller-owned scratch (typically mempool.Pool.ConjVals() and
// ConjValsInt(), which alias the same arena region per spec.md §3).
// Returns errs.EncodeOverflow if any scaled coefficient would not fit
// in an int64.
func (e Encoder) EncodeBase(v []float64, scale float64, conjVals []complex128, conjValsInt []int64) error {
	e.IndexMap.Embed(v, conjVals)
	e.IFFT.Backward(conjVals)

	nf := float64(e.N)
	for i := 0; i < e.N; i++ {
		scaled := real(conjVals[i]) * scale / nf
		rounded := math.Round(scaled)
		if rounded >= math.MaxInt64 || rounded < math.MinInt64 {
			return &errs.EncodeOverflow{Index: i, Value: rounded}
		}
		conjValsInt[i] = int64(rounded)
	}
	return nil
}

// ReduceModPrime runs spec.md §4.6 step 4: each signed, unreduced
// coefficient of conjValsInt is Barrett-reduced by absolute value and
// sign-mux'd into dst mod m, constant-time in the sign.
func ReduceModPrime(conjValsInt []int64, dst ring.Poly, m ring.Modulus) {
	for i, v := range conjValsInt {
		dst.Coeffs[i] = reduceSigned(v, m)
	}
}

// reduceSigned maps a signed int64 onto its residue mod q: |v| is
// reduced, then a sign mask selects between that residue and its
// negation, with no branch on the sign.
func reduceSigned(v int64, m ring.Modulus) ring.ZZ {
	sign := uint64(v >> 63) // all ones if v < 0
	abs := (uint64(v) ^ sign) - sign
	reduced := ring.BarrettReduceWide(0, abs, m)
	mask := ring.ZZ(sign)
	return (ring.NegMod(reduced, m) & mask) | (reduced &^ mask)
}
