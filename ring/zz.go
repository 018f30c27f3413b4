// Package ring implements the residue-number-system polynomial arithmetic
// that backs the CKKS encode/encrypt core: modular arithmetic over
// 30-bit NTT-friendly primes, the negacyclic NTT/INTT, a SHAKE256-based
// PRNG, and the uniform/ternary/CBD samplers used to build ciphertexts.
package ring

import (
	"fmt"
	"math/big"
	"math/bits"
)

// ZZ is the machine word used to store polynomial coefficients. It must be
// wide enough to hold any supported modulus plus two bits of headroom for
// the lazy Harvey butterfly's [0, 4q) range, so a 30-bit-prime profile
// uses a 32-bit word.
type ZZ = uint32

// ZZWide is the double-width type used for products of two ZZ values and
// for the Barrett reduction operands.
type ZZWide = uint64

// ZZSign is the signed companion of ZZ, used for branchless negation and
// sign-mux tricks (see NegMod and the encoder's sign-aware reduction).
type ZZSign = int32

// MaxModulusBits is the largest bit length a supported modulus may have.
const MaxModulusBits = 30

// Modulus is a prime q <= 2^30 plus its precomputed Barrett reduction
// operand. ConstRatio is floor(2^64/q), split into two ZZ words
// (ConstRatioHi<<32 | ConstRatioLo) as required by spec.md's data model;
// Barrett arithmetic below reassembles the pair into a ZZWide before use.
type Modulus struct {
	Value        ZZ
	ConstRatioHi ZZ
	ConstRatioLo ZZ
}

// constRatio reassembles the two-word Barrett operand into a single
// 64-bit ratio for use in the reduction formulas below.
func (m Modulus) constRatio() ZZWide {
	return ZZWide(m.ConstRatioHi)<<32 | ZZWide(m.ConstRatioLo)
}

// NewModulus validates q and precomputes its Barrett operand. q must be
// a prime of at most MaxModulusBits bits; q = 2 is accepted (the
// NTT-friendliness check q = 1 mod 2n is the caller's responsibility,
// since n is not known here).
func NewModulus(q ZZ) (Modulus, error) {
	if q < 2 {
		return Modulus{}, fmt.Errorf("ring: invalid modulus %d (must be >= 2)", q)
	}
	if bits.Len32(q) > MaxModulusBits {
		return Modulus{}, fmt.Errorf("ring: modulus %d exceeds %d bits", q, MaxModulusBits)
	}
	if !IsPrime(uint64(q)) {
		return Modulus{}, fmt.Errorf("ring: modulus %d is not prime", q)
	}

	// floor(2^64/q): compute via a single hardware long-division of the
	// 128-bit dividend {hi=1, lo=0} by q, exactly as math/bits exposes it.
	quo, _ := bits.Div64(1, 0, uint64(q))

	return Modulus{
		Value:        q,
		ConstRatioHi: ZZ(quo >> 32),
		ConstRatioLo: ZZ(quo),
	}, nil
}

// BitLen returns the bit length of q.
func (m Modulus) BitLen() int {
	return bits.Len32(m.Value)
}

// NewUint is a convenience constructor mirroring the teacher's ring.NewUint:
// it returns v as a *big.Int. No code in this module calls it.
func NewUint(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}
