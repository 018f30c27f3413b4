package ring

import (
	"fmt"
	"math/bits"
)

// Table holds the precomputed twiddle-factor and scaling constants for a
// fixed (n, q), keyed by the same (kind, n, q) triple the table oracle
// uses on the wire (see the oracle package). It is produced either by
// GenerateTable (derived locally from a primitive root, at setup time or
// on a device with cycles to spare) or by decoding bytes the oracle
// served, grounded on the teacher's ring/ring.go genNTTParams derivation
// and ring/ntt_interface.go's NTTTable.
type Table struct {
	N             int
	Modulus       Modulus
	RootsForward  []MUMO // bit-reversed powers of psi, consumed by the forward NTT
	RootsBackward []MUMO // bit-reversed powers of psi^-1, consumed by the inverse NTT
	NInv          MUMO   // N^-1 mod q, applied once at the end of the inverse NTT
}

// GenerateTable derives a Table from a primitive 2n-th root of unity psi
// mod q by modular exponentiation and a single Fermat inversion (q is
// always prime, so a^(q-2) = a^-1 mod q).
func GenerateTable(n int, m Modulus, psi ZZ) Table {
	logN := bits.Len(uint(n)) - 1
	psiInv := ExpMod(psi, uint64(m.Value)-2, m)

	forward := make([]MUMO, n)
	backward := make([]MUMO, n)
	for i := 0; i < n; i++ {
		j := BitReverse(uint64(i), logN)
		forward[i] = NewMUMO(ExpMod(psi, j, m), m)
		backward[i] = NewMUMO(ExpMod(psiInv, j, m), m)
	}

	nInv := ExpMod(ZZ(uint64(n)%uint64(m.Value)), uint64(m.Value)-2, m)
	return Table{
		N:             n,
		Modulus:       m,
		RootsForward:  forward,
		RootsBackward: backward,
		NInv:          NewMUMO(nInv, m),
	}
}

// FindPrimitiveRoot searches for a primitive 2n-th root of unity mod q,
// for setup-time callers (tests and table generation tooling) that only
// have a modulus and need a compatible psi from scratch. It is never
// called on the constrained device itself, which always receives psi
// from a table already computed offline.
func FindPrimitiveRoot(n int, m Modulus) (ZZ, error) {
	twoN := uint64(2 * n)
	exp := (uint64(m.Value) - 1) / twoN
	for g := ZZ(2); g < m.Value; g++ {
		psi := ExpMod(g, exp, m)
		if ExpMod(psi, uint64(n), m) == m.Value-1 {
			return psi, nil
		}
	}
	return 0, fmt.Errorf("ring: no primitive %d-th root of unity found mod %d", twoN, m.Value)
}
