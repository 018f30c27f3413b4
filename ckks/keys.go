package ckks

import "github.com/tinylattice/ckks-embedded/ring"

// SecretKeyForm tags which representation a secret-key buffer holds.
// Spec.md §9 notes the source tracked this via flags and out-of-band
// discipline ("secret-key form is not a type distinction in the
// source") and recommends carrying the form on the type instead, so
// that an accidental cross-form operation (e.g. multiplying a
// coefficient-form key against an NTT-form ciphertext) is a compile
// error rather than a silent correctness bug. Compressed, Expanded and
// ExpandedNTT below are that typed handle.
type SecretKeyForm int

const (
	SecretKeyCompressed SecretKeyForm = iota
	SecretKeyExpanded
	SecretKeyExpandedNTT
)

// SecretKeyCompressedHandle wraps the 2-bit-packed wire form of the
// secret key, as served by the table oracle's sk(n).
type SecretKeyCompressedHandle struct {
	Packed ring.TernaryCompressed
}

// Expand lifts the compressed key to coefficient-form residues mod m,
// spec.md's "expand" operation.
func (h SecretKeyCompressedHandle) Expand(m ring.Modulus) SecretKeyExpandedHandle {
	pol := ring.NewPoly(h.Packed.N)
	return h.ExpandInto(pol, m)
}

// ExpandInto is Expand, writing into a caller-owned dst instead of
// allocating. Encryptors that already hold a per-prime scratch buffer
// (spec.md §5's MemPool discipline) use this to avoid a fresh
// allocation on every prime in the chain.
func (h SecretKeyCompressedHandle) ExpandInto(dst ring.Poly, m ring.Modulus) SecretKeyExpandedHandle {
	ring.Expand(h.Packed, dst, m)
	return SecretKeyExpandedHandle{Poly: dst}
}

// SecretKeyExpandedHandle wraps a coefficient-form (non-NTT) secret key
// already reduced mod some prime.
type SecretKeyExpandedHandle struct {
	Poly ring.Poly
}

// ConvertInPlace re-reduces an expanded secret key against a new prime,
// spec.md's "convert-in-place" operation: since every ternary
// coefficient is one of {-1, 0, 1}, converting to a new modulus is
// exactly re-running the {0,1}→{q'-1,0,1} map, never a full division.
func (h SecretKeyExpandedHandle) ConvertInPlace(m ring.Modulus) {
	for i, c := range h.Poly.Coeffs {
		switch {
		case c == 0:
			// already 0 under any modulus
		case c == 1:
			// already 1 under any modulus
		default:
			// was q_old-1 (i.e. -1); re-express as q_new-1
			h.Poly.Coeffs[i] = m.Value - 1
		}
	}
}

// ToNTT NTT-transforms a copy of the expanded key using table t,
// yielding the form the encryptors actually multiply against.
func (h SecretKeyExpandedHandle) ToNTT(t ring.Table) SecretKeyExpandedNTTHandle {
	ntt := ring.NewPoly(h.Poly.N())
	return h.ToNTTInto(ntt, t)
}

// ToNTTInto is ToNTT, writing into a caller-owned dst instead of
// allocating; see ExpandInto.
func (h SecretKeyExpandedHandle) ToNTTInto(dst ring.Poly, t ring.Table) SecretKeyExpandedNTTHandle {
	dst.CopyFrom(h.Poly)
	ring.NTTForward(dst, t)
	return SecretKeyExpandedNTTHandle{Poly: dst}
}

// SecretKeyExpandedNTTHandle wraps a secret key in NTT form for a fixed
// prime, the form actually consumed by SymEncryptor.
type SecretKeyExpandedNTTHandle struct {
	Poly ring.Poly
}

// PublicKey is the per-prime (pk0, pk1) pair of spec.md §3, always
// consumed in NTT form.
type PublicKey struct {
	PK0, PK1 ring.Poly
}
