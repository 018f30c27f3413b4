package ring

// Poly is a length-N vector of residues modulo the current prime of a
// ParameterSet. Unlike a full multi-prime RNS polynomial, a Poly here
// only ever holds one prime's residues at a time: spec.md's control flow
// drives the encryptors prime-by-prime across the modulus chain and
// reuses the same buffers for each prime (see spec.md §3 "Polynomial
// buffers" and §9 "Buffer aliasing"). Coeffs is ordinarily a re-slice of
// a mempool.Pool arena rather than an independent allocation; NewPoly
// below exists for tests and for standalone use of this package.
type Poly struct {
	Coeffs []ZZ
	// NTTForm records whether Coeffs holds bit-reversed-scrambled NTT
	// values or natural coefficient-order values. It is bookkeeping
	// only; it never changes how operations compute, only what they
	// are allowed to assume about their input.
	NTTForm bool
}

// NewPoly allocates an N-coefficient polynomial with its own backing
// array, all coefficients zero.
func NewPoly(n int) Poly {
	return Poly{Coeffs: make([]ZZ, n)}
}

// N returns the degree of the polynomial.
func (p Poly) N() int {
	return len(p.Coeffs)
}

// Zero sets every coefficient to zero.
func (p Poly) Zero() {
	for i := range p.Coeffs {
		p.Coeffs[i] = 0
	}
}

// CopyFrom overwrites p's coefficients with src's. Both must have equal
// length.
func (p Poly) CopyFrom(src Poly) {
	copy(p.Coeffs, src.Coeffs)
}

// Add writes p1+p2 mod q into p3; all three may be the same buffer.
func Add(p1, p2, p3 Poly, m Modulus) {
	for i := range p3.Coeffs {
		p3.Coeffs[i] = AddMod(p1.Coeffs[i], p2.Coeffs[i], m)
	}
}

// Sub writes p1-p2 mod q into p3.
func Sub(p1, p2, p3 Poly, m Modulus) {
	for i := range p3.Coeffs {
		p3.Coeffs[i] = SubMod(p1.Coeffs[i], p2.Coeffs[i], m)
	}
}

// Neg writes -p1 mod q into p2.
func Neg(p1, p2 Poly, m Modulus) {
	for i := range p2.Coeffs {
		p2.Coeffs[i] = NegMod(p1.Coeffs[i], m)
	}
}

// MulCoeffs writes the coefficient-wise (NOT negacyclic) product of p1
// and p2 into p3. Called on NTT-form buffers this implements negacyclic
// polynomial multiplication; called on coefficient-form buffers it is
// just the Hadamard product.
func MulCoeffs(p1, p2, p3 Poly, m Modulus) {
	for i := range p3.Coeffs {
		p3.Coeffs[i] = MulMod(p1.Coeffs[i], p2.Coeffs[i], m)
	}
}
