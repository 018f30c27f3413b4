package ckks

import (
	"errors"

	"github.com/tinylattice/ckks-embedded/errs"
	"github.com/tinylattice/ckks-embedded/mempool"
	"github.com/tinylattice/ckks-embedded/params"
	"github.com/tinylattice/ckks-embedded/ring"
)

// AsymEncryptor drives the asymmetric (public-key) encryption state
// machine of spec.md §4.8: c0 = pk0·u + m + e0, c1 = pk1·u + e1, with u
// (ternary) and e0, e1 (CBD) sampled once and the public key consumed
// fresh per prime. Same state shape as SymEncryptor, grounded on the
// same rlwe/encryptor.go EncryptorPublicKey precedent.
type AsymEncryptor struct {
	parms   *params.Parms
	pool    *mempool.Pool
	cfg     params.Config
	encoder Encoder

	privPRNG *ring.PRNG

	u       ring.TernaryCompressed // compressed if cfg small_u, else re-expanded per-prime from this
	e1      []int32                // raw signed CBD samples, sampled once
	state   State

	uExpanded ring.Poly // scratch, current prime
	uNTT      ring.Poly // scratch, current prime
	e0NTT     ring.Poly // (m+e0) reduced and NTT'd, current prime
	e1NTT     ring.Poly // e1 reduced and NTT'd, current prime
}

// NewAsymEncryptor builds an AsymEncryptor for the given parameters,
// pool and encoder.
func NewAsymEncryptor(p *params.Parms, pool *mempool.Pool, cfg params.Config, encoder Encoder) *AsymEncryptor {
	n := p.N()
	return &AsymEncryptor{
		parms:     p,
		pool:      pool,
		cfg:       cfg,
		encoder:   encoder,
		state:     StateIdle,
		uExpanded: ring.NewPoly(n),
		uNTT:      ring.NewPoly(n),
		e0NTT:     ring.NewPoly(n),
		e1NTT:     ring.NewPoly(n),
	}
}

// EncodeBase runs the Idle -> Encoded transition, identical in shape to
// SymEncryptor's.
func (a *AsymEncryptor) EncodeBase(v []float64) error {
	if a.state != StateIdle {
		return &errs.AssertionError{Msg: "EncodeBase called outside the Idle state"}
	}
	if err := a.encoder.EncodeBase(v, a.parms.Scale(), a.pool.ConjVals(), a.pool.ConjValsInt()); err != nil {
		return err
	}
	a.state = StateEncoded
	return nil
}

// Init runs the Encoded -> ErrorAdded transition: asym_init resets the
// private PRNG, samples u (ternary) and e0 (added into conj_vals_int),
// and samples e1, all once for the whole encryption.
func (a *AsymEncryptor) Init(seed []byte) error {
	if a.state != StateEncoded {
		return &errs.AssertionError{Msg: "Init called outside the Encoded state"}
	}

	if a.privPRNG == nil {
		a.privPRNG = &ring.PRNG{}
	}
	if err := a.privPRNG.Randomize(seed); err != nil {
		return &errs.EntropyError{Msg: err.Error()}
	}

	n := a.parms.N()
	ternary := ring.NewTernarySampler(a.privPRNG)
	a.u = ring.NewTernaryCompressed(n)
	ternary.ReadCompressed(a.u)

	e0 := ring.NewCBDSampler(a.privPRNG)
	e0.AddInto(a.pool.ConjValsInt())

	e1 := ring.NewCBDSampler(a.privPRNG)
	a.e1 = make([]int32, n)
	for i := range a.e1 {
		a.e1[i] = e1.SampleSigned()
	}

	a.state = StateErrorAdded
	return nil
}

// prepareU expands u against the current prime and NTT-transforms it
// into a.uNTT; since u is ternary, re-expanding against a different
// prime is the same cheap {0,1}-preserving map ckks.SecretKeyExpandedHandle
// uses for the secret key.
func (a *AsymEncryptor) prepareU(m ring.Modulus, t ring.Table) {
	ring.Expand(a.u, a.uExpanded, m)
	a.uNTT.CopyFrom(a.uExpanded)
	ring.NTTForward(a.uNTT, t)
}

// prepareErrorNTT reduces conj_vals_int (m+e0) and the once-sampled e1
// into NTT form for the current prime.
func (a *AsymEncryptor) prepareErrorNTT(m ring.Modulus, t ring.Table) {
	ReduceModPrime(a.pool.ConjValsInt(), a.e0NTT, m)
	ring.NTTForward(a.e0NTT, t)

	for i, v := range a.e1 {
		a.e1NTT.Coeffs[i] = ring.SignedToMod(v, m)
	}
	ring.NTTForward(a.e1NTT, t)
}

// EncryptPrime runs one per-prime step of spec.md §4.8: loads pk0, pk1
// (already in NTT form), computes pk0·ntt(u) and pk1·ntt(u), then adds
// the reduced-and-NTT'd error terms to form c0 and c1.
func (a *AsymEncryptor) EncryptPrime(pk PublicKey, t ring.Table) error {
	switch a.state {
	case StateErrorAdded:
	case StatePerPrimeEncrypted:
		if err := a.parms.NextModulus(); err != nil {
			if errors.Is(err, errs.ErrChainExhausted) {
				a.state = StateChainExhausted
			}
			return err
		}
	default:
		return &errs.AssertionError{Msg: "EncryptPrime called outside ErrorAdded/PerPrimeEncrypted"}
	}

	m := a.parms.CurrModulus()
	a.prepareU(m, t)
	a.prepareErrorNTT(m, t)

	c0 := a.pool.C0()
	c1 := a.pool.C1()

	ring.MulCoeffs(pk.PK0, a.uNTT, c0, m)
	ring.Add(c0, a.e0NTT, c0, m)

	ring.MulCoeffs(pk.PK1, a.uNTT, c1, m)
	ring.Add(c1, a.e1NTT, c1, m)

	a.state = StatePerPrimeEncrypted
	return nil
}

// Emit hands the current prime's (c0, c1) to sink. Spec.md §4.8
// computes c1 before c0, so unlike the symmetric path this emits c1
// first.
func (a *AsymEncryptor) Emit(sink Sink) error {
	if _, err := EmitPoly(sink, a.pool.C1()); err != nil {
		return err
	}
	_, err := EmitPoly(sink, a.pool.C0())
	return err
}

// State returns the encryptor's current state machine node.
func (a *AsymEncryptor) State() State { return a.state }
