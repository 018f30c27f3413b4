package ckks

import (
	"errors"

	"github.com/tinylattice/ckks-embedded/errs"
	"github.com/tinylattice/ckks-embedded/mempool"
	"github.com/tinylattice/ckks-embedded/params"
	"github.com/tinylattice/ckks-embedded/ring"
)

// State names one node of the symmetric/asymmetric encryptor state
// machine of spec.md §4.7/§4.8.
type State int

const (
	StateIdle State = iota
	StateEncoded
	StateErrorAdded
	StatePerPrimeEncrypted
	StateChainExhausted
)

// SymEncryptor drives the symmetric encryption state machine of
// spec.md §4.7: c1 = a (uniform from the shareable PRNG), c0 = -a·s +
// m + e for each prime, walking the modulus chain prime by prime.
// Grounded on rlwe/encryptor.go's encryptorBase/EncryptorSecretKey split
// and its encryptorBuffers buffer-reuse-across-calls pattern, which is
// the direct precedent for driving this off a mempool.Pool instead of
// ad hoc per-call allocation.
type SymEncryptor struct {
	parms   *params.Parms
	pool    *mempool.Pool
	cfg     params.Config
	encoder Encoder

	sharePRNG *ring.PRNG
	privPRNG  *ring.PRNG

	secretKey    SecretKeyCompressedHandle
	keyExpanded  SecretKeyExpandedHandle
	keyNTT       SecretKeyExpandedNTTHandle
	haveExpanded bool // whether keyExpanded already holds a prior prime's expansion

	state State

	// backing storage for keyExpanded/keyNTT, reused across primes
	expandedBuf ring.Poly
	nttBuf      ring.Poly
	errReduced  ring.Poly // (m+e) reduced and NTT'd, current prime
}

// NewSymEncryptor builds a SymEncryptor for the given parameters, pool
// and secret key. The pool and parms must already agree on N.
func NewSymEncryptor(p *params.Parms, pool *mempool.Pool, cfg params.Config, encoder Encoder, sk ring.TernaryCompressed) *SymEncryptor {
	n := p.N()
	return &SymEncryptor{
		parms:       p,
		pool:        pool,
		cfg:         cfg,
		encoder:     encoder,
		secretKey:   SecretKeyCompressedHandle{Packed: sk},
		state:       StateIdle,
		expandedBuf: ring.NewPoly(n),
		nttBuf:      ring.NewPoly(n),
		errReduced:  ring.NewPoly(n),
	}
}

// EncodeBase runs the Idle -> Encoded transition: encode_base(v) into
// conj_vals_int.
func (e *SymEncryptor) EncodeBase(v []float64) error {
	if e.state != StateIdle {
		return &errs.AssertionError{Msg: "EncodeBase called outside the Idle state"}
	}
	if err := e.encoder.EncodeBase(v, e.parms.Scale(), e.pool.ConjVals(), e.pool.ConjValsInt()); err != nil {
		return err
	}
	e.state = StateEncoded
	return nil
}

// Init runs the Encoded -> ErrorAdded transition: sym_init(share_seed,
// seed) resets both PRNGs and adds CBD noise e into conj_vals_int in
// place, yielding (m+e) as int64. A nil seed re-randomizes that PRNG
// from OS entropy (see ring.PRNG.Randomize).
func (e *SymEncryptor) Init(shareSeed, seed []byte) error {
	if e.state != StateEncoded {
		return &errs.AssertionError{Msg: "Init called outside the Encoded state"}
	}

	if e.sharePRNG == nil {
		e.sharePRNG = &ring.PRNG{}
	}
	if e.privPRNG == nil {
		e.privPRNG = &ring.PRNG{}
	}
	if err := e.sharePRNG.Randomize(shareSeed); err != nil {
		return &errs.EntropyError{Msg: err.Error()}
	}
	if err := e.privPRNG.Randomize(seed); err != nil {
		return &errs.EntropyError{Msg: err.Error()}
	}

	noise := ring.NewCBDSampler(e.privPRNG)
	noise.AddInto(e.pool.ConjValsInt())

	e.state = StateErrorAdded
	return nil
}

// ShareableSeed returns the shareable PRNG's seed, the externalised
// handle spec.md §4.7 lets a caller emit once in lieu of every c1.
func (e *SymEncryptor) ShareableSeed() [ring.PRNGSeedSize]byte {
	return e.sharePRNG.Seed()
}

// prepareSecretKeyNTT refreshes e.keyNTT for the current prime via the
// typed SecretKeyForm chain (spec.md §9: "secret key form is not a type
// distinction in the source" — here it is). The first prime expands the
// compressed key fresh; every later prime uses ConvertInPlace instead of
// re-expanding, since a ternary coefficient's {-1, 0, 1} meaning re-maps
// to a new modulus without ever touching the packed form again. All
// three params.SecretKeyPersistence values share this same
// expand/convert -> NTT sequence; they differ only in how much arena
// space mempool.ComputeLayout reserves for the key.
func (e *SymEncryptor) prepareSecretKeyNTT(m ring.Modulus, t ring.Table) {
	if !e.haveExpanded {
		e.keyExpanded = e.secretKey.ExpandInto(e.expandedBuf, m)
		e.haveExpanded = true
	} else {
		e.keyExpanded.ConvertInPlace(m)
	}
	e.keyNTT = e.keyExpanded.ToNTTInto(e.nttBuf, t)
}

// EncryptPrime runs one per-prime step of spec.md §4.7: on the first
// call (ErrorAdded -> PerPrimeEncrypted_0) it samples c1 and derives
// c0 for the chain's first working prime; on later calls it advances
// the cursor first. t must be the NTT table for the prime this call
// targets (params.Parms.CurrModulus() after any advance).
func (e *SymEncryptor) EncryptPrime(t ring.Table) error {
	switch e.state {
	case StateErrorAdded:
		// first prime: cursor is already at index 0, nothing to advance.
	case StatePerPrimeEncrypted:
		if err := e.parms.NextModulus(); err != nil {
			if errors.Is(err, errs.ErrChainExhausted) {
				e.state = StateChainExhausted
			}
			return err
		}
	default:
		return &errs.AssertionError{Msg: "EncryptPrime called outside ErrorAdded/PerPrimeEncrypted"}
	}

	m := e.parms.CurrModulus()
	c1 := e.pool.C1()
	c0 := e.pool.C0()

	uniform := ring.NewUniformSampler(e.sharePRNG)
	uniform.Read(c1, m)

	e.prepareSecretKeyNTT(m, t)
	ring.MulCoeffs(e.keyNTT.Poly, c1, c0, m) // c0 = ntt(s) * c1
	ring.Neg(c0, c0, m)

	ReduceModPrime(e.pool.ConjValsInt(), e.errReduced, m)
	ring.NTTForward(e.errReduced, t)
	ring.Add(c0, e.errReduced, c0, m)

	e.state = StatePerPrimeEncrypted
	return nil
}

// Emit hands the current prime's (c0, c1) to sink, c0 first then c1 per
// spec.md §4.7's stated emission order for the symmetric path.
func (e *SymEncryptor) Emit(sink Sink) error {
	if _, err := EmitPoly(sink, e.pool.C0()); err != nil {
		return err
	}
	_, err := EmitPoly(sink, e.pool.C1())
	return err
}

// State returns the encryptor's current state machine node.
func (e *SymEncryptor) State() State { return e.state }
