// Package params implements the ParameterSet spec.md §3/§2.7 describes:
// the degree, modulus chain, prime cursor, scale and policy flags that
// together pin down a single encryption's shape, plus the Config that
// chooses among the interchangeable root/table-sourcing policies.
//
// Grounded on the teacher's ring.Parameters two-phase
// construction (a validated literal, then derived constants) and the
// rlwe package's split between a small "literal" struct and a larger
// derived one.
package params

import (
	"fmt"

	"github.com/tinylattice/ckks-embedded/errs"
	"github.com/tinylattice/ckks-embedded/ring"
	"golang.org/x/exp/slices"
)

// SupportedDegrees lists the only values spec.md §3 allows for n.
var SupportedDegrees = []int{1024, 2048, 4096, 8192, 16384}

// Direction is the optional reverse-direction cursor walk spec.md §3
// mentions: an optimisation that advances the prime cursor forward then
// back without reloading twiddles.
type Direction int

const (
	// Forward advances curr_modulus_idx upward (the default walk).
	Forward Direction = iota
	// Backward advances curr_modulus_idx downward, reusing twiddles
	// already resident from the forward pass.
	Backward
)

// Parms is the ParameterSet of spec.md §2.7/§3: built once per device
// boot, then driven prime-by-prime by NextModulus.
type Parms struct {
	n        int
	logN     int
	moduli   []ring.Modulus
	currIdx  int
	scaleLog int // Δ = 2^scaleLog
	flags    Flags

	direction   Direction
	skipNTTLoad bool
}

// Flags bundles the policy booleans spec.md §3 lists alongside Parms.
type Flags struct {
	IsAsymmetric bool
	SmallS       bool // secret key kept compressed rather than expanded-in-NTT across primes
	SmallU       bool // asymmetric u kept compressed rather than expanded per-prime
	SampleS      bool // secret key sampled on-device rather than loaded from the oracle
	PkFromFile   bool // public key loaded from the oracle rather than derived on-device
}

// New validates n and the modulus chain and builds a Parms with the
// cursor at the first working prime. The last modulus in moduli is the
// "special prime", reserved for off-device key generation/relinearisation
// and never used as curr_modulus on this core (spec.md §3).
func New(n int, moduli []ring.Modulus, scaleLog int, flags Flags) (Parms, error) {
	if !slices.Contains(SupportedDegrees, n) {
		return Parms{}, &errs.ConfigError{Msg: fmt.Sprintf("unsupported degree n=%d", n)}
	}
	if len(moduli) < 2 {
		return Parms{}, &errs.ConfigError{Msg: "modulus chain needs at least one working prime plus the special prime"}
	}
	for _, m := range moduli {
		if !ring.IsNTTFriendly(m.Value, n) {
			return Parms{}, &errs.ConfigError{Msg: fmt.Sprintf("modulus %d is not NTT-friendly for n=%d", m.Value, n)}
		}
	}
	if scaleLog <= 0 || scaleLog >= moduli[0].BitLen()+20 {
		return Parms{}, &errs.ConfigError{Msg: fmt.Sprintf("implausible scale exponent %d", scaleLog)}
	}

	return Parms{
		n:        n,
		logN:     bitLen(n) - 1,
		moduli:   moduli,
		currIdx:  0,
		scaleLog: scaleLog,
		flags:    flags,
	}, nil
}

func bitLen(n int) int {
	l := 0
	for n > 1 {
		n >>= 1
		l++
	}
	return l + 1
}

// N returns the ring degree.
func (p Parms) N() int { return p.n }

// LogN returns log2(N).
func (p Parms) LogN() int { return p.logN }

// Scale returns Δ = 2^scaleLog as a float64.
func (p Parms) Scale() float64 {
	return float64(uint64(1) << uint(p.scaleLog))
}

// NWorkingPrimes returns the number of primes actually used for
// encryption, i.e. the chain length minus the special prime.
func (p Parms) NWorkingPrimes() int { return len(p.moduli) - 1 }

// Flags returns the policy flags this Parms was built with.
func (p Parms) Flags() Flags { return p.flags }

// Direction reports the current cursor walk direction.
func (p Parms) Direction() Direction { return p.direction }

// CurrModulusIndex returns the current prime cursor.
func (p Parms) CurrModulusIndex() int { return p.currIdx }

// CurrModulus returns the modulus the cursor currently points at.
func (p Parms) CurrModulus() ring.Modulus { return p.moduli[p.currIdx] }

// SpecialModulus returns the chain's last (key-generation-only) prime.
func (p Parms) SpecialModulus() ring.Modulus { return p.moduli[len(p.moduli)-1] }

// NextModulus advances the cursor per the current Direction. It returns
// errs.ErrChainExhausted, a normal terminal signal rather than a true
// error, once the cursor would move past the last working prime (the
// special prime is never visited).
func (p *Parms) NextModulus() error {
	switch p.direction {
	case Forward:
		if p.currIdx+1 >= p.NWorkingPrimes() {
			if p.skipNTTLoad {
				p.direction = Backward
				return nil
			}
			return errs.ErrChainExhausted
		}
		p.currIdx++
	case Backward:
		if p.currIdx == 0 {
			return errs.ErrChainExhausted
		}
		p.currIdx--
	}
	return nil
}

// ResetPrimes rewinds the cursor to the first working prime and the
// forward direction, for reuse across encryptions.
func (p *Parms) ResetPrimes() {
	p.currIdx = 0
	p.direction = Forward
}

// SetReverseDirectionWalk enables or disables the optimisation of
// walking the chain forward then back without reloading twiddles
// (spec.md §3's curr_param_direction / skip_ntt_load).
func (p *Parms) SetReverseDirectionWalk(enabled bool) {
	p.skipNTTLoad = enabled
}
