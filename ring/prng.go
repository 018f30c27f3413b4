package ring

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// PRNGSeedSize is the width of the PRNG's seed, per spec.md §4.2.
const PRNGSeedSize = 64

// prngBlockSize is the number of bytes squeezed from SHAKE256 per
// counter value. It has no significance beyond "large enough to make
// counter increments rare"; spec.md leaves the block size unspecified
// and only pins the seed width and the use of a 64-bit counter.
const prngBlockSize = 136

// PRNG is the SHAKE256-based seed+counter stream of spec.md §4.2. Two
// instances participate in every symmetric encryption: a "shareable"
// one, whose seed travels with the ciphertext so c1 can be re-derived
// on the server, and a "private" one for the error term. It mirrors the
// teacher's ring/prng.go CRPGenerator (a keyed XOF plus a clock
// register) generalised from Blake2b onto the SHAKE256 primitive
// spec.md names, and the utils/sampling.PRNG Read-based interface shape.
type PRNG struct {
	seed     [PRNGSeedSize]byte
	counter  uint64
	leftover []byte
}

// NewPRNG constructs a PRNG freshly randomized from the OS entropy
// source.
func NewPRNG() (*PRNG, error) {
	p := &PRNG{}
	if err := p.Randomize(nil); err != nil {
		return nil, err
	}
	return p, nil
}

// Randomize resets the counter to 0 and sets the seed. A nil seed
// refills it from the OS entropy source (an error is returned if that
// source is unavailable, which the ckks encryptors report as
// errs.EntropyError); a non-nil seed is copied in
// (zero-padded or truncated to PRNGSeedSize) making the resulting
// stream deterministic in that seed, which is how a shareable PRNG's
// seed is re-derived on the server side of a symmetric encryption.
func (p *PRNG) Randomize(seed []byte) error {
	if seed == nil {
		if _, err := cryptorand.Read(p.seed[:]); err != nil {
			return fmt.Errorf("ring: prng entropy source unavailable: %w", err)
		}
	} else {
		n := copy(p.seed[:], seed)
		for i := n; i < len(p.seed); i++ {
			p.seed[i] = 0
		}
	}
	p.counter = 0
	p.leftover = nil
	return nil
}

// Seed returns a copy of the current seed, the externalised handle a
// shareable PRNG travels with on the wire.
func (p *PRNG) Seed() [PRNGSeedSize]byte {
	return p.seed
}

// nextBlock returns the next prngBlockSize bytes of SHAKE256(seed ||
// counter) and advances the counter.
func (p *PRNG) nextBlock() []byte {
	h := sha3.NewShake256()
	h.Write(p.seed[:])
	var ctr [8]byte
	binary.LittleEndian.PutUint64(ctr[:], p.counter)
	h.Write(ctr[:])
	block := make([]byte, prngBlockSize)
	if _, err := h.Read(block); err != nil {
		// Sanity check, a ShakeHash.Read never errors.
		panic(err)
	}
	p.counter++
	return block
}

// FillBuffer fills out with the next len(out) bytes of the stream,
// consuming any buffered tail from a previous partial block before
// drawing fresh ones.
func (p *PRNG) FillBuffer(out []byte) {
	n := copy(out, p.leftover)
	p.leftover = p.leftover[n:]
	out = out[n:]
	for len(out) > 0 {
		block := p.nextBlock()
		k := copy(out, block)
		out = out[k:]
		if k < len(block) {
			p.leftover = append([]byte(nil), block[k:]...)
		}
	}
}

// Read implements the conventional XOF reader shape (io.Reader-like,
// always filling p fully and never erroring) so that PRNG can be passed
// anywhere a sampling.PRNG-style interface is expected.
func (p *PRNG) Read(out []byte) (int, error) {
	p.FillBuffer(out)
	return len(out), nil
}
