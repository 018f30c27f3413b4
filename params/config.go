package params

import (
	"fmt"

	"github.com/tinylattice/ckks-embedded/errs"
)

// Mode selects symmetric or asymmetric encryption.
type Mode int

const (
	Symmetric Mode = iota
	Asymmetric
)

// IFFTSource selects how the IFFT root table is obtained.
type IFFTSource int

const (
	IFFTOnTheFly IFFTSource = iota
	IFFTLoad
)

// NTTSource selects how the NTT/INTT twiddle table is obtained. It
// applies in parallel to both directions (spec.md §4.5: "INTT source
// parallel to NTT").
type NTTSource int

const (
	NTTOnTheFly NTTSource = iota
	NTTOneShot
	NTTLoad
	NTTLoadFast // loaded directly in MUMO (lazy) form
)

// IndexMapSource selects how the encoder's index map π⁻¹ is obtained.
type IndexMapSource int

const (
	IndexMapOnTheFly IndexMapSource = iota
	IndexMapComputePersistent
	IndexMapLoad
	IndexMapLoadPersistent
	IndexMapLoadPersistentSymLoadAsym
)

// Persistent reports whether this source keeps the index map resident
// in the arena across the whole encryption (as opposed to recomputing
// or reloading it on every use).
func (s IndexMapSource) Persistent() bool {
	switch s {
	case IndexMapComputePersistent, IndexMapLoadPersistent, IndexMapLoadPersistentSymLoadAsym:
		return true
	default:
		return false
	}
}

// SecretKeyPersistence selects how much arena space mempool reserves for
// the secret key: n/16 words for the compressed form, or n words for an
// expanded form. ckks.SymEncryptor does not read it: under every value
// it expands the compressed key once, converts that expansion in place
// for each later prime, and redoes the NTT on every prime, in buffers of
// its own outside the arena.
type SecretKeyPersistence int

const (
	// SKPerPrime reserves only the n/16-word compressed key.
	SKPerPrime SecretKeyPersistence = iota
	// SKAcrossPrimes reserves an n-word expanded key buffer.
	SKAcrossPrimes
	// SKPersistent reserves an n-word expanded key buffer, the same
	// space as SKAcrossPrimes.
	SKPersistent
)

// Config is the enumerated-option struct of spec.md §6: every knob that
// shapes the MemPool layout and the policy matrices of the NTT/IFFT/
// index-map packages, validated once at construction so no runtime
// branching on "which variant" is needed afterward.
type Config struct {
	Mode                 Mode
	IFFT                 IFFTSource
	NTT                  NTTSource
	INTT                 NTTSource
	IndexMap             IndexMapSource
	SecretKey            SecretKeyPersistence
	IncludeValueBuffer   bool
	ReverseDirectionWalk bool
	Debug                bool // not read by any package; errs.AssertionError is returned regardless
}

// Validate rejects configuration combinations spec.md requires to be
// rejected at setup: the secret-key/index-map arena-aliasing hazard
// noted in spec.md §9 ("sampling the secret key ... does not work if s
// and index_map share memory" — the source silently accepted this
// restriction; this re-implementation promotes it to a hard
// ConfigError), and any combination whose working-set would exceed
// budgetWords ZZ-words of memory.
func (c Config) Validate(n int, budgetWords int) error {
	if c.SecretKey != SKPerPrime && c.IndexMap.Persistent() {
		return &errs.ConfigError{Msg: "a persistently expanded secret key and a persistent index map cannot share the single arena (spec.md §9 aliasing hazard)"}
	}
	if c.Mode == Symmetric && c.IndexMap == IndexMapLoadPersistentSymLoadAsym {
		return &errs.ConfigError{Msg: "load_persistent_sym_load_asym index-map source requires asymmetric mode"}
	}

	required := RequiredWords(n, c)
	if required > budgetWords {
		return &errs.ConfigError{Msg: fmt.Sprintf("configuration requires %d ZZ-words but only %d are budgeted", required, budgetWords)}
	}
	return nil
}

// RequiredWords computes the number of ZZ-words the arena needs under
// configuration c for degree n, the pure sizing function spec.md §5
// requires. Validate checks the budget against this count; mempool.Size
// computes the same count separately, from mempool.ComputeLayout, and
// the two must agree. Baseline
// (OTF IFFT, OTF NTT, OTF index map, persistent compressed secret key)
// costs 4n + n/16 words; every deviation is an additive or subtractive
// term over that baseline, per spec.md §5.
func RequiredWords(n int, c Config) int {
	total := 4 * n

	switch c.IFFT {
	case IFFTLoad:
		total += 4 * n
	}

	switch c.NTT {
	case NTTOneShot:
		total += n
	case NTTLoad:
		total += n
	case NTTLoadFast:
		total += 2 * n
	}
	switch c.INTT {
	case NTTOneShot:
		total += n
	case NTTLoad:
		total += n
	case NTTLoadFast:
		total += 2 * n
	}

	if c.IndexMap.Persistent() {
		total += n / 2
	}

	switch c.SecretKey {
	case SKPerPrime:
		total += n / 16
	case SKAcrossPrimes, SKPersistent:
		// Expanded-NTT secret key lives in a full n-word buffer instead
		// of the n/16-word compressed form.
		total += n
	}

	if c.IncludeValueBuffer {
		total += n / 2
	}

	return total
}
