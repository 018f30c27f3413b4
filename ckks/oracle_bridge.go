package ckks

import (
	"github.com/tinylattice/ckks-embedded/fft"
	"github.com/tinylattice/ckks-embedded/oracle"
	"github.com/tinylattice/ckks-embedded/ring"
)

// LoadSecretKey reads sk(n) from src and wraps it as a
// SecretKeyCompressedHandle, the form the table oracle always serves a
// secret key in (spec.md §6).
func LoadSecretKey(src oracle.Source, n int) (SecretKeyCompressedHandle, error) {
	packed, err := oracle.LoadSecretKey(src, n)
	if err != nil {
		return SecretKeyCompressedHandle{}, err
	}
	return SecretKeyCompressedHandle{Packed: packed}, nil
}

// LoadPublicKey reads pk_i(n, q) for i in {0, 1} from src and assembles
// them into the PublicKey pair AsymEncryptor.EncryptPrime consumes. Both
// halves are already in NTT form on the wire (spec.md §6), so no
// transform is applied here.
func LoadPublicKey(src oracle.Source, n int, m ring.Modulus) (PublicKey, error) {
	pk0Words, err := oracle.LoadPublicKey(src, n, uint32(m.Value), 0)
	if err != nil {
		return PublicKey{}, err
	}
	pk1Words, err := oracle.LoadPublicKey(src, n, uint32(m.Value), 1)
	if err != nil {
		return PublicKey{}, err
	}
	return PublicKey{
		PK0: ring.Poly{Coeffs: pk0Words, NTTForm: true},
		PK1: ring.Poly{Coeffs: pk1Words, NTTForm: true},
	}, nil
}

// LoadNTTTable assembles a ring.Table for (n, q) from the oracle's
// forward/inverse root tables. When fast is true, the roots are read
// already in MUMO (operand, quotient) form via ntt_fast_roots/
// intt_fast_roots (params.NTTLoadFast); otherwise plain root values are
// read via ntt_roots/intt_roots and wrapped into MUMO pairs locally
// (params.NTTLoad). N^-1 is never served by the oracle (spec.md §6 does
// not list it as a table kind) so it is always derived locally via a
// single Fermat inversion, per spec.md §9's design note that per-(n,q)
// constants not on the wire should be "computed at construction".
func LoadNTTTable(src oracle.Source, n int, m ring.Modulus, fast bool) (ring.Table, error) {
	var forward, backward []ring.MUMO
	if fast {
		f, err := oracle.LoadNTTFastRoots(src, n, uint32(m.Value), false)
		if err != nil {
			return ring.Table{}, err
		}
		b, err := oracle.LoadNTTFastRoots(src, n, uint32(m.Value), true)
		if err != nil {
			return ring.Table{}, err
		}
		forward, backward = f, b
	} else {
		f, err := oracle.LoadNTTRoots(src, n, uint32(m.Value), false)
		if err != nil {
			return ring.Table{}, err
		}
		b, err := oracle.LoadNTTRoots(src, n, uint32(m.Value), true)
		if err != nil {
			return ring.Table{}, err
		}
		forward = wrapMUMO(f, m)
		backward = wrapMUMO(b, m)
	}

	nInv := ring.ExpMod(ring.ZZ(uint64(n)%uint64(m.Value)), uint64(m.Value)-2, m)
	return ring.Table{
		N:             n,
		Modulus:       m,
		RootsForward:  forward,
		RootsBackward: backward,
		NInv:          ring.NewMUMO(nInv, m),
	}, nil
}

func wrapMUMO(roots []ring.ZZ, m ring.Modulus) []ring.MUMO {
	out := make([]ring.MUMO, len(roots))
	for i, r := range roots {
		out[i] = ring.NewMUMO(r, m)
	}
	return out
}

// LoadIFFTRootSource reads ifft_roots(n) from src and wraps it as a
// fft.LoadedRootSource (params.IFFTLoad); the backward table doubles as
// the forward one via conjugation, matching fft.GenerateRootTable's own
// Forward/Backward pairing.
func LoadIFFTRootSource(src oracle.Source, n int) (fft.RootSource, error) {
	roots, err := oracle.LoadIFFTRoots(src, n)
	if err != nil {
		return nil, err
	}
	forward := make([]complex128, n)
	for i, c := range roots {
		forward[i] = complex(real(c), -imag(c))
	}
	return fft.LoadedRootSource{Table: fft.RootTable{N: n, Forward: forward, Backward: roots}}, nil
}

// LoadIndexMap reads index_map(n) from src and reconstructs an
// fft.IndexMap from the raw uint16 permutation values it encodes: the
// oracle's wire format stores the same Pos1/Pos2 pair IndexMap holds,
// concatenated (Pos1 for slots [0, n/2), Pos2 immediately after).
func LoadIndexMap(src oracle.Source, n int) (fft.IndexMap, error) {
	values, err := oracle.LoadIndexMap(src, n)
	if err != nil {
		return fft.IndexMap{}, err
	}
	logN := 0
	for 1<<uint(logN) < n {
		logN++
	}
	m := fft.IndexMap{N: n, LogN: logN, Pos1: make([]uint16, n/2), Pos2: make([]uint16, n/2)}
	copy(m.Pos1, values[:n/2])
	copy(m.Pos2, values[n/2:])
	return m, nil
}
