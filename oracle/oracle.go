// Package oracle implements the table-oracle client spec.md §6
// describes: a byte-stream reader keyed by (kind, n, q) serving the
// precomputed secret key, public key, NTT/INTT root tables, IFFT root
// table and index map that an external, off-device companion tool
// generates. The three delivery modes spec.md lists (runtime file,
// compile-time embedded copy, compile-time embedded direct reference)
// are all just different Source implementations behind the one
// interface below; this package never performs file I/O itself; that is
// explicitly out of the core's scope (spec.md §1).
//
// Grounded on the teacher's ring.MarshalBinary/UnmarshalBinary
// byte-encoding convention, generalised from gob to the raw
// little-endian wire format spec.md §6 pins explicitly.
package oracle

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/tinylattice/ckks-embedded/errs"
	"github.com/tinylattice/ckks-embedded/ring"
)

// Kind names one of the table shapes the oracle can serve.
type Kind string

const (
	KindSecretKey     Kind = "sk"
	KindPublicKey0    Kind = "pk0"
	KindPublicKey1    Kind = "pk1"
	KindNTTRoots      Kind = "ntt_roots"
	KindNTTFastRoots  Kind = "ntt_fast_roots"
	KindINTTRoots     Kind = "intt_roots"
	KindINTTFastRoots Kind = "intt_fast_roots"
	KindIFFTRoots     Kind = "ifft_roots"
	KindIndexMap      Kind = "index_map"
)

// Key identifies one table on the wire. Q is left at 0 for kinds that do
// not depend on the modulus (sk, ifft_roots, index_map).
type Key struct {
	Kind Kind
	N    int
	Q    uint32
}

// Source is the byte-stream reader the core depends on: "the interface
// the core sees is a byte-stream reader keyed by (kind, n, q)" (spec.md
// §6). Callers open a table, read it fully, and close it; the decode
// helpers below report a short read or a missing table as
// errs.OracleError, whatever error the Source itself returned.
type Source interface {
	Open(key Key) (io.ReadCloser, error)
}

// oracleErr builds the errs.OracleError for a given key.
func oracleErr(key Key) error {
	return &errs.OracleError{Kind: string(key.Kind), N: key.N, Q: key.Q}
}

// readFull opens key on src and reads every byte, reporting errs.OracleError
// on any failure (missing table, short read).
func readFull(src Source, key Key) ([]byte, error) {
	r, err := src.Open(key)
	if err != nil {
		return nil, oracleErr(key)
	}
	defer r.Close()
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, oracleErr(key)
	}
	return buf, nil
}

// LoadSecretKey reads the n/4-byte compressed ternary secret key.
func LoadSecretKey(src Source, n int) (ring.TernaryCompressed, error) {
	key := Key{Kind: KindSecretKey, N: n}
	buf, err := readFull(src, key)
	if err != nil {
		return ring.TernaryCompressed{}, err
	}
	want := (n + 3) / 4
	if len(buf) != want {
		return ring.TernaryCompressed{}, oracleErr(key)
	}
	return ring.TernaryCompressed{Packed: buf, N: n}, nil
}

// LoadPublicKey reads pk_i(n, q), n ZZ-words in NTT form.
func LoadPublicKey(src Source, n int, q uint32, i int) ([]ring.ZZ, error) {
	kind := KindPublicKey0
	if i == 1 {
		kind = KindPublicKey1
	}
	key := Key{Kind: kind, N: n, Q: q}
	return readZZWords(src, key, n)
}

// LoadNTTRoots reads ntt_roots(n, q) or intt_roots(n, q): n plain
// ZZ-word twiddle factors in bit-reversed order.
func LoadNTTRoots(src Source, n int, q uint32, inverse bool) ([]ring.ZZ, error) {
	kind := KindNTTRoots
	if inverse {
		kind = KindINTTRoots
	}
	return readZZWords(src, Key{Kind: kind, N: n, Q: q}, n)
}

// LoadNTTFastRoots reads ntt_fast_roots(n, q) or intt_fast_roots(n, q):
// n MUMO pairs (operand, quotient), each two ZZ words wide.
func LoadNTTFastRoots(src Source, n int, q uint32, inverse bool) ([]ring.MUMO, error) {
	kind := KindNTTFastRoots
	if inverse {
		kind = KindINTTFastRoots
	}
	key := Key{Kind: kind, N: n, Q: q}
	buf, err := readFull(src, key)
	if err != nil {
		return nil, err
	}
	if len(buf) != n*8 {
		return nil, oracleErr(key)
	}
	out := make([]ring.MUMO, n)
	for i := range out {
		out[i] = ring.MUMO{
			Operand:  ring.ZZ(binary.LittleEndian.Uint32(buf[i*8:])),
			Quotient: ring.ZZ(binary.LittleEndian.Uint32(buf[i*8+4:])),
		}
	}
	return out, nil
}

// LoadIFFTRoots reads ifft_roots(n): n complex doubles in bit-reversed
// order, 16 bytes each (real, imag as little-endian float64).
func LoadIFFTRoots(src Source, n int) ([]complex128, error) {
	key := Key{Kind: KindIFFTRoots, N: n}
	buf, err := readFull(src, key)
	if err != nil {
		return nil, err
	}
	if len(buf) != n*16 {
		return nil, oracleErr(key)
	}
	out := make([]complex128, n)
	for i := range out {
		re := math.Float64frombits(binary.LittleEndian.Uint64(buf[i*16:]))
		im := math.Float64frombits(binary.LittleEndian.Uint64(buf[i*16+8:]))
		out[i] = complex(re, im)
	}
	return out, nil
}

// LoadIndexMap reads index_map(n): n uint16 values.
func LoadIndexMap(src Source, n int) ([]uint16, error) {
	key := Key{Kind: KindIndexMap, N: n}
	buf, err := readFull(src, key)
	if err != nil {
		return nil, err
	}
	if len(buf) != n*2 {
		return nil, oracleErr(key)
	}
	out := make([]uint16, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(buf[i*2:])
	}
	return out, nil
}

func readZZWords(src Source, key Key, n int) ([]ring.ZZ, error) {
	buf, err := readFull(src, key)
	if err != nil {
		return nil, err
	}
	if len(buf) != n*4 {
		return nil, oracleErr(key)
	}
	out := make([]ring.ZZ, n)
	for i := range out {
		out[i] = ring.ZZ(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out, nil
}
