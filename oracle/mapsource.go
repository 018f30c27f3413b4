package oracle

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/tinylattice/ckks-embedded/ring"
)

// MapSource is an in-memory Source, the test and setup-tool counterpart
// of a runtime-file or compile-time-embedded delivery mode: it never
// touches a filesystem, only a map keyed the same way the wire protocol
// is keyed.
type MapSource struct {
	tables map[Key][]byte
}

// NewMapSource builds an empty in-memory oracle.
func NewMapSource() *MapSource {
	return &MapSource{tables: make(map[Key][]byte)}
}

// Open implements Source.
func (m *MapSource) Open(key Key) (io.ReadCloser, error) {
	buf, ok := m.tables[key]
	if !ok {
		return nil, oracleErr(key)
	}
	return io.NopCloser(bytes.NewReader(buf)), nil
}

// PutSecretKey stores a compressed ternary secret key.
func (m *MapSource) PutSecretKey(n int, sk ring.TernaryCompressed) {
	m.tables[Key{Kind: KindSecretKey, N: n}] = append([]byte(nil), sk.Packed...)
}

// PutPublicKey stores pk_i(n, q).
func (m *MapSource) PutPublicKey(n int, q uint32, i int, words []ring.ZZ) {
	kind := KindPublicKey0
	if i == 1 {
		kind = KindPublicKey1
	}
	m.tables[Key{Kind: kind, N: n, Q: q}] = encodeZZWords(words)
}

// PutNTTRoots stores ntt_roots(n, q) or intt_roots(n, q).
func (m *MapSource) PutNTTRoots(n int, q uint32, inverse bool, roots []ring.ZZ) {
	kind := KindNTTRoots
	if inverse {
		kind = KindINTTRoots
	}
	m.tables[Key{Kind: kind, N: n, Q: q}] = encodeZZWords(roots)
}

// PutNTTFastRoots stores ntt_fast_roots(n, q) or intt_fast_roots(n, q).
func (m *MapSource) PutNTTFastRoots(n int, q uint32, inverse bool, roots []ring.MUMO) {
	kind := KindNTTFastRoots
	if inverse {
		kind = KindINTTFastRoots
	}
	buf := make([]byte, len(roots)*8)
	for i, r := range roots {
		binary.LittleEndian.PutUint32(buf[i*8:], uint32(r.Operand))
		binary.LittleEndian.PutUint32(buf[i*8+4:], uint32(r.Quotient))
	}
	m.tables[Key{Kind: kind, N: n, Q: q}] = buf
}

// PutIFFTRoots stores ifft_roots(n).
func (m *MapSource) PutIFFTRoots(n int, roots []complex128) {
	buf := make([]byte, len(roots)*16)
	for i, c := range roots {
		binary.LittleEndian.PutUint64(buf[i*16:], math.Float64bits(real(c)))
		binary.LittleEndian.PutUint64(buf[i*16+8:], math.Float64bits(imag(c)))
	}
	m.tables[Key{Kind: KindIFFTRoots, N: n}] = buf
}

// PutIndexMap stores index_map(n).
func (m *MapSource) PutIndexMap(n int, values []uint16) {
	buf := make([]byte, len(values)*2)
	for i, v := range values {
		binary.LittleEndian.PutUint16(buf[i*2:], v)
	}
	m.tables[Key{Kind: KindIndexMap, N: n}] = buf
}

func encodeZZWords(words []ring.ZZ) []byte {
	buf := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(w))
	}
	return buf
}
