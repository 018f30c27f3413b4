package fft

// Forward performs the in-place radix-2 Cooley-Tukey FFT over vals,
// natural order in, bit-reversed order out. The core itself never calls
// this (only the inverse transform is on the encode path) but it is
// kept so ifft(fft(v))/n == v can be tested directly, per spec.md §8.
func Forward(vals []complex128, t RootTable) {
	n := t.N
	tLen := n
	for mLen := 1; mLen < n; mLen <<= 1 {
		tLen >>= 1
		for i := 0; i < mLen; i++ {
			w := t.Forward[mLen+i]
			j1 := 2 * i * tLen
			j2 := j1 + tLen
			for j := j1; j < j2; j++ {
				u := vals[j]
				v := vals[j+tLen] * w
				vals[j] = u + v
				vals[j+tLen] = u - v
			}
		}
	}
}

// Backward performs the in-place radix-2 Gentleman-Sande inverse FFT,
// bit-reversed order in, natural order out. Per spec.md §4.4 the 1/n
// scaling is deliberately NOT applied here: the encoder folds it
// together with the CKKS scale Δ in a single pass over the coefficients,
// rather than paying two passes over the buffer.
func Backward(vals []complex128, t RootTable) {
	n := t.N
	tLen := 1
	for mLen := n / 2; mLen >= 1; mLen >>= 1 {
		for i := 0; i < mLen; i++ {
			w := t.Backward[mLen+i]
			j1 := 2 * i * tLen
			j2 := j1 + tLen
			for j := j1; j < j2; j++ {
				u := vals[j]
				v := vals[j+tLen]
				vals[j] = u + v
				vals[j+tLen] = (u - v) * w
			}
		}
		tLen <<= 1
	}
}

// RootSource is the pluggable root-table policy of spec.md §4.4: "on
// the fly", "one-shot" and "load" are interchangeable behind this one
// interface, mirroring the ring package's Transformer policy matrix for
// the NTT.
type RootSource interface {
	Forward(vals []complex128)
	Backward(vals []complex128)
}

// OTFRootSource recomputes the whole root table via cos/sin on every
// call, holding nothing in memory between transforms.
type OTFRootSource struct {
	N int
}

// Forward implements RootSource.
func (o OTFRootSource) Forward(vals []complex128) { Forward(vals, GenerateRootTable(o.N)) }

// Backward implements RootSource.
func (o OTFRootSource) Backward(vals []complex128) { Backward(vals, GenerateRootTable(o.N)) }

// OneShotRootSource derives its table once at construction and keeps it
// for the source's lifetime.
type OneShotRootSource struct {
	t RootTable
}

// NewOneShotRootSource derives and keeps a root table for degree n.
func NewOneShotRootSource(n int) OneShotRootSource {
	return OneShotRootSource{t: GenerateRootTable(n)}
}

// Forward implements RootSource.
func (o OneShotRootSource) Forward(vals []complex128) { Forward(vals, o.t) }

// Backward implements RootSource.
func (o OneShotRootSource) Backward(vals []complex128) { Backward(vals, o.t) }

// LoadedRootSource wraps a table already in hand, typically one decoded
// from the table oracle's `ifft_roots(n)` bytes.
type LoadedRootSource struct {
	Table RootTable
}

// Forward implements RootSource.
func (l LoadedRootSource) Forward(vals []complex128) { Forward(vals, l.Table) }

// Backward implements RootSource.
func (l LoadedRootSource) Backward(vals []complex128) { Backward(vals, l.Table) }
