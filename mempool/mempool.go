// Package mempool implements the single-arena scratch allocator spec.md
// §2.8 describes: one contiguous []ring.ZZ buffer, with every
// polynomial and staging buffer the encoders touch a fixed-offset,
// non-owning view into it. Grounded on the teacher's
// ring.Poly{Coeffs, Buff} aliasing precedent (a Poly's Coeffs is always
// a re-slice of a shared Buff) and ring/pool.go's BufferPool, which
// threads an explicit pool handle through call sites instead of a
// package-global allocator.
package mempool

import (
	"unsafe"

	"github.com/tinylattice/ckks-embedded/params"
	"github.com/tinylattice/ckks-embedded/ring"
)

// Span is an offset/length pair into a Pool's arena, measured in
// ring.ZZ words.
type Span struct {
	Offset int
	Len    int
}

// Layout names the fixed offset and length of every buffer view a Pool
// built for degree n under configuration cfg can hand out. Spec.md §3
// and §9 describe conj_vals (complex128), conj_vals_int (int64) and
// (c0, c1) (ring.ZZ) as successive reinterpretations of the SAME
// memory, staged so their lifetimes never overlap; Main is that shared
// region, and ConjVals/ConjValsInt/C0/C1 below are typed projections
// onto it rather than independent spans.
type Layout struct {
	N   int
	Cfg params.Config

	Main Span // 4n words: conj_vals / conj_vals_int / c0+c1 alias this region

	Values    Span // n/2 words, present only if cfg.IncludeValueBuffer
	SecretKey Span // n/16 words compressed, or n words expanded
	IFFTRoots Span // present only if cfg.IFFT == IFFTLoad
	NTTRoots  Span
	INTTRoots Span
	IndexMap  Span // present only if cfg.IndexMap.Persistent()
}

// TotalWords returns the number of words the layout reserves, which
// Size and RequiredWords must agree with exactly.
func (l Layout) TotalWords() int {
	total := l.Main.Len + l.Values.Len + l.SecretKey.Len
	total += l.IFFTRoots.Len + l.NTTRoots.Len + l.INTTRoots.Len + l.IndexMap.Len
	return total
}

// cursor is a simple bump allocator over word offsets.
type cursor struct{ next int }

func (c *cursor) alloc(words int) Span {
	s := Span{Offset: c.next, Len: words}
	c.next += words
	return s
}

// ComputeLayout computes the fixed offsets for degree n under cfg. It
// never validates cfg (that is params.Config.Validate's job, which
// NewPool calls first) and never allocates an arena; it is the pure
// layout half of spec.md §5's "deterministic given the same inputs"
// requirement.
func ComputeLayout(n int, cfg params.Config) Layout {
	var c cursor
	l := Layout{N: n, Cfg: cfg}

	l.Main = c.alloc(4 * n)

	if cfg.IncludeValueBuffer {
		l.Values = c.alloc(n / 2)
	}

	switch cfg.SecretKey {
	case params.SKPerPrime:
		l.SecretKey = c.alloc(n / 16)
	default:
		l.SecretKey = c.alloc(n)
	}

	if cfg.IFFT == params.IFFTLoad {
		l.IFFTRoots = c.alloc(4 * n)
	}

	l.NTTRoots = allocRootSpan(&c, n, cfg.NTT)
	l.INTTRoots = allocRootSpan(&c, n, cfg.INTT)

	if cfg.IndexMap.Persistent() {
		l.IndexMap = c.alloc(n / 2)
	}

	return l
}

func allocRootSpan(c *cursor, n int, src params.NTTSource) Span {
	switch src {
	case params.NTTOneShot, params.NTTLoad:
		return c.alloc(n)
	case params.NTTLoadFast:
		return c.alloc(2 * n)
	default:
		return Span{}
	}
}

// Size is the pure sizing function spec.md §5 requires: the number of
// ZZ-words the arena consumes for degree n under configuration cfg,
// computable with no arena allocated. It is defined in terms of
// ComputeLayout so the reported size and the layout actually used can
// never drift apart. params.RequiredWords, which Config.Validate checks
// against the memory budget, is a separate formula giving the same count.
func Size(n int, cfg params.Config) int {
	return ComputeLayout(n, cfg).TotalWords()
}

// Pool is the single contiguous arena: every polynomial buffer the
// encoders touch is a view into pool.arena at an offset fixed by
// layout. No locking: spec.md §5 ties one Pool to one single-threaded,
// cooperative encryption.
type Pool struct {
	arena  []ring.ZZ
	Layout Layout
}

// NewPool validates cfg against budgetWords (rejecting it with a
// params/errs.ConfigError if it would not fit, including the
// secret-key/index-map aliasing hazard of spec.md §9) and allocates an
// arena sized exactly to the resulting layout.
func NewPool(n int, cfg params.Config, budgetWords int) (*Pool, error) {
	if err := cfg.Validate(n, budgetWords); err != nil {
		return nil, err
	}
	layout := ComputeLayout(n, cfg)
	return &Pool{arena: make([]ring.ZZ, layout.TotalWords()), Layout: layout}, nil
}

// Zero clears the whole arena, the caller's responsibility before reuse
// across encryptions (spec.md §7: "the MemPool is zeroised by the
// caller before reuse").
func (p *Pool) Zero() {
	for i := range p.arena {
		p.arena[i] = 0
	}
}

// ZZView returns the raw ring.ZZ words of span, for buffers that are
// never reinterpreted as another element type (secret key, NTT/IFFT
// root tables stored as ring.ZZ / ring.MUMO pairs, the index map).
func (p *Pool) ZZView(span Span) []ring.ZZ {
	return p.arena[span.Offset : span.Offset+span.Len]
}

// Poly returns a ring.Poly view over span, aliasing the arena rather
// than allocating. The caller must ensure span.Len == N.
func (p *Pool) Poly(span Span) ring.Poly {
	return ring.Poly{Coeffs: p.ZZView(span)}
}

// wordsPerComplex/wordsPerInt64 record how many ring.ZZ (32-bit) words
// each reinterpreted element occupies, for the typed aliasing views
// below. This is the explicit "tagged union of views" spec.md §9 calls
// for in place of the source language's raw arena cast.
const (
	wordsPerComplex = 16 / 4
	wordsPerInt64   = 8 / 4
)

// ConjVals reinterprets l.Main as a []complex128 of length N, the
// encoder's first staging buffer. The caller must not hold this slice
// past the point where ConjValsInt, C0 or C1 are taken from the same
// pool, since all four alias the same bytes.
func (p *Pool) ConjVals() []complex128 {
	base := unsafe.Pointer(&p.arena[p.Layout.Main.Offset])
	return unsafe.Slice((*complex128)(base), p.Layout.Main.Len/wordsPerComplex)
}

// ConjValsInt reinterprets the first half of l.Main as a []int64 of
// length N, the encoder's second staging buffer (scaled-and-rounded
// values before the per-prime modular reduction). It occupies words
// [Main.Offset, Main.Offset+2N): the live (m+e) message the encryptors
// read prime by prime, which must stay disjoint from C0/C1 below, not
// merely from the wider complex128 stage.
func (p *Pool) ConjValsInt() []int64 {
	base := unsafe.Pointer(&p.arena[p.Layout.Main.Offset])
	return unsafe.Slice((*int64)(base), p.Layout.N)
}

// C0 reinterprets the third quarter of l.Main (words [2N, 3N)) as a
// ring.Poly of length N, the symmetric/asymmetric encryptors' c0 output
// buffer. It is deliberately placed past ConjValsInt's [0, 2N) span:
// C0/C1 are written prime by prime while ConjValsInt must stay live and
// unmodified across the whole modulus chain, so the two cannot share
// words.
func (p *Pool) C0() ring.Poly {
	off := p.Layout.Main.Offset + 2*p.Layout.N
	return ring.Poly{Coeffs: p.arena[off : off+p.Layout.N]}
}

// C1 reinterprets the fourth quarter of l.Main (words [3N, 4N)) as a
// ring.Poly of length N, the encryptors' c1 output buffer. It aliases
// bytes immediately after C0's, past ConjValsInt's span for the same
// reason C0 is.
func (p *Pool) C1() ring.Poly {
	off := p.Layout.Main.Offset + 3*p.Layout.N
	return ring.Poly{Coeffs: p.arena[off : off+p.Layout.N]}
}

// Values returns the optional n/2-word staging buffer for raw input
// values, present only when cfg.IncludeValueBuffer was set.
func (p *Pool) Values() []float64 {
	if p.Layout.Values.Len == 0 {
		return nil
	}
	base := unsafe.Pointer(&p.arena[p.Layout.Values.Offset])
	return unsafe.Slice((*float64)(base), p.Layout.Values.Len/wordsPerInt64)
}

// SecretKey returns the raw words backing the secret key buffer,
// compressed (n/16 words) or expanded (n words) depending on cfg.
func (p *Pool) SecretKey() []ring.ZZ { return p.ZZView(p.Layout.SecretKey) }

// IFFTRoots reinterprets the loaded IFFT root table's backing words as
// []complex128, present only when cfg.IFFT == params.IFFTLoad; the
// table oracle's ifft_roots(n) bytes decode directly into this span.
func (p *Pool) IFFTRoots() []complex128 {
	if p.Layout.IFFTRoots.Len == 0 {
		return nil
	}
	base := unsafe.Pointer(&p.arena[p.Layout.IFFTRoots.Offset])
	return unsafe.Slice((*complex128)(base), p.Layout.IFFTRoots.Len/wordsPerComplex)
}

// NTTRoots returns the loaded forward-NTT root table's backing words.
func (p *Pool) NTTRoots() []ring.ZZ { return p.ZZView(p.Layout.NTTRoots) }

// INTTRoots returns the loaded inverse-NTT root table's backing words.
func (p *Pool) INTTRoots() []ring.ZZ { return p.ZZView(p.Layout.INTTRoots) }

// IndexMap returns the persisted index map's backing words, present
// only when cfg.IndexMap.Persistent().
func (p *Pool) IndexMap() []ring.ZZ { return p.ZZView(p.Layout.IndexMap) }
