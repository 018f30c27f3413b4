package mempool

import (
	"testing"

	"github.com/tinylattice/ckks-embedded/params"
)

func baselineConfig() params.Config {
	return params.Config{
		IFFT:      params.IFFTOnTheFly,
		NTT:       params.NTTOnTheFly,
		INTT:      params.NTTOnTheFly,
		IndexMap:  params.IndexMapOnTheFly,
		SecretKey: params.SKPerPrime,
	}
}

func TestSizeMatchesSpecBaselineFormula(t *testing.T) {
	const n = 4096
	cfg := baselineConfig()
	want := 4*n + n/16
	if got := Size(n, cfg); got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}
}

func TestSizeEqualsMaxOffsetWritten(t *testing.T) {
	const n = 2048
	cfg := params.Config{
		IFFT:               params.IFFTLoad,
		NTT:                params.NTTLoadFast,
		INTT:               params.NTTLoad,
		IndexMap:           params.IndexMapLoad,
		SecretKey:          params.SKAcrossPrimes,
		IncludeValueBuffer: true,
	}
	layout := ComputeLayout(n, cfg)

	maxOffset := 0
	for _, span := range []Span{layout.Main, layout.Values, layout.SecretKey, layout.IFFTRoots, layout.NTTRoots, layout.INTTRoots, layout.IndexMap} {
		if end := span.Offset + span.Len; end > maxOffset {
			maxOffset = end
		}
	}

	if maxOffset != layout.TotalWords() {
		t.Fatalf("max offset written = %d, TotalWords() = %d", maxOffset, layout.TotalWords())
	}
	if got := Size(n, cfg); got != maxOffset {
		t.Fatalf("Size() = %d, want %d (max offset written)", got, maxOffset)
	}
}

func TestNewPoolRejectsAliasingHazard(t *testing.T) {
	cfg := params.Config{
		SecretKey: params.SKPersistent,
		IndexMap:  params.IndexMapComputePersistent,
	}
	if _, err := NewPool(4096, cfg, 1<<20); err == nil {
		t.Fatal("expected ConfigError for secret-key/index-map aliasing")
	}
}

func TestPoolC0C1DoNotOverlap(t *testing.T) {
	const n = 1024
	pool, err := NewPool(n, baselineConfig(), 1<<20)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}

	c0 := pool.C0()
	c1 := pool.C1()
	c0.Coeffs[0] = 7
	c1.Coeffs[0] = 9
	if c0.Coeffs[0] != 7 {
		t.Fatal("writing c1 corrupted c0")
	}
	if c1.N() != n || c0.N() != n {
		t.Fatalf("C0/C1 length = %d/%d, want %d", c0.N(), c1.N(), n)
	}
}

// TestPoolC0C1DisjointFromConjValsInt guards against the arena layout
// regressing to one where C0/C1 occupy the same words as ConjValsInt:
// writing through C0/C1 must never be visible through ConjValsInt,
// since encryptors read the latter as the live (m+e) message after
// already having written c0/c1 for a prior prime.
func TestPoolC0C1DisjointFromConjValsInt(t *testing.T) {
	const n = 1024
	pool, err := NewPool(n, baselineConfig(), 1<<20)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}

	conjValsInt := pool.ConjValsInt()
	if len(conjValsInt) != n {
		t.Fatalf("len(ConjValsInt()) = %d, want %d", len(conjValsInt), n)
	}
	for i := range conjValsInt {
		conjValsInt[i] = int64(i + 1)
	}

	c0 := pool.C0()
	c1 := pool.C1()
	for i := range c0.Coeffs {
		c0.Coeffs[i] = 0xDEAD
		c1.Coeffs[i] = 0xBEEF
	}

	for i, v := range conjValsInt {
		if v != int64(i+1) {
			t.Fatalf("ConjValsInt()[%d] = %d, want %d: writing C0/C1 corrupted it", i, v, i+1)
		}
	}
}

func TestPoolConjValsAliasesMain(t *testing.T) {
	const n = 1024
	pool, err := NewPool(n, baselineConfig(), 1<<20)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	cv := pool.ConjVals()
	if len(cv) != n {
		t.Fatalf("len(ConjVals()) = %d, want %d", len(cv), n)
	}
	cv[0] = complex(1, 2)
	if cv[0] != complex(1, 2) {
		t.Fatal("ConjVals write did not stick")
	}
}
