package oracle

import (
	"testing"

	"github.com/tinylattice/ckks-embedded/ring"
)

func TestSecretKeyRoundTrip(t *testing.T) {
	const n = 64
	src := NewMapSource()
	want := ring.NewTernaryCompressed(n)
	for i := range want.Packed {
		want.Packed[i] = byte(i)
	}
	src.PutSecretKey(n, want)

	got, err := LoadSecretKey(src, n)
	if err != nil {
		t.Fatalf("LoadSecretKey: %v", err)
	}
	if string(got.Packed) != string(want.Packed) || got.N != n {
		t.Fatalf("round trip mismatch: got %v, want %v", got, want)
	}
}

func TestNTTFastRootsRoundTrip(t *testing.T) {
	const n = 8
	const q = 12289
	src := NewMapSource()
	roots := make([]ring.MUMO, n)
	for i := range roots {
		roots[i] = ring.MUMO{Operand: ring.ZZ(i * 3), Quotient: ring.ZZ(i * 7)}
	}
	src.PutNTTFastRoots(n, q, false, roots)

	got, err := LoadNTTFastRoots(src, n, q, false)
	if err != nil {
		t.Fatalf("LoadNTTFastRoots: %v", err)
	}
	for i := range roots {
		if got[i] != roots[i] {
			t.Fatalf("root %d = %+v, want %+v", i, got[i], roots[i])
		}
	}
}

func TestIFFTRootsRoundTrip(t *testing.T) {
	const n = 4
	src := NewMapSource()
	roots := []complex128{1 + 2i, -3 + 4i, 0, 5.5 - 1.25i}
	src.PutIFFTRoots(n, roots)

	got, err := LoadIFFTRoots(src, n)
	if err != nil {
		t.Fatalf("LoadIFFTRoots: %v", err)
	}
	for i := range roots {
		if got[i] != roots[i] {
			t.Fatalf("root %d = %v, want %v", i, got[i], roots[i])
		}
	}
}

func TestMissingTableIsOracleError(t *testing.T) {
	src := NewMapSource()
	if _, err := LoadSecretKey(src, 1024); err == nil {
		t.Fatal("expected an OracleError for a missing table")
	}
}
