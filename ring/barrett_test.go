package ring

import "testing"

func TestBarrettReduceWideSeedScenario(t *testing.T) {
	m, err := NewModulus(2)
	if err != nil {
		t.Fatalf("NewModulus(2): %v", err)
	}
	const maxU64 = ^uint64(0)
	if got := BarrettReduceWide(maxU64, maxU64, m); got != 1 {
		t.Errorf("BarrettReduceWide({MAX,MAX}, q=2) = %d, want 1", got)
	}
	if got := BarrettReduceWide(maxU64, maxU64-1, m); got != 0 {
		t.Errorf("BarrettReduceWide({MAX,MAX-1}, q=2) = %d, want 0", got)
	}
}

func TestAddSubNegModInvariants(t *testing.T) {
	m, err := NewModulus(12289)
	if err != nil {
		t.Fatalf("NewModulus: %v", err)
	}
	for a := ZZ(0); a < m.Value; a += 773 {
		if got := NegMod(NegMod(a, m), m); got != a {
			t.Fatalf("NegMod(NegMod(%d)) = %d, want %d", a, got, a)
		}
		if got := SubMod(a, a, m); got != 0 {
			t.Fatalf("SubMod(%d,%d) = %d, want 0", a, a, got)
		}
		for b := ZZ(0); b < m.Value; b += 3571 {
			if got := AddMod(SubMod(a, b, m), b, m); got != a {
				t.Fatalf("AddMod(SubMod(%d,%d),%d) = %d, want %d", a, b, b, got, a)
			}
		}
	}
}

func TestMulModMatchesBarrettAndMUMO(t *testing.T) {
	m, err := NewModulus(12289)
	if err != nil {
		t.Fatalf("NewModulus: %v", err)
	}
	y := ZZ(3)
	mumo := NewMUMO(y, m)
	for x := ZZ(0); x < m.Value; x += 97 {
		want := MulMod(x, y, m)
		if got := MulModMUMO(x, mumo, m); got != want {
			t.Fatalf("MulModMUMO(%d) = %d, want %d", x, got, want)
		}
	}
}

func TestExpModBitrev(t *testing.T) {
	m, err := NewModulus(12289)
	if err != nil {
		t.Fatalf("NewModulus: %v", err)
	}
	if got := ExpModBitrev(2, 0, 4, m); got != 1 {
		t.Errorf("ExpModBitrev(2, 0, 4) = %d, want 1", got)
	}
	// bitrev(1, 4) = 8, so this must equal ExpMod(2, 8).
	want := ExpMod(2, 8, m)
	if got := ExpModBitrev(2, 1, 4, m); got != want {
		t.Errorf("ExpModBitrev(2, 1, 4) = %d, want %d", got, want)
	}
}
