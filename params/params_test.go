package params

import (
	"errors"
	"testing"

	"github.com/tinylattice/ckks-embedded/errs"
	"github.com/tinylattice/ckks-embedded/ring"
)

func testModuli(t *testing.T, n int, qs ...ring.ZZ) []ring.Modulus {
	t.Helper()
	out := make([]ring.Modulus, len(qs))
	for i, q := range qs {
		m, err := ring.NewModulus(q)
		if err != nil {
			t.Fatalf("NewModulus(%d): %v", q, err)
		}
		out[i] = m
		_ = n
	}
	return out
}

func TestNewRejectsUnsupportedDegree(t *testing.T) {
	moduli := testModuli(t, 12, 12289)
	if _, err := New(12, moduli, 20, Flags{}); err == nil {
		t.Fatal("expected ConfigError for unsupported degree")
	}
}

func TestNewRejectsNonNTTFriendlyModulus(t *testing.T) {
	// 12289 = 3*2^12 + 1 is NTT-friendly up to n=2048, so not for n=8192.
	moduli := testModuli(t, 8192, 12289, 12289)
	if _, err := New(8192, moduli, 20, Flags{}); err == nil {
		t.Fatal("expected ConfigError for non-NTT-friendly modulus")
	}
}

func TestNextModulusChainExhausted(t *testing.T) {
	moduli := testModuli(t, 1024, 12289, 12289, 12289)
	p, err := New(1024, moduli, 10, Flags{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.NWorkingPrimes() != 2 {
		t.Fatalf("NWorkingPrimes() = %d, want 2", p.NWorkingPrimes())
	}
	if err := p.NextModulus(); err != nil {
		t.Fatalf("first NextModulus: %v", err)
	}
	if p.CurrModulusIndex() != 1 {
		t.Fatalf("CurrModulusIndex() = %d, want 1", p.CurrModulusIndex())
	}
	if err := p.NextModulus(); !errors.Is(err, errs.ErrChainExhausted) {
		t.Fatalf("second NextModulus = %v, want ErrChainExhausted", err)
	}
}

func TestConfigValidateRejectsSecretKeyIndexMapAliasing(t *testing.T) {
	cfg := Config{
		SecretKey: SKPersistent,
		IndexMap:  IndexMapComputePersistent,
	}
	if err := cfg.Validate(4096, 1<<20); err == nil {
		t.Fatal("expected ConfigError for secret-key/index-map aliasing")
	}
}

func TestConfigValidateRejectsOverBudget(t *testing.T) {
	cfg := Config{
		IFFT: IFFTLoad,
		NTT:  NTTLoadFast,
		INTT: NTTLoadFast,
	}
	if err := cfg.Validate(4096, 100); err == nil {
		t.Fatal("expected ConfigError for over-budget configuration")
	}
}

func TestRequiredWordsBaseline(t *testing.T) {
	cfg := Config{
		IFFT:      IFFTOnTheFly,
		NTT:       NTTOnTheFly,
		INTT:      NTTOnTheFly,
		IndexMap:  IndexMapOnTheFly,
		SecretKey: SKPerPrime,
	}
	const n = 4096
	want := 4*n + n/16
	if got := RequiredWords(n, cfg); got != want {
		t.Fatalf("RequiredWords baseline = %d, want %d", got, want)
	}
}
