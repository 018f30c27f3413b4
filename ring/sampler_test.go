package ring

import (
	"math"
	"testing"

	"github.com/montanaflynn/stats"
)

func mustModulus(t *testing.T, q ZZ) Modulus {
	t.Helper()
	m, err := NewModulus(q)
	if err != nil {
		t.Fatalf("NewModulus(%d): %v", q, err)
	}
	return m
}

func TestUniformSamplerStaysInRange(t *testing.T) {
	m := mustModulus(t, 12289)
	prng, err := NewPRNG()
	if err != nil {
		t.Fatalf("NewPRNG: %v", err)
	}
	s := NewUniformSampler(prng)
	pol := NewPoly(1024)
	s.Read(pol, m)
	for i, c := range pol.Coeffs {
		if c >= m.Value {
			t.Fatalf("coefficient %d = %d out of range [0,%d)", i, c, m.Value)
		}
	}
}

func TestTernarySamplerOnlyEmitsExpectedResidues(t *testing.T) {
	m := mustModulus(t, 12289)
	prng, err := NewPRNG()
	if err != nil {
		t.Fatalf("NewPRNG: %v", err)
	}
	s := NewTernarySampler(prng)
	pol := NewPoly(2048)
	s.Read(pol, m)
	for i, c := range pol.Coeffs {
		if c != 0 && c != 1 && c != m.Value-1 {
			t.Fatalf("coefficient %d = %d is not in {-1,0,1} mod q", i, c)
		}
	}
}

func TestTernaryCompressedRoundTrip(t *testing.T) {
	m := mustModulus(t, 12289)
	prng, err := NewPRNG()
	if err != nil {
		t.Fatalf("NewPRNG: %v", err)
	}
	s := NewTernarySampler(prng)
	packed := NewTernaryCompressed(777)
	s.ReadCompressed(packed)

	expanded := NewPoly(777)
	Expand(packed, expanded, m)

	for i := 0; i < packed.N; i++ {
		code := packed.Get(i)
		want := ternaryCodeToCoeff(code, m)
		if expanded.Coeffs[i] != want {
			t.Fatalf("index %d: expanded %d, want %d (code %d)", i, expanded.Coeffs[i], want, code)
		}
	}
}

func TestCBDSamplerMeanAndStddev(t *testing.T) {
	prng, err := NewPRNG()
	if err != nil {
		t.Fatalf("NewPRNG: %v", err)
	}
	s := NewCBDSampler(prng)

	const samples = 20000
	data := make(stats.Float64Data, samples)
	for i := range data {
		data[i] = float64(s.sampleOne())
	}

	mean, err := stats.Mean(data)
	if err != nil {
		t.Fatalf("stats.Mean: %v", err)
	}
	if math.Abs(mean) > 0.5 {
		t.Errorf("CBD sample mean = %f, want close to 0", mean)
	}

	stddev, err := stats.StandardDeviation(data)
	if err != nil {
		t.Fatalf("stats.StandardDeviation: %v", err)
	}
	wantStddev := math.Sqrt(float64(CBDK) / 2)
	if math.Abs(stddev-wantStddev) > 0.25 {
		t.Errorf("CBD sample stddev = %f, want close to %f", stddev, wantStddev)
	}
}
