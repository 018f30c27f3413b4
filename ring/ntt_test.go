package ring

import "testing"

// These 12289/psi=7 parameters are the textbook toy CKKS/BFV NTT
// modulus: 12289 = 3*2^12+1 so it is NTT-friendly up to N=2048, and 7 is
// a known primitive 2N-th root of unity for N=1024.
const testQ = 12289
const testN = 1024
const testPsi = 7

func TestNTTRoundTrip(t *testing.T) {
	m := mustModulus(t, testQ)
	table := GenerateTable(testN, m, testPsi)

	original := NewPoly(testN)
	for i := range original.Coeffs {
		original.Coeffs[i] = ZZ(i) % m.Value
	}

	pol := NewPoly(testN)
	pol.CopyFrom(original)

	NTTForward(pol, table)
	if !pol.NTTForm {
		t.Fatal("NTTForward did not mark NTTForm")
	}
	NTTBackward(pol, table)
	if pol.NTTForm {
		t.Fatal("NTTBackward did not clear NTTForm")
	}

	for i := range pol.Coeffs {
		if pol.Coeffs[i] != original.Coeffs[i] {
			t.Fatalf("round trip mismatch at %d: got %d, want %d", i, pol.Coeffs[i], original.Coeffs[i])
		}
	}
}

func TestNTTIsLinear(t *testing.T) {
	m := mustModulus(t, testQ)
	table := GenerateTable(testN, m, testPsi)

	a := NewPoly(testN)
	b := NewPoly(testN)
	for i := range a.Coeffs {
		a.Coeffs[i] = ZZ(i*3+1) % m.Value
		b.Coeffs[i] = ZZ(i*7+2) % m.Value
	}

	sum := NewPoly(testN)
	Add(a, b, sum, m)

	aT := NewPoly(testN)
	bT := NewPoly(testN)
	sumT := NewPoly(testN)
	aT.CopyFrom(a)
	bT.CopyFrom(b)
	sumT.CopyFrom(sum)

	NTTForward(aT, table)
	NTTForward(bT, table)
	NTTForward(sumT, table)

	combined := NewPoly(testN)
	Add(aT, bT, combined, m)

	for i := range combined.Coeffs {
		if combined.Coeffs[i] != sumT.Coeffs[i] {
			t.Fatalf("NTT(a)+NTT(b) != NTT(a+b) at %d", i)
		}
	}
}

func TestOTFAndOneShotTransformersAgree(t *testing.T) {
	m := mustModulus(t, testQ)

	pol1 := NewPoly(testN)
	pol2 := NewPoly(testN)
	for i := range pol1.Coeffs {
		v := ZZ(i*11+5) % m.Value
		pol1.Coeffs[i] = v
		pol2.Coeffs[i] = v
	}

	otf := OTFTransformer{N: testN, Modulus: m, Psi: testPsi}
	oneShot := NewOneShotTransformer(testN, m, testPsi)

	otf.Forward(pol1)
	oneShot.Forward(pol2)

	for i := range pol1.Coeffs {
		if pol1.Coeffs[i] != pol2.Coeffs[i] {
			t.Fatalf("OTF and one-shot transformers disagree at %d", i)
		}
	}
}
