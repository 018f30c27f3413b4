package ring

import "math/bits"

// maskZZ returns all-ones if v != 0, else all-zero, without branching.
// It relies on the fact that for 0 < v < 2^31, exactly one of v, -v has
// its sign bit set, so ORing them and arithmetic-shifting by 31 sign
// extends that bit across the whole word.
func maskZZ(v ZZ) ZZ {
	t := ZZSign(v)
	return ZZ((t | -t) >> 31)
}

// maskWide is the 64-bit analogue of maskZZ, used by the Barrett
// conditional-subtract step below. d is expected to be the result of an
// unsigned subtraction that may have wrapped; the mask is all-ones iff
// it wrapped (i.e. the "true" difference was negative).
func maskWide(d ZZWide) ZZWide {
	return ZZWide(int64(d) >> 63)
}

// AddMod returns a+b mod q. Precondition: a+b < 2q-1 (true whenever a
// and b are each already reduced mod q).
func AddMod(a, b ZZ, m Modulus) ZZ {
	sum := a + b
	d := sum - m.Value
	mask := ZZ(ZZSign(d) >> 31)
	return d + (m.Value & mask)
}

// NegMod returns -a mod q, i.e. q-a if a != 0, else 0.
func NegMod(a ZZ, m Modulus) ZZ {
	return (m.Value - a) & maskZZ(a)
}

// SubMod returns a-b mod q, built from AddMod and NegMod per spec.md §4.1.
func SubMod(a, b ZZ, m Modulus) ZZ {
	return AddMod(a, NegMod(b, m), m)
}

// CondSub subtracts q from x once if x >= q, branchlessly. It is exposed
// because the NTT butterfly needs the same primitive on operands that
// are not full Barrett products.
func CondSub(x ZZ, m Modulus) ZZ {
	d := x - m.Value
	mask := ZZ(ZZSign(d) >> 31)
	return d + (m.Value & mask)
}

// condSubWide is CondSub's 64-bit counterpart, used inside BarrettReduce.
func condSubWide(x ZZWide, q ZZWide) ZZWide {
	d := x - q
	return d + (q & maskWide(d))
}

// BarrettReduce reduces the double-word product x into [0, q) using the
// modulus' precomputed const_ratio = floor(2^64/q): t = high_word(x *
// const_ratio) approximates floor(x/q) to within 1, so two conditional
// subtractions are sufficient to land in range.
func BarrettReduce(x ZZWide, m Modulus) ZZ {
	ratio := m.constRatio()
	t, _ := bits.Mul64(x, ratio)
	r := x - t*ZZWide(m.Value)
	r = condSubWide(r, ZZWide(m.Value))
	r = condSubWide(r, ZZWide(m.Value))
	return ZZ(r)
}

// MulMod returns a*b mod q via BarrettReduce.
func MulMod(a, b ZZ, m Modulus) ZZ {
	return BarrettReduce(ZZWide(a)*ZZWide(b), m)
}

// BarrettReduceWide reduces a full 128-bit value {hi, lo} (value =
// hi*2^64 + lo) modulo q exactly, via two hardware long-divisions. This
// is the "double-word input" Barrett variant spec.md §4.1 calls for; it
// is used by the encoder's big-coefficient reduction path and exercised
// directly by spec.md §8's seed scenario 6.
func BarrettReduceWide(hi, lo ZZWide, m Modulus) ZZ {
	q := uint64(m.Value)
	_, hiRem := bits.Div64(0, hi, q)
	_, rem := bits.Div64(hiRem, lo, q)
	return ZZ(rem)
}

// ExpMod computes base^exp mod q by square-and-multiply, branching on
// each bit of exp from LSB to MSB.
func ExpMod(base ZZ, exp uint64, m Modulus) ZZ {
	result := ZZ(1) % m.Value
	b := base % m.Value
	for exp > 0 {
		if exp&1 == 1 {
			result = MulMod(result, b, m)
		}
		b = MulMod(b, b, m)
		exp >>= 1
	}
	return result
}

// ExpModBitrev computes base^bitrev(idx, logN) mod q, for (re)generating
// a twiddle factor on the fly from its bit-reversed table position. It
// reverses idx first and then calls ExpMod, which scans the reversed
// exponent from LSB to MSB.
func ExpModBitrev(base ZZ, idx uint64, logN int, m Modulus) ZZ {
	return ExpMod(base, BitReverse(idx, logN), m)
}

// BitReverse reverses the low logN bits of x.
func BitReverse(x uint64, logN int) uint64 {
	var r uint64
	for i := 0; i < logN; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}
