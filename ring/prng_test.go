package ring

import (
	"bytes"
	"testing"
)

func TestPRNGDeterministicOnSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, PRNGSeedSize)

	p1 := &PRNG{}
	if err := p1.Randomize(seed); err != nil {
		t.Fatalf("Randomize: %v", err)
	}
	p2 := &PRNG{}
	if err := p2.Randomize(seed); err != nil {
		t.Fatalf("Randomize: %v", err)
	}

	a := make([]byte, 1000)
	b := make([]byte, 1000)
	p1.FillBuffer(a)
	p2.FillBuffer(b)
	if !bytes.Equal(a, b) {
		t.Fatal("two PRNGs seeded identically produced different streams")
	}
}

func TestPRNGDiffersAcrossSeeds(t *testing.T) {
	p1 := &PRNG{}
	p1.Randomize(bytes.Repeat([]byte{0x01}, PRNGSeedSize))
	p2 := &PRNG{}
	p2.Randomize(bytes.Repeat([]byte{0x02}, PRNGSeedSize))

	a := make([]byte, 64)
	b := make([]byte, 64)
	p1.FillBuffer(a)
	p2.FillBuffer(b)
	if bytes.Equal(a, b) {
		t.Fatal("PRNGs with different seeds produced identical streams")
	}
}

func TestPRNGFillBufferIsContinuousAcrossPartialBlocks(t *testing.T) {
	seed := bytes.Repeat([]byte{0x07}, PRNGSeedSize)

	whole := &PRNG{}
	whole.Randomize(seed)
	oneShot := make([]byte, 300)
	whole.FillBuffer(oneShot)

	piecewise := &PRNG{}
	piecewise.Randomize(seed)
	reassembled := make([]byte, 0, 300)
	for _, n := range []int{1, 50, 7, 242} {
		buf := make([]byte, n)
		piecewise.FillBuffer(buf)
		reassembled = append(reassembled, buf...)
	}

	if !bytes.Equal(oneShot, reassembled) {
		t.Fatal("FillBuffer is not a continuous stream across varying call sizes")
	}
}
