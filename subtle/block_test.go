package subtle

import (
	"crypto/rand"
	"math/big"
	"testing"
)

// randomHalf returns a uniformly random BlockHalfSize-byte integer, which
// (per the sizing rationale in sizes.go) is always strictly less than a
// modulus produced by GenerateModulus.
func randomHalf(t *testing.T) *big.Int {
	t.Helper()
	buf := make([]byte, BlockHalfSize)
	if _, err := rand.Read(buf); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	return new(big.Int).SetBytes(buf)
}

func TestBlockRoundTrip(t *testing.T) {
	n, d, err := GenerateModulus()
	if err != nil {
		t.Fatalf("GenerateModulus: %v", err)
	}

	for i := 0; i < 5; i++ {
		s0, s1 := randomHalf(t), randomHalf(t)
		b := Block{S0: new(big.Int).Set(s0), S1: new(big.Int).Set(s1)}

		b.Encode(3, uint32(i), n, d)
		b.Decode(3, uint32(i), n)

		if b.S0.Cmp(s0) != 0 || b.S1.Cmp(s1) != 0 {
			t.Fatalf("round trip %d: got (%s, %s), want (%s, %s)", i, b.S0, b.S1, s0, s1)
		}
	}
}

func TestBlockTweakSeparation(t *testing.T) {
	n, d, err := GenerateModulus()
	if err != nil {
		t.Fatalf("GenerateModulus: %v", err)
	}

	s0, s1 := randomHalf(t), randomHalf(t)

	a := Block{S0: new(big.Int).Set(s0), S1: new(big.Int).Set(s1)}
	a.Encode(0, 1, n, d)

	b := Block{S0: new(big.Int).Set(s0), S1: new(big.Int).Set(s1)}
	b.Encode(0, 2, n, d)

	if a.S0.Cmp(b.S0) == 0 || a.S1.Cmp(b.S1) == 0 {
		t.Fatalf("encoding the same block at different positions produced matching halves")
	}
}

func TestBlockKeyCloneEquivalence(t *testing.T) {
	n, d, err := GenerateModulus()
	if err != nil {
		t.Fatalf("GenerateModulus: %v", err)
	}
	nClone := new(big.Int).Set(n)
	dClone := new(big.Int).Set(d)

	s0, s1 := randomHalf(t), randomHalf(t)

	a := Block{S0: new(big.Int).Set(s0), S1: new(big.Int).Set(s1)}
	a.Encode(7, 0, n, d)

	b := Block{S0: new(big.Int).Set(s0), S1: new(big.Int).Set(s1)}
	b.Encode(7, 0, nClone, dClone)

	if a.S0.Cmp(b.S0) != 0 || a.S1.Cmp(b.S1) != 0 {
		t.Fatalf("cloned key parameters produced different ciphertext")
	}
}
