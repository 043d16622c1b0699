package subtle

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// ErrKeyGeneration is returned by GenerateModulus when no usable (n, d)
// pair could be found within the retry budget. This is vanishingly
// unlikely in practice: it only occurs when gcd(3, (p-1)(q-1)) != 1 for
// every sampled prime pair.
var ErrKeyGeneration = errors.New("subtle: key generation failed")

// maxGenerateAttempts bounds the retry loop in GenerateModulus. e=3 fails to
// be invertible mod (p-1)(q-1) only when 3 divides (p-1) or (q-1), which
// happens for roughly half of all random primes, so about one sampled pair
// in four is usable; exhausting a budget of this size indicates a broken
// RNG, not bad luck.
const maxGenerateAttempts = 1000

var three = big.NewInt(3)
var one = big.NewInt(1)

// GenerateModulus samples two independent PrimeSizeBits-bit primes p, q,
// computes n = p*q, and returns n together with the trapdoor d = 3^-1 mod
// (p-1)(q-1). The public exponent e=3 is implicit and fixed.
func GenerateModulus() (n, d *big.Int, err error) {
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		p, err := rand.Prime(rand.Reader, PrimeSizeBits)
		if err != nil {
			return nil, nil, err
		}
		q, err := rand.Prime(rand.Reader, PrimeSizeBits)
		if err != nil {
			return nil, nil, err
		}

		n = new(big.Int).Mul(p, q)

		pMinus1 := new(big.Int).Sub(p, one)
		qMinus1 := new(big.Int).Sub(q, one)
		phi := new(big.Int).Mul(pMinus1, qMinus1)

		d = new(big.Int).ModInverse(three, phi)
		if d != nil {
			return n, d, nil
		}
		// gcd(3, phi) != 1 for this pair; resample both primes.
	}
	return nil, nil, ErrKeyGeneration
}

// RSAP computes the forward trapdoor map P(v) = v^3 mod n. The caller must
// ensure 0 <= v < n.
func RSAP(v, n *big.Int) *big.Int {
	res := new(big.Int).Mul(v, v)
	res.Mod(res, n)
	res.Mul(res, v)
	res.Mod(res, n)
	return res
}

// RSAPInv computes the trapdoor inverse P^-1(c) = c^d mod n. The caller
// must ensure 0 <= c < n.
func RSAPInv(c, n, d *big.Int) *big.Int {
	return new(big.Int).Exp(c, d, n)
}
