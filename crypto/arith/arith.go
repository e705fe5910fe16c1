// Package arith contains the arbitrary precision number theory primitives
// used by the curve engine: modular inverse and square root, probabilistic
// primality, ranged random integers and sign-aware base conversions.
//
// All functions treat their *big.Int arguments as read-only and return newly
// allocated values.
package arith

import (
	"errors"
	"math/big"
)

var (
	// ErrNotInvertible is returned when gcd(a, p) != 1, so a has no inverse
	// modulo p.
	ErrNotInvertible = errors.New("not invertible")
	// ErrNotQuadraticResidue is returned by ModSqrt when the argument has no
	// square root modulo p.
	ErrNotQuadraticResidue = errors.New("not a quadratic residue")
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
	two  = big.NewInt(2)
)

// ModInverse returns a⁻¹ mod p in the range [0, p), computed with the
// extended Euclidean algorithm. Negative values of a are accepted. It returns
// ErrNotInvertible when a and p are not coprime.
func ModInverse(a, p *big.Int) (*big.Int, error) {
	if p.Sign() <= 0 {
		return nil, errors.New("modulus must be positive")
	}
	t, newT := new(big.Int), big.NewInt(1)
	r, newR := new(big.Int).Set(p), new(big.Int).Mod(a, p)
	quot, tmp := new(big.Int), new(big.Int)
	for newR.Sign() != 0 {
		quot.Quo(r, newR)
		// (t, newT) = (newT, t - quot*newT)
		tmp.Mul(quot, newT)
		t.Sub(t, tmp)
		t, newT = newT, t
		// (r, newR) = (newR, r - quot*newR)
		tmp.Mul(quot, newR)
		r.Sub(r, tmp)
		r, newR = newR, r
	}
	if r.Cmp(one) != 0 {
		return nil, ErrNotInvertible
	}
	return t.Mod(t, p), nil
}

// Coprime reports whether gcd(a, b) == 1.
func Coprime(a, b *big.Int) bool {
	gcd := new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
	return gcd.Cmp(one) == 0
}

// BigToFF function returns the finite field representation of the big.Int
// provided. It uses Euclidean modulus, so the result is always in [0, field).
func BigToFF(field, iv *big.Int) *big.Int {
	z := big.NewInt(0)
	if c := iv.Cmp(field); c == 0 {
		return z
	} else if c != 1 && iv.Cmp(z) != -1 {
		return new(big.Int).Set(iv)
	}
	return z.Mod(iv, field)
}
