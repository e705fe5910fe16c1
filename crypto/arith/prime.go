package arith

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// IsProbablePrime runs the Miller–Rabin test with the given number of rounds,
// drawing witnesses from crypto/rand. It panics if the system randomness
// source fails.
func IsProbablePrime(n *big.Int, rounds int) bool {
	ok, err := IsProbablePrimeWithReader(rand.Reader, n, rounds)
	if err != nil {
		panic(err)
	}
	return ok
}

// IsProbablePrimeWithReader runs the Miller–Rabin test reading the random
// witnesses from r. Each round draws a fresh witness a in [2, n-2] by
// rejection. A composite number passes all rounds with probability at most
// 4^-rounds.
func IsProbablePrimeWithReader(r io.Reader, n *big.Int, rounds int) (bool, error) {
	if n.Cmp(two) == 0 || n.Cmp(big.NewInt(3)) == 0 {
		return true, nil
	}
	if n.Cmp(two) < 0 || n.Bit(0) == 0 {
		return false, nil
	}
	if rounds < 1 {
		rounds = 1
	}

	// n - 1 = d·2^s with d odd
	nMinus1 := new(big.Int).Sub(n, one)
	s := int(nMinus1.TrailingZeroBits())
	d := new(big.Int).Rsh(nMinus1, uint(s))
	nMinus2 := new(big.Int).Sub(n, two)
	bits := n.BitLen()

	x := new(big.Int)
	for i := 0; i < rounds; i++ {
		var a *big.Int
		for {
			var err error
			a, err = RandomOfBitLength(r, bits)
			if err != nil {
				return false, fmt.Errorf("cannot draw witness: %w", err)
			}
			if a.Cmp(two) >= 0 && a.Cmp(nMinus2) <= 0 {
				break
			}
		}

		x.Exp(a, d, n)
		if x.Cmp(one) == 0 || x.Cmp(nMinus1) == 0 {
			continue
		}
		composite := true
		for j := 1; j < s; j++ {
			x.Mul(x, x).Mod(x, n)
			if x.Cmp(one) == 0 {
				return false, nil
			}
			if x.Cmp(nMinus1) == 0 {
				composite = false
				break
			}
		}
		if composite {
			return false, nil
		}
	}
	return true, nil
}
