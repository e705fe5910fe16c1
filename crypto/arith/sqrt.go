package arith

import (
	"errors"
	"fmt"
	"math/big"
	"sync"
)

// SqrtParams holds the per-modulus constants of the Tonelli–Shanks
// algorithm: p-1 = Q·2^S with Q odd, and Z a quadratic non-residue mod p.
// A SqrtParams value is immutable once built and safe for concurrent use.
type SqrtParams struct {
	P *big.Int
	Q *big.Int
	S int
	Z *big.Int
}

// PrecomputeSqrtParams factors p-1 = Q·2^S and finds the first quadratic
// non-residue Z by linear scan starting at 2. The scan is O(p) in the worst
// case, which is why callers are expected to keep the result around (see
// SqrtParamsFor). The modulus must be an odd prime.
func PrecomputeSqrtParams(p *big.Int) (*SqrtParams, error) {
	if p.Cmp(two) <= 0 || p.Bit(0) == 0 {
		return nil, fmt.Errorf("modulus %s is not an odd prime", p)
	}
	pMinus1 := new(big.Int).Sub(p, one)
	s := int(pMinus1.TrailingZeroBits())
	q := new(big.Int).Rsh(pMinus1, uint(s))

	// Euler's criterion: z is a non-residue iff z^((p-1)/2) ≡ -1 (mod p)
	exp := new(big.Int).Rsh(pMinus1, 1)
	check := new(big.Int)
	for z := big.NewInt(2); z.Cmp(p) < 0; z.Add(z, one) {
		check.Exp(z, exp, p)
		if check.Cmp(pMinus1) == 0 {
			return &SqrtParams{
				P: new(big.Int).Set(p),
				Q: q,
				S: s,
				Z: new(big.Int).Set(z),
			}, nil
		}
	}
	return nil, fmt.Errorf("no quadratic non-residue found modulo %s", p)
}

var sqrtParamsCache sync.Map // string(p) -> *SqrtParams

// SqrtParamsFor returns the Tonelli–Shanks parameters for p, computing them
// on first use and memoizing them per modulus for the lifetime of the process.
func SqrtParamsFor(p *big.Int) (*SqrtParams, error) {
	key := p.Text(16)
	if v, ok := sqrtParamsCache.Load(key); ok {
		return v.(*SqrtParams), nil
	}
	params, err := PrecomputeSqrtParams(p)
	if err != nil {
		return nil, err
	}
	v, _ := sqrtParamsCache.LoadOrStore(key, params)
	return v.(*SqrtParams), nil
}

// ModSqrt returns r such that r² ≡ a (mod params.P), using the Tonelli–Shanks
// algorithm. The other root is P - r. It returns ErrNotQuadraticResidue when
// a fails Euler's criterion.
func ModSqrt(a *big.Int, params *SqrtParams) (*big.Int, error) {
	if params == nil {
		return nil, errors.New("nil sqrt parameters")
	}
	p := params.P
	n := new(big.Int).Mod(a, p)
	if n.Sign() == 0 {
		return new(big.Int), nil
	}
	exp := new(big.Int).Sub(p, one)
	exp.Rsh(exp, 1)
	if new(big.Int).Exp(n, exp, p).Cmp(one) != 0 {
		return nil, fmt.Errorf("%w: %s mod %s", ErrNotQuadraticResidue, a, p)
	}

	m := params.S
	c := new(big.Int).Exp(params.Z, params.Q, p)
	t := new(big.Int).Exp(n, params.Q, p)
	r := new(big.Int).Exp(n, new(big.Int).Rsh(new(big.Int).Add(params.Q, one), 1), p)

	tmp := new(big.Int)
	for t.Cmp(one) != 0 {
		// find the least i, 0 < i < m, such that t^(2^i) = 1
		i := 0
		tmp.Set(t)
		for tmp.Cmp(one) != 0 {
			tmp.Mul(tmp, tmp).Mod(tmp, p)
			i++
			if i == m {
				return nil, fmt.Errorf("%w: %s mod %s", ErrNotQuadraticResidue, a, p)
			}
		}
		// b = c^(2^(m-i-1))
		b := new(big.Int).Set(c)
		for j := 0; j < m-i-1; j++ {
			b.Mul(b, b).Mod(b, p)
		}
		m = i
		c.Mul(b, b).Mod(c, p)
		t.Mul(t, c).Mod(t, p)
		r.Mul(r, b).Mod(r, p)
	}
	return r, nil
}
