package ecc

import (
	"fmt"
	"math/big"

	"github.com/vocdoni/ec-elgamal/crypto/arith"
)

var (
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// Neg returns -p = (x, -y mod P).
func Neg(p Point, c *CurveParams) Point {
	if p.Inf {
		return Infinity()
	}
	y := new(big.Int).Neg(p.Y)
	return Point{X: new(big.Int).Set(p.X), Y: y.Mod(y, c.P)}
}

// Add returns p + q under the group law. The identity absorbs, p + (-p) is
// the identity and p + p is routed to Double. Two affine points sharing x
// whose y coordinates are neither equal nor opposite (which only happens off
// the curve) fail with arith.ErrNotInvertible, as does a composite modulus.
func Add(p, q Point, c *CurveParams) (Point, error) {
	switch {
	case p.Inf:
		return q.Clone(), nil
	case q.Inf:
		return p.Clone(), nil
	}
	if sameMod(p.X, q.X, c.P) {
		sum := new(big.Int).Add(p.Y, q.Y)
		if sum.Mod(sum, c.P).Sign() == 0 {
			return Infinity(), nil
		}
		if sameMod(p.Y, q.Y, c.P) {
			return Double(p, c)
		}
	}
	return Chord(p, q, c)
}

// Chord applies the chord formula to p and q without any special casing:
//
//	m  = (y_q - y_p) / (x_q - x_p)
//	x' = m² - x_p - x_q
//	y' = m·(x_p - x') - y_p
//
// It fails with arith.ErrNotInvertible when x_p ≡ x_q. Chord never checks
// curve membership, which makes it usable on message carriers.
func Chord(p, q Point, c *CurveParams) (Point, error) {
	if p.Inf || q.Inf {
		return Point{}, ErrPointAtInfinity
	}
	dx := new(big.Int).Sub(q.X, p.X)
	inv, err := arith.ModInverse(dx, c.P)
	if err != nil {
		return Point{}, fmt.Errorf("chord %s + %s: %w", p, q, err)
	}
	m := new(big.Int).Sub(q.Y, p.Y)
	m.Mul(m, inv)
	m.Mod(m, c.P)
	return line(m, p, q.X, c), nil
}

// Double returns 2·p using the tangent slope (3x² + a) / 2y. A point with
// y ≡ 0 has a vertical tangent and doubles to the identity.
func Double(p Point, c *CurveParams) (Point, error) {
	if p.Inf {
		return Infinity(), nil
	}
	if new(big.Int).Mod(p.Y, c.P).Sign() == 0 {
		return Infinity(), nil
	}
	den := new(big.Int).Mul(two, p.Y)
	inv, err := arith.ModInverse(den, c.P)
	if err != nil {
		return Point{}, fmt.Errorf("double %s: %w", p, err)
	}
	m := new(big.Int).Mul(p.X, p.X)
	m.Mul(m, three)
	m.Add(m, c.A)
	m.Mul(m, inv)
	m.Mod(m, c.P)
	return line(m, p, p.X, c), nil
}

// line finishes an addition once the slope m through p is known; qx is the
// x coordinate of the second point.
func line(m *big.Int, p Point, qx *big.Int, c *CurveParams) Point {
	x := new(big.Int).Mul(m, m)
	x.Sub(x, p.X)
	x.Sub(x, qx)
	x.Mod(x, c.P)

	y := new(big.Int).Sub(p.X, x)
	y.Mul(y, m)
	y.Sub(y, p.Y)
	y.Mod(y, c.P)
	return Point{X: x, Y: y}
}

// ScalarMultiply returns k·p by double-and-add over the bits of k, most
// significant first. The accumulator starts at p, which consumes the leading
// one bit, and each following bit doubles it and adds p when set. k = 0
// yields the identity and a negative k multiplies -p.
func ScalarMultiply(k *big.Int, p Point, c *CurveParams) (Point, error) {
	if k.Sign() == 0 || p.Inf {
		return Infinity(), nil
	}
	if k.Sign() < 0 {
		p = Neg(p, c)
		k = new(big.Int).Neg(k)
	}
	acc := p.Clone()
	acc.Order = nil
	var err error
	for i := k.BitLen() - 2; i >= 0; i-- {
		if acc, err = Double(acc, c); err != nil {
			return Point{}, err
		}
		if k.Bit(i) == 1 {
			if acc, err = Add(acc, p, c); err != nil {
				return Point{}, err
			}
		}
	}
	return acc, nil
}

// PointFromX returns the curve point with the given x coordinate and the
// requested parity of y. It fails with arith.ErrNotQuadraticResidue when no
// point has that abscissa.
func PointFromX(x *big.Int, odd bool, c *CurveParams) (Point, error) {
	xr := new(big.Int).Mod(x, c.P)
	params, err := arith.SqrtParamsFor(c.P)
	if err != nil {
		return Point{}, err
	}
	y, err := arith.ModSqrt(c.rhs(xr), params)
	if err != nil {
		return Point{}, err
	}
	if y.Sign() != 0 && (y.Bit(0) == 1) != odd {
		y.Sub(c.P, y)
	}
	return Point{X: xr, Y: y}, nil
}

func sameMod(a, b, m *big.Int) bool {
	d := new(big.Int).Sub(a, b)
	return d.Mod(d, m).Sign() == 0
}
