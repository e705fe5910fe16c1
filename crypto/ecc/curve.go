// Package ecc implements affine point arithmetic on short Weierstrass curves
// y² = x³ + a·x + b over a prime field. Curves are described by plain
// parameter values (CurveParams) and points are immutable values (Point);
// every operation returns a freshly allocated result.
//
// The engine does not check that its inputs lie on the curve. The message
// codec relies on that to mask integer pairs that are not curve points, so
// callers that receive points from outside must call IsOnCurve themselves.
package ecc

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/vocdoni/ec-elgamal/crypto/arith"
)

var (
	// ErrSingularCurve is returned when 4a³ + 27b² ≡ 0 (mod p).
	ErrSingularCurve = errors.New("singular curve")
	// ErrPointAtInfinity is returned by operations that need affine
	// coordinates when given the identity.
	ErrPointAtInfinity = errors.New("point at infinity has no affine coordinates")
	// ErrOrderNotFound is returned by OrderOf when the enumeration limit is
	// reached before the identity.
	ErrOrderNotFound = errors.New("order not found within limit")
)

// primalityRounds is the number of Miller-Rabin rounds used by Validate.
const primalityRounds = 20

// CurveParams describes a curve and its base point. Values are built once
// and never modified afterwards.
type CurveParams struct {
	Name string
	// P is the prime modulus of the base field.
	P *big.Int
	// N is the order of the subgroup generated by G.
	N *big.Int
	A *big.Int
	B *big.Int
	G Point
	// BitSize is the bit length of P.
	BitSize int
}

// Discriminant returns 4a³ + 27b² mod p. The curve is singular when it is
// zero.
func (c *CurveParams) Discriminant() *big.Int {
	a3 := new(big.Int).Exp(c.A, big.NewInt(3), c.P)
	a3.Mul(a3, big.NewInt(4))
	b2 := new(big.Int).Mul(c.B, c.B)
	b2.Mul(b2, big.NewInt(27))
	d := a3.Add(a3, b2)
	return d.Mod(d, c.P)
}

// ByteSize is the number of bytes needed to hold a field element.
func (c *CurveParams) ByteSize() int {
	return (c.P.BitLen() + 7) / 8
}

// IsOnCurve reports whether p satisfies the curve equation with both
// coordinates reduced into [0, P). The identity is on every curve.
func (c *CurveParams) IsOnCurve(p Point) bool {
	if p.Inf {
		return true
	}
	if p.X == nil || p.Y == nil {
		return false
	}
	if p.X.Sign() < 0 || p.X.Cmp(c.P) >= 0 || p.Y.Sign() < 0 || p.Y.Cmp(c.P) >= 0 {
		return false
	}
	lhs := new(big.Int).Mul(p.Y, p.Y)
	lhs.Mod(lhs, c.P)
	return lhs.Cmp(c.rhs(p.X)) == 0
}

// rhs returns x³ + a·x + b mod p.
func (c *CurveParams) rhs(x *big.Int) *big.Int {
	r := new(big.Int).Mul(x, x)
	r.Add(r, c.A)
	r.Mul(r, x)
	r.Add(r, c.B)
	return r.Mod(r, c.P)
}

// Validate checks the parameter set: P must be a probable prime, the curve
// must be non-singular, G must lie on the curve and N·G must be the identity.
func (c *CurveParams) Validate() error {
	if c.P == nil || c.N == nil || c.A == nil || c.B == nil {
		return fmt.Errorf("curve %s: missing parameters", c.Name)
	}
	if !arith.IsProbablePrime(c.P, primalityRounds) {
		return fmt.Errorf("curve %s: modulus is not prime", c.Name)
	}
	if c.Discriminant().Sign() == 0 {
		return fmt.Errorf("curve %s: %w", c.Name, ErrSingularCurve)
	}
	if c.G.Inf || !c.IsOnCurve(c.G) {
		return fmt.Errorf("curve %s: base point is not on the curve", c.Name)
	}
	if c.N.Sign() <= 0 {
		return fmt.Errorf("curve %s: order must be positive", c.Name)
	}
	nG, err := ScalarMultiply(c.N, c.G, c)
	if err != nil {
		return fmt.Errorf("curve %s: %w", c.Name, err)
	}
	if !nG.Inf {
		return fmt.Errorf("curve %s: N·G is not the identity", c.Name)
	}
	return nil
}

func (c *CurveParams) String() string {
	return c.Name
}
