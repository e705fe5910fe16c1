package ecc

import (
	"fmt"
	"math/big"
)

// Point is an affine curve point or the identity. When Inf is set X and Y
// are meaningless (zero by convention). Order is only filled in by the
// enumeration helpers and records the order discovered for the point's
// subgroup.
type Point struct {
	X     *big.Int
	Y     *big.Int
	Inf   bool
	Order *big.Int
}

// NewPoint returns the affine point (x, y). The coordinates are copied.
func NewPoint(x, y *big.Int) Point {
	return Point{X: new(big.Int).Set(x), Y: new(big.Int).Set(y)}
}

// Infinity returns the identity element.
func Infinity() Point {
	return Point{X: new(big.Int), Y: new(big.Int), Inf: true}
}

// Clone returns a deep copy of p.
func (p Point) Clone() Point {
	q := Point{Inf: p.Inf, X: new(big.Int), Y: new(big.Int)}
	if p.X != nil {
		q.X.Set(p.X)
	}
	if p.Y != nil {
		q.Y.Set(p.Y)
	}
	if p.Order != nil {
		q.Order = new(big.Int).Set(p.Order)
	}
	return q
}

// Equal reports whether p and q are the same group element. Order is not
// compared.
func (p Point) Equal(q Point) bool {
	if p.Inf || q.Inf {
		return p.Inf == q.Inf
	}
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

func (p Point) String() string {
	if p.Inf {
		return "(inf)"
	}
	return fmt.Sprintf("(%s, %s)", p.X, p.Y)
}
