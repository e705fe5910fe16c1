package ecc

import (
	"fmt"
	"math/big"
)

// Enumerate lists g, 2g, 3g, ... by repeated addition until the identity is
// reached or limit points have been produced. When the identity shows up it
// is appended as the last element with Order set to the order of g. This is
// a diagnostic for toy curves; it is hopeless on real ones.
func Enumerate(g Point, limit int, c *CurveParams) ([]Point, error) {
	if limit < 1 {
		return nil, fmt.Errorf("invalid enumeration limit %d", limit)
	}
	if g.Inf {
		inf := Infinity()
		inf.Order = big.NewInt(1)
		return []Point{inf}, nil
	}
	points := []Point{g.Clone()}
	acc := g
	for len(points) < limit {
		next, err := Add(acc, g, c)
		if err != nil {
			return nil, err
		}
		if next.Inf {
			next.Order = big.NewInt(int64(len(points) + 1))
			return append(points, next), nil
		}
		points = append(points, next)
		acc = next
	}
	return points, nil
}

// OrderOf returns the smallest n > 0 with n·g = identity, searching at most
// limit multiples.
func OrderOf(g Point, limit int, c *CurveParams) (*big.Int, error) {
	points, err := Enumerate(g, limit, c)
	if err != nil {
		return nil, err
	}
	last := points[len(points)-1]
	if !last.Inf {
		return nil, fmt.Errorf("%w: %d multiples of %s", ErrOrderNotFound, limit, g)
	}
	return last.Order, nil
}
