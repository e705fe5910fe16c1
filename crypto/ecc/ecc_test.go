package ecc

import (
	"encoding/json"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/fxamacker/cbor/v2"
	"github.com/vocdoni/ec-elgamal/crypto/arith"
)

// toyCurve is y² = x³ + 2x + 2 over F_17. G = (5, 1) generates the whole
// group, which has prime order 19.
func toyCurve() *CurveParams {
	return &CurveParams{
		Name:    "toy17",
		P:       big.NewInt(17),
		N:       big.NewInt(19),
		A:       big.NewInt(2),
		B:       big.NewInt(2),
		G:       pt(5, 1),
		BitSize: 5,
	}
}

func pt(x, y int64) Point {
	return NewPoint(big.NewInt(x), big.NewInt(y))
}

// multiples of G on the toy curve, index i holds (i+1)·G
var toyMultiples = [][2]int64{
	{5, 1}, {6, 3}, {10, 6}, {3, 1}, {9, 16}, {16, 13}, {0, 6}, {13, 7}, {7, 6},
	{7, 11}, {13, 10}, {0, 11}, {16, 4}, {9, 1}, {3, 16}, {10, 11}, {6, 14}, {5, 16},
}

func TestCurveValidate(t *testing.T) {
	c := qt.New(t)
	curve := toyCurve()
	c.Assert(curve.Validate(), qt.IsNil)
	c.Assert(curve.ByteSize(), qt.Equals, 1)
	// 4·8 + 27·4 = 140 ≡ 4 (mod 17)
	c.Assert(curve.Discriminant().Int64(), qt.Equals, int64(4))

	singular := toyCurve()
	singular.A = big.NewInt(0)
	singular.B = big.NewInt(0)
	c.Assert(singular.Validate(), qt.ErrorIs, ErrSingularCurve)

	badOrder := toyCurve()
	badOrder.N = big.NewInt(18)
	c.Assert(badOrder.Validate(), qt.ErrorMatches, ".*N·G is not the identity")

	composite := toyCurve()
	composite.P = big.NewInt(21)
	c.Assert(composite.Validate(), qt.ErrorMatches, ".*modulus is not prime")
}

func TestIsOnCurve(t *testing.T) {
	c := qt.New(t)
	curve := toyCurve()
	for _, m := range toyMultiples {
		c.Assert(curve.IsOnCurve(pt(m[0], m[1])), qt.IsTrue)
	}
	c.Assert(curve.IsOnCurve(Infinity()), qt.IsTrue)
	c.Assert(curve.IsOnCurve(pt(5, 2)), qt.IsFalse)
	// unreduced coordinates are rejected
	c.Assert(curve.IsOnCurve(pt(5+17, 1)), qt.IsFalse)
	c.Assert(curve.IsOnCurve(Point{}), qt.IsFalse)
}

func TestScalarMultiplyToy(t *testing.T) {
	c := qt.New(t)
	curve := toyCurve()
	for i, m := range toyMultiples {
		r, err := ScalarMultiply(big.NewInt(int64(i+1)), curve.G, curve)
		c.Assert(err, qt.IsNil)
		c.Assert(r.Equal(pt(m[0], m[1])), qt.IsTrue, qt.Commentf("%d·G = %s", i+1, r))
	}
	r, err := ScalarMultiply(big.NewInt(19), curve.G, curve)
	c.Assert(err, qt.IsNil)
	c.Assert(r.Inf, qt.IsTrue)

	r, err = ScalarMultiply(big.NewInt(0), curve.G, curve)
	c.Assert(err, qt.IsNil)
	c.Assert(r.Inf, qt.IsTrue)

	// 20·G wraps around to G
	r, err = ScalarMultiply(big.NewInt(20), curve.G, curve)
	c.Assert(err, qt.IsNil)
	c.Assert(r.Equal(curve.G), qt.IsTrue)

	// -1·G = 18·G
	r, err = ScalarMultiply(big.NewInt(-1), curve.G, curve)
	c.Assert(err, qt.IsNil)
	c.Assert(r.Equal(pt(5, 16)), qt.IsTrue)

	r, err = ScalarMultiply(big.NewInt(7), Infinity(), curve)
	c.Assert(err, qt.IsNil)
	c.Assert(r.Inf, qt.IsTrue)
}

func TestScalarMultiplyDistributes(t *testing.T) {
	c := qt.New(t)
	curve := toyCurve()
	for k1 := int64(0); k1 < 25; k1++ {
		for k2 := int64(0); k2 < 25; k2++ {
			sum, err := ScalarMultiply(big.NewInt(k1+k2), curve.G, curve)
			c.Assert(err, qt.IsNil)
			a, err := ScalarMultiply(big.NewInt(k1), curve.G, curve)
			c.Assert(err, qt.IsNil)
			b, err := ScalarMultiply(big.NewInt(k2), curve.G, curve)
			c.Assert(err, qt.IsNil)
			ab, err := Add(a, b, curve)
			c.Assert(err, qt.IsNil)
			c.Assert(ab.Equal(sum), qt.IsTrue, qt.Commentf("k1=%d k2=%d", k1, k2))
		}
	}
}

func TestAddGroupLaw(t *testing.T) {
	c := qt.New(t)
	curve := toyCurve()
	points := []Point{Infinity()}
	for _, m := range toyMultiples {
		points = append(points, pt(m[0], m[1]))
	}
	for _, p := range points {
		for _, q := range points {
			pq, err := Add(p, q, curve)
			c.Assert(err, qt.IsNil)
			qp, err := Add(q, p, curve)
			c.Assert(err, qt.IsNil)
			c.Assert(pq.Equal(qp), qt.IsTrue)
			c.Assert(curve.IsOnCurve(pq), qt.IsTrue)
			for _, r := range points[:6] {
				left, err := Add(pq, r, curve)
				c.Assert(err, qt.IsNil)
				qr, err := Add(q, r, curve)
				c.Assert(err, qt.IsNil)
				right, err := Add(p, qr, curve)
				c.Assert(err, qt.IsNil)
				c.Assert(left.Equal(right), qt.IsTrue)
			}
		}
		sum, err := Add(p, Neg(p, curve), curve)
		c.Assert(err, qt.IsNil)
		c.Assert(sum.Inf, qt.IsTrue)
	}
}

func TestAddDoesNotMutate(t *testing.T) {
	c := qt.New(t)
	curve := toyCurve()
	p, q := pt(5, 1), pt(6, 3)
	_, err := Add(p, q, curve)
	c.Assert(err, qt.IsNil)
	_, err = ScalarMultiply(big.NewInt(11), p, curve)
	c.Assert(err, qt.IsNil)
	c.Assert(p.Equal(pt(5, 1)), qt.IsTrue)
	c.Assert(q.Equal(pt(6, 3)), qt.IsTrue)

	sum, err := Add(Infinity(), p, curve)
	c.Assert(err, qt.IsNil)
	sum.X.SetInt64(99)
	c.Assert(p.X.Int64(), qt.Equals, int64(5))
}

func TestChordStrict(t *testing.T) {
	c := qt.New(t)
	curve := toyCurve()

	r, err := Chord(pt(5, 1), pt(6, 3), curve)
	c.Assert(err, qt.IsNil)
	c.Assert(r.Equal(pt(10, 6)), qt.IsTrue)

	_, err = Chord(pt(5, 1), pt(5, 1), curve)
	c.Assert(err, qt.ErrorIs, arith.ErrNotInvertible)
	_, err = Chord(pt(5, 1), pt(5, 16), curve)
	c.Assert(err, qt.ErrorIs, arith.ErrNotInvertible)
	_, err = Chord(Infinity(), pt(5, 16), curve)
	c.Assert(err, qt.ErrorIs, ErrPointAtInfinity)

	// off-curve carriers with a shared x have no total sum either
	_, err = Add(pt(4, 2), pt(4, 7), curve)
	c.Assert(err, qt.ErrorIs, arith.ErrNotInvertible)
}

func TestChordUnmasksOffCurvePoints(t *testing.T) {
	c := qt.New(t)
	curve := toyCurve()
	mask := pt(13, 7)
	negMask := Neg(mask, curve)
	for x := int64(0); x < 17; x++ {
		if x == 13 {
			continue
		}
		for y := int64(0); y < 17; y++ {
			carrier := pt(x, y)
			masked, err := Chord(carrier, mask, curve)
			c.Assert(err, qt.IsNil)
			if masked.X.Int64() == 13 {
				continue
			}
			back, err := Chord(masked, negMask, curve)
			c.Assert(err, qt.IsNil)
			c.Assert(back.Equal(carrier), qt.IsTrue, qt.Commentf("carrier %s", carrier))
		}
	}
}

func TestDouble(t *testing.T) {
	c := qt.New(t)
	curve := toyCurve()
	r, err := Double(curve.G, curve)
	c.Assert(err, qt.IsNil)
	c.Assert(r.Equal(pt(6, 3)), qt.IsTrue)

	r, err = Double(pt(3, 0), curve)
	c.Assert(err, qt.IsNil)
	c.Assert(r.Inf, qt.IsTrue)

	r, err = Double(Infinity(), curve)
	c.Assert(err, qt.IsNil)
	c.Assert(r.Inf, qt.IsTrue)
}

func TestNeg(t *testing.T) {
	c := qt.New(t)
	curve := toyCurve()
	c.Assert(Neg(pt(5, 1), curve).Equal(pt(5, 16)), qt.IsTrue)
	c.Assert(Neg(pt(3, 0), curve).Equal(pt(3, 0)), qt.IsTrue)
	c.Assert(Neg(Infinity(), curve).Inf, qt.IsTrue)
}

func TestPointFromX(t *testing.T) {
	c := qt.New(t)
	curve := toyCurve()
	for _, m := range toyMultiples {
		odd := m[1]%2 == 1
		p, err := PointFromX(big.NewInt(m[0]), odd, curve)
		c.Assert(err, qt.IsNil)
		c.Assert(p.Equal(pt(m[0], m[1])), qt.IsTrue, qt.Commentf("x=%d", m[0]))
	}
	// x = 1 gives rhs = 5, a non-residue mod 17
	_, err := PointFromX(big.NewInt(1), false, curve)
	c.Assert(err, qt.ErrorIs, arith.ErrNotQuadraticResidue)
}

func TestEnumerate(t *testing.T) {
	c := qt.New(t)
	curve := toyCurve()
	points, err := Enumerate(curve.G, 100, curve)
	c.Assert(err, qt.IsNil)
	c.Assert(points, qt.HasLen, 19)
	for i, m := range toyMultiples {
		c.Assert(points[i].Equal(pt(m[0], m[1])), qt.IsTrue)
	}
	last := points[18]
	c.Assert(last.Inf, qt.IsTrue)
	c.Assert(last.Order.Int64(), qt.Equals, int64(19))

	order, err := OrderOf(pt(0, 6), 100, curve)
	c.Assert(err, qt.IsNil)
	c.Assert(order.Int64(), qt.Equals, int64(19))

	_, err = OrderOf(curve.G, 10, curve)
	c.Assert(err, qt.ErrorIs, ErrOrderNotFound)

	_, err = Enumerate(curve.G, 0, curve)
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestPointEncoding(t *testing.T) {
	c := qt.New(t)
	p := pt(5, 16)
	data, err := json.Marshal(p)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, `{"x":"5","y":"16","isInf":false,"orderN":"0"}`)

	var back Point
	c.Assert(json.Unmarshal(data, &back), qt.IsNil)
	c.Assert(back.Equal(p), qt.IsTrue)
	c.Assert(back.Order, qt.IsNil)

	inf := Infinity()
	inf.Order = big.NewInt(19)
	data, err = json.Marshal(inf)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, `{"x":"0","y":"0","isInf":true,"orderN":"19"}`)
	c.Assert(json.Unmarshal(data, &back), qt.IsNil)
	c.Assert(back.Inf, qt.IsTrue)
	c.Assert(back.Order.Int64(), qt.Equals, int64(19))

	data, err = cbor.Marshal(p)
	c.Assert(err, qt.IsNil)
	back = Point{}
	c.Assert(cbor.Unmarshal(data, &back), qt.IsNil)
	c.Assert(back.Equal(p), qt.IsTrue)

	c.Assert(json.Unmarshal([]byte(`{"x":"abc","y":"1"}`), &back), qt.Not(qt.IsNil))
}
