package arith

import (
	"bytes"
	"crypto/rand"
	"errors"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestModInverse(t *testing.T) {
	c := qt.New(t)

	inv, err := ModInverse(big.NewInt(3), big.NewInt(11))
	c.Assert(err, qt.IsNil)
	c.Assert(inv.Int64(), qt.Equals, int64(4))

	// negative input is reduced first: -3 ≡ 8 (mod 11), 8*7 = 56 ≡ 1
	inv, err = ModInverse(big.NewInt(-3), big.NewInt(11))
	c.Assert(err, qt.IsNil)
	c.Assert(inv.Int64(), qt.Equals, int64(7))

	_, err = ModInverse(big.NewInt(6), big.NewInt(9))
	c.Assert(err, qt.ErrorIs, ErrNotInvertible)
	_, err = ModInverse(big.NewInt(0), big.NewInt(7))
	c.Assert(err, qt.ErrorIs, ErrNotInvertible)
	_, err = ModInverse(big.NewInt(22), big.NewInt(11))
	c.Assert(err, qt.ErrorIs, ErrNotInvertible)
}

func TestModInverseLargePrime(t *testing.T) {
	c := qt.New(t)
	p, _ := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007908834671663", 10)
	for i := 0; i < 20; i++ {
		a, err := rand.Int(rand.Reader, p)
		c.Assert(err, qt.IsNil)
		if a.Sign() == 0 {
			continue
		}
		inv, err := ModInverse(a, p)
		c.Assert(err, qt.IsNil)
		c.Assert(inv.Cmp(new(big.Int).ModInverse(a, p)), qt.Equals, 0)
		prod := new(big.Int).Mul(a, inv)
		c.Assert(prod.Mod(prod, p).Int64(), qt.Equals, int64(1))
	}
}

func TestCoprime(t *testing.T) {
	c := qt.New(t)
	c.Assert(Coprime(big.NewInt(8), big.NewInt(15)), qt.IsTrue)
	c.Assert(Coprime(big.NewInt(-8), big.NewInt(12)), qt.IsFalse)
}

func TestBigToFF(t *testing.T) {
	c := qt.New(t)
	field := big.NewInt(13)
	c.Assert(BigToFF(field, big.NewInt(5)).Int64(), qt.Equals, int64(5))
	c.Assert(BigToFF(field, big.NewInt(13)).Int64(), qt.Equals, int64(0))
	c.Assert(BigToFF(field, big.NewInt(27)).Int64(), qt.Equals, int64(1))
	c.Assert(BigToFF(field, big.NewInt(-1)).Int64(), qt.Equals, int64(12))
}

func TestModSqrt(t *testing.T) {
	c := qt.New(t)

	params, err := PrecomputeSqrtParams(big.NewInt(7))
	c.Assert(err, qt.IsNil)
	r, err := ModSqrt(big.NewInt(4), params)
	c.Assert(err, qt.IsNil)
	c.Assert(r.Int64() == 2 || r.Int64() == 5, qt.IsTrue)

	_, err = ModSqrt(big.NewInt(3), params)
	c.Assert(err, qt.ErrorIs, ErrNotQuadraticResidue)

	r, err = ModSqrt(big.NewInt(14), params)
	c.Assert(err, qt.IsNil)
	c.Assert(r.Sign(), qt.Equals, 0)
}

func TestModSqrtTonelliShanksLoop(t *testing.T) {
	c := qt.New(t)
	// p-1 = 2^4·Q for 17 and 2^6·Q for 193, so the inner loop runs
	for _, p := range []int64{17, 193, 7681} {
		pb := big.NewInt(p)
		params, err := SqrtParamsFor(pb)
		c.Assert(err, qt.IsNil)
		for x := int64(1); x < p && x < 300; x++ {
			sq := big.NewInt(x * x % p)
			r, err := ModSqrt(sq, params)
			c.Assert(err, qt.IsNil)
			check := new(big.Int).Mul(r, r)
			c.Assert(check.Mod(check, pb).Cmp(sq), qt.Equals, 0, qt.Commentf("p=%d x=%d", p, x))
		}
	}
}

func TestModSqrtSecp256k1(t *testing.T) {
	c := qt.New(t)
	p, _ := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007908834671663", 10)
	params, err := SqrtParamsFor(p)
	c.Assert(err, qt.IsNil)
	// memoized per modulus
	again, err := SqrtParamsFor(new(big.Int).Set(p))
	c.Assert(err, qt.IsNil)
	c.Assert(again == params, qt.IsTrue)

	x, err := rand.Int(rand.Reader, p)
	c.Assert(err, qt.IsNil)
	sq := new(big.Int).Mul(x, x)
	sq.Mod(sq, p)
	r, err := ModSqrt(sq, params)
	c.Assert(err, qt.IsNil)
	neg := new(big.Int).Sub(p, r)
	c.Assert(r.Cmp(x) == 0 || neg.Cmp(x) == 0, qt.IsTrue)
}

func TestPrecomputeSqrtParamsRejectsEven(t *testing.T) {
	c := qt.New(t)
	_, err := PrecomputeSqrtParams(big.NewInt(16))
	c.Assert(err, qt.Not(qt.IsNil))
	_, err = ModSqrt(big.NewInt(1), nil)
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestIsProbablePrime(t *testing.T) {
	c := qt.New(t)
	c.Assert(IsProbablePrime(big.NewInt(561), 20), qt.IsFalse)
	c.Assert(IsProbablePrime(big.NewInt(104729), 20), qt.IsTrue)

	for _, p := range []int64{2, 3, 5, 7, 13, 7919} {
		c.Assert(IsProbablePrime(big.NewInt(p), 10), qt.IsTrue, qt.Commentf("%d", p))
	}
	for _, n := range []int64{-7, 0, 1, 4, 9, 1105, 1729, 2465, 7917} {
		c.Assert(IsProbablePrime(big.NewInt(n), 10), qt.IsFalse, qt.Commentf("%d", n))
	}

	m383, _ := new(big.Int).SetString("19701003098197239606139520050071806902539869635232723333974146702122860885748605305707133127442457820403313995153221", 10)
	c.Assert(IsProbablePrime(m383, 20), qt.IsTrue)
	c.Assert(IsProbablePrime(new(big.Int).Add(m383, two), 20), qt.IsFalse)
}

func TestIsProbablePrimeReaderError(t *testing.T) {
	c := qt.New(t)
	_, err := IsProbablePrimeWithReader(bytes.NewReader(nil), big.NewInt(104729), 5)
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestRandomOfBitLength(t *testing.T) {
	c := qt.New(t)
	for _, bits := range []int{1, 7, 8, 9, 185, 256} {
		limit := new(big.Int).Lsh(one, uint(bits))
		for i := 0; i < 50; i++ {
			v, err := RandomOfBitLength(rand.Reader, bits)
			c.Assert(err, qt.IsNil)
			c.Assert(v.Sign() >= 0, qt.IsTrue)
			c.Assert(v.Cmp(limit) < 0, qt.IsTrue, qt.Commentf("bits=%d", bits))
		}
	}
	v, err := RandomOfBitLength(rand.Reader, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(v.Sign(), qt.Equals, 0)

	// little-endian interpretation with the top byte masked
	v, err = RandomOfBitLength(bytes.NewReader([]byte{0x01, 0xff}), 12)
	c.Assert(err, qt.IsNil)
	c.Assert(v.Int64(), qt.Equals, int64(0x0f01))

	_, err = RandomOfBitLength(bytes.NewReader([]byte{0x01}), 16)
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestRandomInRange(t *testing.T) {
	c := qt.New(t)
	lo, hi := big.NewInt(100), big.NewInt(110)
	seen := map[int64]bool{}
	for i := 0; i < 500; i++ {
		v, err := RandomInRange(rand.Reader, lo, hi)
		c.Assert(err, qt.IsNil)
		c.Assert(v.Cmp(lo) >= 0 && v.Cmp(hi) < 0, qt.IsTrue)
		seen[v.Int64()] = true
	}
	c.Assert(len(seen), qt.Equals, 10)

	// reversed bounds are swapped
	v, err := RandomInRange(rand.Reader, hi, lo)
	c.Assert(err, qt.IsNil)
	c.Assert(v.Cmp(lo) >= 0 && v.Cmp(hi) < 0, qt.IsTrue)

	v, err = RandomInRange(rand.Reader, lo, lo)
	c.Assert(err, qt.IsNil)
	c.Assert(v.Cmp(lo), qt.Equals, 0)
}

func TestSeededReaderIsDeterministic(t *testing.T) {
	c := qt.New(t)
	a, err := RandomOfBitLength(NewSeededReader(42), 185)
	c.Assert(err, qt.IsNil)
	b, err := RandomOfBitLength(NewSeededReader(42), 185)
	c.Assert(err, qt.IsNil)
	c.Assert(a.Cmp(b), qt.Equals, 0)
	d, err := RandomOfBitLength(NewSeededReader(43), 185)
	c.Assert(err, qt.IsNil)
	c.Assert(a.Cmp(d), qt.Not(qt.Equals), 0)
}

func TestFormatParse(t *testing.T) {
	c := qt.New(t)
	tests := []struct {
		n      int64
		binary string
		hex    string
		octal  string
	}{
		{0, "0", "0", "0"},
		{1, "01", "1", "01"},
		{5, "0101", "5", "05"},
		{8, "01000", "08", "010"},
		{255, "011111111", "0FF", "0377"},
		{-1, "1", "F", "7"},
		{-8, "1000", "8", "70"},
		{-9, "10111", "F7", "67"},
	}
	for _, tc := range tests {
		n := big.NewInt(tc.n)
		c.Assert(FormatBinary(n), qt.Equals, tc.binary, qt.Commentf("%d", tc.n))
		c.Assert(FormatHex(n), qt.Equals, tc.hex, qt.Commentf("%d", tc.n))
		c.Assert(FormatOctal(n), qt.Equals, tc.octal, qt.Commentf("%d", tc.n))

		h, err := ParseHex(tc.hex)
		c.Assert(err, qt.IsNil)
		c.Assert(h.Int64(), qt.Equals, tc.n)
		o, err := ParseOctal(tc.octal)
		c.Assert(err, qt.IsNil)
		c.Assert(o.Int64(), qt.Equals, tc.n)
	}

	b, err := ParseBinary("0101")
	c.Assert(err, qt.IsNil)
	c.Assert(b.Int64(), qt.Equals, int64(5))
	_, err = ParseBinary("012")
	c.Assert(err, qt.Not(qt.IsNil))

	h, err := ParseHex("0xFF")
	c.Assert(err, qt.IsNil)
	c.Assert(h.Int64(), qt.Equals, int64(255))
	_, err = ParseHex("0x")
	c.Assert(err, qt.Not(qt.IsNil))
	_, err = ParseHex("zz")
	c.Assert(err, qt.Not(qt.IsNil))
	_, err = ParseHex("")
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestFormatHexRoundTripLarge(t *testing.T) {
	c := qt.New(t)
	for i := 0; i < 50; i++ {
		v, err := RandomOfBitLength(rand.Reader, 521)
		c.Assert(err, qt.IsNil)
		if i%2 == 1 {
			v.Neg(v)
		}
		parsed, err := ParseHex(FormatHex(v))
		c.Assert(err, qt.IsNil)
		c.Assert(parsed.Cmp(v), qt.Equals, 0)
	}
	c.Assert(errors.Is(ErrNotInvertible, ErrNotQuadraticResidue), qt.IsFalse)
}
