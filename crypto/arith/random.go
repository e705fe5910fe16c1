package arith

import (
	"fmt"
	"io"
	"math/big"
	mrand "math/rand"
)

// scaleMargin is the number of extra random bits drawn by RandomInRange
// before scaling down, which bounds its bias by 2^-scaleMargin.
const scaleMargin = 64

// RandomOfBitLength returns a uniformly distributed integer in [0, 2^bits).
// It reads the minimal number of bytes covering the requested width from r,
// masks the excess high bits of the top byte and interprets the buffer as a
// little-endian unsigned integer.
func RandomOfBitLength(r io.Reader, bits int) (*big.Int, error) {
	if bits < 1 {
		return new(big.Int), nil
	}
	nBytes := (bits + 7) / 8
	buf := make([]byte, nBytes)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("cannot read random bytes: %w", err)
	}
	if excess := nBytes*8 - bits; excess > 0 {
		buf[nBytes-1] &= 0xFF >> excess
	}
	// little-endian to big-endian
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return new(big.Int).SetBytes(buf), nil
}

// RandomInRange returns an integer in [lo, hi). If the bounds are given in
// reverse order they are swapped, and lo == hi returns lo. The value is
// produced by drawing a random number of bitlen(hi-lo)+64 bits and scaling it
// proportionally into the range, so it is biased by at most 2^-64; use
// rejection sampling (crypto/rand.Int) where exact uniformity matters.
func RandomInRange(r io.Reader, lo, hi *big.Int) (*big.Int, error) {
	if lo.Cmp(hi) == 0 {
		return new(big.Int).Set(lo), nil
	}
	if lo.Cmp(hi) > 0 {
		lo, hi = hi, lo
	}
	span := new(big.Int).Sub(hi, lo)
	bits := span.BitLen() + scaleMargin
	v, err := RandomOfBitLength(r, bits)
	if err != nil {
		return nil, err
	}
	// lo + v·span / 2^bits
	v.Mul(v, span)
	v.Rsh(v, uint(bits))
	return v.Add(v, lo), nil
}

// seededReader adapts a math/rand generator to io.Reader.
type seededReader struct {
	rnd *mrand.Rand
}

func (s *seededReader) Read(p []byte) (int, error) {
	return s.rnd.Read(p)
}

// NewSeededReader returns a deterministic, NOT cryptographically secure,
// random source seeded with seed. It reproduces the time-seeded generator
// behaviour for tests and for replaying a given encryption.
func NewSeededReader(seed int64) io.Reader {
	return &seededReader{rnd: mrand.New(mrand.NewSource(seed))}
}
