// Package keys derives key pairs from secret scalars and converts them to and
// from their text and compressed forms.
package keys

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"slices"
	"unicode"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/vocdoni/ec-elgamal/crypto/arith"
	"github.com/vocdoni/ec-elgamal/crypto/ecc"
)

var (
	// ErrSecretKeyOutOfRange is returned when a secret scalar is not in [1, n).
	ErrSecretKeyOutOfRange = errors.New("secret key out of range")
	// ErrSingularCurve is returned when deriving keys on a singular curve.
	ErrSingularCurve = ecc.ErrSingularCurve
	// ErrInvalidPublicKey is returned when a compressed key cannot be decoded.
	ErrInvalidPublicKey = errors.New("invalid public key")
)

// compressed point prefixes, as in SEC1
const (
	prefixEven byte = 0x02
	prefixOdd  byte = 0x03
)

// KeyPair is a secret scalar and the public point Q = Secret·G.
type KeyPair struct {
	Curve  *ecc.CurveParams
	Secret *big.Int
	Public ecc.Point
}

// DeriveKeyPair checks that 1 <= sk < n and that the curve is not singular,
// then computes Q = sk·G.
func DeriveKeyPair(c *ecc.CurveParams, sk *big.Int) (*KeyPair, error) {
	if sk.Sign() <= 0 || sk.Cmp(c.N) >= 0 {
		return nil, fmt.Errorf("%w: must be in [1, n) for curve %s", ErrSecretKeyOutOfRange, c.Name)
	}
	if c.Discriminant().Sign() == 0 {
		return nil, fmt.Errorf("curve %s: %w", c.Name, ErrSingularCurve)
	}
	q, err := ecc.ScalarMultiply(sk, c.G, c)
	if err != nil {
		return nil, fmt.Errorf("cannot derive public key: %w", err)
	}
	return &KeyPair{
		Curve:  c,
		Secret: new(big.Int).Set(sk),
		Public: q,
	}, nil
}

// GenerateKey draws a uniform secret in [1, n) from r and derives its key
// pair.
func GenerateKey(c *ecc.CurveParams, r io.Reader) (*KeyPair, error) {
	nMinus1 := new(big.Int).Sub(c.N, big.NewInt(1))
	for {
		d, err := arith.RandomOfBitLength(r, nMinus1.BitLen())
		if err != nil {
			return nil, fmt.Errorf("failed to generate private key scalar: %w", err)
		}
		if d.Cmp(nMinus1) < 0 {
			return DeriveKeyPair(c, d.Add(d, big.NewInt(1)))
		}
	}
}

// FromPassphrase reads the passphrase as ASCII, one byte per character with
// '?' standing for anything outside the ASCII range, and uses those bytes as
// a little-endian secret. Long passphrases overflow the curve order and are
// rejected with ErrSecretKeyOutOfRange; FromPassphraseHash has no such
// limit.
func FromPassphrase(c *ecc.CurveParams, passphrase string) (*KeyPair, error) {
	b := asciiBytes(passphrase)
	slices.Reverse(b)
	return DeriveKeyPair(c, new(big.Int).SetBytes(b))
}

func asciiBytes(s string) []byte {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		if r > unicode.MaxASCII {
			r = '?'
		}
		b = append(b, byte(r))
	}
	return b
}

// FromPassphraseHash derives the secret as Keccak256(passphrase) reduced
// into [1, n).
func FromPassphraseHash(c *ecc.CurveParams, passphrase string) (*KeyPair, error) {
	h := new(big.Int).SetBytes(ethcrypto.Keccak256([]byte(passphrase)))
	nMinus1 := new(big.Int).Sub(c.N, big.NewInt(1))
	h.Mod(h, nMinus1)
	return DeriveKeyPair(c, h.Add(h, big.NewInt(1)))
}

// ParseSecretKey parses a hexadecimal secret as written by SecretHex (or
// with a 0x prefix) and derives its key pair.
func ParseSecretKey(c *ecc.CurveParams, s string) (*KeyPair, error) {
	sk, err := arith.ParseHex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid secret key: %w", err)
	}
	return DeriveKeyPair(c, sk)
}

// ParsePublicKey builds a public point from hexadecimal coordinates. Curve
// membership is not checked; callers decide whether to call IsOnCurve.
func ParsePublicKey(xHex, yHex string) (ecc.Point, error) {
	x, err := arith.ParseHex(xHex)
	if err != nil {
		return ecc.Point{}, fmt.Errorf("invalid x coordinate: %w", err)
	}
	y, err := arith.ParseHex(yHex)
	if err != nil {
		return ecc.Point{}, fmt.Errorf("invalid y coordinate: %w", err)
	}
	return ecc.Point{X: x, Y: y}, nil
}

// SecretHex returns the secret in sign-aware upper case hexadecimal.
func (kp *KeyPair) SecretHex() string {
	return arith.FormatHex(kp.Secret)
}

// PublicHex returns the public point coordinates in sign-aware upper case
// hexadecimal.
func (kp *KeyPair) PublicHex() (string, string) {
	return arith.FormatHex(kp.Public.X), arith.FormatHex(kp.Public.Y)
}

// CompressPublic encodes p as a parity prefix byte followed by x in
// big-endian with the curve's field width.
func CompressPublic(p ecc.Point, c *ecc.CurveParams) ([]byte, error) {
	if p.Inf {
		return nil, fmt.Errorf("%w: point at infinity", ErrInvalidPublicKey)
	}
	out := make([]byte, 1+c.ByteSize())
	out[0] = prefixEven
	if p.Y.Bit(0) == 1 {
		out[0] = prefixOdd
	}
	p.X.FillBytes(out[1:])
	return out, nil
}

// DecompressPublic is the inverse of CompressPublic. It recovers y from the
// curve equation, so the result is always on the curve.
func DecompressPublic(b []byte, c *ecc.CurveParams) (ecc.Point, error) {
	if len(b) != 1+c.ByteSize() {
		return ecc.Point{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPublicKey, 1+c.ByteSize(), len(b))
	}
	if b[0] != prefixEven && b[0] != prefixOdd {
		return ecc.Point{}, fmt.Errorf("%w: bad prefix %#x", ErrInvalidPublicKey, b[0])
	}
	x := new(big.Int).SetBytes(b[1:])
	if x.Cmp(c.P) >= 0 {
		return ecc.Point{}, fmt.Errorf("%w: x out of range", ErrInvalidPublicKey)
	}
	p, err := ecc.PointFromX(x, b[0] == prefixOdd, c)
	if err != nil {
		return ecc.Point{}, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	return p, nil
}
