package keys

import (
	"crypto/rand"
	"math/big"
	"strings"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/ec-elgamal/crypto/arith"
	"github.com/vocdoni/ec-elgamal/crypto/ecc"
	"github.com/vocdoni/ec-elgamal/crypto/ecc/curves"
)

func TestDeriveKeyPair(t *testing.T) {
	c := qt.New(t)
	curve := curves.MustNew(curves.CurveTypeSecp256k1)

	kp, err := DeriveKeyPair(curve, big.NewInt(1))
	c.Assert(err, qt.IsNil)
	c.Assert(kp.Public.Equal(curve.G), qt.IsTrue)

	kp, err = DeriveKeyPair(curve, big.NewInt(2))
	c.Assert(err, qt.IsNil)
	g2, err := ecc.Double(curve.G, curve)
	c.Assert(err, qt.IsNil)
	c.Assert(kp.Public.Equal(g2), qt.IsTrue)

	_, err = DeriveKeyPair(curve, big.NewInt(0))
	c.Assert(err, qt.ErrorIs, ErrSecretKeyOutOfRange)
	_, err = DeriveKeyPair(curve, big.NewInt(-5))
	c.Assert(err, qt.ErrorIs, ErrSecretKeyOutOfRange)
	_, err = DeriveKeyPair(curve, curve.N)
	c.Assert(err, qt.ErrorIs, ErrSecretKeyOutOfRange)

	maxKey := new(big.Int).Sub(curve.N, big.NewInt(1))
	kp, err = DeriveKeyPair(curve, maxKey)
	c.Assert(err, qt.IsNil)
	c.Assert(kp.Public.Equal(ecc.Neg(curve.G, curve)), qt.IsTrue)
}

func TestDeriveKeyPairSingular(t *testing.T) {
	c := qt.New(t)
	curve := curves.MustNew(curves.CurveTypeSecp256k1)
	curve.B = big.NewInt(0)
	_, err := DeriveKeyPair(curve, big.NewInt(3))
	c.Assert(err, qt.ErrorIs, ErrSingularCurve)
	// range is checked first
	_, err = DeriveKeyPair(curve, big.NewInt(0))
	c.Assert(err, qt.ErrorIs, ErrSecretKeyOutOfRange)
}

func TestDeriveMatchesGoEthereum(t *testing.T) {
	c := qt.New(t)
	curve := curves.MustNew(curves.CurveTypeSecp256k1)
	priv, err := ethcrypto.GenerateKey()
	c.Assert(err, qt.IsNil)
	kp, err := DeriveKeyPair(curve, priv.D)
	c.Assert(err, qt.IsNil)
	c.Assert(kp.Public.X.Cmp(priv.PublicKey.X), qt.Equals, 0)
	c.Assert(kp.Public.Y.Cmp(priv.PublicKey.Y), qt.Equals, 0)
}

func TestGenerateKey(t *testing.T) {
	c := qt.New(t)
	for _, name := range curves.Supported() {
		curve := curves.MustNew(name)
		kp, err := GenerateKey(curve, rand.Reader)
		c.Assert(err, qt.IsNil)
		c.Assert(kp.Secret.Sign() > 0 && kp.Secret.Cmp(curve.N) < 0, qt.IsTrue)
		c.Assert(curve.IsOnCurve(kp.Public), qt.IsTrue)
	}
	a, err := GenerateKey(curves.MustNew(curves.CurveTypeP256), arith.NewSeededReader(7))
	c.Assert(err, qt.IsNil)
	b, err := GenerateKey(curves.MustNew(curves.CurveTypeP256), arith.NewSeededReader(7))
	c.Assert(err, qt.IsNil)
	c.Assert(a.Secret.Cmp(b.Secret), qt.Equals, 0)
}

func TestFromPassphrase(t *testing.T) {
	c := qt.New(t)
	curve := curves.MustNew(curves.CurveTypeSecp256k1)

	// "ab" little-endian is 0x6261
	kp, err := FromPassphrase(curve, "ab")
	c.Assert(err, qt.IsNil)
	c.Assert(kp.Secret.Int64(), qt.Equals, int64(0x6261))

	_, err = FromPassphrase(curve, "")
	c.Assert(err, qt.ErrorIs, ErrSecretKeyOutOfRange)

	// non-ASCII characters count as '?', one byte each
	for _, pass := range []string{"pässwörd", "p\xffssw\xffrd", "p🔑ssw€rd"} {
		kp, err = FromPassphrase(curve, pass)
		c.Assert(err, qt.IsNil)
		ascii, err := FromPassphrase(curve, "p?ssw?rd")
		c.Assert(err, qt.IsNil)
		c.Assert(kp.Secret.Cmp(ascii.Secret), qt.Equals, 0, qt.Commentf("passphrase %q", pass))
	}

	// 40 bytes do not fit below a 256 bit order
	long := strings.Repeat("~", 40)
	_, err = FromPassphrase(curve, long)
	c.Assert(err, qt.ErrorIs, ErrSecretKeyOutOfRange)

	kp, err = FromPassphraseHash(curve, long)
	c.Assert(err, qt.IsNil)
	again, err := FromPassphraseHash(curve, long)
	c.Assert(err, qt.IsNil)
	c.Assert(kp.Secret.Cmp(again.Secret), qt.Equals, 0)
	other, err := FromPassphraseHash(curve, "correct horse battery staple")
	c.Assert(err, qt.IsNil)
	c.Assert(kp.Secret.Cmp(other.Secret), qt.Not(qt.Equals), 0)
}

func TestHexRoundTrip(t *testing.T) {
	c := qt.New(t)
	curve := curves.MustNew(curves.CurveTypeM383)
	kp, err := GenerateKey(curve, rand.Reader)
	c.Assert(err, qt.IsNil)

	parsed, err := ParseSecretKey(curve, kp.SecretHex())
	c.Assert(err, qt.IsNil)
	c.Assert(parsed.Secret.Cmp(kp.Secret), qt.Equals, 0)
	c.Assert(parsed.Public.Equal(kp.Public), qt.IsTrue)

	xHex, yHex := kp.PublicHex()
	pub, err := ParsePublicKey(xHex, yHex)
	c.Assert(err, qt.IsNil)
	c.Assert(pub.Equal(kp.Public), qt.IsTrue)

	one, err := ParseSecretKey(curve, "0x01")
	c.Assert(err, qt.IsNil)
	c.Assert(one.Public.Equal(curve.G), qt.IsTrue)

	_, err = ParseSecretKey(curve, "xyz")
	c.Assert(err, qt.ErrorMatches, "invalid secret key: .*")
	_, err = ParsePublicKey("1", "q")
	c.Assert(err, qt.ErrorMatches, "invalid y coordinate: .*")
}

func TestCompressPublic(t *testing.T) {
	c := qt.New(t)
	for _, name := range curves.Supported() {
		curve := curves.MustNew(name)
		for i := 0; i < 4; i++ {
			kp, err := GenerateKey(curve, rand.Reader)
			c.Assert(err, qt.IsNil)
			b, err := CompressPublic(kp.Public, curve)
			c.Assert(err, qt.IsNil)
			c.Assert(b, qt.HasLen, 1+curve.ByteSize())
			p, err := DecompressPublic(b, curve)
			c.Assert(err, qt.IsNil, qt.Commentf("curve %s", name))
			c.Assert(p.Equal(kp.Public), qt.IsTrue)
		}
	}

	curve := curves.MustNew(curves.CurveTypeSecp256k1)
	_, err := CompressPublic(ecc.Infinity(), curve)
	c.Assert(err, qt.ErrorIs, ErrInvalidPublicKey)
	_, err = DecompressPublic([]byte{0x02, 0x01}, curve)
	c.Assert(err, qt.ErrorIs, ErrInvalidPublicKey)
	bad := make([]byte, 33)
	bad[0] = 0x04
	_, err = DecompressPublic(bad, curve)
	c.Assert(err, qt.ErrorIs, ErrInvalidPublicKey)

	// compressed generator of secp256k1 matches go-ethereum
	g, err := CompressPublic(curve.G, curve)
	c.Assert(err, qt.IsNil)
	one, err := ethcrypto.ToECDSA(append(make([]byte, 31), 1))
	c.Assert(err, qt.IsNil)
	c.Assert(g, qt.DeepEquals, ethcrypto.CompressPubkey(&one.PublicKey))
}
