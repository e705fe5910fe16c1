// Package elgamal implements EC-ElGamal encryption of text over the curves of
// the ecc package. The text is cut into integer pairs that are masked, point
// by point, with the shared point k·Q; the ciphertext is the ephemeral point
// k·G followed by the masked pairs.
//
// There is no integrity protection: a wrong key or a corrupted ciphertext
// yields wrong text (or ErrMalformedMessage with the framed codec), never a
// reliable authentication failure.
package elgamal

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/vocdoni/ec-elgamal/crypto/arith"
	"github.com/vocdoni/ec-elgamal/crypto/ecc"
	"github.com/vocdoni/ec-elgamal/log"
)

// EphemeralKeyBits is the bit length of the random k drawn per encryption.
const EphemeralKeyBits = 185

// maxEncryptAttempts bounds the number of ephemeral keys tried when the
// masking chord is undefined for a given k.
const maxEncryptAttempts = 8

var (
	// ErrEmptyCiphertext is returned when decrypting a ciphertext without
	// the ephemeral point.
	ErrEmptyCiphertext = errors.New("empty ciphertext")
	// ErrMalformedMessage is returned when decrypted points do not decode.
	ErrMalformedMessage = errors.New("malformed message")
	// ErrInvalidPoint is returned by Validate for points off the curve.
	ErrInvalidPoint = errors.New("invalid point")
	// ErrInvalidText is returned when encoding text that is not valid UTF-8.
	ErrInvalidText = errors.New("text is not valid UTF-8")
)

type options struct {
	rand   io.Reader
	legacy bool
}

// Option configures Encrypt and Decrypt.
type Option func(*options)

// WithRandomness sets the source of the ephemeral key. The default is
// crypto/rand.Reader.
func WithRandomness(r io.Reader) Option {
	return func(o *options) {
		o.rand = r
	}
}

// WithLegacyEncoding selects the unframed message codec (Encode/Decode)
// instead of the length framed one. Both sides must agree on it.
func WithLegacyEncoding() Option {
	return func(o *options) {
		o.legacy = true
	}
}

func newOptions(opts []Option) *options {
	o := &options{rand: rand.Reader}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RandK draws a non-zero ephemeral key of EphemeralKeyBits bits from r.
func RandK(r io.Reader) (*big.Int, error) {
	for {
		k, err := arith.RandomOfBitLength(r, EphemeralKeyBits)
		if err != nil {
			return nil, fmt.Errorf("failed to generate random k: %w", err)
		}
		if k.Sign() != 0 {
			return k, nil
		}
	}
}

// Encrypt encrypts text for the public point q on curve c. A fresh k is
// drawn for every call; if masking fails for that k (a message carrier
// sharing its x with k·Q, or k·Q being the identity) a new one is drawn, up to
// a small number of attempts.
//
// The public point is not validated: an off-curve q still produces a
// ciphertext, which nobody will be able to decrypt.
func Encrypt(text string, q ecc.Point, c *ecc.CurveParams, opts ...Option) (Ciphertext, error) {
	o := newOptions(opts)
	var lastErr error
	for attempt := 0; attempt < maxEncryptAttempts; attempt++ {
		k, err := RandK(o.rand)
		if err != nil {
			return nil, err
		}
		ct, err := EncryptWithK(text, q, c, k, o.legacy)
		if err == nil {
			log.Debugw("text encrypted", "curve", c.Name, "points", len(ct))
			return ct, nil
		}
		if !errors.Is(err, arith.ErrNotInvertible) && !errors.Is(err, ecc.ErrPointAtInfinity) {
			return nil, err
		}
		log.Warnw("ephemeral key rejected, retrying", "curve", c.Name, "attempt", attempt+1, "error", err.Error())
		lastErr = err
	}
	return nil, fmt.Errorf("elgamal encryption failed after %d attempts: %w", maxEncryptAttempts, lastErr)
}

// EncryptWithK encrypts text with the given ephemeral key. legacy selects the
// unframed codec. It returns the ciphertext [k·G, Pm_1 + k·Q, ...].
func EncryptWithK(text string, q ecc.Point, c *ecc.CurveParams, k *big.Int, legacy bool) (Ciphertext, error) {
	var (
		carriers []ecc.Point
		err      error
	)
	if legacy {
		carriers, err = Encode(text, c)
	} else {
		carriers, err = EncodeFramed(text, c)
	}
	if err != nil {
		return nil, err
	}
	kG, err := ecc.ScalarMultiply(k, c.G, c)
	if err != nil {
		return nil, fmt.Errorf("cannot compute k·G: %w", err)
	}
	kQ, err := ecc.ScalarMultiply(k, q, c)
	if err != nil {
		return nil, fmt.Errorf("cannot compute k·Q: %w", err)
	}
	if kQ.Inf {
		return nil, fmt.Errorf("shared point: %w", ecc.ErrPointAtInfinity)
	}
	ct := make(Ciphertext, 0, len(carriers)+1)
	ct = append(ct, kG)
	for i, pm := range carriers {
		masked, err := ecc.Chord(pm, kQ, c)
		if err != nil {
			return nil, fmt.Errorf("cannot mask point %d: %w", i, err)
		}
		ct = append(ct, masked)
	}
	return ct, nil
}

// Decrypt recovers the text of ct with the secret scalar sk: the mask
// sk·(k·G) = k·Q is negated and chord-added to every masked point.
func Decrypt(ct Ciphertext, sk *big.Int, c *ecc.CurveParams, opts ...Option) (string, error) {
	o := newOptions(opts)
	if len(ct) == 0 {
		return "", ErrEmptyCiphertext
	}
	mask, err := ecc.ScalarMultiply(sk, ct[0], c)
	if err != nil {
		return "", fmt.Errorf("cannot compute shared point: %w", err)
	}
	if mask.Inf {
		return "", fmt.Errorf("shared point: %w", ecc.ErrPointAtInfinity)
	}
	negMask := ecc.Neg(mask, c)
	carriers := make([]ecc.Point, 0, len(ct)-1)
	for i, masked := range ct[1:] {
		pm, err := ecc.Chord(masked, negMask, c)
		if err != nil {
			return "", fmt.Errorf("cannot unmask point %d: %w", i, err)
		}
		carriers = append(carriers, pm)
	}
	log.Debugw("ciphertext decrypted", "curve", c.Name, "points", len(ct))
	if o.legacy {
		return Decode(carriers, c)
	}
	return DecodeFramed(carriers, c)
}

// CheckK reports whether ct was produced with the ephemeral key k, that is
// whether ct[0] == k·G. It needs neither key.
func CheckK(ct Ciphertext, k *big.Int, c *ecc.CurveParams) bool {
	if len(ct) == 0 {
		return false
	}
	kG, err := ecc.ScalarMultiply(k, c.G, c)
	if err != nil {
		return false
	}
	return kG.Equal(ct[0])
}
