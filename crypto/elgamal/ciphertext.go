package elgamal

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vocdoni/arbo"
	"github.com/vocdoni/ec-elgamal/crypto/ecc"
)

// sizes in bytes of the binary form
const (
	sizeCount = 4
	sizeFlag  = 1
)

// point flags of the binary form
const (
	flagAffine   byte = 0
	flagInfinity byte = 1
)

// Ciphertext is the ephemeral point k·G followed by the masked message
// points. The order of the points is significant.
type Ciphertext []ecc.Point

// Ephemeral returns the first point of the ciphertext.
func (z Ciphertext) Ephemeral() (ecc.Point, error) {
	if len(z) == 0 {
		return ecc.Point{}, ErrEmptyCiphertext
	}
	return z[0], nil
}

// Validate checks what can be checked without the secret key: the
// ciphertext has an ephemeral point, it lies on curve c and it is not the
// identity. Masked points are carriers and are only required to have
// coordinates reduced modulo p.
func (z Ciphertext) Validate(c *ecc.CurveParams) error {
	if len(z) == 0 {
		return ErrEmptyCiphertext
	}
	if z[0].Inf || !c.IsOnCurve(z[0]) {
		return fmt.Errorf("%w: ephemeral point %s is not on curve %s", ErrInvalidPoint, z[0], c.Name)
	}
	for i, p := range z[1:] {
		if p.Inf {
			return fmt.Errorf("%w: masked point %d is the identity", ErrInvalidPoint, i)
		}
		if p.X.Sign() < 0 || p.X.Cmp(c.P) >= 0 || p.Y.Sign() < 0 || p.Y.Cmp(c.P) >= 0 {
			return fmt.Errorf("%w: masked point %d is not reduced", ErrInvalidPoint, i)
		}
	}
	return nil
}

// Serialize returns the binary form of z for curve c: a 4 byte big-endian
// point count, then per point a flag byte (1 for the identity) and X, Y as
// little-endian integers of the curve's field width.
func (z Ciphertext) Serialize(c *ecc.CurveParams) []byte {
	size := c.ByteSize()
	var buf bytes.Buffer
	buf.Grow(sizeCount + len(z)*(sizeFlag+2*size))
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(z)))
	for _, p := range z {
		if p.Inf {
			buf.WriteByte(flagInfinity)
			buf.Write(make([]byte, 2*size))
			continue
		}
		buf.WriteByte(flagAffine)
		buf.Write(arbo.BigIntToBytes(size, p.X))
		buf.Write(arbo.BigIntToBytes(size, p.Y))
	}
	return buf.Bytes()
}

// Deserialize reconstructs a ciphertext from the output of Serialize. The
// points are not validated.
func Deserialize(c *ecc.CurveParams, data []byte) (Ciphertext, error) {
	if len(data) < sizeCount {
		return nil, fmt.Errorf("invalid input length: got %d bytes, expected at least %d bytes", len(data), sizeCount)
	}
	size := c.ByteSize()
	pointSize := sizeFlag + 2*size
	n := int(binary.BigEndian.Uint32(data))
	body := data[sizeCount:]
	if len(body) != n*pointSize {
		return nil, fmt.Errorf("invalid input length: got %d bytes, expected %d bytes", len(data), sizeCount+n*pointSize)
	}
	z := make(Ciphertext, n)
	for i := range z {
		rec := body[i*pointSize : (i+1)*pointSize]
		switch rec[0] {
		case flagInfinity:
			z[i] = ecc.Infinity()
		case flagAffine:
			z[i] = ecc.Point{
				X: arbo.BytesToBigInt(rec[sizeFlag : sizeFlag+size]),
				Y: arbo.BytesToBigInt(rec[sizeFlag+size:]),
			}
		default:
			return nil, fmt.Errorf("invalid flag %d for point %d", rec[0], i)
		}
	}
	return z, nil
}

// Marshal converts the ciphertext to its JSON form.
func (z Ciphertext) Marshal() ([]byte, error) {
	return json.Marshal(z)
}

// Unmarshal populates the ciphertext from its JSON form.
func (z *Ciphertext) Unmarshal(data []byte) error {
	return json.Unmarshal(data, z)
}

// String returns a string representation of the Ciphertext.
func (z Ciphertext) String() string {
	parts := make([]string, len(z))
	for i, p := range z {
		parts[i] = p.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
