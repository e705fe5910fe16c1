package elgamal

import (
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/vocdoni/ec-elgamal/crypto/base65536"
	"github.com/vocdoni/ec-elgamal/crypto/ecc"
	"golang.org/x/text/encoding/unicode"
)

// Filler is the value appended when a message yields an odd number of
// integers, so that they can be paired into points. It is a space in UTF-16.
const Filler = 32

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// ChunkLength is the number of UTF-16 code units packed into one integer on
// curve c: one digit less than the modulus, so every chunk is below p.
func ChunkLength(c *ecc.CurveParams) int {
	return base65536.Len(c.P) - 1
}

// Encode turns text into message carriers. The text is written as UTF-16LE,
// cut into chunks of ChunkLength code units, each chunk is folded into a base
// 65536 integer and the integers are paired into points, padding with Filler
// when their count is odd. The points are not on the curve.
//
// Text that is not valid UTF-8 is rejected with ErrInvalidText.
//
// Decode(Encode(text)) returns text plus a trailing space when the chunk count
// is odd, and drops leading NUL characters of a chunk. EncodeFramed has
// neither limitation.
func Encode(text string, c *ecc.CurveParams) ([]ecc.Point, error) {
	size, err := chunkLength(c)
	if err != nil {
		return nil, err
	}
	units, err := textToUnits(text)
	if err != nil {
		return nil, err
	}
	return pair(chunks(units, size)), nil
}

// Decode is the inverse of Encode: the digits of every x and y, in point
// order, are read back as UTF-16LE text.
func Decode(points []ecc.Point, c *ecc.CurveParams) (string, error) {
	values, err := unpair(points)
	if err != nil {
		return "", err
	}
	var units []uint16
	for _, v := range values {
		units = append(units, base65536.ToDigits(v)...)
	}
	return unitsToText(units)
}

// EncodeFramed works like Encode but the first integer carries the number of
// UTF-16 code units of the text. DecodeFramed uses it to restore every chunk
// at its exact width and to discard the filler.
func EncodeFramed(text string, c *ecc.CurveParams) ([]ecc.Point, error) {
	size, err := chunkLength(c)
	if err != nil {
		return nil, err
	}
	units, err := textToUnits(text)
	if err != nil {
		return nil, err
	}
	values := append([]*big.Int{big.NewInt(int64(len(units)))}, chunks(units, size)...)
	return pair(values), nil
}

// DecodeFramed is the inverse of EncodeFramed. It returns ErrMalformedMessage
// when the header does not match the number of chunks, which is what a wrong
// key usually produces.
func DecodeFramed(points []ecc.Point, c *ecc.CurveParams) (string, error) {
	values, err := unpair(points)
	if err != nil {
		return "", err
	}
	if len(values) == 0 {
		return "", fmt.Errorf("%w: missing length header", ErrMalformedMessage)
	}
	chunkLen, err := chunkLength(c)
	if err != nil {
		return "", err
	}
	body := values[1:]
	header := values[0]
	if header.Sign() < 0 || !header.IsInt64() || header.Int64() > int64(len(body)*chunkLen) {
		return "", fmt.Errorf("%w: length header %s exceeds payload", ErrMalformedMessage, header)
	}
	total := int(header.Int64())
	nChunks := (total + chunkLen - 1) / chunkLen
	if extra := len(body) - nChunks; extra > 1 {
		return "", fmt.Errorf("%w: %d chunks for %d code units", ErrMalformedMessage, len(body), total)
	}
	units := make([]uint16, 0, total)
	for i := 0; i < nChunks; i++ {
		width := min(chunkLen, total-i*chunkLen)
		digits, err := base65536.ToDigitsWidth(body[i], width)
		if err != nil {
			return "", fmt.Errorf("%w: chunk %d: %w", ErrMalformedMessage, i, err)
		}
		units = append(units, digits...)
	}
	return unitsToText(units)
}

func chunkLength(c *ecc.CurveParams) (int, error) {
	n := ChunkLength(c)
	if n < 1 {
		return 0, fmt.Errorf("modulus of curve %s is too small to carry text", c.Name)
	}
	return n, nil
}

func textToUnits(text string) ([]uint16, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidText
	}
	b, err := utf16le.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("cannot encode text: %w", err)
	}
	return base65536.PackBytes(b), nil
}

func unitsToText(units []uint16) (string, error) {
	b, err := utf16le.NewDecoder().Bytes(base65536.UnpackDigits(units))
	if err != nil {
		return "", fmt.Errorf("cannot decode text: %w", err)
	}
	return string(b), nil
}

// chunks folds consecutive groups of size code units into integers.
func chunks(units []uint16, size int) []*big.Int {
	values := make([]*big.Int, 0, (len(units)+size-1)/size)
	for i := 0; i < len(units); i += size {
		values = append(values, base65536.FromDigits(units[i:min(i+size, len(units))]))
	}
	return values
}

// pair groups values two by two into points, appending Filler if needed.
func pair(values []*big.Int) []ecc.Point {
	if len(values)%2 == 1 {
		values = append(values, big.NewInt(Filler))
	}
	points := make([]ecc.Point, 0, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		points = append(points, ecc.Point{X: values[i], Y: values[i+1]})
	}
	return points
}

func unpair(points []ecc.Point) ([]*big.Int, error) {
	values := make([]*big.Int, 0, 2*len(points))
	for i, p := range points {
		if p.Inf {
			return nil, fmt.Errorf("%w: point %d is the identity", ErrMalformedMessage, i)
		}
		values = append(values, p.X, p.Y)
	}
	return values, nil
}
