// Package base65536 converts between non-negative big integers, big-endian
// sequences of 16-bit digits and byte strings. It is the bridge the message
// codec uses to fold text into integers smaller than a curve modulus.
package base65536

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
)

// Base is the radix of a digit.
const Base = 1 << 16

// lengthDigits is the number of leading digits used by PackBytesWithLength
// to carry the payload length.
const lengthDigits = 2

// ErrShortInput is returned when a digit sequence is too short to hold the
// data its header announces.
var ErrShortInput = errors.New("digit sequence too short")

// ToDigits returns the big-endian base 65536 digits of n, without leading
// zeros. Zero has no digits. The sign of n is ignored.
func ToDigits(n *big.Int) []uint16 {
	b := n.Bytes()
	if len(b)%2 == 1 {
		b = append([]byte{0}, b...)
	}
	digits := make([]uint16, len(b)/2)
	for i := range digits {
		digits[i] = binary.BigEndian.Uint16(b[2*i:])
	}
	return digits
}

// ToDigitsWidth is ToDigits left-padded with zero digits to exactly width
// digits. It fails if n does not fit.
func ToDigitsWidth(n *big.Int, width int) ([]uint16, error) {
	digits := ToDigits(n)
	if len(digits) > width {
		return nil, fmt.Errorf("value needs %d digits, width is %d", len(digits), width)
	}
	out := make([]uint16, width)
	copy(out[width-len(digits):], digits)
	return out, nil
}

// FromDigits folds big-endian base 65536 digits into an integer. An empty
// sequence is zero.
func FromDigits(digits []uint16) *big.Int {
	b := make([]byte, 2*len(digits))
	for i, d := range digits {
		binary.BigEndian.PutUint16(b[2*i:], d)
	}
	return new(big.Int).SetBytes(b)
}

// Len returns the number of base 65536 digits of n.
func Len(n *big.Int) int {
	return (n.BitLen() + 15) / 16
}

// PackBytes packs b two bytes per digit, low byte first. An odd trailing byte
// is padded with a zero high byte, so the original length is lost; use
// PackBytesWithLength when it matters.
func PackBytes(b []byte) []uint16 {
	digits := make([]uint16, (len(b)+1)/2)
	for i := range digits {
		lo := uint16(b[2*i])
		var hi uint16
		if 2*i+1 < len(b) {
			hi = uint16(b[2*i+1])
		}
		digits[i] = lo | hi<<8
	}
	return digits
}

// UnpackDigits is the inverse of PackBytes and always returns 2·len(digits)
// bytes.
func UnpackDigits(digits []uint16) []byte {
	b := make([]byte, 2*len(digits))
	for i, d := range digits {
		binary.LittleEndian.PutUint16(b[2*i:], d)
	}
	return b
}

// PackBytesWithLength packs b prefixed with its length as a 32-bit
// big-endian value split over two digits.
func PackBytesWithLength(b []byte) []uint16 {
	n := uint32(len(b))
	out := make([]uint16, 0, lengthDigits+(len(b)+1)/2)
	out = append(out, uint16(n>>16), uint16(n))
	return append(out, PackBytes(b)...)
}

// UnpackDigitsWithLength is the inverse of PackBytesWithLength. Digits beyond
// the announced length are ignored.
func UnpackDigitsWithLength(digits []uint16) ([]byte, error) {
	if len(digits) < lengthDigits {
		return nil, ErrShortInput
	}
	n := int(uint32(digits[0])<<16 | uint32(digits[1]))
	body := digits[lengthDigits:]
	if 2*len(body) < n {
		return nil, fmt.Errorf("%w: header announces %d bytes, got %d", ErrShortInput, n, 2*len(body))
	}
	return UnpackDigits(body)[:n], nil
}
