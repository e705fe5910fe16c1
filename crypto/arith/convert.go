package arith

import (
	"fmt"
	"math/big"
	"strings"
)

// FormatBinary returns the base 2 representation of n. Positive values get a
// leading '0' so the string can't be mistaken for a two's complement negative
// number; negative values are written in minimal two's complement.
func FormatBinary(n *big.Int) string {
	return formatSigned(n, 1, true)
}

// FormatHex returns the upper case base 16 representation of n. Positive
// values whose top digit is 8 or greater get a leading '0'; negative values
// are written in minimal two's complement (-1 is "F").
func FormatHex(n *big.Int) string {
	return strings.ToUpper(formatSigned(n, 4, false))
}

// FormatOctal returns the base 8 representation of n with a leading '0' for
// positive values and minimal two's complement for negative ones.
func FormatOctal(n *big.Int) string {
	return formatSigned(n, 3, true)
}

// formatSigned writes n in base 2^w. If alwaysPad is set, positive numbers
// always get a leading zero digit, otherwise only when the top digit has its
// high bit set.
func formatSigned(n *big.Int, w uint, alwaysPad bool) string {
	radix := 1 << w
	switch n.Sign() {
	case 0:
		return "0"
	case 1:
		s := n.Text(radix)
		if alwaysPad || digitValue(s[0]) >= 1<<(w-1) {
			return "0" + s
		}
		return s
	}
	// smallest k with n >= -2^(w·k-1)
	m := new(big.Int).Neg(n)
	m.Sub(m, one)
	k := m.BitLen()/int(w) + 1
	v := new(big.Int).Lsh(one, w*uint(k))
	v.Add(v, n)
	s := v.Text(radix)
	if len(s) < k {
		s = strings.Repeat("0", k-len(s)) + s
	}
	return s
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// ParseBinary parses an unsigned base 2 string.
func ParseBinary(s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("empty binary string")
	}
	v := new(big.Int)
	for i := 0; i < len(s); i++ {
		v.Lsh(v, 1)
		switch s[i] {
		case '1':
			v.SetBit(v, 0, 1)
		case '0':
		default:
			return nil, fmt.Errorf("invalid binary digit %q", s[i])
		}
	}
	return v, nil
}

// ParseHex is the inverse of FormatHex: a top digit of 8 or greater marks a
// two's complement negative number. Strings with a 0x prefix are parsed as
// plain unsigned hexadecimal.
func ParseHex(s string) (*big.Int, error) {
	if rest, ok := cutHexPrefix(s); ok {
		v, ok := new(big.Int).SetString(rest, 16)
		if !ok || rest == "" {
			return nil, fmt.Errorf("invalid hex string %q", s)
		}
		return v, nil
	}
	return parseSigned(s, 4)
}

// ParseOctal is the inverse of FormatOctal.
func ParseOctal(s string) (*big.Int, error) {
	return parseSigned(s, 3)
}

func cutHexPrefix(s string) (string, bool) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:], true
	}
	return s, false
}

func parseSigned(s string, w uint) (*big.Int, error) {
	radix := 1 << w
	if s == "" {
		return nil, fmt.Errorf("empty base %d string", radix)
	}
	v, ok := new(big.Int).SetString(s, radix)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid base %d string %q", radix, s)
	}
	if digitValue(s[0]) >= 1<<(w-1) {
		v.Sub(v, new(big.Int).Lsh(one, w*uint(len(s))))
	}
	return v, nil
}
