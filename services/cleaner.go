package services

import (
	"strconv"
	"strings"
)

// ParsePrice turns marketplace price text into an integer by concatenating
// every decimal digit in order of appearance:
//
//	"¥1,234"            → 1234
//	"お得 ¥2,980(税込)" → 2980
//	"SOLD"              → nil
//
// Separators and decimal points are not interpreted, so "1,234.50" yields
// 123450. A nil result means the text had no digits or the digits overflow
// int64; it never panics.
func ParsePrice(raw string) *int64 {
	var digits strings.Builder
	for _, r := range raw {
		if d, ok := asciiDigit(r); ok {
			digits.WriteByte(d)
		}
	}
	if digits.Len() == 0 {
		return nil
	}

	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// asciiDigit maps ASCII and full-width digits to their ASCII byte.
func asciiDigit(r rune) (byte, bool) {
	switch {
	case r >= '0' && r <= '9':
		return byte(r), true
	case r >= '０' && r <= '９':
		return byte('0' + (r - '０')), true
	}
	return 0, false
}
