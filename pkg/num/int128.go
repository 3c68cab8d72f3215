// Package num implements the signed 128-bit integer range shared by the
// parser and the evaluator. Values are carried as *big.Int and range-checked
// at every boundary, so arithmetic never wraps silently.
package num

import (
	"errors"
	"math/big"
)

// Errors returned by Parse. The messages match the detail text reported in
// InvalidNumberFormat diagnostics.
var (
	ErrEmpty        = errors.New("cannot parse integer from empty string")
	ErrInvalidDigit = errors.New("invalid digit found in string")
	ErrPosOverflow  = errors.New("number too large to fit in target type")
	ErrNegOverflow  = errors.New("number too small to fit in target type")
)

var (
	maxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// Max returns 2^127-1.
func Max() *big.Int { return new(big.Int).Set(maxInt128) }

// Min returns -2^127.
func Min() *big.Int { return new(big.Int).Set(minInt128) }

// Fits reports whether x is inside the signed 128-bit range.
func Fits(x *big.Int) bool {
	return x.Cmp(minInt128) >= 0 && x.Cmp(maxInt128) <= 0
}

// Parse parses decimal text with an optional leading sign into a signed
// 128-bit integer.
func Parse(s string) (*big.Int, error) {
	if s == "" {
		return nil, ErrEmpty
	}

	digits := s
	negative := false
	switch s[0] {
	case '-':
		negative = true
		digits = s[1:]
	case '+':
		digits = s[1:]
	}
	if digits == "" {
		return nil, ErrInvalidDigit
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return nil, ErrInvalidDigit
		}
	}

	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, ErrInvalidDigit
	}
	if negative {
		n.Neg(n)
	}

	if !Fits(n) {
		if negative {
			return nil, ErrNegOverflow
		}
		return nil, ErrPosOverflow
	}
	return n, nil
}
