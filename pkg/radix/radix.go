package radix

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

const (
	// MinBase is the smallest supported base.
	MinBase = 2

	// MaxBase is the largest supported base. Digits run 0-9, a-z, A-Z.
	MaxBase = 62
)

var (
	// ErrDecode is wrapped by every error this package returns.
	ErrDecode = errors.New("decode error")

	// ErrInvalidBase indicates a base outside [MinBase, MaxBase].
	ErrInvalidBase = fmt.Errorf("%w: unsupported base", ErrDecode)

	// ErrInvalidDigit indicates a character that is not a digit of the base.
	ErrInvalidDigit = fmt.Errorf("%w: invalid digit", ErrDecode)

	// ErrEmptyValue indicates an empty value string.
	ErrEmptyValue = fmt.Errorf("%w: empty value", ErrDecode)
)

// digitValue returns the numeric value of c, or -1. Bases up to 36 read
// letters case-insensitively; above 36 lowercase comes before uppercase.
func digitValue(c byte, base int) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		if base <= 36 {
			return int(c-'A') + 10
		}
		return int(c-'A') + 36
	}
	return -1
}

// Decode returns the non-negative integer that value represents in base.
func Decode(value string, base int) (*big.Int, error) {
	if base < MinBase || base > MaxBase {
		return nil, fmt.Errorf("%w: %d (supported %d-%d)", ErrInvalidBase, base, MinBase, MaxBase)
	}
	if value == "" {
		return nil, ErrEmptyValue
	}

	var x, bv big.Int
	bigBase := big.NewInt(int64(base))

	for i := 0; i < len(value); i++ {
		d := digitValue(value[i], base)
		if d < 0 || d >= base {
			return nil, fmt.Errorf("%w: %q at position %d of %q for base %d", ErrInvalidDigit, value[i], i, value, base)
		}
		bv.SetInt64(int64(d))
		x.Mul(&x, bigBase)
		x.Add(&x, &bv)
	}

	return &x, nil
}

// ParseBase reads a base written in decimal, as found in share records.
func ParseBase(s string) (int, error) {
	base, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidBase, s)
	}
	if base < MinBase || base > MaxBase {
		return 0, fmt.Errorf("%w: %d (supported %d-%d)", ErrInvalidBase, base, MinBase, MaxBase)
	}
	return base, nil
}
