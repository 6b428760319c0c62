package shamir

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/Beastly713/sssolve/pkg/field"
)

var (
	// ErrInsufficientShares is returned when fewer shares than the threshold are available.
	ErrInsufficientShares = errors.New("not enough shares to reconstruct the secret")

	// ErrInvalidThreshold is returned for a threshold below 1.
	ErrInvalidThreshold = errors.New("threshold must be at least 1")
)

// Share is a point (x, y) on the secret polynomial. Shares are immutable: the
// constructor and accessors copy.
type Share struct {
	x *big.Int
	y *big.Int
}

// NewShare builds a share from its coordinates.
func NewShare(x, y *big.Int) Share {
	return Share{
		x: new(big.Int).Set(x),
		y: new(big.Int).Set(y),
	}
}

// X returns the public index of the share.
func (s Share) X() *big.Int {
	return new(big.Int).Set(s.x)
}

// Y returns the polynomial value at X.
func (s Share) Y() *big.Int {
	return new(big.Int).Set(s.y)
}

func (s Share) String() string {
	return fmt.Sprintf("(%s, %s)", s.x, s.y)
}

// Reconstruct recovers f(0) from the first k shares using Lagrange
// interpolation over f. The result lies in [0, p-1].
func Reconstruct(shares []Share, k int, f *field.Field) (*big.Int, error) {
	return Interpolate(shares, k, new(big.Int), f)
}

// Interpolate evaluates at x the unique degree k-1 polynomial through the
// first k shares, modulo the field prime.
//
// For each share i:
//
//	num_i  = prod_{j != i} (x - x_j)
//	den_i  = prod_{j != i} (x_i - x_j)
//	result += y_i * num_i * den_i^-1
//
// Two shares with the same x (mod p) make a denominator vanish, which is
// reported as field.ErrNotInvertible.
func Interpolate(shares []Share, k int, x *big.Int, f *field.Field) (*big.Int, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidThreshold, k)
	}
	if len(shares) < k {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientShares, k, len(shares))
	}

	points := shares[:k]
	result := new(big.Int)

	for i, si := range points {
		num := big.NewInt(1)
		den := big.NewInt(1)

		for j, sj := range points {
			if i == j {
				continue
			}
			num = f.Mul(num, f.Sub(x, sj.x))
			den = f.Mul(den, f.Sub(si.x, sj.x))
		}

		inv, err := f.Inv(den)
		if err != nil {
			return nil, fmt.Errorf("share %d at x=%s: %w", i, si.x, err)
		}

		term := f.Mul(f.Mul(si.y, num), inv)
		result = f.Add(result, term)
	}

	return result, nil
}
