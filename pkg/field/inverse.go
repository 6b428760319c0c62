package field

import (
	"fmt"
	"math/big"
)

// ModInverse computes a^-1 mod m with the iterative Extended Euclidean
// Algorithm. The result lies in [0, m-1]. For m == 1 every residue collapses
// to 0, which is returned as the inverse.
//
// The remainder pair (oldR, r) starts at (a mod m, m) and the Bezout
// coefficient pair (x0, x1) at (0, 1); both follow the same recurrence until
// oldR reaches 1. A zero remainder before that means gcd(a, m) > 1.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if m.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus %s is not positive", ErrNotInvertible, m)
	}
	if m.Cmp(one) == 0 {
		return new(big.Int), nil
	}

	oldR := new(big.Int).Mod(a, m)
	r := new(big.Int).Set(m)
	x0 := new(big.Int)
	x1 := big.NewInt(1)

	q := new(big.Int)
	rem := new(big.Int)
	tmp := new(big.Int)

	for oldR.Cmp(one) > 0 {
		if r.Sign() == 0 {
			break
		}

		q.QuoRem(oldR, r, rem)
		oldR, r, rem = r, rem, oldR

		// x0, x1 = x1 - q*x0, x0
		tmp.Mul(q, x0)
		tmp.Sub(x1, tmp)
		x0, x1, tmp = tmp, x0, x1
	}

	if oldR.Cmp(one) != 0 {
		return nil, fmt.Errorf("%w: gcd(%s, %s) != 1", ErrNotInvertible, new(big.Int).Mod(a, m), m)
	}

	if x1.Sign() < 0 {
		x1.Add(x1, m)
	}

	return x1, nil
}
