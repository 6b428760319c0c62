package field

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModInverseSmallPrimeExhaustive(t *testing.T) {
	for _, p := range []int64{2, 3, 5, 7, 13, 101, 257} {
		m := big.NewInt(p)
		for a := int64(1); a < p; a++ {
			inv, err := ModInverse(big.NewInt(a), m)
			require.NoError(t, err, "a=%d p=%d", a, p)

			check := new(big.Int).Mul(big.NewInt(a), inv)
			check.Mod(check, m)
			assert.Equal(t, int64(1), check.Int64(), "a=%d p=%d inv=%s", a, p, inv)
			assert.True(t, inv.Sign() >= 0 && inv.Cmp(m) < 0, "inverse out of range")
		}
	}
}

func TestModInverseMersenne127(t *testing.T) {
	p := Mersenne127()
	for i := 0; i < 200; i++ {
		a, err := rand.Int(rand.Reader, new(big.Int).Sub(p, one))
		require.NoError(t, err)
		a.Add(a, one) // [1, p-1]

		inv, err := ModInverse(a, p)
		require.NoError(t, err)

		check := new(big.Int).Mul(a, inv)
		check.Mod(check, p)
		require.Equal(t, 0, check.Cmp(one), "a=%s inv=%s", a, inv)

		assert.Equal(t, 0, inv.Cmp(new(big.Int).ModInverse(a, p)))
	}
}

func TestModInverseNormalizesNegativeInput(t *testing.T) {
	// -3 = 4 mod 7, and 4 * 2 = 8 = 1 mod 7
	inv, err := ModInverse(big.NewInt(-3), big.NewInt(7))
	require.NoError(t, err)
	assert.Equal(t, int64(2), inv.Int64())

	// -1 is its own inverse
	inv, err = ModInverse(big.NewInt(-1), Mersenne127())
	require.NoError(t, err)
	assert.Equal(t, 0, inv.Cmp(new(big.Int).Sub(Mersenne127(), one)))
}

func TestModInverseTrivialModulus(t *testing.T) {
	inv, err := ModInverse(big.NewInt(12345), big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, 0, inv.Sign())
}

func TestModInverseNotInvertible(t *testing.T) {
	cases := []struct {
		name string
		a, m int64
	}{
		{"zero", 0, 7},
		{"multiple of modulus", 14, 7},
		{"shared factor", 6, 9},
		{"even pair", 2, 4},
		{"zero modulus", 3, 0},
		{"negative modulus", 3, -7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ModInverse(big.NewInt(tc.a), big.NewInt(tc.m))
			assert.ErrorIs(t, err, ErrNotInvertible)
		})
	}
}

func TestModInverseCompositeModulus(t *testing.T) {
	// 7 * 13 = 91 = 1 mod 15
	inv, err := ModInverse(big.NewInt(7), big.NewInt(15))
	require.NoError(t, err)
	assert.Equal(t, int64(13), inv.Int64())
}

func TestModInverseDoesNotMutateArguments(t *testing.T) {
	a := big.NewInt(-10)
	m := big.NewInt(17)
	_, err := ModInverse(a, m)
	require.NoError(t, err)
	assert.Equal(t, int64(-10), a.Int64())
	assert.Equal(t, int64(17), m.Int64())
}

func TestNewRejectsSmallModulus(t *testing.T) {
	for _, p := range []*big.Int{nil, big.NewInt(-5), big.NewInt(0), big.NewInt(1)} {
		_, err := New(p)
		assert.ErrorIs(t, err, ErrInvalidModulus)
	}

	_, err := Parse("not-a-number")
	assert.ErrorIs(t, err, ErrInvalidModulus)
}

func TestDefaultField(t *testing.T) {
	f := Default()
	assert.Equal(t, Mersenne127Decimal, f.Modulus().String())
	assert.True(t, f.IsPrime())
	assert.False(t, f.ConstantTime())

	expected := new(big.Int).Lsh(big.NewInt(1), 127)
	expected.Sub(expected, one)
	assert.Equal(t, 0, f.Modulus().Cmp(expected))
}

func TestArithmeticStaysInRange(t *testing.T) {
	f, err := New(big.NewInt(11))
	require.NoError(t, err)

	assert.Equal(t, int64(8), f.Sub(big.NewInt(3), big.NewInt(6)).Int64())
	assert.Equal(t, int64(10), f.Neg(big.NewInt(1)).Int64())
	assert.Equal(t, int64(0), f.Neg(big.NewInt(0)).Int64())
	assert.Equal(t, int64(4), f.Reduce(big.NewInt(-7)).Int64())
	assert.Equal(t, int64(1), f.Add(big.NewInt(5), big.NewInt(7)).Int64())
	assert.Equal(t, int64(2), f.Mul(big.NewInt(-3), big.NewInt(3)).Int64())
}

func TestConstantTimeInverseAgreesWithEuclid(t *testing.T) {
	euclid := Default()
	ct := Default(WithConstantTime())
	require.True(t, ct.ConstantTime())

	for i := 0; i < 100; i++ {
		a, err := rand.Int(rand.Reader, euclid.Modulus())
		require.NoError(t, err)
		if a.Sign() == 0 {
			continue
		}

		want, err := euclid.Inv(a)
		require.NoError(t, err)
		got, err := ct.Inv(a)
		require.NoError(t, err)
		assert.Equal(t, 0, want.Cmp(got), "a=%s", a)
	}

	_, err := ct.Inv(new(big.Int))
	assert.ErrorIs(t, err, ErrNotInvertible)

	_, err = ct.Inv(Mersenne127())
	assert.ErrorIs(t, err, ErrNotInvertible)
}

func TestConstantTimeInverseCompositeModulus(t *testing.T) {
	f, err := New(big.NewInt(15), WithConstantTime())
	require.NoError(t, err)

	inv, err := f.Inv(big.NewInt(7))
	require.NoError(t, err)
	assert.Equal(t, int64(13), inv.Int64())

	_, err = f.Inv(big.NewInt(10))
	assert.ErrorIs(t, err, ErrNotInvertible)
}
