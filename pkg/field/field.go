package field

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
)

// Mersenne127Decimal is 2^127 - 1 written in base 10.
const Mersenne127Decimal = "170141183460469231731687303715884105727"

var (
	// ErrNotInvertible is returned when an element shares a factor with the modulus.
	ErrNotInvertible = errors.New("element is not invertible")

	// ErrInvalidModulus is returned for moduli smaller than 2.
	ErrInvalidModulus = errors.New("invalid field modulus")
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// Mersenne127 returns a fresh copy of 2^127 - 1.
func Mersenne127() *big.Int {
	p, _ := new(big.Int).SetString(Mersenne127Decimal, 10)
	return p
}

// Field performs arithmetic modulo p. Every method returns a newly allocated
// value in [0, p-1] and never mutates its arguments, so a Field may be shared
// between goroutines.
type Field struct {
	p            *big.Int
	constantTime bool
	ctModulus    *saferith.Modulus
}

// Option configures a Field.
type Option func(*Field)

// WithConstantTime makes Inv use saferith's constant-time inversion instead of
// the Extended Euclidean Algorithm.
func WithConstantTime() Option {
	return func(f *Field) {
		f.constantTime = true
	}
}

// New returns the field of integers modulo p.
func New(p *big.Int, opts ...Option) (*Field, error) {
	if p == nil || p.Cmp(two) < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModulus, p)
	}

	f := &Field{p: new(big.Int).Set(p)}
	for _, opt := range opts {
		opt(f)
	}

	if f.constantTime {
		f.ctModulus = saferith.ModulusFromBytes(f.p.Bytes())
	}

	return f, nil
}

// Parse builds a field from a decimal modulus.
func Parse(decimal string, opts ...Option) (*Field, error) {
	p, ok := new(big.Int).SetString(decimal, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a decimal integer", ErrInvalidModulus, decimal)
	}
	return New(p, opts...)
}

// Default returns GF(2^127 - 1).
func Default(opts ...Option) *Field {
	f, err := New(Mersenne127(), opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Modulus returns a copy of p.
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.p)
}

// ConstantTime reports whether inversions go through saferith.
func (f *Field) ConstantTime() bool {
	return f.constantTime
}

// IsPrime runs a probabilistic primality test on the modulus.
func (f *Field) IsPrime() bool {
	return f.p.ProbablyPrime(20)
}

func (f *Field) String() string {
	return fmt.Sprintf("GF(%s)", f.p)
}

// Reduce maps a into [0, p-1]. big.Int.Mod is Euclidean, so negative inputs
// land on their non-negative representative.
func (f *Field) Reduce(a *big.Int) *big.Int {
	return new(big.Int).Mod(a, f.p)
}

// Add returns a + b mod p.
func (f *Field) Add(a, b *big.Int) *big.Int {
	res := new(big.Int).Add(a, b)
	return res.Mod(res, f.p)
}

// Sub returns a - b mod p.
func (f *Field) Sub(a, b *big.Int) *big.Int {
	res := new(big.Int).Sub(a, b)
	return res.Mod(res, f.p)
}

// Mul returns a * b mod p.
func (f *Field) Mul(a, b *big.Int) *big.Int {
	res := new(big.Int).Mul(a, b)
	return res.Mod(res, f.p)
}

// Neg returns -a mod p.
func (f *Field) Neg(a *big.Int) *big.Int {
	res := new(big.Int).Neg(a)
	return res.Mod(res, f.p)
}

// Inv returns a^-1 mod p.
func (f *Field) Inv(a *big.Int) (*big.Int, error) {
	if !f.constantTime {
		return ModInverse(a, f.p)
	}

	r := f.Reduce(a)
	if r.Sign() == 0 || new(big.Int).GCD(nil, nil, r, f.p).Cmp(one) != 0 {
		return nil, fmt.Errorf("%w: gcd(%s, %s) != 1", ErrNotInvertible, r, f.p)
	}

	x := new(saferith.Nat).SetBig(r, f.p.BitLen())
	return new(saferith.Nat).ModInverse(x, f.ctModulus).Big(), nil
}
