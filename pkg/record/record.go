package record

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/Beastly713/sssolve/pkg/radix"
	"github.com/Beastly713/sssolve/pkg/shamir"
)

// KeysField is the reserved member holding the threshold metadata.
const KeysField = "keys"

// ErrInvalidInput indicates a malformed or incomplete record.
var ErrInvalidInput = errors.New("invalid input")

// Keys holds the share count and threshold declared by a record.
type Keys struct {
	// N is the total number of shares that were issued.
	N int `json:"n"`

	// K is the number of shares required to reconstruct the secret.
	K int `json:"k"`
}

// Entry is a single share exactly as written in the record.
type Entry struct {
	// Key is the member name, the share's x coordinate in base 10.
	Key string

	// Base is the radix of Value, kept as text so validation can report it verbatim.
	Base string

	// Value is the share's y coordinate written in Base.
	Value string
}

// Record is a parsed input document. Entries keep document order, which
// decides which shares are selected.
type Record struct {
	Keys    *Keys
	Entries []Entry
}

// Validate checks that every required field is present. A value of "0" is
// present; only absent, null or empty fields are rejected.
func (r *Record) Validate() error {
	if r.Keys == nil {
		return fmt.Errorf("%w: missing %q", ErrInvalidInput, KeysField)
	}
	if r.Keys.N < 1 {
		return fmt.Errorf("%w: keys.n must be at least 1, got %d", ErrInvalidInput, r.Keys.N)
	}
	if r.Keys.K < 1 {
		return fmt.Errorf("%w: keys.k must be at least 1, got %d", ErrInvalidInput, r.Keys.K)
	}

	for _, e := range r.Entries {
		if e.Base == "" {
			return fmt.Errorf("%w: share %q is missing base", ErrInvalidInput, e.Key)
		}
		if e.Value == "" {
			return fmt.Errorf("%w: share %q is missing value", ErrInvalidInput, e.Key)
		}
	}
	return nil
}

// Decode converts an entry into a share: x is the key read in base 10 and y
// is the value read in the entry's base.
func (e Entry) Decode() (shamir.Share, error) {
	x, ok := new(big.Int).SetString(e.Key, 10)
	if !ok {
		return shamir.Share{}, fmt.Errorf("%w: share key %q is not a base 10 integer", ErrInvalidInput, e.Key)
	}

	base, err := radix.ParseBase(e.Base)
	if err != nil {
		return shamir.Share{}, fmt.Errorf("share %q: %w", e.Key, err)
	}

	y, err := radix.Decode(e.Value, base)
	if err != nil {
		return shamir.Share{}, fmt.Errorf("share %q: %w", e.Key, err)
	}

	return shamir.NewShare(x, y), nil
}

// Shares validates the record and decodes every entry in document order.
func (r *Record) Shares() ([]shamir.Share, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	shares := make([]shamir.Share, 0, len(r.Entries))
	for _, e := range r.Entries {
		s, err := e.Decode()
		if err != nil {
			return nil, err
		}
		shares = append(shares, s)
	}
	return shares, nil
}

// Select returns the first k shares in document order.
func (r *Record) Select() ([]shamir.Share, error) {
	shares, err := r.Shares()
	if err != nil {
		return nil, err
	}

	if len(shares) < r.Keys.K {
		return nil, fmt.Errorf("%w: need %d, have %d", shamir.ErrInsufficientShares, r.Keys.K, len(shares))
	}

	return shares[:r.Keys.K], nil
}
