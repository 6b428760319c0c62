package cmd

import (
	"fmt"

	"github.com/Beastly713/sssolve/pkg/field"
)

// buildField turns the --prime and --constant-time flags into a field.
func buildField(prime string, constantTime bool) (*field.Field, error) {
	var opts []field.Option
	if constantTime {
		opts = append(opts, field.WithConstantTime())
	}

	f, err := field.Parse(prime, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid --prime: %w", err)
	}

	if !f.IsPrime() {
		logger.Warn().Str("modulus", prime).Msg("modulus is not prime; some shares may not be invertible")
	}

	return f, nil
}
