package pipeline

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/Beastly713/sssolve/pkg/field"
	"github.com/Beastly713/sssolve/pkg/radix"
	"github.com/Beastly713/sssolve/pkg/record"
	"github.com/Beastly713/sssolve/pkg/shamir"
)

// Error kinds reported for failed cases.
const (
	KindInvalidInput       = "InvalidInput"
	KindDecode             = "Decode"
	KindInsufficientShares = "InsufficientShares"
	KindNotInvertible      = "NotInvertible"
	KindCanceled           = "Canceled"
	KindIO                 = "IO"
	KindInternal           = "Internal"
)

// Kind classifies an error returned by Solve or by loading a case.
func Kind(err error) string {
	var (
		pathErr  *fs.PathError
		flateErr flate.CorruptInputError
	)

	switch {
	case errors.Is(err, record.ErrInvalidInput), errors.Is(err, shamir.ErrInvalidThreshold):
		return KindInvalidInput
	case errors.Is(err, radix.ErrDecode):
		return KindDecode
	case errors.Is(err, shamir.ErrInsufficientShares):
		return KindInsufficientShares
	case errors.Is(err, field.ErrNotInvertible):
		return KindNotInvertible
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.As(err, &pathErr), errors.As(err, &flateErr):
		return KindIO
	case errors.Is(err, gzip.ErrHeader), errors.Is(err, gzip.ErrChecksum), errors.Is(err, io.ErrUnexpectedEOF):
		// Truncated or corrupt compressed case file
		return KindIO
	default:
		return KindInternal
	}
}

// Solve orchestrates the flow: Validate -> Decode -> Select -> Interpolate.
// It returns the secret in base 10.
func Solve(rec *record.Record, f *field.Field) (string, error) {
	// 1. Decode every share and keep the first k
	shares, err := rec.Select()
	if err != nil {
		return "", err
	}

	// 2. Lagrange interpolation at x = 0
	secret, err := shamir.Reconstruct(shares, rec.Keys.K, f)
	if err != nil {
		return "", fmt.Errorf("reconstruction failed: %w", err)
	}

	return secret.String(), nil
}

// SolveDocument parses a JSON record and solves it.
func SolveDocument(data []byte, f *field.Field) (string, error) {
	rec, err := record.Parse(data)
	if err != nil {
		return "", err
	}
	return Solve(rec, f)
}
