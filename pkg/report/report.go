package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// Format selects how results are serialized.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	CBOR Format = "cbor"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Text, JSON, CBOR:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or cbor)", s)
	}
}

// Result is the outcome of reconstructing one test case. Exactly one of
// Secret and Error is set.
type Result struct {
	// Name identifies the case, usually the file it came from.
	Name string `json:"name" cbor:"name"`

	// Secret is the reconstructed value in base 10.
	Secret string `json:"secret,omitempty" cbor:"secret,omitempty"`

	// Kind classifies a failure, e.g. InvalidInput or NotInvertible.
	Kind string `json:"kind,omitempty" cbor:"kind,omitempty"`

	// Error is the failure message.
	Error string `json:"error,omitempty" cbor:"error,omitempty"`
}

// Failed reports whether the case produced no secret.
func (r Result) Failed() bool {
	return r.Error != ""
}

// Summary counts successes and failures.
func Summary(results []Result) (solved, failed int) {
	for _, r := range results {
		if r.Failed() {
			failed++
		} else {
			solved++
		}
	}
	return solved, failed
}

// Writer serializes batches of results.
type Writer struct {
	w      io.Writer
	format Format
}

// NewWriter creates a Writer emitting format to w.
func NewWriter(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// Write emits all results. Text output is one line per case; JSON and CBOR
// emit a single array.
func (rw *Writer) Write(results []Result) error {
	switch rw.format {
	case Text:
		for _, r := range results {
			var err error
			if r.Failed() {
				_, err = fmt.Fprintf(rw.w, "Error for %s [%s]: %s\n", r.Name, r.Kind, r.Error)
			} else {
				_, err = fmt.Fprintf(rw.w, "Secret for %s: %s\n", r.Name, r.Secret)
			}
			if err != nil {
				return fmt.Errorf("failed to write result for %s: %w", r.Name, err)
			}
		}
		return nil

	case JSON:
		enc := json.NewEncoder(rw.w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(nonNil(results)); err != nil {
			return fmt.Errorf("failed to encode json report: %w", err)
		}
		return nil

	case CBOR:
		data, err := cbor.Marshal(nonNil(results))
		if err != nil {
			return fmt.Errorf("failed to encode cbor report: %w", err)
		}
		if _, err := rw.w.Write(data); err != nil {
			return fmt.Errorf("failed to write cbor report: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unknown output format %q", rw.format)
	}
}

func nonNil(results []Result) []Result {
	if results == nil {
		return []Result{}
	}
	return results
}
