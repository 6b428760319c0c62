package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
)

// Reader decodes a record from a JSON stream. Splitting a stream of several
// records into cases is left to the caller; after a failed Read the decoder
// may sit inside the broken object, so the Reader must not be reused.
type Reader struct {
	dec *json.Decoder
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &Reader{dec: dec}
}

// Parse decodes exactly one record from data.
func Parse(data []byte) (*Record, error) {
	r := NewReader(bytes.NewReader(data))

	rec, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidInput)
	}
	if err != nil {
		return nil, err
	}

	if _, err := r.dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after record", ErrInvalidInput)
	}

	return rec, nil
}

// Read decodes the next record and validates it. It returns io.EOF when the
// stream holds no further records.
func (r *Reader) Read() (*Record, error) {
	tok, err := r.dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: record must be a JSON object", ErrInvalidInput)
	}

	rec := &Record{}
	seen := make(map[string]bool)

	// json.Decoder walks members in document order, unlike decoding into a map.
	for r.dec.More() {
		tok, err := r.dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		key, _ := tok.(string)

		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate member %q", ErrInvalidInput, key)
		}
		seen[key] = true

		var raw json.RawMessage
		if err := r.dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: member %q: %v", ErrInvalidInput, key, err)
		}

		if key == KeysField {
			keys, err := parseKeys(raw)
			if err != nil {
				return nil, err
			}
			rec.Keys = keys
			continue
		}

		entry, err := parseEntry(key, raw)
		if err != nil {
			return nil, err
		}
		rec.Entries = append(rec.Entries, entry)
	}

	// Closing brace
	if _, err := r.dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	return rec, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func parseKeys(raw json.RawMessage) (*Keys, error) {
	if isNull(raw) {
		return nil, fmt.Errorf("%w: missing %q", ErrInvalidInput, KeysField)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %q must be an object", ErrInvalidInput, KeysField)
	}

	n, err := intMember(fields, "n")
	if err != nil {
		return nil, err
	}
	k, err := intMember(fields, "k")
	if err != nil {
		return nil, err
	}

	return &Keys{N: n, K: k}, nil
}

// intMember reads keys.<name>, accepting a JSON integer or a decimal string.
// Integer-valued literals such as 2.0 or 2e0 count as integers.
func intMember(fields map[string]json.RawMessage, name string) (int, error) {
	raw, ok := fields[name]
	if !ok || isNull(raw) {
		return 0, fmt.Errorf("%w: missing keys.%s", ErrInvalidInput, name)
	}

	text, err := scalarText(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: keys.%s %v", ErrInvalidInput, name, err)
	}

	text = strings.TrimSpace(text)
	if v, err := strconv.Atoi(text); err == nil {
		return v, nil
	}

	v, ok := integralNumber(text)
	if !ok {
		return 0, fmt.Errorf("%w: keys.%s must be an integer, got %s", ErrInvalidInput, name, raw)
	}
	return v, nil
}

func integralNumber(text string) (int, bool) {
	if strings.Contains(text, "/") {
		return 0, false
	}

	r, ok := new(big.Rat).SetString(text)
	if !ok || !r.IsInt() || !r.Num().IsInt64() {
		return 0, false
	}

	v := r.Num().Int64()
	if int64(int(v)) != v {
		return 0, false
	}
	return int(v), true
}

// scalarText returns a JSON string's contents or a JSON number's literal.
func scalarText(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&n); err == nil {
		return n.String(), nil
	}

	return "", fmt.Errorf("must be a string or number, got %s", raw)
}

func parseEntry(key string, raw json.RawMessage) (Entry, error) {
	if isNull(raw) {
		return Entry{}, fmt.Errorf("%w: share %q is null", ErrInvalidInput, key)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Entry{}, fmt.Errorf("%w: share %q must be an object", ErrInvalidInput, key)
	}

	entry := Entry{Key: key}

	if b, ok := fields["base"]; ok && !isNull(b) {
		text, err := scalarText(b)
		if err != nil {
			return Entry{}, fmt.Errorf("%w: share %q base %v", ErrInvalidInput, key, err)
		}
		entry.Base = text
	}

	if v, ok := fields["value"]; ok && !isNull(v) {
		if err := json.Unmarshal(v, &entry.Value); err != nil {
			return Entry{}, fmt.Errorf("%w: share %q value must be a string", ErrInvalidInput, key)
		}
	}

	return entry, nil
}
