package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Beastly713/sssolve/pkg/compression"
)

// Case is one record document awaiting reconstruction. A case whose Err is
// set could not be loaded and is reported as failed without being solved.
type Case struct {
	Name string
	Data []byte
	Err  error
}

// ReadCases reads every record document from r. Gzip input is inflated
// first. A stream holding several concatenated records yields one case per
// record, named name#1, name#2 and so on. Input that is not a well-formed
// JSON stream is returned as a single case so the parse error is reported
// against it.
func ReadCases(r io.Reader, name string) ([]Case, error) {
	in, err := compression.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	docs, ok := splitStream(data)
	if !ok || len(docs) <= 1 {
		return []Case{{Name: name, Data: data}}, nil
	}

	cases := make([]Case, len(docs))
	for i, doc := range docs {
		cases[i] = Case{Name: fmt.Sprintf("%s#%d", name, i+1), Data: doc}
	}
	return cases, nil
}

// LoadFile reads the cases stored at path; "-" reads stdin.
func LoadFile(path string) ([]Case, error) {
	if path == "-" {
		return ReadCases(os.Stdin, "stdin")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	return ReadCases(file, path)
}

func splitStream(data []byte) ([][]byte, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))

	var docs [][]byte
	for {
		var doc json.RawMessage
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, true
		}
		if err != nil {
			return nil, false
		}
		docs = append(docs, doc)
	}
}
