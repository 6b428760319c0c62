package compression

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
)

// gzipMagic opens every gzip member (RFC 1952).
var gzipMagic = []byte{0x1f, 0x8b}

// IsGzip reports whether data starts with the gzip magic bytes.
func IsGzip(data []byte) bool {
	return bytes.HasPrefix(data, gzipMagic)
}

// NewReader returns a reader that transparently inflates gzip input and
// passes anything else through.
func NewReader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	magic, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		return nil, err
	}
	if !bytes.Equal(magic, gzipMagic) {
		return br, nil
	}

	return gzip.NewReader(br)
}

// Compress gzips data. Case files are small, so BestCompression costs little.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := CompressTo(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CompressTo writes data to w as a single gzip member.
func CompressTo(w io.Writer, data []byte) error {
	writer, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return err
	}

	if _, err := writer.Write(data); err != nil {
		return err
	}

	return writer.Close()
}
