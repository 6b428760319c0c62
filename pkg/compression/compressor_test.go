package compression

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inflate(t *testing.T, data []byte) []byte {
	t.Helper()

	r, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return out
}

func TestCompressRoundTrip(t *testing.T) {
	doc := []byte(strings.Repeat(`{"keys":{"n":4,"k":3},"1":{"base":"10","value":"4"}}`, 50))

	packed, err := Compress(doc)
	require.NoError(t, err)
	assert.True(t, IsGzip(packed))
	assert.Less(t, len(packed), len(doc))

	assert.Equal(t, doc, inflate(t, packed))
}

func TestNewReaderPassesPlainDataThrough(t *testing.T) {
	doc := []byte(`{"keys":{"n":1,"k":1}}`)

	assert.False(t, IsGzip(doc))
	assert.Equal(t, doc, inflate(t, doc))

	// Shorter than the magic
	assert.Equal(t, []byte("{"), inflate(t, []byte("{")))
	assert.Empty(t, inflate(t, nil))
}

func TestNewReaderCorruptGzip(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte{0x1f, 0x8b, 0x00}))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	packed, err := Compress([]byte("some case data"))
	require.NoError(t, err)

	r, err := NewReader(bytes.NewReader(packed[:len(packed)-6]))
	require.NoError(t, err)
	_, err = io.ReadAll(r)
	assert.Error(t, err)
}
