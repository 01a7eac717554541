package compression

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaybeCompress(t *testing.T) {
	small := []byte(`[{"id":"a"}]`)
	out, err := MaybeCompress(small)
	require.NoError(t, err)
	assert.Equal(t, small, out)
	assert.False(t, IsCompressed(out))

	large := bytes.Repeat([]byte("clipboard "), 500)
	out, err = MaybeCompress(large)
	require.NoError(t, err)
	assert.True(t, IsCompressed(out))
	assert.Less(t, len(out), len(large))

	back, err := Decompress(out)
	require.NoError(t, err)
	assert.Equal(t, large, back)
}

func TestDecompressPlain(t *testing.T) {
	out, err := Decompress([]byte("[]"))
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), out)
}

func TestDecompressTruncated(t *testing.T) {
	packed, err := Compress(bytes.Repeat([]byte("x"), 4096))
	require.NoError(t, err)

	_, err = Decompress(packed[:len(packed)/2])
	assert.Error(t, err)
}
