package ioutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressRoundTrip(t *testing.T) {
	t.Parallel()

	comp, err := NewCompressor()
	require.NoError(t, err)
	defer comp.Close()
	dec, err := NewDecompressor()
	require.NoError(t, err)
	defer dec.Close()

	original := bytes.Repeat([]byte("streaming compression round trip "), 1000)

	frame := new(bytes.Buffer)
	written, err := comp.Compress(frame, bytes.NewReader(original))
	require.NoError(t, err)
	assert.Equal(t, int64(frame.Len()), written)
	assert.Less(t, frame.Len(), len(original))

	out := new(bytes.Buffer)
	n, err := dec.Decompress(out, bytes.NewReader(frame.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, int64(len(original)), n)
	assert.Equal(t, original, out.Bytes())
}

func TestCompressorReuseAcrossFrames(t *testing.T) {
	t.Parallel()

	comp, err := NewCompressor()
	require.NoError(t, err)
	defer comp.Close()
	dec, err := NewDecompressor()
	require.NoError(t, err)
	defer dec.Close()

	for _, payload := range [][]byte{
		[]byte("first frame"),
		[]byte("second, separate frame"),
		bytes.Repeat([]byte{0xAB}, 4096),
	} {
		frame := new(bytes.Buffer)
		_, err := comp.Compress(frame, bytes.NewReader(payload))
		require.NoError(t, err)

		out := new(bytes.Buffer)
		_, err = dec.Decompress(out, frame)
		require.NoError(t, err)
		assert.Equal(t, payload, out.Bytes())
	}
}

func TestCompressEmptyInput(t *testing.T) {
	t.Parallel()

	comp, err := NewCompressor()
	require.NoError(t, err)
	defer comp.Close()
	dec, err := NewDecompressor()
	require.NoError(t, err)
	defer dec.Close()

	frame := new(bytes.Buffer)
	written, err := comp.Compress(frame, bytes.NewReader(nil))
	require.NoError(t, err)
	// An empty input still yields a complete (non-empty) frame.
	assert.Greater(t, written, int64(0))

	out := new(bytes.Buffer)
	n, err := dec.Decompress(out, frame)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestDecompressGarbage(t *testing.T) {
	t.Parallel()

	dec, err := NewDecompressor()
	require.NoError(t, err)
	defer dec.Close()

	out := new(bytes.Buffer)
	_, err = dec.Decompress(out, bytes.NewReader([]byte("this is not a zstd frame")))
	assert.ErrorIs(t, err, ErrCompressor)
}
