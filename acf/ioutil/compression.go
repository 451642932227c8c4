package ioutil

import (
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// ErrCompressor wraps every failure reported by the underlying
// compression library.
var ErrCompressor = errors.New("compression engine error")

// CompressionLevel is the zstd level every ACF producer uses. It is
// compatibility-determining: consumers must decode frames produced at
// this level.
const CompressionLevel = 9

// Compressor is a streaming zstd encoder. One Compress call emits one
// complete frame; the encoder state is reset and reused between calls.
type Compressor struct {
	enc *zstd.Encoder
}

func NewCompressor() (*Compressor, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(CompressionLevel)),
		zstd.WithEncoderConcurrency(1),
		zstd.WithZeroFrames(true))
	if err != nil {
		return nil, errors.Wrapf(ErrCompressor, "failed to create encoder: %v", err)
	}
	return &Compressor{enc: enc}, nil
}

// Compress streams src through the encoder into dst as a single frame
// and returns the number of compressed bytes written.
func (c *Compressor) Compress(dst io.Writer, src io.Reader) (int64, error) {
	counter := NewCountingWriter(dst)
	c.enc.Reset(counter)
	if _, err := io.Copy(c.enc, src); err != nil {
		c.enc.Close()
		return counter.Count(), errors.Wrapf(ErrCompressor, "compress stream: %v", err)
	}
	// Close terminates the frame; the encoder re-arms on the next Reset.
	if err := c.enc.Close(); err != nil {
		return counter.Count(), errors.Wrapf(ErrCompressor, "end stream: %v", err)
	}
	return counter.Count(), nil
}

func (c *Compressor) Close() {
	c.enc.Close()
}

// Decompressor is a streaming zstd decoder, reset and reused per entry.
type Decompressor struct {
	dec *zstd.Decoder
}

func NewDecompressor() (*Decompressor, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, errors.Wrapf(ErrCompressor, "failed to create decoder: %v", err)
	}
	return &Decompressor{dec: dec}, nil
}

// Decompress streams src through the decoder into dst and returns the
// number of decompressed bytes written.
func (d *Decompressor) Decompress(dst io.Writer, src io.Reader) (int64, error) {
	if err := d.dec.Reset(src); err != nil {
		return 0, errors.Wrapf(ErrCompressor, "reset decoder: %v", err)
	}
	n, err := io.Copy(dst, d.dec)
	if err != nil {
		return n, errors.Wrapf(ErrCompressor, "decompress stream: %v", err)
	}
	return n, nil
}

func (d *Decompressor) Close() {
	d.dec.Close()
}
