package ioutil

import (
	"hash"
	"hash/crc32"
	"io"
)

// The archive format checksums everything with CRC-32/IEEE: polynomial
// 0xEDB88320, reflected, initial value and final XOR 0xFFFFFFFF. The
// stdlib table is precomputed once at init.

// Crc32 computes the one-shot CRC32 of p.
func Crc32(p []byte) uint32 {
	return crc32.ChecksumIEEE(p)
}

// Crc32Update folds p into a running CRC32.
// Crc32Update(Crc32(a), b) == Crc32(a ++ b).
func Crc32Update(crc uint32, p []byte) uint32 {
	return crc32.Update(crc, crc32.IEEETable, p)
}

// NewCrc32 returns an incremental CRC32 hasher.
func NewCrc32() hash.Hash32 {
	return crc32.NewIEEE()
}

// HashWriter tees everything written through it into a hash, tracking
// the byte count as it goes.
type HashWriter struct {
	writer io.Writer
	hasher hash.Hash32
	count  int64
}

func NewHashWriter(dest io.Writer, hasher hash.Hash32) *HashWriter {
	return &HashWriter{
		writer: dest,
		hasher: hasher,
	}
}

func (w *HashWriter) Write(b []byte) (int, error) {
	w.hasher.Write(b)
	n, err := w.writer.Write(b)
	w.count += int64(n)
	return n, err
}

// Sum32 returns the hash of all bytes written so far.
func (w *HashWriter) Sum32() uint32 {
	return w.hasher.Sum32()
}

// Count returns the number of bytes written so far.
func (w *HashWriter) Count() int64 {
	return w.count
}
