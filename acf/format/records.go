package format

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// EntryDataSize is the encoded size of the fixed-width descriptor.
// The descriptor is followed by PathLength bytes of UTF-8 path.
const EntryDataSize = 36

var (
	ErrTruncated   = errors.New("entry extends past the end of the central directory")
	ErrPathTooLong = errors.New("entry path exceeds 65535 bytes")
)

// EntryData is the fixed-width portion of a central-directory entry.
// Directory entries carry zeroed sizes, offset and checksum.
type EntryData struct {
	Type           EntryType
	OriginalSize   uint64
	CompressedSize uint64
	DataOffset     uint64
	CRC32          uint32
	FileDateTime   uint32
	FileAttribute  uint8
	PathLength     uint16
}

// Entry pairs a descriptor with its path string. Paths are UTF-8,
// backslash-separated and never null-terminated; directory paths end
// with a trailing backslash.
type Entry struct {
	EntryData
	Path string
}

// NewEntry builds an entry for the given path, setting PathLength. The
// path must fit the 16-bit length field.
func NewEntry(data EntryData, path string) (Entry, error) {
	if len(path) > 0xFFFF {
		return Entry{}, errors.Wrapf(ErrPathTooLong, "%q is %d bytes", path, len(path))
	}
	data.PathLength = uint16(len(path))
	return Entry{EntryData: data, Path: path}, nil
}

// WriteTo serializes the descriptor followed by the path bytes.
func (e *Entry) WriteTo(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, &e.EntryData); err != nil {
		return errors.Wrap(err, "failed to write entry descriptor")
	}
	if _, err := io.WriteString(w, e.Path); err != nil {
		return errors.Wrap(err, "failed to write entry path")
	}
	return nil
}

// ParseEntry decodes one entry from the front of buf and returns it
// along with the number of bytes consumed. A descriptor or path that
// would run past the end of buf is ErrTruncated: the directory buffer
// is exactly the region [centralDirOffset, EOF), so an overrun means
// the archive is corrupt.
func ParseEntry(buf []byte) (Entry, int, error) {
	if len(buf) < EntryDataSize {
		return Entry{}, 0, errors.Wrapf(ErrTruncated, "%d bytes left, descriptor needs %d", len(buf), EntryDataSize)
	}
	var data EntryData
	if err := binary.Read(bytes.NewReader(buf[:EntryDataSize]), binary.LittleEndian, &data); err != nil {
		return Entry{}, 0, errors.Wrap(err, "failed to decode entry descriptor")
	}
	end := EntryDataSize + int(data.PathLength)
	if len(buf) < end {
		return Entry{}, 0, errors.Wrapf(ErrTruncated, "%d bytes left, path needs %d", len(buf)-EntryDataSize, data.PathLength)
	}
	return Entry{
		EntryData: data,
		Path:      string(buf[EntryDataSize:end]),
	}, end, nil
}

// IsDir reports whether the entry describes a directory.
func (e *Entry) IsDir() bool {
	return e.Type == EntryTypeDirectory
}
