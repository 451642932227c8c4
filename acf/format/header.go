package format

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// HeaderSize is the encoded size of the file header in bytes.
const HeaderSize = 36

// Header is the fixed record at offset 0 of every archive. It is
// written twice: as a zeroed placeholder when the archive is opened for
// writing, and again with the final directory offset, entry count and
// directory checksum once all entries are on disk. The named fields sum
// to 32 bytes; the blank tail pads the record to its full on-disk size.
type Header struct {
	Magic            uint32
	Version          uint32
	CentralDirOffset uint64
	EntryCount       uint64
	CentralDirCRC32  uint32
	Reserved         uint32
	_                [4]byte
}

func NewHeader() Header {
	return Header{
		Magic:   Magic,
		Version: Version,
	}
}

func (h *Header) WriteTo(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return errors.Wrap(err, "failed to write file header")
	}
	return nil
}

func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return Header{}, errors.Wrap(err, "failed to read file header")
	}
	return h, nil
}
