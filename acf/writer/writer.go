package writer

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/indrora/acf/acf/format"
	"github.com/indrora/acf/acf/ioutil"
	"github.com/indrora/acf/acf/platform"
)

// Writer creates ACF archives. A Writer owns the archive file for the
// duration of a Create call and is not safe for concurrent use.
type Writer struct {
	Callback format.ProgressFunc
	Provider platform.Provider
}

func New() *Writer {
	return &Writer{
		Provider: platform.Default(),
	}
}

func (w *Writer) SetCallback(cb format.ProgressFunc) {
	w.Callback = cb
}

func (w *Writer) report(file string, fileProgress, generalProgress float32) {
	if w.Callback != nil {
		w.Callback(file, fileProgress, generalProgress)
	}
}

// Create builds an archive from the given filesystem inputs. Each input
// directory is descended recursively; entries are stored relative to
// basePath under internalBasePath, directories first, each group in
// sorted path order. Source files that cannot be opened are silently
// omitted from the archive.
func (w *Writer) Create(archivePath string, inputPaths []string, basePath, internalBasePath string) error {
	archive, err := os.Create(archivePath)
	if err != nil {
		return errors.Wrapf(err, "could not create archive file %s", archivePath)
	}
	defer archive.Close()

	header := format.NewHeader()
	if err = header.WriteTo(archive); err != nil {
		return err
	}

	dirs, files, err := enumerate(inputPaths)
	if err != nil {
		return err
	}

	centralDir := make([]format.Entry, 0, len(dirs)+len(files))

	for _, dir := range dirs {
		name, err := internalName(dir, basePath, internalBasePath)
		if err != nil {
			return err
		}
		if name != "" && name[len(name)-1] != '\\' {
			name += format.Separator
		}
		info, err := os.Stat(dir)
		if err != nil {
			continue
		}
		entry, err := format.NewEntry(format.EntryData{
			Type:          format.EntryTypeDirectory,
			FileDateTime:  w.Provider.PackTime(info.ModTime()),
			FileAttribute: w.Provider.GetAttribute(dir),
		}, name)
		if err != nil {
			return err
		}
		centralDir = append(centralDir, entry)
	}

	compressor, err := ioutil.NewCompressor()
	if err != nil {
		return err
	}
	defer compressor.Close()

	total := float32(len(files))
	for i, file := range files {
		name, err := internalName(file, basePath, internalBasePath)
		if err != nil {
			return err
		}
		w.report(name, 0.0, float32(i)/total)

		offset, err := archive.Seek(0, io.SeekCurrent)
		if err != nil {
			return errors.Wrap(err, "failed to seek archive")
		}

		source, err := os.Open(file)
		if err != nil {
			// Unreadable sources are omitted, not reported.
			continue
		}

		info, statErr := source.Stat()
		modTime := time.Time{}
		if statErr == nil {
			modTime = info.ModTime()
		}

		original := ioutil.NewHashWriter(io.Discard, ioutil.NewCrc32())
		compressed, err := compressor.Compress(archive, io.TeeReader(source, original))
		source.Close()
		if err != nil {
			return err
		}

		entry, err := format.NewEntry(format.EntryData{
			Type:           format.EntryTypeFile,
			OriginalSize:   uint64(original.Count()),
			CompressedSize: uint64(compressed),
			DataOffset:     uint64(offset),
			CRC32:          original.Sum32(),
			FileDateTime:   w.Provider.PackTime(modTime),
			FileAttribute:  w.Provider.GetAttribute(file),
		}, name)
		if err != nil {
			return err
		}
		centralDir = append(centralDir, entry)

		w.report(name, 1.0, float32(i+1)/total)
	}

	if err = w.finish(archive, &header, centralDir); err != nil {
		return err
	}

	w.report("Done.", 1.0, 1.0)
	return nil
}

// CreateData writes a single-entry archive holding data at
// internalPath. The entry is stamped with the current time and the
// "archive" attribute bit.
func (w *Writer) CreateData(archivePath, internalPath string, data []byte) error {
	archive, err := os.Create(archivePath)
	if err != nil {
		return errors.Wrapf(err, "could not create archive file %s", archivePath)
	}
	defer archive.Close()

	header := format.NewHeader()
	if err = header.WriteTo(archive); err != nil {
		return err
	}

	offset, err := archive.Seek(0, io.SeekCurrent)
	if err != nil {
		return errors.Wrap(err, "failed to seek archive")
	}

	compressor, err := ioutil.NewCompressor()
	if err != nil {
		return err
	}
	defer compressor.Close()

	compressed, err := compressor.Compress(archive, bytes.NewReader(data))
	if err != nil {
		return err
	}

	entry, err := format.NewEntry(format.EntryData{
		Type:           format.EntryTypeFile,
		OriginalSize:   uint64(len(data)),
		CompressedSize: uint64(compressed),
		DataOffset:     uint64(offset),
		CRC32:          ioutil.Crc32(data),
		FileDateTime:   w.Provider.PackTime(time.Now()),
		FileAttribute:  platform.AttrArchive,
	}, internalPath)
	if err != nil {
		return err
	}

	return w.finish(archive, &header, []format.Entry{entry})
}

// finish appends the central directory and patches the file header with
// the final offset, count and directory checksum.
func (w *Writer) finish(archive *os.File, header *format.Header, centralDir []format.Entry) error {
	offset, err := archive.Seek(0, io.SeekCurrent)
	if err != nil {
		return errors.Wrap(err, "failed to seek archive")
	}

	buf := new(bytes.Buffer)
	for i := range centralDir {
		if err = centralDir[i].WriteTo(buf); err != nil {
			return err
		}
	}
	if _, err = archive.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "failed to write central directory")
	}

	header.CentralDirOffset = uint64(offset)
	header.EntryCount = uint64(len(centralDir))
	header.CentralDirCRC32 = ioutil.Crc32(buf.Bytes())

	if _, err = archive.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "failed to seek archive")
	}
	return header.WriteTo(archive)
}
