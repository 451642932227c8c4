package reader

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/indrora/acf/acf/format"
	"github.com/indrora/acf/acf/ioutil"
	"github.com/indrora/acf/acf/platform"
)

var (
	ErrUnknownFormat    = errors.New("not a valid ACF archive")
	ErrBadArchive       = errors.New("archive is corrupted")
	ErrCRCMismatch      = errors.New("crc32 mismatch")
	ErrNotFound         = errors.New("file not found in archive")
	ErrInvalidOperation = errors.New("cannot extract data from a directory entry")
)

// Reader lists and extracts ACF archives. Every call opens its own
// read-only handle and releases it before returning; a Reader holds no
// state between calls.
type Reader struct {
	Callback format.ProgressFunc
	Provider platform.Provider
}

func New() *Reader {
	return &Reader{
		Provider: platform.Default(),
	}
}

func (r *Reader) SetCallback(cb format.ProgressFunc) {
	r.Callback = cb
}

func (r *Reader) report(file string, fileProgress, generalProgress float32) {
	if r.Callback != nil {
		r.Callback(file, fileProgress, generalProgress)
	}
}

// List opens the archive, validates the file header and the central
// directory checksum, and returns the parsed entries in on-disk order.
func (r *Reader) List(archivePath string) ([]format.Entry, error) {
	archive, err := os.Open(archivePath)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open archive file %s", archivePath)
	}
	defer archive.Close()

	header, err := format.ReadHeader(archive)
	if err != nil {
		return nil, err
	}
	if header.Magic != format.Magic {
		return nil, errors.Wrap(ErrUnknownFormat, archivePath)
	}

	end, err := archive.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, errors.Wrap(err, "failed to seek archive")
	}
	if header.CentralDirOffset < format.HeaderSize || header.CentralDirOffset > uint64(end) {
		return nil, errors.Wrapf(ErrBadArchive, "central directory offset %d out of range", header.CentralDirOffset)
	}

	buf := make([]byte, uint64(end)-header.CentralDirOffset)
	if _, err = archive.ReadAt(buf, int64(header.CentralDirOffset)); err != nil {
		return nil, errors.Wrap(err, "failed to read central directory")
	}
	if ioutil.Crc32(buf) != header.CentralDirCRC32 {
		return nil, errors.Wrap(ErrBadArchive, "central directory crc32 mismatch")
	}

	entries := make([]format.Entry, 0, header.EntryCount)
	for i := uint64(0); i < header.EntryCount; i++ {
		entry, n, err := format.ParseEntry(buf)
		if err != nil {
			return nil, errors.Wrapf(ErrBadArchive, "entry %d: %v", i, err)
		}
		buf = buf[n:]
		entries = append(entries, entry)
	}
	return entries, nil
}

// ExtractData decompresses the named entry into memory, verifying its
// CRC32 against the stored value. The archive is fully validated (as by
// List) before the entry is looked up.
func (r *Reader) ExtractData(archivePath, name string) ([]byte, error) {
	entries, err := r.List(archivePath)
	if err != nil {
		return nil, err
	}

	var target *format.Entry
	for i := range entries {
		if entries[i].Path == name {
			target = &entries[i]
			break
		}
	}
	if target == nil {
		return nil, errors.Wrap(ErrNotFound, name)
	}
	if target.IsDir() {
		return nil, errors.Wrap(ErrInvalidOperation, name)
	}

	archive, err := os.Open(archivePath)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open archive file %s", archivePath)
	}
	defer archive.Close()

	if _, err = archive.Seek(int64(target.DataOffset), io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "failed to seek archive")
	}

	decompressor, err := ioutil.NewDecompressor()
	if err != nil {
		return nil, err
	}
	defer decompressor.Close()

	out := bytes.NewBuffer(make([]byte, 0, target.OriginalSize))
	if _, err = decompressor.Decompress(out, io.LimitReader(archive, int64(target.CompressedSize))); err != nil {
		return nil, err
	}

	if ioutil.Crc32(out.Bytes()) != target.CRC32 {
		return nil, errors.Wrap(ErrCRCMismatch, name)
	}
	return out.Bytes(), nil
}

// ExtractAll extracts every entry into outputPath, recreating the
// directory tree and applying stored times and attributes best-effort.
func (r *Reader) ExtractAll(archivePath, outputPath string) error {
	entries, err := r.List(archivePath)
	if err != nil {
		return err
	}
	return r.extractEntries(archivePath, entries, outputPath)
}

// Extract extracts only the entries whose in-archive paths appear in
// names, in central-directory order. Paths are matched byte-exact.
func (r *Reader) Extract(archivePath string, names []string, outputPath string) error {
	entries, err := r.List(archivePath)
	if err != nil {
		return err
	}

	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}
	selected := make([]format.Entry, 0, len(names))
	for _, entry := range entries {
		if _, ok := wanted[entry.Path]; ok {
			selected = append(selected, entry)
		}
	}
	return r.extractEntries(archivePath, selected, outputPath)
}

func (r *Reader) extractEntries(archivePath string, entries []format.Entry, outputPath string) error {
	total := float32(len(entries))
	for i, entry := range entries {
		full := hostPath(outputPath, entry.Path)
		r.report(entry.Path, 0.0, float32(i)/total)

		if entry.IsDir() {
			if err := os.MkdirAll(full, 0o755); err != nil {
				return errors.Wrapf(err, "could not create directory %s", full)
			}
		} else {
			if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
				return errors.Wrapf(err, "could not create directory for %s", full)
			}
			data, err := r.ExtractData(archivePath, entry.Path)
			if err != nil {
				return err
			}
			if err = os.WriteFile(full, data, 0o644); err != nil {
				return errors.Wrapf(err, "could not write %s", full)
			}
		}

		// Metadata application is best-effort; failures are swallowed.
		modTime := r.Provider.UnpackTime(entry.FileDateTime)
		_ = os.Chtimes(full, modTime, modTime)
		_ = r.Provider.SetAttribute(full, entry.FileAttribute)

		r.report(entry.Path, 1.0, float32(i+1)/total)
	}
	r.report("Done.", 1.0, 1.0)
	return nil
}
