// Package wcx is the host-plugin shim: a file-manager packer drives an
// archive through an opaque handle, pulling one header per call and
// dispatching a skip, test or extract for each. The registry mapping
// handles to per-archive state is process-wide.
package wcx

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/indrora/acf/acf/format"
	"github.com/indrora/acf/acf/reader"
)

type Handle int64

type Operation int

const (
	// OpSkip advances past the current entry.
	OpSkip Operation = iota
	// OpTest decodes and CRC-verifies the current entry, discarding it.
	OpTest
	// OpExtract writes the current entry to the given destination path.
	OpExtract
)

var (
	ErrBadHandle = errors.New("unknown archive handle")
	ErrNoHeader  = errors.New("no current header; call ReadHeader first")
)

type state struct {
	path    string
	entries []format.Entry
	index   int
	reader  *reader.Reader
}

var (
	mu         sync.Mutex
	archives   = make(map[Handle]*state)
	nextHandle atomic.Int64
)

// OpenArchive validates the archive and registers it, returning an
// opaque handle for the iteration calls. Validation failures surface
// the reader's error kinds.
func OpenArchive(path string) (Handle, error) {
	rd := reader.New()
	entries, err := rd.List(path)
	if err != nil {
		return 0, err
	}
	h := Handle(nextHandle.Add(1))
	mu.Lock()
	archives[h] = &state{
		path:    path,
		entries: entries,
		index:   -1,
		reader:  rd,
	}
	mu.Unlock()
	return h, nil
}

// SetCallback attaches a progress callback to the handle's extractor.
func SetCallback(h Handle, cb format.ProgressFunc) error {
	st, err := get(h)
	if err != nil {
		return err
	}
	st.reader.SetCallback(cb)
	return nil
}

// ReadHeader advances to the next entry and returns it, or io.EOF after
// the last entry.
func ReadHeader(h Handle) (format.Entry, error) {
	st, err := get(h)
	if err != nil {
		return format.Entry{}, err
	}
	st.index++
	if st.index >= len(st.entries) {
		return format.Entry{}, io.EOF
	}
	return st.entries[st.index], nil
}

// ProcessFile applies op to the entry returned by the last ReadHeader.
func ProcessFile(h Handle, op Operation, destPath string) error {
	st, err := get(h)
	if err != nil {
		return err
	}
	if st.index < 0 || st.index >= len(st.entries) {
		return ErrNoHeader
	}
	entry := st.entries[st.index]

	switch op {
	case OpSkip:
		return nil
	case OpTest:
		if entry.IsDir() {
			return nil
		}
		_, err = st.reader.ExtractData(st.path, entry.Path)
		return err
	case OpExtract:
		return st.extract(entry, destPath)
	default:
		return errors.Errorf("unknown operation %d", op)
	}
}

func (st *state) extract(entry format.Entry, destPath string) error {
	if entry.IsDir() {
		if err := os.MkdirAll(destPath, 0o755); err != nil {
			return errors.Wrapf(err, "could not create directory %s", destPath)
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return errors.Wrapf(err, "could not create directory for %s", destPath)
		}
		data, err := st.reader.ExtractData(st.path, entry.Path)
		if err != nil {
			return err
		}
		if err = os.WriteFile(destPath, data, 0o644); err != nil {
			return errors.Wrapf(err, "could not write %s", destPath)
		}
	}

	modTime := st.reader.Provider.UnpackTime(entry.FileDateTime)
	_ = os.Chtimes(destPath, modTime, modTime)
	_ = st.reader.Provider.SetAttribute(destPath, entry.FileAttribute)
	return nil
}

// CloseArchive releases the handle. Further calls with it fail with
// ErrBadHandle.
func CloseArchive(h Handle) error {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := archives[h]; !ok {
		return ErrBadHandle
	}
	delete(archives, h)
	return nil
}

func get(h Handle) (*state, error) {
	mu.Lock()
	defer mu.Unlock()
	st, ok := archives[h]
	if !ok {
		return nil, ErrBadHandle
	}
	return st, nil
}
