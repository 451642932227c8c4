package reader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indrora/acf/acf/format"
	"github.com/indrora/acf/acf/ioutil"
	"github.com/indrora/acf/acf/writer"
)

var testFiles = map[string][]byte{
	"a.txt":        []byte("hello"),
	"d/b.bin":      {0x00, 0x01, 0x02, 0x03},
	"d/sub/c.txt":  bytes.Repeat([]byte("compressible content "), 500),
	"d/sub/2d.dat": bytes.Repeat([]byte{0xFE, 0xED}, 2048),
}

// buildArchive materializes testFiles under a temp base directory and
// archives the lot, returning the archive path.
func buildArchive(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	for name, content := range testFiles {
		full := filepath.Join(base, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, content, 0o644))
	}

	archive := filepath.Join(t.TempDir(), "test.acf")
	require.NoError(t, writer.New().Create(archive, []string{
		filepath.Join(base, "a.txt"),
		filepath.Join(base, "d"),
	}, base, ""))
	return archive
}

func errorIsAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func findEntry(t *testing.T, entries []format.Entry, path string) format.Entry {
	t.Helper()
	for _, entry := range entries {
		if entry.Path == path {
			return entry
		}
	}
	t.Fatalf("entry %q not in archive", path)
	return format.Entry{}
}

func TestListValidArchive(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t)
	entries, err := New().List(archive)
	require.NoError(t, err)
	require.Len(t, entries, 6)

	assert.True(t, entries[0].IsDir())
	assert.True(t, entries[1].IsDir())
	assert.Equal(t, `d\`, entries[0].Path)
	assert.Equal(t, `d\sub\`, entries[1].Path)

	c := findEntry(t, entries, `d\sub\c.txt`)
	assert.Equal(t, uint64(len(testFiles["d/sub/c.txt"])), c.OriginalSize)
	assert.Less(t, c.CompressedSize, c.OriginalSize)
}

func TestListIdempotent(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t)
	r := New()
	first, err := r.List(archive)
	require.NoError(t, err)
	second, err := r.List(archive)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCentralDirectoryCRCProperty(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t)
	raw, err := os.ReadFile(archive)
	require.NoError(t, err)

	header, err := format.ReadHeader(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, ioutil.Crc32(raw[header.CentralDirOffset:]), header.CentralDirCRC32)
}

func TestExtractData(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t)
	r := New()

	data, err := r.ExtractData(archive, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	data, err = r.ExtractData(archive, `d\sub\c.txt`)
	require.NoError(t, err)
	assert.Equal(t, testFiles["d/sub/c.txt"], data)
}

func TestExtractDataNotFound(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t)
	_, err := New().ExtractData(archive, "nope.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExtractDataDirectory(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t)
	_, err := New().ExtractData(archive, `d\`)
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestExtractAllRoundTrip(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	mtime := time.Date(2024, 2, 29, 13, 37, 42, 0, time.UTC)
	for name, content := range testFiles {
		full := filepath.Join(base, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, content, 0o644))
		require.NoError(t, os.Chtimes(full, mtime, mtime))
	}
	archive := filepath.Join(t.TempDir(), "roundtrip.acf")
	require.NoError(t, writer.New().Create(archive, []string{
		filepath.Join(base, "a.txt"),
		filepath.Join(base, "d"),
	}, base, ""))

	out := t.TempDir()
	require.NoError(t, New().ExtractAll(archive, out))

	for name, content := range testFiles {
		full := filepath.Join(out, filepath.FromSlash(name))
		got, err := os.ReadFile(full)
		require.NoError(t, err, name)
		assert.Equal(t, content, got, name)

		info, err := os.Stat(full)
		require.NoError(t, err)
		assert.True(t, format.DosTimeToTime(format.DosTime(mtime)).Equal(info.ModTime()), "mtime of %s: %v", name, info.ModTime())
	}
	assert.DirExists(t, filepath.Join(out, "d", "sub"))
}

func TestExtractByName(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t)
	out := t.TempDir()
	require.NoError(t, New().Extract(archive, []string{`d\b.bin`}, out))

	got, err := os.ReadFile(filepath.Join(out, "d", "b.bin"))
	require.NoError(t, err)
	assert.Equal(t, testFiles["d/b.bin"], got)

	assert.NoFileExists(t, filepath.Join(out, "a.txt"))
	assert.NoFileExists(t, filepath.Join(out, "d", "sub", "c.txt"))
}

func TestExtractProgressEvents(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t)
	var files []string
	var lastGeneral float32
	r := New()
	r.SetCallback(func(file string, progress, general float32) {
		files = append(files, file)
		lastGeneral = general
	})

	require.NoError(t, r.ExtractAll(archive, t.TempDir()))
	require.NotEmpty(t, files)
	assert.Equal(t, `d\`, files[0])
	assert.Equal(t, "Done.", files[len(files)-1])
	assert.Equal(t, float32(1.0), lastGeneral)
}

func TestListWrongMagic(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t)
	raw, err := os.ReadFile(archive)
	require.NoError(t, err)
	binary.LittleEndian.PutUint32(raw[:4], 0xDEADBEEF)
	require.NoError(t, os.WriteFile(archive, raw, 0o644))

	_, err = New().List(archive)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestListCorruptCentralDirectory(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t)
	raw, err := os.ReadFile(archive)
	require.NoError(t, err)
	header, err := format.ReadHeader(bytes.NewReader(raw))
	require.NoError(t, err)

	raw[header.CentralDirOffset+5] ^= 0xFF
	require.NoError(t, os.WriteFile(archive, raw, 0o644))

	r := New()
	_, err = r.List(archive)
	assert.ErrorIs(t, err, ErrBadArchive)

	// Extraction validates the directory first and fails the same way.
	_, err = r.ExtractData(archive, "a.txt")
	assert.ErrorIs(t, err, ErrBadArchive)
}

func TestListTruncatedArchive(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t)
	raw, err := os.ReadFile(archive)
	require.NoError(t, err)
	header, err := format.ReadHeader(bytes.NewReader(raw))
	require.NoError(t, err)

	// Cut mid-descriptor.
	require.NoError(t, os.WriteFile(archive, raw[:header.CentralDirOffset+10], 0o644))

	_, err = New().List(archive)
	assert.ErrorIs(t, err, ErrBadArchive)
}

func TestExtractCorruptBody(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t)
	raw, err := os.ReadFile(archive)
	require.NoError(t, err)

	r := New()
	entries, err := r.List(archive)
	require.NoError(t, err)
	target := findEntry(t, entries, `d\sub\c.txt`)

	raw[target.DataOffset+target.CompressedSize/2] ^= 0xFF
	require.NoError(t, os.WriteFile(archive, raw, 0o644))

	// The central directory is intact, so listing still works.
	_, err = r.List(archive)
	require.NoError(t, err)

	// Extracting the damaged entry fails: either the frame no longer
	// decodes, or it decodes to bytes that miss the stored CRC.
	_, err = r.ExtractData(archive, target.Path)
	require.Error(t, err)
	assert.True(t, errorIsAny(err, ioutil.ErrCompressor, ErrCRCMismatch), "got %v", err)
}

func TestRoundTripCreateData(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte("memory blob "), 100)
	archive := filepath.Join(t.TempDir(), "blob.acf")
	require.NoError(t, writer.New().CreateData(archive, "blob.bin", payload))

	data, err := New().ExtractData(archive, "blob.bin")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestEmptyArchiveList(t *testing.T) {
	t.Parallel()

	archive := filepath.Join(t.TempDir(), "empty.acf")
	require.NoError(t, writer.New().Create(archive, nil, ".", ""))

	entries, err := New().List(archive)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
