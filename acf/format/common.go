package format

/*

An ACF archive is three regions: a fixed 36-byte file header, a body of
Zstandard frames (one frame per file entry), and a central directory
that runs from the header's centralDirOffset to the end of the file.

*/

const (
	// Magic is "ACF9" read as a little-endian uint32.
	Magic   uint32 = 0x39464341
	Version uint32 = 0x10000900
)

// Separator is the canonical in-archive path separator. Entry paths are
// stored with backslashes regardless of the host OS; directory entries
// carry a trailing separator.
const Separator = `\`

type EntryType uint8

const (
	EntryTypeFile      EntryType = 0
	EntryTypeDirectory EntryType = 1
)

// ProgressFunc receives the path of the entry being worked on, that
// entry's own progress and the overall progress, both in [0,1].
type ProgressFunc func(currentFile string, currentFileProgress float32, generalProgress float32)
