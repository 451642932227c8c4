package reader

import (
	"path/filepath"
	"strings"
)

// In-archive paths are backslash-separated on every host. hostPath maps
// one onto the local filesystem under outputPath.
func hostPath(outputPath, archivePath string) string {
	parts := strings.Split(archivePath, `\`)
	return filepath.Join(append([]string{outputPath}, parts...)...)
}
