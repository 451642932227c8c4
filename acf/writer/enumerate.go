package writer

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// enumerate collects the directories and regular files reachable from
// inputPaths, deduplicated by cleaned absolute path and sorted
// lexicographically within each group. Symlinks and special files are
// ignored; walk errors skip the offending subtree.
func enumerate(inputPaths []string) (dirs, files []string, err error) {
	seen := make(map[string]struct{})

	record := func(path string, isDir bool) {
		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			return
		}
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		if isDir {
			dirs = append(dirs, path)
		} else {
			files = append(files, path)
		}
	}

	for _, input := range inputPaths {
		info, statErr := os.Stat(input)
		if statErr != nil {
			continue
		}
		switch {
		case info.IsDir():
			walkErr := filepath.WalkDir(input, func(path string, d fs.DirEntry, werr error) error {
				if werr != nil {
					if d != nil && d.IsDir() {
						return fs.SkipDir
					}
					return nil
				}
				switch {
				case d.IsDir():
					record(path, true)
				case d.Type().IsRegular():
					record(path, false)
				}
				return nil
			})
			if walkErr != nil {
				return nil, nil, walkErr
			}
		case info.Mode().IsRegular():
			record(input, false)
		}
	}

	sort.Strings(dirs)
	sort.Strings(files)
	return dirs, files, nil
}

// internalName maps a filesystem path to its in-archive name: the path
// relative to basePath, joined under internalBase, with separators
// normalized to backslashes.
func internalName(path, basePath, internalBase string) (string, error) {
	rel, err := filepath.Rel(basePath, path)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(filepath.Join(internalBase, rel), "/", `\`), nil
}
