package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ArchiveSuffix is the file extension of scanned archives.
const ArchiveSuffix = ".psarc"

const (
	// primaryPlatformSuffix marks the archive variant preferred during dedup.
	primaryPlatformSuffix = "_p" + ArchiveSuffix
	// secondaryPlatformSuffix marks the variant that never displaces another.
	secondaryPlatformSuffix = "_m" + ArchiveSuffix
)

// FindArchives collects archive files from the given directories, sorted by
// name within each directory. Missing directories yield no candidates.
func FindArchives(dirs []string) []string {
	var paths []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		var found []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if strings.HasSuffix(strings.ToLower(entry.Name()), ArchiveSuffix) {
				found = append(found, filepath.Join(dir, entry.Name()))
			}
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	return paths
}

// isPrimaryPlatform reports whether the archive filename carries the
// primary-platform suffix marker.
func isPrimaryPlatform(archivePath string) bool {
	return strings.HasSuffix(strings.ToLower(filepath.Base(archivePath)), primaryPlatformSuffix)
}
