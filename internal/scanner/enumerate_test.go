package scanner

import (
	"path/filepath"
	"testing"
)

func TestFindArchivesSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	writeArchive(t, dir, "b_p.psarc")
	writeArchive(t, dir, "a_m.PSARC")
	writeArchive(t, dir, "notes.txt")

	got := FindArchives([]string{dir, filepath.Join(dir, "missing")})
	if len(got) != 2 {
		t.Fatalf("FindArchives = %v, want 2 archives", got)
	}
	if filepath.Base(got[0]) != "a_m.PSARC" || filepath.Base(got[1]) != "b_p.psarc" {
		t.Errorf("not sorted by name: %v", got)
	}
}

func TestIsPrimaryPlatform(t *testing.T) {
	tests := map[string]bool{
		"/lib/song_p.psarc": true,
		"/lib/song_P.PSARC": true,
		"/lib/song_m.psarc": false,
		"/lib/song.psarc":   false,
	}
	for path, want := range tests {
		if got := isPrimaryPlatform(path); got != want {
			t.Errorf("isPrimaryPlatform(%q) = %v, want %v", path, got, want)
		}
	}
}
