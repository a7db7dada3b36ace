package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"bassline/internal/fileutil"
)

// Version identifies the catalog document format.
const Version = 1

// SectionInfo describes one named section of a song arrangement.
type SectionInfo struct {
	Name      string  `json:"name"`
	Number    int     `json:"number"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	IsSolo    bool    `json:"is_solo"`
}

// SongEntry holds the bass-arrangement metadata extracted from one archive.
type SongEntry struct {
	SongID              string          `json:"song_id"`
	Artist              string          `json:"artist"`
	Title               string          `json:"title"`
	Album               string          `json:"album"`
	Year                int             `json:"year"`
	ArchivePath         string          `json:"archive_path"`
	ArchiveMTime        int64           `json:"archive_mtime"`
	Tempo               float64         `json:"tempo"`
	Length              float64         `json:"length"`
	Tuning              map[string]int  `json:"tuning"`
	StandardTuning      bool            `json:"standard_tuning"`
	DifficultyEasy      float64         `json:"difficulty_easy"`
	DifficultyMed       float64         `json:"difficulty_med"`
	DifficultyHard      float64         `json:"difficulty_hard"`
	NotesEasy           int             `json:"notes_easy"`
	NotesMed            int             `json:"notes_med"`
	NotesHard           int             `json:"notes_hard"`
	MaxPhraseDifficulty int             `json:"max_phrase_difficulty"`
	Techniques          map[string]bool `json:"techniques"`
	Sections            []SectionInfo   `json:"sections"`
	DLCKey              string          `json:"dlc_key"`
}

// TechniqueList returns the technique names flagged on this song, sorted.
func (e SongEntry) TechniqueList() []string {
	names := make([]string, 0, len(e.Techniques))
	for name, set := range e.Techniques {
		if set {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// SectionSummary renders a compact section overview like "intro(1),chorus(4)".
// Section names appear in first-occurrence order.
func (e SongEntry) SectionSummary() string {
	counts := make(map[string]int)
	order := make([]string, 0, len(e.Sections))
	for _, s := range e.Sections {
		if _, seen := counts[s.Name]; !seen {
			order = append(order, s.Name)
		}
		counts[s.Name]++
	}
	parts := make([]string, 0, len(order))
	for _, name := range order {
		parts = append(parts, fmt.Sprintf("%s(%d)", name, counts[name]))
	}
	return strings.Join(parts, ",")
}

// OneLineSummary renders a single-line description of the song.
func (e SongEntry) OneLineSummary() string {
	return fmt.Sprintf("%s - %s | %.0fbpm | diff:%.2f | %s | sections: %s",
		e.Artist, e.Title, e.Tempo, e.DifficultyHard,
		strings.Join(e.TechniqueList(), ","), e.SectionSummary())
}

// Catalog is the persisted song collection.
type Catalog struct {
	Songs     map[string]SongEntry
	ScannedAt time.Time
	Version   int
}

// New returns an empty catalog at the current format version.
func New() Catalog {
	return Catalog{
		Songs:   make(map[string]SongEntry),
		Version: Version,
	}
}

type document struct {
	Version   int                  `json:"version"`
	ScannedAt time.Time            `json:"scanned_at"`
	Songs     map[string]SongEntry `json:"songs"`
}

// Load reads the catalog document at path. A missing file yields an empty
// catalog rather than an error.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}

	cat := Catalog{
		Songs:     doc.Songs,
		ScannedAt: doc.ScannedAt,
		Version:   doc.Version,
	}
	if cat.Songs == nil {
		cat.Songs = make(map[string]SongEntry)
	}
	if cat.Version == 0 {
		cat.Version = Version
	}
	return cat, nil
}

// Save writes the catalog document to path atomically.
func (c Catalog) Save(path string) error {
	doc := document{
		Version:   c.Version,
		ScannedAt: c.ScannedAt,
		Songs:     c.Songs,
	}
	if doc.Version == 0 {
		doc.Version = Version
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

// Count returns the number of catalogued bass songs.
func (c Catalog) Count() int {
	return len(c.Songs)
}

// SongsWithTechnique returns songs with the given technique flag set.
func (c Catalog) SongsWithTechnique(technique string) []SongEntry {
	var out []SongEntry
	for _, song := range c.Songs {
		if song.Techniques[technique] {
			out = append(out, song)
		}
	}
	return out
}

// SongsByArtist returns songs whose artist contains the given substring,
// case-insensitively.
func (c Catalog) SongsByArtist(artist string) []SongEntry {
	needle := strings.ToLower(artist)
	var out []SongEntry
	for _, song := range c.Songs {
		if strings.Contains(strings.ToLower(song.Artist), needle) {
			out = append(out, song)
		}
	}
	return out
}
