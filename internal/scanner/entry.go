package scanner

import (
	"golang.org/x/text/cases"

	"bassline/internal/catalog"
	"bassline/internal/psarc"
	"bassline/internal/techniques"
)

var foldCaser = cases.Fold()

// DedupKey returns the normalized (artist, title) key used to merge duplicate
// archive releases of the same song.
func DedupKey(entry catalog.SongEntry) string {
	return foldCaser.String(entry.Artist) + "|" + foldCaser.String(entry.Title)
}

// entryFromAttributes maps a manifest attribute block to a SongEntry. Only
// the recognized attribute keys are consulted; anything else in the block is
// ignored for forward compatibility.
func entryFromAttributes(attrs psarc.Attributes, archivePath string, mtime int64) catalog.SongEntry {
	props := attrs.Map("ArrangementProperties")

	flags := make(map[string]bool, len(techniques.Manifest))
	for _, technique := range techniques.Manifest {
		flags[technique] = props.Flag(technique)
	}

	tuningAttrs := attrs.Map("Tuning")
	tuning := make(map[string]int, len(tuningAttrs))
	for key := range tuningAttrs {
		tuning[key] = tuningAttrs.Int(key, 0)
	}

	var sections []catalog.SectionInfo
	for _, raw := range attrs.Slice("Sections") {
		obj, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		section := psarc.Attributes(obj)
		sections = append(sections, catalog.SectionInfo{
			Name:      section.String("Name", ""),
			Number:    section.Int("Number", 0),
			StartTime: section.Float("StartTime", 0),
			EndTime:   section.Float("EndTime", 0),
			IsSolo:    section.Flag("IsSolo"),
		})
	}

	return catalog.SongEntry{
		SongID:              psarc.SongID(attrs),
		Artist:              attrs.String("ArtistName", "Unknown"),
		Title:               attrs.String("SongName", "Unknown"),
		Album:               attrs.String("AlbumName", ""),
		Year:                attrs.Int("SongYear", 0),
		ArchivePath:         archivePath,
		ArchiveMTime:        mtime,
		Tempo:               attrs.Float("SongAverageTempo", 0),
		Length:              attrs.Float("SongLength", 0),
		Tuning:              tuning,
		StandardTuning:      props.Flag("standardTuning"),
		DifficultyEasy:      attrs.Float("SongDiffEasy", 0),
		DifficultyMed:       attrs.Float("SongDiffMed", 0),
		DifficultyHard:      attrs.Float("SongDiffHard", 0),
		NotesEasy:           attrs.Int("NotesEasy", 0),
		NotesMed:            attrs.Int("NotesMedium", 0),
		NotesHard:           attrs.Int("NotesHard", 0),
		MaxPhraseDifficulty: attrs.Int("MaxPhraseDifficulty", 0),
		Techniques:          flags,
		Sections:            sections,
		DLCKey:              attrs.String("DLCKey", ""),
	}
}
