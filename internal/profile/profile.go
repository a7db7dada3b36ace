// Package profile parses decoded save-file JSON into per-song progress.
//
// The save carries two independently keyed sections for the same songs: a
// dynamic-difficulty section and a score-attack section, with inconsistent
// key casing between them. Parsing normalizes every internal identifier to
// uppercase, takes the union across both sections, and keeps only the
// identifiers the identifier map can resolve to catalogued bass songs.
package profile

import (
	"encoding/json"
	"log/slog"
	"strings"

	"bassline/internal/logging"
)

// SongProgress is the per-song progress merged from both save sections.
type SongProgress struct {
	PersistentID  string
	SongID        string
	BadgeEasy     int
	BadgeMedium   int
	BadgeHard     int
	BadgeMaster   int
	PlayCount     int
	HighScoreHard float64
	Timestamp     float64
	DDAvg         float64
}

// Competent reports whether the song has at least a silver badge on either
// of the two hardest difficulties.
func (p SongProgress) Competent() bool {
	return p.BadgeHard >= 4 || p.BadgeMaster >= 4
}

// Mastered reports a gold badge on either of the two hardest difficulties.
func (p SongProgress) Mastered() bool {
	return p.BadgeHard >= 5 || p.BadgeMaster >= 5
}

// PlayerProfile maps internal identifiers to song progress. It is recomputed
// on every run and never persisted.
type PlayerProfile struct {
	Songs map[string]SongProgress
}

// CompetentSongIDs returns catalog ids of songs played to silver or better.
func (pp PlayerProfile) CompetentSongIDs() []string {
	var ids []string
	for _, sp := range pp.Songs {
		if sp.Competent() {
			ids = append(ids, sp.SongID)
		}
	}
	return ids
}

// MasteredSongIDs returns catalog ids of songs played to gold.
func (pp PlayerProfile) MasteredSongIDs() []string {
	var ids []string
	for _, sp := range pp.Songs {
		if sp.Mastered() {
			ids = append(ids, sp.SongID)
		}
	}
	return ids
}

// PlayedSongIDs returns catalog ids of songs with any recorded plays.
func (pp PlayerProfile) PlayedSongIDs() []string {
	var ids []string
	for _, sp := range pp.Songs {
		if sp.PlayCount > 0 {
			ids = append(ids, sp.SongID)
		}
	}
	return ids
}

// ByCatalogID looks up progress by catalog song identifier.
func (pp PlayerProfile) ByCatalogID(songID string) (SongProgress, bool) {
	for _, sp := range pp.Songs {
		if sp.SongID == songID {
			return sp, true
		}
	}
	return SongProgress{}, false
}

// Parse merges the save file's dynamic-difficulty ("Songs") and score-attack
// ("SongsSA") sections into a PlayerProfile. Identifiers absent from idMap
// are dropped; they belong to non-bass or unscanned content.
func Parse(raw any, idMap map[string]string, logger *slog.Logger) PlayerProfile {
	logger = logging.NewComponentLogger(logger, "profile")

	root := dict(raw)
	songsDD := upperKeyed(root.dict("Songs"))
	songsSA := upperKeyed(root.dict("SongsSA"))

	ids := make(map[string]struct{}, len(songsDD)+len(songsSA))
	for pid := range songsDD {
		ids[pid] = struct{}{}
	}
	for pid := range songsSA {
		ids[pid] = struct{}{}
	}

	player := PlayerProfile{Songs: make(map[string]SongProgress)}
	dropped := 0
	for pid := range ids {
		songID, ok := idMap[pid]
		if !ok || songID == "" {
			dropped++
			continue
		}

		sp := SongProgress{PersistentID: pid, SongID: songID}

		dd := songsDD[pid]
		ddData := dd.dict("DynamicDifficulty")
		sp.DDAvg = ddData.float("Avg")
		sp.Timestamp = dd.float("TimeStamp")

		sa := songsSA[pid]
		badges := sa.dict("Badges")
		sp.BadgeEasy = badges.int("Easy")
		sp.BadgeMedium = badges.int("Medium")
		sp.BadgeHard = badges.int("Hard")
		sp.BadgeMaster = badges.int("Master")
		sp.PlayCount = sa.int("PlayCount")
		sp.HighScoreHard = sa.dict("HighScores").float("Hard")

		player.Songs[pid] = sp
	}

	if dropped > 0 {
		logger.Debug("dropped unmapped save entries", logging.Int("dropped", dropped))
	}
	return player
}

// object is a loosely-typed JSON object with defaulting accessors.
type object map[string]any

func dict(v any) object {
	if m, ok := v.(map[string]any); ok {
		return object(m)
	}
	return object{}
}

func (o object) dict(key string) object {
	return dict(o[key])
}

func (o object) float(key string) float64 {
	switch v := o[key].(type) {
	case float64:
		return v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func (o object) int(key string) int {
	return int(o.float(key))
}

func upperKeyed(o object) map[string]object {
	out := make(map[string]object, len(o))
	for key, value := range o {
		out[strings.ToUpper(key)] = dict(value)
	}
	return out
}
