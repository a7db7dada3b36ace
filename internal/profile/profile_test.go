package profile

import (
	"encoding/json"
	"strings"
	"testing"
)

// decodeRaw parses literal save JSON the way the save decoder does, with
// numbers kept as json.Number.
func decodeRaw(t *testing.T, text string) any {
	t.Helper()
	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return value
}

const sampleSave = `{
	"Songs": {
		"abc-lower": {
			"DynamicDifficulty": {"Avg": 0.42},
			"TimeStamp": 1700000000
		}
	},
	"SongsSA": {
		"ABC-LOWER": {
			"Badges": {"Easy": 6, "Medium": 5, "Hard": 4, "Master": 0},
			"PlayCount": 7,
			"HighScores": {"Hard": 91234.5}
		},
		"SA-ONLY": {
			"Badges": {"Hard": 5},
			"PlayCount": 2
		},
		"UNMAPPED-ID": {
			"PlayCount": 1
		}
	}
}`

var sampleIDMap = map[string]string{
	"ABC-LOWER": "song_one_bass",
	"SA-ONLY":   "song_two_bass",
}

func TestParseMergesSectionsAcrossCasing(t *testing.T) {
	player := Parse(decodeRaw(t, sampleSave), sampleIDMap, nil)

	sp, ok := player.Songs["ABC-LOWER"]
	if !ok {
		t.Fatalf("missing merged entry, have %v", player.Songs)
	}
	if sp.SongID != "song_one_bass" {
		t.Errorf("SongID = %q", sp.SongID)
	}
	if sp.DDAvg != 0.42 {
		t.Errorf("DDAvg = %v, want 0.42", sp.DDAvg)
	}
	if sp.Timestamp != 1700000000 {
		t.Errorf("Timestamp = %v", sp.Timestamp)
	}
	if sp.BadgeHard != 4 || sp.BadgeMedium != 5 {
		t.Errorf("badges = %+v", sp)
	}
	if sp.PlayCount != 7 {
		t.Errorf("PlayCount = %d, want 7", sp.PlayCount)
	}
	if sp.HighScoreHard != 91234.5 {
		t.Errorf("HighScoreHard = %v", sp.HighScoreHard)
	}
}

func TestParseScoreAttackOnlyEntry(t *testing.T) {
	player := Parse(decodeRaw(t, sampleSave), sampleIDMap, nil)

	sp, ok := player.Songs["SA-ONLY"]
	if !ok {
		t.Fatalf("missing score-attack only entry")
	}
	if sp.DDAvg != 0 || sp.Timestamp != 0 {
		t.Errorf("absent section should leave zeros: %+v", sp)
	}
	if sp.BadgeHard != 5 || sp.PlayCount != 2 {
		t.Errorf("entry = %+v", sp)
	}
}

func TestParseDropsUnmappedIdentifiers(t *testing.T) {
	player := Parse(decodeRaw(t, sampleSave), sampleIDMap, nil)
	if _, ok := player.Songs["UNMAPPED-ID"]; ok {
		t.Error("unmapped identifier should be dropped")
	}
	if len(player.Songs) != 2 {
		t.Errorf("len(Songs) = %d, want 2", len(player.Songs))
	}
}

func TestParseMalformedRoot(t *testing.T) {
	player := Parse("not an object", sampleIDMap, nil)
	if len(player.Songs) != 0 {
		t.Errorf("malformed save should parse to empty profile, got %v", player.Songs)
	}
}

func TestCompetenceThresholds(t *testing.T) {
	tests := []struct {
		name      string
		sp        SongProgress
		competent bool
		mastered  bool
	}{
		{"no badges", SongProgress{}, false, false},
		{"bronze hard", SongProgress{BadgeHard: 3}, false, false},
		{"silver hard", SongProgress{BadgeHard: 4}, true, false},
		{"gold hard", SongProgress{BadgeHard: 5}, true, true},
		{"silver master only", SongProgress{BadgeMaster: 4}, true, false},
		{"gold master only", SongProgress{BadgeMaster: 5}, true, true},
		{"gold easy only", SongProgress{BadgeEasy: 6}, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.sp.Competent(); got != tc.competent {
				t.Errorf("Competent() = %v, want %v", got, tc.competent)
			}
			if got := tc.sp.Mastered(); got != tc.mastered {
				t.Errorf("Mastered() = %v, want %v", got, tc.mastered)
			}
		})
	}
}

func TestProfileIDQueries(t *testing.T) {
	player := PlayerProfile{Songs: map[string]SongProgress{
		"A": {SongID: "a_bass", BadgeHard: 5, PlayCount: 10},
		"B": {SongID: "b_bass", BadgeHard: 4, PlayCount: 1},
		"C": {SongID: "c_bass", PlayCount: 3},
		"D": {SongID: "d_bass"},
	}}

	competent := player.CompetentSongIDs()
	if len(competent) != 2 {
		t.Errorf("CompetentSongIDs = %v", competent)
	}
	mastered := player.MasteredSongIDs()
	if len(mastered) != 1 || mastered[0] != "a_bass" {
		t.Errorf("MasteredSongIDs = %v", mastered)
	}
	played := player.PlayedSongIDs()
	if len(played) != 3 {
		t.Errorf("PlayedSongIDs = %v", played)
	}

	if sp, ok := player.ByCatalogID("c_bass"); !ok || sp.PlayCount != 3 {
		t.Errorf("ByCatalogID(c_bass) = %+v, %v", sp, ok)
	}
	if _, ok := player.ByCatalogID("missing"); ok {
		t.Error("ByCatalogID should miss on unknown id")
	}
}
