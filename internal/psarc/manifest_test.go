package psarc

import (
	"testing"
)

func bassManifest(persistentID, fullName string, extra string) []byte {
	attrs := `"PersistentID": "` + persistentID + `", "FullName": "` + fullName + `"`
	if extra != "" {
		attrs += ", " + extra
	}
	return []byte(`{"Entries": {"` + persistentID + `": {"Attributes": {` + attrs + `}}}}`)
}

func TestBassAttributesFindsBassManifest(t *testing.T) {
	entries := map[string][]byte{
		"manifests/songs_dlc_test/test_lead.json": []byte(`{"Entries": {"X": {"Attributes": {"FullName": "Test_Lead"}}}}`),
		"manifests/songs_dlc_test/test_bass.json": bassManifest("ABC123", "Test_Bass", `"SongName": "Test"`),
	}

	attrs, ok := BassAttributes(entries)
	if !ok {
		t.Fatal("expected a bass attribute block")
	}
	if got := attrs.String("FullName", ""); got != "Test_Bass" {
		t.Fatalf("FullName = %q, want %q", got, "Test_Bass")
	}
}

func TestBassAttributesNoBassArrangement(t *testing.T) {
	entries := map[string][]byte{
		"manifests/songs_dlc_test/test_lead.json": []byte(`{"Entries": {"X": {"Attributes": {"FullName": "Test_Lead"}}}}`),
		"songs/arr/test.sng":                      []byte("binary"),
	}
	if _, ok := BassAttributes(entries); ok {
		t.Fatal("expected no bass attribute block")
	}
}

func TestBassAttributesSkipsInvalidJSON(t *testing.T) {
	entries := map[string][]byte{
		"manifests/bad/bad_bass.json":   []byte("{not json"),
		"manifests/good/good_bass.json": bassManifest("DEF456", "Good_Bass", ""),
	}
	attrs, ok := BassAttributes(entries)
	if !ok {
		t.Fatal("expected the valid manifest to win")
	}
	if got := attrs.String("FullName", ""); got != "Good_Bass" {
		t.Fatalf("FullName = %q, want %q", got, "Good_Bass")
	}
}

func TestBassAttributesPrefersRichestBlock(t *testing.T) {
	entries := map[string][]byte{
		"manifests/a/sparse_bass.json": bassManifest("AAA", "Sparse_Bass", ""),
		"manifests/b/rich_bass.json":   bassManifest("BBB", "Rich_Bass", `"SongName": "Rich", "ArtistName": "Band"`),
	}
	attrs, ok := BassAttributes(entries)
	if !ok {
		t.Fatal("expected a bass attribute block")
	}
	if got := attrs.String("FullName", ""); got != "Rich_Bass" {
		t.Fatalf("richest block should win, got FullName = %q", got)
	}
}

func TestBassAttributesTieBreaksOnPath(t *testing.T) {
	entries := map[string][]byte{
		"manifests/z/second_bass.json": bassManifest("ZZZ", "Second_Bass", ""),
		"manifests/a/first_bass.json":  bassManifest("AAA", "First_Bass", ""),
	}
	attrs, ok := BassAttributes(entries)
	if !ok {
		t.Fatal("expected a bass attribute block")
	}
	if got := attrs.String("FullName", ""); got != "First_Bass" {
		t.Fatalf("tie should break on smallest path, got FullName = %q", got)
	}
}

func TestIdentifierPairs(t *testing.T) {
	entries := map[string][]byte{
		"manifests/a/one_bass.json":  bassManifest("aabbcc", "One_Bass", ""),
		"manifests/b/two_bass.json":  bassManifest("DDEEFF", "Two_Bass", ""),
		"manifests/c/lead.json":      bassManifest("IGNORED", "Lead", ""),
		"manifests/d/noid_bass.json": []byte(`{"Entries": {"X": {"Attributes": {"FullName": "NoID_Bass"}}}}`),
	}

	pairs := IdentifierPairs(entries)
	if len(pairs) != 2 {
		t.Fatalf("pairs = %v, want 2 entries", pairs)
	}
	if got := pairs["AABBCC"]; got != "one_bass" {
		t.Fatalf("identifier should be uppercased and song id lowered, got %q", got)
	}
	if got := pairs["DDEEFF"]; got != "two_bass" {
		t.Fatalf("pairs[DDEEFF] = %q, want %q", got, "two_bass")
	}
}

func TestSongIDFallsBackToDLCKey(t *testing.T) {
	attrs := Attributes{"DLCKey": "MySong"}
	if got := SongID(attrs); got != "mysong_bass" {
		t.Fatalf("SongID = %q, want %q", got, "mysong_bass")
	}
}

func TestAttributeAccessors(t *testing.T) {
	attrs := Attributes{
		"Name":   "value",
		"Tempo":  120.5,
		"Count":  float64(7),
		"Flag":   float64(1),
		"Off":    float64(0),
		"Nested": map[string]any{"Inner": "deep"},
		"List":   []any{"a", "b"},
	}

	if got := attrs.String("Name", "x"); got != "value" {
		t.Errorf("String = %q", got)
	}
	if got := attrs.String("Missing", "fallback"); got != "fallback" {
		t.Errorf("String default = %q", got)
	}
	if got := attrs.Float("Tempo", 0); got != 120.5 {
		t.Errorf("Float = %v", got)
	}
	if got := attrs.Int("Count", 0); got != 7 {
		t.Errorf("Int = %d", got)
	}
	if !attrs.Flag("Flag") || attrs.Flag("Off") || attrs.Flag("Missing") {
		t.Error("Flag interpretation wrong")
	}
	if got := attrs.Map("Nested").String("Inner", ""); got != "deep" {
		t.Errorf("Map = %q", got)
	}
	if got := len(attrs.Slice("List")); got != 2 {
		t.Errorf("Slice length = %d", got)
	}
}
