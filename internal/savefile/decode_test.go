package savefile

import (
	"bytes"
	"compress/zlib"
	"crypto/aes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// encodeSave builds a synthetic save file the way the game writes them:
// magic tag, sixteen header bytes, then the zlib-compressed payload encrypted
// block-by-block with the fixed key.
func encodeSave(t *testing.T, payload string) []byte {
	t.Helper()

	var compressed bytes.Buffer
	w := zlib.NewWriter(&compressed)
	if _, err := w.Write([]byte(payload)); err != nil {
		t.Fatalf("compress payload: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close compressor: %v", err)
	}

	plain := compressed.Bytes()
	if pad := len(plain) % blockSize; pad != 0 {
		plain = append(plain, make([]byte, blockSize-pad)...)
	}

	cipher, err := aes.NewCipher(saveKey)
	if err != nil {
		t.Fatalf("init cipher: %v", err)
	}
	encrypted := make([]byte, len(plain))
	for offset := 0; offset < len(plain); offset += blockSize {
		cipher.Encrypt(encrypted[offset:offset+blockSize], plain[offset:offset+blockSize])
	}

	out := append([]byte{}, magicTag...)
	out = append(out, make([]byte, headerSize)...)
	return append(out, encrypted...)
}

func TestDecodeRoundTrip(t *testing.T) {
	payload := `{"Songs": {"SONG-ID": {"PlayedCount": 3}}}`
	path := filepath.Join(t.TempDir(), "save_PRFLDB")
	if err := os.WriteFile(path, encodeSave(t, payload), 0o644); err != nil {
		t.Fatalf("write save: %v", err)
	}

	value, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	root, ok := value.(map[string]any)
	if !ok {
		t.Fatalf("decoded value is %T, want object", value)
	}
	songs, ok := root["Songs"].(map[string]any)
	if !ok {
		t.Fatalf("Songs is %T, want object", root["Songs"])
	}
	entry, ok := songs["SONG-ID"].(map[string]any)
	if !ok {
		t.Fatalf("missing SONG-ID entry: %v", songs)
	}
	count, ok := entry["PlayedCount"].(json.Number)
	if !ok {
		t.Fatalf("PlayedCount is %T, want json.Number", entry["PlayedCount"])
	}
	if n, _ := count.Int64(); n != 3 {
		t.Errorf("PlayedCount = %v, want 3", count)
	}
}

func TestDecodeIgnoresTrailingBytesAfterFirstValue(t *testing.T) {
	// Real saves carry NUL padding and stray bytes after the first JSON
	// value. Only the first value counts.
	value, err := decodeBytes(encodeSave(t, "{\"ok\": true}\x00\x00garbage"))
	if err != nil {
		t.Fatalf("decodeBytes failed: %v", err)
	}
	root, ok := value.(map[string]any)
	if !ok || root["ok"] != true {
		t.Errorf("decoded value = %v", value)
	}
}

func TestDecodeBadMagic(t *testing.T) {
	_, err := decodeBytes([]byte("NOPE...........................may be long"))
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error is %T, want *DecodeError", err)
	}
	if decodeErr.Stage != StageMagic {
		t.Errorf("Stage = %q, want %q", decodeErr.Stage, StageMagic)
	}
}

func TestDecodeTruncatedHeader(t *testing.T) {
	_, err := decodeBytes([]byte("EVAS1234"))
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error is %T, want *DecodeError", err)
	}
	if decodeErr.Stage != StageMagic {
		t.Errorf("Stage = %q, want %q", decodeErr.Stage, StageMagic)
	}
}

func TestDecodeEmptyPayload(t *testing.T) {
	data := append([]byte{}, magicTag...)
	data = append(data, make([]byte, headerSize)...)
	_, err := decodeBytes(data)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error is %T, want *DecodeError", err)
	}
	if decodeErr.Stage != StageDecrypt {
		t.Errorf("Stage = %q, want %q", decodeErr.Stage, StageDecrypt)
	}
}

func TestDecodeGarbageCiphertext(t *testing.T) {
	data := append([]byte{}, magicTag...)
	data = append(data, make([]byte, headerSize)...)
	data = append(data, bytes.Repeat([]byte{0xAB}, 2*blockSize)...)
	_, err := decodeBytes(data)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error is %T, want *DecodeError", err)
	}
	if decodeErr.Stage != StageDecompress {
		t.Errorf("Stage = %q, want %q", decodeErr.Stage, StageDecompress)
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := decodeBytes(encodeSave(t, "not json at all"))
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error is %T, want *DecodeError", err)
	}
	if decodeErr.Stage != StageParse {
		t.Errorf("Stage = %q, want %q", decodeErr.Stage, StageParse)
	}
}

func TestLocateNewestSave(t *testing.T) {
	userdata := t.TempDir()
	oldRemote := filepath.Join(userdata, "111", gameAppID, "remote")
	newRemote := filepath.Join(userdata, "222", gameAppID, "remote")
	for _, dir := range []string{oldRemote, newRemote} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	oldSave := filepath.Join(oldRemote, "AAA_PRFLDB")
	newSave := filepath.Join(newRemote, "BBB_PRFLDB")
	for _, path := range []string{oldSave, newSave} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write save: %v", err)
		}
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(oldSave, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	// A non-save file in the same directory must never be picked.
	if err := os.WriteFile(filepath.Join(newRemote, "crowd_settings.ini"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write noise file: %v", err)
	}

	got, err := Locate(userdata)
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if got != newSave {
		t.Errorf("Locate = %s, want %s", got, newSave)
	}
}

func TestLocateNoSave(t *testing.T) {
	userdata := t.TempDir()
	if err := os.MkdirAll(filepath.Join(userdata, "111", gameAppID, "remote"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	_, err := Locate(userdata)
	if !errors.Is(err, ErrNoSaveFile) {
		t.Errorf("error = %v, want ErrNoSaveFile", err)
	}
}

func TestLocateMissingUserdata(t *testing.T) {
	_, err := Locate(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ErrNoSaveFile) {
		t.Errorf("error = %v, want ErrNoSaveFile", err)
	}
}
