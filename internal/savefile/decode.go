package savefile

import (
	"bytes"
	"compress/zlib"
	"crypto/aes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Decode stages, in pipeline order.
const (
	StageMagic      = "magic"
	StageDecrypt    = "decrypt"
	StageDecompress = "decompress"
	StageParse      = "parse"
)

// DecodeError reports a save-file decode failure tagged with the pipeline
// stage that produced it.
type DecodeError struct {
	Stage string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode save file: %s: %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func stageErr(stage string, err error) error {
	return &DecodeError{Stage: stage, Err: err}
}

func stageErrf(stage, format string, args ...any) error {
	return &DecodeError{Stage: stage, Err: fmt.Errorf(format, args...)}
}

// magicTag opens every valid save file.
var magicTag = []byte("EVAS")

const (
	headerSize = 16
	blockSize  = 16
)

// saveKey is the fixed 256-bit key the game encrypts every save with.
var saveKey = mustKey("728B369E24ED0134768511021812AFC0A3C25D02065F166B4BCC58CD2644F29E")

func mustKey(hexKey string) []byte {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		panic("savefile: bad embedded key: " + err.Error())
	}
	return key
}

// Decode reads and decodes the save file at path into its raw progress JSON
// value. Any bytes after the first complete JSON value are ignored.
func Decode(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read save file: %w", err)
	}
	return decodeBytes(data)
}

func decodeBytes(data []byte) (any, error) {
	if len(data) < len(magicTag) {
		return nil, stageErrf(StageMagic, "unrecognized save format: file too short (%d bytes)", len(data))
	}
	if !bytes.Equal(data[:len(magicTag)], magicTag) {
		return nil, stageErrf(StageMagic, "unrecognized save format (magic=%q)", data[:len(magicTag)])
	}
	if len(data) < len(magicTag)+headerSize {
		return nil, stageErrf(StageMagic, "truncated save header (%d bytes)", len(data))
	}

	// The sixteen bytes after the magic are a fixed header with nothing the
	// decoder needs.
	payload := data[len(magicTag)+headerSize:]
	if remainder := len(payload) % blockSize; remainder != 0 {
		payload = payload[:len(payload)-remainder]
	}

	plain, err := decryptBlocks(payload)
	if err != nil {
		return nil, stageErr(StageDecrypt, err)
	}

	inflater, err := zlib.NewReader(bytes.NewReader(plain))
	if err != nil {
		return nil, stageErr(StageDecompress, err)
	}
	decompressed, err := io.ReadAll(inflater)
	if err != nil {
		return nil, stageErr(StageDecompress, err)
	}
	if err := inflater.Close(); err != nil {
		return nil, stageErr(StageDecompress, err)
	}

	text := strings.TrimRight(string(decompressed), "\x00")
	text = strings.TrimSpace(text)

	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, stageErr(StageParse, err)
	}
	return value, nil
}

// decryptBlocks decrypts each sixteen-byte block independently with the
// fixed key. The save format carries no chaining or IV; this is a property
// of the format, not a choice.
func decryptBlocks(payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("no ciphertext after header")
	}
	cipher, err := aes.NewCipher(saveKey)
	if err != nil {
		return nil, fmt.Errorf("initialize cipher: %w", err)
	}
	plain := make([]byte, len(payload))
	for offset := 0; offset < len(payload); offset += blockSize {
		cipher.Decrypt(plain[offset:offset+blockSize], payload[offset:offset+blockSize])
	}
	return plain, nil
}
