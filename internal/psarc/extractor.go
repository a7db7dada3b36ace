package psarc

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"bassline/internal/logging"
)

// commandContext is swapped out by tests to avoid invoking a real unpacker.
var commandContext = exec.CommandContext

// Extractor lists an archive's internal JSON entries as path -> raw bytes.
type Extractor interface {
	Extract(ctx context.Context, archivePath string) (map[string][]byte, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, archivePath string) (map[string][]byte, error)

func (f ExtractorFunc) Extract(ctx context.Context, archivePath string) (map[string][]byte, error) {
	return f(ctx, archivePath)
}

// ToolExtractor runs an external unpacker binary to extract archive entries.
// The tool is invoked as `<bin> <args...> <archive> <dest-dir>` and must
// write the archive's JSON manifests under the destination directory.
type ToolExtractor struct {
	Bin    string
	Args   []string
	logger *slog.Logger
}

// NewToolExtractor constructs an extractor around the configured binary.
func NewToolExtractor(bin string, args []string, logger *slog.Logger) *ToolExtractor {
	return &ToolExtractor{
		Bin:    bin,
		Args:   append([]string(nil), args...),
		logger: logging.NewComponentLogger(logger, "psarc"),
	}
}

func (t *ToolExtractor) Extract(ctx context.Context, archivePath string) (map[string][]byte, error) {
	destDir, err := os.MkdirTemp("", "bassline-psarc-*")
	if err != nil {
		return nil, fmt.Errorf("create extraction directory: %w", err)
	}
	defer os.RemoveAll(destDir)

	args := append(append([]string(nil), t.Args...), archivePath, destDir)
	cmd := commandContext(ctx, t.Bin, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("run %s on %s: %w (%s)", t.Bin, filepath.Base(archivePath), err, tailOf(output))
	}

	entries := make(map[string][]byte)
	walkErr := filepath.WalkDir(destDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		rel, err := filepath.Rel(destDir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		entries[filepath.ToSlash(rel)] = data
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("collect extracted entries: %w", walkErr)
	}

	t.logger.Debug("extracted archive entries",
		logging.String(logging.FieldArchive, filepath.Base(archivePath)),
		logging.Int("entries", len(entries)))

	return entries, nil
}

func tailOf(output []byte) string {
	text := strings.TrimSpace(string(output))
	if text == "" {
		return "no output"
	}
	lines := strings.Split(text, "\n")
	if len(lines) > 3 {
		lines = lines[len(lines)-3:]
	}
	return strings.Join(lines, "; ")
}
