// Package idmap builds and caches the map from the game's internal per-song
// identifiers to catalog song identifiers.
//
// Rebuilding the map requires extracting every archive, so the result is
// cached as a versioned JSON document keyed by a hash of the archive set.
// Any addition, removal, or modification in the library changes the hash and
// forces a wholesale rebuild; the cache is never partially updated.
package idmap

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"bassline/internal/fileutil"
	"bassline/internal/logging"
	"bassline/internal/psarc"
	"bassline/internal/scanner"
)

// Version identifies the cache document format.
const Version = 1

type document struct {
	Version     int               `json:"version"`
	ArchiveHash string            `json:"archive_hash"`
	Map         map[string]string `json:"map"`
}

type hashEntry struct {
	Path  string `json:"path"`
	MTime int64  `json:"mtime"`
}

// Hash computes the cache key for the archive set under dirs: a SHA-256
// digest over the sorted (absolute path, mtime) pairs, serialized
// deterministically. Unreadable archives are left out of the digest.
func Hash(dirs []string) (string, error) {
	archives := scanner.FindArchives(dirs)
	entries := make([]hashEntry, 0, len(archives))
	for _, archivePath := range archives {
		abs, err := filepath.Abs(archivePath)
		if err != nil {
			return "", fmt.Errorf("resolve archive path: %w", err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			continue
		}
		entries = append(entries, hashEntry{Path: abs, MTime: info.ModTime().UnixNano()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	serialized, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("serialize archive set: %w", err)
	}
	digest := sha256.Sum256(serialized)
	return hex.EncodeToString(digest[:]), nil
}

// Builder loads or rebuilds the identifier map.
type Builder struct {
	path      string
	extractor psarc.Extractor
	logger    *slog.Logger
}

// NewBuilder constructs a Builder persisting its cache document at path.
func NewBuilder(path string, extractor psarc.Extractor, logger *slog.Logger) *Builder {
	return &Builder{
		path:      path,
		extractor: extractor,
		logger:    logging.NewComponentLogger(logger, "idmap"),
	}
}

// Build returns the internal-identifier to song-identifier map for the
// archives under dirs. A persisted cache whose hash matches the current
// archive set is returned as-is unless force is set; otherwise every archive
// is re-extracted and the new map is persisted with its hash. A single
// archive's failure is counted and skipped, never propagated.
func (b *Builder) Build(ctx context.Context, dirs []string, force bool) (map[string]string, error) {
	currentHash, err := Hash(dirs)
	if err != nil {
		return nil, err
	}

	if !force {
		if cached, ok := b.loadCached(currentHash); ok {
			b.logger.Debug("identifier map cache hit", logging.Int("entries", len(cached)))
			return cached, nil
		}
	}

	archives := scanner.FindArchives(dirs)
	if len(archives) == 0 {
		logging.WarnWithContext(b.logger, "no archives found for identifier map", "idmap_no_archives",
			logging.Any("dirs", dirs),
			logging.String(logging.FieldImpact, "player progress cannot be matched to songs"))
		return map[string]string{}, nil
	}

	full := make(map[string]string)
	failures := 0
	for _, archivePath := range archives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entries, err := b.extractor.Extract(ctx, archivePath)
		if err != nil {
			b.logger.Debug("identifier extraction failed",
				logging.String(logging.FieldArchive, filepath.Base(archivePath)),
				logging.Error(err))
			failures++
			continue
		}
		// Later archives win on identifier collisions.
		for pid, songID := range psarc.IdentifierPairs(entries) {
			full[pid] = songID
		}
	}

	if failures > 0 {
		logging.WarnWithContext(b.logger, "some archives failed during identifier map build", "idmap_archive_errors",
			logging.Int("failed", failures),
			logging.String(logging.FieldImpact, "progress for songs in failed archives will be dropped"))
	}

	if err := b.save(currentHash, full); err != nil {
		return nil, err
	}
	b.logger.Debug("identifier map rebuilt",
		logging.Int("entries", len(full)),
		logging.String("archive_hash", currentHash))
	return full, nil
}

func (b *Builder) loadCached(currentHash string) (map[string]string, bool) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			b.logger.Debug("identifier map cache unreadable", logging.Error(err))
		}
		return nil, false
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		b.logger.Debug("identifier map cache corrupt", logging.Error(err))
		return nil, false
	}
	if doc.ArchiveHash != currentHash {
		b.logger.Debug("identifier map cache stale",
			logging.String("cached_hash", doc.ArchiveHash),
			logging.String("current_hash", currentHash))
		return nil, false
	}
	if doc.Map == nil {
		doc.Map = make(map[string]string)
	}
	return doc.Map, true
}

func (b *Builder) save(hash string, m map[string]string) error {
	doc := document{Version: Version, ArchiveHash: hash, Map: m}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode identifier map: %w", err)
	}
	if err := fileutil.WriteFileAtomic(b.path, data, 0o644); err != nil {
		return fmt.Errorf("save identifier map: %w", err)
	}
	return nil
}
