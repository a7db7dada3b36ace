package scanner

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"bassline/internal/catalog"
	"bassline/internal/logging"
	"bassline/internal/psarc"
)

// Stats summarizes one synchronization run.
type Stats struct {
	Archives int
	Skipped  int
	Scanned  int
	NoBass   int
	Errors   int
}

// Synchronizer performs incremental catalog scans.
type Synchronizer struct {
	extractor psarc.Extractor
	logger    *slog.Logger
	now       func() time.Time
}

// NewSynchronizer constructs a Synchronizer around the given extractor.
func NewSynchronizer(extractor psarc.Extractor, logger *slog.Logger) *Synchronizer {
	return &Synchronizer{
		extractor: extractor,
		logger:    logging.NewComponentLogger(logger, "scanner"),
		now:       time.Now,
	}
}

// Sync scans the archive directories and returns the updated catalog.
// Archives whose modification time matches the existing catalog are skipped
// unless force is set. Individual archive failures are logged and counted,
// never propagated.
func (s *Synchronizer) Sync(ctx context.Context, dirs []string, force bool, existing catalog.Catalog) (catalog.Catalog, Stats, error) {
	logger := s.logger.With(logging.String(logging.FieldRunID, uuid.NewString()))

	archives := FindArchives(dirs)
	stats := Stats{Archives: len(archives)}
	if len(archives) == 0 {
		logging.WarnWithContext(logger, "no archives found", "scan_no_archives",
			logging.Any("dirs", dirs),
			logging.String(logging.FieldImpact, "catalog left unchanged"))
		return existing, stats, nil
	}

	// Index cached mtimes so unchanged archives can be skipped.
	cachedMTimes := make(map[string]int64)
	if !force {
		for _, entry := range existing.Songs {
			cachedMTimes[entry.ArchivePath] = entry.ArchiveMTime
		}
	}

	// Seed the dedup table from the existing catalog so untouched songs
	// survive the rebuild.
	merged := make(map[string]catalog.SongEntry, len(existing.Songs))
	for _, entry := range existing.Songs {
		merged[DedupKey(entry)] = entry
	}

	for _, archivePath := range archives {
		if err := ctx.Err(); err != nil {
			return catalog.Catalog{}, stats, err
		}

		info, err := os.Stat(archivePath)
		if err != nil {
			logger.Debug("stat archive failed",
				logging.String(logging.FieldArchive, filepath.Base(archivePath)),
				logging.Error(err))
			stats.Errors++
			continue
		}
		mtime := info.ModTime().UnixNano()

		if !force {
			if cached, ok := cachedMTimes[archivePath]; ok && cached == mtime {
				stats.Skipped++
				continue
			}
		}

		entries, err := s.extractor.Extract(ctx, archivePath)
		if err != nil {
			logger.Debug("archive extraction failed",
				logging.String(logging.FieldArchive, filepath.Base(archivePath)),
				logging.Error(err))
			stats.Errors++
			continue
		}
		stats.Scanned++

		attrs, ok := psarc.BassAttributes(entries)
		if !ok {
			// Not an error: the archive simply has no bass arrangement.
			stats.NoBass++
			continue
		}

		entry := entryFromAttributes(attrs, archivePath, mtime)
		key := DedupKey(entry)

		// A candidate claims the key when it is unclaimed or when the
		// candidate comes from a primary-platform archive. Secondary
		// variants never displace an existing holder, so the outcome does
		// not depend on processing order.
		if _, claimed := merged[key]; !claimed || isPrimaryPlatform(archivePath) {
			merged[key] = entry
		}
	}

	updated := catalog.New()
	updated.Version = existing.Version
	if updated.Version == 0 {
		updated.Version = catalog.Version
	}
	for _, entry := range merged {
		updated.Songs[entry.SongID] = entry
	}
	updated.ScannedAt = s.now().UTC()

	if stats.Errors > 0 {
		logging.WarnWithContext(logger, "some archives failed to scan", "scan_archive_errors",
			logging.Int("failed", stats.Errors),
			logging.String(logging.FieldErrorHint, "run with --verbose for per-archive details"),
			logging.String(logging.FieldImpact, "failed archives are missing from the catalog"))
	}
	logger.Info("scan complete",
		logging.Int("archives", stats.Archives),
		logging.Int("scanned", stats.Scanned),
		logging.Int("skipped", stats.Skipped),
		logging.Int("songs", updated.Count()))

	return updated, stats, nil
}
