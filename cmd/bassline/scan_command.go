package main

import (
	"fmt"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"bassline/internal/catalog"
	"bassline/internal/scanner"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var force bool
	var dirs []string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan PSARC archives and update the song catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			// The catalog document assumes a single writer; hold the data-dir
			// lock for the whole read-modify-write cycle.
			lock := flock.New(cfg.LockPath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire scan lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another bassline scan is already running (lock: %s)", cfg.LockPath())
			}
			defer lock.Unlock()

			scanDirs, err := ctx.archiveDirs(dirs)
			if err != nil {
				return err
			}

			existing, err := catalog.Load(cfg.CatalogPath())
			if err != nil {
				return err
			}

			extractor, err := ctx.extractor()
			if err != nil {
				return err
			}

			sync := scanner.NewSynchronizer(extractor, ctx.logger())
			updated, stats, err := sync.Sync(cmd.Context(), scanDirs, force, existing)
			if err != nil {
				return err
			}
			if err := updated.Save(cfg.CatalogPath()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Catalog saved: %d bass songs -> %s\n", updated.Count(), cfg.CatalogPath())
			fmt.Fprintf(out, "Archives: %d scanned, %d unchanged, %d without bass, %d failed\n",
				stats.Scanned, stats.Skipped, stats.NoBass, stats.Errors)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Re-scan all archives, ignoring cached modification times")
	cmd.Flags().StringArrayVar(&dirs, "dir", nil, "Archive directory to scan (repeatable; overrides config)")
	return cmd
}
