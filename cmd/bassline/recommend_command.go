package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bassline/internal/catalog"
	"bassline/internal/recommend"
	"bassline/internal/techniques"
)

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	var count int
	var zoneName string
	var techniqueFilter string
	var savePath string
	var forceMap bool

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend songs slightly harder than your comfort zone",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			opts := recommend.Options{Count: count}
			if opts.Count <= 0 {
				opts.Count = cfg.Recommend.Count
			}
			if zoneName != "" {
				zone, ok := recommend.ParseZone(zoneName)
				if !ok {
					return fmt.Errorf("unknown zone %q (choose warm-up, growth, challenge, or reach)", zoneName)
				}
				opts.Zone = zone
			}
			if techniqueFilter != "" {
				if !techniques.Known(techniqueFilter) {
					return fmt.Errorf("unknown technique %q (available: %s)",
						techniqueFilter, strings.Join(techniques.Sorted(), ", "))
				}
				opts.Technique = techniqueFilter
			}

			cat, err := catalog.Load(cfg.CatalogPath())
			if err != nil {
				return err
			}
			if cat.Count() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No catalog found. Run 'bassline scan' first.")
				return nil
			}

			player, err := ctx.loadPlayerProfile(cmd.Context(), savePath, forceMap)
			if err != nil {
				return err
			}

			ceiling, bounds, recs := recommend.Recommend(cat, player, opts, ctx.logger())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Comfort ceiling: %.2f\n", ceiling)
			for _, zone := range recommend.ZoneOrder {
				zb := bounds[zone]
				fmt.Fprintf(out, "  %-9s [%.2f, %.2f)\n", zone, zb.Lo, zb.Hi)
			}

			if len(recs) == 0 {
				fmt.Fprintln(out, "No recommendations matched. Play more songs or loosen the filters.")
				return nil
			}

			rows := make([][]string, 0, len(recs))
			for _, rec := range recs {
				rows = append(rows, []string{
					paintZone(string(rec.Zone)),
					rec.Song.Artist,
					rec.Song.Title,
					fmt.Sprintf("%.2f", rec.Song.DifficultyHard),
					fmt.Sprintf("%d", rec.PlayCount),
					fmt.Sprintf("%.0f", rec.Song.Tempo),
				})
			}
			headers := []string{"Zone", "Artist", "Song", "Diff", "Plays", "BPM"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight}
			fmt.Fprintln(out, renderTable("Recommendations", headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of recommendations (default from config)")
	cmd.Flags().StringVar(&zoneName, "zone", "", "Only recommend from one zone")
	cmd.Flags().StringVarP(&techniqueFilter, "technique", "t", "", "Only recommend songs with this technique")
	cmd.Flags().StringVar(&savePath, "save-file", "", "Save file path (default: newest under Steam userdata)")
	cmd.Flags().BoolVar(&forceMap, "rebuild-map", false, "Force a rebuild of the identifier map cache")
	return cmd
}
