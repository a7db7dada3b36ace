package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"bassline/internal/catalog"
)

func newProfileCommand(ctx *commandContext) *cobra.Command {
	var savePath string
	var forceMap bool

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show player progress from the game save file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			player, err := ctx.loadPlayerProfile(cmd.Context(), savePath, forceMap)
			if err != nil {
				return err
			}

			cat, err := catalog.Load(cfg.CatalogPath())
			if err != nil {
				return err
			}

			type row struct {
				artist string
				title  string
				badge  int
				plays  int
				ddAvg  float64
			}
			var rows []row
			for _, sp := range player.Songs {
				entry, ok := cat.Songs[sp.SongID]
				if !ok {
					continue
				}
				badge := sp.BadgeHard
				if sp.BadgeMaster > badge {
					badge = sp.BadgeMaster
				}
				rows = append(rows, row{
					artist: entry.Artist,
					title:  entry.Title,
					badge:  badge,
					plays:  sp.PlayCount,
					ddAvg:  sp.DDAvg,
				})
			}
			sort.Slice(rows, func(i, j int) bool {
				if rows[i].plays != rows[j].plays {
					return rows[i].plays > rows[j].plays
				}
				return rows[i].artist+rows[i].title < rows[j].artist+rows[j].title
			})

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Progress: %d songs tracked, %d competent, %d mastered\n",
				len(player.Songs), len(player.CompetentSongIDs()), len(player.MasteredSongIDs()))

			if len(rows) == 0 {
				fmt.Fprintln(out, "No played songs match the catalog. Run 'bassline scan' first.")
				return nil
			}

			tableRows := make([][]string, 0, len(rows))
			for _, r := range rows {
				tableRows = append(tableRows, []string{
					r.artist,
					r.title,
					fmt.Sprintf("%d", r.badge),
					fmt.Sprintf("%d", r.plays),
					fmt.Sprintf("%.2f", r.ddAvg),
				})
			}
			headers := []string{"Artist", "Song", "Badge", "Plays", "DD Avg"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight}
			fmt.Fprintln(out, renderTable("Player Progress", headers, tableRows, aligns))
			return nil
		},
	}

	cmd.Flags().StringVar(&savePath, "save-file", "", "Save file path (default: newest under Steam userdata)")
	cmd.Flags().BoolVar(&forceMap, "rebuild-map", false, "Force a rebuild of the identifier map cache")
	return cmd
}
