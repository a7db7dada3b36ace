package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"bassline/internal/catalog"
	"bassline/internal/techniques"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	var techniqueFilter string
	var artistFilter string
	var sortBy string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the song catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			cat, err := catalog.Load(cfg.CatalogPath())
			if err != nil {
				return err
			}
			if cat.Count() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No catalog found. Run 'bassline scan' first.")
				return nil
			}

			songs := make([]catalog.SongEntry, 0, cat.Count())
			for _, song := range cat.Songs {
				songs = append(songs, song)
			}

			if techniqueFilter != "" {
				if !techniques.Known(techniqueFilter) {
					return fmt.Errorf("unknown technique %q (available: %s)",
						techniqueFilter, strings.Join(techniques.Sorted(), ", "))
				}
				filtered := songs[:0]
				for _, song := range songs {
					if song.Techniques[techniqueFilter] {
						filtered = append(filtered, song)
					}
				}
				songs = filtered
			}

			if artistFilter != "" {
				needle := strings.ToLower(artistFilter)
				filtered := songs[:0]
				for _, song := range songs {
					if strings.Contains(strings.ToLower(song.Artist), needle) {
						filtered = append(filtered, song)
					}
				}
				songs = filtered
			}

			switch sortBy {
			case "difficulty":
				sort.Slice(songs, func(i, j int) bool { return songs[i].DifficultyHard < songs[j].DifficultyHard })
			case "tempo":
				sort.Slice(songs, func(i, j int) bool { return songs[i].Tempo < songs[j].Tempo })
			case "name":
				sort.Slice(songs, func(i, j int) bool {
					a := strings.ToLower(songs[i].Artist + " " + songs[i].Title)
					b := strings.ToLower(songs[j].Artist + " " + songs[j].Title)
					return a < b
				})
			default:
				return fmt.Errorf("unknown sort order %q (choose name, difficulty, or tempo)", sortBy)
			}

			rows := make([][]string, 0, len(songs))
			for _, song := range songs {
				techs := song.TechniqueList()
				display := strings.Join(truncateList(techs, 4), ", ")
				if len(techs) > 4 {
					display += fmt.Sprintf(" +%d", len(techs)-4)
				}
				rows = append(rows, []string{
					song.Artist,
					song.Title,
					fmt.Sprintf("%.0f", song.Tempo),
					fmt.Sprintf("%.2f", song.DifficultyHard),
					fmt.Sprintf("%d", song.NotesHard),
					display,
					truncate(song.SectionSummary(), 40),
				})
			}

			title := fmt.Sprintf("Bass Catalog (%d songs)", len(songs))
			headers := []string{"Artist", "Song", "BPM", "Diff", "Notes", "Techniques", "Sections"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignLeft}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(title, headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().StringVarP(&techniqueFilter, "technique", "t", "", "Filter by technique name")
	cmd.Flags().StringVarP(&artistFilter, "artist", "a", "", "Filter by artist (substring)")
	cmd.Flags().StringVar(&sortBy, "sort", "name", "Sort order: name, difficulty, or tempo")
	return cmd
}

func truncateList(items []string, max int) []string {
	if len(items) <= max {
		return items
	}
	return items[:max]
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
