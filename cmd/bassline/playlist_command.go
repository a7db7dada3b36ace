package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bassline/internal/catalog"
	"bassline/internal/recommend"
	"bassline/internal/services/jellyfin"
)

func newPlaylistCommand(ctx *commandContext) *cobra.Command {
	var name string
	var count int
	var zoneName string
	var savePath string

	cmd := &cobra.Command{
		Use:   "playlist",
		Short: "Create a Jellyfin playlist from the current recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			client, err := jellyfin.NewClient(cfg, ctx.logger())
			if err != nil {
				return fmt.Errorf("jellyfin: %w (set jellyfin.enabled, url, and api_key in the config)", err)
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

			cat, err := catalog.Load(cfg.CatalogPath())
			if err != nil {
				return err
			}
			if cat.Count() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No catalog found. Run 'bassline scan' first.")
				return nil
			}

			player, err := ctx.loadPlayerProfile(cmd.Context(), savePath, false)
			if err != nil {
				return err
			}

			_, _, recs := recommend.Recommend(cat, player, opts, ctx.logger())
			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recommendations to build a playlist from.")
				return nil
			}

			userID, err := client.FirstUserID(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var itemIDs []string
			for _, rec := range recs {
				itemID, found, err := client.SearchSong(cmd.Context(), userID, rec.Song.Artist, rec.Song.Title)
				if err != nil {
					return err
				}
				if !found {
					fmt.Fprintf(out, "  not found: %s - %s\n", rec.Song.Artist, rec.Song.Title)
					continue
				}
				fmt.Fprintf(out, "  found: %s - %s\n", rec.Song.Artist, rec.Song.Title)
				itemIDs = append(itemIDs, itemID)
			}
			if len(itemIDs) == 0 {
				return fmt.Errorf("none of the recommended songs exist in the Jellyfin library")
			}

			playlistID, err := client.CreatePlaylist(cmd.Context(), userID, name, itemIDs)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Playlist created: %s (%d songs, id %s)\n", name, len(itemIDs), playlistID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "Bassline Practice", "Playlist name")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of recommendations (default from config)")
	cmd.Flags().StringVar(&zoneName, "zone", "", "Only include one zone")
	cmd.Flags().StringVar(&savePath, "save-file", "", "Save file path (default: newest under Steam userdata)")
	return cmd
}
