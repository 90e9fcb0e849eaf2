package cmd

import (
	"context"
	"fmt"

	"github.com/janboddez/scrobbble-addon/internal/config"
	"github.com/janboddez/scrobbble-addon/internal/events"
	"github.com/janboddez/scrobbble-addon/internal/listens"
	"github.com/spf13/cobra"
)

var (
	enrichArtist   string
	enrichTitle    string
	enrichAlbum    string
	enrichMBID     string
	enrichListenID int64
	enrichLogLevel string
)

// enrichCmd represents the enrich command
var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich a single track",
	Long: `Run the full enrichment pipeline once for a single track.

Publishes a listen-saved event for the given track, then drains the
deferred task queue so cover-art work scheduled by the event also runs
before the command exits. Useful for backfilling and for testing
configuration.`,
	RunE: runEnrich,
}

func init() {
	rootCmd.AddCommand(enrichCmd)

	enrichCmd.Flags().StringVar(&enrichArtist, "artist", "", "Artist name (required)")
	enrichCmd.Flags().StringVar(&enrichTitle, "title", "", "Track title (required)")
	enrichCmd.Flags().StringVar(&enrichAlbum, "album", "", "Album title (required)")
	enrichCmd.Flags().StringVar(&enrichMBID, "mbid", "", "Recording MBID, if known")
	enrichCmd.Flags().Int64Var(&enrichListenID, "listen-id", 0, "Listen ID to attach metadata to")
	enrichCmd.Flags().StringVar(&enrichLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	_ = enrichCmd.MarkFlagRequired("artist")
	_ = enrichCmd.MarkFlagRequired("title")
	_ = enrichCmd.MarkFlagRequired("album")
}

func runEnrich(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := setupLogger("", enrichLogLevel)

	comps, err := buildComponents(cfg, logger)
	if err != nil {
		return err
	}
	defer comps.store.Close()

	ctx := context.Background()

	comps.bus.PublishListenSaved(ctx, events.ListenSaved{
		ListenID: enrichListenID,
		Track: listens.Track{
			Title:  enrichTitle,
			Artist: enrichArtist,
			Album:  enrichAlbum,
			MBID:   enrichMBID,
		},
	})

	// The release handler defers cover-art fetching; run it now.
	comps.sched.Drain(ctx)

	if enrichListenID != 0 {
		if ref := comps.renderer.CoverArt(ctx, enrichListenID); ref != "" {
			fmt.Println(ref)
		}
	}

	return nil
}
