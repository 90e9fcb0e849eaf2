package cmd

import (
	"context"
	"fmt"

	"github.com/janboddez/scrobbble-addon/internal/config"
	"github.com/spf13/cobra"
)

var (
	artArtist   string
	artAlbum    string
	artListenID int64
)

// artCmd represents the art command
var artCmd = &cobra.Command{
	Use:   "art",
	Short: "Look up cached cover art",
	Long: `Print the local reference of previously acquired cover art.

Looks up by listen ID when --listen-id is given, otherwise by the
content hash of --artist and --album. Prints nothing when no art has
been cached; that is not an error.`,
	RunE: runArt,
}

func init() {
	rootCmd.AddCommand(artCmd)

	artCmd.Flags().StringVar(&artArtist, "artist", "", "Artist name")
	artCmd.Flags().StringVar(&artAlbum, "album", "", "Album title")
	artCmd.Flags().Int64Var(&artListenID, "listen-id", 0, "Listen ID")
}

func runArt(cmd *cobra.Command, args []string) error {
	if artListenID == 0 && (artArtist == "" || artAlbum == "") {
		return fmt.Errorf("either --listen-id or both --artist and --album are required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := setupLogger("", "warn")

	comps, err := buildComponents(cfg, logger)
	if err != nil {
		return err
	}
	defer comps.store.Close()

	ctx := context.Background()

	var ref string
	if artListenID != 0 {
		ref = comps.renderer.CoverArt(ctx, artListenID)
	}
	if ref == "" && artArtist != "" && artAlbum != "" {
		ref = comps.renderer.CoverArtByTrack(ctx, artArtist, artAlbum)
	}

	if ref != "" {
		fmt.Println(ref)
	}

	return nil
}
