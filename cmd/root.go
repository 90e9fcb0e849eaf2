/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scrobbble-addon",
	Short: "Listen metadata and cover-art enrichment",
	Long: `scrobbble-addon enriches saved listens (scrobbles) with metadata from
MusicBrainz and locally cached cover art from the Cover Art Archive.

It runs as a background daemon that reacts to saved listens: tagging
them with genres, resolving the album they belong to and fetching
front-cover art into a content-hash-keyed local cache.

It also provides one-shot commands to enrich a single track and to look
up the cached cover for an artist/album pair.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags can be added here if needed
}
