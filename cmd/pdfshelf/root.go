package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/minase-lab/pdfshelf/internal/common"
	"github.com/minase-lab/pdfshelf/internal/paths"
)

var (
	verbose  bool
	location string

	logger *slog.Logger
	roots  paths.StorageRoots
)

var rootCmd = &cobra.Command{
	Use:   "pdfshelf",
	Short: "Browse, OCR-convert and text-index a folder tree of PDFs",
	Long: `pdfshelf manages a multi-root PDF shelf: it classifies documents as
text-bearing or image-only, converts image PDFs into searchable PDFs via
OCR, persists plain-text renditions, and searches the companion
spreadsheet catalog.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		if location != "" {
			// Same override surface as PDFSHELF_LOCATION.
			_ = os.Setenv("PDFSHELF_LOCATION", location)
		}
		appRoot := common.AppRoot()
		roots = paths.Resolve(appRoot, common.LoadSettings(appRoot), logger)
	},
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&location, "location", "", "named location overriding the settings file")
}
