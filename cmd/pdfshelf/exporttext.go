package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minase-lab/pdfshelf/internal/batch"
	"github.com/minase-lab/pdfshelf/internal/paths"
	"github.com/minase-lab/pdfshelf/internal/pdftext"
)

var exportTextFlags struct {
	name  string
	years string
}

var exportTextCmd = &cobra.Command{
	Use:   "export-text",
	Short: "Persist .txt renditions for all PDFs (converted outputs preferred)",
	RunE: func(cmd *cobra.Command, args []string) error {
		files := paths.EnumeratePDFs(roots.PDF)
		files = paths.FilterByName(files, exportTextFlags.name)
		if exportTextFlags.years != "" {
			files = paths.FilterByYears(files, roots.PDF, strings.Split(exportTextFlags.years, ","))
		}

		exporter := batch.NewExporter(pdftext.NewExtractor(logger), logger)
		s, err := exporter.Export(files, roots)
		if err != nil {
			return err
		}
		fmt.Printf("text export: saved %d / skipped %d / failed %d\n",
			s.Succeeded, s.Skipped, s.Failed)
		return nil
	},
}

func init() {
	exportTextCmd.Flags().StringVar(&exportTextFlags.name, "name", "", "keep files whose name contains this substring")
	exportTextCmd.Flags().StringVar(&exportTextFlags.years, "years", "", "comma-separated year folders to keep")
	rootCmd.AddCommand(exportTextCmd)
}
