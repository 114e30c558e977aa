package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minase-lab/pdfshelf/internal/batch"
	"github.com/minase-lab/pdfshelf/internal/classify"
	"github.com/minase-lab/pdfshelf/internal/ocr"
	"github.com/minase-lab/pdfshelf/internal/paths"
	"github.com/minase-lab/pdfshelf/internal/pdftext"
)

var convertFlags struct {
	name       string
	years      string
	lang       string
	optimize   int
	jobs       int
	rotate     bool
	sidecar    bool
	overwrite  bool
	exportText bool
	dryRun     bool
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "OCR-convert image PDFs under the PDF root",
	RunE: func(cmd *cobra.Command, args []string) error {
		files := paths.EnumeratePDFs(roots.PDF)
		files = paths.FilterByName(files, convertFlags.name)
		if convertFlags.years != "" {
			files = paths.FilterByYears(files, roots.PDF, strings.Split(convertFlags.years, ","))
		}
		if len(files) == 0 {
			fmt.Println("no PDFs found")
			return nil
		}

		converter := batch.NewConverter(
			classify.New(classify.Config{}, logger),
			ocr.NewEngine(ocr.Config{}, logger),
			logger,
		)

		tasks, err := converter.Plan(files, roots, convertFlags.overwrite)
		if err != nil {
			return err
		}
		fmt.Printf("planned %d conversion(s)\n", len(tasks))
		for _, t := range tasks {
			fmt.Printf("  %-24s %s -> %s (%d pages)\n", t.Status, t.SourceRel, t.DestRel, t.Pages)
		}
		if convertFlags.dryRun || len(tasks) == 0 {
			return nil
		}

		opts := ocr.Options{
			Language:    convertFlags.lang,
			Optimize:    convertFlags.optimize,
			Jobs:        convertFlags.jobs,
			RotatePages: convertFlags.rotate,
		}
		summary := converter.Execute(cmd.Context(), tasks, opts, convertFlags.sidecar)
		for _, line := range summary.Log {
			fmt.Println(line)
		}
		fmt.Printf("converted %d / failed %d / skipped %d\n",
			summary.Succeeded, summary.Failed, summary.Skipped)

		if convertFlags.exportText {
			exporter := batch.NewExporter(pdftext.NewExtractor(logger), logger)
			es, err := exporter.Export(files, roots)
			if err != nil {
				return err
			}
			fmt.Printf("text export: saved %d / skipped %d / failed %d\n",
				es.Succeeded, es.Skipped, es.Failed)
		}
		return nil
	},
}

func init() {
	f := convertCmd.Flags()
	f.StringVar(&convertFlags.name, "name", "", "keep files whose name contains this substring")
	f.StringVar(&convertFlags.years, "years", "", "comma-separated year folders to keep (e.g. 2024,2025)")
	f.StringVar(&convertFlags.lang, "lang", "jpn+eng", "tesseract language spec")
	f.IntVar(&convertFlags.optimize, "optimize", 1, "output optimization level 0..3")
	f.IntVar(&convertFlags.jobs, "jobs", 2, "OCR parallelism")
	f.BoolVar(&convertFlags.rotate, "rotate", true, "auto-rotate pages")
	f.BoolVar(&convertFlags.sidecar, "sidecar", true, "save recognized text sidecars")
	f.BoolVar(&convertFlags.overwrite, "overwrite", false, "re-convert even when output exists")
	f.BoolVar(&convertFlags.exportText, "export-text", false, "also persist .txt renditions after converting")
	f.BoolVar(&convertFlags.dryRun, "dry-run", false, "plan only, convert nothing")
	rootCmd.AddCommand(convertCmd)
}
