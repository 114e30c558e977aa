package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minase-lab/pdfshelf/internal/classify"
	"github.com/minase-lab/pdfshelf/internal/paths"
)

var listClassify bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List PDFs under the PDF root",
	RunE: func(cmd *cobra.Command, args []string) error {
		files := paths.EnumeratePDFs(roots.PDF)
		if len(files) == 0 {
			fmt.Println("no PDFs found")
			return nil
		}

		var clf *classify.Classifier
		if listClassify {
			clf = classify.New(classify.Config{}, logger)
		}
		for _, f := range files {
			rel := paths.RelativeName(f, roots.PDF)
			if clf == nil {
				fmt.Println(rel)
				continue
			}
			var modTime int64
			if fi, err := os.Stat(f); err == nil {
				modTime = fi.ModTime().UnixNano()
			}
			info := clf.Classify(f, modTime)
			fmt.Printf("%-10s %3d pages  ratio %.2f  %s\n", info.Kind, info.TotalPages, info.TextPageRatio, rel)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listClassify, "classify", false, "classify each PDF as text or image")
	rootCmd.AddCommand(listCmd)
}
