package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minase-lab/pdfshelf/internal/render"
)

var thumbFlags struct {
	width int
	out   string
}

var thumbCmd = &cobra.Command{
	Use:   "thumb <pdf>",
	Short: "Write a PNG thumbnail of a PDF's first page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := args[0]
		out := thumbFlags.out
		if out == "" {
			out = strings.TrimSuffix(src, filepath.Ext(src)) + ".png"
		}
		data, err := render.Thumbnail(src, thumbFlags.width)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d bytes)\n", out, len(data))
		return nil
	},
}

func init() {
	thumbCmd.Flags().IntVar(&thumbFlags.width, "width", 240, "thumbnail width in pixels")
	thumbCmd.Flags().StringVar(&thumbFlags.out, "out", "", "output path (default: alongside the PDF)")
	rootCmd.AddCommand(thumbCmd)
}
