package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minase-lab/pdfshelf/internal/common"
	"github.com/minase-lab/pdfshelf/internal/ocr"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show resolved storage roots and OCR capabilities",
	Run: func(cmd *cobra.Command, args []string) {
		appRoot := common.AppRoot()
		fmt.Printf("app root      : %s\n", appRoot)
		fmt.Printf("settings      : %s\n", common.SettingsPath(appRoot))
		fmt.Printf("location      : %s\n", common.LoadSettings(appRoot).Location)
		fmt.Printf("pdf root      : %s\n", roots.PDF)
		fmt.Printf("converted root: %s\n", roots.Converted)
		fmt.Printf("text root     : %s\n", roots.Text)
		fmt.Printf("library root  : %s\n", roots.Library)

		caps := ocr.EnvCheck()
		fmt.Printf("ocr in-process: %s\n", mark(caps.InProcess))
		fmt.Printf("ocrmypdf cli  : %s\n", mark(caps.OCRmyPDFCLI))
		fmt.Printf("tesseract     : %s\n", mark(caps.Tesseract))
	},
}

func mark(ok bool) string {
	if ok {
		return "ok"
	}
	return "missing"
}

func init() {
	rootCmd.AddCommand(envCmd)
}
