package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minase-lab/pdfshelf/internal/catalog"
)

var searchFlags struct {
	workbook string
	sheet    string
	mode     string
	caseSens bool
	columns  bool
}

var searchCmd = &cobra.Command{
	Use:   "search [keywords...]",
	Short: "Keyword-search the library catalog workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := searchFlags.workbook
		if path == "" {
			var err error
			if path, err = catalog.DefaultWorkbook(roots.Library); err != nil {
				return err
			}
		}

		table, sheets, err := catalog.Load(path, searchFlags.sheet)
		if err != nil {
			return err
		}
		logger.Debug("catalog loaded", "workbook", path, "sheet", table.Sheet, "sheets", sheets, "rows", len(table.Rows))

		if searchFlags.columns {
			for role, idx := range table.InferColumns() {
				fmt.Printf("%-10s -> %s\n", role, table.Headers[idx])
			}
			return nil
		}

		mode := catalog.ModeAnd
		if strings.EqualFold(searchFlags.mode, string(catalog.ModeOr)) {
			mode = catalog.ModeOr
		}
		rows := table.Search(strings.Join(args, " "), mode, searchFlags.caseSens)

		fmt.Println(strings.Join(table.Headers, "\t"))
		for _, row := range rows {
			fmt.Println(strings.Join(row, "\t"))
		}
		fmt.Printf("%d row(s)\n", len(rows))
		return nil
	},
}

func init() {
	f := searchCmd.Flags()
	f.StringVar(&searchFlags.workbook, "workbook", "", "catalog workbook path (default: probe the library root)")
	f.StringVar(&searchFlags.sheet, "sheet", "", "sheet name (default: first sheet)")
	f.StringVar(&searchFlags.mode, "mode", "AND", "keyword combination: AND or OR")
	f.BoolVar(&searchFlags.caseSens, "case", false, "case-sensitive matching")
	f.BoolVar(&searchFlags.columns, "columns", false, "show inferred well-known columns and exit")
	rootCmd.AddCommand(searchCmd)
}
