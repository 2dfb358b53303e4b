package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/watertrack/jjmd/internal/iodb"
	"github.com/watertrack/jjmd/internal/ioexport"
	"github.com/watertrack/jjmd/internal/iostats"
	"github.com/watertrack/jjmd/pkg/db"
)

var exportDir string

func getExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the dataset as CSV, XLSX and a narrative report",
		Long: `Export the comprehensive dataset (every state with its household
statistics and water connections) in three formats:

  jal_jeevan_mission_data.csv     raw data, spreadsheet-friendly
  jal_jeevan_mission_data.xlsx    Excel workbook
  jal_jeevan_mission_report.txt   narrative report with totals

Examples:
  jjmd export
  jjmd export --dir reports/2024-q3`,
		RunE: runExport,
	}

	cmd.Flags().StringVar(&exportDir, "dir", ".",
		"directory to write export files into")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	var op db.Operator = iodb.NewOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer op.Close()

	exporter := ioexport.NewExporter(iostats.NewAggregator(op))
	res, err := exporter.Export(ctx, exportDir)
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d rows:\n", res.Rows)
	fmt.Println("  " + res.CSVPath)
	fmt.Println("  " + res.ExcelPath)
	fmt.Println("  " + res.NarrativePath)
	return nil
}
