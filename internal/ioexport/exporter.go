// Package ioexport writes the comprehensive dataset to disk as CSV,
// XLSX and a narrative text report. The dataset is fetched once and the
// three files are written concurrently.
package ioexport

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/watertrack/jjmd/pkg/dashboard"
	"github.com/watertrack/jjmd/pkg/report"
)

// File names of the three export artifacts.
const (
	CSVFileName       = "jal_jeevan_mission_data.csv"
	ExcelFileName     = "jal_jeevan_mission_data.xlsx"
	NarrativeFileName = "jal_jeevan_mission_report.txt"
)

// Result lists the files an export produced.
type Result struct {
	CSVPath       string
	ExcelPath     string
	NarrativePath string
	Rows          int
}

// Exporter renders the comprehensive dataset into report files.
type Exporter struct {
	aggregator dashboard.Aggregator
}

// NewExporter creates a new Exporter over the given aggregator.
func NewExporter(agg dashboard.Aggregator) *Exporter {
	return &Exporter{aggregator: agg}
}

// Export fetches the comprehensive dataset once and writes all three
// formats into dir.
func (e *Exporter) Export(ctx context.Context, dir string) (*Result, error) {
	rows, err := e.aggregator.ComprehensiveData(ctx)
	if err != nil {
		return nil, err
	}

	table := TableFromComprehensive(rows)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, WriteError(dir, err)
	}

	res := &Result{
		CSVPath:       filepath.Join(dir, CSVFileName),
		ExcelPath:     filepath.Join(dir, ExcelFileName),
		NarrativePath: filepath.Join(dir, NarrativeFileName),
		Rows:          len(table.Rows),
	}

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		csv, err := report.ToCSV(table)
		if err != nil {
			return WriteError(res.CSVPath, err)
		}
		if err := os.WriteFile(res.CSVPath, []byte(csv), 0644); err != nil {
			return WriteError(res.CSVPath, err)
		}
		return nil
	})

	g.Go(func() error {
		xlsx, err := report.ToExcel(table)
		if err != nil {
			return WriteError(res.ExcelPath, err)
		}
		if err := os.WriteFile(res.ExcelPath, xlsx, 0644); err != nil {
			return WriteError(res.ExcelPath, err)
		}
		return nil
	})

	g.Go(func() error {
		text := report.Narrative(table, "Jal Jeevan Mission Report")
		err := os.WriteFile(res.NarrativePath, []byte(text), 0644)
		if err != nil {
			return WriteError(res.NarrativePath, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("Exported dataset",
		"rows", res.Rows, "dir", dir)
	return res, nil
}

// TableFromComprehensive flattens the canonical dataset into the column
// layout shared by all export formats. Missing statistics stay nil and
// render as empty cells or "N/A" depending on the format.
func TableFromComprehensive(rows []dashboard.ComprehensiveRow) report.Table {
	t := report.Table{
		Columns: []string{
			"state_name",
			"total_rural_households",
			"households_with_tap_water_current",
			"households_with_tap_water_current_pct",
			"tap_water_connections_provided",
			"tap_water_connections_provided_pct",
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.StateName,
			r.TotalRuralHouseholds,
			r.HouseholdsWithTapWaterCurrent,
			r.HouseholdsWithTapWaterCurrentPct,
			r.TapWaterConnectionsProvided,
			r.TapWaterConnectionsProvidedPct,
		})
	}
	return t
}
