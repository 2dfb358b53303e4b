package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"

	"github.com/watertrack/jjmd/internal/iodb"
	"github.com/watertrack/jjmd/internal/iostats"
	"github.com/watertrack/jjmd/pkg/chart"
	"github.com/watertrack/jjmd/pkg/dashboard"
	"github.com/watertrack/jjmd/pkg/db"
)

var chartsDir string

func getChartsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Write dashboard chart specifications as JSON",
		Long: `Build the dashboard chart specifications and write them as JSON
files ready for a plotly-compatible front end:

  gauge.json          overall coverage gauge
  state_progress.json per-state coverage bar chart
  top_states.json     pie of the five leading states
  bottom_states.json  pie of the states needing attention
  historical.json     per-state time series of snapshots

Examples:
  jjmd charts
  jjmd charts --dir web/static/charts`,
		RunE: runCharts,
	}

	cmd.Flags().StringVar(&chartsDir, "dir", ".",
		"directory to write chart JSON files into")

	return cmd
}

func runCharts(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	var op db.Operator = iodb.NewOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer op.Close()

	agg := iostats.NewAggregator(op)

	overall, err := agg.Overall(ctx)
	if err != nil {
		return err
	}
	comprehensive, err := agg.ComprehensiveData(ctx)
	if err != nil {
		return err
	}
	top, err := agg.TopStates(ctx, 5, true)
	if err != nil {
		return err
	}
	bottom, err := agg.BottomStates(ctx, 5)
	if err != nil {
		return err
	}
	progress, err := agg.HistoricalProgress(ctx)
	if err != nil {
		return err
	}

	specs := map[string]chart.Spec{
		"gauge.json": chart.Gauge(overall.CoveragePct,
			"Overall Coverage", 100),
		"state_progress.json": chart.StateProgressBar(
			statePcts(comprehensive),
			"State-wise Progress"),
		"top_states.json": chart.Pie(
			pieSlices(top),
			"Top 5 States by Coverage (%)"),
		"bottom_states.json": chart.Pie(
			pieSlices(bottom),
			"States Needing Attention (%)"),
		"historical.json": chart.TimeSeries(
			progressPoints(progress),
			"Historical Tap Water Coverage"),
	}

	if err := os.MkdirAll(chartsDir, 0755); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}

	enc := gnfmt.GNjson{Pretty: true}
	for name, spec := range specs {
		data, err := enc.Encode(spec)
		if err != nil {
			return fmt.Errorf("failed to encode chart %s: %w", name, err)
		}
		path := filepath.Join(chartsDir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write chart %s: %w", name, err)
		}
		fmt.Println("  " + path)
	}

	return nil
}

func statePcts(rows []dashboard.ComprehensiveRow) []chart.StatePct {
	var entries []chart.StatePct
	for _, r := range rows {
		if r.HouseholdsWithTapWaterCurrentPct == nil {
			continue
		}
		entries = append(entries, chart.StatePct{
			Name: r.StateName,
			Pct:  *r.HouseholdsWithTapWaterCurrentPct,
		})
	}
	return entries
}

func pieSlices(rows []dashboard.StateCoverage) []chart.LabelValue {
	var slices []chart.LabelValue
	for _, r := range rows {
		slices = append(slices, chart.LabelValue{
			Label: r.StateName,
			Value: r.CoveragePct,
		})
	}
	return slices
}

func progressPoints(rows []dashboard.ProgressRow) []chart.ProgressPoint {
	var points []chart.ProgressPoint
	for _, r := range rows {
		points = append(points, chart.ProgressPoint{
			StateName:  r.StateName,
			Date:       r.Date,
			Households: r.HouseholdsWithTapWater,
			Pct:        r.HouseholdsWithTapWaterPct,
		})
	}
	return points
}
