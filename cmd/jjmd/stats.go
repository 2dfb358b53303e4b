package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/watertrack/jjmd/internal/iodb"
	"github.com/watertrack/jjmd/internal/iostats"
	"github.com/watertrack/jjmd/pkg/db"
)

var (
	statsTop     int
	statsBottom  int
	statsByCount bool
)

func getStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show coverage statistics",
		Long: `Show overall tap-water coverage and per-state rankings.

The top ranking orders states by coverage percentage; the bottom
ranking lists the states furthest behind, excluding states already at
full coverage.

Examples:
  jjmd stats
  jjmd stats --top 10 --bottom 10
  jjmd stats --top 10 --by-count`,
		RunE: runStats,
	}

	cmd.Flags().IntVar(&statsTop, "top", 5,
		"number of leading states to list")
	cmd.Flags().IntVar(&statsBottom, "bottom", 5,
		"number of lagging states to list")
	cmd.Flags().BoolVar(&statsByCount, "by-count", false,
		"rank the top states by household count instead of coverage")

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
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

	fmt.Println("Overall coverage")
	fmt.Printf("  Rural households:     %s\n",
		humanize.Comma(overall.TotalHouseholds))
	fmt.Printf("  With tap water:       %s\n",
		humanize.Comma(overall.HouseholdsWithTap))
	fmt.Printf("  Coverage:             %.2f%%\n", overall.CoveragePct)
	fmt.Printf("  Connections provided: %s\n",
		humanize.Comma(overall.ConnectionsProvided))

	if statsTop > 0 {
		top, err := agg.TopStates(ctx, statsTop, !statsByCount)
		if err != nil {
			return err
		}
		ranking := "coverage"
		if statsByCount {
			ranking = "household count"
		}
		fmt.Printf("\nTop %d states by %s\n", statsTop, ranking)
		for i, s := range top {
			fmt.Printf("  %2d. %-30s %7s households  %6.2f%%\n",
				i+1, s.StateName,
				humanize.Comma(s.HouseholdsWithTap), s.CoveragePct)
		}
	}

	if statsBottom > 0 {
		bottom, err := agg.BottomStates(ctx, statsBottom)
		if err != nil {
			return err
		}
		fmt.Printf("\nBottom %d states by coverage (excluding 100%%)\n",
			statsBottom)
		for i, s := range bottom {
			fmt.Printf("  %2d. %-30s %7s households  %6.2f%%\n",
				i+1, s.StateName,
				humanize.Comma(s.HouseholdsWithTap), s.CoveragePct)
		}
	}

	return nil
}
