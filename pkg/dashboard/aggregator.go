package dashboard

import (
	"context"
	"time"

	"github.com/watertrack/jjmd/pkg/schema"
)

// OverallStats is the fixed-shape aggregate over all states. Absence of
// data yields all-zero values, never an error.
type OverallStats struct {
	TotalHouseholds     int64   `json:"total_households"`
	HouseholdsWithTap   int64   `json:"households_with_tap"`
	CoveragePct         float64 `json:"coverage_percentage"`
	ConnectionsProvided int64   `json:"connections_provided"`
}

// StateCoverage is one ranking row: a state joined with its household
// statistics.
type StateCoverage struct {
	StateName         string  `json:"state_name"`
	HouseholdsWithTap int64   `json:"households_with_tap_water_current"`
	CoveragePct       float64 `json:"households_with_tap_water_current_pct"`
}

// ComprehensiveRow is one row of the canonical dataset: a left-outer
// join of states with household stats and water connections. States
// without statistics appear with nil fields.
type ComprehensiveRow struct {
	StateID                          uint     `json:"state_id"`
	StateName                        string   `json:"state_name"`
	TotalRuralHouseholds             *int64   `json:"total_rural_households"`
	HouseholdsWithTapWaterCurrent    *int64   `json:"households_with_tap_water_current"`
	HouseholdsWithTapWaterCurrentPct *float64 `json:"households_with_tap_water_current_pct"`
	TapWaterConnectionsProvided      *int64   `json:"tap_water_connections_provided"`
	TapWaterConnectionsProvidedPct   *float64 `json:"tap_water_connections_provided_pct"`
}

// ProgressRow is one historical snapshot joined with its state name.
type ProgressRow struct {
	StateName                 string    `json:"state_name"`
	Date                      time.Time `json:"year"`
	HouseholdsWithTapWater    int64     `json:"households_with_tap_water"`
	HouseholdsWithTapWaterPct float64   `json:"households_with_tap_water_pct"`
}

// Aggregator computes summary and ranking views over the stored
// statistics without mutating anything. Every method wraps its store
// access in a bounded retry: three attempts with exponential backoff
// starting at 0.5s and doubling; the last failure propagates after the
// attempts are exhausted.
type Aggregator interface {
	// Overall sums households and connections across all states.
	// An empty store yields the zero OverallStats.
	Overall(ctx context.Context) (*OverallStats, error)

	// TopStates returns up to count states ordered descending by
	// coverage percentage (byCoverage) or by absolute tap-water count.
	// Ties break ascending by state name.
	TopStates(ctx context.Context, count int, byCoverage bool) ([]StateCoverage, error)

	// BottomStates returns up to count states ordered ascending by
	// coverage percentage, excluding states already at 100%.
	BottomStates(ctx context.Context, count int) ([]StateCoverage, error)

	// ComprehensiveData returns the canonical dataset feeding charts
	// and reports, ordered by state name.
	ComprehensiveData(ctx context.Context) ([]ComprehensiveRow, error)

	// States lists all states ordered by name. Readable by any
	// authenticated role.
	States(ctx context.Context) ([]schema.StateUT, error)

	// HistoricalProgress returns all snapshots joined with state
	// names, ordered by state name then date.
	HistoricalProgress(ctx context.Context) ([]ProgressRow, error)
}
