// Package iostats implements the Aggregator interface: read-only
// summary and ranking queries over the stored statistics. Reads are
// wrapped in a bounded retry because the dashboard keeps serving while
// the store restarts or fails over.
package iostats

import (
	"context"

	"gorm.io/gorm"

	"github.com/watertrack/jjmd/internal/iodb"
	"github.com/watertrack/jjmd/pkg/dashboard"
	"github.com/watertrack/jjmd/pkg/db"
	"github.com/watertrack/jjmd/pkg/schema"
)

// aggregator implements dashboard.Aggregator.
type aggregator struct {
	operator db.Operator
	retry    retryPolicy
}

// NewAggregator creates a new Aggregator.
func NewAggregator(op db.Operator) dashboard.Aggregator {
	return &aggregator{operator: op, retry: defaultRetryPolicy()}
}

func (a *aggregator) db(ctx context.Context) (*gorm.DB, error) {
	gormDB := a.operator.DB()
	if gormDB == nil {
		return nil, iodb.NotConnectedError()
	}
	return gormDB.WithContext(ctx), nil
}

// Overall sums households and connections across all states. COALESCE
// keeps the sums at zero instead of NULL when tables are empty.
func (a *aggregator) Overall(
	ctx context.Context,
) (*dashboard.OverallStats, error) {
	gormDB, err := a.db(ctx)
	if err != nil {
		return nil, err
	}

	var stats dashboard.OverallStats
	err = a.retry.do(ctx, "overall stats", func() error {
		var hh struct {
			Total   int64
			Current int64
		}
		err := gormDB.Model(&schema.HouseholdStats{}).
			Select("COALESCE(SUM(total_rural_households), 0) AS total, " +
				"COALESCE(SUM(households_with_tap_water_current), 0) AS current").
			Scan(&hh).Error
		if err != nil {
			return err
		}

		var connections int64
		err = gormDB.Model(&schema.WaterConnections{}).
			Select("COALESCE(SUM(tap_water_connections_provided), 0)").
			Scan(&connections).Error
		if err != nil {
			return err
		}

		stats = dashboard.OverallStats{
			TotalHouseholds:     hh.Total,
			HouseholdsWithTap:   hh.Current,
			CoveragePct:         dashboard.CalculatePercentage(hh.Total, hh.Current),
			ConnectionsProvided: connections,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// TopStates returns up to count states ranked descending by coverage
// percentage or by absolute tap-water households. Ties break ascending
// by state name so rankings are stable.
func (a *aggregator) TopStates(
	ctx context.Context,
	count int,
	byCoverage bool,
) ([]dashboard.StateCoverage, error) {
	gormDB, err := a.db(ctx)
	if err != nil {
		return nil, err
	}

	order := "household_stats.households_with_tap_water_current DESC"
	if byCoverage {
		order = "household_stats.households_with_tap_water_current_pct DESC"
	}

	var rows []dashboard.StateCoverage
	err = a.retry.do(ctx, "top states", func() error {
		rows = nil
		return gormDB.Model(&schema.HouseholdStats{}).
			Select("states_uts.state_name, "+
				"household_stats.households_with_tap_water_current AS households_with_tap, "+
				"household_stats.households_with_tap_water_current_pct AS coverage_pct").
			Joins("JOIN states_uts ON states_uts.state_id = household_stats.state_id").
			Order(order + ", states_uts.state_name ASC").
			Limit(count).
			Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// BottomStates returns up to count states ranked ascending by coverage
// percentage. States already at full coverage are excluded; they are
// not "behind" in any useful sense.
func (a *aggregator) BottomStates(
	ctx context.Context,
	count int,
) ([]dashboard.StateCoverage, error) {
	gormDB, err := a.db(ctx)
	if err != nil {
		return nil, err
	}

	var rows []dashboard.StateCoverage
	err = a.retry.do(ctx, "bottom states", func() error {
		rows = nil
		return gormDB.Model(&schema.HouseholdStats{}).
			Select("states_uts.state_name, "+
				"household_stats.households_with_tap_water_current AS households_with_tap, "+
				"household_stats.households_with_tap_water_current_pct AS coverage_pct").
			Joins("JOIN states_uts ON states_uts.state_id = household_stats.state_id").
			Where("household_stats.households_with_tap_water_current_pct < ?", 100.0).
			Order("household_stats.households_with_tap_water_current_pct ASC, " +
				"states_uts.state_name ASC").
			Limit(count).
			Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ComprehensiveData returns the canonical dataset feeding charts and
// reports: every state left-joined with its statistics, ordered by
// state name. States without data appear with NULL statistic columns.
func (a *aggregator) ComprehensiveData(
	ctx context.Context,
) ([]dashboard.ComprehensiveRow, error) {
	gormDB, err := a.db(ctx)
	if err != nil {
		return nil, err
	}

	var rows []dashboard.ComprehensiveRow
	err = a.retry.do(ctx, "comprehensive data", func() error {
		rows = nil
		return gormDB.Model(&schema.StateUT{}).
			Select("states_uts.state_id, states_uts.state_name, " +
				"household_stats.total_rural_households, " +
				"household_stats.households_with_tap_water_current, " +
				"household_stats.households_with_tap_water_current_pct, " +
				"water_connections.tap_water_connections_provided, " +
				"water_connections.tap_water_connections_provided_pct").
			Joins("LEFT JOIN household_stats ON " +
				"household_stats.state_id = states_uts.state_id").
			Joins("LEFT JOIN water_connections ON " +
				"water_connections.state_id = states_uts.state_id").
			Order("states_uts.state_name ASC").
			Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// States lists all states ordered by name.
func (a *aggregator) States(
	ctx context.Context,
) ([]schema.StateUT, error) {
	gormDB, err := a.db(ctx)
	if err != nil {
		return nil, err
	}

	var states []schema.StateUT
	err = a.retry.do(ctx, "states", func() error {
		states = nil
		return gormDB.Order("state_name ASC").Find(&states).Error
	})
	if err != nil {
		return nil, err
	}
	return states, nil
}

// HistoricalProgress returns all snapshots joined with state names,
// ordered by state name then date.
func (a *aggregator) HistoricalProgress(
	ctx context.Context,
) ([]dashboard.ProgressRow, error) {
	gormDB, err := a.db(ctx)
	if err != nil {
		return nil, err
	}

	var rows []dashboard.ProgressRow
	err = a.retry.do(ctx, "historical progress", func() error {
		rows = nil
		return gormDB.Model(&schema.HistoricalProgress{}).
			Select("states_uts.state_name, " +
				"historical_progress.year AS date, " +
				"historical_progress.households_with_tap_water, " +
				"historical_progress.households_with_tap_water_pct").
			Joins("JOIN states_uts ON " +
				"states_uts.state_id = historical_progress.state_id").
			Order("states_uts.state_name ASC, historical_progress.year ASC").
			Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
