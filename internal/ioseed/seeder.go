// Package ioseed imports a YAML dataset into the store. Seeding goes
// through the RecordManager, so validation and upsert semantics are the
// same as for interactive edits and reruns of the same file are
// idempotent.
package ioseed

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"gopkg.in/yaml.v3"

	"github.com/watertrack/jjmd/pkg/dashboard"
	"github.com/watertrack/jjmd/pkg/errcode"
)

// Dataset is the root of a seed file.
type Dataset struct {
	States []StateSeed `yaml:"states"`
}

// StateSeed describes one state with its optional statistics.
type StateSeed struct {
	StateName          string                `yaml:"state_name"`
	HouseholdStats     *HouseholdStatsSeed   `yaml:"household_stats"`
	WaterConnections   *WaterConnectionsSeed `yaml:"water_connections"`
	HistoricalProgress []HistoricalSeed      `yaml:"historical_progress"`
}

// HouseholdStatsSeed mirrors the household statistics form. Pct is
// optional; when omitted it is derived from the counts.
type HouseholdStatsSeed struct {
	TotalRuralHouseholds          int64    `yaml:"total_rural_households"`
	HouseholdsWithTapWaterCurrent int64    `yaml:"households_with_tap_water_current"`
	Pct                           *float64 `yaml:"households_with_tap_water_current_pct"`
}

// WaterConnectionsSeed mirrors the water connections form.
type WaterConnectionsSeed struct {
	TapWaterConnectionsProvided int64    `yaml:"tap_water_connections_provided"`
	Pct                         *float64 `yaml:"tap_water_connections_provided_pct"`
}

// HistoricalSeed mirrors one historical snapshot.
type HistoricalSeed struct {
	Date                   string   `yaml:"date"`
	HouseholdsWithTapWater int64    `yaml:"households_with_tap_water"`
	Pct                    *float64 `yaml:"households_with_tap_water_pct"`
}

// Stats counts what a seed run touched.
type Stats struct {
	States    int
	Records   int
	Snapshots int
}

// Seeder imports datasets through the RecordManager.
type Seeder struct {
	records dashboard.RecordManager
	stats   dashboard.Aggregator
	// progress draws a terminal bar during long imports; off in tests.
	progress bool
}

// NewSeeder creates a Seeder. Mutations run as the given admin actor.
func NewSeeder(
	records dashboard.RecordManager,
	stats dashboard.Aggregator,
) *Seeder {
	return &Seeder{records: records, stats: stats, progress: true}
}

// NewQuietSeeder creates a Seeder without terminal progress output.
func NewQuietSeeder(
	records dashboard.RecordManager,
	stats dashboard.Aggregator,
) *Seeder {
	return &Seeder{records: records, stats: stats}
}

// SeedFile reads a YAML dataset from path and imports it.
func (s *Seeder) SeedFile(
	ctx context.Context,
	actor dashboard.Actor,
	path string,
) (*Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, SeedFileError(path, err)
	}

	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, SeedParseError(path, err)
	}

	return s.Seed(ctx, actor, &ds)
}

// Seed imports a parsed dataset. States that already exist are reused;
// statistics are upserted, so running the same dataset twice leaves the
// store unchanged.
func (s *Seeder) Seed(
	ctx context.Context,
	actor dashboard.Actor,
	ds *Dataset,
) (*Stats, error) {
	start := time.Now()
	stats := &Stats{}

	var bar *pb.ProgressBar
	if s.progress {
		bar = pb.Full.Start(len(ds.States))
		bar.Set("prefix", "Seeding states: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	for _, st := range ds.States {
		if err := s.seedState(ctx, actor, st, stats); err != nil {
			return nil, err
		}
		stats.States++
		if bar != nil {
			bar.Increment()
		}
	}

	slog.Info("Seeding complete",
		"states", stats.States,
		"records", stats.Records,
		"snapshots", stats.Snapshots,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return stats, nil
}

func (s *Seeder) seedState(
	ctx context.Context,
	actor dashboard.Actor,
	st StateSeed,
	stats *Stats,
) error {
	stateID, err := s.ensureState(ctx, actor, st.StateName)
	if err != nil {
		return err
	}

	if hs := st.HouseholdStats; hs != nil {
		pct := derivePct(hs.Pct,
			hs.TotalRuralHouseholds, hs.HouseholdsWithTapWaterCurrent)
		_, err = s.records.SaveHouseholdStats(ctx, actor,
			dashboard.HouseholdStatsInput{
				StateID:                          stateID,
				TotalRuralHouseholds:             hs.TotalRuralHouseholds,
				HouseholdsWithTapWaterCurrent:    hs.HouseholdsWithTapWaterCurrent,
				HouseholdsWithTapWaterCurrentPct: pct,
			})
		if err != nil {
			return err
		}
		stats.Records++
	}

	if wc := st.WaterConnections; wc != nil {
		var pct float64
		if wc.Pct != nil {
			pct = *wc.Pct
		}
		_, err = s.records.SaveWaterConnections(ctx, actor,
			dashboard.WaterConnectionsInput{
				StateID:                        stateID,
				TapWaterConnectionsProvided:    wc.TapWaterConnectionsProvided,
				TapWaterConnectionsProvidedPct: pct,
			})
		if err != nil {
			return err
		}
		stats.Records++
	}

	for _, hp := range st.HistoricalProgress {
		date, err := time.Parse("2006-01-02", hp.Date)
		if err != nil {
			return SeedDateError(st.StateName, hp.Date, err)
		}

		var pct float64
		if hp.Pct != nil {
			pct = *hp.Pct
		} else if st.HouseholdStats != nil {
			pct = dashboard.CalculatePercentage(
				st.HouseholdStats.TotalRuralHouseholds,
				hp.HouseholdsWithTapWater)
		}

		_, err = s.records.SaveHistoricalProgress(ctx, actor,
			dashboard.HistoricalProgressInput{
				StateID:                   stateID,
				Date:                      date,
				HouseholdsWithTapWater:    hp.HouseholdsWithTapWater,
				HouseholdsWithTapWaterPct: pct,
			})
		if err != nil {
			return err
		}
		stats.Snapshots++
	}

	return nil
}

// ensureState creates the state or resolves its id when it already
// exists.
func (s *Seeder) ensureState(
	ctx context.Context,
	actor dashboard.Actor,
	name string,
) (uint, error) {
	out, err := s.records.SaveState(ctx, actor,
		dashboard.StateInput{StateName: name})
	if err == nil {
		return out.StateID, nil
	}
	if !isConflict(err) {
		return 0, err
	}
	return s.findStateID(ctx, name)
}

// findStateID resolves the id of an existing state by name.
func (s *Seeder) findStateID(
	ctx context.Context, name string,
) (uint, error) {
	states, err := s.stats.States(ctx)
	if err != nil {
		return 0, err
	}
	for _, st := range states {
		if st.StateName == name {
			return st.StateID, nil
		}
	}
	return 0, SeedStateError(name)
}

// isConflict reports whether err is a duplicate-record rejection.
func isConflict(err error) bool {
	var gnErr *gn.Error
	if !errors.As(err, &gnErr) {
		return false
	}
	return gnErr.Code == errcode.RecordConflictError
}

func derivePct(pct *float64, total, current int64) float64 {
	if pct != nil {
		return *pct
	}
	return dashboard.CalculatePercentage(total, current)
}
