// Package iorecord implements the RecordManager interface. All
// mutations are admin-gated, validated before any store access, and
// executed in a single transaction that rolls back on failure. Writes
// are never retried.
package iorecord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/watertrack/jjmd/internal/iodb"
	"github.com/watertrack/jjmd/pkg/dashboard"
	"github.com/watertrack/jjmd/pkg/db"
	"github.com/watertrack/jjmd/pkg/schema"
)

// manager implements dashboard.RecordManager.
type manager struct {
	operator db.Operator
}

// NewManager creates a new RecordManager.
func NewManager(op db.Operator) dashboard.RecordManager {
	return &manager{operator: op}
}

// requireAdmin rejects non-admin actors before any store access.
func requireAdmin(actor dashboard.Actor) error {
	if actor.Role != schema.RoleAdmin {
		return AuthorizationError(actor.Username)
	}
	return nil
}

func (m *manager) db(ctx context.Context) (*gorm.DB, error) {
	gormDB := m.operator.DB()
	if gormDB == nil {
		return nil, iodb.NotConnectedError()
	}
	return gormDB.WithContext(ctx), nil
}

// SaveState creates a new state/UT.
func (m *manager) SaveState(
	ctx context.Context,
	actor dashboard.Actor,
	in dashboard.StateInput,
) (*dashboard.Outcome, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateState(in); err != nil {
		return nil, err
	}

	gormDB, err := m.db(ctx)
	if err != nil {
		return nil, err
	}

	state := schema.StateUT{StateName: in.StateName}
	err = gormDB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&schema.StateUT{}).
			Where("state_name = ?", in.StateName).
			Count(&count).Error; err != nil {
			return StateWriteError(in.StateName, err)
		}
		if count > 0 {
			return StateConflictError(in.StateName)
		}
		if err := tx.Create(&state).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return StateConflictError(in.StateName)
			}
			return StateWriteError(in.StateName, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Added state", "state", in.StateName, "id", state.StateID)

	return &dashboard.Outcome{
		StateID: state.StateID,
		Message: fmt.Sprintf(
			"State/UT '%s' added successfully.", in.StateName),
	}, nil
}

// DeleteState removes a state and all of its dependent records. The
// deletes are explicit so the cascade does not depend on foreign-key
// enforcement being enabled in the storage engine.
func (m *manager) DeleteState(
	ctx context.Context,
	actor dashboard.Actor,
	stateID uint,
) (*dashboard.Outcome, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	gormDB, err := m.db(ctx)
	if err != nil {
		return nil, err
	}

	var state schema.StateUT
	err = gormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&state, "state_id = ?", stateID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return StateNotFoundError(stateID)
			}
			return StateQueryError(stateID, err)
		}

		deletes := []any{
			&schema.HistoricalProgress{},
			&schema.WaterConnections{},
			&schema.HouseholdStats{},
		}
		for _, model := range deletes {
			if err := tx.Where("state_id = ?", stateID).
				Delete(model).Error; err != nil {
				return StateWriteError(state.StateName, err)
			}
		}
		if err := tx.Delete(&state).Error; err != nil {
			return StateWriteError(state.StateName, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Deleted state", "state", state.StateName, "id", stateID)

	return &dashboard.Outcome{
		StateID: stateID,
		Message: fmt.Sprintf(
			"State/UT '%s' deleted successfully.", state.StateName),
	}, nil
}

// SaveHouseholdStats upserts the household statistics row of a state.
func (m *manager) SaveHouseholdStats(
	ctx context.Context,
	actor dashboard.Actor,
	in dashboard.HouseholdStatsInput,
) (*dashboard.Outcome, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateHouseholdStats(in); err != nil {
		return nil, err
	}

	gormDB, err := m.db(ctx)
	if err != nil {
		return nil, err
	}

	var stateName string
	var updated bool
	err = gormDB.Transaction(func(tx *gorm.DB) error {
		name, err := stateNameByID(tx, in.StateID)
		if err != nil {
			return err
		}
		stateName = name

		var existing schema.HouseholdStats
		err = tx.First(&existing, "state_id = ?", in.StateID).Error
		switch {
		case err == nil:
			updated = true
			existing.TotalRuralHouseholds = in.TotalRuralHouseholds
			existing.HouseholdsWithTapWaterCurrent = in.HouseholdsWithTapWaterCurrent
			existing.HouseholdsWithTapWaterCurrentPct = in.HouseholdsWithTapWaterCurrentPct
			return tx.Save(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			row := schema.HouseholdStats{
				StateID:                          in.StateID,
				TotalRuralHouseholds:             in.TotalRuralHouseholds,
				HouseholdsWithTapWaterCurrent:    in.HouseholdsWithTapWaterCurrent,
				HouseholdsWithTapWaterCurrentPct: in.HouseholdsWithTapWaterCurrentPct,
			}
			return tx.Create(&row).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, wrapWrite("household statistics", err)
	}

	return &dashboard.Outcome{
		StateID: in.StateID,
		Message: fmt.Sprintf(
			"Household statistics for '%s' %s successfully.",
			stateName, verb(updated)),
	}, nil
}

// SaveWaterConnections upserts the water-connections row of a state.
func (m *manager) SaveWaterConnections(
	ctx context.Context,
	actor dashboard.Actor,
	in dashboard.WaterConnectionsInput,
) (*dashboard.Outcome, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateWaterConnections(in); err != nil {
		return nil, err
	}

	gormDB, err := m.db(ctx)
	if err != nil {
		return nil, err
	}

	var stateName string
	var updated bool
	err = gormDB.Transaction(func(tx *gorm.DB) error {
		name, err := stateNameByID(tx, in.StateID)
		if err != nil {
			return err
		}
		stateName = name

		var existing schema.WaterConnections
		err = tx.First(&existing, "state_id = ?", in.StateID).Error
		switch {
		case err == nil:
			updated = true
			existing.TapWaterConnectionsProvided = in.TapWaterConnectionsProvided
			existing.TapWaterConnectionsProvidedPct = in.TapWaterConnectionsProvidedPct
			return tx.Save(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			row := schema.WaterConnections{
				StateID:                        in.StateID,
				TapWaterConnectionsProvided:    in.TapWaterConnectionsProvided,
				TapWaterConnectionsProvidedPct: in.TapWaterConnectionsProvidedPct,
			}
			return tx.Create(&row).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, wrapWrite("water connections", err)
	}

	return &dashboard.Outcome{
		StateID: in.StateID,
		Message: fmt.Sprintf(
			"Water connections for '%s' %s successfully.",
			stateName, verb(updated)),
	}, nil
}

// SaveHistoricalProgress upserts the snapshot keyed by (state, date).
// Resubmitting the same key updates in place, so replaying an import is
// idempotent.
func (m *manager) SaveHistoricalProgress(
	ctx context.Context,
	actor dashboard.Actor,
	in dashboard.HistoricalProgressInput,
) (*dashboard.Outcome, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateHistoricalProgress(in); err != nil {
		return nil, err
	}

	gormDB, err := m.db(ctx)
	if err != nil {
		return nil, err
	}

	date := truncateToDate(in.Date)

	var stateName string
	var updated bool
	err = gormDB.Transaction(func(tx *gorm.DB) error {
		name, err := stateNameByID(tx, in.StateID)
		if err != nil {
			return err
		}
		stateName = name

		var existing schema.HistoricalProgress
		err = tx.First(&existing,
			"state_id = ? AND year = ?", in.StateID, date).Error
		switch {
		case err == nil:
			updated = true
			return tx.Model(&schema.HistoricalProgress{}).
				Where("state_id = ? AND year = ?", in.StateID, date).
				Updates(map[string]any{
					"households_with_tap_water":     in.HouseholdsWithTapWater,
					"households_with_tap_water_pct": in.HouseholdsWithTapWaterPct,
				}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			row := schema.HistoricalProgress{
				StateID:                   in.StateID,
				Year:                      date,
				HouseholdsWithTapWater:    in.HouseholdsWithTapWater,
				HouseholdsWithTapWaterPct: in.HouseholdsWithTapWaterPct,
			}
			return tx.Create(&row).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, wrapWrite("historical progress", err)
	}

	return &dashboard.Outcome{
		StateID: in.StateID,
		Message: fmt.Sprintf(
			"Historical progress for '%s' on %s %s successfully.",
			stateName, date.Format("2006-01-02"), verb(updated)),
	}, nil
}

// DeleteHistoricalProgress removes one snapshot by its (state, date)
// key.
func (m *manager) DeleteHistoricalProgress(
	ctx context.Context,
	actor dashboard.Actor,
	stateID uint,
	date time.Time,
) (*dashboard.Outcome, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	gormDB, err := m.db(ctx)
	if err != nil {
		return nil, err
	}

	day := truncateToDate(date)

	var stateName string
	err = gormDB.Transaction(func(tx *gorm.DB) error {
		name, err := stateNameByID(tx, stateID)
		if err != nil {
			return err
		}
		stateName = name

		res := tx.Where("state_id = ? AND year = ?", stateID, day).
			Delete(&schema.HistoricalProgress{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ProgressNotFoundError(stateID, day)
		}
		return nil
	})
	if err != nil {
		return nil, wrapWrite("historical progress", err)
	}

	return &dashboard.Outcome{
		StateID: stateID,
		Message: fmt.Sprintf(
			"Historical progress for '%s' on %s deleted successfully.",
			stateName, day.Format("2006-01-02")),
	}, nil
}

// HistoricalCoverage computes the coverage percentage for a historical
// entry. The denominator comes from the state's household statistics,
// which must already exist.
func (m *manager) HistoricalCoverage(
	ctx context.Context,
	stateID uint,
	current int64,
) (float64, error) {
	gormDB, err := m.db(ctx)
	if err != nil {
		return 0, err
	}

	var stats schema.HouseholdStats
	err = gormDB.First(&stats, "state_id = ?", stateID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, StatsNotFoundError(stateID)
		}
		return 0, StateQueryError(stateID, err)
	}

	return dashboard.CalculatePercentage(
		stats.TotalRuralHouseholds, current), nil
}

// stateNameByID resolves a state name inside a transaction, mapping a
// missing row to a not-found error.
func stateNameByID(tx *gorm.DB, stateID uint) (string, error) {
	var state schema.StateUT
	err := tx.First(&state, "state_id = ?", stateID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", StateNotFoundError(stateID)
		}
		return "", StateQueryError(stateID, err)
	}
	return state.StateName, nil
}

// truncateToDate normalizes a timestamp to a UTC date so (state, date)
// keys compare reliably across drivers.
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func verb(updated bool) string {
	if updated {
		return "updated"
	}
	return "added"
}
