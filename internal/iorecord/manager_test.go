package iorecord_test

import (
	"context"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watertrack/jjmd/internal/iorecord"
	"github.com/watertrack/jjmd/internal/iotesting"
	"github.com/watertrack/jjmd/pkg/dashboard"
	"github.com/watertrack/jjmd/pkg/db"
	"github.com/watertrack/jjmd/pkg/errcode"
	"github.com/watertrack/jjmd/pkg/schema"
)

var (
	admin  = dashboard.Actor{UserID: 1, Username: "admin", Role: schema.RoleAdmin}
	viewer = dashboard.Actor{UserID: 2, Username: "viewer", Role: schema.RoleViewer}
)

func newManager(t *testing.T) (dashboard.RecordManager, db.Operator) {
	t.Helper()
	op := iotesting.NewTestOperator(t)
	return iorecord.NewManager(op), op
}

func addState(
	t *testing.T, mgr dashboard.RecordManager, name string,
) uint {
	t.Helper()
	out, err := mgr.SaveState(
		context.Background(), admin, dashboard.StateInput{StateName: name})
	require.NoError(t, err)
	return out.StateID
}

func TestSaveState(t *testing.T) {
	mgr, _ := newManager(t)
	ctx := context.Background()

	out, err := mgr.SaveState(ctx, admin,
		dashboard.StateInput{StateName: "Assam"})
	require.NoError(t, err)
	assert.Equal(t, "State/UT 'Assam' added successfully.", out.Message)
	assert.NotZero(t, out.StateID)
}

func TestSaveStateRejectsDuplicate(t *testing.T) {
	mgr, _ := newManager(t)
	ctx := context.Background()

	addState(t, mgr, "Assam")

	_, err := mgr.SaveState(ctx, admin,
		dashboard.StateInput{StateName: "Assam"})
	require.Error(t, err)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.RecordConflictError, gnErr.Code)
	assert.Equal(t, "State/UT 'Assam' already exists.", gnErr.Msg)
}

func TestSaveStateRejectsEmptyName(t *testing.T) {
	mgr, _ := newManager(t)

	_, err := mgr.SaveState(context.Background(), admin,
		dashboard.StateInput{StateName: "   "})
	require.Error(t, err)
}

func TestMutationsRequireAdmin(t *testing.T) {
	mgr, op := newManager(t)
	ctx := context.Background()

	stateID := addState(t, mgr, "Assam")

	_, err := mgr.SaveState(ctx, viewer,
		dashboard.StateInput{StateName: "Bihar"})
	assert.Error(t, err)

	_, err = mgr.DeleteState(ctx, viewer, stateID)
	assert.Error(t, err)

	_, err = mgr.SaveHouseholdStats(ctx, viewer, dashboard.HouseholdStatsInput{
		StateID: stateID, TotalRuralHouseholds: 10,
	})
	assert.Error(t, err)

	// nothing was written or removed
	var states int64
	require.NoError(t,
		op.DB().Model(&schema.StateUT{}).Count(&states).Error)
	assert.Equal(t, int64(1), states)

	var stats int64
	require.NoError(t,
		op.DB().Model(&schema.HouseholdStats{}).Count(&stats).Error)
	assert.Equal(t, int64(0), stats)
}

func TestSaveHouseholdStatsUpsert(t *testing.T) {
	mgr, op := newManager(t)
	ctx := context.Background()

	stateID := addState(t, mgr, "Assam")

	out, err := mgr.SaveHouseholdStats(ctx, admin, dashboard.HouseholdStatsInput{
		StateID:                          stateID,
		TotalRuralHouseholds:             1000,
		HouseholdsWithTapWaterCurrent:    600,
		HouseholdsWithTapWaterCurrentPct: 60,
	})
	require.NoError(t, err)
	assert.Equal(t,
		"Household statistics for 'Assam' added successfully.", out.Message)

	out, err = mgr.SaveHouseholdStats(ctx, admin, dashboard.HouseholdStatsInput{
		StateID:                          stateID,
		TotalRuralHouseholds:             1000,
		HouseholdsWithTapWaterCurrent:    800,
		HouseholdsWithTapWaterCurrentPct: 80,
	})
	require.NoError(t, err)
	assert.Equal(t,
		"Household statistics for 'Assam' updated successfully.", out.Message)

	var rows []schema.HouseholdStats
	require.NoError(t, op.DB().Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(800), rows[0].HouseholdsWithTapWaterCurrent)
}

func TestSaveHouseholdStatsValidation(t *testing.T) {
	mgr, _ := newManager(t)
	ctx := context.Background()

	stateID := addState(t, mgr, "Assam")

	cases := []struct {
		name string
		in   dashboard.HouseholdStatsInput
	}{
		{"zero total", dashboard.HouseholdStatsInput{
			StateID: stateID, TotalRuralHouseholds: 0}},
		{"negative current", dashboard.HouseholdStatsInput{
			StateID: stateID, TotalRuralHouseholds: 10,
			HouseholdsWithTapWaterCurrent: -1}},
		{"pct above 100", dashboard.HouseholdStatsInput{
			StateID: stateID, TotalRuralHouseholds: 10,
			HouseholdsWithTapWaterCurrentPct: 100.01}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := mgr.SaveHouseholdStats(ctx, admin, tc.in)
			assert.Error(t, err)
		})
	}
}

func TestSaveHouseholdStatsUnknownState(t *testing.T) {
	mgr, _ := newManager(t)

	_, err := mgr.SaveHouseholdStats(context.Background(), admin,
		dashboard.HouseholdStatsInput{StateID: 999, TotalRuralHouseholds: 10})
	require.Error(t, err)
}

func TestSaveWaterConnectionsUpsert(t *testing.T) {
	mgr, op := newManager(t)
	ctx := context.Background()

	stateID := addState(t, mgr, "Assam")

	out, err := mgr.SaveWaterConnections(ctx, admin, dashboard.WaterConnectionsInput{
		StateID:                        stateID,
		TapWaterConnectionsProvided:    100,
		TapWaterConnectionsProvidedPct: 10,
	})
	require.NoError(t, err)
	assert.Equal(t,
		"Water connections for 'Assam' added successfully.", out.Message)

	out, err = mgr.SaveWaterConnections(ctx, admin, dashboard.WaterConnectionsInput{
		StateID:                        stateID,
		TapWaterConnectionsProvided:    150,
		TapWaterConnectionsProvidedPct: 15,
	})
	require.NoError(t, err)
	assert.Equal(t,
		"Water connections for 'Assam' updated successfully.", out.Message)

	var rows []schema.WaterConnections
	require.NoError(t, op.DB().Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(150), rows[0].TapWaterConnectionsProvided)
}

func TestSaveHistoricalProgressUpsertIdempotence(t *testing.T) {
	mgr, op := newManager(t)
	ctx := context.Background()

	stateID := addState(t, mgr, "Assam")
	date := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)

	in := dashboard.HistoricalProgressInput{
		StateID:                   stateID,
		Date:                      date,
		HouseholdsWithTapWater:    500,
		HouseholdsWithTapWaterPct: 50,
	}

	out, err := mgr.SaveHistoricalProgress(ctx, admin, in)
	require.NoError(t, err)
	assert.Equal(t,
		"Historical progress for 'Assam' on 2023-04-01 added successfully.",
		out.Message)

	// same key again, only values change
	in.HouseholdsWithTapWater = 550
	in.HouseholdsWithTapWaterPct = 55

	out, err = mgr.SaveHistoricalProgress(ctx, admin, in)
	require.NoError(t, err)
	assert.Equal(t,
		"Historical progress for 'Assam' on 2023-04-01 updated successfully.",
		out.Message)

	var rows []schema.HistoricalProgress
	require.NoError(t, op.DB().Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(550), rows[0].HouseholdsWithTapWater)

	// a different date for the same state is a second row
	in.Date = date.AddDate(1, 0, 0)
	_, err = mgr.SaveHistoricalProgress(ctx, admin, in)
	require.NoError(t, err)

	require.NoError(t, op.DB().Find(&rows).Error)
	assert.Len(t, rows, 2)
}

func TestDeleteHistoricalProgress(t *testing.T) {
	mgr, op := newManager(t)
	ctx := context.Background()

	stateID := addState(t, mgr, "Assam")
	date := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)

	_, err := mgr.SaveHistoricalProgress(ctx, admin,
		dashboard.HistoricalProgressInput{
			StateID: stateID, Date: date,
			HouseholdsWithTapWater: 500, HouseholdsWithTapWaterPct: 50,
		})
	require.NoError(t, err)

	out, err := mgr.DeleteHistoricalProgress(ctx, admin, stateID, date)
	require.NoError(t, err)
	assert.Equal(t,
		"Historical progress for 'Assam' on 2023-04-01 deleted successfully.",
		out.Message)

	var count int64
	require.NoError(t,
		op.DB().Model(&schema.HistoricalProgress{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// missing key is an error
	_, err = mgr.DeleteHistoricalProgress(ctx, admin, stateID, date)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeleteStateCascades(t *testing.T) {
	mgr, op := newManager(t)
	ctx := context.Background()

	stateID := addState(t, mgr, "Assam")
	keepID := addState(t, mgr, "Bihar")

	for _, id := range []uint{stateID, keepID} {
		_, err := mgr.SaveHouseholdStats(ctx, admin, dashboard.HouseholdStatsInput{
			StateID: id, TotalRuralHouseholds: 1000,
			HouseholdsWithTapWaterCurrent: 600, HouseholdsWithTapWaterCurrentPct: 60,
		})
		require.NoError(t, err)

		_, err = mgr.SaveWaterConnections(ctx, admin, dashboard.WaterConnectionsInput{
			StateID: id, TapWaterConnectionsProvided: 100,
			TapWaterConnectionsProvidedPct: 10,
		})
		require.NoError(t, err)

		_, err = mgr.SaveHistoricalProgress(ctx, admin, dashboard.HistoricalProgressInput{
			StateID: id, Date: time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC),
			HouseholdsWithTapWater: 500, HouseholdsWithTapWaterPct: 50,
		})
		require.NoError(t, err)
	}

	out, err := mgr.DeleteState(ctx, admin, stateID)
	require.NoError(t, err)
	assert.Equal(t, "State/UT 'Assam' deleted successfully.", out.Message)

	counts := map[string]any{
		"states":      &schema.StateUT{},
		"stats":       &schema.HouseholdStats{},
		"connections": &schema.WaterConnections{},
		"progress":    &schema.HistoricalProgress{},
	}
	for name, model := range counts {
		var count int64
		require.NoError(t, op.DB().Model(model).Count(&count).Error)
		assert.Equal(t, int64(1), count, "one %s row should remain", name)
	}

	// the remaining rows all belong to the surviving state
	var stats schema.HouseholdStats
	require.NoError(t, op.DB().First(&stats).Error)
	assert.Equal(t, keepID, stats.StateID)
}

func TestDeleteStateNotFound(t *testing.T) {
	mgr, _ := newManager(t)

	_, err := mgr.DeleteState(context.Background(), admin, 999)
	require.Error(t, err)
}

func TestHistoricalCoverage(t *testing.T) {
	mgr, _ := newManager(t)
	ctx := context.Background()

	stateID := addState(t, mgr, "Assam")

	// no household stats yet
	_, err := mgr.HistoricalCoverage(ctx, stateID, 500)
	require.Error(t, err)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.RecordNotFoundError, gnErr.Code)

	_, err = mgr.SaveHouseholdStats(ctx, admin, dashboard.HouseholdStatsInput{
		StateID: stateID, TotalRuralHouseholds: 1500,
		HouseholdsWithTapWaterCurrent: 500, HouseholdsWithTapWaterCurrentPct: 33.33,
	})
	require.NoError(t, err)

	pct, err := mgr.HistoricalCoverage(ctx, stateID, 500)
	require.NoError(t, err)
	assert.InDelta(t, 33.33, pct, 0.001)
}
