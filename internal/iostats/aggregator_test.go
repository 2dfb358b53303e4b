package iostats_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/watertrack/jjmd/internal/iostats"
	"github.com/watertrack/jjmd/internal/iotesting"
	"github.com/watertrack/jjmd/pkg/dashboard"
	"github.com/watertrack/jjmd/pkg/db"
	"github.com/watertrack/jjmd/pkg/schema"
)

func newAggregator(t *testing.T) (dashboard.Aggregator, db.Operator) {
	t.Helper()
	op := iotesting.NewTestOperator(t)
	return iostats.NewAggregator(op), op
}

func seedState(
	t *testing.T, gormDB *gorm.DB, name string, total, current int64, pct float64,
) uint {
	t.Helper()
	state := schema.StateUT{StateName: name}
	require.NoError(t, gormDB.Create(&state).Error)
	require.NoError(t, gormDB.Create(&schema.HouseholdStats{
		StateID:                          state.StateID,
		TotalRuralHouseholds:             total,
		HouseholdsWithTapWaterCurrent:    current,
		HouseholdsWithTapWaterCurrentPct: pct,
	}).Error)
	return state.StateID
}

func TestOverallEmptyStore(t *testing.T) {
	agg, _ := newAggregator(t)

	stats, err := agg.Overall(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &dashboard.OverallStats{}, stats)
}

func TestOverallAndRankings(t *testing.T) {
	agg, op := newAggregator(t)
	ctx := context.Background()

	// R1 is partially covered, R2 is fully covered
	r1 := seedState(t, op.DB(), "R1", 1000, 800, 80)
	r2 := seedState(t, op.DB(), "R2", 500, 500, 100)
	require.NoError(t, op.DB().Create(&schema.WaterConnections{
		StateID:                     r1,
		TapWaterConnectionsProvided: 900,
	}).Error)
	require.NoError(t, op.DB().Create(&schema.WaterConnections{
		StateID:                     r2,
		TapWaterConnectionsProvided: 550,
	}).Error)

	stats, err := agg.Overall(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), stats.TotalHouseholds)
	assert.Equal(t, int64(1300), stats.HouseholdsWithTap)
	assert.InDelta(t, 86.67, stats.CoveragePct, 0.0001)
	assert.Equal(t, int64(1450), stats.ConnectionsProvided)

	top, err := agg.TopStates(ctx, 1, true)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "R2", top[0].StateName)

	topByCount, err := agg.TopStates(ctx, 5, false)
	require.NoError(t, err)
	require.Len(t, topByCount, 2)
	assert.Equal(t, "R1", topByCount[0].StateName)

	// fully covered states never show up among the laggards
	bottom, err := agg.BottomStates(ctx, 5)
	require.NoError(t, err)
	require.Len(t, bottom, 1)
	assert.Equal(t, "R1", bottom[0].StateName)
	assert.InDelta(t, 80, bottom[0].CoveragePct, 0.0001)
}

func TestTopStatesOrderAndTies(t *testing.T) {
	agg, op := newAggregator(t)
	ctx := context.Background()

	seedState(t, op.DB(), "Delta", 100, 60, 60)
	seedState(t, op.DB(), "Alpha", 100, 60, 60)
	seedState(t, op.DB(), "Bravo", 100, 90, 90)

	top, err := agg.TopStates(ctx, 3, true)
	require.NoError(t, err)
	require.Len(t, top, 3)

	// non-increasing order, ties broken by name
	assert.Equal(t, "Bravo", top[0].StateName)
	assert.Equal(t, "Alpha", top[1].StateName)
	assert.Equal(t, "Delta", top[2].StateName)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t,
			top[i-1].CoveragePct, top[i].CoveragePct)
	}
}

func TestComprehensiveData(t *testing.T) {
	agg, op := newAggregator(t)
	ctx := context.Background()

	seedState(t, op.DB(), "Bihar", 1000, 600, 60)
	// a state without any statistics still appears
	require.NoError(t,
		op.DB().Create(&schema.StateUT{StateName: "Assam"}).Error)

	rows, err := agg.ComprehensiveData(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// ordered by state name
	assert.Equal(t, "Assam", rows[0].StateName)
	assert.Equal(t, "Bihar", rows[1].StateName)

	assert.Nil(t, rows[0].TotalRuralHouseholds)
	assert.Nil(t, rows[0].TapWaterConnectionsProvided)

	require.NotNil(t, rows[1].TotalRuralHouseholds)
	assert.Equal(t, int64(1000), *rows[1].TotalRuralHouseholds)
	assert.Nil(t, rows[1].TapWaterConnectionsProvided)
}

func TestStates(t *testing.T) {
	agg, op := newAggregator(t)

	for _, name := range []string{"Odisha", "Assam", "Kerala"} {
		require.NoError(t,
			op.DB().Create(&schema.StateUT{StateName: name}).Error)
	}

	states, err := agg.States(context.Background())
	require.NoError(t, err)
	require.Len(t, states, 3)
	assert.Equal(t, "Assam", states[0].StateName)
	assert.Equal(t, "Kerala", states[1].StateName)
	assert.Equal(t, "Odisha", states[2].StateName)
}

func TestHistoricalProgress(t *testing.T) {
	agg, op := newAggregator(t)

	id := seedState(t, op.DB(), "Assam", 1000, 600, 60)
	for _, snap := range []struct {
		date time.Time
		n    int64
	}{
		{time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC), 550},
		{time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC), 400},
	} {
		require.NoError(t, op.DB().Create(&schema.HistoricalProgress{
			StateID:                id,
			Year:                   snap.date,
			HouseholdsWithTapWater: snap.n,
		}).Error)
	}

	rows, err := agg.HistoricalProgress(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// ordered by date within the state
	assert.Equal(t, int64(400), rows[0].HouseholdsWithTapWater)
	assert.Equal(t, int64(550), rows[1].HouseholdsWithTapWater)
	assert.Equal(t, "Assam", rows[0].StateName)
}
