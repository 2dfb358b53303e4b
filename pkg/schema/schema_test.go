package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/watertrack/jjmd/pkg/schema"
)

// TestTableNames verifies the models keep their established table names
// so data recorded by earlier deployments stays readable.
func TestTableNames(t *testing.T) {
	tests := []struct {
		model interface{ TableName() string }
		name  string
	}{
		{schema.StateUT{}, "states_uts"},
		{schema.HouseholdStats{}, "household_stats"},
		{schema.WaterConnections{}, "water_connections"},
		{schema.HistoricalProgress{}, "historical_progress"},
		{schema.User{}, "users"},
	}

	for _, v := range tests {
		assert.Equal(t, v.name, v.model.TableName())
	}
}

func TestAllModels(t *testing.T) {
	models := schema.AllModels()
	assert.Len(t, models, 5)
}

func TestRoles(t *testing.T) {
	assert.Equal(t, "admin", schema.RoleAdmin)
	assert.Equal(t, "viewer", schema.RoleViewer)
}
