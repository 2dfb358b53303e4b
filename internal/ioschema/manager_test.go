package ioschema_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watertrack/jjmd/internal/iodb"
	"github.com/watertrack/jjmd/internal/ioschema"
	"github.com/watertrack/jjmd/pkg/config"
	"github.com/watertrack/jjmd/pkg/db"
)

func connect(t *testing.T) db.Operator {
	t.Helper()
	op := iodb.NewOperator()
	cfg := config.Defaults().Database
	cfg.SQLitePath = filepath.Join(t.TempDir(), "schema_test.db")
	err := op.Connect(context.Background(), &cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = op.Close() })
	return op
}

func TestCreateSchema(t *testing.T) {
	op := connect(t)
	mgr := ioschema.NewManager(op)

	err := mgr.Create(context.Background())
	require.NoError(t, err)

	for _, table := range []string{
		"states_uts",
		"household_stats",
		"water_connections",
		"historical_progress",
		"users",
	} {
		assert.True(t, op.DB().Migrator().HasTable(table),
			"table %s should exist", table)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	op := connect(t)
	mgr := ioschema.NewManager(op)

	require.NoError(t, mgr.Create(context.Background()))
	require.NoError(t, mgr.Migrate(context.Background()))
	require.NoError(t, mgr.Migrate(context.Background()))
}

func TestSchemaRequiresConnection(t *testing.T) {
	mgr := ioschema.NewManager(iodb.NewOperator())
	err := mgr.Create(context.Background())
	require.Error(t, err)
}
