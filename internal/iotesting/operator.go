package iotesting

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	"github.com/watertrack/jjmd/pkg/config"
	"github.com/watertrack/jjmd/pkg/db"
)

// testOperator satisfies db.Operator over an already-open GORM handle.
type testOperator struct {
	db *gorm.DB
}

func (o *testOperator) Connect(context.Context, *config.DatabaseConfig) error {
	return nil
}

func (o *testOperator) Close() error { return nil }

func (o *testOperator) DB() *gorm.DB { return o.db }

func (o *testOperator) Pool() *pgxpool.Pool { return nil }

// NewTestOperator wraps a migrated throwaway database in a db.Operator
// for packages that take the operator rather than the raw handle.
func NewTestOperator(t *testing.T) db.Operator {
	t.Helper()
	return &testOperator{db: NewTestDB(t)}
}
