// Package ioschema implements the SchemaManager interface for database
// schema management. This is an impure I/O package that wraps GORM
// AutoMigrate functionality.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/watertrack/jjmd/internal/iodb"
	"github.com/watertrack/jjmd/pkg/dashboard"
	"github.com/watertrack/jjmd/pkg/db"
	"github.com/watertrack/jjmd/pkg/schema"
)

// manager implements dashboard.SchemaManager using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) dashboard.SchemaManager {
	return &manager{operator: op}
}

// Create creates the initial database schema.
func (m *manager) Create(ctx context.Context) error {
	gormDB := m.operator.DB()
	if gormDB == nil {
		return iodb.NotConnectedError()
	}

	slog.Info("Creating database schema",
		"tables", len(schema.AllModels()))

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return CreateSchemaError(err)
	}
	return nil
}

// Migrate updates the database schema to the latest version. AutoMigrate
// only adds missing tables, columns and indexes, so running it on an
// up-to-date schema is a no-op.
func (m *manager) Migrate(ctx context.Context) error {
	gormDB := m.operator.DB()
	if gormDB == nil {
		return iodb.NotConnectedError()
	}

	slog.Info("Migrating database schema")

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}
	return nil
}
