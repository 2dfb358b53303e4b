// Package iotesting provides shared test utilities for packages that
// exercise the persistent store. This is an internal package for test
// infrastructure only.
package iotesting

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/watertrack/jjmd/pkg/schema"
)

// NewTestDB opens a throwaway SQLite database in the test's temp
// directory, migrates the full schema and returns the GORM handle.
// The file is removed automatically when the test finishes.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    db := iotesting.NewTestDB(t)
//	    // ... exercise store operations against db
//	}
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "jjmd_test.db")
	dsn := path + "?_pragma=foreign_keys(1)"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := schema.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}
