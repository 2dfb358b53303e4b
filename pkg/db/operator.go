package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/watertrack/jjmd/pkg/config"
	"gorm.io/gorm"
)

// Operator defines the interface for basic database management
// operations. It provides connection lifecycle management and exposes
// the GORM handle that higher-level components (RecordManager,
// Aggregator, SchemaManager) use for their queries.
//
// Design rationale:
//   - Keeps the interface minimal to avoid bloat with mixed semantics
//   - DB() gives components an explicit handle instead of an ambient
//     global session; each write brackets its own transaction
//   - Pool() exposes the pgx pool for PostgreSQL-specific maintenance;
//     it is nil when the sqlite fallback driver is in use
type Operator interface {
	// Connect opens the store described by the configuration:
	// a pgx-pooled PostgreSQL connection or a SQLite file.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection.
	Close() error

	// DB returns the GORM handle, or nil before Connect.
	DB() *gorm.DB

	// Pool returns the underlying pgxpool.Pool for PostgreSQL-specific
	// operations. Returns nil for the sqlite driver.
	Pool() *pgxpool.Pool
}
