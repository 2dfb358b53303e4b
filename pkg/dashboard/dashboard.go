// Package dashboard defines the domain contracts of JJMD: record
// management, statistics aggregation and authentication. Implementations
// live in internal/io* packages; this package stays free of I/O.
package dashboard

import (
	"context"
	"time"
)

// Actor identifies the authenticated caller of an operation. The core
// never sees raw credentials, only the (user id, role) pair produced by
// the Authenticator.
type Actor struct {
	UserID   uint
	Username string
	Role     string
}

// Outcome reports a completed mutation: the identity of the persisted
// record and a human-readable message the presentation layer can show.
type Outcome struct {
	// StateID identifies the affected state, when applicable.
	StateID uint

	// Message describes the result, e.g.
	// "State/UT 'Assam' added successfully."
	Message string
}

// StateInput carries fields for creating a state/UT.
type StateInput struct {
	StateName string
}

// HouseholdStatsInput carries fields for upserting household statistics.
type HouseholdStatsInput struct {
	StateID                          uint
	TotalRuralHouseholds             int64
	HouseholdsWithTapWaterCurrent    int64
	HouseholdsWithTapWaterCurrentPct float64
}

// WaterConnectionsInput carries fields for upserting connection counts.
type WaterConnectionsInput struct {
	StateID                        uint
	TapWaterConnectionsProvided    int64
	TapWaterConnectionsProvidedPct float64
}

// HistoricalProgressInput carries fields for upserting one historical
// snapshot, keyed by (StateID, Date).
type HistoricalProgressInput struct {
	StateID                   uint
	Date                      time.Time
	HouseholdsWithTapWater    int64
	HouseholdsWithTapWaterPct float64
}

// RecordManager validates and persists mutations for all record types.
// Every mutating method requires actor.Role == schema.RoleAdmin and
// performs no store access when validation or authorization fails.
// Writes execute in a single transaction with rollback on failure and
// are never retried.
type RecordManager interface {
	// SaveState creates a new state/UT. A duplicate name yields a
	// conflict error distinct from generic failure.
	SaveState(ctx context.Context, actor Actor, in StateInput) (*Outcome, error)

	// DeleteState removes a state and cascades to its household stats,
	// water connections and historical progress rows.
	DeleteState(ctx context.Context, actor Actor, stateID uint) (*Outcome, error)

	// SaveHouseholdStats upserts the one household-stats row of a state.
	SaveHouseholdStats(ctx context.Context, actor Actor, in HouseholdStatsInput) (*Outcome, error)

	// SaveWaterConnections upserts the one water-connections row of a state.
	SaveWaterConnections(ctx context.Context, actor Actor, in WaterConnectionsInput) (*Outcome, error)

	// SaveHistoricalProgress upserts the snapshot keyed by (state, date).
	SaveHistoricalProgress(ctx context.Context, actor Actor, in HistoricalProgressInput) (*Outcome, error)

	// DeleteHistoricalProgress removes one snapshot by its (state, date) key.
	DeleteHistoricalProgress(ctx context.Context, actor Actor, stateID uint, date time.Time) (*Outcome, error)

	// HistoricalCoverage computes the coverage percentage for a
	// historical entry, sourcing the denominator from the state's
	// household stats. Returns a not-found error when that row does
	// not exist yet.
	HistoricalCoverage(ctx context.Context, stateID uint, current int64) (float64, error)
}

// Authenticator manages operator accounts.
type Authenticator interface {
	// CreateUser registers an account. The password is hashed before
	// storage; duplicate usernames are rejected with a conflict error.
	CreateUser(ctx context.Context, username, password, role string) (*Outcome, error)

	// Authenticate verifies credentials and returns the acting user.
	Authenticate(ctx context.Context, username, password string) (*Actor, error)

	// EnsureDefaultAdmin creates the bootstrap admin account if no
	// user with that name exists yet.
	EnsureDefaultAdmin(ctx context.Context) error
}

// SchemaManager manages the database schema via GORM AutoMigrate.
// Schema management is idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates the initial database schema.
	Create(ctx context.Context) error

	// Migrate updates the schema to the latest version.
	Migrate(ctx context.Context) error
}
