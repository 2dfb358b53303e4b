// Package errcode defines error codes for all JJMD error conditions.
// Codes are attached to gn.Error values so callers can distinguish
// failure classes without string matching.
package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// Configuration errors
	ConfigLoadError
	ConfigGenerateError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	SchemaCreateError
	SchemaMigrateError

	// Store errors. StoreQueryError is transient and retried on read
	// paths; StoreWriteError is surfaced after a single attempt.
	StoreQueryError
	StoreWriteError

	// Record manager errors
	AuthorizationError
	ValidationFailedError
	RecordConflictError
	RecordNotFoundError

	// User and authentication errors
	UserConflictError
	UserNotFoundError
	BadCredentialsError

	// Seeding errors
	SeedFileError
	SeedParseError

	// Export and chart errors
	ExportWriteError
	ChartEncodeError
)
