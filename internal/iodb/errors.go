package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/watertrack/jjmd/pkg/errcode"
)

// ConnectionError happens when a PostgreSQL connection cannot be
// established or verified.
func ConnectionError(
	host string, port int, database, user string, err error,
) error {
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg: fmt.Sprintf(
			"Cannot connect to database <em>%s</em> at %s:%d as user <em>%s</em>",
			database, host, port, user,
		),
		Err: fmt.Errorf("connect to %s:%d/%s: %w", host, port, database, err),
	}
}

// SQLiteOpenError happens when the SQLite database file cannot be
// opened.
func SQLiteOpenError(path string, err error) error {
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  fmt.Sprintf("Cannot open SQLite database at <em>%s</em>", path),
		Err:  fmt.Errorf("open sqlite %s: %w", path, err),
	}
}

// UnknownDriverError happens when the configured driver is neither
// 'postgres' nor 'sqlite'.
func UnknownDriverError(driver string) error {
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  fmt.Sprintf("Unknown database driver <em>%s</em>", driver),
		Err:  fmt.Errorf("unknown driver: %q", driver),
	}
}

// NotConnectedError happens when an operation requires a database
// connection that has not been established.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database is not connected, run <em>Connect</em> first",
		Err:  fmt.Errorf("database not connected"),
	}
}
