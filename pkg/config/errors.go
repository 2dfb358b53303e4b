package config

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/watertrack/jjmd/pkg/errcode"
)

func validationError(msg string, err error) error {
	return &gn.Error{
		Code: errcode.ConfigLoadError,
		Msg:  msg,
		Err:  err,
	}
}

func errBadDriver(driver string) error {
	return validationError(
		fmt.Sprintf(
			"Unknown database driver <em>%s</em>; use 'postgres' or 'sqlite'",
			driver,
		),
		fmt.Errorf("unknown database driver: %q", driver),
	)
}

func errBadPort(port int) error {
	return validationError(
		fmt.Sprintf("Database port <em>%d</em> is outside 1-65535", port),
		fmt.Errorf("invalid database port: %d", port),
	)
}

func errBadSSLMode(mode string) error {
	return validationError(
		fmt.Sprintf(
			"Unknown ssl_mode <em>%s</em>; use 'disable', 'require', "+
				"'verify-ca' or 'verify-full'",
			mode,
		),
		fmt.Errorf("invalid ssl_mode: %q", mode),
	)
}

func errBadPool(minConns, maxConns int) error {
	return validationError(
		fmt.Sprintf(
			"min_connections (%d) cannot exceed max_connections (%d)",
			minConns, maxConns,
		),
		fmt.Errorf("min_connections %d > max_connections %d",
			minConns, maxConns),
	)
}

func errNoSQLitePath() error {
	return validationError(
		"sqlite_path is required when the sqlite driver is selected",
		fmt.Errorf("empty sqlite_path"),
	)
}

func errBadLogLevel(level string) error {
	return validationError(
		fmt.Sprintf(
			"Unknown log level <em>%s</em>; use 'debug', 'info', "+
				"'warn' or 'error'",
			level,
		),
		fmt.Errorf("invalid log level: %q", level),
	)
}

func errBadLogFormat(format string) error {
	return validationError(
		fmt.Sprintf(
			"Unknown log format <em>%s</em>; use 'text' or 'json'",
			format,
		),
		fmt.Errorf("invalid log format: %q", format),
	)
}

func errNoSalt() error {
	return validationError(
		"auth.password_salt cannot be empty",
		fmt.Errorf("empty password salt"),
	)
}
