package ioseed

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/watertrack/jjmd/pkg/errcode"
)

// SeedFileError happens when a seed file cannot be read.
func SeedFileError(path string, err error) error {
	return &gn.Error{
		Code: errcode.SeedFileError,
		Msg:  fmt.Sprintf("Cannot read seed file <em>%s</em>", path),
		Err:  fmt.Errorf("read seed file %s: %w", path, err),
	}
}

// SeedParseError happens when a seed file is not valid YAML.
func SeedParseError(path string, err error) error {
	return &gn.Error{
		Code: errcode.SeedParseError,
		Msg:  fmt.Sprintf("Cannot parse seed file <em>%s</em>", path),
		Err:  fmt.Errorf("parse seed file %s: %w", path, err),
	}
}

// SeedDateError happens when a historical snapshot date is not an
// ISO-8601 date.
func SeedDateError(state, date string, err error) error {
	return &gn.Error{
		Code: errcode.SeedParseError,
		Msg: fmt.Sprintf(
			"Bad date <em>%s</em> for state <em>%s</em>; use YYYY-MM-DD",
			date, state),
		Err: fmt.Errorf("parse date %q for %s: %w", date, state, err),
	}
}

// SeedStateError happens when a state reported as existing cannot be
// found again.
func SeedStateError(name string) error {
	return &gn.Error{
		Code: errcode.RecordNotFoundError,
		Msg:  fmt.Sprintf("Cannot resolve state <em>%s</em> after conflict", name),
		Err:  fmt.Errorf("state %s not resolvable", name),
	}
}
