package iorecord

import (
	"errors"
	"fmt"
	"time"

	"github.com/gnames/gn"
	"github.com/watertrack/jjmd/pkg/errcode"
)

// AuthorizationError happens when a non-admin actor attempts a
// mutation.
func AuthorizationError(username string) error {
	return &gn.Error{
		Code: errcode.AuthorizationError,
		Msg:  "You don't have permission to perform this action.",
		Err:  fmt.Errorf("user %q is not an admin", username),
	}
}

// ValidationError bundles field-level problems into one error. No store
// access happens when it is returned.
func ValidationError(fields []FieldError) error {
	return &gn.Error{
		Code: errcode.ValidationFailedError,
		Msg:  fieldErrorSummary(fields),
		Err:  fmt.Errorf("validation failed: %s", fieldErrorSummary(fields)),
	}
}

// StateConflictError happens when a state name is already taken.
func StateConflictError(name string) error {
	return &gn.Error{
		Code: errcode.RecordConflictError,
		Msg:  fmt.Sprintf("State/UT '%s' already exists.", name),
		Err:  fmt.Errorf("state exists: %s", name),
	}
}

// StateNotFoundError happens when a state id does not resolve.
func StateNotFoundError(stateID uint) error {
	return &gn.Error{
		Code: errcode.RecordNotFoundError,
		Msg:  fmt.Sprintf("State/UT with id <em>%d</em> not found", stateID),
		Err:  fmt.Errorf("state %d not found", stateID),
	}
}

// StatsNotFoundError happens when a coverage calculation needs
// household statistics that have not been recorded yet.
func StatsNotFoundError(stateID uint) error {
	return &gn.Error{
		Code: errcode.RecordNotFoundError,
		Msg: "Could not find household statistics for this state. " +
			"Please add household statistics first.",
		Err: fmt.Errorf("household stats for state %d not found", stateID),
	}
}

// ProgressNotFoundError happens when a historical snapshot key does not
// resolve.
func ProgressNotFoundError(stateID uint, date time.Time) error {
	return &gn.Error{
		Code: errcode.RecordNotFoundError,
		Msg:  "Historical progress record not found.",
		Err: fmt.Errorf("historical progress (%d, %s) not found",
			stateID, date.Format("2006-01-02")),
	}
}

// StateQueryError happens when a state lookup fails for reasons other
// than a missing row.
func StateQueryError(stateID uint, err error) error {
	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  fmt.Sprintf("Cannot look up state <em>%d</em>", stateID),
		Err:  fmt.Errorf("query state %d: %w", stateID, err),
	}
}

// StateWriteError happens when a state row cannot be written or
// removed.
func StateWriteError(name string, err error) error {
	return &gn.Error{
		Code: errcode.StoreWriteError,
		Msg:  fmt.Sprintf("Cannot save state <em>%s</em>", name),
		Err:  fmt.Errorf("write state %s: %w", name, err),
	}
}

// wrapWrite turns raw store errors into StoreWriteError while letting
// already-classified errors through unchanged.
func wrapWrite(what string, err error) error {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return err
	}
	return &gn.Error{
		Code: errcode.StoreWriteError,
		Msg:  fmt.Sprintf("Error saving %s", what),
		Err:  fmt.Errorf("write %s: %w", what, err),
	}
}
