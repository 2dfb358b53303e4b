package ioauth

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/watertrack/jjmd/pkg/errcode"
)

// BadUsernameError happens when an empty username is supplied.
func BadUsernameError() error {
	return &gn.Error{
		Code: errcode.ValidationFailedError,
		Msg:  "Username cannot be empty",
		Err:  fmt.Errorf("empty username"),
	}
}

// BadPasswordError happens when an empty password is supplied.
func BadPasswordError() error {
	return &gn.Error{
		Code: errcode.ValidationFailedError,
		Msg:  "Password cannot be empty",
		Err:  fmt.Errorf("empty password"),
	}
}

// BadRoleError happens when a role is neither 'admin' nor 'viewer'.
func BadRoleError(role string) error {
	return &gn.Error{
		Code: errcode.ValidationFailedError,
		Msg:  fmt.Sprintf("Unknown role <em>%s</em>; use 'admin' or 'viewer'", role),
		Err:  fmt.Errorf("unknown role: %q", role),
	}
}

// UserConflictError happens when the username is already taken.
func UserConflictError(username string) error {
	return &gn.Error{
		Code: errcode.UserConflictError,
		Msg:  fmt.Sprintf("User <em>%s</em> already exists", username),
		Err:  fmt.Errorf("user exists: %s", username),
	}
}

// UserWriteError happens when a user row cannot be written.
func UserWriteError(username string, err error) error {
	return &gn.Error{
		Code: errcode.StoreWriteError,
		Msg:  fmt.Sprintf("Cannot save user <em>%s</em>", username),
		Err:  fmt.Errorf("save user %s: %w", username, err),
	}
}

// UserQueryError happens when a user lookup fails for reasons other
// than a missing row.
func UserQueryError(username string, err error) error {
	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  fmt.Sprintf("Cannot look up user <em>%s</em>", username),
		Err:  fmt.Errorf("query user %s: %w", username, err),
	}
}

// BadCredentialsError happens when the username or password is wrong.
// The message does not say which.
func BadCredentialsError() error {
	return &gn.Error{
		Code: errcode.BadCredentialsError,
		Msg:  "Invalid username or password",
		Err:  fmt.Errorf("invalid credentials"),
	}
}
