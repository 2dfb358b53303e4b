package ioconfig

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/watertrack/jjmd/pkg/errcode"
)

// ConfigNotFoundError happens when an explicitly given config file does
// not exist.
func ConfigNotFoundError(path string) error {
	return &gn.Error{
		Code: errcode.ConfigLoadError,
		Msg:  fmt.Sprintf("Config file not found at <em>%s</em>", path),
		Err:  fmt.Errorf("config file not found: %s", path),
	}
}

// ConfigReadError happens when a config file cannot be read or parsed.
func ConfigReadError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ConfigLoadError,
		Msg:  fmt.Sprintf("Cannot read config file <em>%s</em>", path),
		Err:  fmt.Errorf("read config %s: %w", path, err),
	}
}

// ConfigExistsError happens when config generation would overwrite an
// existing file.
func ConfigExistsError(path string) error {
	return &gn.Error{
		Code: errcode.ConfigGenerateError,
		Msg:  fmt.Sprintf("Config file already exists at <em>%s</em>", path),
		Err:  fmt.Errorf("config file exists: %s", path),
	}
}

// ConfigWriteError happens when the default config file cannot be
// written.
func ConfigWriteError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ConfigGenerateError,
		Msg:  fmt.Sprintf("Cannot write config file <em>%s</em>", path),
		Err:  fmt.Errorf("write config %s: %w", path, err),
	}
}

// HomeDirError happens when the user home directory cannot be resolved.
func HomeDirError(err error) error {
	return &gn.Error{
		Code: errcode.ConfigLoadError,
		Msg:  "Cannot determine user home directory",
		Err:  fmt.Errorf("user home dir: %w", err),
	}
}
