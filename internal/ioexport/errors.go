package ioexport

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/watertrack/jjmd/pkg/errcode"
)

// WriteError happens when an export file cannot be rendered or written.
func WriteError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ExportWriteError,
		Msg:  fmt.Sprintf("Cannot write export file <em>%s</em>", path),
		Err:  fmt.Errorf("write export %s: %w", path, err),
	}
}
