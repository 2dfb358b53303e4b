// Package jjmd holds build metadata for the JJMD application.
package jjmd

var (
	// Version is set by build flags.
	Version = "dev"

	// Build is the build timestamp, set by build flags.
	Build = "n/a"
)
