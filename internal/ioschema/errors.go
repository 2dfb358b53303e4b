package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/watertrack/jjmd/pkg/errcode"
)

// CreateSchemaError happens when the initial schema cannot be created.
func CreateSchemaError(err error) error {
	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  "Cannot create database schema",
		Err:  fmt.Errorf("create schema: %w", err),
	}
}

// MigrateSchemaError happens when a schema migration fails.
func MigrateSchemaError(err error) error {
	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  "Cannot migrate database schema",
		Err:  fmt.Errorf("migrate schema: %w", err),
	}
}
