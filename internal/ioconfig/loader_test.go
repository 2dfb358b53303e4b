package ioconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watertrack/jjmd/internal/ioconfig"
	"github.com/watertrack/jjmd/pkg/templates"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func TestLoadExplicitFile(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: postgres
  host: db.example.org
  port: 5433
logging:
  level: debug
`)

	res, err := ioconfig.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file", res.Source)
	assert.Equal(t, path, res.SourcePath)
	assert.Equal(t, "postgres", res.Config.Database.Driver)
	assert.Equal(t, "db.example.org", res.Config.Database.Host)
	assert.Equal(t, 5433, res.Config.Database.Port)
	assert.Equal(t, "debug", res.Config.Logging.Level)

	// values not in the file come from defaults
	assert.Equal(t, "disable", res.Config.Database.SSLMode)
	assert.Equal(t, "jjm_default_salt", res.Config.Auth.PasswordSalt)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := ioconfig.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "database:\n  driver: sqlite\n")
	t.Setenv("JJMD_DATABASE_SQLITE_PATH", "/tmp/envtest.db")
	t.Setenv("JJMD_LOGGING_FORMAT", "json")

	res, err := ioconfig.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/envtest.db", res.Config.Database.SQLitePath)
	assert.Equal(t, "json", res.Config.Logging.Format)
}

func TestLoadInvalidValues(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: loud\n")

	_, err := ioconfig.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestGeneratedTemplateIsValid(t *testing.T) {
	path := writeConfig(t, templates.ConfigYAML)
	err := ioconfig.ValidateGeneratedConfig(path)
	require.NoError(t, err)
}
