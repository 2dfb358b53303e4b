package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watertrack/jjmd/pkg/config"
)

func TestDefaults(t *testing.T) {
	cfg := config.Defaults()
	require.NotNil(t, cfg)

	// Database defaults: sqlite fallback so the tool works without a
	// PostgreSQL server.
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "jal_jeevan_mission.db", cfg.Database.SQLitePath)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 10, cfg.Database.MaxConnections)
	assert.Equal(t, 2, cfg.Database.MinConnections)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "jjm_default_salt", cfg.Auth.PasswordSalt)

	assert.NoError(t, cfg.Validate(), "default config must be valid")
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Host = "db.example.org"
	cfg.Logging.Level = "debug"

	cfg.MergeWithDefaults()

	assert.Equal(t, "db.example.org", cfg.Database.Host, "explicit value kept")
	assert.Equal(t, "debug", cfg.Logging.Level, "explicit value kept")
	assert.Equal(t, 5432, cfg.Database.Port, "zero value filled")
	assert.Equal(t, "sqlite", cfg.Database.Driver, "zero value filled")
	assert.Equal(t, "jjm_default_salt", cfg.Auth.PasswordSalt)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		msg    string
		mutate func(*config.Config)
		ok     bool
	}{
		{"defaults are valid", func(c *config.Config) {}, true},
		{
			"postgres driver is valid",
			func(c *config.Config) { c.Database.Driver = "postgres" },
			true,
		},
		{
			"unknown driver",
			func(c *config.Config) { c.Database.Driver = "oracle" },
			false,
		},
		{
			"bad port",
			func(c *config.Config) {
				c.Database.Driver = "postgres"
				c.Database.Port = 70000
			},
			false,
		},
		{
			"bad ssl mode",
			func(c *config.Config) {
				c.Database.Driver = "postgres"
				c.Database.SSLMode = "maybe"
			},
			false,
		},
		{
			"pool bounds inverted",
			func(c *config.Config) {
				c.Database.Driver = "postgres"
				c.Database.MinConnections = 20
			},
			false,
		},
		{
			"missing sqlite path",
			func(c *config.Config) { c.Database.SQLitePath = "" },
			false,
		},
		{
			"bad log level",
			func(c *config.Config) { c.Logging.Level = "verbose" },
			false,
		},
		{
			"bad log format",
			func(c *config.Config) { c.Logging.Format = "xml" },
			false,
		},
		{
			"empty salt",
			func(c *config.Config) { c.Auth.PasswordSalt = "" },
			false,
		},
	}

	for _, v := range tests {
		cfg := config.Defaults()
		v.mutate(cfg)
		err := cfg.Validate()
		if v.ok {
			assert.NoError(t, err, v.msg)
		} else {
			assert.Error(t, err, v.msg)
		}
	}
}
