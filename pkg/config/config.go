// Package config provides configuration management for JJMD.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Loading from files and environment is handled by
// internal/ioconfig.
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml >
// defaults.
//
// # Environment Variables
//
// Use the JJMD_ prefix with underscores for nesting:
//
//	JJMD_DATABASE_HOST=localhost
//	JJMD_DATABASE_PORT=5432
//	JJMD_LOGGING_LEVEL=info
//	JJMD_AUTH_PASSWORD_SALT=jjm_default_salt
package config

// Config represents the complete JJMD configuration.
type Config struct {
	// Database contains relational store connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Logging contains structured logging settings.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Auth contains authentication settings.
	Auth AuthConfig `mapstructure:"auth" yaml:"auth"`
}

// DatabaseConfig contains connection parameters for the persistent store.
// PostgreSQL is used in production; a SQLite file is the development
// fallback.
type DatabaseConfig struct {
	// Driver selects the storage engine: "postgres" or "sqlite".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// SQLitePath is the database file used when Driver is "sqlite".
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`

	// MaxConnections caps the PostgreSQL connection pool.
	MaxConnections int `mapstructure:"max_connections" yaml:"max_connections"`

	// MinConnections keeps this many PostgreSQL connections warm.
	MinConnections int `mapstructure:"min_connections" yaml:"min_connections"`
}

// LoggingConfig provides typical settings for application logs.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level" yaml:"level"`

	// Format is the log output format: "text" or "json".
	Format string `mapstructure:"format" yaml:"format"`
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	// PasswordSalt is appended to passwords before hashing.
	//
	// The salt is a single fixed value shared across all users, kept
	// this way for compatibility with credentials stored by earlier
	// deployments. This is a known weakness: rotating the salt
	// invalidates every stored password hash.
	PasswordSalt string `mapstructure:"password_salt" yaml:"password_salt"`
}

// Defaults returns a Config populated with built-in defaults.
// The default configuration is always valid.
func Defaults() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:         "sqlite",
			Host:           "localhost",
			Port:           5432,
			User:           "postgres",
			Password:       "postgres",
			Database:       "jjm",
			SSLMode:        "disable",
			SQLitePath:     "jal_jeevan_mission.db",
			MaxConnections: 10,
			MinConnections: 2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Auth: AuthConfig{
			PasswordSalt: "jjm_default_salt",
		},
	}
}

// MergeWithDefaults fills zero-valued fields from Defaults().
// It keeps a partially specified config (for example a file that only
// sets database.host) usable without repeating every default.
func (c *Config) MergeWithDefaults() {
	d := Defaults()

	if c.Database.Driver == "" {
		c.Database.Driver = d.Database.Driver
	}
	if c.Database.Host == "" {
		c.Database.Host = d.Database.Host
	}
	if c.Database.Port == 0 {
		c.Database.Port = d.Database.Port
	}
	if c.Database.User == "" {
		c.Database.User = d.Database.User
	}
	if c.Database.Password == "" {
		c.Database.Password = d.Database.Password
	}
	if c.Database.Database == "" {
		c.Database.Database = d.Database.Database
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = d.Database.SSLMode
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = d.Database.SQLitePath
	}
	if c.Database.MaxConnections == 0 {
		c.Database.MaxConnections = d.Database.MaxConnections
	}
	if c.Database.MinConnections == 0 {
		c.Database.MinConnections = d.Database.MinConnections
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = d.Logging.Format
	}
	if c.Auth.PasswordSalt == "" {
		c.Auth.PasswordSalt = d.Auth.PasswordSalt
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return errBadDriver(c.Database.Driver)
	}
	if c.Database.Driver == "postgres" {
		if c.Database.Port < 1 || c.Database.Port > 65535 {
			return errBadPort(c.Database.Port)
		}
		switch c.Database.SSLMode {
		case "disable", "require", "verify-ca", "verify-full":
		default:
			return errBadSSLMode(c.Database.SSLMode)
		}
		if c.Database.MinConnections > c.Database.MaxConnections {
			return errBadPool(c.Database.MinConnections, c.Database.MaxConnections)
		}
	}
	if c.Database.Driver == "sqlite" && c.Database.SQLitePath == "" {
		return errNoSQLitePath()
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errBadLogLevel(c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return errBadLogFormat(c.Logging.Format)
	}
	if c.Auth.PasswordSalt == "" {
		return errNoSalt()
	}
	return nil
}
