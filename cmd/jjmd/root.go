package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/watertrack/jjmd/internal/ioconfig"
	app "github.com/watertrack/jjmd/pkg"
	"github.com/watertrack/jjmd/pkg/config"
	"github.com/watertrack/jjmd/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jjmd",
		Short: "JJMD manages the Jal Jeevan Mission coverage database",
		Long: `JJMD is a CLI tool for the rural tap-water coverage dashboard of the
Jal Jeevan Mission. It manages the database schema, operator accounts,
seed datasets, and produces statistics, chart specifications and
report exports.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (JJMD_*)
  3. Config file (config.yaml)
  4. Built-in defaults

Environment Variables:
  All configuration can be set via JJMD_* environment variables.
  Nested fields use underscores (database.host → JJMD_DATABASE_HOST).

  Examples:
    JJMD_DATABASE_DRIVER            "postgres" or "sqlite"
    JJMD_DATABASE_HOST              PostgreSQL host
    JJMD_DATABASE_SQLITE_PATH       SQLite database file
    JJMD_LOGGING_LEVEL              Log level (debug/info/warn/error)
    JJMD_AUTH_PASSWORD_SALT         Password hashing salt

  See 'go doc github.com/watertrack/jjmd/pkg/config' for the full list.`,
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-generate config file on first run if it doesn't exist
			if cfgFile == "" {
				exists, err := ioconfig.ConfigFileExists()
				if err != nil {
					return fmt.Errorf("failed to check config file: %w", err)
				}
				if !exists {
					generatedPath, err := ioconfig.GenerateDefaultConfig()
					if err != nil {
						// can still run on defaults
						fmt.Printf("Warning: could not generate config file: %v\n", err)
					} else {
						fmt.Printf("Generated default config at: %s\n", generatedPath)
					}
				}
			}

			result, err := ioconfig.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg = result.Config

			slog.SetDefault(logger.New(&cfg.Logging))

			switch result.Source {
			case "file":
				slog.Info("Configuration loaded", "source", result.SourcePath)
			case "defaults+env":
				slog.Info("Using built-in defaults with environment overrides")
			default:
				slog.Info("Using built-in defaults (no config file)")
			}

			return nil
		},
		SilenceErrors: false,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/jjmd/config.yaml)")

	rootCmd.AddCommand(getMigrateCmd())
	rootCmd.AddCommand(getUserCmd())
	rootCmd.AddCommand(getSeedCmd())
	rootCmd.AddCommand(getStatsCmd())
	rootCmd.AddCommand(getChartsCmd())
	rootCmd.AddCommand(getExportCmd())

	return rootCmd
}

// getConfig returns the loaded configuration for use in subcommands.
func getConfig() *config.Config {
	return cfg
}
