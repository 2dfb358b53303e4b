package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/watertrack/jjmd/internal/ioauth"
	"github.com/watertrack/jjmd/internal/iodb"
	"github.com/watertrack/jjmd/internal/ioschema"
	"github.com/watertrack/jjmd/pkg/config"
	"github.com/watertrack/jjmd/pkg/dashboard"
	"github.com/watertrack/jjmd/pkg/db"
)

func getMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Long: `Create the database schema or bring it up to the latest version.

This command:
  1. Connects to the configured database (PostgreSQL or SQLite)
  2. Applies GORM AutoMigrate for all tables
  3. Creates the bootstrap admin account if no 'admin' user exists

AutoMigrate only adds missing tables, columns and indexes, so running
migrate repeatedly is safe.

Examples:
  jjmd migrate
  jjmd migrate --config custom.yaml`,
		RunE: runMigrate,
	}
	return cmd
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	var op db.Operator = iodb.NewOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer op.Close()

	printConnected(cfg)

	var sm dashboard.SchemaManager = ioschema.NewManager(op)

	fmt.Println("Applying schema migrations...")
	if err := sm.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	auth := ioauth.NewAuthenticator(op, &cfg.Auth)
	if err := auth.EnsureDefaultAdmin(ctx); err != nil {
		return fmt.Errorf("failed to ensure default admin: %w", err)
	}

	fmt.Println("\nDatabase migration complete!")
	fmt.Println("\nNext steps:")
	fmt.Println("  - Run 'jjmd seed <file.yaml>' to import a dataset")
	fmt.Println("  - Run 'jjmd stats' to view coverage statistics")
	return nil
}

func printConnected(cfg *config.Config) {
	if cfg.Database.Driver == "sqlite" {
		fmt.Printf("Connected to SQLite database: %s\n",
			cfg.Database.SQLitePath)
		return
	}
	fmt.Printf("Connected to database: %s@%s:%d/%s\n",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)
}
