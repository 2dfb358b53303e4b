package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/watertrack/jjmd/internal/ioauth"
	"github.com/watertrack/jjmd/internal/iodb"
	"github.com/watertrack/jjmd/internal/iorecord"
	"github.com/watertrack/jjmd/internal/ioseed"
	"github.com/watertrack/jjmd/internal/iostats"
	"github.com/watertrack/jjmd/pkg/db"
)

var (
	seedUsername string
	seedPassword string
)

func getSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Import a YAML dataset",
		Long: `Import states and their statistics from a YAML dataset.

Seeding uses the same validation and upsert rules as interactive edits:
states are created once, statistics are updated in place, and running
the same file twice leaves the store unchanged. Percentages omitted in
the file are derived from the counts.

The operation runs as the given operator account, which must have the
admin role.

Examples:
  jjmd seed coverage_2024.yaml
  jjmd seed coverage_2024.yaml --username ops --password s3cret`,
		Args: cobra.ExactArgs(1),
		RunE: runSeed,
	}

	cmd.Flags().StringVar(&seedUsername, "username",
		ioauth.DefaultAdminUsername, "operator account to run as")
	cmd.Flags().StringVar(&seedPassword, "password",
		ioauth.DefaultAdminPassword, "password of the operator account")

	return cmd
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	var op db.Operator = iodb.NewOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer op.Close()

	auth := ioauth.NewAuthenticator(op, &cfg.Auth)
	actor, err := auth.Authenticate(ctx, seedUsername, seedPassword)
	if err != nil {
		return err
	}

	records := iorecord.NewManager(op)
	stats := iostats.NewAggregator(op)
	seeder := ioseed.NewSeeder(records, stats)

	res, err := seeder.SeedFile(ctx, *actor, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %d states, %d statistic records, %d snapshots.\n",
		res.States, res.Records, res.Snapshots)
	return nil
}
