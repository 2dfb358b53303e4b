package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/watertrack/jjmd/internal/ioauth"
	"github.com/watertrack/jjmd/internal/iodb"
	"github.com/watertrack/jjmd/pkg/db"
	"github.com/watertrack/jjmd/pkg/schema"
)

var (
	userPassword string
	userRole     string
)

func getUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage operator accounts",
	}
	cmd.AddCommand(getUserAddCmd())
	return cmd
}

func getUserAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Create an operator account",
		Long: `Create an operator account.

Roles:
  admin   can add, update and delete records
  viewer  read-only access to statistics and reports

Examples:
  jjmd user add asha --password water2024
  jjmd user add ops --password s3cret --role admin`,
		Args: cobra.ExactArgs(1),
		RunE: runUserAdd,
	}

	cmd.Flags().StringVar(&userPassword, "password", "",
		"password for the new account (required)")
	cmd.Flags().StringVar(&userRole, "role", schema.RoleViewer,
		"account role: admin or viewer")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	var op db.Operator = iodb.NewOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer op.Close()

	auth := ioauth.NewAuthenticator(op, &cfg.Auth)
	out, err := auth.CreateUser(ctx, args[0], userPassword, userRole)
	if err != nil {
		return err
	}

	fmt.Println(out.Message)
	return nil
}
