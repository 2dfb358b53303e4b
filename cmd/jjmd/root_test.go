package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCommand(t *testing.T, root *cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, c := range root.Commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd)

	for _, name := range []string{
		"migrate", "user", "seed", "stats", "charts", "export",
	} {
		assert.NotNil(t, findCommand(t, cmd, name),
			"%s subcommand should exist", name)
	}
}

func TestRootCommandConfigFlag(t *testing.T) {
	cmd := getRootCmd()

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "string", configFlag.Value.Type())

	// persistent flags reach the subcommands
	migrate := findCommand(t, cmd, "migrate")
	require.NotNil(t, migrate)
	assert.NotNil(t, migrate.InheritedFlags().Lookup("config"))
}

func TestRootCommandHelp(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())

	helpText := buf.String()
	assert.Contains(t, helpText, "jjmd")
	assert.Contains(t, helpText, "Available Commands")
	assert.Contains(t, helpText, "JJMD_DATABASE_HOST")
}

func TestUserAddRequiresPassword(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"user", "add", "asha"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}

func TestSeedRequiresFileArgument(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"seed"})

	err := cmd.Execute()
	require.Error(t, err)
}

func TestStatsFlags(t *testing.T) {
	cmd := getRootCmd()

	stats := findCommand(t, cmd, "stats")
	require.NotNil(t, stats)
	assert.NotNil(t, stats.Flags().Lookup("top"))
	assert.NotNil(t, stats.Flags().Lookup("bottom"))
}

func TestExportDirFlag(t *testing.T) {
	cmd := getRootCmd()

	export := findCommand(t, cmd, "export")
	require.NotNil(t, export)

	dirFlag := export.Flags().Lookup("dir")
	require.NotNil(t, dirFlag)
	assert.Equal(t, ".", dirFlag.DefValue)
}
