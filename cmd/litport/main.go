package main

import (
	"fmt"
	"os"

	"litport/internal/cli"
	"litport/internal/cli/commands"
	"litport/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "litport",
		Short:         "Port CMake-declared Fortran tests to lit",
		Long:          `Classify the legacy tests declared in the test/Semantics and test/Evaluate CMake lists, rewrite them with a lit RUN header and retire the legacy copies.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags structs (will be populated by command flags)
	var flags cli.Flags
	var listFlags cli.ListFlags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, &listFlags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
