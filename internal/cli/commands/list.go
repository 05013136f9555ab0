package commands

import (
	"github.com/spf13/cobra"

	"litport/internal/cli"
	"litport/internal/config"
	"litport/internal/domain"
	"litport/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config *config.Config
	flags  *cli.ListFlags
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config) *ListCommand {
	return &ListCommand{
		config: cfg,
		flags:  &cli.ListFlags{},
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	table, err := loadTable(lc.config, newLogger(lc.config))
	if err != nil {
		return err
	}
	formatter := ui.NewFormatter(cmd.OutOrStdout(), lc.config.ProjectPath)
	f := lc.flags

	if f.Info {
		formatter.PrintInfo(table)
	}

	selected := []struct {
		on       bool
		category domain.Category
	}{
		{f.Error, domain.CategoryError},
		{f.Symbol, domain.CategorySymbol},
		{f.Modfile, domain.CategoryModfile},
		{f.Generic, domain.CategoryGeneric},
		{f.Folding, domain.CategoryFolding},
		{f.Preprocess, domain.CategoryPreprocess},
	}
	for _, s := range selected {
		if s.on {
			formatter.PrintTests(table.Tests(s.category))
		}
	}

	if f.Category != "" {
		category, err := domain.ParseCategory(f.Category)
		if err != nil {
			return err
		}
		formatter.PrintTests(table.Tests(category))
	}

	// --all is ignored alongside --xfail
	if f.XFail {
		formatter.PrintTests(table.XFailTests())
	} else if f.All {
		formatter.PrintAll(table)
	}

	return nil
}
