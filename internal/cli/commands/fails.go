package commands

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"litport/internal/config"
	"litport/internal/storage"
	"litport/internal/ui"
)

// FailsCommand handles the fails command
type FailsCommand struct {
	config  *config.Config
	storage storage.Storage
}

// NewFailsCommand creates a new FailsCommand
func NewFailsCommand(cfg *config.Config, st storage.Storage) *FailsCommand {
	return &FailsCommand{
		config:  cfg,
		storage: st,
	}
}

// Execute runs the command. The interactive viewer needs a terminal;
// otherwise the failure tree is printed.
func (fc *FailsCommand) Execute(cmd *cobra.Command, args []string) error {
	report, err := fc.storage.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if fc.config.Flags.Plain || !isTerminal(out) {
		ui.NewFormatter(out, fc.config.ProjectPath).PrintFailures(report)
		return nil
	}

	var viewer ui.Viewer = ui.NewErrorViewer(fc.storage, fc.config.ProjectPath)
	return viewer.View(out, report)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
