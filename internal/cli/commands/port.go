package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"litport/internal/classify"
	"litport/internal/cleanup"
	"litport/internal/config"
	"litport/internal/discovery"
	"litport/internal/domain"
	"litport/internal/porting"
	"litport/internal/storage"
	"litport/internal/ui"
	"litport/internal/vcs"
)

// ErrNoTests is returned when no input names a known legacy test
var ErrNoTests = errors.New("no tests found")

// PortCommand handles the port command
type PortCommand struct {
	config  *config.Config
	filter  *discovery.Filter
	storage storage.Storage
}

// NewPortCommand creates a new PortCommand
func NewPortCommand(cfg *config.Config, filter *discovery.Filter, st storage.Storage) *PortCommand {
	return &PortCommand{
		config:  cfg,
		filter:  filter,
		storage: st,
	}
}

// Execute runs the command
func (pc *PortCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := pc.config
	logger := newLogger(cfg)
	out := cmd.OutOrStdout()
	start := time.Now()

	override, err := prepareOutput(cfg.Flags.Output)
	if err != nil {
		return err
	}

	table, err := loadTable(cfg, logger)
	if err != nil {
		return err
	}

	// Discover tests
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	files, err := scanner.Scan(args, cfg.Flags.Glob)
	if err != nil {
		return err
	}
	tests := pc.filter.Known(files, table)
	tests = pc.filter.FilterByName(tests, cfg.Flags.NameFilter)
	if len(tests) == 0 {
		return ErrNoTests
	}

	var reporter porting.Reporter
	var progressBar *ui.ProgressBar
	if cfg.Flags.Progress {
		progressBar = ui.NewProgressBar(len(tests))
		reporter = progressBar
	} else {
		reporter = ui.NewConsoleReporter(out, cmd.ErrOrStderr())
	}

	porter := porting.NewPorter(porting.Options{
		AllowUnknown: cfg.Flags.AllowUnknown,
		DisplayRoot:  cfg.ProjectPath,
	}, logger, reporter)

	results := make([]domain.PortResult, 0, len(tests))
	swept := make(map[string]bool)
	for _, test := range tests {
		outputDir := override
		if outputDir == "" {
			outputDir, err = makeTestDir(cfg, filepath.Base(filepath.Dir(test)))
			if err != nil {
				return err
			}
		}

		if cfg.Flags.Clean && !swept[outputDir] {
			swept[outputDir] = true
			if err := sweepOutput(outputDir, table, cfg.CleanSuffixes); err != nil {
				return err
			}
		}

		results = append(results, porter.Port(test, outputDir, table))
	}
	if progressBar != nil {
		progressBar.Finish()
	}

	var index vcs.Index = vcs.NewGit(cfg.ProjectPath)
	if cfg.Flags.NoVCS {
		index = vcs.NewNop(cfg.ProjectPath, logger)
	} else {
		color.New(color.FgCyan).Fprintln(out, "Adding new tests to git")
	}

	match := cleanup.MatchToken
	if cfg.Flags.LegacyMatch {
		match = cleanup.MatchSubstring
	}
	synchronizer := cleanup.NewSynchronizer(cleanup.Options{
		Root:           cfg.ProjectPath,
		SemanticsCMake: cfg.GetSemanticsCMakePath(),
		EvaluateCMake:  cfg.GetEvaluateCMakePath(),
		Match:          match,
		KeepLegacy:     cfg.Flags.KeepLegacy,
	}, table, index, logger)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := synchronizer.Finalize(ctx, results); err != nil {
		return err
	}

	if cfg.Flags.SaveReport {
		if err := pc.storage.Save(results, time.Since(start), !cfg.Flags.KeepLegacy); err != nil {
			return fmt.Errorf("failed to save port report: %w", err)
		}
	}

	ui.NewFormatter(out, cfg.ProjectPath).PrintSummary(results)
	return nil
}

// prepareOutput validates the --output directory, creating it when missing
func prepareOutput(output string) (string, error) {
	if output == "" {
		return "", nil
	}
	abs, err := filepath.Abs(output)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err == nil {
		if !info.IsDir() {
			return "", fmt.Errorf("output path should be a directory or not set: %s", output)
		}
		return abs, nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}
	if err := mkdir(abs); err != nil {
		return "", err
	}
	return abs, nil
}

// makeTestDir returns the output directory for tests living in dirName
func makeTestDir(cfg *config.Config, dirName string) (string, error) {
	output, err := filepath.Abs(cfg.GetOutputDir(dirName))
	if err != nil {
		return "", err
	}
	if err := mkdir(output); err != nil {
		return "", err
	}
	return output, nil
}

func mkdir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("invalid permission to create directory at given path %s: %w", dir, err)
		}
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// sweepOutput removes previously ported tests from dir
func sweepOutput(dir string, table *classify.Table, suffixes []string) error {
	found := false
	for _, suffix := range suffixes {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+suffix+"*"))
		if err != nil {
			return err
		}
		if len(matches) > 0 {
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	for _, name := range table.All() {
		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove old test %s: %w", path, err)
		}
	}
	return nil
}
