package commands

import (
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"

	"litport/internal/classify"
	"litport/internal/cli"
	"litport/internal/config"
	"litport/internal/discovery"
	"litport/internal/logging"
	"litport/internal/storage"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Port  *PortCommand
	List  *ListCommand
	Fails *FailsCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	filter := discovery.NewFilter()
	jsonStorage := storage.NewJSONStorage(cfg)

	return &Commands{
		Port:  NewPortCommand(cfg, filter, jsonStorage),
		List:  NewListCommand(cfg),
		Fails: NewFailsCommand(cfg, jsonStorage),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, listFlags *cli.ListFlags, cfg *config.Config) {
	rootCmd.PersistentFlags().StringVarP(&flags.Root, "root", "r", "", "Repository root (default: nearest parent declaring test/Semantics/CMakeLists.txt)")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flags.Report, "report", "", "Path of the port report (default: <root>/.litport/port-results.json)")

	prepare := func(cmd *cobra.Command, args []string) error {
		return configure(cfg, flags)
	}

	// Port command
	portCmd := &cobra.Command{
		Use:     "port <input>...",
		Short:   "Port legacy CMake tests to lit",
		Long:    "Rewrite legacy tests with a lit RUN header, stage them in git and drop them from the CMake lists",
		Args:    cobra.MinimumNArgs(1),
		RunE:    c.Port.Execute,
		PreRunE: prepare,
	}
	portCmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Save the ported file(s) in this directory instead of test-lit/<dir>")
	portCmd.Flags().BoolVarP(&flags.Clean, "clean", "c", false, "Remove old tests from the output directory")
	portCmd.Flags().BoolVarP(&flags.Glob, "glob", "g", false, "Recurse into input directories instead of only reading their immediate files")
	portCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Only port tests matching a name pattern (supports wildcards, e.g. 'resolve*.f90')")
	portCmd.Flags().BoolVar(&flags.KeepLegacy, "keep-legacy", false, "Leave legacy tests and CMake entries in place")
	portCmd.Flags().BoolVar(&flags.NoVCS, "no-vcs", false, "Do not stage anything in git")
	portCmd.Flags().BoolVar(&flags.AllowUnknown, "allow-unknown", false, "Port tests of unknown category without a RUN header instead of failing them")
	portCmd.Flags().BoolVar(&flags.LegacyMatch, "legacy-match", false, "Drop every CMake line containing a ported test name as a substring")
	portCmd.Flags().BoolVar(&flags.Progress, "progress", false, "Show a progress bar instead of per-test messages")
	portCmd.Flags().BoolVar(&flags.SaveReport, "save-report", false, "Save a JSON report of the run for the fails command")
	rootCmd.AddCommand(portCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List legacy tests by category",
		Long:    "Classify the tests declared in the legacy CMake lists without porting them",
		Args:    cobra.NoArgs,
		RunE:    c.List.Execute,
		PreRunE: prepare,
	}
	c.List.flags = listFlags
	listCmd.Flags().BoolVarP(&listFlags.Error, "error", "e", false, "Display error tests")
	listCmd.Flags().BoolVarP(&listFlags.Symbol, "symbol", "s", false, "Display symbol tests")
	listCmd.Flags().BoolVarP(&listFlags.Modfile, "modfile", "m", false, "Display modfile tests")
	listCmd.Flags().BoolVarP(&listFlags.Generic, "generic", "g", false, "Display generic tests")
	listCmd.Flags().BoolVarP(&listFlags.Folding, "folding", "f", false, "Display folding tests")
	listCmd.Flags().BoolVarP(&listFlags.Preprocess, "preprocess", "p", false, "Display preprocessing tests")
	listCmd.Flags().BoolVarP(&listFlags.XFail, "xfail", "u", false, "Display xfail tests")
	listCmd.Flags().BoolVarP(&listFlags.All, "all", "a", false, "Display all tests")
	listCmd.Flags().BoolVarP(&listFlags.Info, "info", "i", false, "Display info about tests")
	listCmd.Flags().StringVarP(&listFlags.Category, "category", "c", "", "Display tests of a category (error, symbol, modfile, generic, folding, preprocess)")
	rootCmd.AddCommand(listCmd)

	// Fails command
	failsCmd := &cobra.Command{
		Use:     "fails",
		Short:   "Show tests that failed to port",
		Long:    "Browse the failures recorded in the last saved port report and mark them resolved",
		Args:    cobra.NoArgs,
		RunE:    c.Fails.Execute,
		PreRunE: prepare,
	}
	failsCmd.Flags().BoolVar(&flags.Plain, "plain", false, "Print the failure tree instead of opening the interactive viewer")
	rootCmd.AddCommand(failsCmd)
}

// configure resolves the repository root and loads its settings into cfg
func configure(cfg *config.Config, flags *cli.Flags) error {
	root := flags.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		if root, err = config.FindRoot(wd); err != nil {
			return err
		}
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	loaded, err := config.Load(root)
	if err != nil {
		return err
	}
	*cfg = *loaded
	cfg.Flags = flags.ToConfigFlags()
	return nil
}

// loadTable classifies the legacy tests of the configured repository
func loadTable(cfg *config.Config, logger arbor.ILogger) (*classify.Table, error) {
	table, err := classify.Build(classify.Sources{
		SemanticsCMake: cfg.GetSemanticsCMakePath(),
		EvaluateCMake:  cfg.GetEvaluateCMakePath(),
		PreprocessDir:  cfg.GetPreprocessDir(),
	})
	if err != nil {
		return nil, err
	}
	for _, name := range table.Ambiguous() {
		logger.Warn().
			Str("test", name).
			Str("category", table.CategoryOf(name).String()).
			Msg("Test declared in several categories, using the first")
	}
	return table, nil
}

func newLogger(cfg *config.Config) arbor.ILogger {
	return logging.New(cfg.GetLogLevel())
}
