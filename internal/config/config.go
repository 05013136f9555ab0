package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// ErrRootNotFound is returned when no enclosing repository declares legacy tests
var ErrRootNotFound = errors.New("repository root not found")

// Config holds all configuration for the application
type Config struct {
	// Repository root, every relative path below is resolved against it
	ProjectPath string `toml:"-"`

	// Legacy test declarations
	SemanticsCMake string `toml:"semantics_cmake"`
	EvaluateCMake  string `toml:"evaluate_cmake"`
	PreprocessDir  string `toml:"preprocess_dir"`

	// Output settings
	OutputRoot string `toml:"output_root"`
	ReportFile string `toml:"report_file"`
	ReportDir  string `toml:"report_dir"`

	// Suffixes of previously ported files removed by --clean
	CleanSuffixes []string `toml:"clean_suffixes"`

	// Paths to ignore when scanning recursively
	PathsToIgnore []string `toml:"paths_to_ignore"`

	LogLevel string `toml:"log_level"`

	// Command flags
	Flags Flags `toml:"-"`
}

// Flags holds command-line flags
type Flags struct {
	Root         string
	Output       string
	Clean        bool
	Glob         bool
	KeepLegacy   bool
	NoVCS        bool
	AllowUnknown bool
	LegacyMatch  bool
	Progress     bool
	SaveReport   bool
	Plain        bool
	Report       string
	NameFilter   string
	LogLevel     string
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		SemanticsCMake: DefaultSemanticsCMake,
		EvaluateCMake:  DefaultEvaluateCMake,
		PreprocessDir:  DefaultPreprocessDir,
		OutputRoot:     DefaultOutputRoot,
		ReportFile:     DefaultReportFile,
		ReportDir:      DefaultReportDir,
		LogLevel:       DefaultLogLevel,
	}
	cfg.CleanSuffixes = append([]string(nil), DefaultCleanSuffixes...)
	cfg.PathsToIgnore = append([]string(nil), DefaultPathsToIgnore...)
	return cfg
}

// Load creates a config for the repository at root, overlaying
// litport.toml, then .env and LITPORT_* environment variables.
func Load(root string) (*Config, error) {
	cfg := New()
	cfg.ProjectPath = root

	settings := filepath.Join(root, ConfigFileName)
	data, err := os.ReadFile(settings)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", settings, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read %s: %w", settings, err)
	}

	// .env is optional, variables already set in the environment win
	_ = godotenv.Load(filepath.Join(root, EnvFileName))
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"LITPORT_SEMANTICS_CMAKE": &c.SemanticsCMake,
		"LITPORT_EVALUATE_CMAKE":  &c.EvaluateCMake,
		"LITPORT_PREPROCESS_DIR":  &c.PreprocessDir,
		"LITPORT_OUTPUT_ROOT":     &c.OutputRoot,
		"LITPORT_LOG_LEVEL":       &c.LogLevel,
	}
	for key, field := range overrides {
		if v := os.Getenv(key); v != "" {
			*field = v
		}
	}
}

// FindRoot walks up from start to the first directory declaring semantics tests
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, DefaultSemanticsCMake)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w from %s", ErrRootNotFound, start)
		}
		dir = parent
	}
}

// resolve makes p absolute against the project path
func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectPath, p)
}

// GetSemanticsCMakePath returns the path to the semantics test list
func (c *Config) GetSemanticsCMakePath() string {
	return c.resolve(c.SemanticsCMake)
}

// GetEvaluateCMakePath returns the path to the folding test list
func (c *Config) GetEvaluateCMakePath() string {
	return c.resolve(c.EvaluateCMake)
}

// GetPreprocessDir returns the preprocessing test directory
func (c *Config) GetPreprocessDir() string {
	return c.resolve(c.PreprocessDir)
}

// GetOutputDir returns the directory ported tests from dirName are written to
func (c *Config) GetOutputDir(dirName string) string {
	return filepath.Join(c.resolve(c.OutputRoot), dirName)
}

// GetReportPath returns the port report path, using the flag if provided
func (c *Config) GetReportPath() string {
	if c.Flags.Report != "" {
		return c.Flags.Report
	}
	return filepath.Join(c.resolve(c.ReportDir), c.ReportFile)
}

// GetLogLevel returns the log level, using the flag if provided
func (c *Config) GetLogLevel() string {
	if c.Flags.LogLevel != "" {
		return c.Flags.LogLevel
	}
	return c.LogLevel
}
