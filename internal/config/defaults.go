package config

const (
	// DefaultProjectPath is the default repository root
	DefaultProjectPath = "."
	// DefaultSemanticsCMake lists the semantics tests, relative to the root
	DefaultSemanticsCMake = "test/Semantics/CMakeLists.txt"
	// DefaultEvaluateCMake lists the folding tests, relative to the root
	DefaultEvaluateCMake = "test/Evaluate/CMakeLists.txt"
	// DefaultPreprocessDir holds the preprocessing tests, relative to the root
	DefaultPreprocessDir = "test/Preprocessing"
	// DefaultOutputRoot is where ported test directories are created
	DefaultOutputRoot = "test-lit"
	// DefaultReportFile is the default port report file name
	DefaultReportFile = "port-results.json"
	// DefaultReportDir is the default port report directory
	DefaultReportDir = ".litport"
	// DefaultLogLevel is the default log level
	DefaultLogLevel = "warn"
	// ConfigFileName is the optional settings file in the repository root
	ConfigFileName = "litport.toml"
	// EnvFileName is the optional environment file in the repository root
	EnvFileName = ".env"
)

// DefaultCleanSuffixes mark previously ported tests removed by --clean
var DefaultCleanSuffixes = []string{".f", ".F"}

// DefaultPathsToIgnore are the directory names skipped when scanning recursively.
// Anything else in the tree is a candidate; unknown names are dropped later by the table.
var DefaultPathsToIgnore = []string{
	".git",
}
