package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"litport/internal/cli"
	"litport/internal/config"
)

func init() {
	color.NoColor = true
}

const semanticsList = `set(ERROR_TESTS
  resolve01.f90
  # resolve02.f90
)

set(SYMBOL_TESTS
  symbol01.f90
)

set(DOCTEST_TESTS
  doc01.f90
)
`

// newRepo lays out a legacy f18 test tree
func newRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"test/Semantics/CMakeLists.txt": semanticsList,
		"test/Semantics/resolve01.f90":  "integer :: i\n",
		"test/Semantics/resolve02.f90":  "real :: r\n",
		"test/Semantics/symbol01.f90":   "module m\nend\n",
		"test/Semantics/doc01.f90":      "! RUN: %f18 %s\nend\n",
		"test/Semantics/unlisted.f90":   "end\n",
		"test/Evaluate/CMakeLists.txt":  "set(FOLDING_TESTS\n  folding01.f90\n  folding02.f90\n)\n",
		"test/Evaluate/folding01.f90":   "end\n",
		"test/Evaluate/folding02.f90":   "end\n",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	rootCmd := &cobra.Command{Use: "litport", SilenceUsage: true, SilenceErrors: true}
	cfg := config.New()
	var flags cli.Flags
	var listFlags cli.ListFlags
	NewCommands(cfg).Register(rootCmd, &flags, &listFlags, cfg)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestPort_Semantics(t *testing.T) {
	root := newRepo(t)

	out, _, err := run(t, "port", "--root", root, "--no-vcs", filepath.Join(root, "test", "Semantics"))
	require.NoError(t, err)

	assert.Contains(t, out, "Porting resolve01.f90 to "+filepath.Join("test-lit", "Semantics")+"\n")
	assert.Contains(t, out, "resolve01.f90 completed\n")
	assert.Contains(t, out, "No fails detected\n")

	litDir := filepath.Join(root, "test-lit", "Semantics")
	assert.Equal(t, "!RUN: %S/test_errors.sh %s %flang\n!XFAIL: *\nreal :: r\n", read(t, filepath.Join(litDir, "resolve02.f90")))
	assert.Equal(t, "!RUN: %S/test_symbols.sh %s %flang\nmodule m\nend\n", read(t, filepath.Join(litDir, "symbol01.f90")))
	assert.Equal(t, "!RUN: %S/test_any.sh %s %flang\n! EXEC: %f18 %s\nend\n", read(t, filepath.Join(litDir, "doc01.f90")))
	assert.NoFileExists(t, filepath.Join(litDir, "unlisted.f90"))

	assert.Equal(t, "set(ERROR_TESTS\n)\n\nset(SYMBOL_TESTS\n)\n\nset(DOCTEST_TESTS\n)\n",
		read(t, filepath.Join(root, "test", "Semantics", "CMakeLists.txt")))
	// folding list untouched
	assert.Contains(t, read(t, filepath.Join(root, "test", "Evaluate", "CMakeLists.txt")), "folding01.f90")

	// without git the ported legacy files are still removed from the tree
	for _, name := range []string{"resolve01.f90", "resolve02.f90", "symbol01.f90", "doc01.f90"} {
		assert.NoFileExists(t, filepath.Join(root, "test", "Semantics", name))
	}
	assert.FileExists(t, filepath.Join(root, "test", "Semantics", "unlisted.f90"))
	assert.FileExists(t, filepath.Join(root, "test", "Evaluate", "folding01.f90"))

	// no report unless --save-report
	assert.NoFileExists(t, filepath.Join(root, config.DefaultReportDir, config.DefaultReportFile))
}

func TestPort_ReportPathNeedsSaveReport(t *testing.T) {
	root := newRepo(t)
	report := filepath.Join(t.TempDir(), "run.json")
	folding := filepath.Join(root, "test", "Evaluate", "folding01.f90")

	_, _, err := run(t, "port", "--root", root, "--no-vcs", "--keep-legacy", "--report", report, folding)
	require.NoError(t, err)
	assert.NoFileExists(t, report)

	_, _, err = run(t, "port", "--root", root, "--no-vcs", "--keep-legacy", "--clean", "--save-report", "--report", report, folding)
	require.NoError(t, err)
	assert.FileExists(t, report)
	assert.NoFileExists(t, filepath.Join(root, config.DefaultReportDir, config.DefaultReportFile))

	out, _, err := run(t, "fails", "--root", root, "--report", report, "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "No port failures found")
}

func TestPort_OutputOverrideAndReport(t *testing.T) {
	root := newRepo(t)
	output := filepath.Join(root, "ported")

	_, _, err := run(t, "port", "--root", root, "--no-vcs", "--keep-legacy", "--save-report",
		"-o", output, filepath.Join(root, "test", "Evaluate", "folding01.f90"))
	require.NoError(t, err)

	assert.Equal(t, "!RUN: %S/test_folding.sh %s %flang\nend\n", read(t, filepath.Join(output, "folding01.f90")))
	assert.NoDirExists(t, filepath.Join(root, "test-lit"))
	// keep-legacy leaves the list and the file alone
	assert.Contains(t, read(t, filepath.Join(root, "test", "Evaluate", "CMakeLists.txt")), "folding01.f90")
	assert.FileExists(t, filepath.Join(root, "test", "Evaluate", "folding01.f90"))

	out, _, err := run(t, "fails", "--root", root, "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "No port failures found")
}

func TestFails_PlainWithoutTerminal(t *testing.T) {
	root := newRepo(t)
	report := `{"meta":{"total_tests":2,"failed_tests":2},"details":[
  {"name":"resolve01.f90","source":"` + filepath.Join(root, "test", "Semantics", "resolve01.f90") + `","category":"ERROR","success":false,"cause":"could not open"},
  {"name":"folding01.f90","source":"` + filepath.Join(root, "test", "Evaluate", "folding01.f90") + `","category":"FOLDING","success":false,"cause":"could not write","resolved":true}
]}`
	path := filepath.Join(root, config.DefaultReportDir, config.DefaultReportFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(report), 0644))

	// output is not a terminal, so the tree is printed even without --plain
	out, _, err := run(t, "fails", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "✗ 2 of 2 test(s) failed to port")
	assert.Contains(t, out, "|_ resolve01.f90 (ERROR)\n")
	assert.Contains(t, out, "|_ folding01.f90 (FOLDING) (resolved)\n")
}

func TestPort_Clean(t *testing.T) {
	root := newRepo(t)
	litDir := filepath.Join(root, "test-lit", "Evaluate")
	require.NoError(t, os.MkdirAll(litDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(litDir, "folding02.f90"), []byte("stale\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(litDir, "lit.local.cfg"), []byte("keep\n"), 0644))

	_, _, err := run(t, "port", "--root", root, "--no-vcs", "--clean", "--keep-legacy",
		filepath.Join(root, "test", "Evaluate", "folding01.f90"))
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(litDir, "folding01.f90"))
	assert.NoFileExists(t, filepath.Join(litDir, "folding02.f90"))
	assert.FileExists(t, filepath.Join(litDir, "lit.local.cfg"))
}

func TestPort_Errors(t *testing.T) {
	root := newRepo(t)

	t.Run("no tests", func(t *testing.T) {
		_, _, err := run(t, "port", "--root", root, "--no-vcs", filepath.Join(root, "test", "Semantics", "unlisted.f90"))
		assert.True(t, errors.Is(err, ErrNoTests))
	})

	t.Run("output is a file", func(t *testing.T) {
		file := filepath.Join(root, "test", "Semantics", "CMakeLists.txt")
		_, _, err := run(t, "port", "--root", root, "--no-vcs", "-o", file, filepath.Join(root, "test", "Semantics"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "should be a directory")
	})

	t.Run("missing lists", func(t *testing.T) {
		_, _, err := run(t, "port", "--root", t.TempDir(), "--no-vcs", root)
		assert.Error(t, err)
	})
}

func TestList(t *testing.T) {
	root := newRepo(t)

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"error", []string{"-e"}, "resolve01.f90\nresolve02.f90\n"},
		{"generic", []string{"-g"}, "doc01.f90\n"},
		{"category", []string{"--category", "folding"}, "folding01.f90\nfolding02.f90\n"},
		{"xfail wins over all", []string{"-u", "-a"}, "resolve02.f90\n"},
		{"all", []string{"-a"}, "resolve01.f90 (ERROR)\nresolve02.f90 (ERROR)\nsymbol01.f90 (SYMBOL)\ndoc01.f90 (GENERIC)\nfolding01.f90 (FOLDING)\nfolding02.f90 (FOLDING)\nresolve02.f90 (UNSUPPORTED)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, append([]string{"list", "--root", root}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}

	t.Run("bad category", func(t *testing.T) {
		_, _, err := run(t, "list", "--root", root, "--category", "nope")
		assert.Error(t, err)
	})
}
