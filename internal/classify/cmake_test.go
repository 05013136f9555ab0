package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"litport/internal/domain"
)

// fixture lays out a minimal test/ tree and returns its sources
func fixture(t *testing.T, semantics, evaluate string, semanticsFiles []string, preprocess []string) Sources {
	t.Helper()
	root := t.TempDir()

	semDir := filepath.Join(root, "Semantics")
	evalDir := filepath.Join(root, "Evaluate")
	require.NoError(t, os.MkdirAll(semDir, 0755))
	require.NoError(t, os.MkdirAll(evalDir, 0755))

	require.NoError(t, os.WriteFile(filepath.Join(semDir, "CMakeLists.txt"), []byte(semantics), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(evalDir, "CMakeLists.txt"), []byte(evaluate), 0644))
	for _, name := range semanticsFiles {
		require.NoError(t, os.WriteFile(filepath.Join(semDir, name), []byte("! test\n"), 0644))
	}

	src := Sources{
		SemanticsCMake: filepath.Join(semDir, "CMakeLists.txt"),
		EvaluateCMake:  filepath.Join(evalDir, "CMakeLists.txt"),
		PreprocessDir:  filepath.Join(root, "Preprocessing"),
	}
	if preprocess != nil {
		require.NoError(t, os.MkdirAll(src.PreprocessDir, 0755))
		for _, name := range preprocess {
			require.NoError(t, os.WriteFile(filepath.Join(src.PreprocessDir, name), []byte("! pp\n"), 0644))
		}
	}
	return src
}

func TestBuild_CommentedEntryIsXFail(t *testing.T) {
	src := fixture(t, "set(ERROR_TESTS\n  foo.f90\n  # bar.f90\n)\n", "", []string{"foo.f90", "bar.f90"}, nil)

	table, err := Build(src)
	require.NoError(t, err)

	assert.Equal(t, []string{"foo.f90", "bar.f90"}, table.Tests(domain.CategoryError))
	assert.Equal(t, []string{"bar.f90"}, table.XFailTests())
	assert.True(t, table.IsXFail("bar.f90"))
	assert.False(t, table.IsXFail("foo.f90"))
	assert.Equal(t, domain.CategoryError, table.CategoryOf("bar.f90"))
}

func TestBuild_NamedLists(t *testing.T) {
	semantics := `# header comment mentioning old.f90 before any list
set(ERROR_TESTS
  resolve01.f90
  resolve02.f90
)

set(SYMBOL_TESTS
  symbol01.f90
)

set(MODFILE_TESTS
  modfile01.f90
)

set(DOCTEST_TESTS
  doctest01.f90
)
`
	table, err := Build(fixture(t, semantics, "", nil, nil))
	require.NoError(t, err)

	tests := []struct {
		name     string
		expected domain.Category
	}{
		{"resolve01.f90", domain.CategoryError},
		{"resolve02.f90", domain.CategoryError},
		{"symbol01.f90", domain.CategorySymbol},
		{"modfile01.f90", domain.CategoryModfile},
		{"doctest01.f90", domain.CategoryGeneric},
		{"old.f90", domain.CategoryUnknown},
		{"missing.f90", domain.CategoryUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, table.CategoryOf(tt.name))
		})
	}

	assert.Equal(t,
		[]string{"resolve01.f90", "resolve02.f90", "modfile01.f90", "symbol01.f90", "doctest01.f90"},
		table.SemanticsTests())
	assert.Empty(t, table.Ambiguous())
}

func TestBuild_WildcardExpandsAgainstDirectory(t *testing.T) {
	semantics := "set(ERROR_TESTS\n  kinds*.f90\n)\n"
	files := []string{"kinds01.f90", "kinds02.f90", "other.f90"}

	table, err := Build(fixture(t, semantics, "", files, nil))
	require.NoError(t, err)

	errs := table.Tests(domain.CategoryError)
	assert.Equal(t, []string{"kinds01.f90", "kinds02.f90"}, errs)
	assert.NotContains(t, errs, "other.f90")
	assert.NotContains(t, errs, "CMakeLists.txt")
}

func TestBuild_FoldingAndPreprocess(t *testing.T) {
	evaluate := "set(FOLDING_TESTS\n  folding01.f90\n  folding02.f90\n  helper.cpp\n)\n"

	table, err := Build(fixture(t, "", evaluate, nil, []string{"pp02.F", "pp01.F"}))
	require.NoError(t, err)

	assert.Equal(t, []string{"folding01.f90", "folding02.f90"}, table.Tests(domain.CategoryFolding))
	assert.Equal(t, []string{"pp01.F", "pp02.F"}, table.Tests(domain.CategoryPreprocess))
	assert.Equal(t, domain.CategoryPreprocess, table.CategoryOf("pp01.F"))
	assert.Len(t, table.All(), 4)
}

func TestBuild_PreprocessFollowsSymlinks(t *testing.T) {
	src := fixture(t, "", "", nil, []string{"pp01.F"})
	target := filepath.Join(t.TempDir(), "shared.F")
	require.NoError(t, os.WriteFile(target, []byte("! pp\n"), 0644))
	if err := os.Symlink(target, filepath.Join(src.PreprocessDir, "linked.F")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(src.PreprocessDir, "missing.F"), filepath.Join(src.PreprocessDir, "dangling.F")))
	require.NoError(t, os.Mkdir(filepath.Join(src.PreprocessDir, "sub"), 0755))

	table, err := Build(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"linked.F", "pp01.F"}, table.Tests(domain.CategoryPreprocess))
}

func TestBuild_MissingPreprocessDirIsNotAnError(t *testing.T) {
	table, err := Build(fixture(t, "set(ERROR_TESTS\n  a.f90\n)\n", "", nil, nil))
	require.NoError(t, err)
	assert.Empty(t, table.Tests(domain.CategoryPreprocess))
}

func TestBuild_MissingListsAreFatal(t *testing.T) {
	src := fixture(t, "", "", nil, nil)

	t.Run("semantics", func(t *testing.T) {
		bad := src
		bad.SemanticsCMake = filepath.Join(t.TempDir(), "nope.txt")
		table, err := Build(bad)
		assert.Error(t, err)
		assert.Nil(t, table)
	})

	t.Run("evaluate", func(t *testing.T) {
		bad := src
		bad.EvaluateCMake = filepath.Join(t.TempDir(), "nope.txt")
		table, err := Build(bad)
		assert.Error(t, err)
		assert.Nil(t, table)
	})
}

func TestTable_AmbiguousFirstMatchWins(t *testing.T) {
	semantics := "set(SYMBOL_TESTS\n  twice.f90\n)\nset(ERROR_TESTS\n  twice.f90\n)\n"

	table, err := Build(fixture(t, semantics, "twice.f90\n", nil, nil))
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryError, table.CategoryOf("twice.f90"))
	assert.Equal(t, []string{"twice.f90"}, table.Ambiguous())
}

func TestTable_AccessorsReturnCopies(t *testing.T) {
	table, err := Build(fixture(t, "set(ERROR_TESTS\n  a.f90\n)\n", "", nil, nil))
	require.NoError(t, err)

	errs := table.Tests(domain.CategoryError)
	errs[0] = "mutated.f90"
	assert.Equal(t, []string{"a.f90"}, table.Tests(domain.CategoryError))
	assert.Equal(t, 1, table.Counts()[domain.CategoryError])
}
