package classify

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"litport/internal/domain"
)

var (
	// set(NAME opens a new test list
	setPattern = regexp.MustCompile(`^set\((.*)$`)
	// anything that looks like a Fortran source: foo.f, foo.f90, foo.f) ...
	sourcePattern = regexp.MustCompile(`^.*\..*f[90|\] \n]`)
	// name following a comment marker
	commentedPattern = regexp.MustCompile(`.*#\s*(.*\.f.*)`)
)

// foldingSuffix marks a test entry in the evaluate CMake list
const foldingSuffix = ".f90"

// Build reads the legacy declarations and returns the classification table.
// A missing preprocessing directory yields no preprocessing tests.
func Build(src Sources) (*Table, error) {
	t := newTable()

	if err := t.readSemantics(src.SemanticsCMake); err != nil {
		return nil, err
	}
	if err := t.readFolding(src.EvaluateCMake); err != nil {
		return nil, err
	}
	if err := t.readPreprocess(src.PreprocessDir); err != nil {
		return nil, err
	}

	t.seal()
	return t, nil
}

// splitLines splits content into lines, each keeping its trailing newline
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (t *Table) readSemantics(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading semantics list %s: %w", path, err)
	}
	dir := filepath.Dir(path)

	var current domain.Category
	for _, line := range splitLines(string(data)) {
		bare := strings.TrimRight(line, "\r\n")
		if m := setPattern.FindStringSubmatch(bare); m != nil {
			switch m[1] {
			case "ERROR_TESTS":
				current = domain.CategoryError
			case "MODFILE_TESTS":
				current = domain.CategoryModfile
			case "SYMBOL_TESTS":
				current = domain.CategorySymbol
			default:
				current = domain.CategoryGeneric
			}
			continue
		}

		if !sourcePattern.MatchString(line) || current == domain.CategoryUnknown {
			continue
		}

		entry := strings.TrimSpace(line)
		if strings.HasPrefix(entry, "#") {
			if m := commentedPattern.FindStringSubmatch(strings.ToLower(bare)); m != nil {
				name := strings.TrimSpace(m[1])
				t.addXFail(name)
				t.add(current, name)
				continue
			}
		}

		if strings.Contains(line, "*") {
			matches, err := expandWildcard(dir, entry)
			if err != nil {
				return err
			}
			for _, name := range matches {
				t.add(current, name)
			}
			continue
		}

		t.add(current, entry)
	}
	return nil
}

// expandWildcard globs the prefix of entry up to its first '*' inside dir
func expandWildcard(dir, entry string) ([]string, error) {
	pattern := strings.SplitN(entry, "*", 2)[0] + "*"
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid wildcard entry %q: %w", entry, err)
	}
	sort.Strings(matches)

	names := make([]string, 0, len(matches))
	for _, match := range matches {
		names = append(names, filepath.Base(match))
	}
	return names, nil
}

func (t *Table) readFolding(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading evaluate list %s: %w", path, err)
	}
	for _, line := range splitLines(string(data)) {
		entry := strings.TrimSpace(line)
		if strings.HasSuffix(entry, foldingSuffix) {
			t.add(domain.CategoryFolding, entry)
		}
	}
	return nil
}

func (t *Table) readPreprocess(dir string) error {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error reading preprocessing tests %s: %w", dir, err)
	}
	for _, entry := range entries {
		if isFile(dir, entry) {
			t.add(domain.CategoryPreprocess, entry.Name())
		}
	}
	return nil
}

// isFile reports whether entry is a regular file, following symlinks
func isFile(dir string, entry os.DirEntry) bool {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.Type().IsRegular()
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}

func (t *Table) add(c domain.Category, name string) {
	t.tests[c] = append(t.tests[c], name)
}

func (t *Table) addXFail(name string) {
	t.xfail = append(t.xfail, name)
	t.xfailSet[name] = true
}
