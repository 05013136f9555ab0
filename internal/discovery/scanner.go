package discovery

import (
	"fmt"
	"os"
	"path/filepath"
)

// Scanner collects candidate test files from the command-line inputs
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip when recursing
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan returns the files named by inputs. A directory contributes its
// immediate files, or its whole tree when recursive is set. Inputs that
// do not exist are skipped.
func (s *Scanner) Scan(inputs []string, recursive bool) ([]string, error) {
	var files []string

	for _, input := range inputs {
		input = filepath.Clean(input)
		info, err := os.Stat(input)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("cannot access %s: %w", input, err)
		}

		if !info.IsDir() {
			if info.Mode().IsRegular() {
				files = append(files, input)
			}
			continue
		}

		var found []string
		if recursive {
			found, err = s.walk(input)
		} else {
			found, err = s.list(input)
		}
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	return files, nil
}

func (s *Scanner) list(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if isFile(path, entry) {
			files = append(files, path)
		}
	}
	return files, nil
}

func (s *Scanner) walk(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && s.skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if isFile(path, d) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// isFile reports whether the entry at path is a regular file. Symlinks are
// resolved, so a linked test counts while a dangling link does not.
func isFile(path string, entry os.DirEntry) bool {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.Type().IsRegular()
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
