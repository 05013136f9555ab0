package cleanup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"

	"litport/internal/classify"
	"litport/internal/domain"
	"litport/internal/vcs"
)

// MatchMode selects how a CMake line is matched against a test name
type MatchMode int

const (
	// MatchToken drops lines with a token equal to the test name
	MatchToken MatchMode = iota
	// MatchSubstring drops lines containing the test name anywhere
	MatchSubstring
)

// Options configure a Synchronizer
type Options struct {
	Root           string // repository root, staged paths are relative to it
	SemanticsCMake string
	EvaluateCMake  string
	Match          MatchMode
	// KeepLegacy stages the new tests but leaves legacy files and lists alone
	KeepLegacy bool
}

// Synchronizer brings the git index and the legacy CMake lists in line with a port run
type Synchronizer struct {
	opts   Options
	table  *classify.Table
	index  vcs.Index
	logger arbor.ILogger
}

// NewSynchronizer creates a new Synchronizer
func NewSynchronizer(opts Options, table *classify.Table, index vcs.Index, logger arbor.ILogger) *Synchronizer {
	return &Synchronizer{
		opts:   opts,
		table:  table,
		index:  index,
		logger: logger,
	}
}

// Finalize stages the new test directories, removes the successfully ported
// legacy tests and drops their entries from the CMake lists. Failed ports are
// left untouched.
func (s *Synchronizer) Finalize(ctx context.Context, results []domain.PortResult) error {
	var outputs []string
	seenOutput := make(map[string]bool)
	var clean []domain.PortResult
	for _, r := range results {
		if !r.Success {
			continue
		}
		clean = append(clean, r)
		if !seenOutput[r.OutputDir] {
			seenOutput[r.OutputDir] = true
			outputs = append(outputs, r.OutputDir)
		}
	}
	if len(clean) == 0 {
		s.logger.Info().Msg("Nothing ported, skipping cleanup")
		return nil
	}

	addPaths, err := s.relativeAll(outputs)
	if err != nil {
		return err
	}
	if err := s.index.Add(ctx, addPaths...); err != nil {
		return fmt.Errorf("failed to stage ported tests: %w", err)
	}

	if s.opts.KeepLegacy {
		return nil
	}

	sources := make([]string, 0, len(clean))
	for _, r := range clean {
		sources = append(sources, r.Source)
	}
	removePaths, err := s.relativeAll(sources)
	if err != nil {
		return err
	}
	if err := s.index.Remove(ctx, removePaths...); err != nil {
		return fmt.Errorf("failed to remove legacy tests: %w", err)
	}

	var folding, semantics []string
	for _, r := range clean {
		category := s.table.CategoryOf(r.Name)
		switch {
		case category == domain.CategoryFolding:
			folding = append(folding, r.Name)
		case category.IsSemantics():
			semantics = append(semantics, r.Name)
		}
	}

	if err := s.rewrite(s.opts.EvaluateCMake, folding); err != nil {
		return err
	}
	return s.rewrite(s.opts.SemanticsCMake, semantics)
}

// rewrite drops every line of path that names one of tests
func (s *Synchronizer) rewrite(path string, tests []string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}

	lines := strings.SplitAfter(string(data), "\n")
	kept := make([]string, 0, len(lines))
	dropped := 0
	for _, line := range lines {
		if s.names(line, tests) {
			dropped++
			continue
		}
		kept = append(kept, line)
	}

	if err := os.WriteFile(path, []byte(strings.Join(kept, "")), 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	s.logger.Debug().Str("file", path).Int("dropped", dropped).Msg("Rewrote CMake list")
	return nil
}

func (s *Synchronizer) names(line string, tests []string) bool {
	for _, test := range tests {
		if Matches(line, test, s.opts.Match) {
			return true
		}
	}
	return false
}

// Matches reports whether a CMake line declares test under the given mode
func Matches(line, test string, mode MatchMode) bool {
	if mode == MatchSubstring {
		return strings.Contains(line, test)
	}
	for _, token := range strings.FieldsFunc(line, isSeparator) {
		if token == test {
			return true
		}
	}
	return false
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', '#', '(', ')', '"', '\'':
		return true
	}
	return false
}

func (s *Synchronizer) relativeAll(paths []string) ([]string, error) {
	rel := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := relative(s.opts.Root, p)
		if err != nil {
			return nil, err
		}
		rel = append(rel, r)
	}
	return rel, nil
}

func relative(root, path string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the repository %s", path, root)
	}
	return rel, nil
}
