package discovery

import (
	"path/filepath"
	"strings"
)

// Catalog is the set of test names known to the legacy build files
type Catalog interface {
	Contains(name string) bool
}

// Filter narrows candidate files down to tests worth porting
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// Known keeps the files whose base name the catalog declares
func (f *Filter) Known(files []string, catalog Catalog) []string {
	var known []string
	for _, file := range files {
		if catalog.Contains(filepath.Base(file)) {
			known = append(known, file)
		}
	}
	return known
}

// FilterByName filters test files by name pattern using wildcard matching
// Supports patterns like "resolve*.f90" or "*modfile*"
func (f *Filter) FilterByName(tests []string, pattern string) []string {
	if pattern == "" {
		return tests
	}

	var filtered []string

	for _, test := range tests {
		testName := filepath.Base(test)

		matched, err := filepath.Match(pattern, testName)
		if err == nil && matched {
			filtered = append(filtered, test)
			continue
		}

		// "*modfile*" style patterns: every literal part must occur in the name
		if strings.Contains(pattern, "*") {
			parts := strings.Split(pattern, "*")
			allPartsMatch := true
			hasNonEmptyPart := false
			for _, part := range parts {
				if part == "" {
					continue
				}
				hasNonEmptyPart = true
				if !strings.Contains(testName, part) {
					allPartsMatch = false
					break
				}
			}
			if allPartsMatch && hasNonEmptyPart {
				filtered = append(filtered, test)
			}
			continue
		}

		if !strings.Contains(pattern, "?") && strings.Contains(testName, pattern) {
			filtered = append(filtered, test)
		}
	}

	return filtered
}
