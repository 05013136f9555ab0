package discovery

import (
	"testing"
)

type setCatalog map[string]bool

func (c setCatalog) Contains(name string) bool { return c[name] }

func TestFilter_Known(t *testing.T) {
	filter := NewFilter()
	catalog := setCatalog{"resolve01.f90": true, "folding01.f90": true}

	files := []string{
		"/repo/test/Semantics/resolve01.f90",
		"/repo/test/Semantics/CMakeLists.txt",
		"/repo/test/Evaluate/folding01.f90",
		"/repo/test/Semantics/helper.f90",
	}

	known := filter.Known(files, catalog)
	if len(known) != 2 {
		t.Fatalf("expected 2 known files, got %d: %v", len(known), known)
	}
	if known[0] != files[0] || known[1] != files[2] {
		t.Errorf("unexpected known files: %v", known)
	}
}

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()

	tests := []struct {
		name     string
		tests    []string
		pattern  string
		expected int // Expected number of matches
	}{
		{
			name:     "empty pattern returns all",
			tests:    []string{"resolve01.f90", "modfile01.f90", "symbol01.f90"},
			pattern:  "",
			expected: 3,
		},
		{
			name:     "glob pattern",
			tests:    []string{"resolve01.f90", "resolve02.f90", "modfile01.f90"},
			pattern:  "resolve*.f90",
			expected: 2,
		},
		{
			name:     "wildcard pattern matches substring",
			tests:    []string{"resolve01.f90", "modfile01.f90", "modfile02.f90"},
			pattern:  "*modfile*",
			expected: 2,
		},
		{
			name:     "simple contains match",
			tests:    []string{"resolve01.f90", "modfile01.f90"},
			pattern:  "modfile",
			expected: 1,
		},
		{
			name:     "no matches",
			tests:    []string{"resolve01.f90", "modfile01.f90"},
			pattern:  "*folding*",
			expected: 0,
		},
		{
			name:     "full path with wildcard",
			tests:    []string{"/repo/test/Semantics/resolve01.f90", "/repo/test/Semantics/modfile01.f90"},
			pattern:  "resolve*",
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.FilterByName(tt.tests, tt.pattern)
			if len(result) != tt.expected {
				t.Errorf("expected %d matches, got %d", tt.expected, len(result))
			}
		})
	}
}
