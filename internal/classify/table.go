package classify

import (
	"litport/internal/domain"
)

// Sources locates the legacy test declarations
type Sources struct {
	SemanticsCMake string // list-of-lists CMake file (ERROR_TESTS, SYMBOL_TESTS, ...)
	EvaluateCMake  string // flat CMake list of folding tests
	PreprocessDir  string // directory whose files are preprocessing tests, may not exist
}

// Table holds the legacy tests grouped by category. It is immutable once built.
type Table struct {
	tests     map[domain.Category][]string
	xfail     []string
	xfailSet  map[string]bool
	lookup    map[string]domain.Category
	ambiguous []string
	semantics []string
	all       []string
}

func newTable() *Table {
	return &Table{
		tests:    make(map[domain.Category][]string),
		xfailSet: make(map[string]bool),
		lookup:   make(map[string]domain.Category),
	}
}

// seal derives the combined views and the first-match lookup
func (t *Table) seal() {
	t.semantics = nil
	for _, c := range []domain.Category{
		domain.CategoryError,
		domain.CategoryModfile,
		domain.CategorySymbol,
		domain.CategoryGeneric,
	} {
		t.semantics = append(t.semantics, t.tests[c]...)
	}
	t.all = append([]string{}, t.semantics...)
	t.all = append(t.all, t.tests[domain.CategoryFolding]...)
	t.all = append(t.all, t.tests[domain.CategoryPreprocess]...)

	seenIn := make(map[string]map[domain.Category]bool)
	for _, c := range domain.Categories {
		for _, name := range t.tests[c] {
			if _, ok := t.lookup[name]; !ok {
				t.lookup[name] = c
			}
			if seenIn[name] == nil {
				seenIn[name] = make(map[domain.Category]bool)
			}
			seenIn[name][c] = true
		}
	}

	t.ambiguous = nil
	for _, name := range t.all {
		if len(seenIn[name]) > 1 {
			t.ambiguous = append(t.ambiguous, name)
			// report each name once
			seenIn[name] = nil
		}
	}
}

// CategoryOf returns the first category (Error, Symbol, Modfile, Generic,
// Folding, Preprocess) listing name, or CategoryUnknown.
func (t *Table) CategoryOf(name string) domain.Category {
	if c, ok := t.lookup[name]; ok {
		return c
	}
	return domain.CategoryUnknown
}

// Contains reports whether name is a known legacy test
func (t *Table) Contains(name string) bool {
	_, ok := t.lookup[name]
	return ok
}

// IsXFail reports whether name was declared commented out
func (t *Table) IsXFail(name string) bool {
	return t.xfailSet[name]
}

// Tests returns the tests of a category in declaration order
func (t *Table) Tests(c domain.Category) []string {
	return append([]string(nil), t.tests[c]...)
}

// XFailTests returns the expected-failure tests in declaration order
func (t *Table) XFailTests() []string {
	return append([]string(nil), t.xfail...)
}

// SemanticsTests returns Error, Modfile, Symbol and Generic tests concatenated
func (t *Table) SemanticsTests() []string {
	return append([]string(nil), t.semantics...)
}

// All returns every known test, duplicates included
func (t *Table) All() []string {
	return append([]string(nil), t.all...)
}

// Ambiguous returns names listed under more than one category
func (t *Table) Ambiguous() []string {
	return append([]string(nil), t.ambiguous...)
}

// Counts returns the number of tests per category
func (t *Table) Counts() map[domain.Category]int {
	counts := make(map[domain.Category]int, len(domain.Categories))
	for _, c := range domain.Categories {
		counts[c] = len(t.tests[c])
	}
	return counts
}
