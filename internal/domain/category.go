package domain

import (
	"fmt"
	"strings"
)

// Category identifies which lit directive a legacy test is ported with
type Category int

const (
	CategoryUnknown Category = iota
	CategoryError
	CategorySymbol
	CategoryModfile
	CategoryGeneric
	CategoryFolding
	CategoryPreprocess
)

// Categories lists the known categories in lookup order
var Categories = []Category{
	CategoryError,
	CategorySymbol,
	CategoryModfile,
	CategoryGeneric,
	CategoryFolding,
	CategoryPreprocess,
}

var categoryNames = map[Category]string{
	CategoryUnknown:    "UNKNOWN",
	CategoryError:      "ERROR",
	CategorySymbol:     "SYMBOL",
	CategoryModfile:    "MODFILE",
	CategoryGeneric:    "GENERIC",
	CategoryFolding:    "FOLDING",
	CategoryPreprocess: "PREPROCESS",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// IsSemantics reports whether tests of this category are declared in the semantics CMake list
func (c Category) IsSemantics() bool {
	switch c {
	case CategoryError, CategorySymbol, CategoryModfile, CategoryGeneric:
		return true
	}
	return false
}

// ParseCategory parses a category name case-insensitively
func ParseCategory(s string) (Category, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for _, c := range Categories {
		if categoryNames[c] == want {
			return c, nil
		}
	}
	return CategoryUnknown, fmt.Errorf("unknown test category %q", s)
}
