package porting

import (
	"fmt"

	"litport/internal/domain"
)

// XFailDirective marks a ported test as allowed to fail
const XFailDirective = "!XFAIL: *\n"

// directive builds a lit RUN line invoking a helper script next to the test.
// %S and %s are expanded by lit to the test directory and the test path.
func directive(script, compiler string) string {
	return fmt.Sprintf("!RUN: %%S/%s %%s %s\n", script, compiler)
}

var templates = map[domain.Category]string{
	domain.CategoryError:      directive("test_errors.sh", "%flang"),
	domain.CategorySymbol:     directive("test_symbols.sh", "%flang"),
	domain.CategoryModfile:    directive("test_modfile.sh", "%f18"),
	domain.CategoryGeneric:    directive("test_any.sh", "%flang"),
	domain.CategoryFolding:    directive("test_folding.sh", "%flang"),
	domain.CategoryPreprocess: "!RUN: %flang -E %s\n",
}

// Template returns the RUN directive for a category
func Template(c domain.Category) (string, bool) {
	tmpl, ok := templates[c]
	return tmpl, ok
}
