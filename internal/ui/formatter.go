package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"litport/internal/classify"
	"litport/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	out  io.Writer
	root string
}

// NewFormatter creates a new Formatter; paths are shown relative to root
func NewFormatter(out io.Writer, root string) *Formatter {
	return &Formatter{out: out, root: root}
}

// PrintTests prints one test name per line
func (f *Formatter) PrintTests(tests []string) {
	for _, test := range tests {
		fmt.Fprintln(f.out, test)
	}
}

// PrintAll prints every test tagged with its category, then the xfail tests
func (f *Formatter) PrintAll(table *classify.Table) {
	for _, c := range domain.Categories {
		for _, test := range table.Tests(c) {
			fmt.Fprintf(f.out, "%s (%s)\n", test, c)
		}
	}
	for _, test := range table.XFailTests() {
		fmt.Fprintf(f.out, "%s (UNSUPPORTED)\n", test)
	}
}

// PrintInfo prints the number of tests in every category
func (f *Formatter) PrintInfo(table *classify.Table) {
	counts := table.Counts()
	cyan := color.New(color.FgCyan)

	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "Semantics has:")
	fmt.Fprintf(f.out, "%d Error Tests\n", counts[domain.CategoryError])
	fmt.Fprintf(f.out, "%d Symbol Tests\n", counts[domain.CategorySymbol])
	fmt.Fprintf(f.out, "%d Modfile Tests\n", counts[domain.CategoryModfile])
	fmt.Fprintf(f.out, "%d Generic Tests\n", counts[domain.CategoryGeneric])
	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "Evaluate has:")
	fmt.Fprintf(f.out, "%d Folding Tests\n", counts[domain.CategoryFolding])
	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "Preprocessing has:")
	fmt.Fprintf(f.out, "%d tests\n", counts[domain.CategoryPreprocess])
	if n := len(table.XFailTests()); n > 0 {
		fmt.Fprintln(f.out)
		color.New(color.FgYellow).Fprintf(f.out, "%d tests are expected to fail\n", n)
	}
}

// PrintSummary prints each failed test, or a success line
func (f *Formatter) PrintSummary(results []domain.PortResult) {
	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
			color.New(color.FgRed).Fprintf(f.out, "Test %s failed\n", r.Name)
		}
	}
	if failed == 0 {
		color.New(color.FgGreen).Fprintln(f.out, "No fails detected")
	}
}

// TreeNode represents a node in the file tree structure
type TreeNode struct {
	Name     string
	Children map[string]*TreeNode
	Failures []domain.PortRecord
}

// PrintFailures prints the failed tests of a report grouped by source directory
func (f *Formatter) PrintFailures(report *domain.PortReport) {
	failures := report.Failures()
	if len(failures) == 0 {
		color.New(color.FgGreen).Fprintln(f.out, "✓ No port failures found!")
		return
	}

	color.New(color.FgRed).Fprintf(f.out, "✗ %d of %d test(s) failed to port\n\n", len(failures), report.Meta.TotalTests)

	root := &TreeNode{Children: make(map[string]*TreeNode)}
	for _, failure := range failures {
		current := root
		for _, part := range strings.Split(filepath.ToSlash(f.relative(filepath.Dir(failure.Source))), "/") {
			if part == "" || part == "." {
				continue
			}
			if current.Children[part] == nil {
				current.Children[part] = &TreeNode{Name: part, Children: make(map[string]*TreeNode)}
			}
			current = current.Children[part]
		}
		current.Failures = append(current.Failures, failure)
	}

	f.printTreeNode(root, "")
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string) {
	for _, failure := range node.Failures {
		color.New(color.FgYellow).Fprintf(f.out, "%s|_ %s", prefix, failure.Name)
		fmt.Fprintf(f.out, " (%s)", failure.Category)
		if failure.Resolved {
			color.New(color.FgGreen).Fprint(f.out, " (resolved)")
		}
		fmt.Fprintln(f.out)
		color.New(color.FgRed).Fprintf(f.out, "%s     %s\n", prefix, failure.Cause)
	}

	var keys []string
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		child := node.Children[key]
		color.New(color.FgCyan).Fprintf(f.out, "%s%s\n", prefix, child.Name)
		f.printTreeNode(child, prefix+"  ")
	}
}

func (f *Formatter) relative(path string) string {
	return relativeTo(f.root, path)
}

// relativeTo returns path relative to root when it lies inside it
func relativeTo(root, path string) string {
	if root == "" {
		return path
	}
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
