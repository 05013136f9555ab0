package porting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"

	"litport/internal/classify"
	"litport/internal/domain"
)

// ErrUnknownCategory is returned for tests no CMake list declares
var ErrUnknownCategory = errors.New("no directive template for test")

// Reporter receives per-test progress
type Reporter interface {
	Porting(name, dest string)
	Completed(name string)
	Failed(name string, err error)
}

// Options tune porting behaviour
type Options struct {
	// AllowUnknown writes tests of unknown category with whatever header
	// applies (the xfail line or nothing) instead of failing them.
	AllowUnknown bool
	// DisplayRoot is the directory destinations are reported relative to
	DisplayRoot string
}

// Porter rewrites legacy tests into lit tests
type Porter struct {
	opts     Options
	logger   arbor.ILogger
	reporter Reporter
}

// NewPorter creates a new Porter
func NewPorter(opts Options, logger arbor.ILogger, reporter Reporter) *Porter {
	return &Porter{
		opts:     opts,
		logger:   logger,
		reporter: reporter,
	}
}

// Port writes the lit version of source into outputDir
func (p *Porter) Port(source, outputDir string, table *classify.Table) domain.PortResult {
	name := filepath.Base(source)
	result := domain.PortResult{
		Source:     source,
		Name:       name,
		OutputDir:  outputDir,
		OutputPath: filepath.Join(outputDir, name),
		Category:   table.CategoryOf(name),
		XFail:      table.IsXFail(name),
	}

	if p.reporter != nil {
		p.reporter.Porting(name, p.display(outputDir))
	}

	template, ok := Template(result.Category)
	if !ok && !p.opts.AllowUnknown {
		return p.fail(result, fmt.Errorf("%w %s", ErrUnknownCategory, name))
	}

	content, err := os.ReadFile(source)
	if err != nil {
		return p.fail(result, fmt.Errorf("could not open %s: %w", source, err))
	}

	ported := Rewrite(string(content), result.Category, template, result.XFail)

	if err := os.WriteFile(result.OutputPath, []byte(ported), 0644); err != nil {
		return p.fail(result, fmt.Errorf("could not write to %s: %w", result.OutputPath, err))
	}

	result.Success = true
	p.logger.Debug().
		Str("test", name).
		Str("category", result.Category.String()).
		Bool("xfail", result.XFail).
		Str("output", result.OutputPath).
		Msg("Ported test")
	if p.reporter != nil {
		p.reporter.Completed(name)
	}
	return result
}

// Rewrite prepends the directive (and the xfail marker) to content.
// Generic tests have their own RUN lines renamed to EXEC.
func Rewrite(content string, category domain.Category, template string, xfail bool) string {
	if category == domain.CategoryGeneric {
		content = strings.ReplaceAll(content, "RUN", "EXEC")
	}

	var b strings.Builder
	b.Grow(len(template) + len(XFailDirective) + len(content))
	b.WriteString(template)
	if xfail {
		b.WriteString(XFailDirective)
	}
	b.WriteString(content)
	return b.String()
}

func (p *Porter) fail(result domain.PortResult, err error) domain.PortResult {
	result.Success = false
	result.Err = err
	p.logger.Warn().Err(err).Str("test", result.Name).Msg("Port failed")
	if p.reporter != nil {
		p.reporter.Failed(result.Name, err)
	}
	return result
}

func (p *Porter) display(dir string) string {
	if p.opts.DisplayRoot == "" {
		return dir
	}
	if rel, err := filepath.Rel(p.opts.DisplayRoot, dir); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return dir
}
