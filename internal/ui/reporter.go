package ui

import (
	"io"

	"github.com/fatih/color"
)

// ConsoleReporter prints one line per porting step
type ConsoleReporter struct {
	out io.Writer
	err io.Writer
}

// NewConsoleReporter creates a reporter writing progress to out and failures to errOut
func NewConsoleReporter(out, errOut io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out, err: errOut}
}

// Porting announces a test about to be ported
func (r *ConsoleReporter) Porting(name, dest string) {
	color.New(color.FgCyan).Fprintf(r.out, "Porting %s to %s\n", name, dest)
}

// Completed announces a ported test
func (r *ConsoleReporter) Completed(name string) {
	color.New(color.FgGreen).Fprintf(r.out, "%s completed\n", name)
}

// Failed reports why a test could not be ported
func (r *ConsoleReporter) Failed(name string, err error) {
	color.New(color.FgRed).Fprintf(r.err, "%v\n", err)
}
