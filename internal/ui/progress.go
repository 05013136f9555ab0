package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar creates and manages progress bars
type ProgressBar struct {
	bar     *progressbar.ProgressBar
	success int
	failed  int
}

// NewProgressBar creates a new progress bar
func NewProgressBar(count int) *ProgressBar {
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(describe(0, 0)),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar}
}

func describe(successCount, failCount int) string {
	return color.CyanString("Porting tests: ") +
		color.GreenString("[ported: %d", successCount) +
		" | " +
		color.RedString("failed: %d]", failCount)
}

// Porting is a no-op, the bar only moves on completion
func (p *ProgressBar) Porting(name, dest string) {}

// Completed counts a ported test
func (p *ProgressBar) Completed(name string) {
	p.success++
	p.update()
}

// Failed counts a test that could not be ported
func (p *ProgressBar) Failed(name string, err error) {
	p.failed++
	p.update()
}

func (p *ProgressBar) update() {
	p.bar.Set(p.success + p.failed)
	p.bar.Describe(describe(p.success, p.failed))
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	p.bar.Finish()
}
