package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"litport/internal/domain"
	"litport/internal/storage"
)

// ErrorViewer displays port failures in an interactive TUI
type ErrorViewer struct {
	storage storage.Storage
	root    string
}

// NewErrorViewer creates a new ErrorViewer. Paths are shown relative to root.
func NewErrorViewer(st storage.Storage, root string) *ErrorViewer {
	return &ErrorViewer{
		storage: st,
		root:    root,
	}
}

// failureList is the failed records of a report, in report order
type failureList struct {
	report  *domain.PortReport
	indexes []int
}

func newFailureList(report *domain.PortReport) *failureList {
	return &failureList{report: report, indexes: report.FailureIndexes()}
}

func (fl *failureList) len() int {
	return len(fl.indexes)
}

func (fl *failureList) record(pos int) *domain.PortRecord {
	return &fl.report.Details[fl.indexes[pos]]
}

// toggle flips the resolved flag of the record at pos and returns the new value
func (fl *failureList) toggle(pos int) bool {
	rec := fl.record(pos)
	rec.Resolved = !rec.Resolved
	return rec.Resolved
}

func (fl *failureList) unresolved() int {
	count := 0
	for pos := range fl.indexes {
		if !fl.record(pos).Resolved {
			count++
		}
	}
	return count
}

func (fl *failureList) itemText(pos int) string {
	rec := fl.record(pos)
	name := tview.Escape(rec.Name)
	if rec.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", pos+1, name)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", pos+1, name)
}

func (fl *failureList) header() string {
	return fmt.Sprintf(" Port Failures (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view details, ← to go back, q to exit ",
		fl.len(), fl.unresolved())
}

// View runs the viewer until the user quits. Toggling a record's resolved
// flag saves the report immediately.
func (ev *ErrorViewer) View(out io.Writer, report *domain.PortReport) error {
	failures := newFailureList(report)
	if failures.len() == 0 {
		color.New(color.FgGreen).Fprintln(out, "✓ No port failures found!")
		return nil
	}

	var saveErr error

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for pos := 0; pos < failures.len(); pos++ {
		list.AddItem(failures.itemText(pos), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	// list on the left (1/3), details on the right (2/3)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		text := failures.header()
		if saveErr != nil {
			text += fmt.Sprintf("| [red]save failed: %s[white] ", tview.Escape(saveErr.Error()))
		}
		headerView.SetText(text)
	}

	updateDetails := func() {
		pos := list.GetCurrentItem()
		if pos < 0 || pos >= failures.len() {
			return
		}
		rec := failures.record(pos)
		statsView.SetText(formatFailureStats(*rec, ev.root))
		detailsView.SetText(formatFailureDetails(*rec, ev.root))
		detailsView.ScrollToBeginning()
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC, tcell.KeyEsc:
			app.Stop()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'q', 'Q':
				app.Stop()
				return nil
			case 'r', 'R':
				pos := list.GetCurrentItem()
				if pos >= 0 && pos < failures.len() {
					failures.toggle(pos)
					saveErr = ev.storage.SaveReport(report)
					list.SetItemText(pos, failures.itemText(pos), "")
					updateHeader()
					updateDetails()
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if saveErr != nil {
		return fmt.Errorf("failed to save resolved status: %w", saveErr)
	}
	return nil
}

// formatFailureDetails formats a port failure using tview color tags
func formatFailureDetails(rec domain.PortRecord, root string) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "[red]✗ Test: %s[white]\n\n", tview.Escape(rec.Name))

	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "[cyan]Source:[white]\t%s\n", tview.Escape(relativeTo(root, rec.Source)))
	fmt.Fprintf(w, "[cyan]Category:[white]\t%s\n", rec.Category)
	if rec.OutputPath != "" {
		fmt.Fprintf(w, "[cyan]Output:[white]\t%s\n", tview.Escape(relativeTo(root, rec.OutputPath)))
	}
	if rec.XFail {
		fmt.Fprintf(w, "[cyan]XFail:[white]\tyes\n")
	}
	status := "[red]unresolved[white]"
	if rec.Resolved {
		status = "[green]resolved[white]"
	}
	fmt.Fprintf(w, "[cyan]Status:[white]\t%s\n", status)
	w.Flush()

	if rec.Cause != "" {
		fmt.Fprintf(&builder, "\n[yellow]Cause:[white]\n%s\n", tview.Escape(rec.Cause))
	}
	return builder.String()
}

// formatFailureStats formats the header line above the details
func formatFailureStats(rec domain.PortRecord, root string) string {
	path := rec.Source
	if path == "" {
		path = "Unknown path"
	} else {
		path = relativeTo(root, path)
	}
	return fmt.Sprintf("[cyan]path:[white] [yellow]%s[white]::[yellow]%s[white]\n",
		tview.Escape(path), tview.Escape(rec.Category))
}
