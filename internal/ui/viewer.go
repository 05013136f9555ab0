package ui

import (
	"io"

	"litport/internal/domain"
)

// Viewer displays the failures of a port report
type Viewer interface {
	View(out io.Writer, report *domain.PortReport) error
}
