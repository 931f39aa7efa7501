package ui

import (
	"io"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// DefaultTermWidth is the fallback terminal width when detection fails.
const DefaultTermWidth = 120

// DisplayContext holds display parameters for one output.
type DisplayContext struct {
	TermWidth int  // detected or fallback terminal width
	IsTTY     bool // whether the output is a terminal
}

// NewDisplayContext inspects w, detecting width when it is a terminal.
func NewDisplayContext(w io.Writer) *DisplayContext {
	fd, ok := fileDescriptor(w)
	isTTY := ok && isatty.IsTerminal(fd)

	width := DefaultTermWidth
	if isTTY {
		if cols, _, err := term.GetSize(fd); err == nil && cols > 0 {
			width = cols
		}
	}

	return &DisplayContext{
		TermWidth: width,
		IsTTY:     isTTY,
	}
}

// AvailableWidth returns the usable width after accounting for left margin.
func (d *DisplayContext) AvailableWidth(leftMargin int) int {
	return d.TermWidth - leftMargin
}

// IsTerminal reports whether v is a file attached to a terminal.
func IsTerminal(v any) bool {
	fd, ok := fileDescriptor(v)
	return ok && isatty.IsTerminal(fd)
}

func fileDescriptor(v any) (uintptr, bool) {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return 0, false
	}
	return f.Fd(), true
}
