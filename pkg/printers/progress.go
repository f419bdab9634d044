package printers

import (
	"io"
	"os"

	"github.com/fatih/color"
)

// Progress is a CLI stand-in for a button: while disabled it prints its
// label, so `Saving...` shows up on stderr for the duration of a request.
type Progress struct {
	Out      io.Writer
	label    string
	disabled bool
}

func (p *Progress) Label() string { return p.label }

func (p *Progress) SetLabel(s string) {
	p.label = s
	if p.disabled {
		out := p.Out
		if out == nil {
			out = os.Stderr
		}
		_, _ = color.New(color.Faint).Fprintln(out, s)
	}
}

func (p *Progress) SetDisabled(d bool) { p.disabled = d }

