// Package notify is the surface user-facing status messages go through.
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Duration is how long a notification stays on screen.
const Duration = 3 * time.Second

// Notifier shows a short message. isError selects error styling.
type Notifier interface {
	Notify(message string, isError bool)
}

// Func adapts a plain function to a Notifier.
type Func func(message string, isError bool)

func (f Func) Notify(message string, isError bool) { f(message, isError) }

// Printer writes notifications as coloured lines, for the CLI.
type Printer struct {
	Out io.Writer
}

func (p *Printer) Notify(message string, isError bool) {
	out := p.Out
	if out == nil {
		out = color.Output
	}
	c := color.New(color.FgGreen)
	prefix := "✔"
	if isError {
		c = color.New(color.FgRed, color.Bold)
		prefix = "✘"
	}
	_, _ = c.Fprintln(out, fmt.Sprintf("%s %s", prefix, message))
}

// Note is one recorded notification.
type Note struct {
	Message string
	IsError bool
}

// Recorder keeps every notification it receives, for callers that inspect
// what the user would have been shown.
type Recorder struct {
	mu    sync.Mutex
	notes []Note
}

func (r *Recorder) Notify(message string, isError bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, Note{Message: message, IsError: isError})
}

// Notes returns a copy of what has been recorded.
func (r *Recorder) Notes() []Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Note(nil), r.notes...)
}

// Errors counts recorded error notifications.
func (r *Recorder) Errors() int {
	n := 0
	for _, note := range r.Notes() {
		if note.IsError {
			n++
		}
	}
	return n
}

// Last is the most recent notification.
func (r *Recorder) Last() (Note, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notes) == 0 {
		return Note{}, false
	}
	return r.notes[len(r.notes)-1], true
}
