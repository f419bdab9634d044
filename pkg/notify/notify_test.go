package notify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestPrinter(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	p := &Printer{Out: &buf}
	p.Notify("Entry saved successfully!", false)
	p.Notify("Error saving entry", true)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if lines[0] != "✔ Entry saved successfully!" {
		t.Fatalf("unexpected success line %q", lines[0])
	}
	if lines[1] != "✘ Error saving entry" {
		t.Fatalf("unexpected error line %q", lines[1])
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	var n Notifier = r
	n.Notify("ok", false)
	n.Notify("boom", true)
	if r.Errors() != 1 {
		t.Fatalf("expected 1 error, got %d", r.Errors())
	}
	last, ok := r.Last()
	if !ok || last.Message != "boom" || !last.IsError {
		t.Fatalf("unexpected last note %+v", last)
	}
}
