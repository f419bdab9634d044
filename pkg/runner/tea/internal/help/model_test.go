package help

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

var sample = []Section{
	{Title: "Timeline", Bindings: []Binding{
		{Keys: []string{"n"}, Action: "write a new entry"},
		{Keys: []string{"|"}, Action: "a | b"},
	}},
	{Title: "Empty"},
}

func TestMarkdown(t *testing.T) {
	doc := Markdown("Journal", sample)
	if !strings.HasPrefix(doc, "# Journal\n") {
		t.Fatalf("expected title heading, got %q", doc)
	}
	if !strings.Contains(doc, "| `n` | write a new entry |") {
		t.Fatalf("expected a row per binding, got %q", doc)
	}
	if !strings.Contains(doc, "| `\\|` | a \\| b |") {
		t.Fatalf("expected pipes escaped, got %q", doc)
	}
	if strings.Contains(doc, "## Empty") {
		t.Fatalf("expected empty sections skipped, got %q", doc)
	}
}

func TestHelpRendersKeys(t *testing.T) {
	m := New(70, 40, "notty", sample)
	view := ansi.Strip(m.View())
	if m.err != nil {
		t.Fatalf("render failed: %v", m.err)
	}
	if !strings.Contains(view, "Timeline") || !strings.Contains(view, "write a new entry") {
		t.Fatalf("expected help content in view: %q", view)
	}
}

func TestHelpMinimumSize(t *testing.T) {
	m := New(5, 2, "notty", sample)
	if m.width != minWidth || m.height != minHeight {
		t.Fatalf("expected minimum size, got %dx%d", m.width, m.height)
	}
}
