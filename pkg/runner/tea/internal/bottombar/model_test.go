package bottombar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"tableflip.dev/journal/pkg/runner/tea/internal/theme"
)

func commands() []CommandOption {
	return []CommandOption{
		{Name: "new", Description: "Write a new entry"},
		{Name: "filter", Description: "Filter by tags"},
		{Name: "find", Description: "Jump to an entry"},
		{Name: "quit", Description: "Leave"},
	}
}

func TestCommandSuggestionsFilterByPrefix(t *testing.T) {
	m := New(theme.Default().Footer)
	m.SetMode(ModeCommand)
	m.SetCommandDefinitions(commands())
	m.UpdateCommandInput("fi", "fi")
	view, lines := m.View()
	view = ansi.Strip(view)
	if lines != 3 {
		t.Fatalf("expected 2 suggestions plus input, got %d lines: %q", lines, view)
	}
	if !strings.Contains(view, "filter") || !strings.Contains(view, "find") || strings.Contains(view, "quit") {
		t.Fatalf("unexpected suggestions %q", view)
	}
	if !strings.HasSuffix(view, ":fi") {
		t.Fatalf("expected command line last, got %q", view)
	}
}

func TestArgumentsDoNotHideTheCommand(t *testing.T) {
	m := New(theme.Default().Footer)
	m.SetMode(ModeCommand)
	m.SetCommandDefinitions(commands())
	m.UpdateCommandInput("filter work", "filter work")
	m.StepSuggestion(1)
	opt, ok := m.Selected()
	if !ok || opt.Name != "filter" {
		t.Fatalf("expected filter selected, got %+v (%v)", opt, ok)
	}
}

func TestStepSuggestionWraps(t *testing.T) {
	m := New(theme.Default().Footer)
	m.SetMode(ModeCommand)
	m.SetCommandDefinitions(commands())
	m.StepSuggestion(-1)
	opt, _ := m.Selected()
	if opt.Name != "quit" {
		t.Fatalf("expected wrap to last, got %q", opt.Name)
	}
}

func TestStatusLine(t *testing.T) {
	m := New(theme.Default().Footer)
	m.SetHelp("? help")
	m.SetStatus("Entry saved successfully!")
	m.SetTheme(theme.Light().Footer, "light")
	view, _ := m.View()
	view = ansi.Strip(view)
	if view != "NORMAL │ ? help │ Entry saved successfully! │ theme light" {
		t.Fatalf("unexpected status line %q", view)
	}
}
