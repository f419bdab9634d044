package report

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/runner/tea/internal/theme"
)

func sample() app.ReportResult {
	jan := time.Date(2024, time.January, 5, 9, 0, 0, 0, time.Local)
	feb := time.Date(2024, time.February, 2, 9, 0, 0, 0, time.Local)
	return app.ReportResult{
		Since: jan.AddDate(0, 0, -4),
		Until: feb,
		Sections: []app.ReportSection{
			{Month: jan, Entries: []*entry.Entry{{ID: "1", Title: "Snow", Tags: []string{"winter"}, EntryDate: entry.Timestamp{Time: jan}}}},
			{Month: feb, Entries: []*entry.Entry{{ID: "2", EntryDate: entry.Timestamp{Time: feb}}}},
		},
		Tags:  []entry.Tag{{Tag: "winter", Count: 1}},
		Total: 2,
	}
}

func TestReportLines(t *testing.T) {
	m := New(theme.Default())
	m.SetViewport(80, 30)
	m.SetData("1mo", sample())
	view := ansi.Strip(m.View())
	for _, want := range []string{"Report · last 1mo", "2 entries", "Jan 24 (1)", "Snow  #winter", "Untitled", "#winter 1"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in report view: %q", want, view)
		}
	}
}

func TestReportScrollBounds(t *testing.T) {
	m := New(theme.Default())
	m.SetViewport(80, 3)
	m.SetData("1mo", sample())
	m.ScrollEnd()
	if m.offset != len(m.lines)-3 {
		t.Fatalf("expected offset at last page, got %d of %d", m.offset, len(m.lines))
	}
	m.ScrollPages(-10)
	if m.offset != 0 {
		t.Fatalf("expected offset clamped to 0, got %d", m.offset)
	}
}

func TestEmptyReport(t *testing.T) {
	m := New(theme.Default())
	m.SetViewport(80, 10)
	m.SetData("3d", app.ReportResult{})
	if !strings.Contains(ansi.Strip(m.View()), "No entries found") {
		t.Fatalf("expected empty message")
	}
}
