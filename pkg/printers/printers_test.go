package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/timeline"
)

func init() {
	color.NoColor = true
}

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func sample() *entry.Entry {
	return &entry.Entry{
		ID:        "3fa85f64-5717-4562-b3fc-2c963f66afa6",
		Title:     "Trip \x1b[31mday\x1b[0m",
		Content:   "<p>We walked to the <b>harbour</b>.</p><ul><li>fish</li><li>chips</li></ul>",
		EntryDate: entry.Timestamp{Time: time.Date(2024, time.May, 4, 9, 30, 0, 0, time.Local)},
		Tags:      []string{"travel", "family"},
		Media:     []entry.MediaItem{{Type: entry.Image, Filename: "pier.jpg", Size: 1572864, URL: "http://localhost:5001/uploads/pier.jpg"}},
	}
}

func TestEntriesListing(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, Width: 60}
	pp.Entries(sample())
	out := buf.String()

	for _, want := range []string{
		"May 4, 2024 9:30 AM  Trip day",
		"#travel #family",
		"We walked to the harbour. • fish • chips",
		"▣ pier.jpg (1.50MB)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[31m") {
		t.Fatalf("expected escape sequences from titles to be stripped")
	}
}

func TestEntriesEmpty(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, ShowID: true}
	pp.Entries()
	if !strings.Contains(buf.String(), " none") {
		t.Fatalf("expected none marker, got %q", buf.String())
	}
}

func TestEntryDetail(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, Width: 40, ShowID: true}
	pp.Entry(sample())
	out := buf.String()
	if !strings.Contains(out, "  We walked to the harbour.") {
		t.Fatalf("expected indented body, got:\n%s", out)
	}
	if !strings.Contains(out, "  • fish") {
		t.Fatalf("expected list items on their own lines, got:\n%s", out)
	}
	if !strings.Contains(out, "3fa85f64-5717-4562-b3fc-2c963f66afa6") {
		t.Fatalf("expected full id, got:\n%s", out)
	}
	if !strings.Contains(out, "/uploads/pier.jpg") {
		t.Fatalf("expected media url, got:\n%s", out)
	}
}

func TestTagsTable(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Tags([]entry.Tag{{Tag: "travel", Count: 12}, {Tag: "work", Count: 3}})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[1], "travel") || !strings.HasSuffix(strings.TrimSpace(lines[1]), "12") {
		t.Fatalf("unexpected row %q", lines[1])
	}
}

func TestTimelineRows(t *testing.T) {
	at := func(m time.Month, d int) *entry.Entry {
		return &entry.Entry{ID: m.String(), EntryDate: entry.Timestamp{Time: time.Date(2021, m, d, 0, 0, 0, 0, time.UTC)}}
	}
	placed, r := timeline.Layout([]*entry.Entry{at(time.January, 1), at(time.April, 15), at(time.January, 1)}, nil)
	axis, markers, labels := TimelineRows(placed, r, 40)

	if n := len([]rune(axis)); n != 40 {
		t.Fatalf("expected axis of 40 cells, got %d", n)
	}
	if []rune(markers)[0] != '◆' {
		t.Fatalf("expected stacked marker at column 0, got %q", markers)
	}
	if []rune(markers)[39] != '●' {
		t.Fatalf("expected marker at last column, got %q", markers)
	}
	for _, l := range []string{"Jan 21", "Feb 21", "Mar 21", "Apr 21"} {
		if !strings.Contains(labels, l) {
			t.Fatalf("expected label %s in %q", l, labels)
		}
	}
	if strings.Count(axis, "┼") < 3 {
		t.Fatalf("expected month ticks on axis %q", axis)
	}
}

func TestTimelineShortSpanHasNoLabels(t *testing.T) {
	e := func(d int) *entry.Entry {
		return &entry.Entry{EntryDate: entry.Timestamp{Time: time.Date(2021, time.January, d, 0, 0, 0, 0, time.UTC)}}
	}
	placed, r := timeline.Layout([]*entry.Entry{e(1), e(11)}, nil)
	_, _, labels := TimelineRows(placed, r, 30)
	if labels != "" {
		t.Fatalf("expected no month labels, got %q", labels)
	}
}

func TestQuestionRendersMarkdown(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, Width: 60}
	pp.Question("What are you grateful for today?", "notty")
	out := stripANSI(buf.String())
	if !strings.Contains(out, "Question of the day") || !strings.Contains(out, "grateful") {
		t.Fatalf("unexpected rendering %q", out)
	}
}

func TestCalendarCountsByEntryDate(t *testing.T) {
	then := time.Date(2024, time.February, 1, 1, 0, 0, 0, time.Local)
	e := sample()
	e.EntryDate = entry.Timestamp{Time: time.Date(2024, time.February, 29, 10, 0, 0, 0, time.Local)}
	count := CountByDay(then, e)
	if len(count) != 29 || count[28] != 1 {
		t.Fatalf("unexpected counts %v", count)
	}
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).PrintMonthCount(then, count)
	if !strings.Contains(buf.String(), "February 2024") {
		t.Fatalf("expected month header, got %q", buf.String())
	}
}
