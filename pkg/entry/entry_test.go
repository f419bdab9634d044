package entry

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseTimeLayouts(t *testing.T) {
	cases := map[string]time.Time{
		"2024-03-01T12:30:00Z":       time.Date(2024, time.March, 1, 12, 30, 0, 0, time.UTC),
		"2024-03-01T12:30:00.123456": time.Date(2024, time.March, 1, 12, 30, 0, 123456000, time.Local),
		"2024-03-01T12:30":           time.Date(2024, time.March, 1, 12, 30, 0, 0, time.Local),
		"2024-03-01":                 time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local),
	}
	for in, want := range cases {
		got, err := ParseTime(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("parse %q: expected %v, got %v", in, want, got)
		}
	}

	if _, err := ParseTime("yesterday"); err == nil {
		t.Fatalf("expected error for unrecognised timestamp")
	}
}

func TestEntryUnmarshalFromBackend(t *testing.T) {
	body := `{
		"id": "abc",
		"title": "Trip",
		"content": "<p>We went <b>north</b></p>",
		"entry_date": "2024-03-01T12:30",
		"created_at": "2024-03-02T08:00:00.000001",
		"tags": ["travel", "family"],
		"media": [{"filename": "a.png", "url": "http://x/media/a.png", "type": "image", "size": 1048576}]
	}`
	var e Entry
	if err := json.Unmarshal([]byte(body), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.EntryDate.Input() != "2024-03-01T12:30" {
		t.Fatalf("unexpected entry date %q", e.EntryDate.Input())
	}
	if !e.HasTag("Travel") {
		t.Fatalf("expected case-insensitive tag match")
	}
	if got := e.Media[0].String(); got != "a.png (1.00MB)" {
		t.Fatalf("unexpected media string %q", got)
	}
	if e.UpdatedAt.Display() != "-" {
		t.Fatalf("expected missing updated_at to display as dash")
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText("<h2>Day one</h2><p>Hello <b>world</b></p><ul><li>one</li><li>two</li></ul>")
	want := "Day one\nHello world\n• one\n• two"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := PlainText("  just text  "); got != "just text" {
		t.Fatalf("expected plain passthrough, got %q", got)
	}
}

func TestSanitizeDropsEscapes(t *testing.T) {
	got := Sanitize("safe\x1b[31mred\x1b[0m\x07 line\nnext")
	if strings.ContainsRune(got, '\x1b') || strings.ContainsRune(got, '\x07') {
		t.Fatalf("expected control characters removed, got %q", got)
	}
	if !strings.Contains(got, "\nnext") {
		t.Fatalf("expected newline kept, got %q", got)
	}
}

func TestExcerptTruncates(t *testing.T) {
	got := Excerpt("<p>The quick brown fox jumps over the lazy dog</p>", 12)
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected tail marker, got %q", got)
	}
	if IsBlank("<p> </p>") != true {
		t.Fatalf("expected empty paragraph to be blank")
	}
}

func TestTagNamesSkipsEmpty(t *testing.T) {
	names := TagNames([]Tag{{Tag: "work", Count: 3}, {Tag: " "}, {Tag: "home"}})
	if strings.Join(names, ",") != "work,home" {
		t.Fatalf("unexpected names %v", names)
	}
}
