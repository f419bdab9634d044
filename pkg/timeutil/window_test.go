package timeutil

import (
	"testing"
	"time"
)

func TestParseWindowDefault(t *testing.T) {
	dur, label, err := ParseWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dur != 30*24*time.Hour {
		t.Fatalf("expected 30 days, got %v", dur)
	}
	if label != "1mo" {
		t.Fatalf("expected label 1mo, got %s", label)
	}
}

func TestParseWindowComposite(t *testing.T) {
	dur, label, err := ParseWindow("1y2mo1w3d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (365 + 60 + 7 + 3) * 24 * time.Hour
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "1y2mo1w3d" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseWindowInvalid(t *testing.T) {
	for _, in := range []string{"noop", "3h", "0d"} {
		if _, _, err := ParseWindow(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestSince(t *testing.T) {
	now := time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)
	start, label, err := Since("1w", now)
	if err != nil {
		t.Fatalf("since: %v", err)
	}
	if !start.Equal(time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %v", start)
	}
	if label != "1w" {
		t.Fatalf("unexpected label %s", label)
	}
}
