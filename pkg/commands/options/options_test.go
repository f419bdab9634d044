package options

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func TestFilterLastOverridesStart(t *testing.T) {
	now := time.Date(2024, time.March, 15, 13, 0, 0, 0, time.Local)
	o := &FilterOptions{Tags: []string{"work, travel", "home"}, Start: "2020-01-01", Last: "1w"}
	f, err := o.Filter(now)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if f.Start != "2024-03-08" {
		t.Fatalf("expected start a week back, got %q", f.Start)
	}
	if len(f.Tags) != 3 || f.Tags[1] != "travel" {
		t.Fatalf("unexpected tags %v", f.Tags)
	}
}

func TestFilterRejectsBadDates(t *testing.T) {
	o := &FilterOptions{End: "soon"}
	if _, err := o.Filter(time.Now()); err == nil {
		t.Fatalf("expected bad end date to fail")
	}
}

func TestEntryChanged(t *testing.T) {
	o := &EntryOptions{}
	cmd := &cobra.Command{Use: "edit"}
	AddEntryArgs(cmd, o)
	if err := cmd.Flags().Parse([]string{"--title", "New", "--content="}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	title, content, date := o.Changed(cmd)
	if title == nil || *title != "New" {
		t.Fatalf("expected title change")
	}
	if content == nil || *content != "" {
		t.Fatalf("expected explicit empty content to count as a change")
	}
	if date != nil {
		t.Fatalf("expected date untouched")
	}
}

func TestGetOnShort(t *testing.T) {
	o := &OnOptions{OnString: "2/28"}
	on, err := o.GetOn()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if on.Year() != time.Now().Year() || on.Month() != time.February || on.Day() != 28 {
		t.Fatalf("unexpected date %v", on)
	}
}

func TestGetOnMonthAndDate(t *testing.T) {
	for in, want := range map[string]time.Month{"2024-02": time.February, "2024-03-05": time.March} {
		on, err := (&OnOptions{OnString: in}).GetOn()
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if on.Year() != 2024 || on.Month() != want {
			t.Fatalf("%q: unexpected date %v", in, on)
		}
	}
	if _, err := (&OnOptions{OnString: "someday"}).GetOn(); err == nil {
		t.Fatalf("expected garbage to fail")
	}
}

func TestResolveID(t *testing.T) {
	if id, err := (&IDOptions{}).Resolve([]string{" abc "}); err != nil || id != "abc" {
		t.Fatalf("expected positional id, got %q (%v)", id, err)
	}
	if id, err := (&IDOptions{ID: "xyz"}).Resolve(nil); err != nil || id != "xyz" {
		t.Fatalf("expected flag id, got %q (%v)", id, err)
	}
	if _, err := (&IDOptions{ID: "xyz"}).Resolve([]string{"abc"}); err == nil {
		t.Fatalf("expected conflicting ids to fail")
	}
	if _, err := (&IDOptions{}).Resolve(nil); err == nil {
		t.Fatalf("expected missing id to fail")
	}
}
