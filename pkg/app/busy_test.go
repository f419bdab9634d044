package app

import (
	"errors"
	"testing"
)

func TestWithBusyRestoresAfterSuccess(t *testing.T) {
	b := &Button{Text: "Save Entry"}
	err := WithBusy(b, "Saving...", func() error {
		if !b.Disabled || b.Text != "Saving..." {
			t.Fatalf("expected busy state during call, got %+v", b)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Disabled || b.Text != "Save Entry" {
		t.Fatalf("expected restore, got %+v", b)
	}
}

func TestWithBusyRestoresAfterFailure(t *testing.T) {
	b := &Button{Text: "Generate New Question"}
	boom := errors.New("boom")
	if err := WithBusy(b, "Generating...", func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected error passed through, got %v", err)
	}
	if b.Disabled || b.Text != "Generate New Question" {
		t.Fatalf("expected restore, got %+v", b)
	}
}

func TestWithBusyRestoresAfterPanic(t *testing.T) {
	b := &Button{Text: "Delete"}
	func() {
		defer func() { _ = recover() }()
		_ = WithBusy(b, "Deleting...", func() error { panic("boom") })
	}()
	if b.Disabled || b.Text != "Delete" {
		t.Fatalf("expected restore after panic, got %+v", b)
	}
}
