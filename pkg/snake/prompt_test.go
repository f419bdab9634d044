package snake

import (
	"io"
	"strings"
	"testing"
)

func TestParseBool(t *testing.T) {
	for _, s := range []string{"y", "Yes", "true", "1"} {
		if v, err := ParseBool(s); err != nil || !v {
			t.Fatalf("expected %q to be true, got %v (%v)", s, v, err)
		}
	}
	for _, s := range []string{"n", "No", "false", "0"} {
		if v, err := ParseBool(s); err != nil || v {
			t.Fatalf("expected %q to be false, got %v (%v)", s, v, err)
		}
	}
	if _, err := ParseBool("maybe"); err == nil {
		t.Fatalf("expected an error for maybe")
	}
}

func TestValidateDate(t *testing.T) {
	if err := ValidateDate(""); err != nil {
		t.Fatalf("empty date should default, got %v", err)
	}
	if err := ValidateDate("2024-03-01"); err != nil {
		t.Fatalf("expected date to parse, got %v", err)
	}
	if err := ValidateDate("2024-03-01T09:30"); err != nil {
		t.Fatalf("expected date-time to parse, got %v", err)
	}
	if err := ValidateDate("next tuesday"); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestValidateContent(t *testing.T) {
	if err := ValidateContent("<p> </p>"); err == nil {
		t.Fatalf("expected markup-only content to be rejected")
	}
	if err := ValidateContent("<p>hello</p>"); err != nil {
		t.Fatalf("expected content to pass, got %v", err)
	}
}

func TestWizardWithReaderIsInteractive(t *testing.T) {
	w := &Wizard{In: io.NopCloser(strings.NewReader("y\n"))}
	if !w.interactive() {
		t.Fatalf("expected an explicit reader to count as interactive")
	}
}
