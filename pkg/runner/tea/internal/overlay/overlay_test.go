package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

func TestAtKeepsBackgroundAroundBlock(t *testing.T) {
	bg := strings.Join([]string{"..........", "..........", ".........."}, "\n")
	out := ansi.Strip(At(bg, 10, 3, "ab\ncd", 3, 1))
	lines := strings.Split(out, "\n")
	if lines[0] != ".........." {
		t.Fatalf("expected first row untouched, got %q", lines[0])
	}
	if lines[1] != "...ab....." || lines[2] != "...cd....." {
		t.Fatalf("unexpected overlay rows %q", lines[1:])
	}
}

func TestAtClampsToRightEdge(t *testing.T) {
	out := ansi.Strip(At("", 6, 1, "xyz", 5, 0))
	if out != "   xyz" {
		t.Fatalf("expected block pulled inside, got %q", out)
	}
}

func TestComposeCenters(t *testing.T) {
	out := ansi.Strip(Compose("", 8, 3, "ab", Placement{Horizontal: lipgloss.Center, Vertical: lipgloss.Center}))
	lines := strings.Split(out, "\n")
	if lines[1] != "   ab   " {
		t.Fatalf("expected centred block, got %q", lines[1])
	}
}
