package theme

import (
	"testing"

	"tableflip.dev/journal/pkg/store"
)

func TestFor(t *testing.T) {
	if got := For(store.Light); got.Name != store.Light || got.Glamour != "light" {
		t.Fatalf("expected light theme, got %s/%s", got.Name, got.Glamour)
	}
	if got := For(store.Theme("sepia")); got.Name != store.Dark {
		t.Fatalf("expected unknown themes to fall back to dark, got %s", got.Name)
	}
}

func TestHeatScale(t *testing.T) {
	got := HeatScale("#000000", "#ffffff", 3)
	if len(got) != 3 || got[0] != "#000000" || got[2] != "#ffffff" {
		t.Fatalf("expected endpoints kept, got %v", got)
	}
	if got[1] == got[0] || got[1] == got[2] {
		t.Fatalf("expected a distinct middle shade, got %v", got)
	}
	if HeatScale("nope", "#ffffff", 3) != nil {
		t.Fatalf("expected bad hex to yield nothing")
	}
	if n := len(Dark().Calendar.Heat); n != heatLevels {
		t.Fatalf("expected %d heat styles, got %d", heatLevels, n)
	}
}
