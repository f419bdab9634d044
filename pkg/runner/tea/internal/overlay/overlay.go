// Package overlay draws one rendered block on top of another.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Placement controls overlay alignment and sizing.
type Placement struct {
	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	MarginX    int
	MarginY    int
}

// Compose overlays the foreground view atop the background while preserving
// background content outside the overlay bounds.
func Compose(background string, width, height int, foreground string, placement Placement) string {
	fw, fh := Size(foreground)
	x, y := offsets(width, height, fw, fh, placement)
	return At(background, width, height, foreground, x, y)
}

// At overlays foreground with its top-left corner at column x, row y.
func At(background string, width, height int, foreground string, x, y int) string {
	bgLines := normalizeBackground(background, width, height)
	if foreground == "" || width <= 0 {
		return strings.Join(bgLines, "\n")
	}
	fgLines := strings.Split(foreground, "\n")
	fw, _ := Size(foreground)
	if fw > width {
		fw = width
	}
	if x < 0 {
		x = 0
	}
	if x > width-fw {
		x = width - fw
	}

	for row, fgLine := range fgLines {
		destY := y + row
		if destY < 0 || destY >= len(bgLines) {
			continue
		}
		fgLine = padToWidth(fgLine, fw)
		base := bgLines[destY]
		prefix := ansi.Truncate(base, x, "")
		suffix := ansi.TruncateLeft(base, x+fw, "")
		bgLines[destY] = prefix + "\x1b[0m" + fgLine + "\x1b[0m" + suffix
	}
	return strings.Join(bgLines, "\n")
}

// Size is the rendered width and height of a block.
func Size(block string) (int, int) {
	if block == "" {
		return 0, 0
	}
	lines := strings.Split(block, "\n")
	w := 0
	for _, l := range lines {
		if lw := lipgloss.Width(l); lw > w {
			w = lw
		}
	}
	return w, len(lines)
}

func normalizeBackground(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = padToWidth(lines[i], width)
	}
	return lines
}

func padToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(s)
	if w > width {
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-w)
}

func offsets(width, height, ow, oh int, placement Placement) (int, int) {
	x := placement.MarginX
	switch placement.Horizontal {
	case lipgloss.Right:
		x = width - ow - placement.MarginX
	case lipgloss.Center:
		x = (width - ow) / 2
	}
	y := placement.MarginY
	switch placement.Vertical {
	case lipgloss.Bottom:
		y = height - oh - placement.MarginY
	case lipgloss.Center:
		y = (height - oh) / 2
	}
	return clamp(x, 0, width-ow), clamp(y, 0, height-oh)
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
