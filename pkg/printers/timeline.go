package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/timeline"
)

// TimelineRows draws the axis for placements over r: month ticks, entry
// markers and month labels, each row width cells wide.
func TimelineRows(placements []timeline.Placement, r timeline.Range, width int) (axis, markers, labels string) {
	if width < 2 {
		width = 2
	}
	ax := []rune(strings.Repeat("─", width))
	mk := []rune(strings.Repeat(" ", width))
	lb := []rune(strings.Repeat(" ", width))

	free := 0
	for _, m := range timeline.Months(r) {
		col := timeline.Column(m.Position, width)
		ax[col] = '┼'
		label := []rune(m.Label)
		if col < free || col+len(label) > width {
			continue
		}
		copy(lb[col:], label)
		free = col + len(label) + 1
	}
	ax[0], ax[width-1] = '├', '┤'

	for _, p := range placements {
		col := timeline.Column(p.Position, width)
		if mk[col] == ' ' {
			mk[col] = '●'
		} else {
			mk[col] = '◆'
		}
	}
	return string(ax), string(mk), strings.TrimRight(string(lb), " ")
}

// Timeline prints entries on a horizontal time axis, followed by the legend.
func (pp *PrettyPrint) Timeline(placements []timeline.Placement, r timeline.Range) {
	w := pp.out()
	if len(placements) == 0 {
		pp.Entries()
		return
	}
	width := pp.width()
	d := color.New(color.Faint)
	m := color.New(color.FgHiBlue, color.Bold)
	lc := color.New(color.FgBlue)

	start := entry.Timestamp{Time: r.Start}.Display()
	end := entry.Timestamp{Time: r.End}.Display()
	gap := width - len(start) - len(end)
	if gap < 1 {
		gap = 1
	}
	_, _ = d.Fprintf(w, "%s%s%s\n", start, strings.Repeat(" ", gap), end)

	axis, markers, labels := TimelineRows(placements, r, width)
	_, _ = m.Fprintln(w, markers)
	_, _ = d.Fprintln(w, axis)
	if labels != "" {
		_, _ = lc.Fprintln(w, labels)
	}
	_, _ = fmt.Fprintln(w, "")

	for _, p := range placements {
		_, _ = d.Fprintf(w, "%5.1f%%  %s  ", p.Position, p.Entry.EntryDate.Display())
		_, _ = fmt.Fprintln(w, displayTitle(p.Entry))
	}
	_, _ = fmt.Fprintln(w, "")
}
