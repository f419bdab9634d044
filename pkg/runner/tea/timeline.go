package teaui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
	"go.uber.org/zap"

	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/printers"
	"tableflip.dev/journal/pkg/runner/tea/internal/overlay"
	"tableflip.dev/journal/pkg/timeline"
)

// Screen geometry of the timeline pane, in cells.
const (
	padX        = 2
	headerRow   = 0
	boundsRow   = 1
	markersRow  = 8
	axisRow     = 9
	labelsRow   = 10
	listTop     = 12
	previewMaxW = 40
)

type hitKind int

const (
	hitNone hitKind = iota
	hitMarker
	hitPreview
)

type pointerTarget struct {
	kind hitKind
	id   string
}

func (m *Model) timelineWidth() int {
	return max(m.width()-2*padX, 20)
}

// layoutTimeline places the loaded entries on the axis. An active preview
// survives only if its entry is still there.
func (m *Model) layoutTimeline() {
	var explicit *timeline.Range
	if m.svc != nil {
		f := m.svc.Filter()
		r, err := timeline.ParseRange(f.Start, f.End)
		if err != nil {
			m.log.Debug("ignoring filter range", zap.String("start", f.Start), zap.String("end", f.End), zap.Error(err))
		} else {
			explicit = r
		}
	}
	m.placements, m.rng = timeline.Layout(m.entries, explicit)
	if m.cursor >= len(m.placements) {
		m.cursor = len(m.placements) - 1
	}

	id := m.preview.Active()
	if id == "" {
		return
	}
	if m.placementIndex(id) < 0 {
		m.preview.Reset()
		m.cursor = -1
		return
	}
	if m.preview.State(id) == timeline.Hovering {
		m.enterMarker(id)
	}
}

func (m *Model) placementIndex(id string) int {
	for i, p := range m.placements {
		if p.Entry.ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) markerColumn(p timeline.Placement) int {
	return timeline.Column(p.Position, m.timelineWidth())
}

// enterMarker shows the preview for id, positioned over its marker.
func (m *Model) enterMarker(id string) {
	i := m.placementIndex(id)
	if i < 0 {
		return
	}
	box := m.previewBox(m.placements[i].Entry)
	m.preview.Enter(id, timeline.Geometry{
		Anchor:    float64(m.markerColumn(m.placements[i])),
		Width:     float64(lipgloss.Width(box)),
		Container: float64(m.timelineWidth()),
	})
}

// stepMarker moves the keyboard cursor along the markers and previews the
// marker it lands on.
func (m *Model) stepMarker(delta int) {
	n := len(m.placements)
	if n == 0 {
		return
	}
	switch {
	case m.cursor < 0 && delta < 0:
		m.cursor = n - 1
	case m.cursor < 0:
		m.cursor = 0
	default:
		m.cursor += delta
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	e := m.placements[m.cursor].Entry
	m.enterMarker(e.ID)
	m.selectListEntry(e.ID)
}

func (m *Model) selectListEntry(id string) {
	for i, it := range m.entList.Items() {
		if ei, ok := it.(entryItem); ok && ei.e.ID == id {
			m.entList.Select(i)
			return
		}
	}
}

// hitTest maps a pointer position to the marker or preview under it.
func (m *Model) hitTest(x, y int) pointerTarget {
	if p, ok := m.preview.Visible(); ok {
		if e := m.entryByID(p.ID); e != nil {
			bw, bh := overlay.Size(m.previewBox(e))
			left := padX + int(p.Offset)
			top := markersRow - bh
			if x >= left && x < left+bw && y >= top && y < markersRow {
				return pointerTarget{kind: hitPreview, id: p.ID}
			}
		}
	}
	if y != markersRow {
		return pointerTarget{}
	}
	col := x - padX
	if col < 0 || col >= m.timelineWidth() {
		return pointerTarget{}
	}
	// Later entries are drawn over earlier ones sharing a column.
	for i := len(m.placements) - 1; i >= 0; i-- {
		if m.markerColumn(m.placements[i]) == col {
			return pointerTarget{kind: hitMarker, id: m.placements[i].Entry.ID}
		}
	}
	return pointerTarget{}
}

func (m *Model) handleMotion(mouse tea.Mouse) {
	t := m.hitTest(mouse.X, mouse.Y)
	m.pointer = t
	switch t.kind {
	case hitMarker:
		if m.preview.Active() == t.id && m.preview.State(t.id) == timeline.Hovering {
			return
		}
		m.cursor = m.placementIndex(t.id)
		m.enterMarker(t.id)
	case hitPreview:
		m.preview.Hold()
	default:
		if id := m.preview.Active(); id != "" {
			m.preview.Leave(id)
		}
	}
}

func (m *Model) handleClick(mouse tea.Mouse) tea.Cmd {
	if mouse.Button != tea.MouseLeft {
		return nil
	}
	t := m.hitTest(mouse.X, mouse.Y)
	if t.kind == hitNone {
		return nil
	}
	if e := m.entryByID(t.id); e != nil {
		m.preview.Reset()
		m.openDetail(e)
	}
	return nil
}

// previewBox renders the hover card for e: title, date and tags, and the
// first lines of the content.
func (m *Model) previewBox(e *entry.Entry) string {
	inner := min(previewMaxW, m.timelineWidth()) - 4
	if inner < 8 {
		inner = 8
	}
	th := m.th.Timeline
	lines := []string{th.PreviewTitle.Render(ansi.Truncate(displayTitle(e), inner, "…"))}

	meta := e.EntryDate.Display()
	if len(e.Tags) > 0 {
		meta += " · #" + strings.Join(e.Tags, " #")
	}
	lines = append(lines, th.PreviewMeta.Render(ansi.Truncate(entry.Sanitize(meta), inner, "…")))

	if ex := entry.Excerpt(e.Content, inner*2); ex != "" {
		wrapped := strings.Split(wordwrap.String(ex, inner), "\n")
		if len(wrapped) > 2 {
			wrapped = wrapped[:2]
		}
		for _, l := range wrapped {
			lines = append(lines, ansi.Truncate(l, inner, "…"))
		}
	}
	return th.Preview.Render(strings.Join(lines, "\n"))
}

// timelineView renders the bounds, markers, axis and month labels rows.
func (m *Model) timelineView() (bounds, markers, axis, labels string) {
	tw := m.timelineWidth()
	th := m.th.Timeline
	if len(m.placements) == 0 {
		return "", "", th.Axis.Render(strings.Repeat("─", tw)), th.Bounds.Render("No entries in this range")
	}

	start := entry.Timestamp{Time: m.rng.Start}.Display()
	end := entry.Timestamp{Time: m.rng.End}.Display()
	gap := max(tw-len(start)-len(end), 1)
	bounds = th.Bounds.Render(start + strings.Repeat(" ", gap) + end)

	ax, mk, lb := printers.TimelineRows(m.placements, m.rng, tw)
	active := -1
	if id := m.preview.Active(); id != "" {
		if i := m.placementIndex(id); i >= 0 {
			active = m.markerColumn(m.placements[i])
		}
	}
	runes := []rune(mk)
	if active >= 0 && active < len(runes) {
		markers = th.Marker.Render(string(runes[:active])) +
			th.MarkerActive.Render(string(runes[active])) +
			th.Marker.Render(string(runes[active+1:]))
	} else {
		markers = th.Marker.Render(mk)
	}
	return bounds, markers, th.Axis.Render(ax), th.Label.Render(lb)
}
