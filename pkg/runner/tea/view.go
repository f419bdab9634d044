package teaui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/journal/pkg/runner/tea/internal/calendar"
	"tableflip.dev/journal/pkg/runner/tea/internal/overlay"
)

const calendarMinWidth = 70

// View renders the full screen: header, timeline, entry list and footer, with
// the hover preview and any modal drawn on top.
func (m Model) View() string {
	w, h := m.width(), m.height()
	footer, footerH := m.bottom.View()

	rows := make([]string, h)
	rows[headerRow] = m.headerView(w)
	bounds, markers, axis, labels := m.timelineView()
	indent := strings.Repeat(" ", padX)
	rows[boundsRow] = indent + bounds
	rows[markersRow] = indent + markers
	rows[axisRow] = indent + axis
	rows[labelsRow] = indent + labels

	body := m.bodyView(w)
	for i, line := range strings.Split(body, "\n") {
		r := listTop + i
		if r >= h-footerH {
			break
		}
		rows[r] = line
	}
	footerLines := strings.Split(footer, "\n")
	for i, line := range footerLines {
		r := h - len(footerLines) + i
		if r >= 0 && r < h {
			rows[r] = line
		}
	}
	screen := strings.Join(rows, "\n")

	if p, ok := m.preview.Visible(); ok && m.mode == modeNormal {
		if e := m.entryByID(p.ID); e != nil {
			box := m.previewBox(e)
			_, bh := overlay.Size(box)
			screen = overlay.At(screen, w, h, box, padX+int(p.Offset), markersRow-bh)
		}
	}
	if t := m.toastView(); t != "" {
		screen = overlay.Compose(screen, w, h, t, overlay.Placement{
			Horizontal: lipgloss.Right,
			Vertical:   lipgloss.Top,
			MarginX:    padX,
		})
	}
	if modal := m.modalView(); modal != "" {
		screen = overlay.Compose(screen, w, h, modal, overlay.Placement{
			Horizontal: lipgloss.Center,
			Vertical:   lipgloss.Center,
		})
	}
	return screen
}

func (m *Model) headerView(w int) string {
	th := m.th.Header
	left := th.Render(" Journal ")
	var parts []string
	if m.svc != nil {
		f := m.svc.Filter()
		if len(f.Tags) > 0 {
			parts = append(parts, "#"+strings.Join(f.Tags, " #"))
		}
		if f.Start != "" || f.End != "" {
			parts = append(parts, fmt.Sprintf("%s → %s", orDash(f.Start), orDash(f.End)))
		}
	}
	right := m.th.Timeline.Bounds.Render(strings.Join(parts, "  "))
	gap := max(w-lipgloss.Width(left)-lipgloss.Width(right)-padX, 1)
	return left + strings.Repeat(" ", gap) + right
}

func orDash(s string) string {
	if s == "" {
		return "…"
	}
	return s
}

// bodyView is the entry list, with the month calendar beside it on wide
// terminals.
func (m *Model) bodyView(w int) string {
	list := m.entList.View()
	if w < calendarMinWidth {
		return lipgloss.NewStyle().PaddingLeft(padX).Render(list)
	}
	today := time.Now()
	month := today
	var selected time.Time
	if e := m.focusedEntry(); e != nil {
		selected = e.EntryDate.Local()
		month = selected
	}
	cal := calendar.Render(month, calendar.Days(month, m.entries, today, selected), m.th.Calendar)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().PaddingLeft(padX).Render(list),
		lipgloss.NewStyle().PaddingLeft(padX).Render(cal),
	)
}

func (m *Model) listSize() (int, int) {
	w := m.width() - 2*padX
	if m.width() >= calendarMinWidth {
		w -= 26
	}
	_, fh := m.bottom.View()
	return max(w, 20), max(m.height()-listTop-fh, 3)
}

// modalView renders the overlay for the current mode, if it has one.
func (m *Model) modalView() string {
	p := m.panel
	p.Reset()
	p.SetWidth(m.modalWidth())
	switch m.mode {
	case modeForm:
		if m.form == nil {
			return ""
		}
		title := "New entry"
		if m.form.editing() {
			title = "Edit entry"
		}
		p.SetContent(title, m.form.lines())
		p.SetFooter(m.hints(map[control]string{ctlSave: "ctrl+s"}, ctlSave) + "  [esc] Cancel")
	case modeDetail:
		if m.detail == nil {
			return ""
		}
		p.SetContent(displayTitle(m.detail), m.detailLines(m.detail))
		p.SetFooter("[e] Edit  " + m.hints(map[control]string{ctlDelete: "d"}, ctlDelete) + "  [esc] Close")
	case modeConfirm:
		if m.confirm == nil {
			return ""
		}
		p.SetContent("Delete entry", []string{
			fmt.Sprintf("Delete %q?", displayTitle(m.confirm)),
			"This action cannot be undone.",
		})
		p.SetFooter(m.hints(map[control]string{ctlDelete: "y"}, ctlDelete) + "  [n] Cancel")
	case modeQuestion:
		body := m.questionView
		if body == "" {
			body = m.th.Panel.Meta.Render("Thinking of a question...")
		}
		p.SetContent("Reflection", strings.Split(body, "\n"))
		p.SetFooter(m.hints(map[control]string{ctlQuestion: "g"}, ctlQuestion) + "  [n] Write  [esc] Close")
	case modeFilter:
		p.SetContent("Filter", m.filterLines())
		p.SetFooter("[tab] Add  [enter] Apply  [esc] Cancel")
	case modeHelp:
		return m.help.View()
	case modeReport:
		return m.report.View()
	default:
		return ""
	}
	view, _ := p.View()
	return view
}
