package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/runner/tea/internal/theme"
)

// Model renders and scrolls the report overlay.
type Model struct {
	result app.ReportResult
	label  string
	lines  []string
	offset int

	viewportWidth  int
	viewportHeight int

	theme theme.Theme
}

// New creates a report overlay model.
func New(th theme.Theme) *Model {
	return &Model{theme: th}
}

// Active reports whether the overlay has content.
func (m *Model) Active() bool {
	return len(m.lines) > 0
}

// Clear removes current report data.
func (m *Model) Clear() {
	m.result = app.ReportResult{}
	m.label = ""
	m.lines = nil
	m.offset = 0
}

func (m *Model) SetTheme(th theme.Theme) {
	m.theme = th
	if m.Active() {
		m.lines = m.buildLines()
	}
}

// SetViewport configures the usable width/height for rendering.
func (m *Model) SetViewport(totalWidth, availableHeight int) {
	width := totalWidth - 6
	if width < 20 {
		width = 20
	}
	if availableHeight < 3 {
		availableHeight = 3
	}
	m.viewportWidth = width
	m.viewportHeight = availableHeight
	m.ensureBounds()
}

// SetData stores the report result and rebuilds the rendered lines.
func (m *Model) SetData(label string, result app.ReportResult) {
	m.result = result
	m.label = label
	m.lines = m.buildLines()
	m.offset = 0
	m.ensureBounds()
}

// ScrollLines moves the viewport by delta lines.
func (m *Model) ScrollLines(delta int) {
	m.offset += delta
	m.ensureBounds()
}

// ScrollPages moves the viewport by page deltas.
func (m *Model) ScrollPages(delta int) {
	m.offset += delta * m.viewportHeight
	m.ensureBounds()
}

// ScrollHome jumps to the start of the overlay.
func (m *Model) ScrollHome() {
	m.offset = 0
}

// ScrollEnd jumps to the end of the overlay.
func (m *Model) ScrollEnd() {
	m.offset = len(m.lines)
	m.ensureBounds()
}

// View returns the rendered report overlay.
func (m *Model) View() string {
	if len(m.lines) == 0 || m.viewportHeight == 0 {
		return ""
	}
	m.ensureBounds()
	end := m.offset + m.viewportHeight
	if end > len(m.lines) {
		end = len(m.lines)
	}
	visible := m.lines[m.offset:end]
	padded := make([]string, len(visible))
	for i, line := range visible {
		padded[i] = padRight(line, m.viewportWidth)
	}
	frame := m.theme.Report.Frame.Width(m.viewportWidth + 4)
	return frame.Render(strings.Join(padded, "\n"))
}

func (m *Model) buildLines() []string {
	r := m.result
	header := m.theme.Report.Header.Render(
		fmt.Sprintf("Report · last %s (%s → %s)", m.label, r.Since.Local().Format("2006-01-02"), r.Until.Local().Format("2006-01-02")),
	)
	summary := m.theme.Report.Text.Render(fmt.Sprintf("%d entries", r.Total))
	lines := []string{header, summary, ""}

	if r.Total == 0 {
		return append(lines, m.theme.Report.Text.Render("No entries found in this window."))
	}

	for _, sec := range r.Sections {
		lines = append(lines, m.theme.Report.Header.Render(fmt.Sprintf("%s (%d)", sec.Label(), len(sec.Entries))))
		for _, e := range sec.Entries {
			title := entry.Sanitize(e.Title)
			if strings.TrimSpace(title) == "" {
				title = "Untitled"
			}
			line := fmt.Sprintf("  %s  %s", e.EntryDate.Local().Format("Jan 02"), title)
			if len(e.Tags) > 0 {
				line += "  #" + strings.Join(e.Tags, " #")
			}
			lines = append(lines, m.theme.Report.Text.Render(line))
		}
		lines = append(lines, "")
	}
	if len(r.Tags) > 0 {
		counts := make([]string, 0, len(r.Tags))
		for _, t := range r.Tags {
			counts = append(counts, fmt.Sprintf("#%s %d", t.Tag, t.Count))
		}
		lines = append(lines, m.theme.Report.Header.Render("Tags"), m.theme.Report.Text.Render("  "+strings.Join(counts, " · ")))
	}
	return lines
}

func (m *Model) ensureBounds() {
	if len(m.lines) == 0 {
		m.offset = 0
		return
	}
	height := m.viewportHeight
	if height <= 0 {
		height = 1
	}
	maxOffset := len(m.lines) - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// Window formats a report window label, e.g. for a status line.
func Window(label string, since, until time.Time) string {
	return fmt.Sprintf("last %s (%s → %s)", label, since.Local().Format("Jan 2"), until.Local().Format("Jan 2"))
}
